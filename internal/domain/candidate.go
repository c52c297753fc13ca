package domain

// CandidateProfile is the directory view of a user considered for
// assignment: identity plus the workload, skill and performance signals
// the scorer consumes. Supplied by the DirectoryProvider, never stored
// by the engine.
type CandidateProfile struct {
	ID          string
	Email       string
	DisplayName string

	ActiveTaskCount int
	// CommittedHours is the sum of estimated hours across the candidate's
	// assigned and in-progress tasks.
	CommittedHours      float64
	WeeklyCapacityHours float64

	// Skills are framework/control tags, e.g. "SOC2" or "AC".
	Skills []string
	// PerformanceScore is a 0-100 recent-performance signal (completion
	// rate, quality, on-time rate) aggregated upstream.
	PerformanceScore int
	Available        bool
}

// HasSkill reports whether the candidate carries the given tag
// (case-sensitive, tags are normalized upstream).
func (c *CandidateProfile) HasSkill(tag string) bool {
	for _, s := range c.Skills {
		if s == tag {
			return true
		}
	}
	return false
}
