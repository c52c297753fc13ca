package domain

import "time"

type Timeline struct {
	ID               string
	Name             string
	Framework        string
	StartDate        time.Time
	TargetCompletion time.Time
	Status           TimelineStatus

	// Derived fields, recomputed after every task/milestone mutation.
	// They are never written directly by callers.
	CurrentProgress int // 0-100
	HealthScore     int // 0-100
	CriticalPath    []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the timeline date invariant.
func (tl *Timeline) Validate() error {
	if tl.Name == "" {
		return &ValidationError{Field: "name", Msg: "is required"}
	}
	if !tl.TargetCompletion.After(tl.StartDate) {
		return &ValidationError{Field: "target_completion", Msg: "must be after start_date"}
	}
	return nil
}

// OnCriticalPath reports whether the given task id is in the precomputed
// critical-path set.
func (tl *Timeline) OnCriticalPath(taskID string) bool {
	for _, id := range tl.CriticalPath {
		if id == taskID {
			return true
		}
	}
	return false
}

type Milestone struct {
	ID         string
	TimelineID string
	Name       string
	Type       MilestoneType
	TargetDate time.Time
	Status     MilestoneStatus
	Progress   int // 0-100
	// Dependencies lists task ids that must finish for the milestone.
	Dependencies    []string
	SuccessCriteria string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Overdue reports whether the milestone should be considered delayed:
// past its target date and not completed or cancelled.
func (m *Milestone) Overdue(now time.Time) bool {
	if m.Status == MilestoneCompleted || m.Status == MilestoneCancelled {
		return false
	}
	return m.TargetDate.Before(now)
}

// TimelineAnalytics is a derived projection over a timeline's tasks and
// milestones. It is recomputed on read and never persisted.
type TimelineAnalytics struct {
	TotalTasks         int
	CompletedTasks     int
	BlockedCritical    int
	DelayedMilestones  int
	ScheduleVariance   float64 // elapsed% minus progress%, negative when ahead
	ResourceAllocation map[string]float64
}
