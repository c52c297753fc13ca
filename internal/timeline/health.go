package timeline

import (
	"math"
	"time"

	"github.com/tobiasvance/remedy/internal/domain"
)

// Health penalties. Delayed milestones and blocked critical-path tasks each
// cost a fixed amount up to a cap; schedule variance is a secondary signal
// that only bites once something is already delayed or blocked, so a
// timeline with zero delayed milestones and zero blocked critical tasks
// always scores exactly 100.
const (
	delayedMilestonePenalty = 15
	delayedPenaltyCap       = 45
	blockedCriticalPenalty  = 20
	blockedPenaltyCap       = 40
	varianceWeight          = 0.3
	variancePenaltyCap      = 15
)

// HealthInput carries the signals the health score is derived from.
type HealthInput struct {
	Now              time.Time
	StartDate        time.Time
	TargetCompletion time.Time
	// ProgressPct is the timeline's current 0-100 progress.
	ProgressPct          int
	DelayedMilestones    int
	BlockedCriticalTasks int
}

// ComputeHealth returns the 0-100 timeline health score. It never divides by
// an unguarded denominator and degrades to 100 for an empty program.
func ComputeHealth(in HealthInput) int {
	score := 100.0

	delayed := math.Min(float64(in.DelayedMilestones)*delayedMilestonePenalty, delayedPenaltyCap)
	blocked := math.Min(float64(in.BlockedCriticalTasks)*blockedCriticalPenalty, blockedPenaltyCap)
	score -= delayed
	score -= blocked

	if in.DelayedMilestones > 0 || in.BlockedCriticalTasks > 0 {
		variance := ScheduleVariance(in.Now, in.StartDate, in.TargetCompletion, in.ProgressPct)
		if variance > 0 {
			score -= math.Min(variance*varianceWeight, variancePenaltyCap)
		}
	}

	return domain.ClampInt(int(math.Round(score)), 0, 100)
}

// ScheduleVariance returns elapsed% minus progress%: positive when the
// timeline is behind pace, negative when ahead. Zero when the date range is
// degenerate or the clock sits before the start.
func ScheduleVariance(now, start, target time.Time, progressPct int) float64 {
	totalHours := target.Sub(start).Hours()
	if totalHours <= 0 {
		return 0
	}
	elapsedPct := now.Sub(start).Hours() / totalHours * 100
	elapsedPct = domain.ClampFloat(elapsedPct, 0, 100)
	return elapsedPct - float64(progressPct)
}

// CountDelayed returns how many milestones are effectively delayed at now:
// either already marked delayed or overdue and not yet swept.
func CountDelayed(milestones []domain.Milestone, now time.Time) int {
	var n int
	for _, m := range milestones {
		if m.Status == domain.MilestoneDelayed || m.Overdue(now) {
			n++
		}
	}
	return n
}

// CountBlockedCritical returns how many tasks on the timeline's critical
// path are currently blocked.
func CountBlockedCritical(tl *domain.Timeline, tasks []domain.Task) int {
	var n int
	for _, t := range tasks {
		if t.Status == domain.TaskBlocked && tl.OnCriticalPath(t.ID) {
			n++
		}
	}
	return n
}
