package timeline

import (
	"time"

	"github.com/tobiasvance/remedy/internal/domain"
)

// milestoneTransitions holds the allowed transitions per status.
// Delayed is not terminal: a delayed milestone can still complete or resume.
// Completed and cancelled are terminal.
var milestoneTransitions = map[domain.MilestoneStatus][]domain.MilestoneStatus{
	domain.MilestonePending:    {domain.MilestoneInProgress, domain.MilestoneDelayed, domain.MilestoneCancelled},
	domain.MilestoneInProgress: {domain.MilestoneCompleted, domain.MilestoneDelayed, domain.MilestoneCancelled},
	domain.MilestoneDelayed:    {domain.MilestoneInProgress, domain.MilestoneCompleted, domain.MilestoneCancelled},
	domain.MilestoneCompleted:  {},
	domain.MilestoneCancelled:  {},
}

// CanTransitionMilestone reports whether the status change is legal.
func CanTransitionMilestone(from, to domain.MilestoneStatus) bool {
	for _, allowed := range milestoneTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// MarkMilestoneStatus applies a status change, keeping completed at 100%.
func MarkMilestoneStatus(m *domain.Milestone, to domain.MilestoneStatus, now time.Time) error {
	if !CanTransitionMilestone(m.Status, to) {
		return &domain.ValidationError{
			Field: "status",
			Msg:   "cannot move from " + string(m.Status) + " to " + string(to),
		}
	}
	m.Status = to
	if to == domain.MilestoneCompleted {
		m.Progress = 100
	}
	m.UpdatedAt = now
	return nil
}

// SweepDelayed marks every overdue, non-terminal milestone as delayed and
// returns how many were changed. Safe to call repeatedly.
func SweepDelayed(milestones []domain.Milestone, now time.Time) int {
	var changed int
	for i := range milestones {
		m := &milestones[i]
		if m.Status == domain.MilestoneDelayed || !m.Overdue(now) {
			continue
		}
		m.Status = domain.MilestoneDelayed
		m.UpdatedAt = now
		changed++
	}
	return changed
}
