package service

import (
	"fmt"

	"github.com/tobiasvance/remedy/internal/domain"
	"github.com/tobiasvance/remedy/internal/timeline"
)

// derefTasks flattens repository pointers into the value slices the engine
// packages consume.
func derefTasks(tasks []*domain.Task) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, *t)
	}
	return out
}

func derefMilestones(milestones []*domain.Milestone) []domain.Milestone {
	out := make([]domain.Milestone, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, *m)
	}
	return out
}

// buildAnalytics assembles the derived read-model over a recomputed snapshot.
func buildAnalytics(tasks []domain.Task, in timeline.HealthInput) domain.TimelineAnalytics {
	a := domain.TimelineAnalytics{
		DelayedMilestones:  in.DelayedMilestones,
		BlockedCritical:    in.BlockedCriticalTasks,
		ScheduleVariance:   timeline.ScheduleVariance(in.Now, in.StartDate, in.TargetCompletion, in.ProgressPct),
		ResourceAllocation: make(map[string]float64),
	}
	for _, task := range tasks {
		a.TotalTasks++
		if task.Status == domain.TaskCompleted {
			a.CompletedTasks++
		}
		if task.AssignedTo != "" && task.IsActive() {
			a.ResourceAllocation[task.AssignedTo] += task.EstimatedHours
		}
	}
	return a
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("gap file validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
