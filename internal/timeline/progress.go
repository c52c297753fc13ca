package timeline

import (
	"math"

	"github.com/tobiasvance/remedy/internal/domain"
)

// hourFloor keeps unestimated tasks from vanishing out of the weighted average.
const hourFloor = 1.0

// ComputeProgress returns the timeline's aggregate 0-100 progress.
// Tasks associated with the timeline's framework are averaged weighted by
// their estimated hours; when no tasks are associated, the plain average of
// milestone progress is used instead. An empty timeline yields 0.
func ComputeProgress(tl *domain.Timeline, tasks []domain.Task, milestones []domain.Milestone) int {
	var weighted, totalWeight float64
	for _, t := range tasks {
		if !associated(tl, t) {
			continue
		}
		weight := math.Max(hourFloor, t.EstimatedHours)
		weighted += float64(t.Progress) * weight
		totalWeight += weight
	}
	if totalWeight > 0 {
		return domain.ClampInt(int(math.Round(weighted/totalWeight)), 0, 100)
	}

	if len(milestones) == 0 {
		return 0
	}
	var sum int
	for _, m := range milestones {
		sum += m.Progress
	}
	return domain.ClampInt(int(math.Round(float64(sum)/float64(len(milestones)))), 0, 100)
}

// RecomputeProgress recomputes and stores CurrentProgress. Idempotent for
// unchanged inputs.
func RecomputeProgress(tl *domain.Timeline, tasks []domain.Task, milestones []domain.Milestone) int {
	tl.CurrentProgress = ComputeProgress(tl, tasks, milestones)
	return tl.CurrentProgress
}

// associated reports whether the task belongs to the timeline's program.
// A timeline without a framework owns every task it is handed.
func associated(tl *domain.Timeline, t domain.Task) bool {
	return tl.Framework == "" || t.Framework == tl.Framework
}
