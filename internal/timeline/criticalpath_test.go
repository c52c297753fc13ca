package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tobiasvance/remedy/internal/domain"
)

var cpNow = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

func blocksDep(id string) domain.TaskDependency {
	return domain.TaskDependency{DependsOnID: id, Type: domain.DependencyBlocks, Status: domain.DependencyActive}
}

func TestComputeCriticalPath_TransitiveBlocks(t *testing.T) {
	// m-1 depends on t-3; t-3 is blocked by t-2, t-2 by t-1.
	// t-4 informs t-3 and must stay off the path.
	tasks := []domain.Task{
		{ID: "t-1"},
		{ID: "t-2", Dependencies: []domain.TaskDependency{blocksDep("t-1")}},
		{ID: "t-3", Dependencies: []domain.TaskDependency{
			blocksDep("t-2"),
			{DependsOnID: "t-4", Type: domain.DependencyInforms, Status: domain.DependencyActive},
		}},
		{ID: "t-4"},
	}
	milestones := []domain.Milestone{{
		ID:           "m-1",
		TargetDate:   cpNow.AddDate(0, 1, 0),
		Status:       domain.MilestonePending,
		Dependencies: []string{"t-3"},
	}}

	path := ComputeCriticalPath(CriticalPathInput{Tasks: tasks, Milestones: milestones, Now: cpNow})
	assert.Equal(t, []string{"t-1", "t-2", "t-3"}, path)
}

func TestComputeCriticalPath_PicksTightestMilestone(t *testing.T) {
	tasks := []domain.Task{{ID: "t-near"}, {ID: "t-far"}}
	milestones := []domain.Milestone{
		{ID: "m-far", TargetDate: cpNow.AddDate(0, 3, 0), Status: domain.MilestonePending, Dependencies: []string{"t-far"}},
		{ID: "m-near", TargetDate: cpNow.AddDate(0, 0, 7), Status: domain.MilestonePending, Dependencies: []string{"t-near"}},
		{ID: "m-done", TargetDate: cpNow.AddDate(0, 0, 1), Status: domain.MilestoneCompleted, Dependencies: []string{"t-far"}},
	}

	path := ComputeCriticalPath(CriticalPathInput{Tasks: tasks, Milestones: milestones, Now: cpNow})
	assert.Equal(t, []string{"t-near"}, path)
}

func TestComputeCriticalPath_FlaggedTasksUnioned(t *testing.T) {
	tasks := []domain.Task{{ID: "t-1"}, {ID: "t-2"}}

	path := ComputeCriticalPath(CriticalPathInput{
		Tasks:   tasks,
		Now:     cpNow,
		Flagged: []string{"t-2", "missing"},
	})
	assert.Equal(t, []string{"t-2"}, path, "flags for unknown tasks are dropped")
}

func TestComputeCriticalPath_CycleSafe(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t-1", Dependencies: []domain.TaskDependency{blocksDep("t-2")}},
		{ID: "t-2", Dependencies: []domain.TaskDependency{blocksDep("t-1")}},
	}
	milestones := []domain.Milestone{{
		ID: "m-1", TargetDate: cpNow.AddDate(0, 0, 3),
		Status: domain.MilestonePending, Dependencies: []string{"t-1"},
	}}

	path := ComputeCriticalPath(CriticalPathInput{Tasks: tasks, Milestones: milestones, Now: cpNow})
	assert.Equal(t, []string{"t-1", "t-2"}, path)
}

func TestComputeCriticalPath_EmptyInputs(t *testing.T) {
	path := ComputeCriticalPath(CriticalPathInput{Now: cpNow})
	assert.Empty(t, path)
}

func TestRecomputeCriticalPath_BlockedTaskLowersHealth(t *testing.T) {
	// The invariant under test: a blocked task on the critical path must
	// drag the health score down.
	tl := &domain.Timeline{
		Framework:        "SOC2",
		StartDate:        cpNow.AddDate(0, -1, 0),
		TargetCompletion: cpNow.AddDate(0, 2, 0),
	}
	tasks := []domain.Task{{ID: "t-1", Status: domain.TaskBlocked}}
	milestones := []domain.Milestone{{
		ID: "m-1", TargetDate: cpNow.AddDate(0, 0, 10),
		Status: domain.MilestonePending, Dependencies: []string{"t-1"},
	}}

	RecomputeCriticalPath(tl, CriticalPathInput{Tasks: tasks, Milestones: milestones, Now: cpNow})
	assert.True(t, tl.OnCriticalPath("t-1"))

	health := ComputeHealth(HealthInput{
		Now:                  cpNow,
		StartDate:            tl.StartDate,
		TargetCompletion:     tl.TargetCompletion,
		ProgressPct:          30,
		DelayedMilestones:    CountDelayed(milestones, cpNow),
		BlockedCriticalTasks: CountBlockedCritical(tl, tasks),
	})
	assert.Less(t, health, 100)
}
