package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeline_Validate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tl := Timeline{Name: "SOC2 readiness", StartDate: start, TargetCompletion: start.AddDate(0, 3, 0)}
	assert.NoError(t, tl.Validate())

	tl.TargetCompletion = start
	assert.Error(t, tl.Validate(), "target equal to start is invalid")

	tl.TargetCompletion = start.AddDate(0, 0, -1)
	assert.Error(t, tl.Validate())
}

func TestTimeline_OnCriticalPath(t *testing.T) {
	tl := Timeline{CriticalPath: []string{"t-1", "t-3"}}
	assert.True(t, tl.OnCriticalPath("t-1"))
	assert.False(t, tl.OnCriticalPath("t-2"))
}

func TestMilestone_Overdue(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	target := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	m := Milestone{TargetDate: target, Status: MilestonePending}
	assert.True(t, m.Overdue(now))

	m.Status = MilestoneCompleted
	assert.False(t, m.Overdue(now))

	m.Status = MilestoneCancelled
	assert.False(t, m.Overdue(now))

	m.Status = MilestoneInProgress
	m.TargetDate = now.AddDate(0, 1, 0)
	assert.False(t, m.Overdue(now))
}
