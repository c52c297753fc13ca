package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tobiasvance/remedy/internal/domain"
)

func TestFormatTaskList_ShowsCoreColumns(t *testing.T) {
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	tasks := []*domain.Task{
		{
			ID:       "aaaabbbb-0000-0000-0000-000000000000",
			Title:    "Encrypt backups",
			Priority: domain.PriorityHigh,
			Status:   domain.TaskInProgress,
			Progress: 40,
			DueDate:  &due,
		},
		{
			ID:       "ccccdddd-0000-0000-0000-000000000000",
			Title:    "Collect access reviews",
			Priority: domain.PriorityLow,
			Status:   domain.TaskDraft,
		},
	}

	out := FormatTaskList(tasks)
	assert.Contains(t, out, "aaaabbbb")
	assert.Contains(t, out, "Encrypt backups")
	assert.Contains(t, out, "40%")
	assert.Contains(t, out, "2026-03-15")
	assert.Contains(t, out, "unassigned")
}

func TestFormatTaskDetail_ShowsBlockingDependency(t *testing.T) {
	task := &domain.Task{
		ID:        "aaaabbbb-0000-0000-0000-000000000000",
		Title:     "Deploy MFA",
		Type:      domain.TaskRemediation,
		Priority:  domain.PriorityCritical,
		Status:    domain.TaskBlocked,
		Framework: "SOC2",
		ControlID: "CC6.1",
		Dependencies: []domain.TaskDependency{
			{DependsOnID: "ccccdddd-0000-0000-0000-000000000000",
				Type: domain.DependencyBlocks, Status: domain.DependencyActive},
		},
	}

	out := FormatTaskDetail(task)
	assert.Contains(t, out, "SOC2 CC6.1")
	assert.Contains(t, out, "ccccdddd")
	assert.Contains(t, out, "blocking")
}
