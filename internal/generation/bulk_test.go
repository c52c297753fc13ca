package generation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobiasvance/remedy/internal/contract"
	"github.com/tobiasvance/remedy/internal/domain"
)

var bulkNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	})
}

func TestGenerate_SingleGapScenario(t *testing.T) {
	req := contract.BulkTaskRequest{
		Template: contract.TaskTemplate{
			Framework:         "CMMC",
			DefaultPriority:   domain.PriorityMedium,
			DueDateOffsetDays: 30,
		},
		Gaps: []contract.ComplianceGap{{
			ControlID:       "AC-3.13",
			GapDescription:  "MFA missing",
			RemediationType: domain.RemediationTechnical,
			EstimatedEffort: domain.EffortMedium,
		}},
	}

	result := Generate(req, bulkNow, sequentialIDs())

	require.Len(t, result.Tasks, 1)
	task := result.Tasks[0]
	assert.Equal(t, "Remediate: AC-3.13", task.Title)
	assert.Equal(t, "MFA missing", task.Description)
	assert.Equal(t, domain.TaskRemediation, task.Type)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, 8.0, task.EstimatedHours)
	assert.Equal(t, domain.TaskDraft, task.Status)
	assert.Equal(t, []string{"technical"}, task.Tags)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, bulkNow.AddDate(0, 0, 30), *task.DueDate)
}

func TestGenerate_PartialSuccess(t *testing.T) {
	gaps := []contract.ComplianceGap{
		{ControlID: "AC-1", GapDescription: "d", RemediationType: domain.RemediationTechnical},
		{ControlID: "", GapDescription: "d", RemediationType: domain.RemediationTechnical},
		{ControlID: "AC-3", GapDescription: "d", RemediationType: domain.RemediationProcess},
		{ControlID: "AC-4", GapDescription: "d", RemediationType: domain.RemediationTraining},
		{ControlID: "AC-5", GapDescription: "d", RemediationType: domain.RemediationDocumentation},
	}
	req := contract.BulkTaskRequest{
		Template: contract.TaskTemplate{DefaultPriority: domain.PriorityHigh},
		Gaps:     gaps,
	}

	result := Generate(req, bulkNow, sequentialIDs())

	assert.Len(t, result.Tasks, 4)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, 1, result.Rejected[0].Index)
	assert.Equal(t, "control_id is required", result.Rejected[0].Reason)
	assert.Equal(t, 4, result.Summary.TotalTasks)
	assert.Equal(t, 1, result.Summary.Rejected)
}

func TestGenerate_EffortTaxonomy(t *testing.T) {
	cases := map[domain.EffortLevel]float64{
		domain.EffortMinimal:     2,
		domain.EffortLow:         4,
		domain.EffortMedium:      8,
		domain.EffortHigh:        16,
		domain.EffortSignificant: 32,
		"unknown":                8, // defaults to medium
		"":                       8,
	}
	for effort, hours := range cases {
		assert.Equal(t, hours, HoursForEffort(effort), "effort %q", effort)
	}
}

func TestGenerate_TaskTypeMapping(t *testing.T) {
	assert.Equal(t, domain.TaskRemediation, TaskTypeFor(domain.RemediationTechnical))
	assert.Equal(t, domain.TaskEvidence, TaskTypeFor(domain.RemediationDocumentation))
	// Process and training keep the original remediation mapping.
	assert.Equal(t, domain.TaskRemediation, TaskTypeFor(domain.RemediationProcess))
	assert.Equal(t, domain.TaskRemediation, TaskTypeFor(domain.RemediationTraining))
}

func TestGenerate_GapPriorityOverridesTemplate(t *testing.T) {
	req := contract.BulkTaskRequest{
		Template: contract.TaskTemplate{DefaultPriority: domain.PriorityLow},
		Gaps: []contract.ComplianceGap{
			{ControlID: "AC-1", GapDescription: "d", RemediationType: domain.RemediationTechnical, Priority: domain.PriorityCritical},
			{ControlID: "AC-2", GapDescription: "d", RemediationType: domain.RemediationTechnical},
		},
	}

	result := Generate(req, bulkNow, sequentialIDs())

	require.Len(t, result.Tasks, 2)
	assert.Equal(t, domain.PriorityCritical, result.Tasks[0].Priority)
	assert.Equal(t, domain.PriorityLow, result.Tasks[1].Priority)
}

func TestGenerate_RejectsInvalidEnumsPerGap(t *testing.T) {
	gaps := []contract.ComplianceGap{
		{ControlID: "AC-1", GapDescription: "d", RemediationType: domain.RemediationTechnical},
		{ControlID: "AC-2", GapDescription: "d", RemediationType: "magic"},
		{ControlID: "AC-3", GapDescription: "d", RemediationType: domain.RemediationProcess, Priority: "urgent"},
		{ControlID: "AC-4", GapDescription: "d", RemediationType: domain.RemediationDocumentation},
		{ControlID: "AC-5", GapDescription: "d", RemediationType: domain.RemediationTraining},
	}
	req := contract.BulkTaskRequest{
		Template: contract.TaskTemplate{DefaultPriority: domain.PriorityMedium},
		Gaps:     gaps,
	}

	result := Generate(req, bulkNow, sequentialIDs())

	// One bad enum never costs the clean gaps their tasks.
	assert.Len(t, result.Tasks, 3)
	require.Len(t, result.Rejected, 2)
	assert.Equal(t, 1, result.Rejected[0].Index)
	assert.Contains(t, result.Rejected[0].Reason, `remediation_type: invalid value "magic"`)
	assert.Equal(t, 2, result.Rejected[1].Index)
	assert.Contains(t, result.Rejected[1].Reason, `priority: invalid value "urgent"`)
}

func TestGenerate_SummaryBucketsAndAssignmentSplit(t *testing.T) {
	req := contract.BulkTaskRequest{
		Template: contract.TaskTemplate{
			DefaultPriority: domain.PriorityMedium,
			AutoAssign:      true,
		},
		Gaps: []contract.ComplianceGap{
			{ControlID: "AC-1", GapDescription: "d", RemediationType: domain.RemediationTechnical, Priority: domain.PriorityCritical, EstimatedEffort: domain.EffortHigh},
			{ControlID: "AC-2", GapDescription: "d", RemediationType: domain.RemediationTechnical, Priority: domain.PriorityHigh, EstimatedEffort: domain.EffortLow},
			{ControlID: "AC-3", GapDescription: "d", RemediationType: domain.RemediationTechnical, EstimatedEffort: domain.EffortMinimal},
			{ControlID: "AC-4", GapDescription: "d", RemediationType: domain.RemediationTechnical, Priority: domain.PriorityLow},
		},
	}

	// Only AC-1 and AC-2 find an assignee.
	assigned := map[string]string{"AC-1": "u-1", "AC-2": "u-2"}
	result := Generate(req, bulkNow, sequentialIDs(), WithAutoAssign(func(task domain.Task) (string, bool) {
		id, ok := assigned[task.ControlID]
		return id, ok
	}))

	s := result.Summary
	assert.Equal(t, 4, s.TotalTasks)
	assert.Equal(t, 16.0+4+2+8, s.TotalEstimatedHours)
	assert.Equal(t, 2, s.AutoAssigned)
	assert.Equal(t, 2, s.RequiresManualAssignment)
	assert.Equal(t, 2, s.HighPriority)
	assert.Equal(t, 1, s.MediumPriority)
	assert.Equal(t, 1, s.LowPriority)
}

func TestGenerate_EmptyRequest(t *testing.T) {
	result := Generate(contract.BulkTaskRequest{}, bulkNow)
	assert.Empty(t, result.Tasks)
	assert.Empty(t, result.Rejected)
	assert.Equal(t, contract.BulkSummary{}, result.Summary)
}
