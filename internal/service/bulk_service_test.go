package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobiasvance/remedy/internal/contract"
	"github.com/tobiasvance/remedy/internal/domain"
	"github.com/tobiasvance/remedy/internal/repository"
	"github.com/tobiasvance/remedy/internal/testutil"
)

func sampleRequest() *contract.BulkTaskRequest {
	return &contract.BulkTaskRequest{
		Template: contract.TaskTemplate{
			Framework:         "SOC2",
			DefaultPriority:   domain.PriorityMedium,
			DueDateOffsetDays: 30,
		},
		Gaps: []contract.ComplianceGap{
			{
				ControlID:       "CC6.1",
				GapDescription:  "MFA not enforced",
				RemediationType: domain.RemediationTechnical,
				EstimatedEffort: domain.EffortHigh,
				Priority:        domain.PriorityHigh,
			},
			{
				ControlID:       "CC7.2",
				GapDescription:  "No incident runbook",
				RemediationType: domain.RemediationDocumentation,
				EstimatedEffort: domain.EffortLow,
			},
		},
	}
}

func TestBulkService_GenerateFromRequest_Persists(t *testing.T) {
	database := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	svc := NewBulkService(users, testutil.NewTestUoW(database), testOrg)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	res, err := svc.GenerateFromRequest(ctx, sampleRequest(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Summary.TotalTasks)
	assert.Equal(t, 20.0, res.Summary.TotalEstimatedHours)

	stored, err := tasks.Find(ctx, repository.TaskFilter{Framework: "SOC2"})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, task := range stored {
		assert.Equal(t, domain.TaskDraft, task.Status)
		require.NotNil(t, task.DueDate)
		assert.Equal(t, now.AddDate(0, 0, 30).Format("2006-01-02"), task.DueDate.Format("2006-01-02"))
	}
}

func TestBulkService_GenerateFromRequest_PartialSuccess(t *testing.T) {
	database := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	svc := NewBulkService(users, testutil.NewTestUoW(database), testOrg)
	ctx := context.Background()

	req := sampleRequest()
	req.Gaps = append(req.Gaps, contract.ComplianceGap{
		GapDescription:  "missing control id",
		RemediationType: domain.RemediationProcess,
	})

	res, err := svc.GenerateFromRequest(ctx, req, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Summary.TotalTasks)
	assert.Equal(t, 1, res.Summary.Rejected)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, 2, res.Rejected[0].Index)
	assert.Contains(t, res.Rejected[0].Reason, "control_id")

	stored, err := tasks.Find(ctx, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestBulkService_GenerateFromRequest_BadEnumRejectsOnlyThatGap(t *testing.T) {
	database := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	svc := NewBulkService(users, testutil.NewTestUoW(database), testOrg)
	ctx := context.Background()

	req := sampleRequest()
	req.Gaps = append(req.Gaps, contract.ComplianceGap{
		ControlID:       "CC8.1",
		GapDescription:  "change management gaps",
		RemediationType: domain.RemediationProcess,
		Priority:        "urgent",
	})

	res, err := svc.GenerateFromRequest(ctx, req, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Summary.TotalTasks)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "CC8.1", res.Rejected[0].ControlID)
	assert.Contains(t, res.Rejected[0].Reason, "priority")

	stored, err := tasks.Find(ctx, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestBulkService_GenerateFromRequest_InvalidTemplate(t *testing.T) {
	database := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(database)
	svc := NewBulkService(users, testutil.NewTestUoW(database), testOrg)

	req := sampleRequest()
	req.Template.DefaultPriority = "urgent"

	_, err := svc.GenerateFromRequest(context.Background(), req, time.Now().UTC())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_priority")
}

func TestBulkService_AutoAssign(t *testing.T) {
	database := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	svc := NewBulkService(users, testutil.NewTestUoW(database), testOrg)
	ctx := context.Background()

	expert := testutil.NewTestUser("expert@example.com", testOrg, testutil.WithSkills("SOC2"))
	require.NoError(t, users.Create(ctx, expert))

	req := sampleRequest()
	req.Template.AutoAssign = true

	res, err := svc.GenerateFromRequest(ctx, req, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Summary.AutoAssigned)
	assert.Equal(t, 0, res.Summary.RequiresManualAssignment)

	stored, err := tasks.Find(ctx, repository.TaskFilter{AssignedTo: expert.ID})
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestBulkService_AutoAssign_NoCandidates(t *testing.T) {
	database := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(database)
	svc := NewBulkService(users, testutil.NewTestUoW(database), testOrg)

	req := sampleRequest()
	req.Template.AutoAssign = true

	res, err := svc.GenerateFromRequest(context.Background(), req, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Summary.AutoAssigned)
	assert.Equal(t, 2, res.Summary.RequiresManualAssignment)
}

func TestBulkService_PersistFailure_RollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	boom := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: boom}
	svc := NewBulkService(users, uow, testOrg)
	ctx := context.Background()

	_, err := svc.GenerateFromRequest(ctx, sampleRequest(), time.Now().UTC())
	require.ErrorIs(t, err, boom)

	// The first insert must not survive the failed batch.
	stored, err := tasks.Find(ctx, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestBulkService_GenerateFromGaps_File(t *testing.T) {
	database := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(database)
	svc := NewBulkService(users, testutil.NewTestUoW(database), testOrg)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "gaps.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"template": {"framework": "SOC2", "default_priority": "medium"},
		"gaps": [
			{"control_id": "CC6.1", "gap_description": "MFA", "remediation_type": "technical", "estimated_effort": "medium"}
		]
	}`), 0o644))

	res, err := svc.GenerateFromGaps(ctx, path, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Summary.TotalTasks)
	assert.Equal(t, "Remediate: CC6.1", res.Tasks[0].Title)
}

func TestBulkService_GenerateFromGaps_BadJSON(t *testing.T) {
	database := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(database)
	svc := NewBulkService(users, testutil.NewTestUoW(database), testOrg)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := svc.GenerateFromGaps(context.Background(), path, time.Now().UTC())
	assert.True(t, domain.IsValidation(err))
}
