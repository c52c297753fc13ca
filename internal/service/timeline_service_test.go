package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobiasvance/remedy/internal/domain"
	"github.com/tobiasvance/remedy/internal/gantt"
	"github.com/tobiasvance/remedy/internal/repository"
	"github.com/tobiasvance/remedy/internal/testutil"
)

type timelineHarness struct {
	svc        TimelineService
	timelines  *repository.SQLiteTimelineRepo
	milestones *repository.SQLiteMilestoneRepo
	tasks      *repository.SQLiteTaskRepo
}

func newTimelineHarness(t *testing.T) *timelineHarness {
	t.Helper()
	database := testutil.NewTestDB(t)
	timelines := repository.NewSQLiteTimelineRepo(database)
	milestones := repository.NewSQLiteMilestoneRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	return &timelineHarness{
		svc:        NewTimelineService(timelines, milestones, tasks, testutil.NewTestUoW(database)),
		timelines:  timelines,
		milestones: milestones,
		tasks:      tasks,
	}
}

func TestTimelineService_Create_Validates(t *testing.T) {
	h := newTimelineHarness(t)
	ctx := context.Background()

	bad := &domain.Timeline{
		Name:             "Backwards",
		StartDate:        time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		TargetCompletion: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, domain.IsValidation(h.svc.Create(ctx, bad)))

	good := testutil.NewTestTimeline("Forward")
	good.CreatedAt = time.Time{}
	require.NoError(t, h.svc.Create(ctx, good))
	fetched, err := h.svc.GetByID(ctx, good.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, fetched.HealthScore)
}

func TestTimelineService_Status_CleanTimelineScores100(t *testing.T) {
	h := newTimelineHarness(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tl := testutil.NewTestTimeline("Clean",
		testutil.WithTimelineFramework("SOC2"),
		testutil.WithDates(
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, h.timelines.Create(ctx, tl))
	require.NoError(t, h.tasks.Create(ctx, testutil.NewTestTask("T1",
		testutil.WithFramework("SOC2", "CC1.1"),
		testutil.WithEstimatedHours(10),
		testutil.WithProgress(50))))

	report, err := h.svc.Status(ctx, tl.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 50, report.Timeline.CurrentProgress)
	assert.Equal(t, 100, report.Timeline.HealthScore)
	assert.Equal(t, 0, report.Analytics.DelayedMilestones)
}

func TestTimelineService_Status_SweepsOverdueMilestones(t *testing.T) {
	h := newTimelineHarness(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tl := testutil.NewTestTimeline("Late", testutil.WithDates(
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, h.timelines.Create(ctx, tl))
	m := testutil.NewTestMilestone(tl.ID, "Missed",
		testutil.WithTargetDate(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, h.milestones.Create(ctx, m))

	report, err := h.svc.Status(ctx, tl.ID, now)
	require.NoError(t, err)
	require.Len(t, report.Milestones, 1)
	assert.Equal(t, domain.MilestoneDelayed, report.Milestones[0].Status)
	assert.Less(t, report.Timeline.HealthScore, 100)

	// Status never writes; the stored milestone is untouched.
	stored, err := h.milestones.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MilestonePending, stored.Status)
}

func TestTimelineService_Recompute_Persists(t *testing.T) {
	h := newTimelineHarness(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tl := testutil.NewTestTimeline("Persist",
		testutil.WithTimelineFramework("SOC2"),
		testutil.WithDates(
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, h.timelines.Create(ctx, tl))

	task := testutil.NewTestTask("T1",
		testutil.WithFramework("SOC2", "CC1.1"),
		testutil.WithProgress(40))
	require.NoError(t, h.tasks.Create(ctx, task))
	m := testutil.NewTestMilestone(tl.ID, "Missed",
		testutil.WithTargetDate(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)),
		testutil.WithMilestoneDeps(task.ID))
	require.NoError(t, h.milestones.Create(ctx, m))

	report, err := h.svc.Recompute(ctx, tl.ID, now)
	require.NoError(t, err)

	stored, err := h.timelines.GetByID(ctx, tl.ID)
	require.NoError(t, err)
	assert.Equal(t, report.Timeline.CurrentProgress, stored.CurrentProgress)
	assert.Equal(t, report.Timeline.HealthScore, stored.HealthScore)
	assert.Equal(t, []string{task.ID}, stored.CriticalPath)

	storedM, err := h.milestones.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MilestoneDelayed, storedM.Status)
}

func TestTimelineService_Recompute_Idempotent(t *testing.T) {
	h := newTimelineHarness(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tl := testutil.NewTestTimeline("Twice", testutil.WithDates(
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, h.timelines.Create(ctx, tl))

	first, err := h.svc.Recompute(ctx, tl.ID, now)
	require.NoError(t, err)
	second, err := h.svc.Recompute(ctx, tl.ID, now)
	require.NoError(t, err)
	assert.Equal(t, first.Timeline.CurrentProgress, second.Timeline.CurrentProgress)
	assert.Equal(t, first.Timeline.HealthScore, second.Timeline.HealthScore)
}

func TestTimelineService_MarkMilestone(t *testing.T) {
	h := newTimelineHarness(t)
	ctx := context.Background()

	tl := testutil.NewTestTimeline("Marks")
	require.NoError(t, h.timelines.Create(ctx, tl))
	m := testutil.NewTestMilestone(tl.ID, "Phase 1")
	require.NoError(t, h.milestones.Create(ctx, m))

	require.NoError(t, h.svc.MarkMilestone(ctx, m.ID, domain.MilestoneInProgress))
	require.NoError(t, h.svc.MarkMilestone(ctx, m.ID, domain.MilestoneCompleted))

	stored, err := h.milestones.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MilestoneCompleted, stored.Status)
	assert.Equal(t, 100, stored.Progress)

	// Completed is terminal.
	err = h.svc.MarkMilestone(ctx, m.ID, domain.MilestoneInProgress)
	assert.True(t, domain.IsValidation(err))
}

func TestTimelineService_Gantt(t *testing.T) {
	h := newTimelineHarness(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tl := testutil.NewTestTimeline("Chart", testutil.WithDates(
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, h.timelines.Create(ctx, tl))

	task := testutil.NewTestTask("Bar")
	task.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	task.DueDate = &due
	require.NoError(t, h.tasks.Create(ctx, task))
	m := testutil.NewTestMilestone(tl.ID, "Marker",
		testutil.WithTargetDate(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, h.milestones.Create(ctx, m))

	layout, err := h.svc.Gantt(ctx, tl.ID, gantt.GranularityMonth, now)
	require.NoError(t, err)
	require.Len(t, layout.Bars, 2)
	require.NotNil(t, layout.TodayPercent)
	assert.NotEmpty(t, layout.Ticks)
}
