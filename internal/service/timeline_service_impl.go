package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tobiasvance/remedy/internal/db"
	"github.com/tobiasvance/remedy/internal/domain"
	"github.com/tobiasvance/remedy/internal/gantt"
	"github.com/tobiasvance/remedy/internal/repository"
	"github.com/tobiasvance/remedy/internal/timeline"
)

type timelineService struct {
	timelines  repository.TimelineRepo
	milestones repository.MilestoneRepo
	tasks      repository.TaskRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewTimelineService(
	timelines repository.TimelineRepo,
	milestones repository.MilestoneRepo,
	tasks repository.TaskRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) TimelineService {
	return &timelineService{
		timelines:  timelines,
		milestones: milestones,
		tasks:      tasks,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *timelineService) Create(ctx context.Context, tl *domain.Timeline) error {
	if tl.ID == "" {
		tl.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	tl.CreatedAt = now
	tl.UpdatedAt = now
	if tl.Status == "" {
		tl.Status = domain.TimelineActive
	}
	tl.HealthScore = 100
	if err := tl.Validate(); err != nil {
		return err
	}
	return s.timelines.Create(ctx, tl)
}

func (s *timelineService) GetByID(ctx context.Context, id string) (*domain.Timeline, error) {
	return s.timelines.GetByID(ctx, id)
}

func (s *timelineService) List(ctx context.Context) ([]*domain.Timeline, error) {
	return s.timelines.List(ctx)
}

func (s *timelineService) AddMilestone(ctx context.Context, m *domain.Milestone) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if _, err := s.timelines.GetByID(ctx, m.TimelineID); err != nil {
		return err
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Status == "" {
		m.Status = domain.MilestonePending
	}
	if m.Type == "" {
		m.Type = domain.MilestoneFramework
	}
	return s.milestones.Create(ctx, m)
}

func (s *timelineService) MarkMilestone(ctx context.Context, milestoneID string, to domain.MilestoneStatus) error {
	m, err := s.milestones.GetByID(ctx, milestoneID)
	if err != nil {
		return err
	}
	if err := timeline.MarkMilestoneStatus(m, to, time.Now().UTC()); err != nil {
		return err
	}
	return s.milestones.Update(ctx, m)
}

func (s *timelineService) Status(ctx context.Context, timelineID string, now time.Time) (*TimelineStatusReport, error) {
	tl, milestones, tasks, err := s.loadSnapshot(ctx, timelineID)
	if err != nil {
		return nil, err
	}
	report := deriveReport(tl, milestones, tasks, now)
	return report, nil
}

func (s *timelineService) Recompute(ctx context.Context, timelineID string, now time.Time) (report *TimelineStatusReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"timeline_id": timelineID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:     "recompute-timeline",
			Duration: time.Since(startedAt),
			Success:  err == nil,
			Err:      err,
			Fields:   fields,
		})
	}()

	tl, milestones, tasks, err := s.loadSnapshot(ctx, timelineID)
	if err != nil {
		return nil, err
	}
	report = deriveReport(tl, milestones, tasks, now)
	fields["progress"] = tl.CurrentProgress
	fields["health"] = tl.HealthScore
	fields["critical_path"] = len(tl.CriticalPath)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTimelines := repository.NewSQLiteTimelineRepo(tx)
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)

		tl.UpdatedAt = now
		if err := txTimelines.Update(ctx, tl); err != nil {
			return err
		}
		for _, m := range report.Milestones {
			if err := txMilestones.Update(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *timelineService) Gantt(ctx context.Context, timelineID string, g gantt.Granularity, now time.Time) (*gantt.Layout, error) {
	tl, milestones, tasks, err := s.loadSnapshot(ctx, timelineID)
	if err != nil {
		return nil, err
	}
	// Project against the freshly derived critical path.
	deriveReport(tl, milestones, tasks, now)
	return gantt.Project(*tl, derefTasks(tasks), derefMilestones(milestones), g, now)
}

func (s *timelineService) loadSnapshot(ctx context.Context, timelineID string) (*domain.Timeline, []*domain.Milestone, []*domain.Task, error) {
	tl, err := s.timelines.GetByID(ctx, timelineID)
	if err != nil {
		return nil, nil, nil, err
	}
	milestones, err := s.milestones.ListByTimeline(ctx, timelineID)
	if err != nil {
		return nil, nil, nil, err
	}
	tasks, err := s.tasks.Find(ctx, repository.TaskFilter{Framework: tl.Framework})
	if err != nil {
		return nil, nil, nil, err
	}
	return tl, milestones, tasks, nil
}

// deriveReport recomputes every derived field in place: delay sweep,
// progress roll-up, critical path, then health over the updated state.
func deriveReport(tl *domain.Timeline, milestones []*domain.Milestone, tasks []*domain.Task, now time.Time) *TimelineStatusReport {
	ms := derefMilestones(milestones)
	ts := derefTasks(tasks)

	timeline.SweepDelayed(ms, now)
	for i, m := range milestones {
		*m = ms[i]
	}

	timeline.RecomputeProgress(tl, ts, ms)
	timeline.RecomputeCriticalPath(tl, timeline.CriticalPathInput{
		Tasks:      ts,
		Milestones: ms,
		Now:        now,
	})

	in := timeline.HealthInput{
		Now:                  now,
		StartDate:            tl.StartDate,
		TargetCompletion:     tl.TargetCompletion,
		ProgressPct:          tl.CurrentProgress,
		DelayedMilestones:    timeline.CountDelayed(ms, now),
		BlockedCriticalTasks: timeline.CountBlockedCritical(tl, ts),
	}
	tl.HealthScore = timeline.ComputeHealth(in)

	return &TimelineStatusReport{
		Timeline:   tl,
		Milestones: milestones,
		Tasks:      tasks,
		Analytics:  buildAnalytics(ts, in),
	}
}
