package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tobiasvance/remedy/internal/db"
	"github.com/tobiasvance/remedy/internal/domain"
	"github.com/tobiasvance/remedy/internal/repository"
)

type taskService struct {
	tasks repository.TaskRepo
	deps  repository.DependencyRepo
	uow   db.UnitOfWork
}

func NewTaskService(tasks repository.TaskRepo, deps repository.DependencyRepo, uow db.UnitOfWork) TaskService {
	return &taskService{tasks: tasks, deps: deps, uow: uow}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.TaskDraft
	}
	if t.Type == "" {
		t.Type = domain.TaskRemediation
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if err := t.Validate(); err != nil {
		return err
	}
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context, filter repository.TaskFilter) ([]*domain.Task, error) {
	return s.tasks.Find(ctx, filter)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) SetStatus(ctx context.Context, id string, to domain.TaskStatus) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		t, err := txTasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !t.CanTransition(to) {
			return &domain.ValidationError{
				Field: "status",
				Msg:   "cannot move from " + string(t.Status) + " to " + string(to),
			}
		}
		if to == domain.TaskInProgress {
			blocked, err := txDeps.HasUnresolvedBlockers(ctx, t.ID)
			if err != nil {
				return err
			}
			if blocked {
				return &domain.ValidationError{
					Field: "status",
					Msg:   "task has unresolved blocking dependencies",
				}
			}
		}

		t.ApplyStatus(to, time.Now().UTC())
		if err := txTasks.Update(ctx, t); err != nil {
			return err
		}

		// Completing a task unblocks everything waiting on it.
		if to == domain.TaskCompleted {
			if _, err := txDeps.ResolveWhereDependsOn(ctx, t.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *taskService) SetProgress(ctx context.Context, id string, progress int) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	t.Progress = progress
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) AddDependency(ctx context.Context, taskID, dependsOnID string, depType domain.DependencyType) error {
	if taskID == dependsOnID {
		return &domain.ValidationError{Field: "depends_on", Msg: "task cannot depend on itself"}
	}
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		return err
	}
	if _, err := s.tasks.GetByID(ctx, dependsOnID); err != nil {
		return err
	}
	return s.deps.Upsert(ctx, taskID, domain.TaskDependency{
		DependsOnID: dependsOnID,
		Type:        depType,
		Status:      domain.DependencyActive,
	})
}
