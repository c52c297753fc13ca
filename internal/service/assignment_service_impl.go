package service

import (
	"context"
	"time"

	"github.com/tobiasvance/remedy/internal/assign"
	"github.com/tobiasvance/remedy/internal/contract"
	"github.com/tobiasvance/remedy/internal/domain"
	"github.com/tobiasvance/remedy/internal/repository"
)

type assignmentService struct {
	tasks    repository.TaskRepo
	users    repository.UserRepo
	orgID    string
	observer UseCaseObserver
}

func NewAssignmentService(
	tasks repository.TaskRepo,
	users repository.UserRepo,
	orgID string,
	observers ...UseCaseObserver,
) AssignmentService {
	return &assignmentService{
		tasks:    tasks,
		users:    users,
		orgID:    orgID,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *assignmentService) Suggest(ctx context.Context, taskID string, opts contract.SuggestOptions) (result *contract.SuggestResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": taskID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:     "suggest-assignee",
			Duration: time.Since(startedAt),
			Success:  err == nil,
			Err:      err,
			Fields:   fields,
		})
	}()

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.users.ListCandidates(ctx, s.orgID)
	if err != nil {
		return nil, err
	}
	fields["candidates"] = len(candidates)

	res := assign.Suggest(*task, candidates, opts, time.Now().UTC())
	fields["suggestions"] = len(res.Suggestions)
	return &res, nil
}

func (s *assignmentService) Assign(ctx context.Context, taskID, userID string) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}

	now := time.Now().UTC()
	task.AssignedTo = userID
	if task.Status == domain.TaskDraft || task.Status == domain.TaskBlocked {
		if !task.CanTransition(domain.TaskAssigned) {
			return &domain.ValidationError{
				Field: "status",
				Msg:   "cannot assign a task in status " + string(task.Status),
			}
		}
		task.ApplyStatus(domain.TaskAssigned, now)
	} else {
		task.UpdatedAt = now
	}
	return s.tasks.Update(ctx, task)
}
