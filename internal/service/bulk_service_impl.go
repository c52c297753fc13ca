package service

import (
	"context"
	"time"

	"github.com/tobiasvance/remedy/internal/assign"
	"github.com/tobiasvance/remedy/internal/contract"
	"github.com/tobiasvance/remedy/internal/db"
	"github.com/tobiasvance/remedy/internal/domain"
	"github.com/tobiasvance/remedy/internal/generation"
	"github.com/tobiasvance/remedy/internal/importer"
	"github.com/tobiasvance/remedy/internal/repository"
)

type bulkService struct {
	users    repository.UserRepo
	uow      db.UnitOfWork
	orgID    string
	observer UseCaseObserver
}

func NewBulkService(
	users repository.UserRepo,
	uow db.UnitOfWork,
	orgID string,
	observers ...UseCaseObserver,
) BulkService {
	return &bulkService{
		users:    users,
		uow:      uow,
		orgID:    orgID,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *bulkService) GenerateFromGaps(ctx context.Context, filePath string, now time.Time) (*contract.BulkResult, error) {
	req, err := importer.ParseFile(filePath)
	if err != nil {
		return nil, err
	}
	return s.GenerateFromRequest(ctx, req, now)
}

func (s *bulkService) GenerateFromRequest(ctx context.Context, req *contract.BulkTaskRequest, now time.Time) (result *contract.BulkResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"framework": req.Template.Framework,
		"gaps":      len(req.Gaps),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:     "generate-from-gaps",
			Duration: time.Since(startedAt),
			Success:  err == nil,
			Err:      err,
			Fields:   fields,
		})
	}()

	if errs := importer.ValidateRequest(req); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	var opts []generation.Option
	if req.Template.AutoAssign {
		assignFn, fnErr := s.buildAutoAssign(ctx)
		if fnErr != nil {
			return nil, fnErr
		}
		opts = append(opts, generation.WithAutoAssign(assignFn))
	}

	res := generation.Generate(*req, now, opts...)
	fields["tasks"] = res.Summary.TotalTasks
	fields["rejected"] = res.Summary.Rejected
	fields["auto_assigned"] = res.Summary.AutoAssigned

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		for i := range res.Tasks {
			if err := txTasks.Create(ctx, &res.Tasks[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// buildAutoAssign wires the scorer as the generator's assignee picker. The
// candidate set is fetched once per batch; per-task committed hours are bumped
// locally so one run does not pile every task onto the same person.
func (s *bulkService) buildAutoAssign(ctx context.Context) (generation.AssignFunc, error) {
	candidates, err := s.users.ListCandidates(ctx, s.orgID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(candidates))
	for i, c := range candidates {
		byID[c.ID] = i
	}

	opts := contract.SuggestOptions{
		ConsiderWorkload:     true,
		ConsiderSkills:       true,
		ConsiderAvailability: true,
		MaxSuggestions:       1,
	}
	return func(task domain.Task) (string, bool) {
		res := assign.Suggest(task, candidates, opts, task.CreatedAt)
		rec := res.Recommendation
		if rec.UserID == "" || rec.Confidence == contract.ConfidenceLow {
			return "", false
		}
		if i, ok := byID[rec.UserID]; ok {
			candidates[i].ActiveTaskCount++
			candidates[i].CommittedHours += task.EstimatedHours
		}
		return rec.UserID, true
	}, nil
}
