package service

import (
	"context"
	"time"

	"github.com/tobiasvance/remedy/internal/contract"
	"github.com/tobiasvance/remedy/internal/domain"
	"github.com/tobiasvance/remedy/internal/gantt"
	"github.com/tobiasvance/remedy/internal/repository"
)

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter repository.TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	// SetStatus applies a lifecycle transition. Moving to in_progress is
	// refused while a blocks-type dependency is unresolved; completing a
	// task resolves every edge that depends on it.
	SetStatus(ctx context.Context, id string, to domain.TaskStatus) error
	SetProgress(ctx context.Context, id string, progress int) error
	AddDependency(ctx context.Context, taskID, dependsOnID string, depType domain.DependencyType) error
}

type AssignmentService interface {
	Suggest(ctx context.Context, taskID string, opts contract.SuggestOptions) (*contract.SuggestResult, error)
	Assign(ctx context.Context, taskID, userID string) error
}

// TimelineStatusReport is the read-model returned by TimelineService.Status.
// All derived fields are recomputed at read time; nothing is persisted.
type TimelineStatusReport struct {
	Timeline   *domain.Timeline
	Milestones []*domain.Milestone
	Tasks      []*domain.Task
	Analytics  domain.TimelineAnalytics
}

type TimelineService interface {
	Create(ctx context.Context, tl *domain.Timeline) error
	GetByID(ctx context.Context, id string) (*domain.Timeline, error)
	List(ctx context.Context) ([]*domain.Timeline, error)
	AddMilestone(ctx context.Context, m *domain.Milestone) error
	MarkMilestone(ctx context.Context, milestoneID string, to domain.MilestoneStatus) error
	// Status recomputes progress, critical path, delay sweep and health
	// in memory and returns the report without writing anything.
	Status(ctx context.Context, timelineID string, now time.Time) (*TimelineStatusReport, error)
	// Recompute runs the same derivation and persists the results.
	Recompute(ctx context.Context, timelineID string, now time.Time) (*TimelineStatusReport, error)
	Gantt(ctx context.Context, timelineID string, g gantt.Granularity, now time.Time) (*gantt.Layout, error)
}

type BulkService interface {
	GenerateFromGaps(ctx context.Context, filePath string, now time.Time) (*contract.BulkResult, error)
	GenerateFromRequest(ctx context.Context, req *contract.BulkTaskRequest, now time.Time) (*contract.BulkResult, error)
}

type UserService interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListCandidates(ctx context.Context, organizationID string) ([]domain.CandidateProfile, error)
}
