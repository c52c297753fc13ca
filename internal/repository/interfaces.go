package repository

import (
	"context"

	"github.com/tobiasvance/remedy/internal/domain"
)

// TaskFilter narrows task listings. Zero values mean "any".
type TaskFilter struct {
	Framework  string
	Status     domain.TaskStatus
	AssignedTo string
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Find(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
}

type DependencyRepo interface {
	Upsert(ctx context.Context, taskID string, dep domain.TaskDependency) error
	ListForTask(ctx context.Context, taskID string) ([]domain.TaskDependency, error)
	Resolve(ctx context.Context, taskID, dependsOnID string) error
	// ResolveWhereDependsOn resolves every edge pointing at the given task,
	// returning how many were changed. Called when the task completes.
	ResolveWhereDependsOn(ctx context.Context, dependsOnID string) (int, error)
	HasUnresolvedBlockers(ctx context.Context, taskID string) (bool, error)
}

type TimelineRepo interface {
	Create(ctx context.Context, tl *domain.Timeline) error
	GetByID(ctx context.Context, id string) (*domain.Timeline, error)
	List(ctx context.Context) ([]*domain.Timeline, error)
	Update(ctx context.Context, tl *domain.Timeline) error
}

type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	ListByTimeline(ctx context.Context, timelineID string) ([]*domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
}

// DirectoryProvider supplies candidate profiles with their current workload
// signals. The engine consumes this view; it never writes through it.
type DirectoryProvider interface {
	ListCandidates(ctx context.Context, organizationID string) ([]domain.CandidateProfile, error)
}

type UserRepo interface {
	DirectoryProvider
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
