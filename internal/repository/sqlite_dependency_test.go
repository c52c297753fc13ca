package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobiasvance/remedy/internal/domain"
	"github.com/tobiasvance/remedy/internal/testutil"
)

func seedTwoTasks(t *testing.T, repo *SQLiteTaskRepo) (blocker, dependent *domain.Task) {
	t.Helper()
	ctx := context.Background()
	blocker = testutil.NewTestTask("Blocker")
	dependent = testutil.NewTestTask("Dependent")
	require.NoError(t, repo.Create(ctx, blocker))
	require.NoError(t, repo.Create(ctx, dependent))
	return blocker, dependent
}

func TestDependencyRepo_UpsertAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	taskRepo := NewSQLiteTaskRepo(db)
	repo := NewSQLiteDependencyRepo(db)
	ctx := context.Background()

	blocker, dependent := seedTwoTasks(t, taskRepo)
	require.NoError(t, repo.Upsert(ctx, dependent.ID, domain.TaskDependency{
		DependsOnID: blocker.ID,
		Type:        domain.DependencyBlocks,
		Status:      domain.DependencyActive,
	}))

	deps, err := repo.ListForTask(ctx, dependent.ID)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, blocker.ID, deps[0].DependsOnID)
	assert.Equal(t, domain.DependencyBlocks, deps[0].Type)

	// Upsert with a new type overwrites the edge instead of duplicating it.
	require.NoError(t, repo.Upsert(ctx, dependent.ID, domain.TaskDependency{
		DependsOnID: blocker.ID,
		Type:        domain.DependencyInforms,
		Status:      domain.DependencyActive,
	}))
	deps, err = repo.ListForTask(ctx, dependent.ID)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, domain.DependencyInforms, deps[0].Type)
}

func TestDependencyRepo_Resolve(t *testing.T) {
	db := testutil.NewTestDB(t)
	taskRepo := NewSQLiteTaskRepo(db)
	repo := NewSQLiteDependencyRepo(db)
	ctx := context.Background()

	blocker, dependent := seedTwoTasks(t, taskRepo)
	require.NoError(t, repo.Upsert(ctx, dependent.ID, domain.TaskDependency{
		DependsOnID: blocker.ID,
		Type:        domain.DependencyBlocks,
		Status:      domain.DependencyActive,
	}))

	blocked, err := repo.HasUnresolvedBlockers(ctx, dependent.ID)
	require.NoError(t, err)
	assert.True(t, blocked)

	require.NoError(t, repo.Resolve(ctx, dependent.ID, blocker.ID))

	blocked, err = repo.HasUnresolvedBlockers(ctx, dependent.ID)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestDependencyRepo_Resolve_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDependencyRepo(db)
	ctx := context.Background()

	err := repo.Resolve(ctx, "a", "b")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDependencyRepo_NonBlockingEdgesDoNotBlock(t *testing.T) {
	db := testutil.NewTestDB(t)
	taskRepo := NewSQLiteTaskRepo(db)
	repo := NewSQLiteDependencyRepo(db)
	ctx := context.Background()

	blocker, dependent := seedTwoTasks(t, taskRepo)
	require.NoError(t, repo.Upsert(ctx, dependent.ID, domain.TaskDependency{
		DependsOnID: blocker.ID,
		Type:        domain.DependencyInforms,
		Status:      domain.DependencyActive,
	}))

	blocked, err := repo.HasUnresolvedBlockers(ctx, dependent.ID)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestDependencyRepo_CascadeOnTaskDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	taskRepo := NewSQLiteTaskRepo(db)
	repo := NewSQLiteDependencyRepo(db)
	ctx := context.Background()

	blocker, dependent := seedTwoTasks(t, taskRepo)
	require.NoError(t, repo.Upsert(ctx, dependent.ID, domain.TaskDependency{
		DependsOnID: blocker.ID,
		Type:        domain.DependencyBlocks,
		Status:      domain.DependencyActive,
	}))

	_, err := db.Exec(`DELETE FROM tasks WHERE id = ?`, dependent.ID)
	require.NoError(t, err)

	deps, err := repo.ListForTask(ctx, dependent.ID)
	require.NoError(t, err)
	assert.Empty(t, deps)
}
