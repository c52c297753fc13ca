package repository

import (
	"context"
	"fmt"

	"github.com/tobiasvance/remedy/internal/db"
	"github.com/tobiasvance/remedy/internal/domain"
)

// SQLiteDependencyRepo implements DependencyRepo using a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(db db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: db}
}

func (r *SQLiteDependencyRepo) Upsert(ctx context.Context, taskID string, dep domain.TaskDependency) error {
	query := `INSERT INTO task_dependencies (task_id, depends_on_id, type, status)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(task_id, depends_on_id) DO UPDATE SET type = excluded.type, status = excluded.status`
	_, err := r.db.ExecContext(ctx, query, taskID, dep.DependsOnID, string(dep.Type), string(dep.Status))
	if err != nil {
		return fmt.Errorf("upserting task dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) ListForTask(ctx context.Context, taskID string) ([]domain.TaskDependency, error) {
	query := `SELECT depends_on_id, type, status FROM task_dependencies
		WHERE task_id = ? ORDER BY depends_on_id`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing task dependencies: %w", err)
	}
	defer rows.Close()

	var deps []domain.TaskDependency
	for rows.Next() {
		var dep domain.TaskDependency
		var typeStr, statusStr string
		if err := rows.Scan(&dep.DependsOnID, &typeStr, &statusStr); err != nil {
			return nil, fmt.Errorf("scanning task dependency: %w", err)
		}
		dep.Type = domain.DependencyType(typeStr)
		dep.Status = domain.DependencyStatus(statusStr)
		deps = append(deps, dep)
	}
	return deps, rows.Err()
}

func (r *SQLiteDependencyRepo) Resolve(ctx context.Context, taskID, dependsOnID string) error {
	query := `UPDATE task_dependencies SET status = ? WHERE task_id = ? AND depends_on_id = ?`
	res, err := r.db.ExecContext(ctx, query, string(domain.DependencyResolved), taskID, dependsOnID)
	if err != nil {
		return fmt.Errorf("resolving task dependency: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking dependency resolve: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("dependency %s -> %s: %w", taskID, dependsOnID, domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteDependencyRepo) ResolveWhereDependsOn(ctx context.Context, dependsOnID string) (int, error) {
	query := `UPDATE task_dependencies SET status = ? WHERE depends_on_id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(domain.DependencyResolved), dependsOnID, string(domain.DependencyActive))
	if err != nil {
		return 0, fmt.Errorf("resolving downstream dependencies: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking downstream resolve: %w", err)
	}
	return int(affected), nil
}

func (r *SQLiteDependencyRepo) HasUnresolvedBlockers(ctx context.Context, taskID string) (bool, error) {
	query := `SELECT COUNT(*) FROM task_dependencies
		WHERE task_id = ? AND type = ? AND status = ?`
	var count int
	err := r.db.QueryRowContext(ctx, query, taskID,
		string(domain.DependencyBlocks), string(domain.DependencyActive)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("counting unresolved blockers: %w", err)
	}
	return count > 0, nil
}
