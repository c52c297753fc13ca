package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tobiasvance/remedy/internal/db"
	"github.com/tobiasvance/remedy/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, title, description, type, framework, control_id,
		priority, estimated_hours, assigned_to, status, due_date, progress, tags,
		created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		string(t.Type),
		t.Framework,
		t.ControlID,
		string(t.Priority),
		t.EstimatedHours,
		nullableStr(t.AssignedTo),
		string(t.Status),
		nullableTimeToString(t.DueDate, time.RFC3339),
		t.Progress,
		joinList(t.Tags),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	t, err := r.scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	deps, err := r.loadDependencies(ctx, []string{t.ID})
	if err != nil {
		return nil, err
	}
	t.Dependencies = deps[t.ID]
	return t, nil
}

func (r *SQLiteTaskRepo) Find(ctx context.Context, filter TaskFilter) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`
	var args []any
	if filter.Framework != "" {
		query += ` AND framework = ?`
		args = append(args, filter.Framework)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.AssignedTo != "" {
		query += ` AND assigned_to = ?`
		args = append(args, filter.AssignedTo)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	var ids []string
	for rows.Next() {
		t, err := r.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	deps, err := r.loadDependencies(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		t.Dependencies = deps[t.ID]
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, type = ?, framework = ?,
		control_id = ?, priority = ?, estimated_hours = ?, assigned_to = ?, status = ?,
		due_date = ?, progress = ?, tags = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		string(t.Type),
		t.Framework,
		t.ControlID,
		string(t.Priority),
		t.EstimatedHours,
		nullableStr(t.AssignedTo),
		string(t.Status),
		nullableTimeToString(t.DueDate, time.RFC3339),
		t.Progress,
		joinList(t.Tags),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking task update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task %s: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteTaskRepo) scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var typeStr, priorityStr, statusStr, tagsStr string
	var assignedTo, dueDateStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &typeStr, &t.Framework, &t.ControlID,
		&priorityStr, &t.EstimatedHours, &assignedTo, &statusStr, &dueDateStr,
		&t.Progress, &tagsStr, &createdAtStr, &updatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Type = domain.TaskType(typeStr)
	t.Priority = domain.Priority(priorityStr)
	t.Status = domain.TaskStatus(statusStr)
	t.Tags = splitList(tagsStr)
	if assignedTo.Valid {
		t.AssignedTo = assignedTo.String
	}
	t.DueDate = parseNullableTime(dueDateStr, time.RFC3339)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)
	return &t, nil
}

// loadDependencies fetches dependency edges for the given task ids in one query.
func (r *SQLiteTaskRepo) loadDependencies(ctx context.Context, ids []string) (map[string][]domain.TaskDependency, error) {
	result := make(map[string][]domain.TaskDependency, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT task_id, depends_on_id, type, status FROM task_dependencies
		WHERE task_id IN (?` + repeatPlaceholder(len(ids)-1) + `)
		ORDER BY task_id, depends_on_id`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading task dependencies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID string
		var dep domain.TaskDependency
		var typeStr, statusStr string
		if err := rows.Scan(&taskID, &dep.DependsOnID, &typeStr, &statusStr); err != nil {
			return nil, fmt.Errorf("scanning task dependency: %w", err)
		}
		dep.Type = domain.DependencyType(typeStr)
		dep.Status = domain.DependencyStatus(statusStr)
		result[taskID] = append(result[taskID], dep)
	}
	return result, rows.Err()
}

func repeatPlaceholder(n int) string {
	var s string
	for i := 0; i < n; i++ {
		s += ", ?"
	}
	return s
}
