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

const timelineColumns = `id, name, framework, start_date, target_completion,
		status, current_progress, health_score, critical_path, created_at, updated_at`

// SQLiteTimelineRepo implements TimelineRepo using a SQLite database.
type SQLiteTimelineRepo struct {
	db db.DBTX
}

// NewSQLiteTimelineRepo creates a new SQLiteTimelineRepo.
func NewSQLiteTimelineRepo(db db.DBTX) *SQLiteTimelineRepo {
	return &SQLiteTimelineRepo{db: db}
}

func (r *SQLiteTimelineRepo) Create(ctx context.Context, tl *domain.Timeline) error {
	query := `INSERT INTO timelines (` + timelineColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		tl.ID,
		tl.Name,
		tl.Framework,
		tl.StartDate.Format(dateLayout),
		tl.TargetCompletion.Format(dateLayout),
		string(tl.Status),
		tl.CurrentProgress,
		tl.HealthScore,
		joinList(tl.CriticalPath),
		tl.CreatedAt.Format(time.RFC3339),
		tl.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting timeline: %w", err)
	}
	return nil
}

func (r *SQLiteTimelineRepo) GetByID(ctx context.Context, id string) (*domain.Timeline, error) {
	query := `SELECT ` + timelineColumns + ` FROM timelines WHERE id = ?`
	return scanTimeline(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteTimelineRepo) List(ctx context.Context) ([]*domain.Timeline, error) {
	query := `SELECT ` + timelineColumns + ` FROM timelines ORDER BY start_date, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing timelines: %w", err)
	}
	defer rows.Close()

	var timelines []*domain.Timeline
	for rows.Next() {
		tl, err := scanTimeline(rows)
		if err != nil {
			return nil, err
		}
		timelines = append(timelines, tl)
	}
	return timelines, rows.Err()
}

func (r *SQLiteTimelineRepo) Update(ctx context.Context, tl *domain.Timeline) error {
	query := `UPDATE timelines SET name = ?, framework = ?, start_date = ?,
		target_completion = ?, status = ?, current_progress = ?, health_score = ?,
		critical_path = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		tl.Name,
		tl.Framework,
		tl.StartDate.Format(dateLayout),
		tl.TargetCompletion.Format(dateLayout),
		string(tl.Status),
		tl.CurrentProgress,
		tl.HealthScore,
		joinList(tl.CriticalPath),
		tl.UpdatedAt.Format(time.RFC3339),
		tl.ID,
	)
	if err != nil {
		return fmt.Errorf("updating timeline: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking timeline update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("timeline %s: %w", tl.ID, domain.ErrNotFound)
	}
	return nil
}

func scanTimeline(row rowScanner) (*domain.Timeline, error) {
	var tl domain.Timeline
	var statusStr, pathStr string
	var startStr, targetStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&tl.ID, &tl.Name, &tl.Framework, &startStr, &targetStr,
		&statusStr, &tl.CurrentProgress, &tl.HealthScore, &pathStr,
		&createdAtStr, &updatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("timeline: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning timeline: %w", err)
	}

	tl.Status = domain.TimelineStatus(statusStr)
	tl.CriticalPath = splitList(pathStr)
	tl.StartDate, _ = time.Parse(dateLayout, startStr)
	tl.TargetCompletion, _ = time.Parse(dateLayout, targetStr)
	tl.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	tl.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)
	return &tl, nil
}
