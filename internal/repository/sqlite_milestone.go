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

const milestoneColumns = `id, timeline_id, name, type, target_date, status,
		progress, dependencies, success_criteria, created_at, updated_at`

// SQLiteMilestoneRepo implements MilestoneRepo using a SQLite database.
type SQLiteMilestoneRepo struct {
	db db.DBTX
}

// NewSQLiteMilestoneRepo creates a new SQLiteMilestoneRepo.
func NewSQLiteMilestoneRepo(db db.DBTX) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: db}
}

func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	query := `INSERT INTO milestones (` + milestoneColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.TimelineID,
		m.Name,
		string(m.Type),
		m.TargetDate.Format(dateLayout),
		string(m.Status),
		m.Progress,
		joinList(m.Dependencies),
		m.SuccessCriteria,
		m.CreatedAt.Format(time.RFC3339),
		m.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = ?`
	return scanMilestone(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteMilestoneRepo) ListByTimeline(ctx context.Context, timelineID string) ([]*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones
		WHERE timeline_id = ? ORDER BY target_date, id`
	rows, err := r.db.QueryContext(ctx, query, timelineID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var milestones []*domain.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

func (r *SQLiteMilestoneRepo) Update(ctx context.Context, m *domain.Milestone) error {
	query := `UPDATE milestones SET name = ?, type = ?, target_date = ?, status = ?,
		progress = ?, dependencies = ?, success_criteria = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.Name,
		string(m.Type),
		m.TargetDate.Format(dateLayout),
		string(m.Status),
		m.Progress,
		joinList(m.Dependencies),
		m.SuccessCriteria,
		m.UpdatedAt.Format(time.RFC3339),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating milestone: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking milestone update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("milestone %s: %w", m.ID, domain.ErrNotFound)
	}
	return nil
}

func scanMilestone(row rowScanner) (*domain.Milestone, error) {
	var m domain.Milestone
	var typeStr, statusStr, depsStr string
	var targetStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&m.ID, &m.TimelineID, &m.Name, &typeStr, &targetStr, &statusStr,
		&m.Progress, &depsStr, &m.SuccessCriteria, &createdAtStr, &updatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("milestone: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning milestone: %w", err)
	}

	m.Type = domain.MilestoneType(typeStr)
	m.Status = domain.MilestoneStatus(statusStr)
	m.Dependencies = splitList(depsStr)
	m.TargetDate, _ = time.Parse(dateLayout, targetStr)
	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	m.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)
	return &m, nil
}
