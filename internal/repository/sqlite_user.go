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

const userColumns = `id, email, display_name, organization_id, skills,
		weekly_capacity_hours, performance_score, available, created_at, updated_at`

// SQLiteUserRepo implements UserRepo using a SQLite database. Its
// ListCandidates joins the tasks table so candidate profiles carry live
// workload signals.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(db db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: db}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Email,
		u.DisplayName,
		u.OrganizationID,
		joinList(u.Skills),
		u.WeeklyCapacityHours,
		u.PerformanceScore,
		boolToInt(u.Available),
		u.CreatedAt.Format(time.RFC3339),
		u.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	var u domain.User
	var skillsStr string
	var available int
	var createdAtStr, updatedAtStr string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.OrganizationID, &skillsStr,
		&u.WeeklyCapacityHours, &u.PerformanceScore, &available,
		&createdAtStr, &updatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	u.Skills = splitList(skillsStr)
	u.Available = intToBool(available)
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	u.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)
	return &u, nil
}

// ListCandidates returns the organization's members with their current
// workload aggregated from active tasks, ordered by id for deterministic
// downstream scoring.
func (r *SQLiteUserRepo) ListCandidates(ctx context.Context, organizationID string) ([]domain.CandidateProfile, error) {
	query := `SELECT u.id, u.email, u.display_name, u.skills,
			u.weekly_capacity_hours, u.performance_score, u.available,
			COUNT(t.id), COALESCE(SUM(t.estimated_hours), 0)
		FROM users u
		LEFT JOIN tasks t ON t.assigned_to = u.id
			AND t.status IN ('assigned', 'in_progress', 'review')
		WHERE u.organization_id = ?
		GROUP BY u.id
		ORDER BY u.id`
	rows, err := r.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("listing candidates: %w", err)
	}
	defer rows.Close()

	var candidates []domain.CandidateProfile
	for rows.Next() {
		var c domain.CandidateProfile
		var skillsStr string
		var available int
		if err := rows.Scan(
			&c.ID, &c.Email, &c.DisplayName, &skillsStr,
			&c.WeeklyCapacityHours, &c.PerformanceScore, &available,
			&c.ActiveTaskCount, &c.CommittedHours,
		); err != nil {
			return nil, fmt.Errorf("scanning candidate: %w", err)
		}
		c.Skills = splitList(skillsStr)
		c.Available = intToBool(available)
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
