package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tobiasvance/remedy/internal/assign"
	"github.com/tobiasvance/remedy/internal/domain"
	"github.com/tobiasvance/remedy/internal/repository"
)

type userService struct {
	users repository.UserRepo
}

func NewUserService(users repository.UserRepo) UserService {
	return &userService{users: users}
}

func (s *userService) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Email == "" {
		return &domain.ValidationError{Field: "email", Msg: "is required"}
	}
	if u.DisplayName == "" {
		u.DisplayName = u.Email
	}
	if u.WeeklyCapacityHours <= 0 {
		u.WeeklyCapacityHours = assign.DefaultWeeklyCapacityHours
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	return s.users.Create(ctx, u)
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) ListCandidates(ctx context.Context, organizationID string) ([]domain.CandidateProfile, error) {
	return s.users.ListCandidates(ctx, organizationID)
}
