package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/tobiasvance/remedy/internal/domain"
)

// Task options
type TaskOption func(*domain.Task)

func WithTaskType(tt domain.TaskType) TaskOption {
	return func(t *domain.Task) {
		t.Type = tt
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithFramework(framework, controlID string) TaskOption {
	return func(t *domain.Task) {
		t.Framework = framework
		t.ControlID = controlID
	}
}

func WithEstimatedHours(h float64) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedHours = h
	}
}

func WithAssignee(userID string) TaskOption {
	return func(t *domain.Task) {
		t.AssignedTo = userID
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithProgress(p int) TaskOption {
	return func(t *domain.Task) {
		t.Progress = p
	}
}

func WithTags(tags ...string) TaskOption {
	return func(t *domain.Task) {
		t.Tags = tags
	}
}

func WithDependency(dependsOnID string, dt domain.DependencyType) TaskOption {
	return func(t *domain.Task) {
		t.Dependencies = append(t.Dependencies, domain.TaskDependency{
			DependsOnID: dependsOnID,
			Type:        dt,
			Status:      domain.DependencyActive,
		})
	}
}

func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:             uuid.New().String(),
		Title:          title,
		Type:           domain.TaskRemediation,
		Priority:       domain.PriorityMedium,
		EstimatedHours: 8,
		Status:         domain.TaskDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Timeline options
type TimelineOption func(*domain.Timeline)

func WithTimelineStatus(s domain.TimelineStatus) TimelineOption {
	return func(tl *domain.Timeline) {
		tl.Status = s
	}
}

func WithTimelineFramework(framework string) TimelineOption {
	return func(tl *domain.Timeline) {
		tl.Framework = framework
	}
}

func WithDates(start, target time.Time) TimelineOption {
	return func(tl *domain.Timeline) {
		tl.StartDate = start
		tl.TargetCompletion = target
	}
}

func NewTestTimeline(name string, opts ...TimelineOption) *domain.Timeline {
	now := time.Now().UTC()
	tl := &domain.Timeline{
		ID:               uuid.New().String(),
		Name:             name,
		StartDate:        now.AddDate(0, -1, 0),
		TargetCompletion: now.AddDate(0, 2, 0),
		Status:           domain.TimelineActive,
		HealthScore:      100,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(tl)
	}
	return tl
}

// Milestone options
type MilestoneOption func(*domain.Milestone)

func WithMilestoneType(mt domain.MilestoneType) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Type = mt
	}
}

func WithMilestoneStatus(s domain.MilestoneStatus) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Status = s
	}
}

func WithTargetDate(d time.Time) MilestoneOption {
	return func(m *domain.Milestone) {
		m.TargetDate = d
	}
}

func WithMilestoneDeps(taskIDs ...string) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Dependencies = taskIDs
	}
}

func NewTestMilestone(timelineID, name string, opts ...MilestoneOption) *domain.Milestone {
	now := time.Now().UTC()
	m := &domain.Milestone{
		ID:         uuid.New().String(),
		TimelineID: timelineID,
		Name:       name,
		Type:       domain.MilestoneFramework,
		TargetDate: now.AddDate(0, 1, 0),
		Status:     domain.MilestonePending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// User options
type UserOption func(*domain.User)

func WithSkills(skills ...string) UserOption {
	return func(u *domain.User) {
		u.Skills = skills
	}
}

func WithCapacity(hours float64) UserOption {
	return func(u *domain.User) {
		u.WeeklyCapacityHours = hours
	}
}

func WithPerformance(score int) UserOption {
	return func(u *domain.User) {
		u.PerformanceScore = score
	}
}

func WithUnavailable() UserOption {
	return func(u *domain.User) {
		u.Available = false
	}
}

func NewTestUser(email, orgID string, opts ...UserOption) *domain.User {
	now := time.Now().UTC()
	u := &domain.User{
		ID:                  uuid.New().String(),
		Email:               email,
		DisplayName:         email,
		OrganizationID:      orgID,
		WeeklyCapacityHours: 40,
		PerformanceScore:    50,
		Available:           true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}
