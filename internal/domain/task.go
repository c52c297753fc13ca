package domain

import "time"

// TaskDependency is a directed edge from a task to the task it depends on.
// The edge is owned by the dependent task; DependsOnID must reference an
// existing task (enforced by the store).
type TaskDependency struct {
	DependsOnID string
	Type        DependencyType
	Status      DependencyStatus
}

// Unresolved reports whether the dependency still gates the owning task.
func (d TaskDependency) Unresolved() bool {
	return d.Type == DependencyBlocks && d.Status == DependencyActive
}

type Task struct {
	ID          string
	Title       string
	Description string
	Type        TaskType
	Framework   string
	ControlID   string
	Priority    Priority
	// EstimatedHours is 0 when no estimate has been recorded.
	EstimatedHours float64
	AssignedTo     string
	Status         TaskStatus
	DueDate        *time.Time
	Progress       int // 0-100
	Tags           []string
	Dependencies   []TaskDependency
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// taskTransitions holds the allowed forward transitions per status.
// Blocked is reachable from any non-terminal state and returns to its
// prior working state via assigned/in_progress.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskDraft:      {TaskAssigned, TaskBlocked},
	TaskAssigned:   {TaskInProgress, TaskBlocked},
	TaskInProgress: {TaskInReview, TaskCompleted, TaskBlocked},
	TaskInReview:   {TaskInProgress, TaskCompleted, TaskBlocked},
	TaskBlocked:    {TaskAssigned, TaskInProgress},
	TaskCompleted:  {},
}

// CanTransition reports whether moving the task to the given status is a
// legal lifecycle step. It does not consult dependencies; the service layer
// gates in_progress on unresolved blocking dependencies.
func (t *Task) CanTransition(to TaskStatus) bool {
	for _, allowed := range taskTransitions[t.Status] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ApplyStatus moves the task to the given status and keeps the
// completed => progress 100 invariant.
func (t *Task) ApplyStatus(to TaskStatus, now time.Time) {
	t.Status = to
	if to == TaskCompleted {
		t.Progress = 100
	}
	t.UpdatedAt = now
}

// HasUnresolvedBlocker reports whether any blocks-type dependency is still active.
func (t *Task) HasUnresolvedBlocker() bool {
	for _, d := range t.Dependencies {
		if d.Unresolved() {
			return true
		}
	}
	return false
}

// IsActive reports whether the task counts toward an assignee's workload.
func (t *Task) IsActive() bool {
	switch t.Status {
	case TaskAssigned, TaskInProgress, TaskInReview:
		return true
	}
	return false
}

// Validate checks field-level invariants on the task.
func (t *Task) Validate() error {
	if t.Title == "" {
		return &ValidationError{Field: "title", Msg: "is required"}
	}
	if t.EstimatedHours < 0 {
		return &ValidationError{Field: "estimated_hours", Msg: "must not be negative"}
	}
	if t.Progress < 0 || t.Progress > 100 {
		return &ValidationError{Field: "progress", Msg: "must be between 0 and 100"}
	}
	if t.Status == TaskCompleted && t.Progress != 100 {
		return &ValidationError{Field: "progress", Msg: "completed task must be at 100"}
	}
	return nil
}
