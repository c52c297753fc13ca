package contract

import "github.com/tobiasvance/remedy/internal/domain"

// TaskTemplate carries the shared fields applied to every task generated
// from a gap list.
type TaskTemplate struct {
	Framework         string
	DefaultPriority   domain.Priority
	DueDateOffsetDays int
	AutoAssign        bool
	BusinessUnit      string
}

// ComplianceGap is one identified gap to be turned into a task.
// Priority, when empty, falls back to the template default.
type ComplianceGap struct {
	ControlID       string
	GapDescription  string
	RemediationType domain.RemediationType
	EstimatedEffort domain.EffortLevel
	Priority        domain.Priority
}

// BulkTaskRequest is the transient input to bulk generation; it is never
// persisted as its own entity.
type BulkTaskRequest struct {
	Template TaskTemplate
	Gaps     []ComplianceGap
}

// RejectedGap reports one gap that was skipped during generation.
type RejectedGap struct {
	Index     int
	ControlID string
	Reason    string
}

// BulkSummary aggregates a generation run in a single pass.
type BulkSummary struct {
	TotalTasks               int
	TotalEstimatedHours      float64
	AutoAssigned             int
	RequiresManualAssignment int
	HighPriority             int // critical + high
	MediumPriority           int
	LowPriority              int
	Rejected                 int
}

// BulkResult is the outcome of one Generate call.
type BulkResult struct {
	Tasks    []domain.Task
	Rejected []RejectedGap
	Summary  BulkSummary
}
