package domain

type TaskType string

const (
	TaskEvidence    TaskType = "evidence"
	TaskRemediation TaskType = "remediation"
	TaskReview      TaskType = "review"
)

type TaskStatus string

const (
	TaskDraft      TaskStatus = "draft"
	TaskAssigned   TaskStatus = "assigned"
	TaskInProgress TaskStatus = "in_progress"
	TaskInReview   TaskStatus = "review"
	TaskCompleted  TaskStatus = "completed"
	TaskBlocked    TaskStatus = "blocked"
)

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"critical": true, "high": true, "medium": true, "low": true,
}

// PriorityRank returns a sort rank (lower = more urgent).
func PriorityRank(p Priority) int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

type DependencyType string

const (
	DependencyBlocks   DependencyType = "blocks"
	DependencyTriggers DependencyType = "triggers"
	DependencyInforms  DependencyType = "informs"
)

type DependencyStatus string

const (
	DependencyActive   DependencyStatus = "active"
	DependencyResolved DependencyStatus = "resolved"
)

type TimelineStatus string

const (
	TimelineDraft     TimelineStatus = "draft"
	TimelineActive    TimelineStatus = "active"
	TimelinePaused    TimelineStatus = "paused"
	TimelineCompleted TimelineStatus = "completed"
	TimelineCancelled TimelineStatus = "cancelled"
)

type MilestoneType string

const (
	MilestoneFramework MilestoneType = "framework"
	MilestoneBusiness  MilestoneType = "business"
	MilestoneRisk      MilestoneType = "risk"
)

type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "pending"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
	MilestoneDelayed    MilestoneStatus = "delayed"
	MilestoneCancelled  MilestoneStatus = "cancelled"
)

type RemediationType string

const (
	RemediationTechnical     RemediationType = "technical"
	RemediationDocumentation RemediationType = "documentation"
	RemediationProcess       RemediationType = "process"
	RemediationTraining      RemediationType = "training"
)

// ValidRemediationTypes is the canonical set of accepted remediation type strings.
var ValidRemediationTypes = map[string]bool{
	"technical": true, "documentation": true, "process": true, "training": true,
}

type EffortLevel string

const (
	EffortMinimal     EffortLevel = "minimal"
	EffortLow         EffortLevel = "low"
	EffortMedium      EffortLevel = "medium"
	EffortHigh        EffortLevel = "high"
	EffortSignificant EffortLevel = "significant"
)
