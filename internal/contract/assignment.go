package contract

import "time"

type ScoreReasonCode string

const (
	ReasonBaseScore        ScoreReasonCode = "BASE_SCORE"
	ReasonWorkloadHeadroom ScoreReasonCode = "WORKLOAD_HEADROOM"
	ReasonSkillMatch       ScoreReasonCode = "SKILL_MATCH"
	ReasonAvailability     ScoreReasonCode = "AVAILABILITY"
	ReasonScoreClamped     ScoreReasonCode = "SCORE_CLAMPED"
)

// ScoreReason explains one scoring factor's contribution.
type ScoreReason struct {
	Code    ScoreReasonCode
	Message string
	Delta   float64
}

// SuggestOptions controls which signals participate in scoring.
type SuggestOptions struct {
	ConsiderWorkload     bool
	ConsiderSkills       bool
	ConsiderAvailability bool
	MaxSuggestions       int
}

// SuggestionReasoning breaks a suggestion down into its 0-100 component signals.
type SuggestionReasoning struct {
	SkillMatch          int
	WorkloadCapacity    int
	PreviousPerformance int
	Availability        int
}

// WorkloadSnapshot is the candidate's commitment level at scoring time.
type WorkloadSnapshot struct {
	ActiveTasks         int
	EstimatedHours      float64
	CapacityUtilization int // 0-100
}

// AssignmentSuggestion is a computed, non-persistent ranking entry.
type AssignmentSuggestion struct {
	UserID          string
	DisplayName     string
	Score           int // 0-100
	Reasoning       SuggestionReasoning
	CurrentWorkload WorkloadSnapshot
	Reasons         []ScoreReason
}

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Recommendation summarizes the top suggestion. UserID is empty when no
// candidate was available.
type Recommendation struct {
	UserID             string
	Confidence         Confidence
	ExpectedCompletion time.Time
}

// SuggestResult is the full ranked output for one task.
type SuggestResult struct {
	Suggestions    []AssignmentSuggestion
	Recommendation Recommendation
}
