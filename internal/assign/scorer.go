package assign

import (
	"fmt"
	"math"
	"strings"

	"github.com/tobiasvance/remedy/internal/contract"
	"github.com/tobiasvance/remedy/internal/domain"
)

// Scoring constants carried over from the original heuristic. Named here so
// they can be tuned without touching the algorithm shape.
const (
	BaseScore                  = 50.0
	WorkloadWeight             = 0.3
	SkillWeight                = 0.3
	AvailabilityBonus          = 20.0
	DefaultWeeklyCapacityHours = 40.0
	DefaultMaxSuggestions      = 5
	DefaultEstimateHours       = 8.0
)

// Skill-match tiers: exact framework tag, control-family tag (e.g. "AC" for
// control "AC-3.13"), or no overlap at all.
const (
	skillMatchFramework = 100
	skillMatchFamily    = 75
	skillMatchNone      = 40
)

// ScoredCandidate is one candidate's computed score with its breakdown.
type ScoredCandidate struct {
	Candidate domain.CandidateProfile
	Score     float64
	Reasoning contract.SuggestionReasoning
	Workload  contract.WorkloadSnapshot
	Reasons   []contract.ScoreReason
}

// CapacityUtilization returns committed hours as a percentage of weekly
// capacity, capped at 100. A missing capacity falls back to the 40h default.
func CapacityUtilization(committedHours, weeklyCapacityHours float64) float64 {
	capacity := domain.FloatWithDefault(DefaultWeeklyCapacityHours, weeklyCapacityHours)
	if capacity <= 0 {
		capacity = DefaultWeeklyCapacityHours
	}
	return math.Min(100, committedHours/capacity*100)
}

// SkillMatch scores how well the candidate's skill tags fit the task's
// framework and control family.
func SkillMatch(task domain.Task, c domain.CandidateProfile) int {
	if task.Framework != "" && c.HasSkill(task.Framework) {
		return skillMatchFramework
	}
	if family := controlFamily(task.ControlID); family != "" && c.HasSkill(family) {
		return skillMatchFamily
	}
	return skillMatchNone
}

func controlFamily(controlID string) string {
	if controlID == "" {
		return ""
	}
	return strings.SplitN(controlID, "-", 2)[0]
}

// ScoreCandidate computes the 0-100 match score for one candidate.
func ScoreCandidate(task domain.Task, c domain.CandidateProfile, opts contract.SuggestOptions) ScoredCandidate {
	utilization := CapacityUtilization(c.CommittedHours, c.WeeklyCapacityHours)
	skill := SkillMatch(task, c)

	result := ScoredCandidate{
		Candidate: c,
		Reasoning: contract.SuggestionReasoning{
			SkillMatch:          skill,
			WorkloadCapacity:    int(math.Round(100 - utilization)),
			PreviousPerformance: domain.ClampInt(c.PerformanceScore, 0, 100),
			Availability:        availabilitySignal(c),
		},
		Workload: contract.WorkloadSnapshot{
			ActiveTasks:         c.ActiveTaskCount,
			EstimatedHours:      c.CommittedHours,
			CapacityUtilization: int(math.Round(utilization)),
		},
	}

	score := BaseScore
	result.Reasons = append(result.Reasons, contract.ScoreReason{
		Code:    contract.ReasonBaseScore,
		Message: "Base score",
		Delta:   BaseScore,
	})

	if opts.ConsiderWorkload {
		delta := (100 - utilization) * WorkloadWeight
		score += delta
		result.Reasons = append(result.Reasons, contract.ScoreReason{
			Code:    contract.ReasonWorkloadHeadroom,
			Message: fmt.Sprintf("Capacity utilization at %.0f%%", utilization),
			Delta:   delta,
		})
	}

	if opts.ConsiderSkills {
		delta := float64(skill) * SkillWeight
		score += delta
		result.Reasons = append(result.Reasons, contract.ScoreReason{
			Code:    contract.ReasonSkillMatch,
			Message: skillMessage(skill),
			Delta:   delta,
		})
	}

	if opts.ConsiderAvailability && c.Available {
		score += AvailabilityBonus
		result.Reasons = append(result.Reasons, contract.ScoreReason{
			Code:    contract.ReasonAvailability,
			Message: "Candidate signals availability",
			Delta:   AvailabilityBonus,
		})
	}

	clamped := domain.ClampFloat(score, 0, 100)
	if clamped != score {
		result.Reasons = append(result.Reasons, contract.ScoreReason{
			Code:    contract.ReasonScoreClamped,
			Message: "Score clamped to 0-100",
			Delta:   clamped - score,
		})
	}
	result.Score = clamped

	return result
}

func availabilitySignal(c domain.CandidateProfile) int {
	if c.Available {
		return 100
	}
	return 0
}

func skillMessage(skill int) string {
	switch skill {
	case skillMatchFramework:
		return "Skills cover the task's framework"
	case skillMatchFamily:
		return "Skills cover the control family"
	default:
		return "No direct skill overlap"
	}
}
