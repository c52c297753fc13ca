package assign

import (
	"math"
	"time"

	"github.com/tobiasvance/remedy/internal/contract"
	"github.com/tobiasvance/remedy/internal/domain"
)

// Confidence bands over the top score.
const (
	confidenceHighMin   = 80
	confidenceMediumMin = 60
)

// Suggest scores every candidate against the task and returns the ranked
// suggestion list plus a recommendation. It is a pure function of its inputs
// apart from the now argument, which anchors the expected completion.
// An empty candidate set yields an empty list and a low-confidence
// recommendation, never an error.
func Suggest(task domain.Task, candidates []domain.CandidateProfile, opts contract.SuggestOptions, now time.Time) contract.SuggestResult {
	max := opts.MaxSuggestions
	if max <= 0 {
		max = DefaultMaxSuggestions
	}

	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, ScoreCandidate(task, c, opts))
	}
	SortByScore(scored)

	if len(scored) > max {
		scored = scored[:max]
	}

	suggestions := make([]contract.AssignmentSuggestion, 0, len(scored))
	for _, s := range scored {
		suggestions = append(suggestions, contract.AssignmentSuggestion{
			UserID:          s.Candidate.ID,
			DisplayName:     s.Candidate.DisplayName,
			Score:           int(math.Round(s.Score)),
			Reasoning:       s.Reasoning,
			CurrentWorkload: s.Workload,
			Reasons:         s.Reasons,
		})
	}

	return contract.SuggestResult{
		Suggestions:    suggestions,
		Recommendation: buildRecommendation(task, suggestions, now),
	}
}

func buildRecommendation(task domain.Task, suggestions []contract.AssignmentSuggestion, now time.Time) contract.Recommendation {
	if len(suggestions) == 0 {
		return contract.Recommendation{Confidence: contract.ConfidenceLow}
	}

	top := suggestions[0]
	confidence := contract.ConfidenceLow
	switch {
	case top.Score >= confidenceHighMin:
		confidence = contract.ConfidenceHigh
	case top.Score >= confidenceMediumMin:
		confidence = contract.ConfidenceMedium
	}

	hours := domain.FloatWithDefault(DefaultEstimateHours, task.EstimatedHours)
	return contract.Recommendation{
		UserID:             top.UserID,
		Confidence:         confidence,
		ExpectedCompletion: now.Add(time.Duration(hours * float64(time.Hour))),
	}
}
