package assign

import (
	"sort"

	"github.com/tobiasvance/remedy/internal/domain"
)

// SortByScore orders scored candidates descending by score. The sort is
// stable so equal scores keep candidate input order, which makes repeated
// calls over the same snapshot render identically.
func SortByScore(scored []ScoredCandidate) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}

// SortCandidatesByID gives candidate slices a canonical input order when the
// caller's source (e.g. a directory fetch) does not define one.
func SortCandidatesByID(candidates []domain.CandidateProfile) {
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID < candidates[j].ID
	})
}
