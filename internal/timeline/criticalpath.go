package timeline

import (
	"sort"
	"time"

	"github.com/tobiasvance/remedy/internal/domain"
)

// CriticalPathInput is the snapshot the path computation runs over.
type CriticalPathInput struct {
	Tasks      []domain.Task
	Milestones []domain.Milestone
	Now        time.Time
	// Flagged lists task ids an upstream scheduler pinned onto the path
	// explicitly; they are unioned into the computed set.
	Flagged []string
}

// ComputeCriticalPath returns the sorted set of task ids whose delay would
// directly delay the tightest-slack unfinished milestone: the milestone's
// task dependencies plus everything transitively required through
// blocks-type edges. The walk is cycle-safe.
func ComputeCriticalPath(in CriticalPathInput) []string {
	byID := make(map[string]domain.Task, len(in.Tasks))
	for _, t := range in.Tasks {
		byID[t.ID] = t
	}

	critical := make(map[string]bool)
	for _, id := range in.Flagged {
		if _, ok := byID[id]; ok {
			critical[id] = true
		}
	}

	target := tightestMilestone(in.Milestones, in.Now)
	if target != nil {
		queue := make([]string, 0, len(target.Dependencies))
		for _, id := range target.Dependencies {
			if _, ok := byID[id]; ok && !critical[id] {
				critical[id] = true
				queue = append(queue, id)
			}
		}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, dep := range byID[id].Dependencies {
				if dep.Type != domain.DependencyBlocks {
					continue
				}
				if _, ok := byID[dep.DependsOnID]; !ok || critical[dep.DependsOnID] {
					continue
				}
				critical[dep.DependsOnID] = true
				queue = append(queue, dep.DependsOnID)
			}
		}
	}

	ids := make([]string, 0, len(critical))
	for id := range critical {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RecomputeCriticalPath recomputes and stores the timeline's critical set.
func RecomputeCriticalPath(tl *domain.Timeline, in CriticalPathInput) []string {
	tl.CriticalPath = ComputeCriticalPath(in)
	return tl.CriticalPath
}

// tightestMilestone picks the unfinished milestone with the least remaining
// slack: earliest target date, completed and cancelled excluded. Ties fall
// to the lexically smallest id for determinism.
func tightestMilestone(milestones []domain.Milestone, now time.Time) *domain.Milestone {
	var best *domain.Milestone
	for i := range milestones {
		m := &milestones[i]
		if m.Status == domain.MilestoneCompleted || m.Status == domain.MilestoneCancelled {
			continue
		}
		if best == nil ||
			m.TargetDate.Before(best.TargetDate) ||
			(m.TargetDate.Equal(best.TargetDate) && m.ID < best.ID) {
			best = m
		}
	}
	return best
}
