package generation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tobiasvance/remedy/internal/contract"
	"github.com/tobiasvance/remedy/internal/domain"
)

// effortHours is the fixed effort-to-hours taxonomy.
var effortHours = map[domain.EffortLevel]float64{
	domain.EffortMinimal:     2,
	domain.EffortLow:         4,
	domain.EffortMedium:      8,
	domain.EffortHigh:        16,
	domain.EffortSignificant: 32,
}

// HoursForEffort maps an effort level to estimated hours. Unrecognized
// values default to medium rather than failing.
func HoursForEffort(e domain.EffortLevel) float64 {
	if h, ok := effortHours[e]; ok {
		return h
	}
	return effortHours[domain.EffortMedium]
}

// TaskTypeFor maps a remediation type to the generated task's type.
// Process and training both land on remediation; this mirrors the original
// mapping and is kept pending product clarification.
func TaskTypeFor(r domain.RemediationType) domain.TaskType {
	if r == domain.RemediationDocumentation {
		return domain.TaskEvidence
	}
	return domain.TaskRemediation
}

// AssignFunc picks an assignee for a generated task. The second return is
// false when no assignee could be produced.
type AssignFunc func(domain.Task) (string, bool)

type config struct {
	assignFn AssignFunc
	idFn     func() string
}

type Option func(*config)

// WithAutoAssign supplies the assignee picker used when the template asks
// for auto-assignment.
func WithAutoAssign(fn AssignFunc) Option {
	return func(c *config) { c.assignFn = fn }
}

// WithIDGenerator overrides task id generation; tests use this for
// deterministic ids.
func WithIDGenerator(fn func() string) Option {
	return func(c *config) { c.idFn = fn }
}

// Generate expands a gap list into draft tasks plus a single-pass summary.
// A gap missing a required field is rejected individually; generation never
// aborts wholesale.
func Generate(req contract.BulkTaskRequest, now time.Time, opts ...Option) contract.BulkResult {
	cfg := config{idFn: func() string { return uuid.New().String() }}
	for _, opt := range opts {
		opt(&cfg)
	}

	var result contract.BulkResult
	var dueDate *time.Time
	if req.Template.DueDateOffsetDays > 0 {
		d := now.AddDate(0, 0, req.Template.DueDateOffsetDays)
		dueDate = &d
	}

	for i, gap := range req.Gaps {
		if reason := gapRejectReason(gap); reason != "" {
			result.Rejected = append(result.Rejected, contract.RejectedGap{
				Index:     i,
				ControlID: gap.ControlID,
				Reason:    reason,
			})
			continue
		}

		task := domain.Task{
			ID:             cfg.idFn(),
			Title:          "Remediate: " + gap.ControlID,
			Description:    gap.GapDescription,
			Type:           TaskTypeFor(gap.RemediationType),
			Framework:      req.Template.Framework,
			ControlID:      gap.ControlID,
			Priority:       gapPriority(gap, req.Template),
			EstimatedHours: HoursForEffort(gap.EstimatedEffort),
			Status:         domain.TaskDraft,
			DueDate:        dueDate,
			Tags:           []string{string(gap.RemediationType)},
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if req.Template.AutoAssign && cfg.assignFn != nil {
			if userID, ok := cfg.assignFn(task); ok {
				task.AssignedTo = userID
			}
		}

		result.Tasks = append(result.Tasks, task)
		tallyTask(&result.Summary, task)
	}

	result.Summary.TotalTasks = len(result.Tasks)
	result.Summary.Rejected = len(result.Rejected)
	return result
}

// gapRejectReason reports why a gap cannot produce a task: a missing
// required field or an unrecognized enum value. Empty means acceptable.
func gapRejectReason(gap contract.ComplianceGap) string {
	switch {
	case gap.ControlID == "":
		return "control_id is required"
	case gap.GapDescription == "":
		return "gap_description is required"
	case gap.RemediationType == "":
		return "remediation_type is required"
	case !domain.ValidRemediationTypes[string(gap.RemediationType)]:
		return fmt.Sprintf("remediation_type: invalid value %q", gap.RemediationType)
	case gap.Priority != "" && !domain.ValidPriorities[string(gap.Priority)]:
		return fmt.Sprintf("priority: invalid value %q", gap.Priority)
	}
	return ""
}

func gapPriority(gap contract.ComplianceGap, tmpl contract.TaskTemplate) domain.Priority {
	if gap.Priority != "" {
		return gap.Priority
	}
	if tmpl.DefaultPriority != "" {
		return tmpl.DefaultPriority
	}
	return domain.PriorityMedium
}

func tallyTask(s *contract.BulkSummary, task domain.Task) {
	s.TotalEstimatedHours += task.EstimatedHours

	if task.AssignedTo != "" {
		s.AutoAssigned++
	} else {
		s.RequiresManualAssignment++
	}

	switch task.Priority {
	case domain.PriorityCritical, domain.PriorityHigh:
		s.HighPriority++
	case domain.PriorityMedium:
		s.MediumPriority++
	default:
		s.LowPriority++
	}
}
