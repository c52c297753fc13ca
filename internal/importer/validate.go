package importer

import (
	"fmt"

	"github.com/tobiasvance/remedy/internal/contract"
	"github.com/tobiasvance/remedy/internal/domain"
)

// ValidateRequest checks template-level fields before generation. Gap-level
// problems are deliberately left to the generator, which rejects offending
// gaps individually instead of failing the batch.
// Returns a slice of all errors found.
func ValidateRequest(req *contract.BulkTaskRequest) []error {
	var errs []error

	if req.Template.DefaultPriority != "" && !domain.ValidPriorities[string(req.Template.DefaultPriority)] {
		errs = append(errs, fmt.Errorf("template.default_priority: invalid value %q", req.Template.DefaultPriority))
	}
	if req.Template.DueDateOffsetDays < 0 {
		errs = append(errs, fmt.Errorf("template.due_date_offset_days must not be negative"))
	}
	if len(req.Gaps) == 0 {
		errs = append(errs, fmt.Errorf("gaps: at least one gap is required"))
	}

	return errs
}
