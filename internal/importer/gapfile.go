package importer

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tobiasvance/remedy/internal/contract"
	"github.com/tobiasvance/remedy/internal/domain"
)

// Parse reads a JSON gap export into a BulkTaskRequest. Extraction is
// tolerant: unknown fields are ignored and missing ones come back zero, so
// exports from assessment tools with richer schemas still import gap by
// gap. Expected shape:
//
//	{
//	  "template": {
//	    "framework": "SOC2",
//	    "default_priority": "medium",
//	    "due_date_offset_days": 30,
//	    "auto_assign": false,
//	    "business_unit": "security"
//	  },
//	  "gaps": [
//	    {
//	      "control_id": "AC-3.13",
//	      "gap_description": "MFA missing",
//	      "remediation_type": "technical",
//	      "estimated_effort": "medium",
//	      "priority": "high"
//	    }
//	  ]
//	}
func Parse(data []byte) (*contract.BulkTaskRequest, error) {
	if !gjson.ValidBytes(data) {
		return nil, &domain.ValidationError{Field: "file", Msg: "is not valid JSON"}
	}
	doc := gjson.ParseBytes(data)

	tmpl := doc.Get("template")
	req := &contract.BulkTaskRequest{
		Template: contract.TaskTemplate{
			Framework:         tmpl.Get("framework").String(),
			DefaultPriority:   domain.Priority(tmpl.Get("default_priority").String()),
			DueDateOffsetDays: int(tmpl.Get("due_date_offset_days").Int()),
			AutoAssign:        tmpl.Get("auto_assign").Bool(),
			BusinessUnit:      tmpl.Get("business_unit").String(),
		},
	}

	doc.Get("gaps").ForEach(func(_, gap gjson.Result) bool {
		req.Gaps = append(req.Gaps, contract.ComplianceGap{
			ControlID:       gap.Get("control_id").String(),
			GapDescription:  gap.Get("gap_description").String(),
			RemediationType: domain.RemediationType(gap.Get("remediation_type").String()),
			EstimatedEffort: domain.EffortLevel(gap.Get("estimated_effort").String()),
			Priority:        domain.Priority(gap.Get("priority").String()),
		})
		return true
	})

	return req, nil
}

// ParseFile reads and parses a gap export from disk.
func ParseFile(path string) (*contract.BulkTaskRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading gap file: %w", err)
	}
	return Parse(data)
}
