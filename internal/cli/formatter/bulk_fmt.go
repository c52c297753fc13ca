package formatter

import (
	"fmt"
	"strings"

	"github.com/tobiasvance/remedy/internal/contract"
)

// FormatBulkSummary renders the outcome of a gap import: generated tasks,
// the aggregate summary and any per-gap rejections.
func FormatBulkSummary(res *contract.BulkResult) string {
	var b strings.Builder
	s := res.Summary

	b.WriteString(Header("Gap import") + "\n")
	b.WriteString(fmt.Sprintf("%s %d tasks, %.0fh estimated\n", Dim("Generated:"), s.TotalTasks, s.TotalEstimatedHours))
	b.WriteString(fmt.Sprintf("%s %d auto-assigned, %d need manual assignment\n",
		Dim("Assignment:"), s.AutoAssigned, s.RequiresManualAssignment))
	b.WriteString(fmt.Sprintf("%s %s / %s / %s\n", Dim("Priorities:"),
		StyleRed.Render(fmt.Sprintf("%d high+", s.HighPriority)),
		StyleYellow.Render(fmt.Sprintf("%d medium", s.MediumPriority)),
		StyleDim.Render(fmt.Sprintf("%d low", s.LowPriority))))

	if len(res.Tasks) > 0 {
		rows := make([][]string, 0, len(res.Tasks))
		for _, t := range res.Tasks {
			assignee := t.AssignedTo
			if assignee == "" {
				assignee = Dim("-")
			}
			rows = append(rows, []string{
				shortID(t.ID),
				t.Title,
				PriorityStyle(t.Priority).Render(string(t.Priority)),
				fmt.Sprintf("%.0fh", t.EstimatedHours),
				assignee,
			})
		}
		b.WriteString("\n" + RenderTable([]string{"ID", "TITLE", "PRIORITY", "EFFORT", "ASSIGNEE"}, rows))
	}

	if len(res.Rejected) > 0 {
		b.WriteString("\n" + StyleRed.Render(fmt.Sprintf("%d gap(s) rejected:", len(res.Rejected))) + "\n")
		for _, r := range res.Rejected {
			id := r.ControlID
			if id == "" {
				id = fmt.Sprintf("gap #%d", r.Index)
			}
			b.WriteString(fmt.Sprintf("  %s %s: %s\n", Dim("•"), id, r.Reason))
		}
	}
	return b.String()
}
