package formatter

import (
	"fmt"
	"strings"

	"github.com/tobiasvance/remedy/internal/domain"
)

// FormatTaskList renders tasks as an aligned table.
func FormatTaskList(tasks []*domain.Task) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		assignee := t.AssignedTo
		if assignee == "" {
			assignee = Dim("unassigned")
		}
		rows = append(rows, []string{
			shortID(t.ID),
			t.Title,
			PriorityStyle(t.Priority).Render(string(t.Priority)),
			StatusStyle(t.Status).Render(string(t.Status)),
			fmt.Sprintf("%d%%", t.Progress),
			due,
			assignee,
		})
	}
	return RenderTable(
		[]string{"ID", "TITLE", "PRIORITY", "STATUS", "PROGRESS", "DUE", "ASSIGNEE"},
		rows,
	)
}

// FormatTaskDetail renders one task with its full field set and dependencies.
func FormatTaskDetail(t *domain.Task) string {
	var b strings.Builder
	b.WriteString(Header(t.Title) + "\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("ID:"), t.ID))
	b.WriteString(fmt.Sprintf("%s %s / %s\n", Dim("Type:"), t.Type, PriorityStyle(t.Priority).Render(string(t.Priority))))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Status:"), StatusStyle(t.Status).Render(string(t.Status))))
	if t.Framework != "" {
		b.WriteString(fmt.Sprintf("%s %s %s\n", Dim("Control:"), t.Framework, t.ControlID))
	}
	if t.Description != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Description:"), t.Description))
	}
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Progress:"), RenderProgress(float64(t.Progress)/100, 20)))
	if t.EstimatedHours > 0 {
		b.WriteString(fmt.Sprintf("%s %.0fh\n", Dim("Estimate:"), t.EstimatedHours))
	}
	if t.DueDate != nil {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Due:"), t.DueDate.Format("2006-01-02")))
	}
	if t.AssignedTo != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Assignee:"), t.AssignedTo))
	}
	if len(t.Tags) > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Tags:"), strings.Join(t.Tags, ", ")))
	}
	if len(t.Dependencies) > 0 {
		b.WriteString(Dim("Depends on:") + "\n")
		for _, d := range t.Dependencies {
			marker := StyleGreen.Render("resolved")
			if d.Status == domain.DependencyActive {
				marker = StyleYellow.Render("active")
				if d.Type == domain.DependencyBlocks {
					marker = StyleRed.Render("blocking")
				}
			}
			b.WriteString(fmt.Sprintf("  %s %s (%s, %s)\n", Dim("•"), shortID(d.DependsOnID), d.Type, marker))
		}
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
