package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tobiasvance/remedy/internal/contract"
)

// FormatSuggestions renders the ranked suggestion list plus the
// recommendation line.
func FormatSuggestions(res *contract.SuggestResult) string {
	var b strings.Builder
	b.WriteString(Header("Assignment suggestions") + "\n")

	if len(res.Suggestions) == 0 {
		b.WriteString(Dim("No candidates available.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(res.Suggestions))
	for i, s := range res.Suggestions {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			s.DisplayName,
			scoreStyle(s.Score).Render(fmt.Sprintf("%d", s.Score)),
			fmt.Sprintf("%d tasks / %.0fh", s.CurrentWorkload.ActiveTasks, s.CurrentWorkload.EstimatedHours),
			fmt.Sprintf("%d%%", s.CurrentWorkload.CapacityUtilization),
			fmt.Sprintf("%d", s.Reasoning.SkillMatch),
		})
	}
	b.WriteString(RenderTable(
		[]string{"#", "CANDIDATE", "SCORE", "WORKLOAD", "UTIL", "SKILL"},
		rows,
	))

	top := res.Suggestions[0]
	b.WriteString("\n" + Dim("Top factors:") + "\n")
	for _, r := range top.Reasons {
		b.WriteString(fmt.Sprintf("  %+6.1f  %s\n", r.Delta, r.Message))
	}

	rec := res.Recommendation
	b.WriteString(fmt.Sprintf("\n%s %s (%s confidence, expected done %s)\n",
		Bold("Recommend:"),
		rec.UserID,
		confidenceStyle(rec.Confidence).Render(string(rec.Confidence)),
		rec.ExpectedCompletion.Format("2006-01-02 15:04")))
	return b.String()
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return StyleGreen
	case score >= 60:
		return StyleYellow
	default:
		return StyleRed
	}
}

func confidenceStyle(c contract.Confidence) lipgloss.Style {
	switch c {
	case contract.ConfidenceHigh:
		return StyleGreen
	case contract.ConfidenceMedium:
		return StyleYellow
	default:
		return StyleRed
	}
}
