package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tobiasvance/remedy/internal/domain"
	"github.com/tobiasvance/remedy/internal/service"
)

// FormatTimelineStatus renders the derived timeline report: roll-ups,
// milestones and per-assignee allocation.
func FormatTimelineStatus(report *service.TimelineStatusReport) string {
	tl := report.Timeline
	var b strings.Builder

	b.WriteString(Header(tl.Name) + "\n")
	if tl.Framework != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Framework:"), tl.Framework))
	}
	b.WriteString(fmt.Sprintf("%s %s → %s\n", Dim("Window:"),
		tl.StartDate.Format("2006-01-02"), tl.TargetCompletion.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Progress:"), RenderProgress(float64(tl.CurrentProgress)/100, 24)))
	b.WriteString(fmt.Sprintf("%s %s (%d)\n", Dim("Health:"), HealthIndicator(tl.HealthScore), tl.HealthScore))

	a := report.Analytics
	b.WriteString(fmt.Sprintf("%s %d/%d tasks done, %d delayed milestones, %d blocked on critical path\n",
		Dim("Signals:"), a.CompletedTasks, a.TotalTasks, a.DelayedMilestones, a.BlockedCritical))
	if a.ScheduleVariance != 0 {
		pace := StyleGreen.Render(fmt.Sprintf("%.0f%% ahead of pace", -a.ScheduleVariance))
		if a.ScheduleVariance > 0 {
			pace = StyleRed.Render(fmt.Sprintf("%.0f%% behind pace", a.ScheduleVariance))
		}
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Pace:"), pace))
	}
	if len(tl.CriticalPath) > 0 {
		ids := make([]string, 0, len(tl.CriticalPath))
		for _, id := range tl.CriticalPath {
			ids = append(ids, shortID(id))
		}
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Critical path:"), strings.Join(ids, " → ")))
	}

	if len(report.Milestones) > 0 {
		b.WriteString("\n" + Header("Milestones") + "\n")
		rows := make([][]string, 0, len(report.Milestones))
		for _, m := range report.Milestones {
			rows = append(rows, []string{
				m.Name,
				string(m.Type),
				m.TargetDate.Format("2006-01-02"),
				milestoneStyle(m.Status).Render(string(m.Status)),
				fmt.Sprintf("%d%%", m.Progress),
			})
		}
		b.WriteString(RenderTable([]string{"MILESTONE", "TYPE", "TARGET", "STATUS", "PROGRESS"}, rows))
	}

	if len(a.ResourceAllocation) > 0 {
		b.WriteString("\n" + Header("Allocation") + "\n")
		assignees := make([]string, 0, len(a.ResourceAllocation))
		for id := range a.ResourceAllocation {
			assignees = append(assignees, id)
		}
		sort.Strings(assignees)
		for _, id := range assignees {
			b.WriteString(fmt.Sprintf("  %s  %.0fh active\n", id, a.ResourceAllocation[id]))
		}
	}

	return b.String()
}

func milestoneStyle(s domain.MilestoneStatus) lipgloss.Style {
	switch s {
	case domain.MilestoneCompleted:
		return StyleGreen
	case domain.MilestoneInProgress:
		return StyleBlue
	case domain.MilestoneDelayed:
		return StyleRed
	case domain.MilestoneCancelled:
		return StyleDim
	default:
		return StyleYellow
	}
}
