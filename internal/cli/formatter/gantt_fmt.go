package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/tobiasvance/remedy/internal/gantt"
)

const (
	ganttBarChar       = "█"
	ganttMilestoneChar = "◆"
	ganttTodayChar     = "│"
	ganttLabelWidth    = 24
)

// RenderGantt draws the projected layout as rows of positioned bars over a
// fixed-width character axis, with granularity ticks underneath and an
// optional today marker column.
func RenderGantt(layout *gantt.Layout, width int) string {
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	todayCol := -1
	if layout.TodayPercent != nil {
		todayCol = column(*layout.TodayPercent, width)
	}

	for _, bar := range layout.Bars {
		label := bar.Name
		if runes := []rune(label); len(runes) > ganttLabelWidth {
			label = string(runes[:ganttLabelWidth-1]) + "…"
		}

		row := make([]rune, width)
		for i := range row {
			row[i] = ' '
		}

		if bar.IsMilestone {
			row[column(bar.LeftPercent, width)] = []rune(ganttMilestoneChar)[0]
		} else {
			startCol := column(bar.LeftPercent, width)
			endCol := column(bar.LeftPercent+bar.WidthPercent, width)
			if endCol <= startCol {
				endCol = startCol + 1
			}
			for i := startCol; i < endCol && i < width; i++ {
				row[i] = []rune(ganttBarChar)[0]
			}
		}
		if todayCol >= 0 && row[todayCol] == ' ' {
			row[todayCol] = []rune(ganttTodayChar)[0]
		}

		line := string(row)
		switch {
		case bar.IsMilestone:
			line = StylePurple.Render(line)
		case bar.IsCritical:
			line = StyleRed.Render(line)
		default:
			line = StyleBlue.Render(line)
		}
		b.WriteString(fmt.Sprintf("%-*s %s\n", ganttLabelWidth, label, line))
	}

	// Tick row with labels where they fit.
	tickRow := make([]rune, width)
	for i := range tickRow {
		tickRow[i] = '─'
	}
	for _, tick := range layout.Ticks {
		tickRow[column(tick.LeftPercent, width)] = '┬'
	}
	b.WriteString(strings.Repeat(" ", ganttLabelWidth+1) + Dim(string(tickRow)) + "\n")

	labelRow := make([]rune, width)
	for i := range labelRow {
		labelRow[i] = ' '
	}
	for _, tick := range layout.Ticks {
		col := column(tick.LeftPercent, width)
		for i, r := range tick.Label {
			if col+i >= width {
				break
			}
			if labelRow[col+i] != ' ' {
				break
			}
			labelRow[col+i] = r
		}
	}
	b.WriteString(strings.Repeat(" ", ganttLabelWidth+1) + Dim(strings.TrimRight(string(labelRow), " ")) + "\n")

	if layout.TodayPercent != nil {
		b.WriteString(Dim(fmt.Sprintf("%s today at %.0f%%", ganttTodayChar, *layout.TodayPercent)) + "\n")
	}
	return b.String()
}

func column(pct float64, width int) int {
	col := int(math.Round(pct / 100 * float64(width-1)))
	if col < 0 {
		col = 0
	}
	if col >= width {
		col = width - 1
	}
	return col
}
