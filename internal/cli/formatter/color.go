package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tobiasvance/remedy/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// HealthIndicator returns a colored indicator for a 0-100 health score.
func HealthIndicator(score int) string {
	switch {
	case score >= 80:
		return StyleGreen.Render("● HEALTHY")
	case score >= 50:
		return StyleYellow.Render("● AT RISK")
	default:
		return StyleRed.Render("● CRITICAL")
	}
}

// StatusStyle returns the style used for a task status.
func StatusStyle(s domain.TaskStatus) lipgloss.Style {
	switch s {
	case domain.TaskCompleted:
		return StyleGreen
	case domain.TaskInProgress, domain.TaskInReview:
		return StyleBlue
	case domain.TaskBlocked:
		return StyleRed
	case domain.TaskAssigned:
		return StyleYellow
	default:
		return StyleDim
	}
}

// PriorityStyle returns the style used for a task priority.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityCritical:
		return StyleRed
	case domain.PriorityHigh:
		return StyleYellow
	case domain.PriorityMedium:
		return StyleBlue
	default:
		return StyleDim
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
