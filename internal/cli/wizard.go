package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tobiasvance/remedy/internal/cli/formatter"
)

// remedyHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func remedyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// runTaskForm collects the task fields interactively. Fields already set via
// flags keep their values as form defaults.
func runTaskForm(title, framework, controlID, priority, due *string) error {
	if *priority == "" {
		*priority = "medium"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Encrypt backups at rest").
				Value(title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Framework").
				Placeholder("SOC2").
				Value(framework),
			huh.NewInput().
				Title("Control").
				Placeholder("CC6.1").
				Value(controlID),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("Critical", "critical"),
					huh.NewOption("High", "high"),
					huh.NewOption("Medium", "medium"),
					huh.NewOption("Low", "low"),
				).
				Value(priority),
			huh.NewInput().
				Title("Due date").
				Placeholder("YYYY-MM-DD (optional)").
				Value(due).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := time.Parse("2006-01-02", s); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),
		),
	).WithTheme(remedyHuhTheme()).WithShowHelp(false)

	return form.Run()
}
