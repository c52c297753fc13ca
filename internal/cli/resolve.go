package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/tobiasvance/remedy/internal/repository"
)

// resolveTaskID accepts a full task id or a unique prefix.
func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}

	tasks, err := app.Tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return "", err
	}

	for _, t := range tasks {
		if t.ID == input {
			return t.ID, nil
		}
	}

	var matches []string
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTimelineID accepts a full timeline id, a unique prefix, or a
// case-insensitive name match.
func resolveTimelineID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("timeline ID is required")
	}

	timelines, err := app.Timelines.List(ctx)
	if err != nil {
		return "", err
	}

	for _, tl := range timelines {
		if tl.ID == input || strings.EqualFold(tl.Name, input) {
			return tl.ID, nil
		}
	}

	var matches []string
	for _, tl := range timelines {
		if strings.HasPrefix(tl.ID, input) {
			matches = append(matches, tl.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("timeline not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("timeline ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
