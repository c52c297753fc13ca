package cli

import (
	"github.com/spf13/cobra"
	"github.com/tobiasvance/remedy/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tasks       service.TaskService
	Assignments service.AssignmentService
	Timelines   service.TimelineService
	Bulk        service.BulkService
	Users       service.UserService

	// OrgID scopes user creation and candidate listings.
	OrgID string

	// IsInteractive reports whether stdin is a terminal; interactive forms
	// are refused when it returns false.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "remedy" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "remedy",
		Short: "Compliance task assignment and timeline orchestration",
	}

	root.AddCommand(
		newTaskCmd(app),
		newGapsCmd(app),
		newTimelineCmd(app),
		newGanttCmd(app),
		newUserCmd(app),
	)

	return root
}
