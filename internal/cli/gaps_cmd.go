package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tobiasvance/remedy/internal/cli/formatter"
	"github.com/tobiasvance/remedy/internal/importer"
)

func newGapsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "Generate tasks from compliance gap reports",
	}

	cmd.AddCommand(newGapsImportCmd(app))

	return cmd
}

func newGapsImportCmd(app *App) *cobra.Command {
	var autoAssign bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a gap report and generate one task per gap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := importer.ParseFile(args[0])
			if err != nil {
				return err
			}
			if autoAssign {
				req.Template.AutoAssign = true
			}

			res, err := app.Bulk.GenerateFromRequest(context.Background(), req, time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Printf("%s", formatter.FormatBulkSummary(res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&autoAssign, "auto-assign", false, "Auto-assign generated tasks even if the file's template does not ask for it")

	return cmd
}
