package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tobiasvance/remedy/internal/cli/formatter"
	"github.com/tobiasvance/remedy/internal/gantt"
)

func newGanttCmd(app *App) *cobra.Command {
	var granularity string
	var width int

	cmd := &cobra.Command{
		Use:   "gantt TIMELINE",
		Short: "Render a timeline as a Gantt chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTimelineID(ctx, app, args[0])
			if err != nil {
				return err
			}

			g := gantt.Granularity(granularity)
			switch g {
			case gantt.GranularityDay, gantt.GranularityWeek, gantt.GranularityMonth:
			default:
				return fmt.Errorf("invalid granularity %q (day|week|month)", granularity)
			}

			layout, err := app.Timelines.Gantt(ctx, id, g, time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Printf("%s", formatter.RenderGantt(layout, width))
			return nil
		},
	}

	cmd.Flags().StringVar(&granularity, "granularity", string(gantt.GranularityWeek), "Axis granularity (day|week|month)")
	cmd.Flags().IntVar(&width, "width", 80, "Chart width in characters")

	return cmd
}
