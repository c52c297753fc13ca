package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tobiasvance/remedy/internal/cli/formatter"
	"github.com/tobiasvance/remedy/internal/domain"
)

func newTimelineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Manage compliance timelines and milestones",
	}

	cmd.AddCommand(
		newTimelineNewCmd(app),
		newTimelineListCmd(app),
		newTimelineStatusCmd(app),
		newTimelineRecomputeCmd(app),
		newMilestoneCmd(app),
	)

	return cmd
}

func newTimelineNewCmd(app *App) *cobra.Command {
	var name, framework, start, target string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			targetDate, err := time.Parse("2006-01-02", target)
			if err != nil {
				return fmt.Errorf("invalid target date %q: %w", target, err)
			}

			tl := &domain.Timeline{
				Name:             name,
				Framework:        framework,
				StartDate:        startDate,
				TargetCompletion: targetDate,
			}
			if err := app.Timelines.Create(context.Background(), tl); err != nil {
				return err
			}
			fmt.Printf("Created timeline %s (%s)\n", tl.Name, tl.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Timeline name")
	cmd.Flags().StringVar(&framework, "framework", "", "Compliance framework the timeline tracks")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&target, "target", "", "Target completion date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newTimelineListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List timelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			timelines, err := app.Timelines.List(context.Background())
			if err != nil {
				return err
			}
			if len(timelines) == 0 {
				fmt.Println("No timelines found.")
				return nil
			}

			rows := make([][]string, 0, len(timelines))
			for _, tl := range timelines {
				rows = append(rows, []string{
					tl.ID[:8],
					tl.Name,
					tl.Framework,
					string(tl.Status),
					fmt.Sprintf("%d%%", tl.CurrentProgress),
					formatter.HealthIndicator(tl.HealthScore),
					tl.TargetCompletion.Format("2006-01-02"),
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable(
				[]string{"ID", "NAME", "FRAMEWORK", "STATUS", "PROGRESS", "HEALTH", "TARGET"}, rows))
			return nil
		},
	}
}

func newTimelineStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID",
		Short: "Show a timeline's derived status without persisting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTimelineID(ctx, app, args[0])
			if err != nil {
				return err
			}
			report, err := app.Timelines.Status(ctx, id, time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Printf("%s", formatter.FormatTimelineStatus(report))
			return nil
		},
	}
}

func newTimelineRecomputeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recompute ID",
		Short: "Recompute and persist a timeline's derived fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTimelineID(ctx, app, args[0])
			if err != nil {
				return err
			}
			report, err := app.Timelines.Recompute(ctx, id, time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Printf("%s", formatter.FormatTimelineStatus(report))
			return nil
		},
	}
}

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestone",
		Short: "Manage timeline milestones",
	}

	cmd.AddCommand(
		newMilestoneAddCmd(app),
		newMilestoneMarkCmd(app),
	)

	return cmd
}

func newMilestoneAddCmd(app *App) *cobra.Command {
	var timelineRef, name, mType, target, criteria string
	var deps []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a milestone to a timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			timelineID, err := resolveTimelineID(ctx, app, timelineRef)
			if err != nil {
				return err
			}
			targetDate, err := time.Parse("2006-01-02", target)
			if err != nil {
				return fmt.Errorf("invalid target date %q: %w", target, err)
			}

			depIDs := make([]string, 0, len(deps))
			for _, d := range deps {
				id, err := resolveTaskID(ctx, app, d)
				if err != nil {
					return err
				}
				depIDs = append(depIDs, id)
			}

			m := &domain.Milestone{
				TimelineID:      timelineID,
				Name:            name,
				Type:            domain.MilestoneType(mType),
				TargetDate:      targetDate,
				Dependencies:    depIDs,
				SuccessCriteria: criteria,
			}
			if err := app.Timelines.AddMilestone(ctx, m); err != nil {
				return err
			}
			fmt.Printf("Added milestone %s (%s)\n", m.Name, m.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&timelineRef, "timeline", "", "Timeline ID or name")
	cmd.Flags().StringVar(&name, "name", "", "Milestone name")
	cmd.Flags().StringVar(&mType, "type", "", "Milestone type (framework|business|risk)")
	cmd.Flags().StringVar(&target, "date", "", "Target date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&criteria, "criteria", "", "Success criteria")
	cmd.Flags().StringSliceVar(&deps, "depends-on", nil, "Task IDs that must complete first")
	_ = cmd.MarkFlagRequired("timeline")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newMilestoneMarkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mark MILESTONE STATUS",
		Short: "Set a milestone's status (pending|in_progress|completed|delayed|cancelled)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to := domain.MilestoneStatus(args[1])
			if err := app.Timelines.MarkMilestone(context.Background(), args[0], to); err != nil {
				return err
			}
			fmt.Printf("Milestone %s is now %s\n", args[0], to)
			return nil
		},
	}
}
