package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tobiasvance/remedy/internal/cli/formatter"
	"github.com/tobiasvance/remedy/internal/contract"
	"github.com/tobiasvance/remedy/internal/domain"
	"github.com/tobiasvance/remedy/internal/repository"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage compliance tasks",
	}

	cmd.AddCommand(
		newTaskNewCmd(app),
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskSuggestCmd(app),
		newTaskAssignCmd(app),
		newTaskProgressCmd(app),
		newTaskDependCmd(app),
	)
	cmd.AddCommand(newTaskStatusCmds(app)...)

	return cmd
}

func newTaskNewCmd(app *App) *cobra.Command {
	var title, description, taskType, framework, controlID, priority, due string
	var hours float64
	var interactive bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("--interactive requires a terminal")
				}
				if err := runTaskForm(&title, &framework, &controlID, &priority, &due); err != nil {
					return err
				}
			}
			if title == "" {
				return fmt.Errorf("--title is required")
			}

			t := &domain.Task{
				Title:          title,
				Description:    description,
				Type:           domain.TaskType(taskType),
				Framework:      framework,
				ControlID:      controlID,
				Priority:       domain.Priority(priority),
				EstimatedHours: hours,
			}
			if due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q: %w", due, err)
				}
				t.DueDate = &d
			}

			if err := app.Tasks.Create(context.Background(), t); err != nil {
				return err
			}
			fmt.Printf("Created task %s (%s)\n", t.Title, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&taskType, "type", "", "Task type (evidence|remediation|review)")
	cmd.Flags().StringVar(&framework, "framework", "", "Compliance framework (e.g. SOC2)")
	cmd.Flags().StringVar(&controlID, "control", "", "Control identifier (e.g. CC6.1)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (critical|high|medium|low)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated effort in hours")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill fields through a form")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var framework, status, assignee string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.List(context.Background(), repository.TaskFilter{
				Framework:  framework,
				Status:     domain.TaskStatus(status),
				AssignedTo: assignee,
			})
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&framework, "framework", "", "Filter by framework")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Filter by assignee user ID")

	return cmd
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatTaskDetail(t))
			return nil
		},
	}
}

func newTaskSuggestCmd(app *App) *cobra.Command {
	var max int
	var skipWorkload, skipSkills, skipAvailability bool

	cmd := &cobra.Command{
		Use:   "suggest ID",
		Short: "Rank assignment candidates for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			res, err := app.Assignments.Suggest(ctx, id, contract.SuggestOptions{
				ConsiderWorkload:     !skipWorkload,
				ConsiderSkills:       !skipSkills,
				ConsiderAvailability: !skipAvailability,
				MaxSuggestions:       max,
			})
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatSuggestions(res))
			return nil
		},
	}

	cmd.Flags().IntVar(&max, "max", 0, "Maximum suggestions (default 5)")
	cmd.Flags().BoolVar(&skipWorkload, "no-workload", false, "Ignore workload headroom")
	cmd.Flags().BoolVar(&skipSkills, "no-skills", false, "Ignore skill match")
	cmd.Flags().BoolVar(&skipAvailability, "no-availability", false, "Ignore availability")

	return cmd
}

func newTaskAssignCmd(app *App) *cobra.Command {
	var accept bool

	cmd := &cobra.Command{
		Use:   "assign ID [USER]",
		Short: "Assign a task to a user, or accept the top suggestion",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}

			userID := ""
			if len(args) == 2 {
				userID = args[1]
			}
			if userID == "" {
				if !accept {
					return fmt.Errorf("provide a user ID or pass --accept to take the top suggestion")
				}
				res, err := app.Assignments.Suggest(ctx, id, contract.SuggestOptions{
					ConsiderWorkload:     true,
					ConsiderSkills:       true,
					ConsiderAvailability: true,
				})
				if err != nil {
					return err
				}
				if res.Recommendation.UserID == "" {
					return fmt.Errorf("no candidates available")
				}
				userID = res.Recommendation.UserID
			}

			if err := app.Assignments.Assign(ctx, id, userID); err != nil {
				return err
			}
			fmt.Printf("Assigned task %s to %s\n", id, userID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&accept, "accept", false, "Accept the scorer's top recommendation")

	return cmd
}

// newTaskStatusCmds builds one subcommand per lifecycle verb.
func newTaskStatusCmds(app *App) []*cobra.Command {
	verbs := []struct {
		use    string
		short  string
		target domain.TaskStatus
	}{
		{"start ID", "Move a task to in_progress", domain.TaskInProgress},
		{"review ID", "Move a task to review", domain.TaskInReview},
		{"done ID", "Complete a task", domain.TaskCompleted},
		{"block ID", "Mark a task blocked", domain.TaskBlocked},
	}

	cmds := make([]*cobra.Command, 0, len(verbs))
	for _, v := range verbs {
		target := v.target
		cmds = append(cmds, &cobra.Command{
			Use:   v.use,
			Short: v.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				id, err := resolveTaskID(ctx, app, args[0])
				if err != nil {
					return err
				}
				if err := app.Tasks.SetStatus(ctx, id, target); err != nil {
					return err
				}
				fmt.Printf("Task %s is now %s\n", id, target)
				return nil
			},
		})
	}
	return cmds
}

func newTaskProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress ID PERCENT",
		Short: "Record task progress",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			var pct int
			if _, err := fmt.Sscanf(args[1], "%d", &pct); err != nil {
				return fmt.Errorf("invalid percent %q", args[1])
			}
			if err := app.Tasks.SetProgress(ctx, id, pct); err != nil {
				return err
			}
			fmt.Printf("Task %s at %d%%\n", id, pct)
			return nil
		},
	}
}

func newTaskDependCmd(app *App) *cobra.Command {
	var on, depType string

	cmd := &cobra.Command{
		Use:   "depend ID",
		Short: "Add a dependency edge to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			onID, err := resolveTaskID(ctx, app, on)
			if err != nil {
				return err
			}
			if err := app.Tasks.AddDependency(ctx, id, onID, domain.DependencyType(depType)); err != nil {
				return err
			}
			fmt.Printf("Task %s now %s on %s\n", id, depType, onID)
			return nil
		},
	}

	cmd.Flags().StringVar(&on, "on", "", "Task this one depends on")
	cmd.Flags().StringVar(&depType, "type", string(domain.DependencyBlocks), "Dependency type (blocks|triggers|informs)")
	_ = cmd.MarkFlagRequired("on")

	return cmd
}
