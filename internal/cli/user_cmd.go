package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tobiasvance/remedy/internal/cli/formatter"
	"github.com/tobiasvance/remedy/internal/domain"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage assignable users",
	}

	cmd.AddCommand(
		newUserAddCmd(app),
		newUserListCmd(app),
	)

	return cmd
}

func newUserAddCmd(app *App) *cobra.Command {
	var email, name string
	var skills []string
	var capacity float64
	var performance int
	var unavailable bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a user to the assignment pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			u := &domain.User{
				Email:               email,
				DisplayName:         name,
				OrganizationID:      app.OrgID,
				Skills:              skills,
				WeeklyCapacityHours: capacity,
				PerformanceScore:    performance,
				Available:           !unavailable,
			}
			if err := app.Users.Create(context.Background(), u); err != nil {
				return err
			}
			fmt.Printf("Added user %s (%s)\n", u.DisplayName, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "User email")
	cmd.Flags().StringVar(&name, "name", "", "Display name (defaults to email)")
	cmd.Flags().StringSliceVar(&skills, "skills", nil, "Framework/control skill tags")
	cmd.Flags().Float64Var(&capacity, "capacity", 0, "Weekly capacity in hours (default 40)")
	cmd.Flags().IntVar(&performance, "performance", 50, "Performance score 0-100")
	cmd.Flags().BoolVar(&unavailable, "unavailable", false, "Exclude from assignment suggestions")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List assignment candidates with current workload",
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates, err := app.Users.ListCandidates(context.Background(), app.OrgID)
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				fmt.Println("No users found.")
				return nil
			}

			rows := make([][]string, 0, len(candidates))
			for _, c := range candidates {
				avail := formatter.StyleGreen.Render("yes")
				if !c.Available {
					avail = formatter.StyleRed.Render("no")
				}
				rows = append(rows, []string{
					c.ID[:8],
					c.DisplayName,
					c.Email,
					strings.Join(c.Skills, ", "),
					fmt.Sprintf("%d tasks, %.0f/%.0fh", c.ActiveTaskCount, c.CommittedHours, c.WeeklyCapacityHours),
					avail,
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable(
				[]string{"ID", "NAME", "EMAIL", "SKILLS", "LOAD", "AVAILABLE"}, rows))
			return nil
		},
	}
}
