package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpdarago/beeminder/internal/model"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Work with goals of a Beeminder user",
	Long: `Work with goals of a Beeminder user.

Examples:
  beeminder goal list                  # All goals
  beeminder goal list -o table         # All goals as a table
  beeminder goal info pushups          # One goal by slug`,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all goals of a user",
	Args:  cobra.NoArgs,
	RunE:  runGoalList,
}

var goalInfoCmd = &cobra.Command{
	Use:   "info <goal>",
	Short: "Show information about a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalInfo,
}

func init() {
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalInfoCmd)
}

func runGoalList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	goals, err := client.Goals(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch goals: %w", err)
	}
	if flagOutput == "table" {
		printGoalsTable(goals)
		return nil
	}
	return printJSON(goals)
}

func runGoalInfo(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	goal, err := client.Goal(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch goal %q: %w", args[0], err)
	}
	if flagOutput == "table" {
		printGoalsTable([]model.Goal{*goal})
		return nil
	}
	return printJSON(goal)
}

func printGoalsTable(goals []model.Goal) {
	if len(goals) == 0 {
		fmt.Println("No goals found")
		return
	}
	table := stdoutTable([]string{"Slug", "Title", "Type", "Safe until", "Summary"})
	for _, g := range goals {
		title := g.Title
		if len(title) > 35 {
			title = title[:32] + "..."
		}
		table.Append([]string{
			g.Slug,
			title,
			g.GoalType,
			formatEpoch(g.Losedate),
			g.Safesum,
		})
	}
	table.Render()
}
