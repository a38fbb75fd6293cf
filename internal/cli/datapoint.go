package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jpdarago/beeminder/internal/model"
)

var datapointCmd = &cobra.Command{
	Use:   "datapoint",
	Short: "Work with datapoints of a Beeminder goal",
	Long: `Work with datapoints of a Beeminder goal.

Examples:
  beeminder datapoint list pushups
  beeminder datapoint create pushups --value 25 --comment "morning set"
  beeminder datapoint put pushups < datapoints.txt
  beeminder datapoint delete pushups 5f2d9c0a8e1b4c0001a2b3c4`,
}

var datapointListCmd = &cobra.Command{
	Use:   "list <goal>",
	Short: "List datapoints of a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatapointList,
}

var datapointDeleteCmd = &cobra.Command{
	Use:   "delete <goal> <id>",
	Short: "Delete a datapoint by id",
	Args:  cobra.ExactArgs(2),
	RunE:  runDatapointDelete,
}

func init() {
	datapointCmd.AddCommand(datapointListCmd)
	datapointCmd.AddCommand(datapointCreateCmd)
	datapointCmd.AddCommand(datapointPutCmd)
	datapointCmd.AddCommand(datapointDeleteCmd)
}

func runDatapointList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	points, err := client.Datapoints(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch datapoints for goal %q: %w", args[0], err)
	}
	if flagOutput == "table" {
		printDatapointsTable(points)
		return nil
	}
	return printJSON(points)
}

func runDatapointDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.DeleteDatapoint(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to delete datapoint %q: %w", args[1], err)
	}
	return nil
}

func printDatapointsTable(points []model.Datapoint) {
	if len(points) == 0 {
		fmt.Println("No datapoints found")
		return
	}
	table := stdoutTable([]string{"ID", "Timestamp", "Daystamp", "Value", "Comment"})
	for _, p := range points {
		comment := p.Comment
		if len(comment) > 40 {
			comment = comment[:37] + "..."
		}
		table.Append([]string{
			p.ID,
			formatEpoch(p.Timestamp),
			p.Daystamp,
			strconv.FormatFloat(p.Value, 'f', -1, 64),
			comment,
		})
	}
	table.Render()
}
