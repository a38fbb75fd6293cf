package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpdarago/beeminder/internal/parse"
)

// datapointPutCmd bulk-creates datapoints from standard input. Input lines
// look like:
//
//	2023-01-05 10:30:00 12.5 'ran 5k'
//
// The whole batch is parsed before anything is submitted; a single malformed
// line aborts the command with no datapoints sent. Timestamps are read as
// UTC regardless of the local timezone, a long-standing quirk that existing
// submitters depend on.
var datapointPutCmd = &cobra.Command{
	Use:   "put <goal>",
	Short: "Create datapoints from STDIN formatted input",
	Long: `Create datapoints for a goal from standard input.

Each line holds a timestamp, a value, and an optional single-quoted comment:

  2023-01-05 10:30:00 12.5 'ran 5k'
  2023-01-06 09:00:00 3

Lines are submitted in one bulk request. Each generated datapoint carries a
deterministic request id derived from the goal and timestamp, so resubmitting
the same input does not duplicate data on the server.`,
	Args: cobra.ExactArgs(1),
	RunE: runDatapointPut,
}

func runDatapointPut(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	points, err := parse.Datapoints(os.Stdin, args[0])
	if err != nil {
		return err
	}
	if err := client.CreateDatapoints(cmd.Context(), args[0], points); err != nil {
		return fmt.Errorf("failed to create datapoints for goal %q: %w", args[0], err)
	}
	return nil
}
