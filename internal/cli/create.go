package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpdarago/beeminder/internal/api"
	"github.com/jpdarago/beeminder/internal/model"
)

var (
	createValue     float64
	createTimestamp int64
	createDaystamp  string
	createComment   string
	createRequestID string
	createUnique    bool
)

// datapointCreateCmd submits a single datapoint built from flags. Optional
// fields are sent only when their flag was given, so the remote service can
// apply its own defaults for the rest.
var datapointCreateCmd = &cobra.Command{
	Use:   "create <goal>",
	Short: "Create a datapoint from CLI flags",
	Long: `Create a datapoint for a goal from CLI flags.

Only --value is required. Omitted optional fields are left for the service
to default. Pass --request-id to make resubmission idempotent, or --unique
to have one generated.

Examples:
  beeminder datapoint create pushups --value 25
  beeminder datapoint create pushups --value 25 --comment "morning set"
  beeminder datapoint create weight --value 82.4 --daystamp 20230105 --unique`,
	Args: cobra.ExactArgs(1),
	RunE: runDatapointCreate,
}

func init() {
	flags := datapointCreateCmd.Flags()
	flags.Float64VarP(&createValue, "value", "v", 0, "Datapoint value (required)")
	flags.Int64Var(&createTimestamp, "timestamp", 0, "Datapoint timestamp in epoch seconds")
	flags.StringVarP(&createDaystamp, "daystamp", "d", "", "Datapoint daystamp (YYYYMMDD)")
	flags.StringVarP(&createComment, "comment", "c", "", "Datapoint comment")
	flags.StringVarP(&createRequestID, "request-id", "i", "", "Request id for server-side deduplication")
	flags.BoolVar(&createUnique, "unique", false, "Generate a request id for idempotent resubmission")

	datapointCreateCmd.MarkFlagRequired("value")
	datapointCreateCmd.MarkFlagsMutuallyExclusive("request-id", "unique")
}

func runDatapointCreate(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	params := api.CreateDatapointParams{Value: createValue}
	if cmd.Flags().Changed("timestamp") {
		params.Timestamp = &createTimestamp
	}
	if cmd.Flags().Changed("daystamp") {
		params.Daystamp = &createDaystamp
	}
	if cmd.Flags().Changed("comment") {
		params.Comment = &createComment
	}
	if cmd.Flags().Changed("request-id") {
		params.RequestID = &createRequestID
	}
	if createUnique {
		id := model.NewRequestID()
		params.RequestID = &id
	}

	if err := client.CreateDatapoint(cmd.Context(), args[0], params); err != nil {
		return fmt.Errorf("failed to create datapoint for goal %q: %w", args[0], err)
	}
	return nil
}
