package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpdarago/beeminder/internal/model"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Show the Beeminder user",
	Long: `Show the authenticated Beeminder user.

Examples:
  beeminder user                       # Raw JSON snapshot
  beeminder user -o table              # Human-readable summary
  beeminder user --filter goals        # Just the goal slugs`,
	Args: cobra.NoArgs,
	RunE: runUser,
}

func runUser(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	user, err := client.User(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if flagOutput == "table" {
		printUserTable(user)
		return nil
	}
	return printJSON(user)
}

func printUserTable(user *model.User) {
	table := stdoutTable(nil)
	table.Append([]string{"Username", user.Username})
	table.Append([]string{"Timezone", user.Timezone})
	table.Append([]string{"Goals", strings.Join(user.Goals, ", ")})
	table.Append([]string{"Urgency load", strconv.FormatInt(user.UrgencyLoad, 10)})
	table.Append([]string{"Created", formatEpoch(user.CreatedAt)})
	table.Append([]string{"Updated", formatEpoch(user.UpdatedAt)})
	table.Render()
}

// formatEpoch renders an epoch-second timestamp for tables. The API reports
// times in UTC.
func formatEpoch(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04")
}
