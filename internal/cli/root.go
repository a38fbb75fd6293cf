package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpdarago/beeminder/internal/api"
	"github.com/jpdarago/beeminder/internal/config"
	"github.com/jpdarago/beeminder/internal/logging"
)

// Version is stamped at build time via ldflags. It also feeds the
// User-Agent client signature on every request.
var Version = "dev"

var (
	flagUsername string
	flagToken    string
	flagAPIURL   string
	flagOutput   string
	flagFilter   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "beeminder",
	Short: "A CLI for the Beeminder REST API",
	Long: `Beeminder is a command-line client for the Beeminder REST API.

It allows shell scripting of Beeminder for usecases such as custom goal
reminders or adding datapoints through cron.

Credentials are resolved in order of preference from the --username and
--auth-token flags, the BEEMINDER_USERNAME and BEEMINDER_AUTH_TOKEN
environment variables, and the config file (see 'beeminder config path').`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		logging.SetLevel(level)

		if flagOutput != "json" && flagOutput != "table" {
			return fmt.Errorf("invalid output format %q (use json or table)", flagOutput)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagUsername, "username", "u", "", "Beeminder username (overrides environment and config file)")
	rootCmd.PersistentFlags().StringVarP(&flagToken, "auth-token", "t", "", "Beeminder API token (overrides environment and config file)")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", api.DefaultBaseURL, "Beeminder API root URL")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "json", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVar(&flagFilter, "filter", "", "GJSON path applied to JSON output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "loglevel", "error", "Logging level (none, error, info, debug)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(datapointCmd)
	rootCmd.AddCommand(configCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("beeminder %s\n", Version)
	},
}

// newClient resolves credentials and builds the API client. Resolution
// failure is a configuration error and happens before any network call.
func newClient() (*api.Client, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	creds, err := config.Resolve(flagUsername, flagToken, path)
	if err != nil {
		return nil, err
	}
	return api.NewClient(creds, flagAPIURL, Version), nil
}
