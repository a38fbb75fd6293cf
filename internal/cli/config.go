package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpdarago/beeminder/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stored credentials",
	Long: `Manage the persisted Beeminder credentials file.

Examples:
  beeminder config list                    # Show stored settings
  beeminder config get username            # Get a specific setting
  beeminder config set auth_token abc123   # Store the API token
  beeminder config path                    # Show the config file location

Available settings:
  username      - Beeminder username
  auth_token    - Beeminder API token`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a stored setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configKeys = []string{"username", "auth_token"}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}

func loadConfigFile() (*config.Config, string, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func configField(cfg *config.Config, key string) (*string, error) {
	switch key {
	case "username":
		return &cfg.Username, nil
	case "auth_token":
		return &cfg.AuthToken, nil
	default:
		return nil, fmt.Errorf("unknown config key: %s\nValid keys: %s", key, strings.Join(configKeys, ", "))
	}
}

func runConfigList(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfigFile()
	if err != nil {
		return err
	}
	table := stdoutTable([]string{"Key", "Value"})
	table.Append([]string{"username", cfg.Username})
	table.Append([]string{"auth_token", maskToken(cfg.AuthToken)})
	table.Render()
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfigFile()
	if err != nil {
		return err
	}
	field, err := configField(cfg, args[0])
	if err != nil {
		return err
	}
	fmt.Println(*field)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfigFile()
	if err != nil {
		return err
	}
	field, err := configField(cfg, args[0])
	if err != nil {
		return err
	}
	*field = args[1]
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Printf("%s updated in %s\n", args[0], path)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.DefaultPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// maskToken hides all but the last four characters of a token for display.
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
