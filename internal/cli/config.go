package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/colin-cli/colin/internal/branding"
	"github.com/colin-cli/colin/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd, configGetCmd, configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored at ~/` + branding.HomeDir() + `/config.yaml.

Environment variables (` + branding.EnvVar("<KEY>") + `) and ~/.env take part in
resolution; set only writes the config file.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := checkKey(key); err != nil {
			return err
		}
		if err := cfg.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (saved to %s)\n", key, value, cfg.FilePath())
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkKey(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfg.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every setting with its resolved value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printSettings(cmd.OutOrStdout(), cfg)
		return nil
	},
}

func checkKey(key string) error {
	if !config.IsKey(key) {
		return fmt.Errorf("unknown config key %q, known keys: %s", key, strings.Join(config.Keys, ", "))
	}
	return nil
}

// printSettings shows raw keys followed by the derived locations init uses.
func printSettings(w io.Writer, c *config.Config) {
	for _, key := range config.Keys {
		fmt.Fprintf(w, "%-18s %s\n", key, c.Get(key))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-18s %s\n", "effective registry", c.Registry)
	fmt.Fprintf(w, "%-18s %s\n", "cache root", c.CacheRoot)
	fmt.Fprintf(w, "%-18s %s\n", "template store", c.StoreDir())
}
