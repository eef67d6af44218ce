package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/colin-cli/colin/internal/branding"
	"github.com/colin-cli/colin/internal/config"
	"github.com/colin-cli/colin/internal/logging"
	"github.com/colin-cli/colin/internal/npm"
	"github.com/colin-cli/colin/internal/updater"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagDebug      bool
	flagTargetPath string
	flagStrictExit bool
)

// cfg is loaded once in PersistentPreRunE and shared by every subcommand.
var cfg *config.Config

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&flagTargetPath, "target-path", "t", "", "Use a local template package instead of the registry")
	rootCmd.PersistentFlags().BoolVar(&flagStrictExit, "strict-exit", false, "Exit non-zero when a command fails")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` resolves project templates from an npm registry, caches them under
~/` + branding.HomeDir() + `, and scaffolds new projects from them.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		applyFlags(cmd, loaded)
		cfg = loaded

		logging.Setup(cfg.Debug)

		if cmd.Name() == "version" {
			return nil
		}
		u := updater.New(branding.NpmPackage(), buildVersion, npm.New(cfg.Registry))
		u.CheckAndPrintBanner(cmd.Context(), os.Stderr, cfg.CacheRoot)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		printUnknownCommand(cmd.OutOrStdout(), cmd, args[0])
		return nil
	},
}

// applyFlags lets explicitly set global flags override loaded configuration.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("debug") {
		c.Debug = flagDebug
	}
	if flags.Changed("target-path") {
		c.TargetPath = flagTargetPath
	}
	if flags.Changed("strict-exit") {
		c.StrictExit = flagStrictExit
	}
}

func printUnknownCommand(w io.Writer, root *cobra.Command, name string) {
	var names []string
	for _, c := range root.Commands() {
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}
	fmt.Fprintf(w, "Unknown command %q. Available commands: %s\n", name, strings.Join(names, ", "))
}

// Execute runs the root command with build info injected via ldflags. The
// context is cancelled on interrupt.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
