package cli

import (
	"encoding/json"
	"fmt"
	goruntime "runtime"

	"github.com/colin-cli/colin/internal/branding"
	"github.com/colin-cli/colin/internal/config"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build and cache information as JSON")
	rootCmd.AddCommand(versionCmd)
}

// buildInfo is the --json payload.
type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Package   string `json:"package"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
	CacheRoot string `json:"cacheRoot,omitempty"`
	Registry  string `json:"registry,omitempty"`
}

func currentBuildInfo(c *config.Config) buildInfo {
	info := buildInfo{
		Version:   buildVersion,
		Commit:    buildCommit,
		Date:      buildDate,
		Package:   branding.NpmPackage(),
		GoVersion: goruntime.Version(),
		Platform:  goruntime.GOOS + "/" + goruntime.GOARCH,
	}
	if c != nil {
		info.CacheRoot = c.CacheRoot
		info.Registry = c.Registry
	}
	return info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch {
		case versionShort:
			fmt.Fprintln(out, buildVersion)
		case versionJSON:
			data, err := json.MarshalIndent(currentBuildInfo(cfg), "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
		default:
			info := currentBuildInfo(cfg)
			fmt.Fprintf(out, "%s %s (%s, commit %s, built %s, %s)\n",
				branding.CLIName(), info.Version, info.Package, info.Commit, info.Date, info.Platform)
		}
		return nil
	},
}
