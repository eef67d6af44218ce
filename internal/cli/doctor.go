package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/colin-cli/colin/internal/branding"
	"github.com/colin-cli/colin/internal/config"
	"github.com/colin-cli/colin/internal/npm"
	"github.com/colin-cli/colin/internal/registry"
	"github.com/colin-cli/colin/internal/runtime"
	"github.com/spf13/cobra"
)

var (
	checkRuntime  bool
	checkCache    bool
	checkRegistry bool
)

const doctorTimeout = 10 * time.Second

func init() {
	doctorCmd.Flags().BoolVar(&checkRuntime, "check-runtime", false, "Verify node and npm are available")
	doctorCmd.Flags().BoolVar(&checkCache, "check-cache", false, "Verify the template cache directory")
	doctorCmd.Flags().BoolVar(&checkRegistry, "check-registry", false, "Verify the template service and npm registry respond")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for " + branding.DisplayName(),
	Long:  `Run diagnostic checks on the local toolchain, template cache and remote services.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		all := !checkRuntime && !checkCache && !checkRegistry

		if all || checkRuntime {
			runRuntimeCheck(cmd.Context(), out, cfg.MinNodeVersion)
		}
		if all || checkCache {
			runCacheCheck(out, cfg)
		}
		if all || checkRegistry {
			runRegistryCheck(cmd.Context(), out, cfg)
		}
		return nil
	},
}

func runRuntimeCheck(ctx context.Context, w io.Writer, minNode string) {
	fmt.Fprintln(w, "Runtime check:")

	version, err := runtime.NodeVersion(ctx)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] node: %v\n", err)
	} else if ok, cmpErr := npm.AtLeast(version, minNode); cmpErr != nil {
		fmt.Fprintf(w, "  [WARN] node %s: %v\n", version, cmpErr)
	} else if !ok {
		fmt.Fprintf(w, "  [FAIL] node %s is older than the required v%s\n", version, minNode)
	} else {
		fmt.Fprintf(w, "  [ OK ] node %s\n", version)
	}

	checkBinary(w, "npm")
}

func checkBinary(w io.Writer, name string) {
	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found\n", name)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
}

func runCacheCheck(w io.Writer, c *config.Config) {
	fmt.Fprintln(w, "Cache check:")

	info, err := os.Stat(c.StoreDir())
	switch {
	case os.IsNotExist(err):
		fmt.Fprintf(w, "  [INFO] %s does not exist yet; it is created on first init\n", c.StoreDir())
		return
	case err != nil:
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", c.StoreDir(), err)
		return
	case !info.IsDir():
		fmt.Fprintf(w, "  [FAIL] %s is not a directory\n", c.StoreDir())
		return
	}

	entries, err := os.ReadDir(c.StoreDir())
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] reading %s: %v\n", c.StoreDir(), err)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s (%d entries)\n", c.StoreDir(), len(entries))
}

func runRegistryCheck(ctx context.Context, w io.Writer, c *config.Config) {
	fmt.Fprintln(w, "Registry check:")

	ctx, cancel := context.WithTimeout(ctx, doctorTimeout)
	defer cancel()

	templates, err := registry.New(c.TemplateAPI).List(ctx)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] template service %s: %v\n", c.TemplateAPI, err)
	} else {
		fmt.Fprintf(w, "  [ OK ] template service %s (%d templates)\n", c.TemplateAPI, len(templates))
	}

	latest, err := npm.New(c.Registry).ResolveLatest(ctx, branding.NpmPackage())
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] npm registry %s: %v\n", c.Registry, err)
		return
	}
	fmt.Fprintf(w, "  [ OK ] npm registry %s (%s@%s)\n", c.Registry, branding.NpmPackage(), latest)
}
