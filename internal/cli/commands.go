package cli

import (
	"fmt"
	"os"

	"github.com/colin-cli/colin/internal/command"
	"github.com/colin-cli/colin/internal/config"
	"github.com/colin-cli/colin/internal/initcmd"
	"github.com/colin-cli/colin/internal/npm"
	"github.com/colin-cli/colin/internal/pkgcache"
	"github.com/colin-cli/colin/internal/prompt"
	"github.com/colin-cli/colin/internal/registry"
	"github.com/colin-cli/colin/internal/runner"
	"github.com/colin-cli/colin/internal/runtime"
	"github.com/spf13/cobra"
)

// newCommandRegistry registers every lifecycle-driven command against c.
func newCommandRegistry(c *config.Config, workDir string) (*command.Registry, error) {
	env, err := newInitEnv(c, workDir)
	if err != nil {
		return nil, err
	}

	reg := command.NewRegistry()
	reg.Register(initcmd.Name, func() command.Implementation {
		return initcmd.New(env)
	})
	return reg, nil
}

func newInitEnv(c *config.Config, workDir string) (initcmd.Env, error) {
	var opts []registry.Option
	if c.TemplateFallback {
		fallback, err := registry.Fallback()
		if err != nil {
			return initcmd.Env{}, fmt.Errorf("loading built-in templates: %w", err)
		}
		opts = append(opts, registry.WithFallback(fallback))
	}

	return initcmd.Env{
		WorkDir:      workDir,
		TemplatesDir: c.TemplatesDir(),
		StoreDir:     c.StoreDir(),
		TargetPath:   c.TargetPath,
		Registry:     c.Registry,

		Templates: registry.New(c.TemplateAPI, opts...),
		Prompter:  prompt.New(os.Stdin, os.Stdout),
		Progress:  prompt.NewProgress(prompt.IsInteractive(os.Stdout), os.Stdout),
		Installer: pkgcache.NewTarballInstaller(),
		Resolver:  npm.New(c.Registry),
		Runner:    runner.New(workDir),
		Generator: &runtime.NodeRuntime{},
	}, nil
}

// runLifecycle builds the named command and drives it through its lifecycle.
func runLifecycle(cmd *cobra.Command, name string, argv []any) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	reg, err := newCommandRegistry(cfg, workDir)
	if err != nil {
		return err
	}

	lc, err := reg.Build(name, argv,
		command.WithStrictExit(cfg.StrictExit),
		command.WithMinNodeVersion(cfg.MinNodeVersion),
	)
	if err != nil {
		return err
	}
	return lc.Run(cmd.Context())
}
