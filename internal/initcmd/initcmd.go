package initcmd

import (
	"context"
	"os"

	"github.com/colin-cli/colin/internal/clierr"
	"github.com/colin-cli/colin/internal/command"
	"github.com/colin-cli/colin/internal/logging"
	"github.com/colin-cli/colin/internal/pkgcache"
	"github.com/colin-cli/colin/internal/prompt"
	"github.com/colin-cli/colin/internal/registry"
	"github.com/colin-cli/colin/internal/runtime"
	"github.com/colin-cli/colin/internal/scaffold"
)

// Name is the command name registered with the lifecycle.
const Name = "init"

// Execer runs a descriptor's install or start command.
type Execer interface {
	Exec(ctx context.Context, command, failMsg string) error
}

// Env holds everything the init workflow talks to.
type Env struct {
	WorkDir      string // where the project is created
	TemplatesDir string // dependency tree the cache links into
	StoreDir     string // versioned cache entries
	TargetPath   string // local template package; bypasses the cache when set
	Registry     string // npm registry base URL

	Templates registry.Lister
	Prompter  prompt.Prompter
	Progress  prompt.Progress
	Installer pkgcache.Installer
	Resolver  pkgcache.Resolver
	Runner    Execer
	Generator runtime.Generator
}

// Command is the init workflow. It implements command.Implementation.
type Command struct {
	env Env

	projectName string
	force       bool

	templates  []registry.Descriptor
	info       *ProjectInfo
	descriptor registry.Descriptor
	pkg        *pkgcache.Package
}

// New returns an init Command bound to env.
func New(env Env) *Command {
	return &Command{env: env}
}

// Init reads the optional project name and the force flag.
func (c *Command) Init(args []string, opts command.Options) error {
	if len(args) > 0 {
		c.projectName = args[0]
	}
	c.force = opts.Bool("force")

	logger := logging.GetLogger("init")
	logger.Debug().Str("projectName", c.projectName).Bool("force", c.force).Msg("init arguments")
	return nil
}

// Exec runs prepare, downloadTemplate and installTemplate.
func (c *Command) Exec(ctx context.Context) error {
	logger := logging.GetLogger("init")

	info, err := c.prepare(ctx)
	if err != nil {
		return err
	}
	if info == nil {
		logger.Info().Msg("init cancelled")
		return nil
	}
	c.info = info
	logger.Debug().Interface("project", info).Msg("project info collected")

	if err := c.downloadTemplate(ctx); err != nil {
		return err
	}
	return c.installTemplate(ctx)
}

// Info returns the collected ProjectInfo, nil before prepare completes.
func (c *Command) Info() *ProjectInfo { return c.info }

// Package returns the template package handle after downloadTemplate.
func (c *Command) Package() *pkgcache.Package { return c.pkg }

func (c *Command) prepare(ctx context.Context) (*ProjectInfo, error) {
	templates, err := c.env.Templates.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, clierr.New(clierr.NoTemplates, "no templates available")
	}
	c.templates = templates

	empty, err := scaffold.IsDirEmpty(c.env.WorkDir)
	if err != nil {
		return nil, err
	}
	if !empty {
		if !c.force {
			ok, err := c.env.Prompter.Confirm("The current directory is not empty. Continue creating the project here?", false)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, nil
			}
		}
		// Force skips the question above, never this one.
		ok, err := c.env.Prompter.Confirm("Empty the current directory? Every file in it will be deleted.", false)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		if err := scaffold.EmptyDir(c.env.WorkDir); err != nil {
			return nil, err
		}
	}

	return CollectProjectInfo(c.env.Prompter, c.projectName, templates)
}

func (c *Command) downloadTemplate(ctx context.Context) error {
	d, ok := registry.Find(c.templates, c.info.Template)
	if !ok {
		return clierr.Newf(clierr.NotFound, "template %s not found", c.info.Template)
	}
	c.descriptor = d

	opts := pkgcache.Options{
		StoreDir:   c.env.StoreDir,
		TargetPath: c.env.TemplatesDir,
		Name:       d.NpmName,
		Version:    d.Version,
		Registry:   c.env.Registry,
	}
	if c.env.TargetPath != "" {
		opts = pkgcache.Options{TargetPath: c.env.TargetPath, Name: d.NpmName, Version: d.Version}
	}
	pkg, err := pkgcache.New(opts, c.env.Installer, c.env.Resolver)
	if err != nil {
		return err
	}

	exists, err := pkg.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		err = c.env.Progress.Run("Downloading template...", func() error { return pkg.Install(ctx) })
	} else {
		err = c.env.Progress.Run("Updating template...", func() error { return pkg.Update(ctx) })
	}
	if err != nil {
		return err
	}

	c.pkg = pkg
	return nil
}

func (c *Command) installTemplate(ctx context.Context) error {
	logger := logging.GetLogger("init")
	logger.Debug().Stringer("package", c.pkg).Str("type", string(c.descriptor.InstallType())).Msg("installing template")

	switch c.descriptor.InstallType() {
	case registry.TypeStandard:
		return c.installStandard(ctx)
	case registry.TypeCustom:
		return c.installCustom(ctx)
	default:
		return clierr.Newf(clierr.Config, "unknown template type %q", c.descriptor.Type)
	}
}

func (c *Command) installStandard(ctx context.Context) error {
	var copied []string
	err := c.env.Progress.Run("Installing template...", func() error {
		if err := os.MkdirAll(c.env.WorkDir, 0755); err != nil {
			return clierr.Wrap(err, clierr.Install, "creating working directory")
		}
		files, err := scaffold.CopyTree(c.pkg.TemplateDir(), c.env.WorkDir)
		if err != nil {
			return clierr.Wrap(err, clierr.Install, "copying template")
		}
		copied = files
		return nil
	})
	if err != nil {
		return err
	}

	// Only what the template shipped is rendered; files kept in the working
	// directory are left alone.
	if err := scaffold.RenderFiles(ctx, c.env.WorkDir, copied, c.info.RenderContext(), c.descriptor.Ignore); err != nil {
		return err
	}

	if err := c.env.Runner.Exec(ctx, c.descriptor.InstallCommand, "dependency installation failed"); err != nil {
		return err
	}
	return c.env.Runner.Exec(ctx, c.descriptor.StartCommand, "start command failed")
}

func (c *Command) installCustom(ctx context.Context) error {
	entry, ok := c.pkg.RootFilePath()
	if !ok {
		return clierr.Newf(clierr.MissingEntryPoint, "custom template %s declares no entry point", c.pkg)
	}

	return c.env.Generator.Run(ctx, entry, runtime.GeneratorOptions{
		Template:   c.descriptor,
		Project:    c.info,
		SourcePath: c.pkg.TemplateDir(),
		TargetPath: c.env.WorkDir,
	})
}
