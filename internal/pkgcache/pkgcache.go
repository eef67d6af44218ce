package pkgcache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/colin-cli/colin/internal/clierr"
	"github.com/colin-cli/colin/internal/logging"
	"github.com/colin-cli/colin/internal/manifest"
)

// LatestTag is the version placeholder replaced by Prepare.
const LatestTag = "latest"

// TemplateSubdir is the directory inside a template package that the standard
// install copies into the working directory.
const TemplateSubdir = "template"

// Resolver turns a package name into its latest published version.
type Resolver interface {
	ResolveLatest(ctx context.Context, name string) (string, error)
}

// Request is one install job handed to an Installer.
type Request struct {
	StoreDir   string
	TargetPath string
	Registry   string
	Name       string
	Version    string
}

// Installer fetches a package version into the store.
type Installer interface {
	Install(ctx context.Context, req Request) error
}

// Options configures a Package.
type Options struct {
	StoreDir   string // empty selects unmanaged mode
	TargetPath string
	Name       string
	Version    string // concrete version or "latest"
	Registry   string
}

// Package is one template package, cached or unmanaged.
type Package struct {
	opts      Options
	installer Installer
	resolver  Resolver
}

// New validates opts and returns a Package. The installer and resolver may be
// nil for an unmanaged package, which never touches the network.
func New(opts Options, installer Installer, resolver Resolver) (*Package, error) {
	if opts.Name == "" {
		return nil, clierr.New(clierr.Config, "package name is required")
	}
	if opts.StoreDir == "" && opts.TargetPath == "" {
		return nil, clierr.Newf(clierr.Config, "package %s needs a store directory or a target path", opts.Name)
	}
	if opts.Version == "" {
		opts.Version = LatestTag
	}
	if opts.StoreDir != "" && (installer == nil || resolver == nil) {
		return nil, clierr.Newf(clierr.Config, "managed package %s needs an installer and a resolver", opts.Name)
	}
	return &Package{opts: opts, installer: installer, resolver: resolver}, nil
}

// Name returns the package name.
func (p *Package) Name() string { return p.opts.Name }

// Version returns the current version, which is concrete after Prepare.
func (p *Package) Version() string { return p.opts.Version }

// Managed reports whether the package lives in the versioned store.
func (p *Package) Managed() bool { return p.opts.StoreDir != "" }

// Prepare creates the store directory and pins "latest" to a concrete version.
func (p *Package) Prepare(ctx context.Context) error {
	if p.opts.StoreDir != "" {
		if err := os.MkdirAll(p.opts.StoreDir, 0755); err != nil {
			return clierr.Wrapf(err, clierr.Install, "creating store directory %s", p.opts.StoreDir)
		}
	}
	if p.opts.Version != LatestTag || p.resolver == nil {
		return nil
	}

	latest, err := p.resolver.ResolveLatest(ctx, p.opts.Name)
	if err != nil {
		return err
	}
	p.opts.Version = latest
	return nil
}

// Exists reports whether the package is available locally. Managed packages
// are probed at their cache path; unmanaged ones at the target path.
func (p *Package) Exists(ctx context.Context) (bool, error) {
	if !p.Managed() {
		return dirExists(p.opts.TargetPath), nil
	}
	if err := p.Prepare(ctx); err != nil {
		return false, err
	}
	return dirExists(p.CachePath()), nil
}

// Install fetches the current version into the store. Callers check Exists
// first.
func (p *Package) Install(ctx context.Context) error {
	if err := p.Prepare(ctx); err != nil {
		return err
	}
	if !p.Managed() {
		return clierr.Newf(clierr.Config, "package %s is unmanaged and cannot be installed", p.opts.Name)
	}

	logger := logging.GetLogger("pkgcache")
	logger.Debug().Str("name", p.opts.Name).Str("version", p.opts.Version).Msg("installing package")

	err := p.installer.Install(ctx, Request{
		StoreDir:   p.opts.StoreDir,
		TargetPath: p.opts.TargetPath,
		Registry:   p.opts.Registry,
		Name:       p.opts.Name,
		Version:    p.opts.Version,
	})
	if err != nil {
		if clierr.CodeOf(err) == clierr.Install {
			return err
		}
		return clierr.Wrapf(err, clierr.Install, "installing %s@%s", p.opts.Name, p.opts.Version)
	}
	return nil
}

// Update converges the package on the latest published version, installing it
// when no entry exists yet. Calling it again at latest installs nothing.
func (p *Package) Update(ctx context.Context) error {
	if err := p.Prepare(ctx); err != nil {
		return err
	}
	if !p.Managed() {
		return nil
	}

	latest, err := p.resolver.ResolveLatest(ctx, p.opts.Name)
	if err != nil {
		return clierr.Wrapf(err, clierr.Install, "resolving latest version of %s", p.opts.Name)
	}

	if !dirExists(p.CachePathFor(latest)) {
		logger := logging.GetLogger("pkgcache")
		logger.Debug().Str("name", p.opts.Name).Str("from", p.opts.Version).Str("to", latest).Msg("updating package")

		prev := p.opts.Version
		p.opts.Version = latest
		if err := p.Install(ctx); err != nil {
			p.opts.Version = prev
			return err
		}
	}
	p.opts.Version = latest
	return nil
}

// CachePath returns the cache directory of the current version.
func (p *Package) CachePath() string {
	return p.CachePathFor(p.opts.Version)
}

// CachePathFor returns the cache directory of version.
func (p *Package) CachePathFor(version string) string {
	return CachePath(p.opts.StoreDir, p.opts.Name, version)
}

// Dir returns the package root: the cache path when managed, else the target
// path.
func (p *Package) Dir() string {
	if p.Managed() {
		return p.CachePath()
	}
	return p.opts.TargetPath
}

// TemplateDir returns the directory copied by a standard install.
func (p *Package) TemplateDir() string {
	return filepath.Join(p.Dir(), TemplateSubdir)
}

// RootFilePath returns the entry point declared by the nearest package.json
// at or above the package root, with forward slashes.
func (p *Package) RootFilePath() (string, bool) {
	return manifest.EntryPoint(p.Dir())
}

// String identifies the package for log output.
func (p *Package) String() string {
	return fmt.Sprintf("%s@%s", p.opts.Name, p.opts.Version)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
