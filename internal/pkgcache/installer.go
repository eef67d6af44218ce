package pkgcache

import (
	"context"
	"crypto/sha1"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/colin-cli/colin/internal/branding"
	"github.com/colin-cli/colin/internal/clierr"
	"github.com/colin-cli/colin/internal/logging"
	"github.com/colin-cli/colin/internal/manifest"
	"github.com/colin-cli/colin/internal/npm"
	"github.com/colin-cli/colin/internal/platform"
	"github.com/colin-cli/colin/internal/runner"
	"github.com/google/uuid"
)

// DependencyRunner runs an allow-listed package-manager command in dir.
type DependencyRunner interface {
	Exec(ctx context.Context, dir, command, failMsg string) error
}

// TarballInstaller installs packages by downloading their registry tarball,
// unpacking it into the store and installing its production dependencies.
type TarballInstaller struct {
	httpClient *http.Client
	deps       DependencyRunner
}

// InstallerOption configures a TarballInstaller.
type InstallerOption func(*TarballInstaller)

// WithInstallerHTTPClient sets the HTTP client used for metadata and tarballs.
func WithInstallerHTTPClient(c *http.Client) InstallerOption {
	return func(i *TarballInstaller) {
		i.httpClient = c
	}
}

// WithDependencyRunner replaces the runner used for dependency installs.
func WithDependencyRunner(r DependencyRunner) InstallerOption {
	return func(i *TarballInstaller) {
		i.deps = r
	}
}

// NewTarballInstaller creates a TarballInstaller.
func NewTarballInstaller(opts ...InstallerOption) *TarballInstaller {
	i := &TarballInstaller{httpClient: http.DefaultClient, deps: npmRunner{}}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install downloads req.Name@req.Version from req.Registry, verifies it and
// moves it into its cache path. When req.TargetPath is set the package is also
// linked into TargetPath/node_modules.
func (i *TarballInstaller) Install(ctx context.Context, req Request) error {
	logger := logging.GetLogger("pkgcache")
	client := npm.New(req.Registry, npm.WithHTTPClient(i.httpClient))

	meta, err := client.Dist(ctx, req.Name, req.Version)
	if err != nil {
		return clierr.Wrapf(err, clierr.Install, "looking up %s@%s", req.Name, req.Version)
	}

	staging := filepath.Join(req.StoreDir, ".staging-"+uuid.NewString())
	if err := os.MkdirAll(staging, 0755); err != nil {
		return clierr.Wrap(err, clierr.Install, "creating staging directory")
	}
	defer os.RemoveAll(staging)

	archive := filepath.Join(staging, "package.tgz")
	if err := i.download(ctx, meta.Dist.Tarball, archive); err != nil {
		return clierr.Wrapf(err, clierr.Install, "downloading %s@%s", req.Name, req.Version)
	}
	if err := VerifyIntegrity(archive, meta.Dist); err != nil {
		return clierr.Wrapf(err, clierr.Install, "verifying %s@%s", req.Name, req.Version)
	}

	unpacked := filepath.Join(staging, "package")
	if err := ExtractPackage(archive, unpacked); err != nil {
		return clierr.Wrapf(err, clierr.Install, "unpacking %s@%s", req.Name, req.Version)
	}
	// Dependencies land in the staging copy, so a failed install leaves no
	// cache entry behind.
	if err := i.installDependencies(ctx, unpacked, req.Registry); err != nil {
		return clierr.Wrapf(err, clierr.Install, "installing dependencies of %s@%s", req.Name, req.Version)
	}

	dest := CachePath(req.StoreDir, req.Name, req.Version)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return clierr.Wrap(err, clierr.Install, "creating cache parent")
	}
	if err := os.Rename(unpacked, dest); err != nil {
		// Another process finished the same entry first.
		if !dirExists(dest) {
			return clierr.Wrapf(err, clierr.Install, "moving %s into the cache", req.Name)
		}
		logger.Debug().Str("path", dest).Msg("cache entry appeared during install")
	}

	if req.TargetPath != "" {
		if err := platform.LinkDir(dest, LinkPath(req.TargetPath, req.Name)); err != nil {
			return clierr.Wrapf(err, clierr.Install, "linking %s", req.Name)
		}
	}

	logger.Info().Str("name", req.Name).Str("version", req.Version).Msg("package installed")
	return nil
}

// DependencyCommand is the external installer run inside an unpacked package.
const DependencyCommand = "npm install --production"

func (i *TarballInstaller) installDependencies(ctx context.Context, dir, registry string) error {
	pkg, err := manifest.ReadPackageJSON(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(pkg.Dependencies) == 0 {
		return nil
	}

	command := DependencyCommand
	if registry != "" {
		command += " --registry " + registry
	}
	logger := logging.GetLogger("pkgcache")
	logger.Debug().Str("dir", dir).Int("dependencies", len(pkg.Dependencies)).Msg("installing package dependencies")
	return i.deps.Exec(ctx, dir, command, "dependency installation failed")
}

// npmRunner runs dependency installs through runner.Runner. Package-manager
// output goes to stderr so it does not mix with prompts.
type npmRunner struct{}

func (npmRunner) Exec(ctx context.Context, dir, command, failMsg string) error {
	r := runner.New(dir)
	r.Stdout = os.Stderr
	return r.Exec(ctx, command, failMsg)
}

func (i *TarballInstaller) download(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", branding.CLIName())

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating download file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return fmt.Errorf("writing download: %w", err)
	}
	return f.Close()
}

// ErrIntegrity is returned when a tarball does not match its registry digest.
var ErrIntegrity = errors.New("integrity mismatch")

// VerifyIntegrity checks archivePath against the SRI integrity string of dist,
// falling back to the legacy sha1 shasum. A dist with neither passes.
func VerifyIntegrity(archivePath string, dist npm.Dist) error {
	var (
		h      hash.Hash
		want   string
		encode func([]byte) string
	)
	switch {
	case strings.HasPrefix(dist.Integrity, "sha512-"):
		h, want, encode = sha512.New(), strings.TrimPrefix(dist.Integrity, "sha512-"), base64.StdEncoding.EncodeToString
	case strings.HasPrefix(dist.Integrity, "sha1-"):
		h, want, encode = sha1.New(), strings.TrimPrefix(dist.Integrity, "sha1-"), base64.StdEncoding.EncodeToString
	case dist.Shasum != "":
		h, want, encode = sha1.New(), strings.ToLower(dist.Shasum), hex.EncodeToString
	default:
		return nil
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive for checksum: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("computing checksum: %w", err)
	}
	if got := encode(h.Sum(nil)); got != want {
		return fmt.Errorf("%w: expected %s, got %s", ErrIntegrity, want, got)
	}
	return nil
}
