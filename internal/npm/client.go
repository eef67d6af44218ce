package npm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/colin-cli/colin/internal/branding"
	"github.com/colin-cli/colin/internal/clierr"
)

// Packument is the registry metadata document for one package.
type Packument struct {
	Name     string             `json:"name"`
	DistTags map[string]string  `json:"dist-tags"`
	Versions map[string]Version `json:"versions"`
}

// Version is the metadata for one published version.
type Version struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Main    string `json:"main,omitempty"`
	Dist    Dist   `json:"dist"`
}

// Dist locates and authenticates a version's tarball.
type Dist struct {
	Tarball   string `json:"tarball"`
	Shasum    string `json:"shasum,omitempty"`
	Integrity string `json:"integrity,omitempty"`
}

// Client queries a single registry.
type Client struct {
	registry   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// New creates a Client for the given registry base URL.
func New(registry string, opts ...Option) *Client {
	c := &Client{
		registry:   strings.TrimRight(registry, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the registry base URL.
func (c *Client) Registry() string {
	return c.registry
}

// HTTPClient returns the HTTP client used for registry calls, so tarball
// downloads share its transport.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// PackumentURL returns the metadata URL for a package. The slash of a scoped
// name is escaped, as registries expect.
func (c *Client) PackumentURL(name string) string {
	return c.registry + "/" + url.PathEscape(name)
}

// Packument fetches the metadata document for name.
func (c *Client) Packument(ctx context.Context, name string) (*Packument, error) {
	if name == "" {
		return nil, clierr.New(clierr.Config, "package name is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PackumentURL(name), nil)
	if err != nil {
		return nil, clierr.Wrap(err, clierr.Registry, "creating request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", branding.CLIName())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, clierr.Wrapf(err, clierr.Registry, "fetching metadata for %s", name)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, clierr.Newf(clierr.NotFound, "package %s not found in %s", name, c.registry)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, clierr.Newf(clierr.Registry, "registry returned status %d for %s", resp.StatusCode, name)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, clierr.Wrap(err, clierr.Registry, "reading response body")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, clierr.Newf(clierr.NotFound, "empty metadata for %s", name)
	}

	var p Packument
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, clierr.Wrapf(err, clierr.Registry, "parsing metadata for %s", name)
	}
	return &p, nil
}

// ResolveLatest returns the version tagged "latest".
func (c *Client) ResolveLatest(ctx context.Context, name string) (string, error) {
	p, err := c.Packument(ctx, name)
	if err != nil {
		return "", err
	}
	latest := p.DistTags["latest"]
	if latest == "" {
		return "", clierr.Newf(clierr.NotFound, "package %s has no latest tag", name)
	}
	return latest, nil
}

// Versions returns every published version of name, in no particular order.
func (c *Client) Versions(ctx context.Context, name string) ([]string, error) {
	p, err := c.Packument(ctx, name)
	if err != nil {
		return nil, err
	}
	versions := make([]string, 0, len(p.Versions))
	for v := range p.Versions {
		versions = append(versions, v)
	}
	return versions, nil
}

// ResolveNewerThan returns the highest published version strictly greater than
// base. ok is false when nothing newer exists or the lookup fails.
func (c *Client) ResolveNewerThan(ctx context.Context, name, base string) (string, bool) {
	versions, err := c.Versions(ctx, name)
	if err != nil {
		return "", false
	}
	return NewestAbove(base, versions)
}

// Dist returns the tarball record for one version.
func (c *Client) Dist(ctx context.Context, name, version string) (*Version, error) {
	p, err := c.Packument(ctx, name)
	if err != nil {
		return nil, err
	}
	v, ok := p.Versions[version]
	if !ok {
		return nil, clierr.Newf(clierr.NotFound, "version %s of %s not found", version, name)
	}
	if v.Dist.Tarball == "" {
		return nil, clierr.Newf(clierr.Registry, "version %s of %s has no tarball", version, name)
	}
	return &v, nil
}

// String describes the client for log output.
func (c *Client) String() string {
	return fmt.Sprintf("npm registry %s", c.registry)
}
