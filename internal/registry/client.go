package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/colin-cli/colin/internal/branding"
	"github.com/colin-cli/colin/internal/clierr"
	"github.com/colin-cli/colin/internal/logging"
	"github.com/colin-cli/colin/internal/manifest"
)

// ListPath is the template list endpoint, relative to the service base URL.
const ListPath = "/project/template"

// DefaultTimeout bounds a list request.
const DefaultTimeout = 10 * time.Second

// Lister returns the available templates.
type Lister interface {
	List(ctx context.Context) ([]Descriptor, error)
}

// Client reads the template list from the template service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	fallback   []Descriptor
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithFallback makes List return list instead of failing when the service
// cannot be reached or answers with an error status.
func WithFallback(list []Descriptor) Option {
	return func(cl *Client) {
		cl.fallback = list
	}
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches every template descriptor. A transport or status failure is a
// Registry error with no partial list, unless a fallback is configured. A
// response that fails schema validation is always an error.
func (c *Client) List(ctx context.Context) ([]Descriptor, error) {
	body, err := c.fetch(ctx)
	if err != nil {
		if c.fallback != nil {
			logger := logging.GetLogger("registry")
			logger.Warn().Err(err).Msg("template service unavailable, using built-in templates")
			return append([]Descriptor(nil), c.fallback...), nil
		}
		return nil, err
	}

	result, err := manifest.ValidateDescriptors(body)
	if err != nil {
		return nil, clierr.Wrap(err, clierr.Registry, "reading template list")
	}
	if !result.Valid {
		return nil, clierr.Newf(clierr.Registry, "invalid template list: %s", result.Summary())
	}

	var list []Descriptor
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, clierr.Wrap(err, clierr.Registry, "decoding template list")
	}
	return list, nil
}

func (c *Client) fetch(ctx context.Context) ([]byte, error) {
	url := c.baseURL + ListPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, clierr.Wrap(err, clierr.Registry, "creating request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", branding.CLIName())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, clierr.Wrapf(err, clierr.Registry, "fetching %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, clierr.Newf(clierr.Registry, "template service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, clierr.Wrap(err, clierr.Registry, "reading response body")
	}
	return body, nil
}

// String describes the client for log output.
func (c *Client) String() string {
	return fmt.Sprintf("template service %s", c.baseURL)
}
