package updater

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/colin-cli/colin/internal/logging"
	"github.com/pterm/pterm"
)

// DefaultTimeout bounds the registry lookup made on a stale cache.
const DefaultTimeout = 3 * time.Second

// DevVersion marks builds that never check for updates.
const DevVersion = "dev"

// VersionSource finds the newest published version above a base version.
type VersionSource interface {
	ResolveNewerThan(ctx context.Context, name, base string) (string, bool)
}

// Notifier checks for a newer CLI release and prints an upgrade notice.
type Notifier struct {
	pkg     string
	current string
	source  VersionSource
	timeout time.Duration
	maxAge  time.Duration
	now     func() time.Time
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithTimeout bounds the registry lookup.
func WithTimeout(d time.Duration) Option {
	return func(n *Notifier) {
		n.timeout = d
	}
}

// WithClock replaces time.Now (useful for testing).
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		n.now = now
	}
}

// New creates a Notifier for the npm package pkg running at version current.
func New(pkg, current string, source VersionSource, opts ...Option) *Notifier {
	n := &Notifier{
		pkg:     pkg,
		current: current,
		source:  source,
		timeout: DefaultTimeout,
		maxAge:  DefaultCacheMaxAge,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Check returns the newest version above the running one, consulting the
// cache in dir first and refreshing it when stale. Failures only mean no
// notice.
func (n *Notifier) Check(ctx context.Context, dir string) (string, bool) {
	if n.current == "" || n.current == DevVersion {
		return "", false
	}
	logger := logging.GetLogger("updater")

	cache, err := LoadCache(dir)
	if err != nil {
		logger.Debug().Err(err).Msg("ignoring unreadable version cache")
		cache = nil
	}

	if cache.Stale(n.current, n.maxAge, n.now()) {
		ctx, cancel := context.WithTimeout(ctx, n.timeout)
		defer cancel()

		newer, _ := n.source.ResolveNewerThan(ctx, n.pkg, n.current)
		cache = &VersionCache{Newer: newer, Current: n.current, CheckedAt: n.now()}
		if err := SaveCache(dir, cache); err != nil {
			logger.Debug().Err(err).Msg("could not save version cache")
		}
	}

	if !cache.UpdateAvailable(n.current) {
		return "", false
	}
	return cache.Newer, true
}

// CheckAndPrintBanner prints the upgrade notice to w when a newer version
// exists.
func (n *Notifier) CheckAndPrintBanner(ctx context.Context, w io.Writer, dir string) {
	if latest, ok := n.Check(ctx, dir); ok {
		PrintUpdateBanner(w, n.pkg, n.current, latest)
	}
}

// PrintUpdateBanner writes the upgrade notice.
func PrintUpdateBanner(w io.Writer, pkg, current, latest string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, pterm.Yellow(fmt.Sprintf("Update available: %s -> %s", current, latest)))
	fmt.Fprintln(w, pterm.Yellow(fmt.Sprintf("    Run `npm install -g %s` to upgrade", pkg)))
	fmt.Fprintln(w)
}
