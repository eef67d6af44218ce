package updater

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	cacheFileName = "version-check.json"
	// DefaultCacheMaxAge is how long a version check stays fresh.
	DefaultCacheMaxAge = 24 * time.Hour
)

// VersionCache records the last version check.
type VersionCache struct {
	// Newer is the highest published version above Current, empty if none.
	Newer     string    `json:"newer,omitempty"`
	Current   string    `json:"current"`
	CheckedAt time.Time `json:"checked_at"`
}

// UpdateAvailable reports whether the check found a newer release for the
// version that is running now.
func (c *VersionCache) UpdateAvailable(current string) bool {
	return c != nil && c.Current == current && c.Newer != ""
}

// Stale reports whether the cache is missing, older than maxAge, or was
// recorded by a different CLI version.
func (c *VersionCache) Stale(current string, maxAge time.Duration, now time.Time) bool {
	if c == nil || c.Current != current {
		return true
	}
	return now.Sub(c.CheckedAt) > maxAge
}

// LoadCache reads the cache from dir. A missing file yields nil, nil.
func LoadCache(dir string) (*VersionCache, error) {
	data, err := os.ReadFile(filepath.Join(dir, cacheFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version cache: %w", err)
	}

	var cache VersionCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return &cache, nil
}

// SaveCache writes the cache to dir, creating it if needed.
func SaveCache(dir string, cache *VersionCache) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version cache: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, cacheFileName), data, 0644); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}
