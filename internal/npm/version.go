package npm

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b. A leading "v" is tolerated.
func CompareVersions(a, b string) (int, error) {
	av, err := ParseVersion(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := ParseVersion(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// AtLeast reports whether version >= minimum.
func AtLeast(version, minimum string) (bool, error) {
	cmp, err := CompareVersions(version, minimum)
	if err != nil {
		return false, err
	}
	return cmp >= 0, nil
}

// ParseVersion strips a leading "v" and parses the version string.
func ParseVersion(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
}

// IsValid reports whether version is a strict MAJOR.MINOR.PATCH semantic version.
func IsValid(version string) bool {
	_, err := semver.StrictNewVersion(version)
	return err == nil
}

// NewestAbove returns the highest version in candidates strictly greater
// than base. Unparseable candidates are skipped.
func NewestAbove(base string, candidates []string) (string, bool) {
	bv, err := ParseVersion(base)
	if err != nil {
		return "", false
	}

	var best *semver.Version
	bestRaw := ""
	for _, c := range candidates {
		cv, err := ParseVersion(c)
		if err != nil || !cv.GreaterThan(bv) {
			continue
		}
		if best == nil || cv.GreaterThan(best) {
			best = cv
			bestRaw = c
		}
	}
	if best == nil {
		return "", false
	}
	return bestRaw, true
}
