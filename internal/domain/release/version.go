package release

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// ErrNoVersion is returned when no major.minor.patch triple is present.
var ErrNoVersion = errors.New("no version found")

// versionPattern matches a strict numeric major.minor.patch triple.
// Partial versions never match, so nothing defaults to zero.
var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// ParseVersion extracts the first major.minor.patch triple embedded in text
// and returns it as a semantic version.
func ParseVersion(text string) (*semver.Version, error) {
	match := versionPattern.FindString(text)
	if match == "" {
		return nil, fmt.Errorf("%q: %w", text, ErrNoVersion)
	}

	parsed, err := semver.NewVersion(match)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", match, err)
	}

	return parsed, nil
}

// IsNewer reports whether remote is strictly newer than local.
// Equal or older remote versions mean no update: no downgrade,
// no redundant reinstall.
func IsNewer(local, remote *semver.Version) bool {
	return remote.GreaterThan(local)
}
