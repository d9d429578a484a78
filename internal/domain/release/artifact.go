package release

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

var (
	// ErrArtifactNotFound is returned when the local artifact file is absent.
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrBadArtifactName is returned when a file name does not follow the
	// <product>-<major>.<minor>.<patch>-<arch>.<ext> convention.
	ErrBadArtifactName = errors.New("file name does not match naming convention")
)

// artifactNamePattern captures product, version, arch and extension from an
// artifact base name, e.g. Cursor-1.2.3-x86_64.AppImage.
var artifactNamePattern = regexp.MustCompile(`^(.+)-(\d+\.\d+\.\d+)-([A-Za-z0-9_]+)\.(.+)$`)

// ArtifactName is the decomposed form of an artifact file name.
type ArtifactName struct {
	// Product is the application name, e.g. "Cursor".
	Product string
	// Version is the version encoded in the name.
	Version *semver.Version
	// Arch is the architecture token, e.g. "x86_64".
	Arch string
	// Ext is the file extension without the leading dot, e.g. "AppImage".
	Ext string
}

// String reassembles the file name under the naming convention.
func (n ArtifactName) String() string {
	return fmt.Sprintf("%s-%s-%s.%s", n.Product, n.Version, n.Arch, n.Ext)
}

// ParseArtifactName decomposes an artifact base name, failing when the name
// does not follow the convention.
func ParseArtifactName(base string) (ArtifactName, error) {
	groups := artifactNamePattern.FindStringSubmatch(base)
	if groups == nil {
		return ArtifactName{}, fmt.Errorf("%q: %w", base, ErrBadArtifactName)
	}

	parsed, err := ParseVersion(groups[2])
	if err != nil {
		return ArtifactName{}, err
	}

	return ArtifactName{
		Product: groups[1],
		Version: parsed,
		Arch:    groups[3],
		Ext:     groups[4],
	}, nil
}

// LocalArtifact is the installed artifact resolved from disk.
type LocalArtifact struct {
	// Name is the decomposed file name.
	Name ArtifactName
	// Path is the canonical absolute path of the installed file.
	Path string
}

// Asset is a downloadable artifact announced by the release source.
type Asset struct {
	// Name is the decomposed file name of the asset.
	Name ArtifactName
	// URL is where the asset bytes are served from.
	URL string
	// Checksum is the expected SHA-256 of the asset bytes,
	// or nil when the release source did not announce one.
	Checksum []byte
}

// ResolveLocal confirms the configured artifact exists and extracts its
// version from the file name.
func ResolveLocal(path string) (*LocalArtifact, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrArtifactNotFound)
		}

		return nil, fmt.Errorf("stat artifact: %w", err)
	}

	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve artifact path: %w", err)
	}

	name, err := ParseArtifactName(filepath.Base(absolutePath))
	if err != nil {
		return nil, err
	}

	return &LocalArtifact{
		Name: name,
		Path: absolutePath,
	}, nil
}
