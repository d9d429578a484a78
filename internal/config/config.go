package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the paths and endpoints the updater works with.
type Config struct {
	// ArtifactPath is the absolute path to the installed AppImage.
	ArtifactPath string `yaml:"artifact_path"`
	// LauncherFile is the absolute path to the .desktop launcher descriptor.
	LauncherFile string `yaml:"launcher_file"`
	// ReleaseURL is the endpoint returning latest-release metadata.
	ReleaseURL string `yaml:"release_url"`
	// Architecture optionally overrides the arch token expected in
	// release asset names (e.g. x86_64). When empty, the token of the
	// installed artifact's file name is used.
	Architecture string `yaml:"architecture"`
	// QueryTimeout bounds the release metadata request.
	QueryTimeout time.Duration `yaml:"query_timeout"`
	// DownloadTimeout bounds the artifact download.
	DownloadTimeout time.Duration `yaml:"download_timeout"`
}

const (
	// DefaultConfigFilename is the default filename for updater settings.
	DefaultConfigFilename = "cursorup-settings.yaml"

	// DefaultQueryTimeout is the default duration for the metadata query.
	DefaultQueryTimeout = 10 * time.Second

	// DefaultDownloadTimeout is the default duration for the artifact download.
	DefaultDownloadTimeout = 5 * time.Minute

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errArtifactPathRequired is returned when the artifact path is missing.
	errArtifactPathRequired = errors.New("artifact path must be provided")
	// errLauncherFileRequired is returned when the launcher path is missing.
	errLauncherFileRequired = errors.New("launcher file must be provided")
	// errReleaseURLRequired is returned when the release endpoint is missing.
	errReleaseURLRequired = errors.New("release URL must be provided")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and applies defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.ArtifactPath == "" {
		return errArtifactPathRequired
	}

	if cfg.LauncherFile == "" {
		return errLauncherFileRequired
	}

	if cfg.ReleaseURL == "" {
		return errReleaseURLRequired
	}

	if _, err := url.ParseRequestURI(cfg.ReleaseURL); err != nil {
		return fmt.Errorf("invalid release URL: %w", err)
	}

	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = DefaultQueryTimeout
	}

	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = DefaultDownloadTimeout
	}

	return nil
}
