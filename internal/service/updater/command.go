package updater

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cursorup/internal/config"
	domain "cursorup/internal/domain/release"
	"cursorup/internal/logger"
	"cursorup/internal/release"
	launcherrepo "cursorup/internal/repository/launcher"
)

var errUpdaterAlreadyRunning = errors.New("the updater is already running")

// Options are inputs accepted by the updater entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
}

// runner holds the state of a single update execution.
// It is intentionally unexported—call Run(ctx, Options) from callers.
type runner struct {
	cfg *config.Config // Updater configuration loaded from YAML.
}

// Run executes the updater lifecycle and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "cursorup")

	up, err := newRunner(ctx, opts)
	if err != nil {
		return err
	}

	defer up.cleanup(ctx)

	if err = up.Run(ctx); err != nil {
		logger.ErrorKV(ctx, "Updater run failed", "error", err)
		return err
	}

	logger.Info(ctx, "Updater completed")

	return nil
}

// newRunner prepares the run and writes a marker to avoid concurrent runs.
func newRunner(ctx context.Context, opts *Options) (*runner, error) {
	up := &runner{}

	if IsUpdaterRunningNow(ctx) {
		return up, errUpdaterAlreadyRunning
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigFilename
	}

	settings, err := config.Load(configPath)
	if err != nil {
		return up, err
	}

	up.cfg = settings

	// The marker appears only once the run is viable, so a failed
	// startup never blocks the next invocation.
	updateMarker, err := os.Create(MarkerFilename)
	if err != nil {
		return up, err
	}

	if err = updateMarker.Close(); err != nil {
		_ = os.Remove(MarkerFilename)
		return up, err
	}

	return up, nil
}

// Run executes the update workflow for this runner instance:
// 1) Resolve the installed version from the artifact's file name.
// 2) Query the release source for the latest version and its asset.
// 3) Compare versions.
// 4) Download, verify and atomically swap in the new artifact.
// 5) Remove the previous artifact.
// 6) Rewrite the launcher descriptor to the new path.
func (u *runner) Run(ctx context.Context) error {
	logger.Info(ctx, "Resolving installed artifact")

	local, err := domain.ResolveLocal(u.cfg.ArtifactPath)
	if err != nil {
		return fmt.Errorf("resolve local artifact: %w", err)
	}

	logger.InfoKV(ctx, "Installed artifact resolved",
		"version", local.Name.Version.String(), "path", local.Path)

	arch := u.cfg.Architecture
	if arch == "" {
		arch = local.Name.Arch
	}

	logger.Info(ctx, "Querying release source for the latest version")

	client := release.NewClient(u.cfg.ReleaseURL, local.Name.Product, arch, u.cfg.QueryTimeout)

	latest, err := client.Latest(ctx)
	if err != nil {
		return fmt.Errorf("query latest release: %w", err)
	}

	logger.InfoKV(ctx, "Latest release found", "version", latest.Version.String())

	if !domain.IsNewer(local.Name.Version, latest.Version) {
		logger.InfoKV(ctx, "Already up to date",
			"local", local.Name.Version.String(), "remote", latest.Version.String())

		return nil
	}

	logger.InfoKV(ctx, "Update required",
		"local", local.Name.Version.String(), "remote", latest.Version.String())

	installer := NewInstaller(u.cfg.DownloadTimeout)

	newPath, err := installer.Install(ctx, latest.Asset, filepath.Dir(local.Path))
	if err != nil {
		return fmt.Errorf("install artifact: %w", err)
	}

	// The previous artifact goes away only after the swap succeeded, so
	// a failed install never leaves zero working copies.
	if local.Path != newPath {
		if err = os.Remove(local.Path); err != nil {
			return fmt.Errorf("remove previous artifact %s: %w", local.Path, err)
		}

		logger.InfoKV(ctx, "Previous artifact removed", "path", local.Path)
	}

	launcher := launcherrepo.NewFileRepository(u.cfg.LauncherFile)
	if err = launcher.UpdateExec(ctx, newPath); err != nil {
		// The swap already happened: report partial success loudly
		// instead of claiming the whole run failed silently.
		return fmt.Errorf("artifact updated to %s, but launcher rewrite failed: %w", newPath, err)
	}

	logger.InfoKV(ctx, "Update applied", "version", latest.Version.String(), "path", newPath)

	return nil
}

// cleanup removes the running marker.
func (u *runner) cleanup(ctx context.Context) {
	if _, err := os.Stat(MarkerFilename); err == nil {
		_ = os.Remove(MarkerFilename)
	}

	logger.Info(ctx, "The updater has been stopped")
}
