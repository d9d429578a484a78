package updater

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"cursorup/internal/logger"
)

const (
	// MarkerFilename marks that the updater is running right now to avoid parallel execution.
	MarkerFilename = "cursorup-update-marker.bin"

	// partialFilePattern names in-progress downloads in the target
	// directory so that interrupted runs leave recognizable leftovers.
	partialFilePattern = ".cursorup-*.partial"

	// artifactFileMode is applied to the installed artifact.
	artifactFileMode os.FileMode = 0o755

	// markerLifetime is the period after which a stale update marker is ignored.
	markerLifetime = 30 * time.Minute

	// baseUpdaterExecutable is the process name used for stale-marker recovery.
	baseUpdaterExecutable = "cursorup"
)

// IsUpdaterRunningNow checks presence of a marker file and attempts recovery if it looks stale.
func IsUpdaterRunningNow(ctx context.Context) bool {
	logger.Info(ctx, "Checking for the presence of an update marker")

	fileInfo, err := os.Stat(MarkerFilename)
	if err == nil {
		if time.Since(fileInfo.ModTime()) <= markerLifetime {
			return true
		}

		logger.Info(ctx, "The update marker is too old, attempting cleanup")

		if err = terminateProcessByName(updaterExecutable()); err != nil {
			return true
		}

		if err = os.Remove(MarkerFilename); err != nil {
			return true
		}

		return false
	}

	if errors.Is(err, os.ErrNotExist) {
		logger.Info(ctx, "Update marker not found, continuing")
		return false
	}

	logger.Infof(ctx, "Unable to read update marker: %v", err)

	return false
}

// removeStalePartials deletes leftover partial downloads in the target
// directory before a new download starts. An interrupted run must never
// leave the next one confused about which file is the artifact.
func removeStalePartials(ctx context.Context, targetDir string) {
	stale, err := filepath.Glob(filepath.Join(targetDir, partialFilePattern))
	if err != nil {
		return
	}

	for _, path := range stale {
		if err = os.Remove(path); err != nil {
			logger.WarnKV(ctx, "Unable to remove stale partial download",
				"path", path, "error", err)
			continue
		}

		logger.InfoKV(ctx, "Removed stale partial download", "path", path)
	}
}

// terminateProcessByName tries to kill processes with the provided executable name.
func terminateProcessByName(processName string) error {
	processList, err := ps.Processes()
	if err != nil {
		return err
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() != processName {
			continue
		}

		var runningProcess *os.Process

		runningProcess, err = os.FindProcess(process.Pid())
		if err != nil {
			return err
		}

		if err = runningProcess.Kill(); err != nil {
			return err
		}
	}

	return nil
}

// getExecutableExtension returns ".exe" on Windows and "" elsewhere.
func getExecutableExtension() string {
	if strings.Contains(strings.ToLower(runtime.GOOS), "windows") {
		return ".exe"
	}

	return ""
}

func updaterExecutable() string {
	return baseUpdaterExecutable + getExecutableExtension()
}
