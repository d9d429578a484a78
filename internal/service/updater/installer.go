package updater

import (
	"context"
	"crypto"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	goupdate "github.com/doitdistributed/go-update"

	domain "cursorup/internal/domain/release"
	"cursorup/internal/logger"

	// Ensure SHA256 is available for artifact checksum verification.
	_ "crypto/sha256"
)

var (
	// ErrEmptyArtifact is returned when the downloaded artifact has no content.
	ErrEmptyArtifact = errors.New("downloaded artifact is empty")
	// errTruncatedDownload is returned when the stream ends before Content-Length.
	errTruncatedDownload = errors.New("download ended prematurely")
	// errBadHTTPStatus is returned on non-200 download responses.
	errBadHTTPStatus = errors.New("unexpected http status")
)

// progressLogStep is how many downloaded bytes pass between progress log lines.
const progressLogStep int64 = 32 << 20

// Installer downloads a release asset and swaps it in for the installed
// artifact. The swap is a same-directory rename, so a failure at any point
// before it leaves the previous artifact untouched and executable.
type Installer struct {
	httpClient *http.Client
}

// NewInstaller builds an installer whose downloads are bounded by timeout.
func NewInstaller(timeout time.Duration) *Installer {
	return &Installer{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Install downloads the asset into a temporary file beside the target,
// verifies it, and applies it atomically under the asset's conventional
// file name. It returns the absolute path of the installed artifact.
func (ins *Installer) Install(ctx context.Context, asset domain.Asset, targetDir string) (string, error) {
	// Leftovers of interrupted runs are reclaimed before downloading.
	removeStalePartials(ctx, targetDir)

	partialPath, err := ins.download(ctx, asset.URL, targetDir)
	if err != nil {
		return "", err
	}

	if err = verifyNonEmpty(partialPath); err != nil {
		_ = os.Remove(partialPath)
		return "", err
	}

	targetPath := filepath.Join(targetDir, asset.Name.String())

	if err = ins.apply(ctx, partialPath, targetPath, asset.Checksum); err != nil {
		_ = os.Remove(partialPath)
		return "", err
	}

	_ = os.Remove(partialPath)

	return targetPath, nil
}

// download streams the asset bytes into a recognizable partial file created
// in the target directory, so the final rename stays on one filesystem.
func (ins *Installer) download(ctx context.Context, url, targetDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}

	response, err := ins.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download artifact: %w", err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s, %s: %w", url, response.Status, errBadHTTPStatus)
	}

	partialFile, err := os.CreateTemp(targetDir, partialFilePattern)
	if err != nil {
		return "", fmt.Errorf("create partial file: %w", err)
	}

	partialPath := partialFile.Name()

	logger.InfoKV(ctx, "Downloading artifact", "url", url, "path", partialPath)

	progress := &progressWriter{
		ctx:   ctx,
		total: response.ContentLength,
	}

	written, err := io.Copy(io.MultiWriter(partialFile, progress), response.Body)
	if closeErr := partialFile.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(partialPath)
		return "", fmt.Errorf("download artifact: %w", err)
	}

	if response.ContentLength >= 0 && written != response.ContentLength {
		_ = os.Remove(partialPath)
		return "", fmt.Errorf("%d of %d bytes: %w", written, response.ContentLength, errTruncatedDownload)
	}

	logger.InfoKV(ctx, "Download completed", "bytes", written)

	return partialPath, nil
}

// verifyNonEmpty rejects zero-length downloads before they reach the swap step.
func verifyNonEmpty(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat downloaded artifact: %w", err)
	}

	if info.Size() == 0 {
		return ErrEmptyArtifact
	}

	return nil
}

// apply swaps the downloaded artifact in for targetPath. go-update writes a
// sibling file and renames it over the target, which keeps the replacement
// atomic; when the release source announced a checksum, it is verified
// before the rename.
func (ins *Installer) apply(ctx context.Context, partialPath, targetPath string, checksum []byte) error {
	data, err := os.Open(partialPath)
	if err != nil {
		return fmt.Errorf("open downloaded artifact: %w", err)
	}

	defer func() {
		_ = data.Close()
	}()

	// go-update renames the existing target aside before the swap,
	// so a fresh versioned path needs a placeholder first.
	placeholderCreated := false

	if _, err = os.Stat(targetPath); err != nil && os.IsNotExist(err) {
		var placeholder *os.File

		if placeholder, err = os.Create(targetPath); err != nil {
			return fmt.Errorf("create target file: %w", err)
		}

		if err = placeholder.Close(); err != nil {
			return fmt.Errorf("create target file: %w", err)
		}

		placeholderCreated = true
	}

	options := goupdate.Options{
		TargetPath: targetPath,
		TargetMode: artifactFileMode,
	}

	if len(checksum) > 0 {
		options.Checksum = checksum
		options.Hash = crypto.SHA256

		logger.Debug(ctx, "Verifying artifact checksum before swap")
	}

	if err = goupdate.Apply(data, options); err != nil {
		if placeholderCreated {
			_ = os.Remove(targetPath)
		}

		return fmt.Errorf("apply artifact: %w", err)
	}

	oldFileName := targetPath + ".old"
	if _, err = os.Stat(oldFileName); err == nil {
		_ = os.Remove(oldFileName)
	}

	logger.InfoKV(ctx, "Artifact swapped in", "path", targetPath)

	return nil
}

// progressWriter logs download progress as bytes pass through it.
type progressWriter struct {
	ctx        context.Context
	total      int64
	downloaded int64
	lastLogged int64
}

const bytesPerMB = 1 << 20

// Write counts bytes and emits a progress line every progressLogStep bytes.
func (w *progressWriter) Write(p []byte) (int, error) {
	w.downloaded += int64(len(p))

	if w.downloaded-w.lastLogged >= progressLogStep {
		w.lastLogged = w.downloaded

		if w.total > 0 {
			logger.Infof(w.ctx, "Downloading... %.1f%% (%.1f MB / %.1f MB)",
				float64(w.downloaded)/float64(w.total)*100,
				float64(w.downloaded)/bytesPerMB,
				float64(w.total)/bytesPerMB)
		} else {
			logger.Infof(w.ctx, "Downloading... %.1f MB", float64(w.downloaded)/bytesPerMB)
		}
	}

	return len(p), nil
}
