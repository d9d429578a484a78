package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cursorup/internal/logger"
)

// ExecDirective is the descriptor line prefix holding the executable path.
const ExecDirective = "Exec="

var (
	// ErrNotFound is returned when the descriptor file does not exist.
	ErrNotFound = errors.New("launcher descriptor not found")
	// ErrNoExecLine is returned when no Exec directive line is recognized.
	ErrNoExecLine = errors.New("no Exec line in launcher descriptor")
)

// FileRepository rewrites the Exec directive of a .desktop launcher
// descriptor on disk. Every line other than the directive is preserved
// byte-for-byte, including order and trailing newlines.
type FileRepository struct {
	// path is the filesystem location of the descriptor.
	path string
}

// NewFileRepository creates a repository for the descriptor at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// UpdateExec replaces the path token of the Exec directive with
// executablePath and writes the descriptor back in a single write.
// Arguments following the path token on the directive line are preserved.
func (r *FileRepository) UpdateExec(ctx context.Context, executablePath string) error {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", r.path, ErrNotFound)
		}

		return fmt.Errorf("read launcher descriptor: %w", err)
	}

	info, err := os.Stat(r.path)
	if err != nil {
		return fmt.Errorf("stat launcher descriptor: %w", err)
	}

	lines := strings.Split(string(contents), "\n")

	directiveIndex := -1

	for i, line := range lines {
		if strings.HasPrefix(line, ExecDirective) {
			directiveIndex = i
			break
		}
	}

	if directiveIndex < 0 {
		return fmt.Errorf("%s: %w", r.path, ErrNoExecLine)
	}

	lines[directiveIndex] = rewriteDirective(lines[directiveIndex], executablePath)

	logger.InfoKV(ctx, "Rewriting launcher Exec line",
		"descriptor", r.path, "executable", executablePath)

	rewritten := strings.Join(lines, "\n")
	if err = os.WriteFile(r.path, []byte(rewritten), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write launcher descriptor: %w", err)
	}

	return nil
}

// rewriteDirective swaps only the path token of an Exec line,
// keeping any arguments that follow it.
func rewriteDirective(line, executablePath string) string {
	value := strings.TrimPrefix(line, ExecDirective)

	if _, args, found := strings.Cut(value, " "); found {
		return ExecDirective + executablePath + " " + args
	}

	return ExecDirective + executablePath
}
