package launcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleDescriptor = `[Desktop Entry]
Name=Cursor
Exec=/opt/cursor/Cursor-1.0.0-x86_64.AppImage --no-sandbox %U
Icon=/opt/cursor/code.png
Type=Application
Categories=Utility;Development;
Terminal=false
`

// TestFileRepository_NotFound verifies UpdateExec fails for a missing descriptor.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.desktop"))
	err := repo.UpdateExec(context.Background(), "/opt/cursor/new")
	require.ErrorIs(t, err, ErrNotFound)
}

// TestFileRepository_NoExecLine verifies descriptors without the directive
// are rejected untouched.
func TestFileRepository_NoExecLine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cursor.desktop")
	original := "[Desktop Entry]\nName=Cursor\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	repo := NewFileRepository(path)
	err := repo.UpdateExec(context.Background(), "/opt/cursor/new")
	require.ErrorIs(t, err, ErrNoExecLine)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, original, string(contents))
}

// TestFileRepository_UpdateExec ensures only the path token changes and
// every other byte of the descriptor survives.
func TestFileRepository_UpdateExec(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cursor.desktop")
	require.NoError(t, os.WriteFile(path, []byte(sampleDescriptor), 0o644))

	repo := NewFileRepository(path)
	newPath := "/opt/cursor/Cursor-1.1.0-x86_64.AppImage"
	require.NoError(t, repo.UpdateExec(context.Background(), newPath))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `[Desktop Entry]
Name=Cursor
Exec=/opt/cursor/Cursor-1.1.0-x86_64.AppImage --no-sandbox %U
Icon=/opt/cursor/code.png
Type=Application
Categories=Utility;Development;
Terminal=false
`
	require.Equal(t, want, string(contents))
}

// TestFileRepository_UpdateExec_NoArguments covers directive lines holding
// only a path.
func TestFileRepository_UpdateExec_NoArguments(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cursor.desktop")
	require.NoError(t, os.WriteFile(path, []byte("Exec=/old/path\n"), 0o644))

	repo := NewFileRepository(path)
	require.NoError(t, repo.UpdateExec(context.Background(), "/new/path"))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Exec=/new/path\n", string(contents))
}
