package release

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseArtifactName verifies the naming convention is honored bit-exactly.
func TestParseArtifactName(t *testing.T) {
	t.Parallel()

	name, err := ParseArtifactName("Cursor-0.42.3-x86_64.AppImage")
	require.NoError(t, err)
	require.Equal(t, "Cursor", name.Product)
	require.Equal(t, "0.42.3", name.Version.String())
	require.Equal(t, "x86_64", name.Arch)
	require.Equal(t, "AppImage", name.Ext)
	require.Equal(t, "Cursor-0.42.3-x86_64.AppImage", name.String())

	for _, bad := range []string{
		"Cursor-bad-x86_64.AppImage",
		"Cursor-1.2-x86_64.AppImage",
		"Cursor-1.2.3.AppImage",
		"noextension",
	} {
		_, err = ParseArtifactName(bad)
		require.Error(t, err, "input %q", bad)
	}
}

// TestResolveLocal checks existence and name validation of the installed artifact.
func TestResolveLocal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// Missing file.
	_, err := ResolveLocal(filepath.Join(dir, "Cursor-1.0.0-x86_64.AppImage"))
	require.ErrorIs(t, err, ErrArtifactNotFound)

	// Present but badly named.
	badPath := filepath.Join(dir, "Cursor-bad-x86_64.AppImage")
	require.NoError(t, os.WriteFile(badPath, []byte("binary"), 0o755))

	_, err = ResolveLocal(badPath)
	require.ErrorIs(t, err, ErrBadArtifactName)

	// Present and well-formed.
	goodPath := filepath.Join(dir, "Cursor-0.42.3-x86_64.AppImage")
	require.NoError(t, os.WriteFile(goodPath, []byte("binary"), 0o755))

	local, err := ResolveLocal(goodPath)
	require.NoError(t, err)
	require.Equal(t, "0.42.3", local.Name.Version.String())
	require.True(t, filepath.IsAbs(local.Path))
	require.Equal(t, goodPath, local.Path)
}
