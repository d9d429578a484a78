package release

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseVersion covers extraction of embedded triples and strictness on
// malformed input.
func TestParseVersion(t *testing.T) {
	t.Parallel()

	v, err := ParseVersion("1.2.3")
	require.NoError(t, err)
	require.Equal(t, "1.2.3", v.String())

	// Embedded in a larger string.
	v, err = ParseVersion("Cursor-0.42.3-x86_64.AppImage")
	require.NoError(t, err)
	require.Equal(t, uint64(0), v.Major())
	require.Equal(t, uint64(42), v.Minor())
	require.Equal(t, uint64(3), v.Patch())

	// Tag prefixes are fine, the triple is extracted.
	v, err = ParseVersion("v10.0.0")
	require.NoError(t, err)
	require.Equal(t, "10.0.0", v.String())

	// Missing components never default to zero.
	for _, bad := range []string{"", "bad", "1.2", "one.two.three"} {
		_, err = ParseVersion(bad)
		require.ErrorIs(t, err, ErrNoVersion, "input %q", bad)
	}
}

// TestParseVersion_RoundTrip ensures parse → format → parse is stable.
func TestParseVersion_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"0.0.1", "1.2.3", "10.0.0", "1.10.0", "9.9.9"} {
		v, err := ParseVersion(s)
		require.NoError(t, err)

		again, err := ParseVersion(v.String())
		require.NoError(t, err)
		require.True(t, v.Equal(again))
	}
}

// TestIsNewer checks the update decision against numeric component ordering.
func TestIsNewer(t *testing.T) {
	t.Parallel()

	cases := []struct {
		local  string
		remote string
		want   bool
	}{
		{"1.2.3", "1.2.3", false},
		{"1.2.3", "1.2.4", true},
		{"2.0.0", "1.9.9", false},
		// Numeric, not lexical: 1.10.0 > 1.9.9.
		{"1.9.9", "1.10.0", true},
		{"9.9.9", "10.0.0", true},
	}

	for _, tc := range cases {
		local, err := ParseVersion(tc.local)
		require.NoError(t, err)

		remote, err := ParseVersion(tc.remote)
		require.NoError(t, err)

		require.Equal(t, tc.want, IsNewer(local, remote),
			"local %s remote %s", tc.local, tc.remote)
	}
}
