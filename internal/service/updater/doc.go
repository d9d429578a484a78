// Package updater keeps the installed AppImage artifact up to date.
//
// It resolves the installed version from the artifact's file name, queries
// the release source for the latest version, and — when newer — downloads
// the new artifact to a temporary file beside the target, verifies it,
// swaps it in atomically, removes the stale copy and rewrites the desktop
// launcher descriptor to the new path.
package updater
