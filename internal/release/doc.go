// Package release queries the remote release source for latest-release
// metadata.
//
// The Client issues one GET to a GitHub-style endpoint, parses the version
// tag and asset list, and selects the downloadable artifact whose name
// matches the local product and architecture.
package release
