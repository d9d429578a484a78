// Package version exposes build metadata (semantic version, commit and
// build timestamp) injected at build time via ldflags, plus a helper to
// attach a cobra `version` subcommand.
package version
