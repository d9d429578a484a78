// Package release contains core domain types for the update workflow.
//
// It defines strict version parsing and ordering, the artifact naming
// convention (<product>-<major>.<minor>.<patch>-<arch>.<ext>), and the
// local/remote artifact references the updater compares.
package release
