// Package config defines updater settings and provides helpers to load,
// validate and save them in YAML format.
//
// The Config type holds the installed artifact path, the launcher
// descriptor path, the release metadata endpoint, the architecture token
// used to select release assets, and network timeouts.
package config
