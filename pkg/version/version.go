// Package version holds the CLI version, set at build time via ldflags.
package version

// Version is the semantic version of the CLI.
var Version = "0.0.0-dev"
