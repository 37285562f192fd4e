// Package version exposes the dkgw release version embedded at build time.
package version

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var versionContent string

// Get returns the current version, with whitespace trimmed
func Get() string {
	return strings.TrimSpace(versionContent)
}

// String returns the version line printed by the CLI.
func String() string {
	return "dkgw version " + Get()
}
