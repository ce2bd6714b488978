// Package version carries build metadata injected at link time.
package version

import "fmt"

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Summary returns a human-friendly version string for CLI output.
func Summary() string {
	if CommitHash == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, CommitHash)
}
