package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/konsave/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/konsave/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/konsave/internal/version.Date={{.Date}}
)

// String returns the version block printed by `konsave version`.
func String() string {
	return fmt.Sprintf("konsave %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
