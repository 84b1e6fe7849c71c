// Package version carries build metadata for the fplpipe binary.
//
// Set at link time:
//
//	go build -ldflags "-X github.com/rickgao/fpl-data/internal/version.Version=0.3.0 \
//	                   -X github.com/rickgao/fpl-data/internal/version.Commit=$(git rev-parse --short HEAD) \
//	                   -X github.com/rickgao/fpl-data/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/fplpipe
package version

import "runtime"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns a one-line version string including the Go toolchain.
func String() string {
	return Version + " (" + Commit + ") built " + BuildTime + " with " + runtime.Version()
}

// Fields returns the build metadata as slog key/value pairs.
func Fields() []any {
	return []any{"version", Version, "commit", Commit, "built", BuildTime}
}
