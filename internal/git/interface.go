package git

import (
	"context"
)

// GitClient provides an abstraction over git operations for testability.
//
// The only operation the build needs is fetching a dependency's sources
// into a scratch directory; the clone must leave the dependency's own
// descriptor at the top of dest.
type GitClient interface {
	// Clone fetches the repository at url into dest, creating dest.
	Clone(url, dest string) error

	// WithContext returns a client whose commands are bound to ctx
	WithContext(ctx context.Context) GitClient
}
