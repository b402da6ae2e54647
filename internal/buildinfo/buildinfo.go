// Package buildinfo holds build-time variables injected via ldflags, e.g.
//
//	-ldflags "-X github.com/go-ports/ctxmanager/internal/buildinfo.Version=v1.2.0"
package buildinfo

// Defaults are used for local builds.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
)
