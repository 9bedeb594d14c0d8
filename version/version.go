// Package version holds build metadata injected at link time.
package version

import "runtime"

// These are set via ldflags at build time:
//
//	go build -ldflags "-X github.com/wyawin/docaudit/version.GitRelease=v0.2.0 ..."
var (
	// GitRelease is the release tag, e.g. "v0.2.0".
	GitRelease = "dev"

	// GitCommit is the commit hash the binary was built from.
	GitCommit = "unknown"

	// GitCommitDate is the date of the commit.
	GitCommitDate = "unknown"
)

// GoInfo reports the Go toolchain used for the build.
var GoInfo = runtime.Version()
