// Package version holds build metadata. The release build stamps the
// variables with -ldflags "-X github.com/Sumatoshi-tech/samplers/pkg/version.Version=...".
package version

import (
	"fmt"
	"runtime/debug"
)

const develVersion = "dev"

var (
	// Version is the semantic version of the binary.
	Version = develVersion
	// Commit is the Git hash the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// InitBinaryVersion fills Version from the module build info when the binary
// was installed with `go install` instead of the release build.
func InitBinaryVersion() {
	if Version != develVersion {
		return
	}

	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return
	}

	Version = info.Main.Version
}

// String renders the one-line version banner.
func String() string {
	return fmt.Sprintf("samplers %s (commit: %s, built: %s)", Version, Commit, Date)
}
