package builder

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const Name = "pktclass"

// Set by -ldflags "-X github.com/zxhio/pktclass/pkg/builder.Version=..."
var (
	Version   = "unknown"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

// vcsCommit falls back to the revision stamped by the go command when the
// build did not set Commit.
func vcsCommit() string {
	if Commit != "unknown" {
		return Commit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Commit
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return Commit
}

func BuildInfo() string {
	return fmt.Sprintf("%s %s (%s %s) %s %s/%s", Name, Version, vcsCommit(), Date, GoVersion, runtime.GOOS, runtime.GOARCH)
}
