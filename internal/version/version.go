// Package version holds build information, set at link time with
// -ldflags "-X github.com/macropower/tripchart/internal/version.Version=...".
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const unknown = "unknown"

var (
	Version   = "0.0.0"
	Revision  = unknown
	Branch    = unknown
	BuildDate = unknown
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Revision == unknown && s.Value != "" {
				Revision = s.Value
			}
		case "vcs.time":
			if BuildDate == unknown && s.Value != "" {
				BuildDate = s.Value
			}
		}
	}
}

// Short returns the version and abbreviated revision, e.g. "1.2.3+abc1234".
func Short() string {
	rev := Revision
	if len(rev) > 7 {
		rev = rev[:7]
	}

	return fmt.Sprintf("%s+%s", Version, rev)
}

// Info returns a multi-line description of the build.
func Info() string {
	return fmt.Sprintf("version: %s\nrevision: %s\nbranch: %s\nbuild date: %s\ngo: %s %s/%s",
		Version, Revision, Branch, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
