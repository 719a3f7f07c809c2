package skywire

import (
	"fmt"
	"runtime/debug"
	"strconv"
)

// Version is set at build time via
// -ldflags "-X 'github.com/irig106tm/skywire/internal/skywire.Version=X'".
var Version string

func getBuildSetting(bi *debug.BuildInfo, key, fallback string) string {
	for _, bs := range bi.Settings {
		if bs.Key == key {
			return bs.Value
		}
	}
	return fallback
}

// BuildInfo is a terse, human-printable summary of how this binary
// was built, printed by the bench tools' help, usage and banner output.
func BuildInfo() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "skywire (unknown build)"
	}

	revision := getBuildSetting(bi, "vcs.revision", "UNKNOWN")
	dirtyStr := getBuildSetting(bi, "vcs.modified", "")
	if dirty, err := strconv.ParseBool(dirtyStr); err == nil && dirty {
		revision += "-dirty"
	}

	version := Version
	if version == "" {
		version = "dev"
	}

	return fmt.Sprintf("skywire %s (revision %s)", version, revision)
}
