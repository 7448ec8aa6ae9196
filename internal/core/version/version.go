// Package version reports what build is running
package version

import (
	"fmt"
	"runtime/debug"
)

// Stamped at link time:
//
//	-ldflags "-X recipescraper/internal/core/version.version=v0.3.0 -X recipescraper/internal/core/version.commit=abc1234"
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo identifies the running build
type BuildInfo struct {
	Service string `json:"service" example:"recipescraper-api"`
	Version string `json:"version" example:"v0.3.0"`
	Commit  string `json:"commit"  example:"abc1234"`
	Date    string `json:"date"    example:"2026-10-18T10:00:00Z"`
}

// Info returns the stamped build info, filling commit and date from VCS metadata when unstamped
func Info() BuildInfo {
	bi := BuildInfo{Service: "recipescraper-api", Version: version, Commit: commit, Date: date}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "":
				bi.Commit = s.Value
			case s.Key == "vcs.time" && bi.Date == "":
				bi.Date = s.Value
			}
		}
	}
	if bi.Commit == "" {
		bi.Commit = "none"
	}
	if bi.Date == "" {
		bi.Date = "unknown"
	}
	return bi
}

// String renders the build info on one line
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", b.Service, b.Version, b.Commit, b.Date)
}
