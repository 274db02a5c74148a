// Package versioninfo carries build metadata, set at link time with
// -ldflags "-X github.com/brk3/lifemanager/pkg/versioninfo.Version=...".
package versioninfo

var (
	Version   = "dev"
	BuildDate = "unknown"
)

type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
}

// Current returns the running binary's version info.
func Current() VersionInfo {
	return VersionInfo{Version: Version, BuildDate: BuildDate}
}
