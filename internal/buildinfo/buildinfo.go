// Package buildinfo carries the version stamped in with -ldflags, e.g.
//
//	go build -ldflags "-X voxelbox/internal/buildinfo.Version=v0.3.0"
package buildinfo

import "fmt"

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for the window title and logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		if len(Commit) > 7 {
			return Commit[:7]
		}
		return Commit
	}
	return "dev"
}

// String is the full identifier printed by voxtool version.
func String() string {
	return fmt.Sprintf("voxelbox %s (commit %s, built %s)", Version, Commit, Date)
}
