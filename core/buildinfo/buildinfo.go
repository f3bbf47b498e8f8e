// Package buildinfo carries release metadata stamped by the linker, e.g.
//
//	go build -ldflags "-X github.com/m3rciful/specialtybot/core/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

var (
	Version = "dev"
	Commit  = "local"
	// Date is RFC 3339; empty for local builds.
	Date = ""
)
