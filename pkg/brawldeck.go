// Package brawldeck holds build metadata for the brawldeck binary.
package brawldeck

var (
	// Version is set by the build with ldflags.
	Version = "v0.1.0"

	// Build is the build timestamp, set by the build with ldflags.
	Build = "n/a"
)
