// Package mosca holds application-wide metadata for the MOSCA
// reporting engine.
package mosca

var (
	// Version is set during build by ldflags.
	Version = "v0.1.0"

	// Build is a timestamp set during build by ldflags.
	Build = "n/a"
)
