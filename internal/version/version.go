// Package version carries the release version stamped into every
// executable.
package version

// Version is overridden at release time via -ldflags.
var Version = "dev"
