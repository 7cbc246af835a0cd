// Package version holds the build version, overridden at release time via ldflags.
package version

// Version is the current tubesum version.
var Version = "0.3.1"
