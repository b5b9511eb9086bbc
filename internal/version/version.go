// Package version holds the application version string, set at build time
// via -ldflags when releasing.
package version

// Version is the application version. Overridden at build time.
var Version = "0.9.0"
