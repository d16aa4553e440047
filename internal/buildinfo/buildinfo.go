// Package buildinfo exposes the build metadata reported by /health and
// logged at startup.
package buildinfo

import "time"

// Injected via -ldflags at build time; empty in dev builds.
var (
	BuildTime  string
	CommitHash string
)

// StartTime is the process start, RFC3339.
var StartTime = time.Now().UTC().Format(time.RFC3339)
