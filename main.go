package main

import "github.com/workix/desktop/cmd"

// Build information (set by ldflags)
var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// Set build info in cmd package
	cmd.Version = Version
	cmd.Commit = Commit
	cmd.BuildTime = BuildTime

	cmd.Execute()
}
