package main

import (
	"os"

	"github.com/AirplaneConcept/BatchOCR/cmd"
)

// Version information - these are set during build time via ldflags
var (
	Version   = "dev"     // Application version (e.g., "v1.2.3")
	GitCommit = "none"    // Git commit hash
	BuildTime = "unknown" // Build timestamp
)

func main() {
	cmd.SetVersionInfo(Version, GitCommit, BuildTime)

	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
