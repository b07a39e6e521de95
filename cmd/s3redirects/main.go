package main

import (
	"os"

	"github.com/3leaps/s3redirects/internal/cmd"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "HEAD"
	buildDate = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, buildDate)

	err := cmd.Execute()
	cmd.Report(os.Stderr, err)
	os.Exit(cmd.ExitCode(err))
}
