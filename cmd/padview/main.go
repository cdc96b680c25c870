// Package main is the entry point for padview.
package main

import (
	"os"

	"github.com/dshills/padview/internal/cli"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	cmd := cli.NewRootCommand(info, cli.DefaultEnv())
	if err := cmd.Execute(); err != nil {
		cli.PrintError(os.Stderr, err, cli.NewDiagnosticStyles(cli.IsColorEnabled(os.Stderr)))
		return cli.ExitCode(err)
	}
	return cli.ExitSuccess
}
