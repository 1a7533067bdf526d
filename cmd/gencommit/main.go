/*
Copyright © 2025 ACHAHBOUNE Oussama

gencommit - AI-powered git commit message generator using Claude
*/
package main

import (
	"os"

	"github.com/oussamaachahboune/gencommit/internal/cli"
	"github.com/oussamaachahboune/gencommit/internal/log"
	"github.com/oussamaachahboune/gencommit/internal/output"
)

// Version information (injected at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, GitCommit, BuildTime)
	if err := cli.Execute(); err != nil {
		log.Error("%v", err)
		os.Exit(output.GetExitCode(err))
	}
}
