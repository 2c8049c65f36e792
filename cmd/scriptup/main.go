// Package main is the entry point for the scriptup CLI.
//
// scriptup uploads a local script file to per-region S3 buckets across
// an AWS partition, and can roll a script back to its previous object
// version. Buckets default to <region>-aws-parallelcluster and are
// created with versioning enabled when requested.
//
// For detailed usage information, run:
//
//	scriptup --help
package main

import (
	"fmt"
	"os"

	"github.com/hpctools/scriptup/cmd/scriptup/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
