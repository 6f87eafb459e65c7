// Package main provides the helixerpost command-line tool.
package main

import (
	"fmt"
	"os"
)

// Exit codes, adapted from vibe-vep's ExitSuccess/ExitError/ExitUsage
// scheme: run maps a usageError (bad arguments, missing files) to
// ExitUsage and every other failure to ExitError.
const (
	ExitSuccess = 0
	ExitUsage   = 1
	ExitError   = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if isUsageError(err) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}
