// Package main is the entry point for the agentscope CLI/TUI.
package main

import (
	"os"

	"github.com/agentscope-io/agentscope/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
