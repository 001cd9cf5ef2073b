// Package main is the entry point for the valuation CLI.
package main

import (
	"os"

	"valuation-platform/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
