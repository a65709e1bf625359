// Package main is the entry point for the skillpick CLI.
package main

import (
	"os"

	"github.com/runger/skillpick/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
