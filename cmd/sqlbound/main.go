// Package main is the entry point for the sqlbound CLI.
package main

import (
	"os"

	"github.com/sqlbound/sqlbound/cmd/sqlbound/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
