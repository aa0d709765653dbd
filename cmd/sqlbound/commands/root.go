// Package commands implements the sqlbound CLI commands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/sqlbound/sqlbound/internal/ui"
)

// Execute builds the root command and runs it.
func Execute() error {
	rootCmd := &cobra.Command{
		Use:           "sqlbound",
		Short:         "Typed SQL templates against pluggable backends",
		Long:          "sqlbound compiles {name}-placeholder SQL templates, binds typed parameters and runs them against SQLite, PostgreSQL, MySQL or a Cassandra-compatible cluster.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewExecCommand())
	rootCmd.AddCommand(NewInitCommand())
	rootCmd.AddCommand(NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("%v", err)
		return err
	}
	return nil
}
