package commands

import (
	"github.com/spf13/cobra"

	"github.com/sqlbound/sqlbound/internal/config"
	"github.com/sqlbound/sqlbound/internal/ui"
)

// NewInitCommand creates the init command: write a starter configuration.
func NewInitCommand() *cobra.Command {
	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the sqlbound configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(cfg); err != nil {
				return err
			}
			ui.PrintSuccess("configuration written for provider %s", cfg.Provider)
			ui.PrintSubtle("override the connection string per environment with DATABASE_URL")
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Provider, "provider", "sqlite", "backend provider: sqlite, postgres, mysql or widecolumn")
	cmd.Flags().StringVar(&cfg.DatabaseURL, "url", "", "connection string for SQL providers")
	cmd.Flags().StringSliceVar(&cfg.Hosts, "hosts", nil, "cluster hosts for the wide-column provider")
	cmd.Flags().StringVar(&cfg.Keyspace, "keyspace", "", "keyspace for the wide-column provider")
	cmd.Flags().StringVar(&cfg.Consistency, "consistency", "QUORUM", "default wide-column consistency level")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", false, "trace executed queries")

	return cmd
}
