package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sqlbound/sqlbound/internal/config"
	"github.com/sqlbound/sqlbound/internal/ui"
)

// NewExecCommand creates the exec command: run a mutation and report the
// affected rows.
func NewExecCommand() *cobra.Command {
	var (
		params      []string
		file        string
		consistency string
	)

	cmd := &cobra.Command{
		Use:   "exec [sql]",
		Short: "Execute a templated mutation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sqlText := ""
			switch {
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				sqlText = string(data)
			case len(args) == 1:
				sqlText = args[0]
			default:
				return cmd.Usage()
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			record, err := parseParams(params)
			if err != nil {
				return err
			}

			session, err := openSession(cfg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			defer session.Close(ctx)

			ctx, err = queryContext(ctx, cfg, consistency)
			if err != nil {
				return err
			}

			result, err := session.Exec(ctx, sqlText, record)
			if err != nil {
				return err
			}

			if result.LastInsertID != nil {
				ui.PrintSuccess("%d row(s) affected, last insert id %d", result.RowsAffected, *result.LastInsertID)
			} else {
				ui.PrintSuccess("%d row(s) affected", result.RowsAffected)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "bind parameter as key=value (repeatable)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the SQL from a file")
	cmd.Flags().StringVar(&consistency, "consistency", "", "per-call consistency level (wide-column provider only)")

	return cmd
}
