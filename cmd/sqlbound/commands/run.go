package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sqlbound/sqlbound/internal/config"
	"github.com/sqlbound/sqlbound/internal/debug"
	"github.com/sqlbound/sqlbound/internal/ui"
	"github.com/sqlbound/sqlbound/internal/watch"
)

// NewRunCommand creates the run command: execute a query file and render
// the result set.
func NewRunCommand() *cobra.Command {
	var (
		params      []string
		watchMode   bool
		consistency string
	)

	cmd := &cobra.Command{
		Use:   "run <query-file>",
		Short: "Run a templated query and print its rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			runOnce := func() error {
				debug.Debug("running query file", "file", args[0])
				sqlText, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}

				rows, err := session.QueryRaw(ctx, string(sqlText), record)
				if err != nil {
					return err
				}

				if len(rows) == 0 {
					ui.PrintRowCount(0)
					return nil
				}
				headers, cells := tabulate(rows)
				if err := ui.RenderTable(headers, cells); err != nil {
					return err
				}
				ui.PrintRowCount(len(rows))
				return nil
			}

			if !watchMode {
				return runOnce()
			}

			w, err := watch.New(args[0], runOnce)
			if err != nil {
				return err
			}
			defer w.Stop()
			ui.PrintInfo("watching %s, press ctrl+c to stop", args[0])
			return w.Start(func(err error) {
				ui.PrintError("%v", err)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "bind parameter as key=value (repeatable)")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "re-run when the query file changes")
	cmd.Flags().StringVar(&consistency, "consistency", "", "per-call consistency level (wide-column provider only)")

	return cmd
}
