package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gocql/gocql"

	"github.com/sqlbound/sqlbound/backend"
	"github.com/sqlbound/sqlbound/backend/sqldb"
	"github.com/sqlbound/sqlbound/backend/widecolumn"
	"github.com/sqlbound/sqlbound/bind"
	"github.com/sqlbound/sqlbound/client"
	"github.com/sqlbound/sqlbound/internal/config"
	"github.com/sqlbound/sqlbound/internal/debug"
	"github.com/sqlbound/sqlbound/internal/ui"
)

// openSession connects a session for the configured provider.
func openSession(cfg *config.Config) (*client.Session, error) {
	var (
		adapter backend.Adapter
		err     error
	)

	switch cfg.Provider {
	case "widecolumn", "cassandra", "scylla":
		if len(cfg.Hosts) == 0 {
			return nil, fmt.Errorf("no hosts configured for the wide-column provider (set hosts in .sqlbound.yaml or SQLBOUND_HOSTS)")
		}
		level, perr := gocql.ParseConsistencyWrapper(cfg.Consistency)
		if perr != nil {
			return nil, fmt.Errorf("invalid consistency level %q: %w", cfg.Consistency, perr)
		}
		adapter, err = widecolumn.Connect(cfg.Hosts, cfg.Keyspace, widecolumn.WithDefaultConsistency(level))
	default:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("no database URL configured (set DATABASE_URL or database_url in .sqlbound.yaml)")
		}
		adapter, err = sqldb.Open(cfg.Provider, cfg.DatabaseURL)
	}
	if err != nil {
		return nil, err
	}
	debug.Debug("backend connected", "provider", cfg.Provider)

	session := client.New(adapter)
	if cfg.Verbose {
		session.Use(func(ctx context.Context, event *client.QueryEvent, next func() error) error {
			err := next()
			ui.TraceQuery(event.SQL, event.Duration, err)
			return err
		})
	}
	return session, nil
}

// parseParams converts --param key=value pairs into a params record.
// Values are typed by literal form: null, true/false, integer, float,
// everything else is text. A value prefixed with str: is always text.
func parseParams(pairs []string) (map[string]any, error) {
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", pair)
		}
		params[key] = parseLiteral(raw)
	}
	return params, nil
}

func parseLiteral(raw string) any {
	switch raw {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if rest, ok := strings.CutPrefix(raw, "str:"); ok {
		return rest
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// queryContext applies a per-call consistency override for the wide-column
// provider; other providers ignore it.
func queryContext(ctx context.Context, cfg *config.Config, consistency string) (context.Context, error) {
	if consistency == "" {
		return ctx, nil
	}
	if cfg.Provider != "widecolumn" && cfg.Provider != "cassandra" && cfg.Provider != "scylla" {
		return nil, fmt.Errorf("--consistency only applies to the wide-column provider")
	}
	level, err := gocql.ParseConsistencyWrapper(consistency)
	if err != nil {
		return nil, fmt.Errorf("invalid consistency level %q: %w", consistency, err)
	}
	return widecolumn.WithConsistency(ctx, level), nil
}

// tabulate flattens raw rows for table rendering. Column order follows the
// first row.
func tabulate(rows []backend.Row) (headers []string, cells [][]string) {
	if len(rows) == 0 {
		return nil, nil
	}
	headers = rows[0].Columns()
	cells = make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, len(headers))
		for i, name := range headers {
			value, ok := row.Column(name)
			if !ok {
				continue
			}
			line[i] = renderValue(value)
		}
		cells = append(cells, line)
	}
	return headers, cells
}

func renderValue(v bind.Value) string {
	if v.IsNull() {
		return "NULL"
	}
	return v.String()
}
