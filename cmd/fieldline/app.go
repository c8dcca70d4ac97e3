package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldline/fieldline/internal/catalog"
	"github.com/fieldline/fieldline/internal/discovery"
	"github.com/fieldline/fieldline/internal/history"
	"github.com/fieldline/fieldline/internal/pivot"
	"github.com/fieldline/fieldline/internal/session"
	"github.com/fieldline/fieldline/internal/warehouse"
	"github.com/fieldline/fieldline/pkg/logger"
)

// Shared schema-context flags.
var (
	flagDatabase string
	flagSchema   string
	flagTable    string
	flagJSON     bool
)

func addContextFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDatabase, "database", "", "Target database (defaults to config)")
	cmd.Flags().StringVar(&flagSchema, "schema", "", "Target schema (defaults to config)")
	cmd.Flags().StringVar(&flagTable, "table", "", "Target table (defaults to the primary asset table)")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Emit JSON instead of text")
}

// app bundles everything a command needs once the config is loaded.
type app struct {
	log     *logger.Logger
	exec    *warehouse.SnowflakeExecutor
	session *session.Session
	catalog *catalog.Catalog
	library *pivot.Library
	history *history.Store
}

// historyRecorder stamps the configured warehouse onto recorded entries.
type historyRecorder struct {
	store     *history.Store
	warehouse string
}

func (r historyRecorder) Add(e history.Entry) error {
	e.Warehouse = r.warehouse
	return r.store.Add(e)
}

func newApp() (*app, error) {
	log := logger.New("fieldline", Version)
	log.SetLevel(logger.ParseLevel(cfg.LogLevel))

	exec, err := warehouse.NewSnowflakeExecutor(cfg.Snowflake)
	if err != nil {
		return nil, err
	}

	c := catalog.Builtin()
	if cfg.CatalogFile != "" {
		if c, err = catalog.Load(cfg.CatalogFile); err != nil {
			return nil, err
		}
	}

	lib := pivot.Builtin()
	if cfg.PivotFile != "" {
		if lib, err = pivot.Load(cfg.PivotFile); err != nil {
			return nil, err
		}
	}

	a := &app{
		log:     log,
		exec:    exec,
		session: session.New(exec, log, cfg.Session),
		catalog: c,
		library: lib,
	}

	// A broken history path degrades to no audit trail, never blocks queries.
	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			log.Warnf("query history disabled: %v", err)
		} else {
			a.history = store
			a.session.SetRecorder(historyRecorder{store: store, warehouse: cfg.Snowflake.Warehouse})
		}
	}

	return a, nil
}

func (r *app) Close() {
	if r.history != nil {
		r.history.Close()
	}
	if r.exec != nil {
		r.exec.Close()
	}
}

// coverageExec returns the executor for direct engine runs, audited when the
// history store is open. Uses the session's active context for tagging.
func (r *app) coverageExec() warehouse.Executor {
	if r.history == nil {
		return r.exec
	}
	database, schema, _ := r.session.Context()
	return history.NewAuditedExecutor(r.exec, r.history, database, schema, cfg.Snowflake.Warehouse)
}

// resolveContext fills the schema context from flags, config, and primary
// table lookup, in that order.
func (r *app) resolveContext(ctx context.Context) (database, schema, table string, err error) {
	database = flagDatabase
	if database == "" {
		database = cfg.Snowflake.Database
	}
	schema = flagSchema
	if schema == "" {
		schema = cfg.Snowflake.Schema
	}
	if database == "" || schema == "" {
		return "", "", "", fmt.Errorf("no database/schema selected: pass --database/--schema or set them in the config")
	}

	table = flagTable
	if table == "" {
		d := discovery.NewDiscoverer(r.exec, r.log)
		tables, err := d.ListTables(ctx, database, schema)
		if err != nil {
			return "", "", "", err
		}
		table = discovery.FindPrimaryTable(tables)
		if table == "" {
			return "", "", "", fmt.Errorf("no primary asset table found in %s.%s: pass --table", database, schema)
		}
	}

	r.session.SetContext(database, schema, table)
	return database, schema, table, nil
}

func printJSON(v any) error {
	return writeJSON(os.Stdout, v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
