package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldline/fieldline/internal/tenant"
)

var (
	tenantID        string
	tenantConfigOut string
)

var tenantConfigCmd = &cobra.Command{
	Use:   "tenant-config",
	Short: "Generate a tenant configuration from live schema discovery",
	Long: "Discovers the tenant's schema, reconciles the field catalog against the primary " +
		"asset table, collects custom metadata sets, classifications, and domains, and emits " +
		"the assembled configuration as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tenantID == "" {
			return fmt.Errorf("--tenant is required")
		}

		rt, err := newApp()
		if err != nil {
			return err
		}
		defer rt.Close()

		database := flagDatabase
		if database == "" {
			database = cfg.Snowflake.Database
		}
		schema := flagSchema
		if schema == "" {
			schema = cfg.Snowflake.Schema
		}
		if database == "" || schema == "" {
			return fmt.Errorf("no database/schema selected: pass --database/--schema or set them in the config")
		}

		builder := tenant.NewBuilder(rt.exec, rt.catalog, rt.log)
		tenantCfg, err := builder.Build(cmd.Context(), tenantID, database, schema)
		if err != nil {
			return err
		}

		if tenantConfigOut != "" {
			f, err := os.Create(tenantConfigOut)
			if err != nil {
				return err
			}
			defer f.Close()
			return writeJSON(f, tenantCfg)
		}
		return printJSON(tenantCfg)
	},
}

func init() {
	addContextFlags(tenantConfigCmd)
	tenantConfigCmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant identifier to stamp into the config")
	tenantConfigCmd.Flags().StringVar(&tenantConfigOut, "out", "", "Write the config to a file instead of stdout")
}
