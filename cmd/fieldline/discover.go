package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover the physical columns of the target table",
	Long: "Queries INFORMATION_SCHEMA for the target table's columns and prints each with " +
		"its data type and inferred kind. With no --table, the primary asset table is located " +
		"automatically.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newApp()
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		database, schema, table, err := rt.resolveContext(ctx)
		if err != nil {
			return err
		}

		snapshot, err := rt.session.Snapshot(ctx)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(snapshot)
		}

		fmt.Printf("Table: %s.%s.%s (%d columns)\n\n", database, schema, table, len(snapshot.Columns))
		fmt.Printf("%-40s %-20s %-10s %s\n", "COLUMN", "TYPE", "NULLABLE", "KIND")
		for _, col := range snapshot.Columns {
			nullable := "no"
			if col.Nullable {
				nullable = "yes"
			}
			fmt.Printf("%-40s %-20s %-10s %s\n", col.Name, col.DataType, nullable, col.Kind)
		}
		return nil
	},
}

func init() {
	addContextFlags(discoverCmd)
}
