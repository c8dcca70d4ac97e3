package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldline/fieldline/internal/matching"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Match the canonical field catalog against the target table",
	Long: "Runs the tiered matcher over every catalog field and reports which physical column " +
		"each resolved to, at what confidence, and which discovered columns no field claimed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newApp()
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		if _, _, _, err := rt.resolveContext(ctx); err != nil {
			return err
		}

		snapshot, err := rt.session.Snapshot(ctx)
		if err != nil {
			return err
		}

		batch := matching.MatchAll(rt.catalog, snapshot.Index())

		if flagJSON {
			return printJSON(batch)
		}

		fmt.Printf("%-30s %-40s %-10s %s\n", "FIELD", "COLUMN", "CONF", "METHOD")
		for _, r := range batch.Results {
			column := r.MatchedColumn
			if !r.Matched {
				column = "-"
			}
			fmt.Printf("%-30s %-40s %-10.1f %s\n", r.FieldID, column, r.Confidence, r.Method)
		}

		fmt.Printf("\n%d/%d fields matched (%d high, %d medium, %d low confidence)\n",
			batch.Stats.Matched, batch.Stats.Total,
			batch.Stats.HighConfidence, batch.Stats.MediumConfidence, batch.Stats.LowConfidence)

		if len(batch.UnmatchedColumns) > 0 {
			fmt.Printf("\nUnclaimed columns:\n")
			for _, name := range batch.UnmatchedColumns {
				fmt.Printf("  %s\n", name)
			}
		}
		return nil
	},
}

func init() {
	addContextFlags(reconcileCmd)
}
