package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fieldline/fieldline/internal/coverage"
	"github.com/fieldline/fieldline/internal/matching"
)

var (
	coverageFilter  string
	coverageShowSQL bool
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Compute metadata coverage for the target table",
	Long: "Matches the catalog against the target table, builds a single aggregate query with " +
		"one population predicate per matched field, runs it, and reports each field's coverage " +
		"percentage.",
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

		ix := snapshot.Index()
		batch := matching.MatchAll(rt.catalog, ix)
		matched := coverage.FromBatch(batch, ix)
		tableRef := rt.session.TableRef()

		if coverageShowSQL {
			sql, ok := coverage.BuildCoverageQuery(matched, tableRef, coverageFilter)
			if !ok {
				return fmt.Errorf("coverage unavailable: no catalog field matched a column")
			}
			fmt.Println(sql)
			return nil
		}

		engine := coverage.NewEngine(rt.coverageExec(), rt.log)
		report, err := engine.Run(ctx, matched, tableRef, coverageFilter)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(report)
		}

		if !report.Available {
			fmt.Println("Coverage unavailable: no catalog field matched a column.")
			return nil
		}

		ids := make([]string, 0, len(report.Fields))
		for id := range report.Fields {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Printf("Rows scanned: %d\n\n", report.Total)
		fmt.Printf("%-30s %10s %8s\n", "FIELD", "POPULATED", "PCT")
		for _, id := range ids {
			fc := report.Fields[id]
			fmt.Printf("%-30s %10d %7.1f%%\n", id, fc.Count, fc.Percentage)
		}
		return nil
	},
}

func init() {
	addContextFlags(coverageCmd)
	coverageCmd.Flags().StringVar(&coverageFilter, "filter", "", "Optional WHERE clause body to scope the scan")
	coverageCmd.Flags().BoolVar(&coverageShowSQL, "sql", false, "Print the generated query instead of running it")
}
