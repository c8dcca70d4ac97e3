package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fieldline/fieldline/internal/matching"
	"github.com/fieldline/fieldline/internal/signals"
)

var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "Report which governance signals the target table can support",
	Long: "Matches the catalog against the target table and folds the results over each " +
		"signal's declared contributors, reporting matched versus total weight per signal.",
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
		availability := signals.ComputeAvailability(rt.catalog, batch)

		if flagJSON {
			return printJSON(availability)
		}

		evaluable := signals.EvaluableSignals(availability)
		evaluableSet := make(map[signals.Signal]bool, len(evaluable))
		for _, s := range evaluable {
			evaluableSet[s] = true
		}

		fmt.Printf("%-25s %-12s %s\n", "SIGNAL", "EVALUABLE", "WEIGHT")
		for _, s := range sortedSignals(availability) {
			a := availability[s]
			state := "no"
			if evaluableSet[s] {
				state = "yes"
			}
			fmt.Printf("%-25s %-12s %.1f/%.1f\n", a.Signal, state, a.MatchedWeight, a.TotalWeight)
			for _, c := range a.Fields {
				fmt.Printf("  %-23s -> %s\n", c.FieldID, c.Column)
			}
		}
		return nil
	},
}

func sortedSignals(availability map[signals.Signal]signals.Availability) []signals.Signal {
	out := make([]signals.Signal, 0, len(availability))
	for s := range availability {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func init() {
	addContextFlags(signalsCmd)
}
