package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldline/fieldline/internal/pivot"
)

var (
	pivotDimensions []string
	pivotMeasures   []string
	pivotWhere      string
	pivotRun        bool
)

var pivotCmd = &cobra.Command{
	Use:   "pivot",
	Short: "Resolve and run pivot templates against the target table",
}

var pivotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available pivot definitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib := pivot.Builtin()
		if cfg != nil && cfg.PivotFile != "" {
			loaded, err := pivot.Load(cfg.PivotFile)
			if err != nil {
				return err
			}
			lib = loaded
		}

		if flagJSON {
			return printJSON(lib.Pivots())
		}

		for _, p := range lib.Pivots() {
			fmt.Printf("%-30s %s\n", p.ID, p.Title)
			if p.Description != "" {
				fmt.Printf("%-30s %s\n", "", p.Description)
			}
		}
		return nil
	},
}

var pivotResolveCmd = &cobra.Command{
	Use:   "resolve <pivot-id>",
	Short: "Adapt a pivot template to the target table's actual columns",
	Args:  cobra.ExactArgs(1),
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

		def, ok := rt.library.Pivot(args[0])
		if !ok {
			return fmt.Errorf("unknown pivot %q", args[0])
		}

		snapshot, err := rt.session.Snapshot(ctx)
		if err != nil {
			return err
		}

		resolver := pivot.NewResolver(rt.library, rt.catalog, rt.log)
		resolved := resolver.Resolve(def, rt.session.TableRef(), snapshot.Index())

		return emitResolved(ctx, rt, resolved)
	},
}

var pivotBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a custom pivot from dimension and measure ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(pivotDimensions) == 0 && len(pivotMeasures) == 0 {
			return fmt.Errorf("pass at least one --dimension or --measure")
		}

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

		resolver := pivot.NewResolver(rt.library, rt.catalog, rt.log)
		resolved, err := resolver.BuildCustomPivotSQL(pivotDimensions, pivotMeasures,
			rt.session.TableRef(), pivotWhere, snapshot.Index())
		if err != nil {
			return err
		}

		return emitResolved(ctx, rt, resolved)
	},
}

func emitResolved(ctx context.Context, rt *app, resolved pivot.ResolvedPivot) error {
	if pivotRun {
		records, err := rt.session.Query(ctx, resolved.SQL)
		if err != nil {
			return err
		}
		return printJSON(records)
	}

	if flagJSON {
		return printJSON(resolved)
	}

	fmt.Println(resolved.SQL)
	if len(resolved.MissingColumns) > 0 {
		fmt.Printf("\n-- unresolved columns: %s\n", strings.Join(resolved.MissingColumns, ", "))
	}
	for _, alt := range resolved.Alternates {
		fmt.Printf("-- %s resolved via alternate %s\n", alt.Token, alt.UsedAlternateName)
	}
	return nil
}

func init() {
	pivotListCmd.Flags().BoolVar(&flagJSON, "json", false, "Emit JSON instead of text")

	addContextFlags(pivotResolveCmd)
	pivotResolveCmd.Flags().BoolVar(&pivotRun, "run", false, "Execute the resolved query and print its rows")

	addContextFlags(pivotBuildCmd)
	pivotBuildCmd.Flags().StringSliceVar(&pivotDimensions, "dimension", nil, "Dimension id to group by (repeatable)")
	pivotBuildCmd.Flags().StringSliceVar(&pivotMeasures, "measure", nil, "Measure id to aggregate (repeatable)")
	pivotBuildCmd.Flags().StringVar(&pivotWhere, "where", "", "Optional WHERE clause body")
	pivotBuildCmd.Flags().BoolVar(&pivotRun, "run", false, "Execute the built query and print its rows")

	pivotCmd.AddCommand(pivotListCmd)
	pivotCmd.AddCommand(pivotResolveCmd)
	pivotCmd.AddCommand(pivotBuildCmd)
}
