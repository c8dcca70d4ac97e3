package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldline/fieldline/internal/history"
)

var (
	historyLimit  int
	historyOffset int
	historyStatus string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the local query history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded queries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, total, err := store.List(historyLimit, historyOffset, historyStatus)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(map[string]any{"total": total, "entries": entries})
		}

		fmt.Printf("%d queries recorded\n\n", total)
		for _, e := range entries {
			fmt.Printf("[%s] %s  %s  %d rows  %dms\n",
				e.StartedAt.Format("2006-01-02 15:04:05"), e.Status, e.QueryID, e.RowCount, e.DurationMS)
			fmt.Printf("  %s\n", e.SQL)
			if e.ErrorMessage != "" {
				fmt.Printf("  error: %s\n", e.ErrorMessage)
			}
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded queries",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum entries to return")
	historyListCmd.Flags().IntVar(&historyOffset, "offset", 0, "Entries to skip")
	historyListCmd.Flags().StringVar(&historyStatus, "status", "", "Filter by status (success or failed)")
	historyListCmd.Flags().BoolVar(&flagJSON, "json", false, "Emit JSON instead of text")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
}
