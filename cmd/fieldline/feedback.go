package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldline/fieldline/internal/feedback"
)

var (
	feedbackRating  int
	feedbackHelpful bool
	feedbackComment string
	feedbackUser    string
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record and summarize pivot feedback",
}

var feedbackSubmitCmd = &cobra.Command{
	Use:   "submit <pivot-id>",
	Short: "Record feedback for a pivot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newApp()
		if err != nil {
			return err
		}
		defer rt.Close()

		f := feedback.Feedback{
			PivotID:  args[0],
			Rating:   feedbackRating,
			Comment:  feedbackComment,
			UserName: feedbackUser,
		}
		if cmd.Flags().Changed("helpful") {
			f.Helpful = &feedbackHelpful
		}
		f.ContextDatabase = flagDatabase
		if f.ContextDatabase == "" {
			f.ContextDatabase = cfg.Snowflake.Database
		}
		f.ContextSchema = flagSchema
		if f.ContextSchema == "" {
			f.ContextSchema = cfg.Snowflake.Schema
		}
		f.ContextTable = flagTable

		store := feedback.NewStore(rt.exec, rt.log, cfg.Feedback.Database, cfg.Feedback.Schema)
		id, err := store.Submit(cmd.Context(), f)
		if err != nil {
			return err
		}
		fmt.Printf("Feedback recorded: %s\n", id)
		return nil
	},
}

var feedbackSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize stored feedback per pivot",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newApp()
		if err != nil {
			return err
		}
		defer rt.Close()

		store := feedback.NewStore(rt.exec, rt.log, cfg.Feedback.Database, cfg.Feedback.Schema)
		summaries, err := store.Summarize(cmd.Context())
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(summaries)
		}

		fmt.Printf("%-30s %8s %8s %8s\n", "PIVOT", "COUNT", "AVG", "HELPFUL")
		for _, s := range summaries {
			fmt.Printf("%-30s %8d %8.1f %8d\n", s.PivotID, s.TotalFeedback, s.AvgRating, s.HelpfulCount)
		}
		return nil
	},
}

func init() {
	addContextFlags(feedbackSubmitCmd)
	feedbackSubmitCmd.Flags().IntVar(&feedbackRating, "rating", 0, "Rating from 1 to 5")
	feedbackSubmitCmd.Flags().BoolVar(&feedbackHelpful, "helpful", false, "Whether the pivot was helpful")
	feedbackSubmitCmd.Flags().StringVar(&feedbackComment, "comment", "", "Free-form comment")
	feedbackSubmitCmd.Flags().StringVar(&feedbackUser, "user", "", "Submitting user name")

	feedbackSummaryCmd.Flags().BoolVar(&flagJSON, "json", false, "Emit JSON instead of text")

	feedbackCmd.AddCommand(feedbackSubmitCmd)
	feedbackCmd.AddCommand(feedbackSummaryCmd)
}
