package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var (
	historyLast    int
	historySummary bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the rename ledger",
	Long: `Shows recent rename decisions recorded in the ledger, newest first.
Use --summary for aggregate statistics instead of individual entries.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLast, "last", "l", 10, "number of entries to show")
	historyCmd.Flags().BoolVar(&historySummary, "summary", false, "show aggregate statistics")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if historySummary {
		s := historyService.Summary()
		cmd.Println("Processing Summary")
		cmd.Println("==================")
		cmd.Printf("Total files processed: %d\n", s.TotalProcessed)
		if s.TotalProcessed == 0 {
			return nil
		}
		cmd.Printf("Average confidence: %.0f%%\n", s.AverageConfidence*100)
		cmd.Printf("Pattern-assisted renames: %d\n", s.PatternsApplied)
		cmd.Println("\nModels used:")
		for model, count := range s.ModelsUsed {
			cmd.Printf("  %s: %d\n", model, count)
		}
		cmd.Println("\nExtraction methods:")
		for method, count := range s.ExtractionMethods {
			cmd.Printf("  %s: %d\n", method, count)
		}
		cmd.Printf("\nFirst entry: %s\n", s.FirstEntry.Format("2006-01-02 15:04"))
		cmd.Printf("Last entry:  %s\n", s.LastEntry.Format("2006-01-02 15:04"))
		return nil
	}

	entries := historyService.Entries(historyLast)
	if len(entries) == 0 {
		cmd.Println("No processing history yet.")
		return nil
	}

	cmd.Printf("Last %d rename(s):\n\n", len(entries))
	for _, e := range entries {
		cmd.Printf("%s  %s -> %s\n", e.Timestamp.Format("2006-01-02 15:04"), e.OriginalName, e.NewName)
		cmd.Printf("    model=%s confidence=%.0f%% method=%s\n", e.ModelUsed, e.Confidence*100, e.ExtractionMethod)
		if e.Reasoning != "" {
			cmd.Printf("    %s\n", e.Reasoning)
		}
	}
	return nil
}
