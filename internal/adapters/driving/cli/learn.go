package cli

import (
	"bufio"
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var (
	learnStats           bool
	learnScanCorrections bool
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Inspect and amend learned naming state",
	Long: `Shows learning statistics, or scans for files that were renamed by
hand after processing. Confirmed manual renames are stored as
corrections so the same document gets the corrected name next time.`,
	RunE: runLearn,
}

func init() {
	learnCmd.Flags().BoolVar(&learnStats, "stats", false, "show pattern and correction statistics")
	learnCmd.Flags().BoolVar(&learnScanCorrections, "scan-corrections", false, "scan for manual renames and offer to store them as corrections")
	rootCmd.AddCommand(learnCmd)
}

func runLearn(cmd *cobra.Command, args []string) error {
	if learningService == nil {
		return errors.New("learning service not configured")
	}

	if learnScanCorrections {
		return runScanCorrections(cmd)
	}

	// Default to --stats.
	s := learningService.Stats()
	cmd.Println("Learning Statistics")
	cmd.Println("===================")
	cmd.Printf("Learned patterns: %d\n", s.TotalPatterns)
	cmd.Printf("Stored corrections: %d\n", s.TotalCorrections)
	if len(s.MostUsedPatterns) > 0 {
		cmd.Println("\nMost used patterns:")
		for _, p := range s.MostUsedPatterns {
			cmd.Printf("  %s: applied %d time(s)\n", p.PatternID, p.TimesApplied)
		}
	}
	return nil
}

func runScanCorrections(cmd *cobra.Command) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	candidates := historyService.DetectManualRenames()
	if len(candidates) == 0 {
		cmd.Println("No manual renames detected.")
		return nil
	}

	cmd.Printf("Found %d possible manual rename(s):\n", len(candidates))
	stdin := bufio.NewReader(cmd.InOrStdin())
	applied := 0
	for _, c := range candidates {
		cmd.Printf("\n  %s -> %s\n", c.Entry.NewName, c.CandidateName)
		answer := askLine(stdin, cmd.OutOrStdout(), "Apply this correction? (y/N): ")
		if !strings.EqualFold(answer, "y") {
			continue
		}
		id, err := learningService.AddCorrection(c.Entry.NewName, c.CandidateName, c.Entry.ContentHash, "")
		if err != nil {
			cmd.Printf("Could not store correction: %v\n", err)
			continue
		}
		cmd.Printf("Stored correction %s\n", id)
		applied++
	}
	cmd.Printf("\nApplied %d correction(s).\n", applied)
	return nil
}
