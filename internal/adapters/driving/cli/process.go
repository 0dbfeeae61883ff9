package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/logger"
	"github.com/scanhound/scanhound-cli/internal/watch"
)

var (
	processRecursive  bool
	processModel      string
	processSpeed      string
	processDryRun     bool
	processForce      bool
	processNoPatterns bool
	processSplit      bool
	processWatch      bool
)

var processCmd = &cobra.Command{
	Use:   "process [path]",
	Short: "Process and rename PDF files",
	Long: `Processes a PDF file or every PDF in a directory: extracts text,
decides a name (correction, learned pattern, or oracle), and renames
the file. Each rename is recorded in the ledger.

With --split, multi-document scans are detected first and can be split
into separate files before renaming. With --watch, the directory is
watched after the initial pass and new PDFs are processed as they
appear.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().BoolVarP(&processRecursive, "recursive", "r", false, "recursively process subdirectories")
	processCmd.Flags().StringVarP(&processModel, "model", "m", "sonnet", "oracle model to use (haiku, sonnet, opus)")
	processCmd.Flags().StringVarP(&processSpeed, "speed", "s", "balanced", "speed/accuracy tradeoff (fast, balanced, thorough)")
	processCmd.Flags().BoolVarP(&processDryRun, "dry-run", "n", false, "preview changes without renaming")
	processCmd.Flags().BoolVarP(&processForce, "force", "f", false, "re-process files even if already in ledger")
	processCmd.Flags().BoolVar(&processNoPatterns, "no-patterns", false, "skip pattern matching, always ask the oracle")
	processCmd.Flags().BoolVar(&processSplit, "split", false, "check for multi-document PDFs and offer to split first")
	processCmd.Flags().BoolVar(&processWatch, "watch", false, "keep running and process new PDFs as they appear")
	rootCmd.AddCommand(processCmd)
}

// runCounts tallies the outcomes of one processing run.
type runCounts struct {
	processed int
	skipped   int
	failed    int
	split     int
}

func runProcess(cmd *cobra.Command, args []string) error {
	if processorService == nil {
		return errors.New("processor service not configured")
	}
	path := args[0]

	settings, err := resolveSettings(processModel, processSpeed,
		cmd.Flags().Changed("model"), cmd.Flags().Changed("speed"))
	if err != nil {
		return err
	}
	settings.DryRun = processDryRun
	settings.Force = processForce
	settings.NoPatterns = processNoPatterns

	pdfs, err := findPDFs(path, processRecursive)
	if err != nil {
		return err
	}
	if len(pdfs) == 0 && !processWatch {
		cmd.Printf("No PDF files found at: %s\n", path)
		return nil
	}

	cmd.Printf("Found %d PDF(s) to process\n", len(pdfs))
	if settings.DryRun {
		cmd.Println("[DRY RUN MODE - No files will be renamed]")
	}
	if settings.NoPatterns {
		cmd.Println("[NO PATTERNS MODE - Always using the oracle]")
	}
	if processSplit {
		cmd.Println("[SPLIT MODE - Will check for multi-document PDFs]")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var counts runCounts
	stdin := bufio.NewReader(cmd.InOrStdin())
	for _, pdf := range pdfs {
		processOne(ctx, cmd, stdin, pdf, settings, &counts)
	}

	if processWatch {
		if err := watchAndProcess(ctx, cmd, path, settings, &counts); err != nil {
			return err
		}
	}

	printSummary(cmd, len(pdfs), counts)
	if counts.failed > 0 {
		return fmt.Errorf("%d file(s) failed", counts.failed)
	}
	return nil
}

// processOne handles one source PDF: the optional split interaction,
// then renaming of the file (or of the files a split produced).
func processOne(ctx context.Context, cmd *cobra.Command, stdin *bufio.Reader, pdf string, settings domain.Settings, counts *runCounts) {
	files := []string{pdf}

	if processSplit && splitService != nil {
		split, skipped := offerSplit(ctx, cmd, stdin, pdf, settings, counts)
		if skipped {
			counts.skipped++
			return
		}
		if split != nil {
			files = split
		}
	}

	for _, f := range files {
		outcome, err := processorService.ProcessFile(ctx, f, settings)
		reportOutcome(cmd, outcome, err)
		switch outcome.Status {
		case domain.StatusRenamed, domain.StatusDryRun:
			counts.processed++
		case domain.StatusFailed:
			counts.failed++
		default:
			counts.skipped++
		}
	}
}

// offerSplit analyses one PDF for document boundaries and, when more
// than one document is found, walks the operator through the choice.
// Returns the files to process instead of the original (nil to keep
// the original) and whether the file was skipped entirely.
func offerSplit(ctx context.Context, cmd *cobra.Command, stdin *bufio.Reader, pdf string, settings domain.Settings, counts *runCounts) ([]string, bool) {
	pages, segments, err := splitService.Analyze(ctx, pdf, settings)
	if err != nil {
		logger.Warn("split analysis of %s failed: %v", pdf, err)
		return nil, false
	}
	if len(segments) < 2 {
		return nil, false
	}

	name := filepath.Base(pdf)
	cmd.Printf("\n[SPLIT] %s contains %d documents:\n", name, len(segments))
	for _, seg := range segments {
		cmd.Printf("         - %s\n", seg)
	}

	if settings.DryRun {
		cmd.Println("[DRY RUN] Would split into separate files")
		return nil, false
	}

	files, skip := promptSplit(cmd, stdin, pdf, pages, segments)
	counts.split += len(files)
	return files, skip
}

// watchAndProcess keeps processing new PDFs until interrupted.
func watchAndProcess(ctx context.Context, cmd *cobra.Command, path string, settings domain.Settings, counts *runCounts) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	root := path
	if !info.IsDir() {
		root = filepath.Dir(path)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	events, errs, err := watch.Start(ctx, watch.Config{Roots: []string{root}, Debounce: 2 * time.Second})
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	cmd.Printf("\nWatching %s for new PDFs (Ctrl-C to stop)...\n", root)

	stdin := bufio.NewReader(cmd.InOrStdin())
	for {
		select {
		case <-ctx.Done():
			return nil
		case pdf, ok := <-events:
			if !ok {
				return nil
			}
			processOne(ctx, cmd, stdin, pdf, settings, counts)
		case werr, ok := <-errs:
			if ok && werr != nil {
				logger.Warn("watch error: %v", werr)
			}
		}
	}
}

// reportOutcome prints one file's result.
func reportOutcome(cmd *cobra.Command, outcome domain.FileOutcome, err error) {
	name := filepath.Base(outcome.Path)
	switch outcome.Status {
	case domain.StatusRenamed:
		cmd.Printf("%s -> %s (%s, %.0f%%)\n", name, filepath.Base(outcome.NewPath), outcome.ModelUsed, outcome.Confidence*100)
	case domain.StatusDryRun:
		cmd.Printf("[DRY RUN] %s -> %s (%s, %.0f%%)\n", name, filepath.Base(outcome.NewPath), outcome.ModelUsed, outcome.Confidence*100)
	case domain.StatusSkippedProcessed:
		cmd.Printf("Skipping %s: already processed (as %s)\n", name, filepath.Base(outcome.NewPath))
	case domain.StatusSkippedEmpty:
		cmd.Printf("Skipping %s: no extractable text\n", name)
	case domain.StatusFailed:
		if err == nil {
			err = outcome.Err
		}
		cmd.Printf("Failed %s: %v\n", name, err)
	}
}

// printSummary prints the end-of-run tallies.
func printSummary(cmd *cobra.Command, found int, counts runCounts) {
	cmd.Println()
	cmd.Println("============================================================")
	cmd.Println("SUMMARY")
	cmd.Println("============================================================")
	cmd.Printf("Total PDFs found: %d\n", found)
	if counts.split > 0 {
		cmd.Printf("Files created from splits: %d\n", counts.split)
	}
	cmd.Printf("Processed: %d\n", counts.processed)
	cmd.Printf("Skipped: %d\n", counts.skipped)
	cmd.Printf("Failed: %d\n", counts.failed)
}
