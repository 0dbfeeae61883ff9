package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/services"
	"github.com/scanhound/scanhound-cli/internal/logger"
)

var (
	splitRecursive   bool
	splitModel       string
	splitAnalyzeOnly bool
)

var splitCmd = &cobra.Command{
	Use:   "split [path]",
	Short: "Detect and split multi-document PDFs",
	Long: `Analyses scanned PDFs for document boundaries and splits files that
contain more than one document. Split files are written next to the
original; run 'process' afterwards to rename them.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().BoolVarP(&splitRecursive, "recursive", "r", false, "recursively scan subdirectories")
	splitCmd.Flags().StringVarP(&splitModel, "model", "m", "sonnet", "oracle model to use (haiku, sonnet, opus)")
	splitCmd.Flags().BoolVar(&splitAnalyzeOnly, "analyze-only", false, "report detected boundaries without splitting")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	if splitService == nil {
		return errors.New("split service not configured")
	}
	path := args[0]

	settings, err := resolveSettings(splitModel, "balanced", cmd.Flags().Changed("model"), false)
	if err != nil {
		return err
	}

	pdfs, err := findPDFs(path, splitRecursive)
	if err != nil {
		return err
	}
	if len(pdfs) == 0 {
		cmd.Printf("No PDF files found at: %s\n", path)
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	multi := 0
	created := 0
	stdin := bufio.NewReader(cmd.InOrStdin())
	for _, pdf := range pdfs {
		pages, segments, err := splitService.Analyze(ctx, pdf, settings)
		if err != nil {
			logger.Warn("analysis of %s failed: %v", pdf, err)
			cmd.Printf("Could not analyze %s: %v\n", filepath.Base(pdf), err)
			continue
		}
		if len(segments) < 2 {
			continue
		}
		multi++

		cmd.Printf("\n%s contains %d documents:\n", filepath.Base(pdf), len(segments))
		for _, seg := range segments {
			cmd.Printf("  - %s\n", seg)
		}
		if splitAnalyzeOnly {
			continue
		}

		files, _ := promptSplit(cmd, stdin, pdf, pages, segments)
		created += len(files)
	}

	cmd.Printf("\nScanned %d PDF(s), %d multi-document.\n", len(pdfs), multi)
	if splitAnalyzeOnly {
		return nil
	}
	cmd.Printf("Created %d file(s).\n", created)
	if created > 0 {
		cmd.Println("Run 'process' command to rename them.")
	}
	return nil
}

// promptSplit walks the operator through the split choice for one PDF
// whose analysis found multiple documents. It returns the created files
// (nil when the file is kept whole) and whether the file was skipped.
func promptSplit(cmd *cobra.Command, stdin *bufio.Reader, pdf string, pages []domain.PageRecord, segments []domain.DocumentSegment) ([]string, bool) {
	name := filepath.Base(pdf)
	cmd.Printf("\nSplit '%s' into %d documents?\n", name, len(segments))
	cmd.Println("  [Y] Yes, split as shown")
	cmd.Println("  [N] No, keep as single document")
	cmd.Println("  [P] Split by individual pages")
	cmd.Println("  [S] Skip this file")

	for {
		choice := askLine(stdin, cmd.OutOrStdout(), "\nChoice [Y/N/P/S]: ")
		switch {
		case choice == "" || strings.EqualFold(choice, "Y"):
			return performSplit(cmd, stdin, pdf, segments), false
		case strings.EqualFold(choice, "N"):
			cmd.Println("Keeping as single document.")
			return nil, false
		case strings.EqualFold(choice, "P"):
			return performSplit(cmd, stdin, pdf, services.PerPageSegments(pages)), false
		case strings.EqualFold(choice, "S"):
			cmd.Printf("Skipping: %s\n", name)
			return nil, true
		default:
			cmd.Println("Invalid choice. Please enter Y, N, P, or S.")
		}
	}
}

// performSplit writes the segment files and offers to delete the
// original. On failure the original is kept whole.
func performSplit(cmd *cobra.Command, stdin *bufio.Reader, pdf string, segments []domain.DocumentSegment) []string {
	newFiles, err := splitService.Split(pdf, segments)
	if err != nil {
		cmd.Printf("Split failed (%v), keeping original.\n", err)
		return nil
	}
	for _, f := range newFiles {
		cmd.Printf("Created: %s\n", filepath.Base(f))
	}

	answer := askLine(stdin, cmd.OutOrStdout(), fmt.Sprintf("Delete original '%s'? [y/N]: ", filepath.Base(pdf)))
	if strings.EqualFold(answer, "y") {
		if err := os.Remove(pdf); err != nil {
			cmd.Printf("Could not delete original: %v\n", err)
		} else {
			cmd.Printf("Deleted: %s\n", filepath.Base(pdf))
		}
	}
	return newFiles
}
