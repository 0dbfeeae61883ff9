package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/scanhound/scanhound-cli/internal/adapters/driven/export"
	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
)

var (
	extractTemplate   string
	extractOutput     string
	extractCreate     string
	extractNoMetadata bool
	extractRecursive  bool
	extractModel      string
	extractSpeed      string
)

var extractCmd = &cobra.Command{
	Use:   "extract [path]",
	Short: "Extract templated fields from PDFs into a spreadsheet",
	Long: `Extracts the fields named in a CSV template from each PDF and writes
one row per file. The output format follows the output file extension:
.xlsx produces a spreadsheet, anything else CSV.

Use --create-template to write a starter template instead of
extracting.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractTemplate, "template", "t", "", "CSV template naming the fields to extract")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file (default extracted_<timestamp>.csv)")
	extractCmd.Flags().StringVar(&extractCreate, "create-template", "", "comma-separated field names; writes a template and exits")
	extractCmd.Flags().BoolVar(&extractNoMetadata, "no-metadata", false, "omit the file and confidence metadata columns")
	extractCmd.Flags().BoolVarP(&extractRecursive, "recursive", "r", false, "recursively scan subdirectories")
	extractCmd.Flags().StringVarP(&extractModel, "model", "m", "sonnet", "oracle model to use (haiku, sonnet, opus)")
	extractCmd.Flags().StringVarP(&extractSpeed, "speed", "s", "balanced", "speed/accuracy tradeoff (fast, balanced, thorough)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if extractCreate != "" {
		return runCreateTemplate(cmd)
	}

	if extractService == nil {
		return errors.New("extract service not configured")
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: extract requires a path argument", domain.ErrInvalidInput)
	}
	if extractTemplate == "" {
		return fmt.Errorf("%w: --template is required (or use --create-template)", domain.ErrInvalidInput)
	}

	fields, err := export.LoadTemplate(extractTemplate)
	if err != nil {
		return err
	}

	settings, err := resolveSettings(extractModel, extractSpeed,
		cmd.Flags().Changed("model"), cmd.Flags().Changed("speed"))
	if err != nil {
		return err
	}

	pdfs, err := findPDFs(args[0], extractRecursive)
	if err != nil {
		return err
	}
	if len(pdfs) == 0 {
		cmd.Printf("No PDF files found at: %s\n", args[0])
		return nil
	}

	output := extractOutput
	if output == "" {
		output = fmt.Sprintf("extracted_%s.csv", time.Now().Format("20060102_150405"))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.Printf("Extracting %d field(s) from %d PDF(s)...\n", len(fields), len(pdfs))
	columns := export.OutputColumns(fields, !extractNoMetadata)
	rows := make([]map[string]any, 0, len(pdfs))
	for _, pdf := range pdfs {
		result := extractService.ExtractFields(ctx, pdf, fields, settings)
		rows = append(rows, extractionRow(result, fields, !extractNoMetadata))
		cmd.Printf("  %s: %.0f%% of fields found\n", result.FileName, result.Confidence*100)
	}

	if err := writerFor(output).Write(output, columns, rows); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	cmd.Printf("\nWrote %d row(s) to %s\n", len(rows), output)
	return nil
}

func runCreateTemplate(cmd *cobra.Command) error {
	var fields []string
	for _, f := range strings.Split(extractCreate, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: --create-template needs at least one field name", domain.ErrInvalidInput)
	}

	output := extractOutput
	if output == "" {
		output = "template.csv"
	}
	if err := export.CreateTemplate(output, fields); err != nil {
		return err
	}
	cmd.Printf("Created template %s with %d field(s)\n", output, len(fields))
	return nil
}

// extractionRow flattens one extraction result into a spreadsheet row.
func extractionRow(r domain.FieldExtraction, fields []string, metadata bool) map[string]any {
	row := make(map[string]any, len(fields)+5)
	for _, f := range fields {
		row[f] = r.Fields[f]
	}
	if metadata {
		row["_file_name"] = r.FileName
		row["_file_path"] = r.FilePath
		row["_confidence"] = fmt.Sprintf("%.0f%%", r.Confidence*100)
		row["_extraction_method"] = string(r.Method)
		row["_errors"] = strings.Join(r.Errors, "; ")
	}
	return row
}

// writerFor picks the tabular writer by output extension.
func writerFor(path string) driven.TabularWriter {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return xlsxWriter
	}
	return csvWriter
}
