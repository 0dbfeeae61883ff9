// Package cli implements the scanhound command-line interface.
// Commands are thin shells over the driving-port services; wiring
// happens in Init, called from main before Execute.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driving"
	"github.com/scanhound/scanhound-cli/internal/logger"
)

// version is set via Init from the build.
var version = "dev"

// Services the commands depend on, injected by main.
var (
	processorService driving.ProcessorService
	splitService     driving.SplitService
	extractService   driving.FieldExtractService
	infoService      driving.InfoService
	historyService   driving.HistoryService
	learningService  driving.LearningService
	configStore      driven.ConfigStore
	csvWriter        driven.TabularWriter
	xlsxWriter       driven.TabularWriter
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "scanhound",
	Short: "Rename scanned PDFs from their content",
	Long: `Scanhound reads the text of scanned PDF documents (falling back to
OCR for image-only scans) and renames them to a consistent
{date}_{description}.pdf form.

Naming decisions come from three sources, in priority order: permanent
operator corrections, learned keyword patterns, and the naming oracle.
Every rename is recorded in a local ledger so files are never processed
twice and manual fixes can be learned from.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
}

// Services bundles everything the command tree needs.
type Services struct {
	Version string

	Processor  driving.ProcessorService
	Splitter   driving.SplitService
	Extractor  driving.FieldExtractService
	Info       driving.InfoService
	History    driving.HistoryService
	Learning   driving.LearningService
	Config     driven.ConfigStore
	CSVWriter  driven.TabularWriter
	XLSXWriter driven.TabularWriter
}

// Init wires service implementations into the commands.
func Init(s Services) {
	if s.Version != "" {
		version = s.Version
	}
	processorService = s.Processor
	splitService = s.Splitter
	extractService = s.Extractor
	infoService = s.Info
	historyService = s.History
	learningService = s.Learning
	configStore = s.Config
	csvWriter = s.CSVWriter
	xlsxWriter = s.XLSXWriter
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
