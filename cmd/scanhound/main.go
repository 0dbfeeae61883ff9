// Command scanhound renames scanned PDF documents from their content.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/scanhound/scanhound-cli/internal/adapters/driven/config/file"
	"github.com/scanhound/scanhound-cli/internal/adapters/driven/export"
	"github.com/scanhound/scanhound-cli/internal/adapters/driven/ocr/tesseract"
	"github.com/scanhound/scanhound-cli/internal/adapters/driven/oracle/anthropic"
	"github.com/scanhound/scanhound-cli/internal/adapters/driven/oracle/claudecli"
	"github.com/scanhound/scanhound-cli/internal/adapters/driven/pdf/pdfcpu"
	"github.com/scanhound/scanhound-cli/internal/adapters/driven/storage/jsonfile"
	"github.com/scanhound/scanhound-cli/internal/adapters/driving/cli"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
	"github.com/scanhound/scanhound-cli/internal/core/services"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot determine home directory: %w", err)
	}
	dataDir := filepath.Join(home, ".scanhound")

	configStore, err := file.NewConfigStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	promptStore, err := file.NewPromptStore(filepath.Join(dataDir, "prompts"))
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	patternStore := jsonfile.NewPatternStore(filepath.Join(dataDir, "patterns.json"))
	correctionStore := jsonfile.NewCorrectionStore(filepath.Join(dataDir, "corrections.json"))
	ledgerStore := jsonfile.NewLedgerStore(filepath.Join(dataDir, "ledger.json"))

	reader := pdfcpu.NewReader()
	ocrEngine := tesseract.NewEngine(tesseract.Config{})

	oracle, err := buildOracle(configStore)
	if err != nil {
		return err
	}
	limited := services.NewLimitedOracle(oracle)

	extractor := services.NewTextExtractor(reader, ocrEngine)
	learning := services.NewLearningEngine(patternStore, correctionStore)
	ledger := services.NewLedger(ledgerStore)
	namer := services.NewNamer(limited, promptStore)
	detector := services.NewBoundaryDetector(reader, limited, promptStore)

	cli.Init(cli.Services{
		Version:    version,
		Processor:  services.NewProcessor(extractor, learning, ledger, namer),
		Splitter:   services.NewSplitter(reader, detector),
		Extractor:  services.NewFieldExtractor(extractor, limited, promptStore),
		Info:       services.NewInspector(reader),
		History:    ledger,
		Learning:   learning,
		Config:     configStore,
		CSVWriter:  export.NewCSVWriter(),
		XLSXWriter: export.NewXLSXWriter(),
	})
	return cli.Execute()
}

// buildOracle selects the oracle backend from configuration. The local
// claude CLI is the default; oracle.provider=anthropic switches to the
// HTTP API and requires a stored API key.
func buildOracle(cfg driven.ConfigStore) (driven.Oracle, error) {
	if cfg.GetString("oracle.provider") == "anthropic" {
		key := cfg.GetString("oracle.api_key")
		if key == "" {
			key = os.Getenv("ANTHROPIC_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("oracle.provider is anthropic but no API key is set; run 'scanhound settings set oracle.api_key'")
		}
		return anthropic.New(anthropic.Config{APIKey: key})
	}
	return claudecli.New(claudecli.Config{Binary: cfg.GetString("oracle.binary")}), nil
}
