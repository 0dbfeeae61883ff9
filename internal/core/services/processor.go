package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driving"
	"github.com/scanhound/scanhound-cli/internal/logger"
)

// Ensure Processor implements the interface.
var _ driving.ProcessorService = (*Processor)(nil)

// Processor composes extraction, the learning engine, the oracle, and
// the ledger into the per-file decide/rename flow. Decision order:
// stored correction, then learned pattern, then oracle query. Dry-run
// mode executes the full decision chain but performs no filesystem
// mutation, no ledger write, and no learning update.
type Processor struct {
	extractor *TextExtractor
	learning  *LearningEngine
	ledger    *Ledger
	namer     *Namer
	now       func() time.Time
}

// NewProcessor creates a processor.
func NewProcessor(extractor *TextExtractor, learning *LearningEngine, ledger *Ledger, namer *Namer) *Processor {
	return &Processor{
		extractor: extractor,
		learning:  learning,
		ledger:    ledger,
		namer:     namer,
		now:       time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (p *Processor) SetClock(now func() time.Time) {
	p.now = now
}

// decision is the outcome of the three-tier decision chain.
type decision struct {
	newName    string
	confidence float64
	modelUsed  string
	patternID  string
	reasoning  string
}

// ProcessFile runs one file through the pipeline.
func (p *Processor) ProcessFile(ctx context.Context, path string, settings domain.Settings) (domain.FileOutcome, error) {
	outcome := domain.FileOutcome{Path: path}
	name := filepath.Base(path)

	// Idempotence: a matching original name in the ledger means the
	// file was processed before.
	if !settings.Force {
		if prior := p.ledger.FindByOriginalName(name); len(prior) > 0 {
			logger.Info("skip %s: already processed on %s as %s",
				name, prior[0].Timestamp.Format("2006-01-02"), prior[0].NewName)
			outcome.Status = domain.StatusSkippedProcessed
			outcome.NewPath = prior[0].NewPath
			return outcome, nil
		}
	}

	extraction, err := p.extractor.Extract(path, settings)
	if err != nil {
		outcome.Status = domain.StatusFailed
		outcome.Err = err
		return outcome, err
	}
	if extraction.IsEmpty() {
		logger.Warn("no text could be extracted from %s", name)
		outcome.Status = domain.StatusSkippedEmpty
		return outcome, nil
	}

	dec, err := p.decide(ctx, extraction, settings)
	if err != nil {
		outcome.Status = domain.StatusFailed
		outcome.Err = err
		return outcome, err
	}
	outcome.ModelUsed = dec.modelUsed
	outcome.Confidence = dec.confidence
	outcome.Reasoning = dec.reasoning

	newPath := resolveCollision(filepath.Join(filepath.Dir(path), dec.newName), path)
	outcome.NewPath = newPath

	if settings.DryRun {
		logger.Info("[dry run] would rename %s -> %s", name, filepath.Base(newPath))
		outcome.Status = domain.StatusDryRun
		return outcome, nil
	}

	if err := os.Rename(path, newPath); err != nil {
		outcome.Status = domain.StatusFailed
		outcome.Err = fmt.Errorf("rename: %w", err)
		return outcome, outcome.Err
	}
	logger.Info("renamed %s -> %s", name, filepath.Base(newPath))

	if _, err := p.ledger.AddEntry(path, newPath, dec.modelUsed, dec.confidence,
		extraction.ContentHash, extraction.Method, dec.patternID, dec.reasoning); err != nil {
		outcome.Status = domain.StatusFailed
		outcome.Err = err
		return outcome, err
	}

	// Learn only from oracle outcomes. Correction and pattern hits are
	// excluded from re-training so the same signal is not reinforced
	// redundantly.
	if dec.modelUsed != domain.ModelLearned {
		if _, err := p.learning.LearnFromSuccess(extraction.Text, filepath.Base(newPath),
			dec.confidence, extraction.ContentHash); err != nil {
			logger.Warn("learning update failed: %v", err)
		}
	}

	outcome.Status = domain.StatusRenamed
	return outcome, nil
}

// decide walks the three-tier decision chain: correction, pattern,
// oracle. First applicable wins.
func (p *Processor) decide(ctx context.Context, extraction domain.ExtractionResult, settings domain.Settings) (decision, error) {
	if !settings.NoPatterns {
		if correction, ok := p.learning.FindCorrection(extraction.ContentHash); ok {
			logger.Info("using learned correction: %s", correction.CorrectedName)
			return decision{
				newName:    correction.CorrectedName,
				confidence: 1.0,
				modelUsed:  domain.ModelLearned,
				reasoning:  "Applied from user correction",
			}, nil
		}

		match, err := p.learning.FindMatchingPattern(extraction.Text, extraction.ContentHash)
		if err == nil && match != nil {
			logger.Info("using learned pattern %s (score %.2f): %s",
				match.Pattern.ID, match.Score, match.Pattern.DescriptionTemplate)
			return decision{
				newName:    ensurePDFExt(match.Pattern.DescriptionTemplate),
				confidence: match.Score * match.Pattern.ConfidenceAvg,
				modelUsed:  domain.ModelLearned,
				patternID:  match.Pattern.ID,
				reasoning:  fmt.Sprintf("Matched pattern %s", match.Pattern.ID),
			}, nil
		}
	}

	suggestion, err := p.namer.SuggestName(ctx, extraction.Text, settings)
	if err != nil {
		return decision{}, err
	}
	logger.Info("suggested: %s (confidence %.0f%%)",
		suggestion.Filename(".pdf", p.now()), suggestion.Confidence*100)
	return decision{
		newName:    suggestion.Filename(".pdf", p.now()),
		confidence: suggestion.Confidence,
		modelUsed:  suggestion.ModelUsed,
		reasoning:  suggestion.Reasoning,
	}, nil
}

// resolveCollision appends _1, _2, ... before the extension until the
// candidate path is free. The source path itself is not a collision.
func resolveCollision(candidate, sourcePath string) string {
	if candidate == sourcePath {
		return candidate
	}

	ext := filepath.Ext(candidate)
	stem := strings.TrimSuffix(candidate, ext)
	path := candidate
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) || path == sourcePath {
			return path
		}
		path = fmt.Sprintf("%s_%d%s", stem, counter, ext)
	}
}

// ensurePDFExt appends .pdf to pattern templates recorded without an
// extension.
func ensurePDFExt(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return name
	}
	return name + ".pdf"
}
