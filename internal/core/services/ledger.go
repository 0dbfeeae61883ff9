package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driving"
	"github.com/scanhound/scanhound-cli/internal/logger"
)

// Ensure Ledger implements the interface.
var _ driving.HistoryService = (*Ledger)(nil)

// Ledger is the append-only history of rename operations and the
// source of idempotence: a file whose original name already appears is
// considered processed. Lookups are linear scans, which is acceptable
// at personal-archive scale.
type Ledger struct {
	store   driven.LedgerStore
	entries []domain.LedgerEntry
	now     func() time.Time
}

// NewLedger loads the persisted history. A corrupt or missing store
// degrades to an empty ledger.
func NewLedger(store driven.LedgerStore) *Ledger {
	l := &Ledger{store: store, now: time.Now}
	entries, err := store.Load()
	if err != nil {
		logger.Warn("ledger load failed, starting empty: %v", err)
		entries = nil
	}
	l.entries = entries
	logger.Debug("ledger loaded %d entries", len(l.entries))
	return l
}

// SetClock overrides the time source. Intended for tests.
func (l *Ledger) SetClock(now func() time.Time) {
	l.now = now
}

// AddEntry appends a rename record and persists immediately.
func (l *Ledger) AddEntry(originalPath, newPath, modelUsed string, confidence float64, contentHash string, method domain.ExtractionMethod, patternID, reasoning string) (domain.LedgerEntry, error) {
	absOriginal, err := filepath.Abs(originalPath)
	if err != nil {
		absOriginal = originalPath
	}
	absNew, err := filepath.Abs(newPath)
	if err != nil {
		absNew = newPath
	}

	entry := domain.LedgerEntry{
		ID:               uuid.NewString(),
		Timestamp:        l.now(),
		OriginalPath:     absOriginal,
		OriginalName:     filepath.Base(originalPath),
		NewPath:          absNew,
		NewName:          filepath.Base(newPath),
		ModelUsed:        modelUsed,
		Confidence:       confidence,
		ContentHash:      contentHash,
		ExtractionMethod: method,
		PatternID:        patternID,
		Reasoning:        reasoning,
	}
	l.entries = append(l.entries, entry)
	if err := l.store.Save(l.entries); err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("persist ledger: %w", err)
	}
	logger.Info("ledger: %s -> %s", entry.OriginalName, entry.NewName)
	return entry, nil
}

// FindByOriginalName returns all entries recorded for a source name.
func (l *Ledger) FindByOriginalName(name string) []domain.LedgerEntry {
	var out []domain.LedgerEntry
	for _, e := range l.entries {
		if e.OriginalName == name {
			out = append(out, e)
		}
	}
	return out
}

// FindByNewName returns all entries whose chosen name matches.
func (l *Ledger) FindByNewName(name string) []domain.LedgerEntry {
	var out []domain.LedgerEntry
	for _, e := range l.entries {
		if e.NewName == name {
			out = append(out, e)
		}
	}
	return out
}

// FindByHash returns the first entry with a matching content hash.
func (l *Ledger) FindByHash(contentHash string) (domain.LedgerEntry, bool) {
	for _, e := range l.entries {
		if e.ContentHash == contentHash {
			return e, true
		}
	}
	return domain.LedgerEntry{}, false
}

// Entries returns entries sorted by timestamp descending.
// limit <= 0 returns all.
func (l *Ledger) Entries(limit int) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, len(l.entries))
	copy(out, l.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// Summary aggregates ledger statistics.
func (l *Ledger) Summary() domain.LedgerSummary {
	summary := domain.LedgerSummary{
		ModelsUsed:        make(map[string]int),
		ExtractionMethods: make(map[domain.ExtractionMethod]int),
	}
	if len(l.entries) == 0 {
		return summary
	}

	var totalConfidence float64
	for _, e := range l.entries {
		summary.ModelsUsed[e.ModelUsed]++
		summary.ExtractionMethods[e.ExtractionMethod]++
		totalConfidence += e.Confidence
		if e.PatternID != "" {
			summary.PatternsApplied++
		}
	}
	summary.TotalProcessed = len(l.entries)
	summary.AverageConfidence = totalConfidence / float64(len(l.entries))
	summary.FirstEntry = l.entries[0].Timestamp
	summary.LastEntry = l.entries[len(l.entries)-1].Timestamp
	return summary
}

// DetectManualRenames proposes corrections for entries whose recorded
// path no longer exists: any PDF in the same directory not claimed by
// another entry is a candidate. Heuristic by design - an unrelated PDF
// dropped into the folder can be misattributed, so every candidate
// requires operator confirmation.
func (l *Ledger) DetectManualRenames() []domain.ManualRenameCandidate {
	claimed := make(map[string]struct{}, len(l.entries))
	for _, e := range l.entries {
		claimed[e.NewPath] = struct{}{}
	}

	var candidates []domain.ManualRenameCandidate
	for _, e := range l.entries {
		if _, err := os.Stat(e.NewPath); err == nil {
			continue
		}
		dir := filepath.Dir(e.NewPath)
		dirEntries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, de := range dirEntries {
			if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), ".pdf") {
				continue
			}
			full := filepath.Join(dir, de.Name())
			if _, ok := claimed[full]; ok {
				continue
			}
			candidates = append(candidates, domain.ManualRenameCandidate{
				Entry:         e,
				CandidateName: de.Name(),
				CandidatePath: full,
			})
		}
	}
	return candidates
}
