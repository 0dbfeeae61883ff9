// Package memory provides in-memory store implementations used by
// tests and dry runs that must not touch the filesystem.
package memory

import (
	"sync"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
)

// PatternStore holds patterns in memory.
type PatternStore struct {
	mu       sync.Mutex
	patterns []domain.Pattern
}

var _ driven.PatternStore = (*PatternStore)(nil)

// NewPatternStore creates an empty in-memory pattern store.
func NewPatternStore() *PatternStore {
	return &PatternStore{}
}

// Load implements driven.PatternStore.
func (s *PatternStore) Load() ([]domain.Pattern, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Pattern, len(s.patterns))
	copy(out, s.patterns)
	return out, nil
}

// Save implements driven.PatternStore.
func (s *PatternStore) Save(patterns []domain.Pattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns = make([]domain.Pattern, len(patterns))
	copy(s.patterns, patterns)
	return nil
}

// CorrectionStore holds corrections in memory.
type CorrectionStore struct {
	mu          sync.Mutex
	corrections []domain.Correction
}

var _ driven.CorrectionStore = (*CorrectionStore)(nil)

// NewCorrectionStore creates an empty in-memory correction store.
func NewCorrectionStore() *CorrectionStore {
	return &CorrectionStore{}
}

// Load implements driven.CorrectionStore.
func (s *CorrectionStore) Load() ([]domain.Correction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Correction, len(s.corrections))
	copy(out, s.corrections)
	return out, nil
}

// Save implements driven.CorrectionStore.
func (s *CorrectionStore) Save(corrections []domain.Correction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.corrections = make([]domain.Correction, len(corrections))
	copy(s.corrections, corrections)
	return nil
}

// LedgerStore holds ledger entries in memory.
type LedgerStore struct {
	mu      sync.Mutex
	entries []domain.LedgerEntry
}

var _ driven.LedgerStore = (*LedgerStore)(nil)

// NewLedgerStore creates an empty in-memory ledger store.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{}
}

// Load implements driven.LedgerStore.
func (s *LedgerStore) Load() ([]domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LedgerEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Save implements driven.LedgerStore.
func (s *LedgerStore) Save(entries []domain.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]domain.LedgerEntry, len(entries))
	copy(s.entries, entries)
	return nil
}
