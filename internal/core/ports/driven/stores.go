package driven

import "github.com/scanhound/scanhound-cli/internal/core/domain"

// The three knowledge bases share one persistence shape: load the full
// entity list at startup, mutate in memory, persist the full list after
// every mutation (write-through, no batching). A corrupt or missing
// file degrades to an empty list rather than failing startup.

// PatternStore persists learned patterns.
type PatternStore interface {
	// Load returns all stored patterns. A missing or corrupt store
	// yields an empty slice and a nil error.
	Load() ([]domain.Pattern, error)

	// Save replaces the persisted pattern list.
	Save(patterns []domain.Pattern) error
}

// CorrectionStore persists operator corrections.
type CorrectionStore interface {
	// Load returns all stored corrections. A missing or corrupt store
	// yields an empty slice and a nil error.
	Load() ([]domain.Correction, error)

	// Save replaces the persisted correction list.
	Save(corrections []domain.Correction) error
}

// LedgerStore persists rename history.
type LedgerStore interface {
	// Load returns all ledger entries. A missing or corrupt store
	// yields an empty slice and a nil error.
	Load() ([]domain.LedgerEntry, error)

	// Save replaces the persisted entry list.
	Save(entries []domain.LedgerEntry) error
}
