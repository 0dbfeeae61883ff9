package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
	"github.com/scanhound/scanhound-cli/internal/logger"
)

// storeVersion identifies the on-disk envelope layout.
const storeVersion = "1.0"

// readEntities decodes the file at path and returns the raw entity list
// stored under key. Missing and corrupt files both yield nil raw data.
func readEntities(path, key string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("store %s is corrupt, starting empty: %v", path, err)
		return nil, nil
	}
	return doc[key], nil
}

// writeEntities persists the entity list under key, refreshing the
// envelope metadata. The parent directory is created on demand and the
// write goes through a temp file so a crash never truncates the store.
func writeEntities(path, key string, entities any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	doc := map[string]any{
		"version":      storeVersion,
		"last_updated": time.Now().Format(time.RFC3339),
		key:            entities,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// PatternStore persists patterns in patterns.json.
type PatternStore struct {
	path string
}

var _ driven.PatternStore = (*PatternStore)(nil)

// NewPatternStore creates a store backed by the given file path.
func NewPatternStore(path string) *PatternStore {
	return &PatternStore{path: path}
}

// Load implements driven.PatternStore.
func (s *PatternStore) Load() ([]domain.Pattern, error) {
	raw, err := readEntities(s.path, "patterns")
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []domain.Pattern{}, nil
	}
	var patterns []domain.Pattern
	if err := json.Unmarshal(raw, &patterns); err != nil {
		logger.Warn("pattern list in %s is corrupt, starting empty: %v", s.path, err)
		return []domain.Pattern{}, nil
	}
	return patterns, nil
}

// Save implements driven.PatternStore.
func (s *PatternStore) Save(patterns []domain.Pattern) error {
	if patterns == nil {
		patterns = []domain.Pattern{}
	}
	return writeEntities(s.path, "patterns", patterns)
}

// CorrectionStore persists corrections in corrections.json.
type CorrectionStore struct {
	path string
}

var _ driven.CorrectionStore = (*CorrectionStore)(nil)

// NewCorrectionStore creates a store backed by the given file path.
func NewCorrectionStore(path string) *CorrectionStore {
	return &CorrectionStore{path: path}
}

// Load implements driven.CorrectionStore.
func (s *CorrectionStore) Load() ([]domain.Correction, error) {
	raw, err := readEntities(s.path, "corrections")
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []domain.Correction{}, nil
	}
	var corrections []domain.Correction
	if err := json.Unmarshal(raw, &corrections); err != nil {
		logger.Warn("correction list in %s is corrupt, starting empty: %v", s.path, err)
		return []domain.Correction{}, nil
	}
	return corrections, nil
}

// Save implements driven.CorrectionStore.
func (s *CorrectionStore) Save(corrections []domain.Correction) error {
	if corrections == nil {
		corrections = []domain.Correction{}
	}
	return writeEntities(s.path, "corrections", corrections)
}

// LedgerStore persists rename history in ledger.json.
type LedgerStore struct {
	path string
}

var _ driven.LedgerStore = (*LedgerStore)(nil)

// NewLedgerStore creates a store backed by the given file path.
func NewLedgerStore(path string) *LedgerStore {
	return &LedgerStore{path: path}
}

// Load implements driven.LedgerStore.
func (s *LedgerStore) Load() ([]domain.LedgerEntry, error) {
	raw, err := readEntities(s.path, "entries")
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []domain.LedgerEntry{}, nil
	}
	var entries []domain.LedgerEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		logger.Warn("entry list in %s is corrupt, starting empty: %v", s.path, err)
		return []domain.LedgerEntry{}, nil
	}
	return entries, nil
}

// Save implements driven.LedgerStore.
func (s *LedgerStore) Save(entries []domain.LedgerEntry) error {
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return writeEntities(s.path, "entries", entries)
}
