package domain

import "time"

// ModelLearned is the model tag recorded when a name came from the
// learning engine (correction or pattern) instead of the oracle.
const ModelLearned = "learned"

// LedgerEntry records one rename decision. Entries are append-only and
// never mutated after creation; corrections to history are new entries.
type LedgerEntry struct {
	// ID uniquely identifies the entry.
	ID string `json:"id"`

	// Timestamp is when the rename was performed.
	Timestamp time.Time `json:"timestamp"`

	// OriginalPath is the absolute path before renaming.
	OriginalPath string `json:"original_path"`

	// OriginalName is the base name before renaming. Together with
	// Timestamp it forms the natural key for idempotence checks.
	OriginalName string `json:"original_name"`

	// NewPath is the absolute path after renaming.
	NewPath string `json:"new_path"`

	// NewName is the base name after renaming.
	NewName string `json:"new_name"`

	// ModelUsed is ModelLearned or the oracle model identifier.
	ModelUsed string `json:"model_used"`

	// Confidence is the decision confidence, in [0,1].
	Confidence float64 `json:"confidence"`

	// ContentHash is the document fingerprint at decision time.
	ContentHash string `json:"content_hash"`

	// ExtractionMethod is how the text was obtained.
	ExtractionMethod ExtractionMethod `json:"extraction_method"`

	// PatternID references the applied pattern, if any.
	PatternID string `json:"pattern_id,omitempty"`

	// Reasoning is the decision explanation, if any.
	Reasoning string `json:"reasoning,omitempty"`
}

// LedgerSummary aggregates ledger statistics.
type LedgerSummary struct {
	// TotalProcessed is the number of ledger entries.
	TotalProcessed int

	// ModelsUsed counts entries per model tag.
	ModelsUsed map[string]int

	// ExtractionMethods counts entries per extraction method.
	ExtractionMethods map[ExtractionMethod]int

	// AverageConfidence is the mean confidence over all entries.
	AverageConfidence float64

	// PatternsApplied counts entries that referenced a pattern.
	PatternsApplied int

	// FirstEntry and LastEntry bound the recorded history.
	FirstEntry time.Time
	LastEntry  time.Time
}

// ManualRenameCandidate is a best-effort suggestion that a previously
// renamed file was later renamed by hand. It requires operator
// confirmation; the directory-scan heuristic can misattribute unrelated
// files dropped into the same folder.
type ManualRenameCandidate struct {
	// Entry is the ledger entry whose NewPath no longer exists.
	Entry LedgerEntry

	// CandidateName is the unclaimed PDF found in the same directory.
	CandidateName string

	// CandidatePath is its full path.
	CandidatePath string
}
