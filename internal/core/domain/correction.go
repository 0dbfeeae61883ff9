package domain

import "time"

// Correction is a permanent operator override for one specific document
// fingerprint. Write-once: corrections are additive history and never
// deduplicated or edited. A correction match carries confidence 1.0 and
// takes absolute priority over pattern matching.
type Correction struct {
	// ID is a human-debuggable identifier: cor_<timestamp>_<hash fragment>.
	ID string `json:"correction_id"`

	// OriginalName is what the system suggested.
	OriginalName string `json:"original_name"`

	// CorrectedName is what the operator renamed it to.
	CorrectedName string `json:"corrected_name"`

	// ContentHash is the fingerprint this correction overrides.
	ContentHash string `json:"content_hash"`

	// KeywordsInContent are extracted keywords, capped at
	// MaxSignatureKeywords, kept for diagnostics.
	KeywordsInContent []string `json:"keywords_in_content"`

	// CreatedAt is when the correction was recorded.
	CreatedAt time.Time `json:"created_at"`
}
