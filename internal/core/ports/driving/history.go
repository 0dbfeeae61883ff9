package driving

import "github.com/scanhound/scanhound-cli/internal/core/domain"

// HistoryService inspects the rename ledger.
type HistoryService interface {
	// Entries returns ledger entries sorted by timestamp descending.
	// limit <= 0 returns all entries.
	Entries(limit int) []domain.LedgerEntry

	// Summary aggregates counts per model and extraction method,
	// average confidence, and pattern-assisted entry count.
	Summary() domain.LedgerSummary

	// DetectManualRenames scans for entries whose recorded path no
	// longer exists and proposes unclaimed PDFs in the same directory
	// as possible manual renames. Best-effort; candidates require
	// operator confirmation.
	DetectManualRenames() []domain.ManualRenameCandidate
}

// LearningService inspects and amends the learning state.
type LearningService interface {
	// Stats summarises the stored patterns and corrections.
	Stats() LearningStats

	// AddCorrection stores a confirmed operator correction.
	AddCorrection(originalName, correctedName, contentHash, text string) (string, error)
}

// LearningStats summarises learning-engine state.
type LearningStats struct {
	// TotalPatterns is the stored pattern count.
	TotalPatterns int

	// TotalCorrections is the stored correction count.
	TotalCorrections int

	// MostUsedPatterns lists up to five (pattern id, times applied)
	// pairs, most applied first.
	MostUsedPatterns []PatternUsage
}

// PatternUsage pairs a pattern id with its application count.
type PatternUsage struct {
	PatternID    string
	TimesApplied int
}
