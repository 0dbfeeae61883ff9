package domain

// FileStatus is the terminal state of one file in a processing run.
type FileStatus string

const (
	// StatusRenamed means the file was renamed and recorded.
	StatusRenamed FileStatus = "renamed"

	// StatusDryRun means the decision chain ran but nothing was mutated.
	StatusDryRun FileStatus = "dry_run"

	// StatusSkippedProcessed means a matching ledger entry already exists.
	StatusSkippedProcessed FileStatus = "skipped_processed"

	// StatusSkippedEmpty means no text could be extracted.
	StatusSkippedEmpty FileStatus = "skipped_empty"

	// StatusFailed means extraction, naming, or the rename itself failed.
	StatusFailed FileStatus = "failed"
)

// FileOutcome reports how one file fared in a processing run.
type FileOutcome struct {
	// Path is the source file.
	Path string

	// Status is the terminal state.
	Status FileStatus

	// NewPath is the chosen destination (set for renamed and dry-run files,
	// and for skipped files the previously recorded name).
	NewPath string

	// ModelUsed is ModelLearned or the oracle model identifier.
	ModelUsed string

	// Confidence is the decision confidence.
	Confidence float64

	// Reasoning explains the decision.
	Reasoning string

	// Err carries the failure for StatusFailed outcomes.
	Err error
}
