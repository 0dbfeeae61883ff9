package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyProcessed indicates a file has a matching ledger entry
	// and is skipped unless forced.
	ErrAlreadyProcessed = errors.New("already processed")

	// ErrEmptyDocument indicates no text could be extracted from a file.
	ErrEmptyDocument = errors.New("no extractable text")

	// ErrExtractionFailed indicates the source file could not be opened
	// or read at all. Per-page failures are recovered, not reported here.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrCorrectionOverride signals that a stored correction matches the
	// document fingerprint exactly. Pattern matching must not proceed;
	// the caller short-circuits to the correction path.
	ErrCorrectionOverride = errors.New("correction override")

	// Oracle errors.

	// ErrOracleUnavailable indicates the external model executable or
	// endpoint is not reachable. The affected file fails; the run continues.
	ErrOracleUnavailable = errors.New("oracle unavailable")

	// ErrOracleTimeout indicates an oracle call exceeded its deadline.
	ErrOracleTimeout = errors.New("oracle timed out")

	// ErrMalformedReply indicates the oracle returned output that could
	// not be parsed after all recovery layers.
	ErrMalformedReply = errors.New("malformed oracle reply")

	// OCR errors.

	// ErrOCRUnavailable indicates the OCR engine is not installed.
	// Extraction degrades to direct text only.
	ErrOCRUnavailable = errors.New("OCR engine unavailable")

	// Store errors.

	// ErrStoreCorrupt indicates a persisted knowledge base failed to parse.
	// Stores degrade to empty rather than aborting startup.
	ErrStoreCorrupt = errors.New("persisted store corrupt")
)
