package driving

import (
	"context"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
)

// ProcessorService runs the end-to-end decide/rename flow for files.
type ProcessorService interface {
	// ProcessFile runs one file through the pipeline: extract, decide
	// (correction, pattern, or oracle), resolve collisions, rename (or
	// simulate), record, learn. The outcome is always returned; the
	// error is non-nil only for failures worth surfacing per file.
	ProcessFile(ctx context.Context, path string, settings domain.Settings) (domain.FileOutcome, error)
}

// SplitService detects and performs multi-document splits.
type SplitService interface {
	// Analyze extracts per-page text and asks the oracle for document
	// boundaries. Zero or one detected segment normalises to no split
	// (empty slice), as does a single-page document.
	Analyze(ctx context.Context, path string, settings domain.Settings) ([]domain.PageRecord, []domain.DocumentSegment, error)

	// Split writes one new PDF per segment next to the source file and
	// returns the created paths. Collision-safe naming applies.
	Split(path string, segments []domain.DocumentSegment) ([]string, error)
}

// FieldExtractService performs templated bulk field extraction.
type FieldExtractService interface {
	// ExtractFields locates the template fields in one file's text.
	// Oracle failures yield a result with all fields nil and the error
	// recorded in the result, never an aborted run.
	ExtractFields(ctx context.Context, path string, fields []string, settings domain.Settings) domain.FieldExtraction
}

// InfoService reads document metadata without processing.
type InfoService interface {
	// Info returns the page count and document metadata for a file.
	Info(path string) (pages int, metadata map[string]string, err error)
}
