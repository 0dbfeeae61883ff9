package domain

import "strings"

// ExtractionMethod describes how text was pulled out of a document.
type ExtractionMethod string

const (
	// MethodText means every processed page had sufficient embedded text.
	MethodText ExtractionMethod = "text"

	// MethodOCR means every processed page required optical recognition.
	MethodOCR ExtractionMethod = "ocr"

	// MethodHybrid means a mix of direct text and OCR was used.
	MethodHybrid ExtractionMethod = "hybrid"

	// MethodNone means nothing could be extracted.
	MethodNone ExtractionMethod = "none"
)

// ExtractionResult is the outcome of text extraction for one source file.
// It is created once per pipeline run and never mutated afterwards.
type ExtractionResult struct {
	// Text is the merged text of all processed pages, with page markers.
	Text string

	// Method aggregates the per-page methods used.
	Method ExtractionMethod

	// PagesProcessed is the number of pages actually read.
	// Capped by the speed mode's page limit; never exceeds TotalPages.
	PagesProcessed int

	// TotalPages is the page count of the source document.
	TotalPages int

	// ContentHash is the fingerprint of Text.
	// Empty exactly when Text is empty - callers branch on emptiness,
	// never on hash equality with the empty string.
	ContentHash string
}

// IsEmpty reports whether no usable text was extracted.
func (r ExtractionResult) IsEmpty() bool {
	return strings.TrimSpace(r.Text) == ""
}

// PageRecord holds the text of a single page during boundary detection.
// It is ephemeral and never persisted.
type PageRecord struct {
	// PageIndex is the 0-based page position.
	PageIndex int

	// Text is the page text, possibly truncated for prompting.
	Text string

	// Truncated reports whether Text was cut to fit the prompt budget.
	Truncated bool
}
