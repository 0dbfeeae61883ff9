package domain

import "fmt"

// DocumentSegment is a contiguous page range judged to be one logical
// document within a multi-document scan. Pages are 0-based and the range
// is inclusive. Segments for one source file must not overlap; gaps are
// permitted and mean the uncovered pages are excluded from a split.
type DocumentSegment struct {
	// StartPage is the first page of the segment (0-based).
	StartPage int

	// EndPage is the last page of the segment (0-based, inclusive).
	EndPage int

	// DocType is the oracle's classification, e.g. "Utility Bill".
	DocType string

	// SuggestedName is the oracle's proposed base name for the segment.
	SuggestedName string

	// Confidence is the oracle's confidence in this boundary, in [0,1].
	Confidence float64
}

// PageCount returns the number of pages covered by the segment.
func (s DocumentSegment) PageCount() int {
	return s.EndPage - s.StartPage + 1
}

// String renders the segment with 1-based page numbers for display.
func (s DocumentSegment) String() string {
	if s.StartPage == s.EndPage {
		return fmt.Sprintf("Page %d: %s", s.StartPage+1, s.SuggestedName)
	}
	return fmt.Sprintf("Pages %d-%d: %s", s.StartPage+1, s.EndPage+1, s.SuggestedName)
}
