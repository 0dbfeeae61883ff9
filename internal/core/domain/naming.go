package domain

import (
	"fmt"
	"time"
)

// NamingSuggestion is the oracle's parsed reply to a naming prompt.
type NamingSuggestion struct {
	// Date is the document date in YYYY-MM-DD form, or empty when the
	// oracle found none or returned an invalid format.
	Date string

	// Description is the sanitised document description,
	// Title_Case_With_Underscores.
	Description string

	// Confidence is the oracle's self-reported confidence, clamped to [0,1].
	Confidence float64

	// Reasoning is the oracle's one-sentence explanation.
	Reasoning string

	// ModelUsed identifies the oracle model that produced the suggestion.
	ModelUsed string

	// RawReply is the unparsed oracle output, retained for diagnostics.
	RawReply string
}

// Filename composes the final name: {date}_{description}{ext}, or the
// undated form {today}_UNDATED_{description}{ext} when no valid date
// was found.
func (s NamingSuggestion) Filename(ext string, now time.Time) string {
	if s.Date != "" {
		return fmt.Sprintf("%s_%s%s", s.Date, s.Description, ext)
	}
	return fmt.Sprintf("%s_UNDATED_%s%s", now.Format("2006-01-02"), s.Description, ext)
}

// FieldExtraction is the result of templated field extraction for one file.
type FieldExtraction struct {
	// FilePath is the full source path.
	FilePath string

	// FileName is the source base name.
	FileName string

	// Fields maps template field names to extracted values.
	// A nil value means the oracle could not locate the field.
	Fields map[string]any

	// Method is the text extraction method used.
	Method ExtractionMethod

	// Confidence is the fraction of fields that were located.
	Confidence float64

	// Errors lists file-level problems encountered.
	Errors []string
}
