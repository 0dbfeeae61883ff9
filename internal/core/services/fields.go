package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driving"
	"github.com/scanhound/scanhound-cli/internal/logger"
)

// Ensure FieldExtractor implements the interface.
var _ driving.FieldExtractService = (*FieldExtractor)(nil)

// DefaultFieldPrompt asks the oracle to locate template fields in the
// document. The %s placeholders receive the document text and the
// field list.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const DefaultFieldPrompt = `Extract specific information from this document.

DOCUMENT TEXT:
---
%s
---

FIELDS TO EXTRACT:
%s

For each field, find the corresponding value in the document. If a field cannot be found, use null.

Respond with a JSON object where keys are the exact field names and values are the extracted data:
{"field1": "value1", "field2": "value2", ...}

Rules:
- Use exact field names as keys (case-sensitive)
- Return null for fields not found in the document
- For dates, use YYYY-MM-DD format when possible
- For currency, include the number only (no $ or commas)
- Keep values concise but complete

Respond with ONLY the JSON object:`

// fieldPromptReserve is headroom for the prompt template plus the field
// list, larger than the naming reserve.
const fieldPromptReserve = 2000

// FieldExtractor performs templated bulk field extraction: given a list
// of field names, it asks the oracle to locate each one in a document's
// text. Oracle failures never abort a run - the affected file reports
// all fields nil with the error recorded in the result.
type FieldExtractor struct {
	extractor *TextExtractor
	oracle    driven.Oracle
	prompts   driven.PromptStore
}

// NewFieldExtractor creates a field extractor.
func NewFieldExtractor(extractor *TextExtractor, oracle driven.Oracle, prompts driven.PromptStore) *FieldExtractor {
	return &FieldExtractor{extractor: extractor, oracle: oracle, prompts: prompts}
}

// ExtractFields runs extraction and the oracle field query for one file.
func (f *FieldExtractor) ExtractFields(ctx context.Context, path string, fields []string, settings domain.Settings) domain.FieldExtraction {
	result := domain.FieldExtraction{
		FilePath: path,
		FileName: filepath.Base(path),
		Fields:   nullFields(fields),
		Method:   domain.MethodNone,
	}

	extraction, err := f.extractor.Extract(path, settings)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("text extraction failed: %v", err))
		return result
	}
	if extraction.IsEmpty() {
		result.Errors = append(result.Errors, "no text could be extracted")
		return result
	}
	result.Method = extraction.Method

	values, err := f.queryFields(ctx, extraction.Text, fields, settings)
	if err != nil {
		logger.Warn("field extraction for %s: %v", result.FileName, err)
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.Fields = values

	found := 0
	for _, v := range values {
		if v != nil {
			found++
		}
	}
	if len(fields) > 0 {
		result.Confidence = float64(found) / float64(len(fields))
	}
	return result
}

// queryFields builds the extraction prompt and parses the flat
// field-to-value reply.
func (f *FieldExtractor) queryFields(ctx context.Context, text string, fields []string, settings domain.Settings) (map[string]any, error) {
	budget := settings.Model.ContextBudget() - fieldPromptReserve
	text = SmartTruncate(text, budget)

	var fieldList strings.Builder
	for _, field := range fields {
		fmt.Fprintf(&fieldList, "- %s\n", field)
	}

	template := loadPrompt(f.prompts, driven.PromptFieldExtraction, DefaultFieldPrompt)
	prompt := fmt.Sprintf(template, text, fieldList.String())

	reply, err := f.oracle.Complete(ctx, settings.Model, prompt)
	if err != nil {
		return nil, fmt.Errorf("field query: %w", err)
	}

	parsed, err := parseOracleObject(reply)
	if err != nil {
		return nil, err
	}

	// Project onto exactly the template fields; unknown keys from the
	// oracle are discarded, missing ones become nil.
	values := make(map[string]any, len(fields))
	for _, field := range fields {
		values[field] = parsed[field]
	}
	return values, nil
}

func nullFields(fields []string) map[string]any {
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f] = nil
	}
	return m
}
