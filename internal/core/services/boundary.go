package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
	"github.com/scanhound/scanhound-cli/internal/logger"
)

// maxCharsPerPromptPage caps how much of each page's text goes into the
// boundary prompt.
const maxCharsPerPromptPage = 1500

// DefaultBoundaryPrompt asks the oracle to partition pages into
// documents. The %s placeholder receives the enumerated page texts.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const DefaultBoundaryPrompt = `Analyze these PDF pages and identify document boundaries.

Each page's text is provided below. Determine if consecutive pages belong to the same document or are different documents that were scanned together.

PAGES:
%s

Respond with a JSON array where each object represents a distinct document found:
{
  "documents": [
    {
      "start_page": 1,
      "end_page": 2,
      "doc_type": "Mortgage Statement",
      "suggested_name": "LoanDepot_Mortgage_Statement",
      "confidence": 0.95
    },
    {
      "start_page": 3,
      "end_page": 3,
      "doc_type": "Utility Bill",
      "suggested_name": "Electric_Bill",
      "confidence": 0.90
    }
  ]
}

Rules:
- Page numbers are 1-indexed in your response
- Group consecutive pages that clearly belong together (same header, continuing content)
- Separate pages with different document types, headers, or senders
- Use Title_Case_With_Underscores for suggested_name
- Be conservative - only split when clearly different documents

Respond with ONLY the JSON object:`

// BoundaryDetector segments a multi-page document into candidate
// sub-documents via an oracle call. Malformed or unparsable oracle
// output means "no boundaries detected", never an aborted run.
// Overlap or gap policing is a caller concern.
type BoundaryDetector struct {
	reader  driven.PageReader
	oracle  driven.Oracle
	prompts driven.PromptStore
}

// NewBoundaryDetector creates a boundary detector.
func NewBoundaryDetector(reader driven.PageReader, oracle driven.Oracle, prompts driven.PromptStore) *BoundaryDetector {
	return &BoundaryDetector{reader: reader, oracle: oracle, prompts: prompts}
}

// ReadPages extracts the (possibly truncated) direct text of every page
// for prompting. Pages with no extractable text get a placeholder so
// the oracle still sees their position.
func (d *BoundaryDetector) ReadPages(path string) ([]domain.PageRecord, error) {
	count, err := d.reader.PageCount(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	pages := make([]domain.PageRecord, 0, count)
	for i := 0; i < count; i++ {
		text, err := d.reader.PageText(path, i)
		if err != nil {
			text = ""
		}
		text = strings.TrimSpace(text)

		truncated := false
		if len(text) > maxCharsPerPromptPage {
			text = text[:maxCharsPerPromptPage] + "..."
			truncated = true
		}
		if text == "" {
			text = "[No extractable text - may need OCR]"
		}
		pages = append(pages, domain.PageRecord{PageIndex: i, Text: text, Truncated: truncated})
	}
	return pages, nil
}

// DetectSegments asks the oracle to partition the pages into documents.
// Single-page documents are skipped entirely. The oracle replies with
// 1-indexed page numbers which are converted to 0-indexed; a reply with
// zero or one segment normalises to "no split needed".
func (d *BoundaryDetector) DetectSegments(ctx context.Context, pages []domain.PageRecord, settings domain.Settings) []domain.DocumentSegment {
	if len(pages) <= 1 {
		return nil
	}

	var sb strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&sb, "\n--- PAGE %d ---\n%s\n", p.PageIndex+1, p.Text)
	}

	template := loadPrompt(d.prompts, driven.PromptBoundary, DefaultBoundaryPrompt)
	prompt := fmt.Sprintf(template, sb.String())

	logger.Info("analyzing %d pages for document boundaries", len(pages))
	reply, err := d.oracle.Complete(ctx, settings.Model, prompt)
	if err != nil {
		logger.Warn("boundary detection failed: %v", err)
		return nil
	}

	parsed, err := parseOracleObject(reply, "documents")
	if err != nil {
		logger.Warn("boundary reply unparsable, treating as single document: %v", err)
		return nil
	}

	rawDocs, _ := parsed["documents"].([]any)
	segments := make([]domain.DocumentSegment, 0, len(rawDocs))
	for _, raw := range rawDocs {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		start, ok := asInt(obj["start_page"])
		if !ok {
			continue
		}
		end, ok := asInt(obj["end_page"])
		if !ok {
			continue
		}

		seg := domain.DocumentSegment{
			StartPage:     start - 1,
			EndPage:       end - 1,
			DocType:       "Unknown",
			SuggestedName: "Document",
			Confidence:    0.5,
		}
		if v, ok := obj["doc_type"].(string); ok && v != "" {
			seg.DocType = v
		}
		if v, ok := obj["suggested_name"].(string); ok && v != "" {
			seg.SuggestedName = v
		}
		if v, ok := obj["confidence"].(float64); ok {
			seg.Confidence = clamp01(v)
		}
		segments = append(segments, seg)
	}

	// Zero or one segment - including one covering all pages - means
	// the scan is a single document.
	if len(segments) <= 1 {
		return nil
	}
	return segments
}

func asInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}
