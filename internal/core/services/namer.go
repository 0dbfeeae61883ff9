package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
	"github.com/scanhound/scanhound-cli/internal/logger"
)

// DefaultNamingPrompt asks the oracle for naming components as a bare
// JSON object. The %s placeholder receives the (possibly truncated)
// document text.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const DefaultNamingPrompt = `Analyze this document text and suggest a filename.

DOCUMENT TEXT (extracted from PDF):
---
%s
---

Based on the document content, provide a JSON response with:
1. "date": The most relevant date in YYYY-MM-DD format (document date, invoice date, statement date, etc.). Use null if no date found.
2. "description": A concise description (2-5 words, use underscores between words). Be specific: "Electric_Bill_January" not just "Bill".
3. "confidence": Your confidence in this naming (0.0 to 1.0).
4. "reasoning": Brief explanation of your choice (1 sentence).

Rules:
- Description should identify the document type and key details
- Use Title_Case_With_Underscores for description
- Avoid generic names like "Document" or "Scan"
- Include relevant identifiers when present (company name, account type, etc.)

Respond with ONLY the JSON object, no other text:
{"date": "YYYY-MM-DD", "description": "Description_Here", "confidence": 0.95, "reasoning": "explanation"}`

// promptReserve is headroom subtracted from the model's context budget
// for the prompt template around the document text.
const promptReserve = 1000

var (
	isoDateRe      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	invalidNameRe  = regexp.MustCompile(`[<>:"/\\|?*]`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

// Namer asks the oracle for a naming suggestion and normalises the
// reply into a NamingSuggestion.
type Namer struct {
	oracle  driven.Oracle
	prompts driven.PromptStore
}

// NewNamer creates a namer. prompts may be nil, in which case the
// embedded default prompt is used.
func NewNamer(oracle driven.Oracle, prompts driven.PromptStore) *Namer {
	return &Namer{oracle: oracle, prompts: prompts}
}

// SuggestName builds the naming prompt from the extracted text,
// truncated to the model's context budget, and parses the oracle's
// JSON reply. An invalid date is discarded rather than failing the
// suggestion; the description is sanitised for cross-platform use.
func (n *Namer) SuggestName(ctx context.Context, text string, settings domain.Settings) (domain.NamingSuggestion, error) {
	budget := settings.Model.ContextBudget() - promptReserve
	text = SmartTruncate(text, budget)

	template := loadPrompt(n.prompts, driven.PromptNaming, DefaultNamingPrompt)
	prompt := fmt.Sprintf(template, text)

	logger.Info("requesting naming suggestion (%s), prompt %d chars", settings.Model, len(prompt))
	reply, err := n.oracle.Complete(ctx, settings.Model, prompt)
	if err != nil {
		return domain.NamingSuggestion{}, fmt.Errorf("naming query: %w", err)
	}

	parsed, err := parseOracleObject(reply, "date", "description")
	if err != nil {
		return domain.NamingSuggestion{}, err
	}

	date, _ := parsed["date"].(string)
	if date != "" && !isoDateRe.MatchString(date) {
		logger.Warn("invalid date format %q, ignoring", date)
		date = ""
	}

	description, _ := parsed["description"].(string)
	if description == "" {
		description = "Unknown_Document"
	}
	description = SanitizeFilename(description)

	confidence := 0.5
	if c, ok := parsed["confidence"].(float64); ok {
		confidence = clamp01(c)
	}

	reasoning, _ := parsed["reasoning"].(string)
	if reasoning == "" {
		reasoning = "No reasoning provided"
	}

	return domain.NamingSuggestion{
		Date:        date,
		Description: description,
		Confidence:  confidence,
		Reasoning:   reasoning,
		ModelUsed:   string(settings.Model),
		RawReply:    reply,
	}, nil
}

// SanitizeFilename replaces characters that are invalid in filenames on
// any supported platform with underscores, collapses runs, and trims
// the edges.
func SanitizeFilename(name string) string {
	name = invalidNameRe.ReplaceAllString(name, "_")
	name = underscoreRuns.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// loadPrompt loads a template from the store, falling back to the
// embedded default.
func loadPrompt(store driven.PromptStore, name, fallback string) string {
	if store == nil {
		return fallback
	}
	prompt, err := store.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
