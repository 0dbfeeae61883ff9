package domain

import "time"

// Bounds on pattern state, preserved from the learning model.
const (
	// MaxSignatureKeywords caps a pattern's keyword signature.
	MaxSignatureKeywords = 15

	// MaxSourceExamples caps the retained example names (FIFO eviction).
	MaxSourceExamples = 10
)

// Pattern is a learned keyword signature plus a naming template,
// reusable across structurally similar documents. Patterns are mutated
// only by the learning engine.
type Pattern struct {
	// ID is a human-debuggable identifier: pat_<timestamp>_<hash fragment>.
	ID string `json:"pattern_id"`

	// SignatureKeywords identify the pattern. Insertion order is
	// relevance order; at most MaxSignatureKeywords entries.
	SignatureKeywords []string `json:"signature_keywords"`

	// DescriptionTemplate is the filename applied on a match.
	DescriptionTemplate string `json:"description_template"`

	// SourceExamples are names that matched this pattern, most recent
	// last, capped at MaxSourceExamples.
	SourceExamples []string `json:"source_examples"`

	// TimesApplied counts confirmed applications; always >= 1.
	TimesApplied int `json:"times_applied"`

	// ConfidenceAvg is the running mean of observed confidences, in [0,1].
	ConfidenceAvg float64 `json:"confidence_avg"`

	// CreatedAt is when the pattern was first learned.
	CreatedAt time.Time `json:"created_at"`

	// LastUsed is when the pattern was last applied or updated.
	LastUsed time.Time `json:"last_used"`
}

// RecordApplication folds a new observation into the pattern state.
// The running mean uses the post-increment count:
// new_avg = (old_avg*(n-1) + confidence) / n.
func (p *Pattern) RecordApplication(confidence float64, name string, now time.Time) {
	p.TimesApplied++
	n := float64(p.TimesApplied)
	p.ConfidenceAvg = (p.ConfidenceAvg*(n-1) + confidence) / n
	p.LastUsed = now

	for _, ex := range p.SourceExamples {
		if ex == name {
			return
		}
	}
	p.SourceExamples = append(p.SourceExamples, name)
	if len(p.SourceExamples) > MaxSourceExamples {
		p.SourceExamples = p.SourceExamples[len(p.SourceExamples)-MaxSourceExamples:]
	}
}

// PatternMatch pairs a matched pattern with its overlap score.
type PatternMatch struct {
	// Pattern is the best-scoring stored pattern.
	Pattern Pattern

	// Score is the keyword-overlap score that selected it, >= 0.5.
	Score float64
}
