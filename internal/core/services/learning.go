package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driving"
	"github.com/scanhound/scanhound-cli/internal/logger"
)

// Ensure LearningEngine implements the interface.
var _ driving.LearningService = (*LearningEngine)(nil)

// Matching thresholds. The match threshold (0.5) and the merge
// threshold (0.6) are independent constants; unifying them would alter
// learning outcomes, so both are preserved as-is.
const (
	// minMatchScore is the minimum keyword-overlap score for a stored
	// pattern to be applied to a document.
	minMatchScore = 0.5

	// mergeOverlap is the keyword-overlap fraction (of the pattern's
	// own keyword count) above which a new observation updates an
	// existing pattern instead of creating a new one.
	mergeOverlap = 0.6

	// popularityBoost is applied to patterns used more than
	// popularityMinUses times.
	popularityBoost   = 1.10
	popularityMinUses = 5

	// minNewPatternConfidence and minNewPatternKeywords gate creation
	// of a brand-new pattern from a single observation.
	minNewPatternConfidence = 0.75
	minNewPatternKeywords   = 3
)

// LearningEngine maintains the two persisted knowledge bases (patterns
// and corrections), matches documents against them, and updates them as
// outcomes are observed. Every mutation is written through to storage
// immediately.
type LearningEngine struct {
	patternStore    driven.PatternStore
	correctionStore driven.CorrectionStore

	patterns    []domain.Pattern
	corrections []domain.Correction

	now func() time.Time
}

// NewLearningEngine loads both knowledge bases. Corrupt or missing
// stores degrade to empty state rather than failing construction.
func NewLearningEngine(patterns driven.PatternStore, corrections driven.CorrectionStore) *LearningEngine {
	e := &LearningEngine{
		patternStore:    patterns,
		correctionStore: corrections,
		now:             time.Now,
	}

	loaded, err := patterns.Load()
	if err != nil {
		logger.Warn("pattern store load failed, starting empty: %v", err)
		loaded = nil
	}
	e.patterns = loaded

	cors, err := corrections.Load()
	if err != nil {
		logger.Warn("correction store load failed, starting empty: %v", err)
		cors = nil
	}
	e.corrections = cors

	logger.Debug("learning engine loaded %d patterns, %d corrections", len(e.patterns), len(e.corrections))
	return e
}

// SetClock overrides the time source. Intended for tests.
func (e *LearningEngine) SetClock(now func() time.Time) {
	e.now = now
}

// FindCorrection returns the corrected name for a content hash that was
// previously corrected by the operator.
func (e *LearningEngine) FindCorrection(contentHash string) (domain.Correction, bool) {
	if contentHash == "" {
		return domain.Correction{}, false
	}
	for _, c := range e.corrections {
		if c.ContentHash == contentHash {
			return c, true
		}
	}
	return domain.Correction{}, false
}

// FindMatchingPattern scores every stored pattern against the
// document's keyword signature and returns the best match with score
// >= 0.5, ties keeping storage order. A stored correction for the same
// content hash returns domain.ErrCorrectionOverride instead: the caller
// must short-circuit to the correction path.
func (e *LearningEngine) FindMatchingPattern(text, contentHash string) (*domain.PatternMatch, error) {
	if _, ok := e.FindCorrection(contentHash); ok {
		return nil, domain.ErrCorrectionOverride
	}
	if len(e.patterns) == 0 {
		return nil, nil
	}

	keywords := ExtractKeywords(text)
	keywordSet := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		keywordSet[k] = struct{}{}
	}

	var best *domain.PatternMatch
	for i := range e.patterns {
		p := &e.patterns[i]
		if len(p.SignatureKeywords) == 0 {
			continue
		}

		overlap := 0
		for _, k := range p.SignatureKeywords {
			if _, ok := keywordSet[k]; ok {
				overlap++
			}
		}

		score := float64(overlap) / float64(len(p.SignatureKeywords))
		if p.TimesApplied > popularityMinUses {
			score *= popularityBoost
		}

		if score >= minMatchScore && (best == nil || score > best.Score) {
			best = &domain.PatternMatch{Pattern: *p, Score: score}
		}
	}

	if best != nil {
		logger.Info("pattern match: %s (score %.2f)", best.Pattern.ID, best.Score)
	}
	return best, nil
}

// LearnFromSuccess folds a confirmed naming outcome into the knowledge
// base. An existing pattern with >= 60% keyword overlap is updated in
// place; otherwise a new pattern is created when the observation is
// confident enough (>= 0.75) and has at least three keywords. Returns
// the affected pattern id, or "" when the observation is discarded.
func (e *LearningEngine) LearnFromSuccess(text, suggestedName string, confidence float64, contentHash string) (string, error) {
	keywords := ExtractKeywords(text)
	if len(keywords) == 0 {
		return "", nil
	}

	keywordSet := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		keywordSet[k] = struct{}{}
	}

	for i := range e.patterns {
		p := &e.patterns[i]
		overlap := 0
		for _, k := range p.SignatureKeywords {
			if _, ok := keywordSet[k]; ok {
				overlap++
			}
		}
		if float64(overlap) >= float64(len(p.SignatureKeywords))*mergeOverlap && len(p.SignatureKeywords) > 0 {
			p.RecordApplication(confidence, suggestedName, e.now())
			if err := e.patternStore.Save(e.patterns); err != nil {
				return "", fmt.Errorf("persist patterns: %w", err)
			}
			logger.Debug("updated pattern %s", p.ID)
			return p.ID, nil
		}
	}

	if confidence < minNewPatternConfidence || len(keywords) < minNewPatternKeywords {
		return "", nil
	}

	now := e.now()
	seed := keywords
	if len(seed) > domain.MaxSignatureKeywords {
		seed = seed[:domain.MaxSignatureKeywords]
	}
	pattern := domain.Pattern{
		ID:                  entityID("pat", now, contentHash),
		SignatureKeywords:   seed,
		DescriptionTemplate: suggestedName,
		SourceExamples:      []string{suggestedName},
		TimesApplied:        1,
		ConfidenceAvg:       confidence,
		CreatedAt:           now,
		LastUsed:            now,
	}
	e.patterns = append(e.patterns, pattern)
	if err := e.patternStore.Save(e.patterns); err != nil {
		return "", fmt.Errorf("persist patterns: %w", err)
	}
	logger.Info("created pattern %s", pattern.ID)
	return pattern.ID, nil
}

// AddCorrection records an operator correction. Corrections are
// monotonically additive history: a new entry is always created, never
// merged with an earlier one.
func (e *LearningEngine) AddCorrection(originalName, correctedName, contentHash, text string) (string, error) {
	keywords := ExtractKeywords(text)
	if len(keywords) > domain.MaxSignatureKeywords {
		keywords = keywords[:domain.MaxSignatureKeywords]
	}

	now := e.now()
	correction := domain.Correction{
		ID:                entityID("cor", now, contentHash),
		OriginalName:      originalName,
		CorrectedName:     correctedName,
		ContentHash:       contentHash,
		KeywordsInContent: keywords,
		CreatedAt:         now,
	}
	e.corrections = append(e.corrections, correction)
	if err := e.correctionStore.Save(e.corrections); err != nil {
		return "", fmt.Errorf("persist corrections: %w", err)
	}
	logger.Info("correction recorded: %s -> %s", originalName, correctedName)
	return correction.ID, nil
}

// Stats summarises the stored patterns and corrections.
func (e *LearningEngine) Stats() driving.LearningStats {
	stats := driving.LearningStats{
		TotalPatterns:    len(e.patterns),
		TotalCorrections: len(e.corrections),
	}

	usage := make([]driving.PatternUsage, 0, len(e.patterns))
	for _, p := range e.patterns {
		usage = append(usage, driving.PatternUsage{PatternID: p.ID, TimesApplied: p.TimesApplied})
	}
	sort.SliceStable(usage, func(i, j int) bool {
		return usage[i].TimesApplied > usage[j].TimesApplied
	})
	if len(usage) > 5 {
		usage = usage[:5]
	}
	stats.MostUsedPatterns = usage
	return stats
}

// Patterns returns the in-memory pattern list (storage order).
func (e *LearningEngine) Patterns() []domain.Pattern {
	return e.patterns
}

// Corrections returns the in-memory correction list.
func (e *LearningEngine) Corrections() []domain.Correction {
	return e.corrections
}

// entityID builds a human-debuggable id: <prefix>_<timestamp>_<hash6>.
func entityID(prefix string, now time.Time, contentHash string) string {
	frag := contentHash
	if len(frag) > 6 {
		frag = frag[:6]
	}
	return fmt.Sprintf("%s_%s_%s", prefix, now.Format("20060102150405"), frag)
}
