package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanhound/scanhound-cli/internal/adapters/driven/storage/memory"
	"github.com/scanhound/scanhound-cli/internal/core/domain"
)

func newTestEngine(t *testing.T) (*LearningEngine, *memory.PatternStore, *memory.CorrectionStore) {
	t.Helper()
	patterns := memory.NewPatternStore()
	corrections := memory.NewCorrectionStore()
	engine := NewLearningEngine(patterns, corrections)
	engine.SetClock(func() time.Time {
		return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	})
	return engine, patterns, corrections
}

func seedPattern(t *testing.T, engine *LearningEngine, keywords []string, template string, timesApplied int, confidence float64) {
	t.Helper()
	engine.patterns = append(engine.patterns, domain.Pattern{
		ID:                  "pat_" + template,
		SignatureKeywords:   keywords,
		DescriptionTemplate: template,
		TimesApplied:        timesApplied,
		ConfidenceAvg:       confidence,
	})
}

func TestFindCorrection_ByHash(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	_, err := engine.AddCorrection("old.pdf", "2026-01-01_Fixed.pdf", "hash1", "")
	require.NoError(t, err)

	c, ok := engine.FindCorrection("hash1")

	require.True(t, ok)
	assert.Equal(t, "2026-01-01_Fixed.pdf", c.CorrectedName)

	_, ok = engine.FindCorrection("other")
	assert.False(t, ok)
}

func TestFindCorrection_EmptyHashNeverMatches(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	_, err := engine.AddCorrection("old.pdf", "new.pdf", "", "")
	require.NoError(t, err)

	_, ok := engine.FindCorrection("")
	assert.False(t, ok)
}

func TestFindMatchingPattern_ScoreThreshold(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	// 2 of 4 keywords present: score exactly 0.5, accepted.
	seedPattern(t, engine, []string{"electric", "utility", "meter", "kilowatt"}, "Electric_Bill", 1, 0.9)

	match, err := engine.FindMatchingPattern("electric utility invoice march", "h")

	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, 0.5, match.Score)
	assert.Equal(t, "Electric_Bill", match.Pattern.DescriptionTemplate)
}

func TestFindMatchingPattern_BelowThresholdRejected(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	// 1 of 4 keywords: score 0.25.
	seedPattern(t, engine, []string{"electric", "utility", "meter", "kilowatt"}, "Electric_Bill", 1, 0.9)

	match, err := engine.FindMatchingPattern("electric invoice march payment", "h")

	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestFindMatchingPattern_PopularityBoost(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	// 2 of 4 keywords on a heavily used pattern: 0.5 * 1.10 = 0.55.
	seedPattern(t, engine, []string{"electric", "utility", "meter", "kilowatt"}, "Electric_Bill", 6, 0.9)

	match, err := engine.FindMatchingPattern("electric utility invoice", "h")

	require.NoError(t, err)
	require.NotNil(t, match)
	assert.InDelta(t, 0.55, match.Score, 1e-9)
}

func TestFindMatchingPattern_BestScoreWins(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	seedPattern(t, engine, []string{"electric", "utility"}, "Electric_Bill", 1, 0.9)
	seedPattern(t, engine, []string{"electric", "utility", "water", "sewer"}, "Combined_Bill", 1, 0.9)

	match, err := engine.FindMatchingPattern("electric utility statement", "h")

	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "Electric_Bill", match.Pattern.DescriptionTemplate)
}

func TestFindMatchingPattern_CorrectionOverrides(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	seedPattern(t, engine, []string{"electric", "utility"}, "Electric_Bill", 1, 0.9)
	_, err := engine.AddCorrection("a.pdf", "b.pdf", "hash1", "")
	require.NoError(t, err)

	_, err = engine.FindMatchingPattern("electric utility", "hash1")

	assert.ErrorIs(t, err, domain.ErrCorrectionOverride)
}

func TestLearnFromSuccess_CreatesPattern(t *testing.T) {
	engine, patterns, _ := newTestEngine(t)

	id, err := engine.LearnFromSuccess("electric utility kilowatt meter reading",
		"2026-03-01_Electric_Bill.pdf", 0.9, "hash1")

	require.NoError(t, err)
	assert.NotEmpty(t, id)

	stored, err := patterns.Load()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "2026-03-01_Electric_Bill.pdf", stored[0].DescriptionTemplate)
	assert.Equal(t, 1, stored[0].TimesApplied)
	assert.Equal(t, 0.9, stored[0].ConfidenceAvg)
}

func TestLearnFromSuccess_LowConfidenceDiscarded(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	id, err := engine.LearnFromSuccess("electric utility kilowatt", "x.pdf", 0.6, "h")

	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Empty(t, engine.Patterns())
}

func TestLearnFromSuccess_TooFewKeywordsDiscarded(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	id, err := engine.LearnFromSuccess("electric electric electric", "x.pdf", 0.9, "h")

	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestLearnFromSuccess_MergesIntoExistingPattern(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	seedPattern(t, engine, []string{"electric", "utility", "meter"}, "Electric_Bill", 2, 0.8)

	// All three keywords present: overlap 3/3 >= 0.6, update in place.
	id, err := engine.LearnFromSuccess("electric utility meter kilowatt",
		"2026-04-01_Electric_Bill.pdf", 0.6, "h")

	require.NoError(t, err)
	assert.Equal(t, "pat_Electric_Bill", id)
	require.Len(t, engine.Patterns(), 1)

	p := engine.Patterns()[0]
	assert.Equal(t, 3, p.TimesApplied)
	// Running mean over the new observation count: (0.8*2 + 0.6) / 3.
	assert.InDelta(t, 0.7333333, p.ConfidenceAvg, 1e-6)
}

func TestAddCorrection_KeywordsCapped(t *testing.T) {
	engine, _, corrections := newTestEngine(t)

	var words []string
	for r := 'a'; r <= 'z'; r++ {
		words = append(words, string([]rune{r, r, r, r}))
	}
	_, err := engine.AddCorrection("a.pdf", "b.pdf", "h", joinWords(words))
	require.NoError(t, err)

	stored, err := corrections.Load()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Len(t, stored[0].KeywordsInContent, domain.MaxSignatureKeywords)
}

func TestStats_TopFiveMostUsed(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	for i := 1; i <= 7; i++ {
		seedPattern(t, engine, []string{"kw"}, string(rune('a'+i)), i, 0.8)
	}

	stats := engine.Stats()

	assert.Equal(t, 7, stats.TotalPatterns)
	require.Len(t, stats.MostUsedPatterns, 5)
	assert.Equal(t, 7, stats.MostUsedPatterns[0].TimesApplied)
	assert.Equal(t, 3, stats.MostUsedPatterns[4].TimesApplied)
}

func joinWords(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}
