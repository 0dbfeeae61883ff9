package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
)

func TestReadPages_TruncatesAndPlaceholders(t *testing.T) {
	reader := &fakeReader{pages: []string{
		strings.Repeat("x", 2000),
		"",
		"  normal page  ",
	}}
	detector := NewBoundaryDetector(reader, &fakeOracle{}, nil)

	pages, err := detector.ReadPages("a.pdf")

	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.True(t, pages[0].Truncated)
	assert.True(t, strings.HasSuffix(pages[0].Text, "..."))
	assert.Equal(t, "[No extractable text - may need OCR]", pages[1].Text)
	assert.Equal(t, "normal page", pages[2].Text)
	assert.Equal(t, 2, pages[2].PageIndex)
}

func TestDetectSegments_SinglePageSkipsOracle(t *testing.T) {
	oracle := &fakeOracle{}
	detector := NewBoundaryDetector(&fakeReader{}, oracle, nil)

	segments := detector.DetectSegments(context.Background(),
		[]domain.PageRecord{{PageIndex: 0, Text: "only page"}}, domain.DefaultSettings())

	assert.Nil(t, segments)
	assert.Empty(t, oracle.prompts)
}

func TestDetectSegments_ParsesOneBasedPages(t *testing.T) {
	oracle := &fakeOracle{replies: []string{`{
		"documents": [
			{"start_page": 1, "end_page": 2, "doc_type": "Mortgage Statement", "suggested_name": "Mortgage_Statement", "confidence": 0.95},
			{"start_page": 3, "end_page": 3, "doc_type": "Utility Bill", "suggested_name": "Electric_Bill", "confidence": 0.9}
		]
	}`}}
	detector := NewBoundaryDetector(&fakeReader{}, oracle, nil)
	pages := []domain.PageRecord{{PageIndex: 0}, {PageIndex: 1}, {PageIndex: 2}}

	segments := detector.DetectSegments(context.Background(), pages, domain.DefaultSettings())

	require.Len(t, segments, 2)
	assert.Equal(t, 0, segments[0].StartPage)
	assert.Equal(t, 1, segments[0].EndPage)
	assert.Equal(t, 2, segments[1].StartPage)
	assert.Equal(t, "Electric_Bill", segments[1].SuggestedName)
}

func TestDetectSegments_SingleSegmentMeansNoSplit(t *testing.T) {
	oracle := &fakeOracle{replies: []string{`{"documents": [{"start_page": 1, "end_page": 3, "doc_type": "Report", "suggested_name": "Annual_Report", "confidence": 0.9}]}`}}
	detector := NewBoundaryDetector(&fakeReader{}, oracle, nil)
	pages := []domain.PageRecord{{PageIndex: 0}, {PageIndex: 1}, {PageIndex: 2}}

	segments := detector.DetectSegments(context.Background(), pages, domain.DefaultSettings())

	assert.Nil(t, segments)
}

func TestDetectSegments_MalformedReplyMeansNoSplit(t *testing.T) {
	oracle := &fakeOracle{replies: []string{"these pages look like one document to me"}}
	detector := NewBoundaryDetector(&fakeReader{}, oracle, nil)
	pages := []domain.PageRecord{{PageIndex: 0}, {PageIndex: 1}}

	segments := detector.DetectSegments(context.Background(), pages, domain.DefaultSettings())

	assert.Nil(t, segments)
}

func TestDetectSegments_OracleErrorMeansNoSplit(t *testing.T) {
	oracle := &fakeOracle{err: domain.ErrOracleUnavailable}
	detector := NewBoundaryDetector(&fakeReader{}, oracle, nil)
	pages := []domain.PageRecord{{PageIndex: 0}, {PageIndex: 1}}

	segments := detector.DetectSegments(context.Background(), pages, domain.DefaultSettings())

	assert.Nil(t, segments)
}

func TestDetectSegments_DefaultsForMissingFields(t *testing.T) {
	oracle := &fakeOracle{replies: []string{`{"documents": [
		{"start_page": 1, "end_page": 1},
		{"start_page": 2, "end_page": 2}
	]}`}}
	detector := NewBoundaryDetector(&fakeReader{}, oracle, nil)
	pages := []domain.PageRecord{{PageIndex: 0}, {PageIndex: 1}}

	segments := detector.DetectSegments(context.Background(), pages, domain.DefaultSettings())

	require.Len(t, segments, 2)
	assert.Equal(t, "Unknown", segments[0].DocType)
	assert.Equal(t, "Document", segments[0].SuggestedName)
	assert.Equal(t, 0.5, segments[0].Confidence)
}

func TestDetectSegments_PromptEnumeratesPages(t *testing.T) {
	oracle := &fakeOracle{replies: []string{`{"documents": []}`}}
	detector := NewBoundaryDetector(&fakeReader{}, oracle, nil)
	pages := []domain.PageRecord{
		{PageIndex: 0, Text: "first page text"},
		{PageIndex: 1, Text: "second page text"},
	}

	detector.DetectSegments(context.Background(), pages, domain.DefaultSettings())

	require.Len(t, oracle.prompts, 1)
	assert.Contains(t, oracle.prompts[0], "--- PAGE 1 ---")
	assert.Contains(t, oracle.prompts[0], "second page text")
}
