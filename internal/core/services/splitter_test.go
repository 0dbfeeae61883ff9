package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
)

func TestAnalyze_SinglePageNoSplit(t *testing.T) {
	oracle := &fakeOracle{}
	reader := &fakeReader{pages: []string{"only page"}}
	splitter := NewSplitter(reader, NewBoundaryDetector(reader, oracle, nil))

	pages, segments, err := splitter.Analyze(context.Background(), "a.pdf", domain.DefaultSettings())

	require.NoError(t, err)
	assert.Len(t, pages, 1)
	assert.Nil(t, segments)
	assert.Empty(t, oracle.prompts)
}

func TestAnalyze_MultiDocument(t *testing.T) {
	oracle := &fakeOracle{replies: []string{`{"documents": [
		{"start_page": 1, "end_page": 1, "suggested_name": "One"},
		{"start_page": 2, "end_page": 2, "suggested_name": "Two"}
	]}`}}
	reader := &fakeReader{pages: []string{"page one text", "page two text"}}
	splitter := NewSplitter(reader, NewBoundaryDetector(reader, oracle, nil))

	pages, segments, err := splitter.Analyze(context.Background(), "a.pdf", domain.DefaultSettings())

	require.NoError(t, err)
	assert.Len(t, pages, 2)
	require.Len(t, segments, 2)
	assert.Equal(t, "One", segments[0].SuggestedName)
}

func TestSplit_WritesSegmentFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "multi.pdf")
	require.NoError(t, os.WriteFile(src, []byte("pdf"), 0o644))

	reader := &fakeReader{}
	splitter := NewSplitter(reader, nil)

	created, err := splitter.Split(src, []domain.DocumentSegment{
		{StartPage: 0, EndPage: 1, SuggestedName: "Mortgage_Statement"},
		{StartPage: 2, EndPage: 2, SuggestedName: "Electric_Bill"},
	})

	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, filepath.Join(dir, "split_1_Mortgage_Statement.pdf"), created[0])
	assert.Equal(t, filepath.Join(dir, "split_2_Electric_Bill.pdf"), created[1])
	assert.Equal(t, [][2]int{{0, 1}, {2, 2}}, reader.extracted)
	assert.FileExists(t, created[0])
}

func TestSplit_CollisionGetsCounterSuffix(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "multi.pdf")
	require.NoError(t, os.WriteFile(src, []byte("pdf"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "split_1_Bill.pdf"), []byte("pdf"), 0o644))

	splitter := NewSplitter(&fakeReader{}, nil)

	created, err := splitter.Split(src, []domain.DocumentSegment{
		{StartPage: 0, EndPage: 0, SuggestedName: "Bill"},
	})

	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, filepath.Join(dir, "split_1_Bill_1.pdf"), created[0])
}

func TestSplit_SanitisesSuggestedName(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "multi.pdf")
	require.NoError(t, os.WriteFile(src, []byte("pdf"), 0o644))

	splitter := NewSplitter(&fakeReader{}, nil)

	created, err := splitter.Split(src, []domain.DocumentSegment{
		{StartPage: 0, EndPage: 0, SuggestedName: `Bad:Name?`},
	})

	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, filepath.Join(dir, "split_1_Bad_Name.pdf"), created[0])
}

func TestPerPageSegments(t *testing.T) {
	pages := []domain.PageRecord{{PageIndex: 0}, {PageIndex: 1}, {PageIndex: 2}}

	segments := PerPageSegments(pages)

	require.Len(t, segments, 3)
	assert.Equal(t, 1, segments[1].StartPage)
	assert.Equal(t, 1, segments[1].EndPage)
	assert.Equal(t, "page_2", segments[1].SuggestedName)
	assert.Equal(t, 1.0, segments[1].Confidence)
}
