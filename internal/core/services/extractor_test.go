package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
)

// longText is comfortably above the per-page direct-text threshold.
var longText = strings.Repeat("electric utility invoice statement ", 5)

func TestExtract_DirectText(t *testing.T) {
	reader := &fakeReader{pages: []string{longText}}
	ocr := &fakeOCR{available: true}
	extractor := NewTextExtractor(reader, ocr)

	result, err := extractor.Extract("a.pdf", domain.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, domain.MethodText, result.Method)
	assert.Contains(t, result.Text, "--- Page 1 ---")
	assert.Zero(t, ocr.calls)
	assert.NotEmpty(t, result.ContentHash)
}

func TestExtract_OCRFallbackForSparsePage(t *testing.T) {
	reader := &fakeReader{pages: []string{"x"}}
	ocr := &fakeOCR{available: true, texts: map[int]string{0: "scanned content recognised by ocr"}}
	extractor := NewTextExtractor(reader, ocr)

	result, err := extractor.Extract("a.pdf", domain.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, domain.MethodOCR, result.Method)
	assert.Contains(t, result.Text, "--- Page 1 (OCR) ---")
	assert.Equal(t, 1, ocr.calls)
}

func TestExtract_HybridMethod(t *testing.T) {
	reader := &fakeReader{pages: []string{longText, ""}}
	ocr := &fakeOCR{available: true, texts: map[int]string{1: "second page via ocr"}}
	extractor := NewTextExtractor(reader, ocr)

	result, err := extractor.Extract("a.pdf", domain.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, domain.MethodHybrid, result.Method)
}

func TestExtract_OCRUnavailableDegradesToDirectText(t *testing.T) {
	reader := &fakeReader{pages: []string{"short"}}
	ocr := &fakeOCR{available: false}
	extractor := NewTextExtractor(reader, ocr)

	result, err := extractor.Extract("a.pdf", domain.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, domain.MethodText, result.Method)
	assert.Contains(t, result.Text, "short")
}

func TestExtract_OCRFailureRecoversPerPage(t *testing.T) {
	reader := &fakeReader{pages: []string{longText, ""}}
	ocr := &fakeOCR{available: true, err: errors.New("tesseract crashed")}
	extractor := NewTextExtractor(reader, ocr)

	result, err := extractor.Extract("a.pdf", domain.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, domain.MethodText, result.Method)
	assert.Contains(t, result.Text, "--- Page 1 ---")
}

func TestExtract_EmptyDocument(t *testing.T) {
	reader := &fakeReader{pages: []string{"", ""}}
	ocr := &fakeOCR{available: false}
	extractor := NewTextExtractor(reader, ocr)

	result, err := extractor.Extract("a.pdf", domain.DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, domain.MethodNone, result.Method)
	assert.True(t, result.IsEmpty())
	assert.Empty(t, result.ContentHash)
}

func TestExtract_SpeedModeCapsPages(t *testing.T) {
	pages := make([]string, 10)
	for i := range pages {
		pages[i] = longText
	}
	reader := &fakeReader{pages: pages}
	extractor := NewTextExtractor(reader, &fakeOCR{})

	settings := domain.DefaultSettings()
	settings.Speed = domain.SpeedFast

	result, err := extractor.Extract("a.pdf", settings)

	require.NoError(t, err)
	assert.Equal(t, 1, result.PagesProcessed)
	assert.Equal(t, 10, result.TotalPages)
	assert.NotContains(t, result.Text, "--- Page 2 ---")
}

func TestExtract_UnreadableFileFails(t *testing.T) {
	reader := &fakeReader{countErr: errors.New("not a pdf")}
	extractor := NewTextExtractor(reader, &fakeOCR{})

	_, err := extractor.Extract("a.pdf", domain.DefaultSettings())

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}
