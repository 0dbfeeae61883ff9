package services

import (
	"fmt"
	"strings"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
	"github.com/scanhound/scanhound-cli/internal/logger"
)

// TextExtractor performs per-page adaptive extraction: direct text when
// a page has enough of it, OCR otherwise, with page-level fallback.
// Per-page OCR failures are recovered, never propagated; only a file
// that cannot be opened at all fails the extraction.
type TextExtractor struct {
	reader driven.PageReader
	ocr    driven.OCREngine
}

// NewTextExtractor creates a text extractor.
func NewTextExtractor(reader driven.PageReader, ocr driven.OCREngine) *TextExtractor {
	return &TextExtractor{reader: reader, ocr: ocr}
}

// Extract reads the document at path and returns the merged text.
// The number of pages processed is capped by the speed mode; the
// extraction method aggregates the per-page methods used.
func (e *TextExtractor) Extract(path string, settings domain.Settings) (domain.ExtractionResult, error) {
	totalPages, err := e.reader.PageCount(path)
	if err != nil {
		return domain.ExtractionResult{}, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	pagesToProcess := totalPages
	if maxPages := settings.Speed.MaxPages(); maxPages > 0 && maxPages < totalPages {
		pagesToProcess = maxPages
	}

	logger.Info("extracting %s: %d/%d pages, mode=%s", path, pagesToProcess, totalPages, settings.Speed)

	var parts []string
	usedText, usedOCR := false, false

	// OCR availability is probed at most once per call, on the first
	// page that needs it.
	ocrChecked := false
	ocrAvailable := false

	for page := 0; page < pagesToProcess; page++ {
		directText, err := e.reader.PageText(path, page)
		if err != nil {
			logger.Warn("page %d: direct text failed: %v", page+1, err)
			directText = ""
		}
		directText = strings.TrimSpace(directText)

		if len(directText) >= domain.MinTextThreshold {
			parts = append(parts, fmt.Sprintf("--- Page %d ---\n%s", page+1, directText))
			usedText = true
			logger.Debug("page %d: direct text (%d chars)", page+1, len(directText))
			continue
		}

		if !ocrChecked {
			ocrChecked = true
			ocrAvailable = e.ocr != nil && e.ocr.Available()
		}

		if ocrAvailable {
			ocrText, err := e.ocr.RecognizePage(path, page, settings.Speed.OCRDPI(), settings.OCRLanguage)
			switch {
			case err != nil:
				logger.Warn("page %d: OCR failed: %v", page+1, err)
				// Fall back to whatever direct text we got.
				if directText != "" {
					parts = append(parts, fmt.Sprintf("--- Page %d ---\n%s", page+1, directText))
					usedText = true
				}
			case strings.TrimSpace(ocrText) != "":
				parts = append(parts, fmt.Sprintf("--- Page %d (OCR) ---\n%s", page+1, strings.TrimSpace(ocrText)))
				usedOCR = true
				logger.Debug("page %d: OCR (%d chars)", page+1, len(ocrText))
			default:
				logger.Debug("page %d: OCR returned empty result", page+1)
			}
			continue
		}

		// No OCR engine: degrade to direct text, possibly empty.
		if directText != "" {
			parts = append(parts, fmt.Sprintf("--- Page %d ---\n%s", page+1, directText))
			usedText = true
		} else {
			logger.Warn("page %d: no text and OCR unavailable", page+1)
		}
	}

	fullText := strings.Join(parts, "\n\n")

	var method domain.ExtractionMethod
	switch {
	case usedText && usedOCR:
		method = domain.MethodHybrid
	case usedText:
		method = domain.MethodText
	case usedOCR:
		method = domain.MethodOCR
	default:
		method = domain.MethodNone
	}

	result := domain.ExtractionResult{
		Text:           fullText,
		Method:         method,
		PagesProcessed: pagesToProcess,
		TotalPages:     totalPages,
		ContentHash:    Fingerprint(fullText),
	}

	logger.Info("extracted %d chars via %s", len(fullText), method)
	return result, nil
}
