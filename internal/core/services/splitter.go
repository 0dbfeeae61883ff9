package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driving"
	"github.com/scanhound/scanhound-cli/internal/logger"
)

// Ensure Splitter implements the interface.
var _ driving.SplitService = (*Splitter)(nil)

// Splitter analyses multi-document scans and writes one new PDF per
// detected segment.
type Splitter struct {
	reader   driven.PageReader
	detector *BoundaryDetector
}

// NewSplitter creates a splitter.
func NewSplitter(reader driven.PageReader, detector *BoundaryDetector) *Splitter {
	return &Splitter{reader: reader, detector: detector}
}

// Analyze reads per-page text and runs boundary detection. A document
// with at most one page, or at most one detected segment, yields no
// segments.
func (s *Splitter) Analyze(ctx context.Context, path string, settings domain.Settings) ([]domain.PageRecord, []domain.DocumentSegment, error) {
	pages, err := s.detector.ReadPages(path)
	if err != nil {
		return nil, nil, err
	}
	if len(pages) <= 1 {
		return pages, nil, nil
	}
	segments := s.detector.DetectSegments(ctx, pages, settings)
	return pages, segments, nil
}

// Split writes one PDF per segment next to the source file, named
// split_<n>_<suggested name>.pdf with counter suffixes on collision.
// Returns the created paths.
func (s *Splitter) Split(path string, segments []domain.DocumentSegment) ([]string, error) {
	dir := filepath.Dir(path)

	created := make([]string, 0, len(segments))
	for i, seg := range segments {
		baseName := fmt.Sprintf("split_%d_%s", i+1, SanitizeFilename(seg.SuggestedName))
		outPath := filepath.Join(dir, baseName+".pdf")
		counter := 1
		for {
			if _, err := os.Stat(outPath); os.IsNotExist(err) {
				break
			}
			outPath = filepath.Join(dir, fmt.Sprintf("%s_%d.pdf", baseName, counter))
			counter++
		}

		if err := s.reader.ExtractPages(path, outPath, seg.StartPage, seg.EndPage); err != nil {
			return created, fmt.Errorf("split pages %d-%d: %w", seg.StartPage+1, seg.EndPage+1, err)
		}
		created = append(created, outPath)
		logger.Info("created %s", filepath.Base(outPath))
	}
	return created, nil
}

// PerPageSegments builds one single-page segment per page, used for the
// split-by-individual-pages choice.
func PerPageSegments(pages []domain.PageRecord) []domain.DocumentSegment {
	segments := make([]domain.DocumentSegment, len(pages))
	for i := range pages {
		segments[i] = domain.DocumentSegment{
			StartPage:     i,
			EndPage:       i,
			DocType:       "Page",
			SuggestedName: fmt.Sprintf("page_%d", i+1),
			Confidence:    1.0,
		}
	}
	return segments
}
