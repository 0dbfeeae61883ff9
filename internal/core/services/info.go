package services

import (
	"fmt"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driving"
)

// Ensure Inspector implements the interface.
var _ driving.InfoService = (*Inspector)(nil)

// Inspector reads basic document metadata without running the pipeline.
type Inspector struct {
	reader driven.PageReader
}

// NewInspector creates an inspector.
func NewInspector(reader driven.PageReader) *Inspector {
	return &Inspector{reader: reader}
}

// Info returns the page count and document metadata for a file.
func (i *Inspector) Info(path string) (int, map[string]string, error) {
	pages, err := i.reader.PageCount(path)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	metadata, err := i.reader.Metadata(path)
	if err != nil {
		metadata = map[string]string{}
	}
	return pages, metadata, nil
}
