// Package pdfcpu implements the PageReader port on top of the pdfcpu
// library. Text comes from parsing page content streams directly, which
// handles the common scanner output formats without an external tool.
package pdfcpu

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdflib "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.PageReader = (*Reader)(nil)

// Reader reads PDF pages via pdfcpu. The parsed document context for
// the most recently used path is cached, since a processing run reads
// every page of one file in sequence.
type Reader struct {
	mu         sync.Mutex
	cachedPath string
	cachedCtx  *model.Context
}

// NewReader creates a pdfcpu-backed page reader.
func NewReader() *Reader {
	return &Reader{}
}

// context returns the parsed pdfcpu context for path, reusing the
// cached one when the path matches.
func (r *Reader) context(path string) (*model.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cachedPath == path && r.cachedCtx != nil {
		return r.cachedCtx, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: pdfcpu read %s: %v", domain.ErrExtractionFailed, path, err)
	}

	r.cachedPath = path
	r.cachedCtx = ctx
	return ctx, nil
}

// PageCount implements driven.PageReader.
func (r *Reader) PageCount(path string) (int, error) {
	ctx, err := r.context(path)
	if err != nil {
		return 0, err
	}
	return ctx.PageCount, nil
}

// PageText implements driven.PageReader. pageIndex is 0-based; pdfcpu
// numbers pages from 1.
func (r *Reader) PageText(path string, pageIndex int) (string, error) {
	ctx, err := r.context(path)
	if err != nil {
		return "", err
	}
	if pageIndex < 0 || pageIndex >= ctx.PageCount {
		return "", fmt.Errorf("%w: page %d out of range (document has %d)", domain.ErrInvalidInput, pageIndex+1, ctx.PageCount)
	}

	reader, err := pdflib.ExtractPageContent(ctx, pageIndex+1)
	if err != nil {
		// Pages without a content stream have no text.
		return "", nil
	}
	data, err := io.ReadAll(reader)
	if err != nil || len(data) == 0 {
		return "", nil
	}
	return extractTextFromStream(data), nil
}

// Metadata implements driven.PageReader. Extraction is best-effort;
// anything unreadable yields an empty map.
func (r *Reader) Metadata(path string) (map[string]string, error) {
	ctx, err := r.context(path)
	if err != nil {
		return nil, err
	}

	meta := make(map[string]string)
	if ctx.Info == nil {
		return meta, nil
	}
	d, err := ctx.DereferenceDict(*ctx.Info)
	if err != nil || d == nil {
		return meta, nil
	}

	for _, key := range []string{"Title", "Author", "Subject", "Creator", "Producer", "CreationDate", "ModDate"} {
		if s := d.StringEntry(key); s != nil && *s != "" {
			meta[key] = *s
		}
	}
	return meta, nil
}

// ExtractPages implements driven.PageReader. Pages are 0-based and
// inclusive; pdfcpu's selection syntax is 1-based.
func (r *Reader) ExtractPages(src, dst string, startPage, endPage int) error {
	if startPage < 0 || endPage < startPage {
		return fmt.Errorf("%w: invalid page range %d-%d", domain.ErrInvalidInput, startPage, endPage)
	}

	selection := []string{fmt.Sprintf("%d-%d", startPage+1, endPage+1)}
	if err := api.TrimFile(src, dst, selection, model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("extracting pages %d-%d of %s: %w", startPage+1, endPage+1, src, err)
	}
	return nil
}
