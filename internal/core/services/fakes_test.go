package services

import (
	"context"
	"fmt"
	"os"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
)

// fakeOracle replies from a queue, recording every prompt it receives.
type fakeOracle struct {
	replies []string
	err     error
	prompts []string
	models  []domain.Model
}

func (o *fakeOracle) Complete(_ context.Context, model domain.Model, prompt string) (string, error) {
	o.prompts = append(o.prompts, prompt)
	o.models = append(o.models, model)
	if o.err != nil {
		return "", o.err
	}
	if len(o.replies) == 0 {
		return "", fmt.Errorf("fake oracle out of replies")
	}
	reply := o.replies[0]
	if len(o.replies) > 1 {
		o.replies = o.replies[1:]
	}
	return reply, nil
}

func (o *fakeOracle) Ping(context.Context) error { return o.err }

var _ driven.Oracle = (*fakeOracle)(nil)

// fakeReader serves pages from an in-memory slice of page texts.
type fakeReader struct {
	pages     []string
	meta      map[string]string
	countErr  error
	extracted [][2]int
}

func (r *fakeReader) PageCount(string) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return len(r.pages), nil
}

func (r *fakeReader) PageText(_ string, pageIndex int) (string, error) {
	if pageIndex < 0 || pageIndex >= len(r.pages) {
		return "", fmt.Errorf("page %d out of range", pageIndex)
	}
	return r.pages[pageIndex], nil
}

func (r *fakeReader) Metadata(string) (map[string]string, error) {
	if r.meta == nil {
		return map[string]string{}, nil
	}
	return r.meta, nil
}

func (r *fakeReader) ExtractPages(_, dst string, startPage, endPage int) error {
	r.extracted = append(r.extracted, [2]int{startPage, endPage})
	return os.WriteFile(dst, []byte("pdf"), 0o644)
}

var _ driven.PageReader = (*fakeReader)(nil)

// fakeOCR recognises pages from a fixed map.
type fakeOCR struct {
	available bool
	texts     map[int]string
	err       error
	calls     int
}

func (o *fakeOCR) Available() bool { return o.available }

func (o *fakeOCR) RecognizePage(_ string, pageIndex, _ int, _ string) (string, error) {
	o.calls++
	if o.err != nil {
		return "", o.err
	}
	return o.texts[pageIndex], nil
}

var _ driven.OCREngine = (*fakeOCR)(nil)
