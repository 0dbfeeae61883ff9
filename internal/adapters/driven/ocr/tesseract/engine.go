// Package tesseract implements the OCREngine port by shelling out to
// pdftoppm (page rasterisation) and tesseract (recognition). Both tools
// are optional on the host; Available reports whether the pair is
// installed, and the answer is cached for the process lifetime.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
	"github.com/scanhound/scanhound-cli/internal/logger"
)

// Ensure Engine implements the interface.
var _ driven.OCREngine = (*Engine)(nil)

// pageTimeout bounds rendering plus recognition of a single page.
const pageTimeout = 5 * time.Minute

// Runner lets us stub external commands in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	dur := time.Since(start)

	if err != nil {
		logger.Warn("exec %s failed after %dms: %v", name, dur.Milliseconds(), err)
	} else {
		logger.Debug("exec %s ok, %dms, %d bytes out", name, dur.Milliseconds(), out.Len())
	}

	return out.Bytes(), errb.Bytes(), err
}

// Config holds configuration for the OCR engine.
type Config struct {
	// Pdftoppm is the binary name or absolute path; if empty -> "pdftoppm".
	Pdftoppm string

	// Tesseract is the binary name or absolute path; if empty -> "tesseract".
	Tesseract string
}

// Engine renders and recognises single PDF pages.
type Engine struct {
	cfg    Config
	runner Runner

	availOnce sync.Once
	available bool
}

// NewEngine creates a tesseract-backed OCR engine.
func NewEngine(cfg Config) *Engine {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	return &Engine{cfg: cfg, runner: execRunner{}}
}

// SetRunner replaces the command runner. Used by tests; also resets the
// cached availability answer.
func (e *Engine) SetRunner(r Runner) {
	e.runner = r
	e.availOnce = sync.Once{}
}

// Available implements driven.OCREngine. Both tools must resolve on
// PATH (or be configured absolute paths that exist).
func (e *Engine) Available() bool {
	e.availOnce.Do(func() {
		e.available = e.lookupBinary(e.cfg.Pdftoppm) && e.lookupBinary(e.cfg.Tesseract)
		if !e.available {
			logger.Info("OCR tools not found (need %s and %s)", e.cfg.Pdftoppm, e.cfg.Tesseract)
		}
	})
	return e.available
}

func (e *Engine) lookupBinary(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// RecognizePage implements driven.OCREngine. pageIndex is 0-based;
// pdftoppm numbers pages from 1.
func (e *Engine) RecognizePage(path string, pageIndex, dpi int, language string) (string, error) {
	if !e.Available() {
		return "", domain.ErrOCRUnavailable
	}
	if language == "" {
		language = "eng"
	}

	ctx, cancel := context.WithTimeout(context.Background(), pageTimeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "scanhound-ocr-*")
	if err != nil {
		return "", fmt.Errorf("creating OCR temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	// pdftoppm -f N -l N -r <dpi> -png <in.pdf> <tmp/page>
	pageNr := strconv.Itoa(pageIndex + 1)
	prefix := filepath.Join(tmpDir, "page")
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-f", pageNr, "-l", pageNr, "-r", strconv.Itoa(dpi), "-png", path, prefix)
	if err != nil {
		return "", fmt.Errorf("rendering page %s of %s: %w: %s", pageNr, path, err, strings.TrimSpace(string(errb)))
	}

	// pdftoppm pads the page number (page-1.png, page-01.png, ...)
	// depending on the page count, so glob instead of guessing.
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", fmt.Errorf("rendering page %s of %s: no image produced", pageNr, path)
	}

	// tesseract <img> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, matches[0], "stdout", "-l", language)
	if err != nil {
		return "", fmt.Errorf("recognising page %s of %s: %w: %s", pageNr, path, err, strings.TrimSpace(string(errb)))
	}

	return strings.TrimSpace(string(out)), nil
}
