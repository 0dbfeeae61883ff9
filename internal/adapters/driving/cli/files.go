package cli

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
)

// findPDFs resolves a path argument to the list of PDF files to work
// on. A file path yields itself; a directory yields its PDFs, sorted,
// descending into subdirectories only when recursive is set.
func findPDFs(path string, recursive bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", path, err)
	}

	if !info.IsDir() {
		if !isPDFPath(path) {
			return nil, fmt.Errorf("%w: %s is not a PDF file", domain.ErrInvalidInput, path)
		}
		return []string{path}, nil
	}

	var pdfs []string
	if recursive {
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.IsDir() && isPDFPath(p) {
				pdfs = append(pdfs, p)
			}
			return nil
		})
	} else {
		var entries []fs.DirEntry
		entries, err = os.ReadDir(path)
		if err == nil {
			for _, e := range entries {
				if !e.IsDir() && isPDFPath(e.Name()) {
					pdfs = append(pdfs, filepath.Join(path, e.Name()))
				}
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}

	sort.Strings(pdfs)
	return pdfs, nil
}

func isPDFPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// resolveSettings builds processing settings from flags, falling back
// to configured defaults for flags the user did not pass.
func resolveSettings(modelFlag, speedFlag string, modelSet, speedSet bool) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	if configStore != nil {
		if m := configStore.GetString("oracle.model"); m != "" && !modelSet {
			modelFlag = m
		}
		if s := configStore.GetString("processing.speed"); s != "" && !speedSet {
			speedFlag = s
		}
		if lang := configStore.GetString("processing.ocr_language"); lang != "" {
			settings.OCRLanguage = lang
		}
	}

	model, ok := domain.ParseModel(modelFlag)
	if !ok {
		return settings, fmt.Errorf("%w: unknown model %q (want haiku, sonnet, or opus)", domain.ErrInvalidInput, modelFlag)
	}
	speed, ok := domain.ParseSpeedMode(speedFlag)
	if !ok {
		return settings, fmt.Errorf("%w: unknown speed %q (want fast, balanced, or thorough)", domain.ErrInvalidInput, speedFlag)
	}

	settings.Model = model
	settings.Speed = speed
	return settings, nil
}

// askLine prompts on out and reads one trimmed line. Callers share one
// bufio.Reader per run so buffered input is not lost between prompts.
func askLine(in *bufio.Reader, out io.Writer, prompt string) string {
	fmt.Fprint(out, prompt)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}
