package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
)

// Ensure CSVWriter implements the interface.
var _ driven.TabularWriter = (*CSVWriter)(nil)

// CSVWriter writes extraction results as a CSV file.
type CSVWriter struct{}

// NewCSVWriter creates a CSV tabular writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Write implements driven.TabularWriter.
func (w *CSVWriter) Write(path string, columns []string, rows []map[string]any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = cellString(row[col])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}

// cellString renders a cell value. Missing fields (nil) become empty
// cells rather than the string "<nil>".
func cellString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
