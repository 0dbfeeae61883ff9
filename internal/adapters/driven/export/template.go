package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
)

// LoadTemplate reads the header row of a CSV template and returns the
// field names to extract. Blank headers are dropped.
func LoadTemplate(path string) ([]string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return nil, fmt.Errorf("%w: template must be a CSV file", domain.ErrInvalidInput)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening template: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: template has no header row", domain.ErrInvalidInput)
	}

	fields := make([]string, 0, len(headers))
	for i, h := range headers {
		// Tolerate a UTF-8 BOM from spreadsheet exports.
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		h = strings.TrimSpace(h)
		if h != "" {
			fields = append(fields, h)
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: template has no valid headers", domain.ErrInvalidInput)
	}
	return fields, nil
}

// CreateTemplate writes a blank CSV template with the given field names
// as the header row.
func CreateTemplate(path string, fields []string) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: no template fields given", domain.ErrInvalidInput)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating template: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(fields); err != nil {
		return fmt.Errorf("writing template header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing template: %w", err)
	}
	return f.Close()
}

// MetadataColumns are the bookkeeping columns added around the template
// fields unless suppressed. Leading columns come first in the output,
// trailing ones last.
var (
	LeadingMetadataColumns  = []string{"_file_name", "_file_path"}
	TrailingMetadataColumns = []string{"_confidence", "_extraction_method", "_errors"}
)

// OutputColumns builds the final column list for an extraction run.
func OutputColumns(fields []string, includeMetadata bool) []string {
	if !includeMetadata {
		return fields
	}
	columns := make([]string, 0, len(fields)+len(LeadingMetadataColumns)+len(TrailingMetadataColumns))
	columns = append(columns, LeadingMetadataColumns...)
	columns = append(columns, fields...)
	columns = append(columns, TrailingMetadataColumns...)
	return columns
}
