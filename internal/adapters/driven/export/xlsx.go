package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
)

// Ensure XLSXWriter implements the interface.
var _ driven.TabularWriter = (*XLSXWriter)(nil)

// sheetName is the single worksheet holding the results.
const sheetName = "Extracted"

// XLSXWriter writes extraction results as an Excel workbook.
type XLSXWriter struct{}

// NewXLSXWriter creates an XLSX tabular writer.
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

// Write implements driven.TabularWriter.
func (w *XLSXWriter) Write(path string, columns []string, rows []map[string]any) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	// Drop the default sheet excelize creates.
	_ = f.DeleteSheet("Sheet1")

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell %d: %w", i+1, err)
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return fmt.Errorf("writing header %q: %w", col, err)
		}
	}

	for r, row := range rows {
		for c, col := range columns {
			v := row[col]
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("cell %d,%d: %w", c+1, r+2, err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
