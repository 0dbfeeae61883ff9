package driven

// TabularWriter writes extraction results as a table: one row per
// processed source file, columns fixed by the template. Implementations
// exist for CSV and XLSX output.
type TabularWriter interface {
	// Write creates (or truncates) the file at path with the given
	// header columns and rows. A missing key in a row yields an empty
	// cell.
	Write(path string, columns []string, rows []map[string]any) error
}
