// Package export writes bulk field-extraction results to tabular files
// and handles the CSV templates that define which fields to extract.
// CSV and XLSX writers implement the same TabularWriter port; the
// output format is picked from the file extension at wiring time.
package export
