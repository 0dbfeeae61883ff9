package driven

// PageReader provides read access to the pages of a PDF document and
// page-range splitting. It is an opaque collaborator: the core never
// inspects PDF structure itself.
type PageReader interface {
	// PageCount returns the number of pages in the document.
	// Returns a wrapped domain.ErrExtractionFailed if the file cannot
	// be opened.
	PageCount(path string) (int, error)

	// PageText returns the embedded text of one page (0-based index).
	// An empty string means the page has no extractable text; that is
	// not an error.
	PageText(path string, pageIndex int) (string, error)

	// Metadata returns document-level metadata (title, author, ...).
	// Missing metadata yields an empty map.
	Metadata(path string) (map[string]string, error)

	// ExtractPages writes pages startPage..endPage (0-based, inclusive)
	// of src into a new document at dst.
	ExtractPages(src, dst string, startPage, endPage int) error
}

// OCREngine performs optical character recognition on single pages.
// The engine may be absent on the host system; Available is checked
// lazily once per extraction call and the answer cached.
type OCREngine interface {
	// Available reports whether the engine is installed and usable.
	Available() bool

	// RecognizePage renders one page (0-based) at the given DPI and
	// runs recognition in the given language, returning the text.
	RecognizePage(path string, pageIndex, dpi int, language string) (string, error)
}
