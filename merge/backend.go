package merge

import "io"

// Backend is the PDF manipulation collaborator the orchestrator drives. It
// must be able to open an existing document, report its page count, import a
// page into an output document as a reusable template, and render the output.
// Implementations wrap a real PDF library; tests use an in-memory fake.
type Backend interface {
	// Open opens an existing PDF for reading. The returned Source stays valid
	// until Close.
	Open(path string) (Source, error)
	// NewOutput starts a fresh output document. Each Merge call obtains its
	// own output context.
	NewOutput() Output
}

// Source is an opened input document.
type Source interface {
	PageCount() int
	Close() error
}

// Template is a page imported into an output document, ready to be drawn.
type Template interface {
	// Size returns the page dimensions in PDF points.
	Size() (width, height float64)
}

// Output accumulates pages and renders the final document. Imported templates
// live in the output document's resource space, which is why ImportPage hangs
// off Output rather than Source.
type Output interface {
	// ImportPage imports the 1-based page from src. It fails on out-of-range
	// or unreadable pages.
	ImportPage(src Source, page int) (Template, error)
	// AddPage appends a blank page with the given orientation and dimensions
	// in PDF points.
	AddPage(o Orientation, width, height float64)
	// DrawTemplate draws tpl onto the most recently added page at full scale.
	DrawTemplate(tpl Template)
	// Render writes the assembled document to w.
	Render(w io.Writer) error
}

// Validator is an optional Backend capability: a structural pre-flight check
// of a source file before any page is imported.
type Validator interface {
	Validate(path string) error
}
