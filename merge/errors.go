package merge

import "fmt"

// SourceNotFoundError reports a registration attempt for a path that does not
// exist.
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("merge: source %s does not exist", e.Path)
}

// NoDocumentsError reports a Merge call on an empty job list.
type NoDocumentsError struct{}

func (e *NoDocumentsError) Error() string {
	return "merge: no documents registered"
}

// SourceUnreadableError reports a source that exists but could not be opened
// as a PDF at merge time.
type SourceUnreadableError struct {
	Path string
	Err  error
}

func (e *SourceUnreadableError) Error() string {
	return fmt.Sprintf("merge: cannot read source %s: %v", e.Path, e.Err)
}

func (e *SourceUnreadableError) Unwrap() error { return e.Err }

// PageImportError reports a page that could not be imported from its source,
// typically because the requested page number is out of range.
type PageImportError struct {
	Path string
	Page int
	Err  error
}

func (e *PageImportError) Error() string {
	return fmt.Sprintf("merge: cannot import page %d of %s: %v", e.Page, e.Path, e.Err)
}

func (e *PageImportError) Unwrap() error { return e.Err }

// OutputError reports a failure writing or rendering the final document.
type OutputError struct {
	Target string
	Err    error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("merge: writing output %s: %v", e.Target, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }

// UsageError reports an operation invoked in the wrong orchestrator state,
// such as registering a document after a merge has run.
type UsageError struct {
	Op string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("merge: %s called on a spent merger", e.Op)
}
