// Package merge assembles pages from multiple source PDFs into one output
// document. It handles page selection, ordering, and orientation; the actual
// PDF reading and writing is delegated to a Backend.
package merge

import (
	"context"
	"os"

	"github.com/wudi/pdfconcat/observability"
	"github.com/wudi/pdfconcat/pagerange"
)

// PageSelection is the subset of a source document's pages to emit. The zero
// value selects nothing; use AllPages or ExplicitPages.
type PageSelection struct {
	All   bool
	Pages []int
}

// AllPages selects every page of the source in ascending order.
func AllPages() PageSelection { return PageSelection{All: true} }

// ExplicitPages selects the given 1-based pages in the given order.
// Duplicates are emitted as often as they appear.
func ExplicitPages(pages []int) PageSelection { return PageSelection{Pages: pages} }

// job is one registered source document. Jobs are immutable after
// registration and independent of each other.
type job struct {
	path        string
	selection   PageSelection
	orientation Orientation
}

// Option configures a Merger.
type Option func(*Merger)

// WithLogger sets the logger used during merging. Defaults to a no-op logger.
func WithLogger(l observability.Logger) Option {
	return func(m *Merger) { m.logger = l }
}

// WithTracer sets the tracer used during merging. Defaults to a no-op tracer.
func WithTracer(t observability.Tracer) Option {
	return func(m *Merger) { m.tracer = t }
}

// WithValidation enables a structural pre-flight check of every source before
// pages are imported, when the backend supports it.
func WithValidation(enabled bool) Option {
	return func(m *Merger) { m.validate = enabled }
}

// DocumentOption configures a single registered document.
type DocumentOption func(*docConfig) error

type docConfig struct {
	selection   PageSelection
	orientation Orientation
}

// WithPages restricts the document to the pages named by spec, in spec order.
// The spec is either the "all" sentinel or a pagerange expression such as
// "1,3,5-9". Defaults to all pages.
func WithPages(spec string) DocumentOption {
	return func(c *docConfig) error {
		if pagerange.IsAll(spec) {
			c.selection = AllPages()
			return nil
		}
		pages, err := pagerange.Parse(spec)
		if err != nil {
			return err
		}
		c.selection = ExplicitPages(pages)
		return nil
	}
}

// WithOrientation forces the orientation of every page emitted from this
// document. Defaults to OrientationAuto.
func WithOrientation(o Orientation) DocumentOption {
	return func(c *docConfig) error {
		c.orientation = o
		return nil
	}
}

// MergeOption configures a single Merge call.
type MergeOption func(*mergeConfig)

type mergeConfig struct {
	orientation Orientation
}

// WithGlobalOrientation forces the orientation of every emitted page that has
// no per-document override.
func WithGlobalOrientation(o Orientation) MergeOption {
	return func(c *mergeConfig) { c.orientation = o }
}

// Merger collects source documents and concatenates their selected pages into
// a single output document. A Merger is built fluently, consumed by Merge,
// and is not safe for concurrent use.
type Merger struct {
	backend  Backend
	logger   observability.Logger
	tracer   observability.Tracer
	validate bool
	jobs     []job
	spent    bool
}

// New returns an empty Merger driving backend.
func New(backend Backend, opts ...Option) *Merger {
	m := &Merger{
		backend: backend,
		logger:  observability.NopLogger{},
		tracer:  observability.NopTracer(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddDocument registers a source document. The file must exist at
// registration time; a missing file fails with SourceNotFoundError and leaves
// the job list unchanged. Page specs are parsed here, so pagerange errors
// surface immediately as well. Returns the receiver for chaining.
func (m *Merger) AddDocument(path string, opts ...DocumentOption) (*Merger, error) {
	if m.spent {
		return m, &UsageError{Op: "AddDocument"}
	}

	if _, err := os.Stat(path); err != nil {
		return m, &SourceNotFoundError{Path: path}
	}

	cfg := docConfig{selection: AllPages(), orientation: OrientationAuto}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return m, err
		}
	}

	m.jobs = append(m.jobs, job{
		path:        path,
		selection:   cfg.selection,
		orientation: cfg.orientation,
	})
	return m, nil
}

// Len returns the number of registered documents.
func (m *Merger) Len() int { return len(m.jobs) }

// Merge assembles the output document and delivers it through sink. Each
// source is opened exactly once per call. Any failure aborts the whole merge
// with no partial output. The returned bytes are non-nil only for BytesSink.
//
// After the first Merge call, successful or not, the Merger no longer accepts
// AddDocument; Merge itself may be re-invoked and re-processes the same job
// list deterministically.
func (m *Merger) Merge(ctx context.Context, sink Sink, opts ...MergeOption) ([]byte, error) {
	m.spent = true

	if len(m.jobs) == 0 {
		return nil, &NoDocumentsError{}
	}

	var cfg mergeConfig
	cfg.orientation = OrientationAuto
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, span := m.tracer.StartSpan(ctx, "merge")
	defer span.Finish()
	span.SetTag("documents", len(m.jobs))
	m.logger.Info("merge start", observability.Int("documents", len(m.jobs)))

	out := m.backend.NewOutput()
	emitted := 0
	for _, j := range m.jobs {
		n, err := m.mergeDocument(ctx, out, j, cfg.orientation)
		if err != nil {
			span.SetError(err)
			m.logger.Error("merge failed", observability.String("path", j.path), observability.Error("err", err))
			return nil, err
		}
		emitted += n
	}

	data, err := sink.deliver(out)
	if err != nil {
		span.SetError(err)
		m.logger.Error("merge failed", observability.String("target", sink.target()), observability.Error("err", err))
		return nil, err
	}
	m.logger.Info("merge done",
		observability.Int("pages", emitted),
		observability.String("target", sink.target()))
	return data, nil
}

// mergeDocument appends every selected page of one job to out and returns the
// number of pages emitted.
func (m *Merger) mergeDocument(ctx context.Context, out Output, j job, global Orientation) (int, error) {
	_, span := m.tracer.StartSpan(ctx, "merge.document")
	defer span.Finish()
	span.SetTag("path", j.path)

	if m.validate {
		if v, ok := m.backend.(Validator); ok {
			if err := v.Validate(j.path); err != nil {
				err = &SourceUnreadableError{Path: j.path, Err: err}
				span.SetError(err)
				return 0, err
			}
		}
	}

	src, err := m.backend.Open(j.path)
	if err != nil {
		err = &SourceUnreadableError{Path: j.path, Err: err}
		span.SetError(err)
		return 0, err
	}
	defer src.Close()

	pages := j.selection.Pages
	if j.selection.All {
		pages = make([]int, src.PageCount())
		for i := range pages {
			pages[i] = i + 1
		}
	}
	span.SetTag("pages", len(pages))
	m.logger.Debug("merge document",
		observability.String("path", j.path),
		observability.Int("pages", len(pages)))

	for _, page := range pages {
		tpl, err := out.ImportPage(src, page)
		if err != nil {
			err = &PageImportError{Path: j.path, Page: page, Err: err}
			span.SetError(err)
			return 0, err
		}
		w, h := tpl.Size()
		out.AddPage(resolveOrientation(j.orientation, global, w, h), w, h)
		out.DrawTemplate(tpl)
	}
	return len(pages), nil
}
