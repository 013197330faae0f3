// Package fpdi implements merge.Backend on gofpdf's imported-template
// mechanism. Pages are imported as form XObjects via the gofpdi contrib
// importer and drawn at full scale onto freshly added output pages; pdfcpu
// supplies page counts and optional structural validation.
package fpdi

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/phpdave11/gofpdf"
	"github.com/phpdave11/gofpdf/contrib/gofpdi"

	"github.com/wudi/pdfconcat/merge"
)

// Backend opens sources and produces output documents. Safe to share across
// mergers; each output document holds its own importer state.
type Backend struct {
	conf *model.Configuration
}

// New returns a Backend with relaxed pdfcpu validation, which accepts the
// mildly malformed files real-world PDF producers emit.
func New() *Backend {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Backend{conf: conf}
}

// Open reads path far enough to learn its page count.
func (b *Backend) Open(path string) (merge.Source, error) {
	pages, err := api.PageCountFile(path)
	if err != nil {
		return nil, err
	}
	if pages < 1 {
		return nil, fmt.Errorf("fpdi: %s has no pages", path)
	}
	return &source{path: path, pages: pages}, nil
}

// Validate runs pdfcpu's structural validation against path.
func (b *Backend) Validate(path string) error {
	return api.ValidateFile(path, b.conf)
}

// NewOutput starts an empty output document in point units. The initial size
// is irrelevant: every page is added explicitly with its own format.
func (b *Backend) NewOutput() merge.Output {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", SizeStr: "A4"})
	return &output{pdf: pdf, imp: gofpdi.NewImporter()}
}

type source struct {
	path  string
	pages int
}

func (s *source) PageCount() int { return s.pages }

// Close is a no-op: gofpdi reads sources by path on demand.
func (s *source) Close() error { return nil }

type template struct {
	id     int
	width  float64
	height float64
}

func (t *template) Size() (float64, float64) { return t.width, t.height }

type output struct {
	pdf *gofpdf.Fpdf
	imp *gofpdi.Importer
}

func (o *output) ImportPage(src merge.Source, page int) (merge.Template, error) {
	s, ok := src.(*source)
	if !ok {
		return nil, fmt.Errorf("fpdi: source was not opened by this backend")
	}
	if page < 1 || page > s.pages {
		return nil, fmt.Errorf("fpdi: page %d out of range, %s has %d pages", page, s.path, s.pages)
	}

	var id int
	err := recovering(func() {
		id = o.imp.ImportPage(o.pdf, s.path, page, "/MediaBox")
	})
	if err != nil {
		return nil, err
	}
	if o.pdf.Err() {
		return nil, o.pdf.Error()
	}

	box, ok := o.imp.GetPageSizes()[page]["/MediaBox"]
	if !ok {
		return nil, fmt.Errorf("fpdi: no MediaBox for page %d of %s", page, s.path)
	}
	return &template{id: id, width: box["w"], height: box["h"]}, nil
}

func (o *output) AddPage(orient merge.Orientation, width, height float64) {
	orientStr := "P"
	if orient == merge.OrientationLandscape {
		orientStr = "L"
	}
	// gofpdf takes the size in portrait form and lets the orientation pick
	// which edge is horizontal.
	size := gofpdf.SizeType{Wd: width, Ht: height}
	if size.Wd > size.Ht {
		size.Wd, size.Ht = size.Ht, size.Wd
	}
	o.pdf.AddPageFormat(orientStr, size)
}

func (o *output) DrawTemplate(tpl merge.Template) {
	t, ok := tpl.(*template)
	if !ok {
		o.pdf.SetError(fmt.Errorf("fpdi: template was not imported by this output"))
		return
	}
	o.imp.UseImportedTemplate(o.pdf, t.id, 0, 0, t.width, t.height)
}

func (o *output) Render(w io.Writer) error {
	return o.pdf.Output(w)
}

// recovering converts gofpdi's panics into errors. The gofpdi reader panics
// on malformed cross-reference tables and unreadable page trees.
func recovering(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("fpdi: %v", r)
		}
	}()
	fn()
	return nil
}
