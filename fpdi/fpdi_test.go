package fpdi

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/phpdave11/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/pdfconcat/merge"
)

// createPDF writes a PDF with one page per entry in sizes, each marked with a
// bit of text so the content stream is non-empty.
func createPDF(t *testing.T, path string, sizes []gofpdf.SizeType) {
	t.Helper()
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", SizeStr: "A4"})
	pdf.SetFont("Helvetica", "", 12)
	for _, sz := range sizes {
		orient := "P"
		if sz.Wd > sz.Ht {
			orient = "L"
			sz.Wd, sz.Ht = sz.Ht, sz.Wd
		}
		pdf.AddPageFormat(orient, sz)
		pdf.Text(72, 72, "page")
	}
	require.NoError(t, pdf.OutputFileAndClose(path))
}

var (
	a4       = gofpdf.SizeType{Wd: 595.28, Ht: 841.89}
	a4wide   = gofpdf.SizeType{Wd: 841.89, Ht: 595.28}
	halfNote = gofpdf.SizeType{Wd: 396, Ht: 612}
)

func TestBackend_OpenReportsPageCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "three.pdf")
	createPDF(t, path, []gofpdf.SizeType{a4, a4, a4})

	src, err := New().Open(path)
	require.NoError(t, err)
	defer src.Close()
	assert.Equal(t, 3, src.PageCount())
}

func TestBackend_OpenRejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junk.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))

	_, err := New().Open(path)
	assert.Error(t, err)
}

func TestBackend_ValidateRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.pdf")
	createPDF(t, good, []gofpdf.SizeType{a4})
	bad := filepath.Join(dir, "bad.pdf")
	require.NoError(t, os.WriteFile(bad, []byte("%PDF-1.4 truncated"), 0o644))

	b := New()
	assert.NoError(t, b.Validate(good))
	assert.Error(t, b.Validate(bad))
}

func TestBackend_ImportPageOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.pdf")
	createPDF(t, path, []gofpdf.SizeType{a4})

	b := New()
	src, err := b.Open(path)
	require.NoError(t, err)
	out := b.NewOutput()
	_, err = out.ImportPage(src, 2)
	assert.ErrorContains(t, err, "out of range")
}

func TestBackend_TemplateSizeMatchesMediaBox(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "half.pdf")
	createPDF(t, path, []gofpdf.SizeType{halfNote})

	b := New()
	src, err := b.Open(path)
	require.NoError(t, err)
	out := b.NewOutput()
	tpl, err := out.ImportPage(src, 1)
	require.NoError(t, err)
	w, h := tpl.Size()
	assert.InDelta(t, 396, w, 0.5)
	assert.InDelta(t, 612, h, 0.5)
}

func TestMerge_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pdf")
	createPDF(t, a, []gofpdf.SizeType{a4, a4wide, a4})
	b := filepath.Join(dir, "b.pdf")
	createPDF(t, b, []gofpdf.SizeType{halfNote, halfNote})

	m := merge.New(New(), merge.WithValidation(true))
	_, err := m.AddDocument(a)
	require.NoError(t, err)
	_, err = m.AddDocument(b, merge.WithPages("2,1"))
	require.NoError(t, err)

	dest := filepath.Join(dir, "out.pdf")
	_, err = m.Merge(context.Background(), merge.FileSink(dest))
	require.NoError(t, err)

	pages, err := api.PageCountFile(dest)
	require.NoError(t, err)
	assert.Equal(t, 5, pages)
	assert.NoError(t, api.ValidateFile(dest, nil))
}

func TestMerge_EndToEndBytes(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pdf")
	createPDF(t, a, []gofpdf.SizeType{a4})

	m := merge.New(New())
	_, err := m.AddDocument(a, merge.WithPages("1,1,1"))
	require.NoError(t, err)

	data, err := m.Merge(context.Background(), merge.BytesSink())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))

	tmp := filepath.Join(dir, "bytes.pdf")
	require.NoError(t, os.WriteFile(tmp, data, 0o644))
	pages, err := api.PageCountFile(tmp)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
}
