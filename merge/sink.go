package merge

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
)

// SinkMode selects how the rendered document leaves the orchestrator.
type SinkMode int

const (
	// SinkFile persists the document at Sink.Path.
	SinkFile SinkMode = iota
	// SinkBytes returns the document as a byte slice from Merge.
	SinkBytes
	// SinkInline streams the document to Sink.W for in-browser display. When
	// W is an http.ResponseWriter, Content-Type and an inline
	// Content-Disposition header are set before the body.
	SinkInline
	// SinkDownload streams the document to Sink.W as a forced download via an
	// attachment Content-Disposition header.
	SinkDownload
)

// Sink is a resolved output destination and mode.
type Sink struct {
	Mode SinkMode
	// Path is the destination file for SinkFile.
	Path string
	// Name is the suggested filename for SinkInline and SinkDownload.
	Name string
	// W receives the document for SinkInline and SinkDownload.
	W io.Writer
}

// FileSink writes the merged document to path.
func FileSink(path string) Sink {
	return Sink{Mode: SinkFile, Path: path}
}

// BytesSink returns the merged document from Merge as raw bytes.
func BytesSink() Sink {
	return Sink{Mode: SinkBytes}
}

// InlineSink streams the merged document to w for inline display, suggesting
// name as the filename.
func InlineSink(w io.Writer, name string) Sink {
	return Sink{Mode: SinkInline, Name: name, W: w}
}

// DownloadSink streams the merged document to w as a forced download named
// name.
func DownloadSink(w io.Writer, name string) Sink {
	return Sink{Mode: SinkDownload, Name: name, W: w}
}

func (s Sink) target() string {
	switch s.Mode {
	case SinkFile:
		return s.Path
	case SinkBytes:
		return "memory"
	default:
		return s.filename()
	}
}

func (s Sink) filename() string {
	if s.Name != "" {
		return s.Name
	}
	return "doc.pdf"
}

// deliver renders out through the sink. The returned bytes are nil except in
// SinkBytes mode.
func (s Sink) deliver(out Output) ([]byte, error) {
	switch s.Mode {
	case SinkBytes:
		var buf bytes.Buffer
		if err := out.Render(&buf); err != nil {
			return nil, &OutputError{Target: s.target(), Err: err}
		}
		return buf.Bytes(), nil

	case SinkFile:
		f, err := os.Create(s.Path)
		if err != nil {
			return nil, &OutputError{Target: s.Path, Err: err}
		}
		if err := out.Render(f); err != nil {
			f.Close()
			return nil, &OutputError{Target: s.Path, Err: err}
		}
		if err := f.Close(); err != nil {
			return nil, &OutputError{Target: s.Path, Err: err}
		}
		return nil, nil

	case SinkInline, SinkDownload:
		if s.W == nil {
			return nil, &OutputError{Target: s.target(), Err: fmt.Errorf("sink has no writer")}
		}
		if rw, ok := s.W.(http.ResponseWriter); ok {
			disposition := "inline"
			if s.Mode == SinkDownload {
				disposition = "attachment"
			}
			rw.Header().Set("Content-Type", "application/pdf")
			rw.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, s.filename()))
		}
		if err := out.Render(s.W); err != nil {
			return nil, &OutputError{Target: s.target(), Err: err}
		}
		return nil, nil

	default:
		return nil, &OutputError{Target: s.target(), Err: fmt.Errorf("unknown sink mode %d", s.Mode)}
	}
}
