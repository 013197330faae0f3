package observability

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type Field interface {
	Key() string
	Value() interface{}
}

type stringField struct{ key, val string }

func (f stringField) Key() string        { return f.key }
func (f stringField) Value() interface{} { return f.val }

type intField struct {
	key string
	val int
}

func (f intField) Key() string        { return f.key }
func (f intField) Value() interface{} { return f.val }

type float64Field struct {
	key string
	val float64
}

func (f float64Field) Key() string        { return f.key }
func (f float64Field) Value() interface{} { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string        { return f.key }
func (f errorField) Value() interface{} { return f.err }

func String(key, value string) Field          { return stringField{key, value} }
func Int(key string, value int) Field         { return intField{key, value} }
func Float64(key string, value float64) Field { return float64Field{key, value} }
func Error(key string, err error) Field       { return errorField{key, err} }

type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// Level controls the minimum severity a WriterLogger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// WriterLogger writes one line per event in "LEVEL message key=value" form.
// Fields are sorted by key so output is stable. Safe for concurrent use.
type WriterLogger struct {
	mu    *sync.Mutex
	w     io.Writer
	min   Level
	bound []Field
}

// NewWriterLogger returns a WriterLogger emitting events at or above min to w.
func NewWriterLogger(w io.Writer, min Level) *WriterLogger {
	return &WriterLogger{mu: &sync.Mutex{}, w: w, min: min}
}

func (l *WriterLogger) Debug(msg string, fields ...Field) { l.emit(LevelDebug, msg, fields) }
func (l *WriterLogger) Info(msg string, fields ...Field)  { l.emit(LevelInfo, msg, fields) }
func (l *WriterLogger) Warn(msg string, fields ...Field)  { l.emit(LevelWarn, msg, fields) }
func (l *WriterLogger) Error(msg string, fields ...Field) { l.emit(LevelError, msg, fields) }

func (l *WriterLogger) With(fields ...Field) Logger {
	bound := make([]Field, 0, len(l.bound)+len(fields))
	bound = append(bound, l.bound...)
	bound = append(bound, fields...)
	return &WriterLogger{mu: l.mu, w: l.w, min: l.min, bound: bound}
}

func (l *WriterLogger) emit(level Level, msg string, fields []Field) {
	if level < l.min {
		return
	}
	all := make([]Field, 0, len(l.bound)+len(fields))
	all = append(all, l.bound...)
	all = append(all, fields...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Key() < all[j].Key() })

	var b strings.Builder
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, f := range all {
		fmt.Fprintf(&b, " %s=%v", f.Key(), f.Value())
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, b.String())
}

// Tracer provides tracing hooks for long-running operations.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, Span)
}

// Span represents a tracing span.
type Span interface {
	SetTag(key string, value interface{})
	SetError(err error)
	Finish()
}

type nopTracer struct{}

func (nopTracer) StartSpan(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, nopSpan{}
}

// NopTracer returns a tracer that does nothing.
func NopTracer() Tracer { return nopTracer{} }

type nopSpan struct{}

func (nopSpan) SetTag(string, interface{}) {}
func (nopSpan) SetError(error)             {}
func (nopSpan) Finish()                    {}
