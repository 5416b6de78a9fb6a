// Package observability defines the structured logging contract the
// extraction pipeline reports through.
package observability

import "log/slog"

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

type floatField struct {
	key string
	val float64
}

func (f floatField) Key() string        { return f.key }
func (f floatField) Value() interface{} { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string        { return f.key }
func (f errorField) Value() interface{} { return f.err }

func String(key, value string) Field        { return stringField{key, value} }
func Int(key string, value int) Field       { return intField{key, value} }
func Float(key string, value float64) Field { return floatField{key, value} }
func Error(key string, err error) Field     { return errorField{key, err} }

type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// SlogLogger adapts a log/slog logger to the Logger contract.
type SlogLogger struct {
	L *slog.Logger
}

// NewSlog wraps l. A nil l uses slog's default logger.
func NewSlog(l *slog.Logger) SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return SlogLogger{L: l}
}

func (s SlogLogger) Debug(msg string, fields ...Field) { s.L.Debug(msg, attrs(fields)...) }
func (s SlogLogger) Info(msg string, fields ...Field)  { s.L.Info(msg, attrs(fields)...) }
func (s SlogLogger) Warn(msg string, fields ...Field)  { s.L.Warn(msg, attrs(fields)...) }
func (s SlogLogger) Error(msg string, fields ...Field) { s.L.Error(msg, attrs(fields)...) }

func (s SlogLogger) With(fields ...Field) Logger {
	return SlogLogger{L: s.L.With(attrs(fields)...)}
}

func attrs(fields []Field) []any {
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		out = append(out, slog.Any(f.Key(), f.Value()))
	}
	return out
}
