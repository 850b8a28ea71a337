package xbase

import (
	"io"
	"log/slog"
)

// Option configures a Table at construction time.
type Option func(*Table)

// WithEncoding selects the code page used to convert field names and
// character values to/from bytes. Defaults to "utf-8". Recognized names:
// utf-8, ascii, gbk (alias cp936), gb2312, cp850.
func WithEncoding(name string) Option {
	return func(t *Table) { t.encodingName = name }
}

// WithLogger attaches a structured logger for diagnostic events (table
// created, batch appended, record updated). It never receives the errors
// Table operations return to the caller — those are returned, not logged.
// Defaults to a logger that discards everything, following the classic
// Code4.ErrOff-style "silent unless asked" convention.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Table) { t.logger = logger }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
