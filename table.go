package xbase

import (
	"errors"
	"log/slog"

	"github.com/mkfoss/xbase/internal/dbfcore"
)

type state int

const (
	stateUnopened state = iota
	stateOpenNew
	stateOpenExisting
	stateError
)

// Table is the single user-visible type: it owns one file and one
// immutable schema for its lifetime, and exposes create, append, read,
// and update plus Close. Shaped after the owning-facade-delegating-to-an-
// internal-implementation pattern of a DBF cursor type, generalized from
// cursor navigation to batch create/append/read/update.
type Table struct {
	path         string
	encodingName string
	logger       *slog.Logger

	state  state
	bridge *dbfcore.Bridge
	file   *dbfcore.File
}

// New constructs a Table bound to path. No file I/O happens until Create,
// AppendRecords, ReadRecords, or UpdateRecord is called. Encoding defaults
// to utf-8; override with WithEncoding.
func New(path string, opts ...Option) *Table {
	t := &Table{
		path:         path,
		encodingName: "utf-8",
		logger:       discardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// fail marks the Table error-sticky only for IO_ERROR failures: any I/O
// error moves the facade to a terminal state, but other error kinds
// (schema/encoding/value/format) leave the Table usable for subsequent
// calls.
func (t *Table) fail(err error) error {
	var tagged *Error
	if errors.As(err, &tagged) && tagged.Kind == IOError {
		t.state = stateError
	}
	return err
}

// Create writes a new file with the given schema. Requires the Table be
// in its initial UNOPENED state; calling Create twice, or calling it after
// any other operation, fails.
func (t *Table) Create(fields []Field) error {
	if t.state != stateUnopened {
		return NewError(dbfcore.KindIOError, "Create called on a Table that is already open")
	}

	bridge, err := dbfcore.NewBridge(t.encodingName)
	if err != nil {
		return t.fail(err)
	}

	schema, err := dbfcore.NewSchema(toDescriptors(fields), bridge)
	if err != nil {
		return err // SCHEMA_INVALID does not move the table to error-sticky state
	}

	file, err := dbfcore.Create(t.path, schema, bridge)
	if err != nil {
		return t.fail(err)
	}

	t.bridge = bridge
	t.file = file
	t.state = stateOpenNew
	t.logger.Info("created table", "path", t.path, "fields", len(fields))
	return nil
}

// ensureOpen lazily opens an existing on-disk file the first time
// AppendRecords/ReadRecords/UpdateRecord is called without a prior Create,
// transitioning UNOPENED -> OPEN_EXISTING.
func (t *Table) ensureOpen() error {
	switch t.state {
	case stateOpenNew, stateOpenExisting:
		return nil
	case stateError:
		return NewError(dbfcore.KindIOError, "Table is in an error-sticky state after a prior I/O failure")
	}

	bridge, err := dbfcore.NewBridge(t.encodingName)
	if err != nil {
		return t.fail(err)
	}
	file, err := dbfcore.Open(t.path, bridge)
	if err != nil {
		return t.fail(err)
	}
	t.bridge = bridge
	t.file = file
	t.state = stateOpenExisting
	return nil
}

// AppendRecords marshals each row and writes the batch atomically: either
// every row becomes visible (record count advances by len(rows)) or none
// do. A FIELD_UNKNOWN key fails the whole batch before any bytes are
// written; every row is also encoded before the first write, so a
// VALUE_OVERFLOW or VALUE_TOO_LONG in any row fails the batch at the first
// offending row without writing any bytes either. An I/O failure during
// the write leaves the stored record count unadvanced, so bytes already
// written past it are invisible orphan bytes.
func (t *Table) AppendRecords(rows []Row) (int, error) {
	if err := t.ensureOpen(); err != nil {
		return 0, err
	}
	schema := t.file.Schema()

	// Validate every key resolves before encoding anything, so an unknown
	// field fails the batch before any bytes are written.
	for _, row := range rows {
		for key := range row {
			if schema.Resolve(key) < 0 {
				return 0, dbfcore.NewError(dbfcore.KindFieldUnknown, "unknown field %q", key)
			}
		}
	}

	encoded := make([][]byte, len(rows))
	for i, row := range rows {
		buf, err := t.encodeRow(schema, row)
		if err != nil {
			return 0, err
		}
		encoded[i] = buf
	}

	if err := t.file.AppendRecords(encoded); err != nil {
		return 0, t.fail(err)
	}
	t.logger.Info("appended records", "path", t.path, "count", len(rows))
	return len(rows), nil
}

func (t *Table) encodeRow(schema *dbfcore.Schema, row Row) ([]byte, error) {
	values := make([]any, len(schema.Fields))
	for key, v := range row {
		if i := schema.Resolve(key); i >= 0 {
			values[i] = v
		}
	}

	buf := make([]byte, schema.RecordLength())
	buf[0] = ' ' // live by default
	for i, field := range schema.Fields {
		fieldBytes, err := dbfcore.EncodeValue(values[i], field, t.bridge)
		if err != nil {
			return nil, err
		}
		start := schema.Offset(i)
		copy(buf[start:start+field.Length], fieldBytes)
	}
	return buf, nil
}

// ReadRecords reads every record in the file and returns it as an ordered
// sequence of mappings keyed by canonical field name.
func (t *Table) ReadRecords() ([]Row, error) {
	if err := t.ensureOpen(); err != nil {
		return nil, err
	}
	schema := t.file.Schema()
	names := schema.CanonicalNames()

	out := make([]Row, t.file.NumRecords())
	for i := 0; i < t.file.NumRecords(); i++ {
		raw, err := t.file.ReadRecord(i)
		if err != nil {
			return nil, t.fail(err)
		}
		row := make(Row, len(schema.Fields))
		for j, field := range schema.Fields {
			start := schema.Offset(j)
			v, err := dbfcore.DecodeValue(raw[start:start+field.Length], field, t.bridge)
			if err != nil {
				return nil, t.fail(err)
			}
			row[names[j]] = v
		}
		out[i] = row
	}
	return out, nil
}

// UpdateRecord reads the existing row at index, overwrites only the byte
// ranges named in partial, and writes the whole row back. Fields absent
// from partial retain their current on-disk bytes exactly, without
// re-normalization; the deletion-flag byte is preserved.
func (t *Table) UpdateRecord(index int, partial Row) error {
	if err := t.ensureOpen(); err != nil {
		return err
	}
	schema := t.file.Schema()

	for key := range partial {
		if schema.Resolve(key) < 0 {
			return dbfcore.NewError(dbfcore.KindFieldUnknown, "unknown field %q", key)
		}
	}

	raw, err := t.file.ReadRecord(index)
	if err != nil {
		return t.fail(err)
	}

	for key, v := range partial {
		i := schema.Resolve(key)
		field := schema.Fields[i]
		fieldBytes, err := dbfcore.EncodeValue(v, field, t.bridge)
		if err != nil {
			return err
		}
		start := schema.Offset(i)
		copy(raw[start:start+field.Length], fieldBytes)
	}

	if err := t.file.WriteRecord(index, raw); err != nil {
		return t.fail(err)
	}
	t.logger.Info("updated record", "path", t.path, "index", index)
	return nil
}

// Close releases the underlying file descriptor. Safe to call on an
// unopened or already-closed Table.
func (t *Table) Close() error {
	if t.file == nil {
		return nil
	}
	err := t.file.Close()
	t.file = nil
	return err
}

// NewError is a convenience re-export so callers constructing test
// fixtures don't need to import the internal package.
func NewError(kind Kind, format string, args ...any) *Error {
	return dbfcore.NewError(kind, format, args...)
}
