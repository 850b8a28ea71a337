package dbfcore

import (
	"encoding/binary"
	"io"
	"os"
	"time"
)

const (
	headerTerminator = 0x0D
	eofMarker        = 0x1A
)

// File owns one open xBase binary file: its handle, schema, and on-disk
// record count. It collapses a file handle plus header/navigation state
// into one struct, dropping navigation state (recNo/atEof/atBof) this
// core has no use for — records are addressed purely by index, never
// "current position".
type File struct {
	handle    *os.File
	path      string
	bridge    *Bridge
	schema    *Schema
	headerLen int
	recordLen int
	numRecs   uint32
}

// Create writes a new file's header, field descriptor table, and header
// terminator, then truncates any trailing old content.
func Create(path string, schema *Schema, bridge *Bridge) (*File, error) {
	handle, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0644)
	if err != nil {
		return nil, WrapError(KindIOError, err, "create %s", path)
	}

	f := &File{
		handle:    handle,
		path:      path,
		bridge:    bridge,
		schema:    schema,
		headerLen: schema.HeaderLength(),
		recordLen: schema.RecordLength(),
	}

	now := time.Now()
	hdr := &fileHeader{
		Version:   versionDBaseIII,
		Year:      byte(now.Year() - 1900),
		Month:     byte(now.Month()),
		Day:       byte(now.Day()),
		NumRecs:   0,
		HeaderLen: uint16(f.headerLen),
		RecordLen: uint16(f.recordLen),
	}

	if err := f.writeHeaderBlock(hdr); err != nil {
		handle.Close()
		return nil, err
	}
	for i, field := range schema.Fields {
		desc := encodeFieldDescriptor(field, bridge)
		if _, err := handle.WriteAt(desc, int64(32+i*32)); err != nil {
			handle.Close()
			return nil, WrapError(KindIOError, err, "write field descriptor %d", i)
		}
	}
	if _, err := handle.WriteAt([]byte{headerTerminator}, int64(32+len(schema.Fields)*32)); err != nil {
		handle.Close()
		return nil, WrapError(KindIOError, err, "write header terminator")
	}
	if _, err := handle.WriteAt([]byte{eofMarker}, int64(f.headerLen)); err != nil {
		handle.Close()
		return nil, WrapError(KindIOError, err, "write eof marker")
	}

	return f, nil
}

func (f *File) writeHeaderBlock(hdr *fileHeader) error {
	if _, err := f.handle.WriteAt(encodeHeader(hdr), 0); err != nil {
		return WrapError(KindIOError, err, "write header")
	}
	f.numRecs = hdr.NumRecs
	return nil
}

// Open reads an existing file's header and field descriptor table and
// validates its invariants (record length, header length).
func Open(path string, bridge *Bridge) (*File, error) {
	handle, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return nil, WrapError(KindIOError, err, "open %s", path)
	}

	headerBuf := make([]byte, 32)
	if _, err := io.ReadFull(handle, headerBuf); err != nil {
		handle.Close()
		return nil, WrapError(KindFormatError, err, "read header")
	}
	hdr, err := decodeHeader(headerBuf)
	if err != nil {
		handle.Close()
		return nil, err
	}

	nFields := (int(hdr.HeaderLen) - 32 - 1) / 32
	if nFields < 1 || 32+nFields*32+1 != int(hdr.HeaderLen) {
		handle.Close()
		return nil, NewError(KindFormatError, "impossible header length %d", hdr.HeaderLen)
	}

	fields := make([]FieldDescriptor, nFields)
	descBuf := make([]byte, 32)
	for i := 0; i < nFields; i++ {
		if _, err := io.ReadFull(handle, descBuf); err != nil {
			handle.Close()
			return nil, WrapError(KindFormatError, err, "read field descriptor %d", i)
		}
		fd, err := decodeFieldDescriptor(descBuf, bridge)
		if err != nil {
			handle.Close()
			return nil, err
		}
		fields[i] = fd
	}

	term := make([]byte, 1)
	if _, err := io.ReadFull(handle, term); err != nil || term[0] != headerTerminator {
		handle.Close()
		return nil, NewError(KindFormatError, "missing header terminator (0x0D)")
	}

	schema, err := NewSchema(fields, bridge)
	if err != nil {
		handle.Close()
		return nil, err
	}

	if int(hdr.RecordLen) != schema.RecordLength() {
		handle.Close()
		return nil, NewError(KindFormatError, "header record length %d disagrees with field widths (%d)", hdr.RecordLen, schema.RecordLength())
	}

	return &File{
		handle:    handle,
		path:      path,
		bridge:    bridge,
		schema:    schema,
		headerLen: int(hdr.HeaderLen),
		recordLen: int(hdr.RecordLen),
		numRecs:   hdr.NumRecs,
	}, nil
}

// Schema returns the file's field schema.
func (f *File) Schema() *Schema { return f.schema }

// NumRecords returns the on-disk record count from the header.
func (f *File) NumRecords() int { return int(f.numRecs) }

// RecordLength returns the fixed width, in bytes, of one record row.
func (f *File) RecordLength() int { return f.recordLen }

func (f *File) recordOffset(index int) int64 {
	return int64(f.headerLen) + int64(index)*int64(f.recordLen)
}

// ReadRecord seeks to record index and reads its full row, including the
// leading deletion-flag byte.
func (f *File) ReadRecord(index int) ([]byte, error) {
	if index < 0 || index >= int(f.numRecs) {
		return nil, NewError(KindIndexOutOfRange, "record index %d out of range [0,%d)", index, f.numRecs)
	}
	buf := make([]byte, f.recordLen)
	if _, err := f.handle.ReadAt(buf, f.recordOffset(index)); err != nil {
		return nil, WrapError(KindIOError, err, "read record %d", index)
	}
	return buf, nil
}

// WriteRecord writes a full record row at index. The caller guarantees
// len(row) == RecordLength().
func (f *File) WriteRecord(index int, row []byte) error {
	if index < 0 || index >= int(f.numRecs) {
		return NewError(KindIndexOutOfRange, "record index %d out of range [0,%d)", index, f.numRecs)
	}
	if _, err := f.handle.WriteAt(row, f.recordOffset(index)); err != nil {
		return WrapError(KindIOError, err, "write record %d", index)
	}
	return nil
}

// AppendRecords writes rows contiguously starting at the current record
// count, then advances the on-disk count and rewrites the trailing EOF
// marker — as one atomic unit. If any row fails to write, the header's
// record count is left unadvanced, so already-written bytes past the
// stored count become invisible orphan bytes rather than visible rows;
// the caller must re-drive the whole batch.
func (f *File) AppendRecords(rows [][]byte) error {
	if len(rows) == 0 {
		return nil
	}
	start := int64(f.numRecs)
	for i, row := range rows {
		offset := int64(f.headerLen) + (start+int64(i))*int64(f.recordLen)
		if _, err := f.handle.WriteAt(row, offset); err != nil {
			return WrapError(KindIOError, err, "append record %d of batch", i)
		}
	}

	newCount := f.numRecs + uint32(len(rows))
	countBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(countBuf, newCount)
	if _, err := f.handle.WriteAt(countBuf, 4); err != nil {
		return WrapError(KindIOError, err, "advance record count")
	}
	f.numRecs = newCount

	eofOffset := int64(f.headerLen) + int64(f.numRecs)*int64(f.recordLen)
	if _, err := f.handle.WriteAt([]byte{eofMarker}, eofOffset); err != nil {
		return WrapError(KindIOError, err, "write trailing eof marker")
	}

	return nil
}

// Close releases the underlying file descriptor. Safe to call multiple
// times, matching File4Close idempotency guarantee.
func (f *File) Close() error {
	if f.handle == nil {
		return nil
	}
	err := f.handle.Close()
	f.handle = nil
	if err != nil {
		return WrapError(KindIOError, err, "close %s", f.path)
	}
	return nil
}
