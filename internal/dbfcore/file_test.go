package dbfcore

import (
	"path/filepath"
	"testing"
)

func testSchema(t *testing.T, bridge *Bridge) *Schema {
	t.Helper()
	schema, err := NewSchema([]FieldDescriptor{
		{Name: "NAME", Type: TypeChar, Length: 20},
		{Name: "AGE", Type: TypeNumeric, Length: 3},
	}, bridge)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	return schema
}

func TestCreateOpenRoundTrip(t *testing.T) {
	bridge := mustBridge(t, "utf-8")
	schema := testSchema(t, bridge)
	path := filepath.Join(t.TempDir(), "test.dbf")

	f, err := Create(path, schema, bridge)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if f.NumRecords() != 0 {
		t.Errorf("NumRecords() = %d, want 0", f.NumRecords())
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path, bridge)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reopened.Close()
	if reopened.RecordLength() != schema.RecordLength() {
		t.Errorf("RecordLength() = %d, want %d", reopened.RecordLength(), schema.RecordLength())
	}
	if len(reopened.Schema().Fields) != 2 {
		t.Errorf("got %d fields, want 2", len(reopened.Schema().Fields))
	}
}

func TestAppendAdvancesCountAtomically(t *testing.T) {
	bridge := mustBridge(t, "utf-8")
	schema := testSchema(t, bridge)
	path := filepath.Join(t.TempDir(), "test.dbf")

	f, err := Create(path, schema, bridge)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()

	row := make([]byte, schema.RecordLength())
	if err := f.AppendRecords([][]byte{row, row, row}); err != nil {
		t.Fatalf("AppendRecords: %v", err)
	}
	if f.NumRecords() != 3 {
		t.Errorf("NumRecords() = %d, want 3", f.NumRecords())
	}
}

func TestReadRecordOutOfRange(t *testing.T) {
	bridge := mustBridge(t, "utf-8")
	schema := testSchema(t, bridge)
	path := filepath.Join(t.TempDir(), "test.dbf")

	f, err := Create(path, schema, bridge)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()

	_, err = f.ReadRecord(0)
	assertKind(t, err, KindIndexOutOfRange)
}

func TestWriteThenReadRecord(t *testing.T) {
	bridge := mustBridge(t, "utf-8")
	schema := testSchema(t, bridge)
	path := filepath.Join(t.TempDir(), "test.dbf")

	f, err := Create(path, schema, bridge)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()

	row := make([]byte, schema.RecordLength())
	copy(row, "x")
	if err := f.AppendRecords([][]byte{row}); err != nil {
		t.Fatalf("AppendRecords: %v", err)
	}

	got, err := f.ReadRecord(0)
	if err != nil {
		t.Fatalf("ReadRecord: %v", err)
	}
	if got[0] != 'x' {
		t.Errorf("got %v, want row starting with 'x'", got)
	}

	got[1] = 'y'
	if err := f.WriteRecord(0, got); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	reread, err := f.ReadRecord(0)
	if err != nil {
		t.Fatalf("ReadRecord: %v", err)
	}
	if reread[1] != 'y' {
		t.Errorf("write did not persist: got %v", reread)
	}
}

func TestOpenRejectsRecordLengthMismatch(t *testing.T) {
	bridge := mustBridge(t, "utf-8")
	schema := testSchema(t, bridge)
	path := filepath.Join(t.TempDir(), "test.dbf")

	f, err := Create(path, schema, bridge)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Corrupt the stored record length in the header.
	if _, err := f.handle.WriteAt([]byte{0xFF, 0x00}, 10); err != nil {
		t.Fatalf("corrupt header: %v", err)
	}
	f.Close()

	_, err = Open(path, bridge)
	assertKind(t, err, KindFormatError)
}
