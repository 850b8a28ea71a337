package dbfcore

import "testing"

func mustBridge(t *testing.T, name string) *Bridge {
	t.Helper()
	b, err := NewBridge(name)
	if err != nil {
		t.Fatalf("NewBridge(%q): %v", name, err)
	}
	return b
}

func TestNewSchemaValid(t *testing.T) {
	bridge := mustBridge(t, "utf-8")
	fields := []FieldDescriptor{
		{Name: "NAME", Type: TypeChar, Length: 50},
		{Name: "AGE", Type: TypeNumeric, Length: 3},
		{Name: "BIRTH", Type: TypeDate, Length: 8},
		{Name: "SALARY", Type: TypeNumeric, Length: 10, Decimals: 2},
		{Name: "ACTIVE", Type: TypeLogical, Length: 1},
	}

	schema, err := NewSchema(fields, bridge)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	if got, want := schema.RecordLength(), 1+50+3+8+10+1; got != want {
		t.Errorf("RecordLength() = %d, want %d", got, want)
	}
	if got, want := schema.HeaderLength(), 32+32*5+1; got != want {
		t.Errorf("HeaderLength() = %d, want %d", got, want)
	}
	if schema.Resolve("name") != 0 {
		t.Errorf("case-insensitive Resolve failed")
	}
	if schema.Resolve("nonexistent") != -1 {
		t.Errorf("Resolve should fail for unknown field")
	}
}

func TestNewSchemaRejectsBadTypeCode(t *testing.T) {
	bridge := mustBridge(t, "utf-8")
	_, err := NewSchema([]FieldDescriptor{{Name: "X", Type: 'X', Length: 1}}, bridge)
	assertKind(t, err, KindSchemaInvalid)
}

func TestNewSchemaRejectsOversizedChar(t *testing.T) {
	bridge := mustBridge(t, "utf-8")
	_, err := NewSchema([]FieldDescriptor{{Name: "X", Type: TypeChar, Length: 256}}, bridge)
	assertKind(t, err, KindSchemaInvalid)
}

func TestNewSchemaRejectsDuplicateCanonicalNames(t *testing.T) {
	bridge := mustBridge(t, "utf-8")
	fields := []FieldDescriptor{
		{Name: "Name", Type: TypeChar, Length: 10},
		{Name: "NAME", Type: TypeChar, Length: 10},
	}
	_, err := NewSchema(fields, bridge)
	assertKind(t, err, KindSchemaInvalid)
}

func TestNewSchemaRejectsEmpty(t *testing.T) {
	bridge := mustBridge(t, "utf-8")
	_, err := NewSchema(nil, bridge)
	assertKind(t, err, KindSchemaInvalid)
}

func TestNewSchemaRejectsBadDecimals(t *testing.T) {
	bridge := mustBridge(t, "utf-8")
	_, err := NewSchema([]FieldDescriptor{{Name: "X", Type: TypeNumeric, Length: 3, Decimals: 5}}, bridge)
	assertKind(t, err, KindSchemaInvalid)
}

func TestNewSchemaAcceptsZeroDecimalsAtMinimumLength(t *testing.T) {
	bridge := mustBridge(t, "utf-8")
	_, err := NewSchema([]FieldDescriptor{{Name: "RATING", Type: TypeNumeric, Length: 1, Decimals: 0}}, bridge)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
}

func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %v, got nil", want)
	}
	e, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if e.Kind != want {
		t.Fatalf("expected kind %v, got %v (%v)", want, e.Kind, err)
	}
}

func TestCanonicalNameASCIIOnlyUppercasing(t *testing.T) {
	if got, want := canonicalName("姓名"), "姓名"; got != want {
		t.Errorf("canonicalName(%q) = %q, want %q (CJK must pass through unchanged)", "姓名", got, want)
	}
	if got, want := canonicalName("name"), "NAME"; got != want {
		t.Errorf("canonicalName(%q) = %q, want %q", "name", got, want)
	}
	if got, want := canonicalName(" NAME\x00"), "NAME"; got != want {
		t.Errorf("canonicalName padding trim: got %q, want %q", got, want)
	}
}
