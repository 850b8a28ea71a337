package dbfcore

import "strings"

// Field type codes recognized on disk. Trimmed to the set this core
// actually marshals (no memo/general/picture/currency/datetime).
const (
	TypeChar    = 'C'
	TypeNumeric = 'N'
	TypeFloat   = 'F'
	TypeInteger = 'I'
	TypeDate    = 'D'
	TypeLogical = 'L'
)

// FieldDescriptor describes one column of a Schema: its wire name, type
// code, byte width, and (for N/F) decimal count.
type FieldDescriptor struct {
	Name     string
	Type     byte
	Length   int
	Decimals int
}

// Schema is an ordered, validated sequence of FieldDescriptor plus the
// canonical-name index used by the resolver. It is immutable once built by
// NewSchema.
type Schema struct {
	Fields  []FieldDescriptor
	offsets []int // byte offset of each field within a record, offsets[0] == 1 (after delete flag)
	index   map[string]int
}

// canonicalName normalizes an already-decoded field name for
// case/locale-insensitive lookup: trim zero/space padding, and upper-case
// only ASCII letters. Multi-byte (CJK) code points pass through untouched so a
// byte-identical comparison on the remainder still matches.
func canonicalName(name string) string {
	name = strings.Trim(name, " \x00")
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

// NewSchema validates a field descriptor sequence and builds the
// canonical-name index.
func NewSchema(fields []FieldDescriptor, bridge *Bridge) (*Schema, error) {
	if len(fields) == 0 {
		return nil, NewError(KindSchemaInvalid, "schema must have at least one field")
	}
	if len(fields) > 255 {
		return nil, NewError(KindSchemaInvalid, "schema has %d fields, max is 255", len(fields))
	}

	s := &Schema{
		Fields:  make([]FieldDescriptor, len(fields)),
		offsets: make([]int, len(fields)),
		index:   make(map[string]int, len(fields)),
	}

	offset := 1 // byte 0 of every record row is the deletion flag
	for i, f := range fields {
		if len(bridge.Encode(f.Name)) > 10 {
			return nil, NewError(KindSchemaInvalid, "field %d (%q): encoded name exceeds 10 bytes", i, f.Name)
		}
		if err := validateWidth(f); err != nil {
			return nil, WrapError(KindSchemaInvalid, err, "field %d (%q)", i, f.Name)
		}

		key := canonicalName(f.Name)
		if key == "" {
			return nil, NewError(KindSchemaInvalid, "field %d: name is empty after normalization", i)
		}
		if _, exists := s.index[key]; exists {
			return nil, NewError(KindSchemaInvalid, "field %d (%q): duplicate canonical name %q", i, f.Name, key)
		}

		s.Fields[i] = f
		s.offsets[i] = offset
		s.index[key] = i
		offset += f.Length
	}

	return s, nil
}

func validateWidth(f FieldDescriptor) error {
	switch f.Type {
	case TypeChar:
		if f.Length < 1 || f.Length > 254 {
			return NewError(KindSchemaInvalid, "C length %d outside [1,254]", f.Length)
		}
	case TypeNumeric, TypeFloat:
		if f.Length < 1 || f.Length > 20 {
			return NewError(KindSchemaInvalid, "%c length %d outside [1,20]", f.Type, f.Length)
		}
		if f.Decimals < 0 || (f.Decimals > 0 && f.Decimals > f.Length-2) {
			return NewError(KindSchemaInvalid, "%c decimals %d invalid for length %d", f.Type, f.Decimals, f.Length)
		}
	case TypeInteger:
		if f.Length != 4 {
			return NewError(KindSchemaInvalid, "I length must be 4, got %d", f.Length)
		}
	case TypeDate:
		if f.Length != 8 {
			return NewError(KindSchemaInvalid, "D length must be 8, got %d", f.Length)
		}
	case TypeLogical:
		if f.Length != 1 {
			return NewError(KindSchemaInvalid, "L length must be 1, got %d", f.Length)
		}
	default:
		return NewError(KindSchemaInvalid, "unrecognized type code %q", string(f.Type))
	}
	return nil
}

// RecordLength returns the full on-disk row width, including the leading
// deletion-flag byte.
func (s *Schema) RecordLength() int {
	length := 1
	for _, f := range s.Fields {
		length += f.Length
	}
	return length
}

// HeaderLength returns the on-disk header length.
func (s *Schema) HeaderLength() int {
	return 32 + 32*len(s.Fields) + 1
}

// Offset returns the byte offset of field i within a record row.
func (s *Schema) Offset(i int) int { return s.offsets[i] }

// Resolve maps a user-supplied key to a field index using the canonical
// name index. Returns -1 if no field matches.
func (s *Schema) Resolve(key string) int {
	idx, ok := s.index[canonicalName(key)]
	if !ok {
		return -1
	}
	return idx
}

// CanonicalNames returns the schema's field names in canonical form, in
// declared order, for use as the keys of a read row.
func (s *Schema) CanonicalNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = canonicalName(f.Name)
	}
	return names
}
