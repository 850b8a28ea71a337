package xbase

import "github.com/mkfoss/xbase/internal/dbfcore"

// Field type codes, one ASCII byte each, matching the on-disk field
// descriptor's type byte exactly.
const (
	Character = dbfcore.TypeChar
	Numeric   = dbfcore.TypeNumeric
	Float     = dbfcore.TypeFloat
	Integer   = dbfcore.TypeInteger
	Date      = dbfcore.TypeDate
	Logical   = dbfcore.TypeLogical
)

// Field describes one column of a table schema: its wire name, type code,
// byte width, and (for Numeric/Float) decimal count. Schemas are ordered
// sequences of Field and are immutable once passed to Create.
type Field struct {
	Name     string
	Type     byte
	Length   int
	Decimals int
}

func toDescriptors(fields []Field) []dbfcore.FieldDescriptor {
	out := make([]dbfcore.FieldDescriptor, len(fields))
	for i, f := range fields {
		out[i] = dbfcore.FieldDescriptor{
			Name:     f.Name,
			Type:     f.Type,
			Length:   f.Length,
			Decimals: f.Decimals,
		}
	}
	return out
}

// Row is an ordered-by-caller, untyped key→value mapping used for both
// writing (AppendRecords/UpdateRecord) and reading (ReadRecords) table
// records. Values carry the tagged set {string, int64, float64, bool,
// time.Time-formattable string, nil}; missing keys on write encode as the
// field type's null representation.
type Row = map[string]any
