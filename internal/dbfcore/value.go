package dbfcore

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EncodeValue converts a host value to its field.Length-byte wire
// representation, dispatching on the field's type code. Shaped after a
// per-type assign-field routine, generalized from "field already holds a
// string" to "caller passes any tagged value".
func EncodeValue(v any, f FieldDescriptor, bridge *Bridge) ([]byte, error) {
	switch f.Type {
	case TypeChar:
		return encodeChar(v, f, bridge)
	case TypeNumeric, TypeFloat:
		return encodeNumeric(v, f)
	case TypeInteger:
		return encodeInteger(v)
	case TypeDate:
		return encodeDate(v)
	case TypeLogical:
		return encodeLogical(v)
	default:
		return nil, NewError(KindSchemaInvalid, "unrecognized type code %q", string(f.Type))
	}
}

// DecodeValue converts a field's raw on-disk bytes back to a host value,
// dispatching on the field's type code.
func DecodeValue(data []byte, f FieldDescriptor, bridge *Bridge) (any, error) {
	switch f.Type {
	case TypeChar:
		return decodeChar(data, bridge), nil
	case TypeNumeric:
		return decodeNumeric(data, f.Decimals, false)
	case TypeFloat:
		return decodeNumeric(data, f.Decimals, true)
	case TypeInteger:
		return decodeInteger(data), nil
	case TypeDate:
		return decodeDate(data), nil
	case TypeLogical:
		return decodeLogical(data), nil
	default:
		return nil, NewError(KindFormatError, "unrecognized type code %q", string(f.Type))
	}
}

func valueToString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

func encodeChar(v any, f FieldDescriptor, bridge *Bridge) ([]byte, error) {
	buf := make([]byte, f.Length)
	for i := range buf {
		buf[i] = ' '
	}
	if v == nil {
		return buf, nil
	}
	encoded := bridge.Encode(valueToString(v))
	if len(encoded) > f.Length {
		return nil, NewError(KindValueTooLong, "%d encoded bytes exceed field length %d", len(encoded), f.Length)
	}
	copy(buf, encoded)
	return buf, nil
}

func decodeChar(data []byte, bridge *Bridge) string {
	trimmed := strings.TrimRight(string(data), " ")
	if trimmed == "" {
		return ""
	}
	return bridge.Decode([]byte(trimmed))
}

func numericValue(v any) (float64, bool, error) {
	switch t := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return t, true, nil
	case float32:
		return float64(t), true, nil
	case int:
		return float64(t), true, nil
	case int32:
		return float64(t), true, nil
	case int64:
		return float64(t), true, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, NewError(KindValueOverflow, "cannot parse %q as numeric", t)
		}
		return f, true, nil
	default:
		return 0, false, NewError(KindValueOverflow, "unsupported value type %T for numeric field", v)
	}
}

func encodeNumeric(v any, f FieldDescriptor) ([]byte, error) {
	buf := make([]byte, f.Length)
	for i := range buf {
		buf[i] = ' '
	}

	num, present, err := numericValue(v)
	if err != nil {
		return nil, err
	}
	if !present {
		return buf, nil
	}

	var formatted string
	if f.Decimals > 0 {
		formatted = strconv.FormatFloat(num, 'f', f.Decimals, 64)
	} else {
		formatted = strconv.FormatFloat(num, 'f', 0, 64)
	}

	if len(formatted) > f.Length {
		return nil, NewError(KindValueOverflow, "formatted value %q (%d bytes) overflows field length %d", formatted, len(formatted), f.Length)
	}
	copy(buf[f.Length-len(formatted):], formatted)
	return buf, nil
}

func decodeNumeric(data []byte, decimals int, asFloat bool) (any, error) {
	trimmed := strings.TrimSpace(string(data))
	trimmed = strings.Trim(trimmed, "*")
	if trimmed == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, WrapError(KindFormatError, err, "invalid numeric field content %q", string(data))
	}
	if asFloat || decimals > 0 {
		return f, nil
	}
	return int64(f), nil
}

func encodeInteger(v any) ([]byte, error) {
	buf := make([]byte, 4)
	if v == nil {
		return buf, nil
	}
	num, present, err := numericValue(v)
	if err != nil {
		return nil, err
	}
	if !present {
		return buf, nil
	}
	binary.LittleEndian.PutUint32(buf, uint32(int32(num)))
	return buf, nil
}

func decodeInteger(data []byte) int64 {
	return int64(int32(binary.LittleEndian.Uint32(data)))
}

func encodeDate(v any) ([]byte, error) {
	buf := []byte("        ")
	switch t := v.(type) {
	case nil:
		return buf, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return buf, nil
		}
		if len(s) != 8 {
			return nil, NewError(KindValueOverflow, "date string %q must be 8 digits (YYYYMMDD)", t)
		}
		copy(buf, s)
		return buf, nil
	case time.Time:
		copy(buf, t.Format("20060102"))
		return buf, nil
	default:
		return nil, NewError(KindValueOverflow, "unsupported value type %T for date field", v)
	}
}

func decodeDate(data []byte) any {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}
	return trimmed
}

func encodeLogical(v any) ([]byte, error) {
	switch t := v.(type) {
	case nil:
		return []byte{' '}, nil
	case bool:
		if t {
			return []byte{'T'}, nil
		}
		return []byte{'F'}, nil
	case string:
		switch t {
		case "T", "t", "Y", "y":
			return []byte{'T'}, nil
		case "F", "f", "N", "n":
			return []byte{'F'}, nil
		case "":
			return []byte{' '}, nil
		default:
			return nil, NewError(KindValueOverflow, "unrecognized logical string %q", t)
		}
	case int:
		if t != 0 {
			return []byte{'T'}, nil
		}
		return []byte{'F'}, nil
	case int32:
		if t != 0 {
			return []byte{'T'}, nil
		}
		return []byte{'F'}, nil
	case int64:
		if t != 0 {
			return []byte{'T'}, nil
		}
		return []byte{'F'}, nil
	default:
		return nil, NewError(KindValueOverflow, "unsupported value type %T for logical field", v)
	}
}

func decodeLogical(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case 'T', 't', 'Y', 'y':
		return true
	case 'F', 'f', 'N', 'n':
		return false
	default:
		return nil
	}
}
