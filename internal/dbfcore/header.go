package dbfcore

import (
	"encoding/binary"
	"time"
)

// versionDBaseIII is the version/flag byte this package writes: dBase III,
// no memo.
const versionDBaseIII = 0x03

// recognizedVersions lists version bytes Open accepts without erroring:
// plain dBase III/IV and VFP, memo or not. This core only marshals the
// no-memo subset but still opens the others for read/update without
// choking on the version byte.
var recognizedVersions = map[byte]bool{
	0x02: true, 0x03: true, 0x30: true, 0x31: true, 0x32: true,
	0x43: true, 0x63: true, 0x83: true, 0x8B: true, 0xCB: true,
	0xF5: true, 0xE5: true,
}

// fileHeader is the 32-byte on-disk DBF header.
type fileHeader struct {
	Version   byte
	Year      byte // last-update year, (YY = year - 1900)
	Month     byte
	Day       byte
	NumRecs   uint32
	HeaderLen uint16
	RecordLen uint16
}

func (h *fileHeader) lastUpdate() time.Time {
	year := int(h.Year) + 1900
	if h.Month < 1 || h.Month > 12 || h.Day < 1 || h.Day > 31 {
		return time.Time{}
	}
	return time.Date(year, time.Month(h.Month), int(h.Day), 0, 0, 0, 0, time.UTC)
}

// encodeHeader packs the 32-byte header.
func encodeHeader(h *fileHeader) []byte {
	buf := make([]byte, 32)
	buf[0] = h.Version
	buf[1] = h.Year
	buf[2] = h.Month
	buf[3] = h.Day
	binary.LittleEndian.PutUint32(buf[4:8], h.NumRecs)
	binary.LittleEndian.PutUint16(buf[8:10], h.HeaderLen)
	binary.LittleEndian.PutUint16(buf[10:12], h.RecordLen)
	// bytes 12-31 reserved, left zero
	return buf
}

func decodeHeader(buf []byte) (*fileHeader, error) {
	if len(buf) < 32 {
		return nil, NewError(KindFormatError, "header too short: %d bytes", len(buf))
	}
	h := &fileHeader{
		Version:   buf[0],
		Year:      buf[1],
		Month:     buf[2],
		Day:       buf[3],
		NumRecs:   binary.LittleEndian.Uint32(buf[4:8]),
		HeaderLen: binary.LittleEndian.Uint16(buf[8:10]),
		RecordLen: binary.LittleEndian.Uint16(buf[10:12]),
	}
	if !recognizedVersions[h.Version] {
		return nil, NewError(KindFormatError, "unrecognized dBase version byte 0x%02X", h.Version)
	}
	return h, nil
}

// encodeFieldDescriptor packs one 32-byte field descriptor.
func encodeFieldDescriptor(f FieldDescriptor, bridge *Bridge) []byte {
	buf := make([]byte, 32)
	name := bridge.Encode(f.Name)
	if len(name) > 10 {
		name = name[:10]
	}
	copy(buf[0:11], name)
	buf[11] = f.Type
	// bytes 12-15 reserved (offset, unused on disk)
	buf[16] = byte(f.Length)
	buf[17] = byte(f.Decimals)
	// bytes 18-31 reserved
	return buf
}

func decodeFieldDescriptor(buf []byte, bridge *Bridge) (FieldDescriptor, error) {
	if len(buf) < 32 {
		return FieldDescriptor{}, NewError(KindFormatError, "field descriptor too short: %d bytes", len(buf))
	}
	nameEnd := 0
	for nameEnd < 11 && buf[nameEnd] != 0 {
		nameEnd++
	}
	return FieldDescriptor{
		Name:     bridge.Decode(buf[0:nameEnd]),
		Type:     buf[11],
		Length:   int(buf[16]),
		Decimals: int(buf[17]),
	}, nil
}
