package dbfcore

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Bridge converts field names and field values between host strings and the
// byte representation a named code page stores on disk: exactly two pure
// conversions, Encode and Decode, per supported encoding.
type Bridge struct {
	name  string
	enc   encoding.Encoding
	ascii bool // true for the plain 7-bit ASCII code page, which x/text has no charmap for
}

// NewBridge resolves a code page name to a Bridge. Recognized names (case
// insensitive) are utf-8 (alias utf8), ascii (alias us-ascii), gbk (alias
// cp936), gb2312 (decoded and encoded as GB18030), and cp850; additional
// golang.org/x/text charmaps can be added here without touching callers.
func NewBridge(name string) (*Bridge, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "ascii" || key == "us-ascii" {
		return &Bridge{name: "ascii", ascii: true}, nil
	}
	enc, ok := encodingsByName[key]
	if !ok {
		return nil, NewError(KindEncodingUnsupported, "unrecognized encoding %q", name)
	}
	return &Bridge{name: key, enc: enc}, nil
}

var encodingsByName = map[string]encoding.Encoding{
	"utf-8":  unicode.UTF8,
	"utf8":   unicode.UTF8,
	"gbk":    simplifiedchinese.GBK,
	"cp936":  simplifiedchinese.GBK,
	"gb2312": simplifiedchinese.GB18030,
	"cp850":  charmap.CodePage850,
}

// Name returns the normalized encoding name the Bridge was constructed with.
func (b *Bridge) Name() string { return b.name }

// Encode converts a host string to its on-disk byte representation under
// this code page. Encoding never fails the caller: characters unsupported
// by the target code page degrade to the code page's best-effort
// substitution (matching how dBase writers have always behaved when facing
// out-of-repertoire characters), because the wire format carries no error
// channel to report such a thing mid-record.
func (b *Bridge) Encode(s string) []byte {
	if b.ascii {
		out := make([]byte, 0, len(s))
		for _, r := range s {
			if r < 0x80 {
				out = append(out, byte(r))
			} else {
				out = append(out, '?')
			}
		}
		return out
	}
	out, _, err := transform.Bytes(encoding.ReplaceUnsupported(b.enc.NewEncoder()), []byte(s))
	if err != nil {
		// Fall back to raw UTF-8 bytes rather than losing the value entirely.
		return []byte(s)
	}
	return out
}

// Decode converts stored bytes back to a host string under this code page.
// Malformed input is not silently dropped: golang.org/x/text substitutes
// the Unicode replacement character (U+FFFD) consistently, so valid input
// always round-trips losslessly and only genuinely invalid bytes are
// affected.
func (b *Bridge) Decode(data []byte) string {
	if b.ascii {
		out := make([]rune, len(data))
		for i, c := range data {
			if c < 0x80 {
				out[i] = rune(c)
			} else {
				out[i] = '�'
			}
		}
		return string(out)
	}
	out, _, err := transform.Bytes(b.enc.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(out)
}
