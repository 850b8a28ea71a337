package dbfcore

import "testing"

func TestNewBridgeUnrecognizedEncoding(t *testing.T) {
	_, err := NewBridge("latin-7")
	assertKind(t, err, KindEncodingUnsupported)
}

func TestBridgeNameNormalized(t *testing.T) {
	b := mustBridge(t, "  GBK  ")
	if b.Name() != "gbk" {
		t.Errorf("Name() = %q, want %q", b.Name(), "gbk")
	}
}

func TestBridgeCP936AliasesGBK(t *testing.T) {
	a := mustBridge(t, "gbk")
	b := mustBridge(t, "cp936")
	in := "中文"
	if string(a.Encode(in)) != string(b.Encode(in)) {
		t.Errorf("gbk and cp936 should encode identically")
	}
}

func TestBridgeASCIIRoundTrip(t *testing.T) {
	b := mustBridge(t, "ascii")
	out := b.Encode("hello")
	if string(out) != "hello" {
		t.Errorf("Encode(%q) = %q, want unchanged", "hello", out)
	}
	if b.Decode(out) != "hello" {
		t.Errorf("Decode round trip failed")
	}
}

func TestBridgeASCIISubstitutesOutOfRange(t *testing.T) {
	b := mustBridge(t, "ascii")
	out := b.Encode("café")
	if out[len(out)-1] != '?' {
		t.Errorf("expected trailing '?' substitution, got %q", out)
	}
}

func TestBridgeUTF8RoundTrip(t *testing.T) {
	b := mustBridge(t, "utf-8")
	in := "hello, 世界"
	out := b.Encode(in)
	if b.Decode(out) != in {
		t.Errorf("utf-8 round trip failed: got %q, want %q", b.Decode(out), in)
	}
}

func TestBridgeCP850RoundTrip(t *testing.T) {
	b := mustBridge(t, "cp850")
	in := "café"
	out := b.Encode(in)
	if b.Decode(out) != in {
		t.Errorf("cp850 round trip failed: got %q, want %q", b.Decode(out), in)
	}
}
