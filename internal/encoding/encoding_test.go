package encoding

import (
	"testing"

	"golang.org/x/text/encoding/japanese"
)

func TestDecodeUTF8(t *testing.T) {
	text, usedShiftJIS, ok := Decode([]byte("#deffunc f int a\n\t; コメント\n\treturn\n"))
	if !ok || usedShiftJIS {
		t.Fatalf("want ok=true usedShiftJIS=false, got ok=%v usedShiftJIS=%v", ok, usedShiftJIS)
	}
	if text == "" {
		t.Error("expected non-empty decoded text")
	}
}

func TestDecodeShiftJISFallback(t *testing.T) {
	src := "; 日本語のコメント\n"
	encoded, err := japanese.ShiftJIS.NewEncoder().String(src)
	if err != nil {
		t.Fatalf("failed to build Shift-JIS fixture: %v", err)
	}

	text, usedShiftJIS, ok := Decode([]byte(encoded))
	if !ok || !usedShiftJIS {
		t.Fatalf("want ok=true usedShiftJIS=true, got ok=%v usedShiftJIS=%v", ok, usedShiftJIS)
	}
	if text != src {
		t.Errorf("round-trip mismatch: got %q, want %q", text, src)
	}
}

func TestDecodeGarbageRejected(t *testing.T) {
	// Bytes that are neither valid UTF-8 nor valid Shift-JIS.
	garbage := []byte{0xff, 0xfe, 0x00, 0x81, 0xff}
	_, _, ok := Decode(garbage)
	if ok {
		t.Error("expected garbage bytes to be rejected by both decoders")
	}
}
