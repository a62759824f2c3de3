// Package encoding decodes on-disk HSP3 source bytes to UTF-8 text. The
// toolchain's default source encoding on Windows is Shift-JIS, but
// editors and newer projects increasingly save as UTF-8; a document's
// encoding isn't declared anywhere in the file itself, so callers must
// guess by trying the stricter, less ambiguous encoding first.
package encoding

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// Decode turns raw file bytes into text. It tries UTF-8 strict first
// (rejecting invalid byte sequences, since Shift-JIS bytes are usually
// invalid UTF-8), then Shift-JIS. usedShiftJIS reports which branch
// matched; ok is false if neither decoder accepted the bytes, in which
// case text is empty and the caller should skip the file with a
// warning.
//
// The Shift-JIS decoder in x/text substitutes the Unicode replacement
// rune for any byte sequence it can't map rather than returning an
// error, so an undecodable run would otherwise pass silently; treating
// a replacement rune in the output as failure is what makes this
// "strict" in effect.
func Decode(data []byte) (text string, usedShiftJIS bool, ok bool) {
	if utf8.Valid(data) {
		return stripBOM(string(data)), false, true
	}

	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(data)
	if err == nil && utf8.Valid(decoded) && !strings.ContainsRune(string(decoded), utf8.RuneError) {
		return string(decoded), true, true
	}

	return "", false, false
}

func stripBOM(s string) string {
	const bom = "﻿"
	if len(s) >= len(bom) && s[:len(bom)] == bom {
		return s[len(bom):]
	}
	return s
}
