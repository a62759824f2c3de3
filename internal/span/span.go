// Package span defines source positions and ranges shared across the
// analysis pipeline: a byte offset paired with a UTF-16 column so that
// editor-facing positions and internal string indices stay in sync.
package span

import "fmt"

// DocID identifies a document. It is stable across edits and is reused
// if a document is closed and reopened under the same URI.
type DocID int32

// Pos is a single point in a document: a byte offset plus line/column
// bookkeeping in both UTF-8 and UTF-16 units.
type Pos struct {
	Line   int // 0-based line number
	UTF8   int // 0-based column, UTF-8 byte units
	UTF16  int // 0-based column, UTF-16 code-unit units
	Offset int // 0-based byte offset from the start of the document
}

// Range is a half-open [Start, End) span within one document.
type Range struct {
	Start Pos
	End   Pos
}

// Loc pairs a Range with the document it lives in.
type Loc struct {
	Doc   DocID
	Range Range
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.UTF16+1)
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

func (l Loc) String() string {
	return fmt.Sprintf("#%d:%s", l.Doc, l.Range)
}

// Contains reports whether p lies within [r.Start, r.End).
func (r Range) Contains(p Pos) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}

// Touches reports whether p lies within [r.Start, r.End] (inclusive of
// the end), used for hit-testing at a cursor position which may sit
// immediately after the token it identifies.
func (r Range) Touches(p Pos) bool {
	return !p.Before(r.Start) && !r.End.Before(p)
}

// Before reports whether p sorts strictly before other by offset.
func (p Pos) Before(other Pos) bool {
	return p.Offset < other.Offset
}

// Union returns the smallest range covering both a and b.
func Union(a, b Range) Range {
	start, end := a.Start, a.End
	if b.Start.Before(start) {
		start = b.Start
	}
	if end.Before(b.End) {
		end = b.End
	}
	return Range{Start: start, End: end}
}
