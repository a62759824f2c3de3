// Package query implements the read-only position- and name-based
// lookups a language server builds its features from: what identifier
// sits at a cursor, what symbol a def/use site names, every occurrence
// of a symbol, and the completion/symbol-search lists that enumerate a
// project's declarations. It never mutates a workspace.Project; all of
// it runs over the snapshot Compute last produced.
package query

import (
	"github.com/vain0x/hsp3-ginger-sub000/internal/ptoken"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/token"
)

// GetIdentAt returns the identifier token touching pos, if any. It
// first looks for a token whose body starts exactly at pos (the common
// case: the cursor sits right before an identifier), then falls back to
// scanning a small window of neighboring tokens for one whose range
// merely touches pos (the cursor sits inside or right after one).
func GetIdentAt(tokens []ptoken.PToken, pos span.Pos) (ptoken.PToken, bool) {
	lo, hi := 0, len(tokens)
	for lo < hi {
		mid := (lo + hi) / 2
		if tokens[mid].Loc().Range.Start.Before(pos) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	for _, i := range []int{lo - 1, lo, lo + 1} {
		if i < 0 || i >= len(tokens) {
			continue
		}
		t := tokens[i]
		if t.Kind() == token.Ident && t.Loc().Range.Touches(pos) {
			return t, true
		}
	}
	return ptoken.PToken{}, false
}

// InPreproc reports whether pos lies within a preprocessor directive
// line: from a leading `#` token up to (but not including) the Eos that
// closes it.
func InPreproc(pos span.Pos, tokens []ptoken.PToken) bool {
	inDirective := false
	for _, t := range tokens {
		switch t.Kind() {
		case token.Hash:
			inDirective = true
		case token.Eos:
			if inDirective && t.Loc().Range.Touches(pos) {
				return true
			}
			inDirective = false
			continue
		}
		if inDirective && rangeCovers(t, pos) {
			return true
		}
	}
	return false
}

// InStrOrComment reports whether pos lies within a string literal or a
// comment (including comment trivia attached to a nearby token).
func InStrOrComment(pos span.Pos, tokens []ptoken.PToken) bool {
	for _, t := range tokens {
		for i := 0; i < t.Leading.Len(); i++ {
			tok := t.Leading.At(i)
			if tok.Kind == token.Comment && tok.Loc.Range.Touches(pos) {
				return true
			}
		}
		if t.Kind() == token.Str && t.Loc().Range.Touches(pos) {
			return true
		}
		for i := 0; i < t.Trailing.Len(); i++ {
			tok := t.Trailing.At(i)
			if tok.Kind == token.Comment && tok.Loc.Range.Touches(pos) {
				return true
			}
		}
	}
	return false
}

// rangeCovers reports whether pos lies within t's own ahead..behind
// span, which includes its attached trivia — used so that a cursor
// resting on the blank after `#deffunc` still counts as "in preproc".
func rangeCovers(t ptoken.PToken, pos span.Pos) bool {
	return !pos.Before(t.Ahead()) && !t.Behind().Before(pos)
}
