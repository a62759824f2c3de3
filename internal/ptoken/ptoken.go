// Package ptoken attaches leading/trailing trivia to significant tokens
// and synthesizes end-of-statement markers, turning the lexer's flat
// token stream into the sequence the parser consumes.
package ptoken

import (
	"github.com/vain0x/hsp3-ginger-sub000/internal/rope"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/token"
)

// PToken is a significant token plus the trivia runs immediately
// surrounding it.
type PToken struct {
	Leading  rope.Slice[token.Token]
	Body     token.Token
	Trailing rope.Slice[token.Token]
}

func (p PToken) Kind() token.Kind { return p.Body.Kind }
func (p PToken) Text() string     { return p.Body.Text }
func (p PToken) Loc() span.Loc    { return p.Body.Loc }

// Ahead returns the position at the start of this token's leading
// trivia, or the body's own start if there is none.
func (p PToken) Ahead() span.Pos {
	if p.Leading.Len() > 0 {
		return p.Leading.At(0).Loc.Range.Start
	}
	return p.Body.Loc.Range.Start
}

// Behind returns the position at the end of this token's trailing
// trivia, or the body's own end if there is none.
func (p PToken) Behind() span.Pos {
	if n := p.Trailing.Len(); n > 0 {
		return p.Trailing.At(n - 1).Loc.Range.End
	}
	return p.Body.Loc.Range.End
}

// Attach converts a flat token sequence into PTokens, attaching leading
// and trailing trivia and inserting a synthetic Eos after every token
// whose trailing run reaches a Newlines or Eof boundary.
func Attach(tokens []token.Token) []PToken {
	if len(tokens) == 0 {
		return nil
	}
	shared := rope.Of(tokens)

	var out []PToken
	index := 0
	n := shared.Len()

	for {
		leadingStart := index
		for index < n && token.IsLeadingTrivia(shared.At(index).Kind) {
			index++
		}
		leading := shared.Sub(leadingStart, index)

		if index >= n {
			break
		}
		body := shared.At(index)
		index++

		trailingStart := index
		for index < n && token.IsTrailingTrivia(shared.At(index).Kind) {
			index++
		}
		trailing := shared.Sub(trailingStart, index)

		pt := PToken{Leading: leading, Body: body, Trailing: trailing}
		out = append(out, pt)

		if index < n {
			k := shared.At(index).Kind
			if k == token.Newlines || k == token.Eof {
				pos := pt.Behind()
				doc := pt.Body.Loc.Doc
				out = append(out, PToken{
					Body: token.Token{Kind: token.Eos, Loc: span.Loc{Doc: doc, Range: span.Range{Start: pos, End: pos}}},
				})
			}
		}
	}

	return out
}
