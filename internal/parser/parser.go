// Package parser implements the recursive-descent parser with bounded
// lookahead and error recovery described by the statement-dispatch
// table in stmt.go.
package parser

import (
	"github.com/vain0x/hsp3-ginger-sub000/internal/lexer"
	"github.com/vain0x/hsp3-ginger-sub000/internal/ptoken"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/syntax"
)

// Parse runs the full lex -> attach-trivia -> parse pipeline over text
// and returns the resulting tree together with the PToken sequence it
// was built from (later phases index back into it for e.g. doc-comment
// collection).
func Parse(doc span.DocID, text string) (*syntax.Root, []ptoken.PToken) {
	tokens := lexer.Lex(doc, text)
	pts := ptoken.Attach(tokens)
	return ParseRoot(pts), pts
}
