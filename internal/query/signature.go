package query

import (
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/symbol"
	"github.com/vain0x/hsp3-ginger-sub000/internal/syntax"
	"github.com/vain0x/hsp3-ginger-sub000/internal/workspace"
)

// SignatureHelpDb maps the start position of a command/invoke's callee
// use-site, within one doc, back to the symbol it resolved to — so a
// signature-help request (which only knows the cursor position, not
// which argument list it's inside) can find the right declaration
// without re-walking the tree.
type SignatureHelpDb struct {
	byPos map[span.Pos]*symbol.Symbol
}

// NewSignatureHelpDb builds the lookup from every use-site recorded in
// doc across p's symbols.
func NewSignatureHelpDb(p *workspace.Project, doc span.DocID) SignatureHelpDb {
	db := SignatureHelpDb{byPos: make(map[span.Pos]*symbol.Symbol)}
	for _, s := range p.Symbols {
		for _, loc := range s.UseSites {
			if loc.Doc == doc {
				db.byPos[loc.Range.Start] = s
			}
		}
	}
	return db
}

// ResolveSymbol returns the symbol whose use-site begins at pos.
func (db SignatureHelpDb) ResolveSymbol(pos span.Pos) (*symbol.Symbol, bool) {
	s, ok := db.byPos[pos]
	return s, ok
}

// ArgIndexAt returns which argument slot of args the signature-help
// cursor at pos falls into: the count of commas that end at or before
// pos. A position inside the first argument's expression precedes every
// comma and yields 0; a position right after the first comma yields 1.
func ArgIndexAt(args []syntax.Arg, pos span.Pos) int {
	index := 0
	for _, a := range args {
		if a.CommaOpt == nil {
			continue
		}
		if !pos.Before(a.CommaOpt.Loc().Range.End) {
			index++
		}
	}
	return index
}
