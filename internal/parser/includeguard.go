package parser

import (
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/syntax"
	"github.com/vain0x/hsp3-ginger-sub000/internal/token"
)

// IncludeGuard records the `#ifndef NAME` / `#define NAME` bracket a
// document opens with, if any.
type IncludeGuard struct {
	Name string
	Loc  span.Loc
}

// DetectIncludeGuard looks for the conservative `#ifndef NAME` ...
// `#define NAME` ... `#endif` bracket pattern at the start of a
// document. Per design, this intentionally does not recognize
// `#ifdef`-based or nested guards (see Design Notes Open Question 3);
// widening this pattern requires an explicit decision to revisit that.
func DetectIncludeGuard(root *syntax.Root) (IncludeGuard, bool) {
	if root == nil || len(root.Stmts) < 2 {
		return IncludeGuard{}, false
	}

	first := root.Stmts[0].Unknown
	if first == nil || len(first.Tokens) == 0 {
		return IncludeGuard{}, false
	}
	if first.Tokens[0].Kind() != token.Ident || first.Tokens[0].Text() != "ifndef" {
		return IncludeGuard{}, false
	}
	if len(first.Tokens) < 2 || first.Tokens[1].Kind() != token.Ident {
		return IncludeGuard{}, false
	}
	guardName := first.Tokens[1].Text()
	guardLoc := first.Tokens[1].Loc()

	foundDefine := false
	foundEndif := false
	for _, stmt := range root.Stmts[1:] {
		switch {
		case stmt.Define != nil && stmt.Define.NameOpt != nil && stmt.Define.NameOpt.Text() == guardName:
			foundDefine = true
		case stmt.Unknown != nil && len(stmt.Unknown.Tokens) > 0 &&
			stmt.Unknown.Tokens[0].Kind() == token.Ident && stmt.Unknown.Tokens[0].Text() == "endif":
			foundEndif = true
		}
	}

	if foundDefine && foundEndif {
		return IncludeGuard{Name: guardName, Loc: guardLoc}, true
	}
	return IncludeGuard{}, false
}
