package query

import (
	"strings"

	"github.com/vain0x/hsp3-ginger-sub000/internal/ptoken"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/symbol"
	"github.com/vain0x/hsp3-ginger-sub000/internal/syntax"
	"github.com/vain0x/hsp3-ginger-sub000/internal/token"
	"github.com/vain0x/hsp3-ginger-sub000/internal/workspace"
)

// TokenClass is the semantic category a SemanticTokens entry is tagged
// with, for an editor's own syntax-highlighting theme to color.
type TokenClass int

const (
	ClassNone TokenClass = iota
	ClassKeyword
	ClassLabel
	ClassMacro
	ClassCommand
	ClassFunction
	ClassModule
	ClassVariable
	ClassParam
	ClassField
	ClassComment
	ClassString
	ClassNumber
)

// SemanticToken is one classified token occurrence.
type SemanticToken struct {
	Loc   span.Loc
	Class TokenClass
}

// SemanticTokens classifies every significant token of doc that carries
// editor-relevant meaning: a symbol occurrence's class where p resolved
// one, a preprocessor directive keyword where the AST names one, and
// otherwise the token's own lexical kind (reserved idents, literals,
// comment trivia). Tokens with none of those — punctuation, an
// unresolved bare ident — are omitted rather than tagged ClassNone, so
// the result only ever contains tokens worth highlighting.
func SemanticTokens(p *workspace.Project, doc span.DocID, tokens []ptoken.PToken, root *syntax.Root) []SemanticToken {
	bySite := make(map[span.Pos]TokenClass)

	for _, s := range p.Symbols {
		class, ok := symbolClass(s)
		if !ok {
			continue
		}
		for _, loc := range s.DefSites {
			if loc.Doc == doc {
				bySite[loc.Range.Start] = class
			}
		}
		for _, loc := range s.UseSites {
			if loc.Doc == doc {
				bySite[loc.Range.Start] = class
			}
		}
	}

	if root != nil {
		collectPreprocKeywordSites(root.Stmts, bySite)
	}

	var out []SemanticToken
	for _, t := range tokens {
		for i := 0; i < t.Leading.Len(); i++ {
			if trivia := t.Leading.At(i); trivia.Kind == token.Comment {
				out = append(out, SemanticToken{Loc: trivia.Loc, Class: ClassComment})
			}
		}

		loc := t.Loc()
		if class, ok := bySite[loc.Range.Start]; ok {
			out = append(out, SemanticToken{Loc: loc, Class: class})
		} else if class, ok := lexicalClass(t.Kind()); ok {
			out = append(out, SemanticToken{Loc: loc, Class: class})
		}

		for i := 0; i < t.Trailing.Len(); i++ {
			if trivia := t.Trailing.At(i); trivia.Kind == token.Comment {
				out = append(out, SemanticToken{Loc: trivia.Loc, Class: ClassComment})
			}
		}
	}
	return out
}

// symbolClass maps a resolved symbol's declaration kind to its semantic
// class. DefFunc/ModFunc/LibFunc never return a value (commands);
// DefCFunc/ModCFunc/ComFunc do (functions) — a split the original's
// single "function" token type doesn't make, but this spec's class list
// does. Unresolved and ComInterface have no class of their own, matching
// the original's explicit "not supported" case for ComInterface.
func symbolClass(s *symbol.Symbol) (TokenClass, bool) {
	switch s.Kind {
	case symbol.Label:
		return ClassLabel, true
	case symbol.StaticVar, symbol.Const, symbol.Enum:
		return ClassVariable, true
	case symbol.Macro:
		return ClassMacro, true
	case symbol.DefFunc, symbol.ModFunc, symbol.LibFunc:
		return ClassCommand, true
	case symbol.DefCFunc, symbol.ModCFunc, symbol.ComFunc:
		return ClassFunction, true
	case symbol.Param:
		return ClassParam, true
	case symbol.ModuleKind:
		return ClassModule, true
	case symbol.Field:
		return ClassField, true
	case symbol.PluginCmd:
		return ClassKeyword, true
	case symbol.Unknown:
		if s.HelpOpt != nil && strings.HasPrefix(s.Name, "#") {
			return ClassKeyword, true
		}
		return ClassCommand, true
	default: // Unresolved, ComInterface
		return ClassNone, false
	}
}

// lexicalClass classifies a significant token with no bound symbol by
// its own lexical kind.
func lexicalClass(k token.Kind) (TokenClass, bool) {
	switch k {
	case token.If, token.Else:
		return ClassKeyword, true
	case token.Str:
		return ClassString, true
	case token.Number, token.Char:
		return ClassNumber, true
	default:
		return ClassNone, false
	}
}

// collectPreprocKeywordSites records the start position of every
// directive-introducing Hash/Keyword token so the main loop can tag
// them ClassKeyword — these have no bound symbol of their own (the
// symbol sits on NameOpt, not on the directive word), so without this
// they would otherwise fall through unclassified.
func collectPreprocKeywordSites(stmts []syntax.Stmt, into map[span.Pos]TokenClass) {
	mark := func(tok ptoken.PToken) { into[tok.Loc().Range.Start] = ClassKeyword }

	for _, stmt := range stmts {
		switch {
		case stmt.Const != nil:
			mark(stmt.Const.Hash)
		case stmt.Define != nil:
			mark(stmt.Define.Hash)
		case stmt.Enum != nil:
			mark(stmt.Enum.Hash)
		case stmt.DefFunc != nil:
			mark(stmt.DefFunc.Hash)
			mark(stmt.DefFunc.Keyword)
			collectPreprocKeywordSites(stmt.DefFunc.Stmts, into)
		case stmt.UseLib != nil:
			mark(stmt.UseLib.Hash)
		case stmt.LibFunc != nil:
			mark(stmt.LibFunc.Hash)
			mark(stmt.LibFunc.Keyword)
		case stmt.UseCom != nil:
			mark(stmt.UseCom.Hash)
		case stmt.ComFunc != nil:
			mark(stmt.ComFunc.Hash)
		case stmt.RegCmd != nil:
			mark(stmt.RegCmd.Hash)
		case stmt.Cmd != nil:
			mark(stmt.Cmd.Hash)
		case stmt.Module != nil:
			mark(stmt.Module.Hash)
			mark(stmt.Module.Keyword)
			collectPreprocKeywordSites(stmt.Module.Stmts, into)
			if g := stmt.Module.GlobalOpt; g != nil {
				mark(g.Hash)
				mark(g.Keyword)
			}
		case stmt.Global != nil:
			mark(stmt.Global.Hash)
			mark(stmt.Global.Keyword)
		case stmt.Include != nil:
			mark(stmt.Include.Hash)
			mark(stmt.Include.Keyword)
		case stmt.Unknown != nil:
			mark(stmt.Unknown.Hash)
		}
	}
}
