// Package diagnose runs the second-pass semantic linter described by
// SPEC_FULL's error-handling design: it walks each active document's
// tree once more against the use-site map workspace.Compute already
// built, flagging a command name that never resolved (Undefined) and an
// argument bound to a by-ref parameter that is provably not an l-value
// (VarRequired). It also surfaces the parser's own recovery points
// (skipped tokens) as syntax lints. Neither pass mutates anything; both
// read a workspace.Project's already-computed Symbols.
package diagnose

import (
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/symbol"
	"github.com/vain0x/hsp3-ginger-sub000/internal/syntax"
	"github.com/vain0x/hsp3-ginger-sub000/internal/workspace"
)

// Kind is a semantic diagnostic's classification.
type Kind int

const (
	Undefined Kind = iota
	VarRequired
)

func (k Kind) String() string {
	switch k {
	case Undefined:
		return "Undefined"
	case VarRequired:
		return "VarRequired"
	default:
		return "Unknown"
	}
}

// Diagnostic is one semantic finding: severity is always error, per
// SPEC_FULL §7.
type Diagnostic struct {
	Kind Kind
	Loc  span.Loc
}

// LintKind classifies a syntax-level (non-semantic) finding.
type LintKind int

const (
	SkippedToken LintKind = iota
)

func (k LintKind) String() string {
	switch k {
	case SkippedToken:
		return "SkippedToken"
	default:
		return "Unknown"
	}
}

// Lint is one syntax-level finding: severity is always warning.
type Lint struct {
	Kind LintKind
	Loc  span.Loc
}

// DiagnoseSyntaxLints reports every token the parser could not attach
// to a tree node, for every active doc in roots.
func DiagnoseSyntaxLints(roots map[span.DocID]*syntax.Root, active map[span.DocID]bool) []Lint {
	var out []Lint
	for doc, root := range roots {
		if !active[doc] || root == nil {
			continue
		}
		for _, tok := range root.Skipped {
			out = append(out, Lint{Kind: SkippedToken, Loc: tok.Loc()})
		}
	}
	return out
}

// useSiteMap maps a use-site's starting position, within one doc, back
// to the symbol it resolved to.
type useSiteMap map[span.Loc]*symbol.Symbol

func buildUseSiteMap(p *workspace.Project) useSiteMap {
	m := make(useSiteMap)
	for _, s := range p.Symbols {
		for _, loc := range s.UseSites {
			m[span.Loc{Doc: loc.Doc, Range: span.Range{Start: loc.Range.Start}}] = s
		}
	}
	return m
}

func (m useSiteMap) lookup(doc span.DocID, pos span.Pos) (*symbol.Symbol, bool) {
	s, ok := m[span.Loc{Doc: doc, Range: span.Range{Start: pos}}]
	return s, ok
}

// DiagnosePrecisely runs the semantic linter over every active doc's
// tree in roots, using p's already-resolved use-sites.
func DiagnosePrecisely(p *workspace.Project, roots map[span.DocID]*syntax.Root) []Diagnostic {
	sites := buildUseSiteMap(p)

	var out []Diagnostic
	for doc, root := range roots {
		if !p.ActiveDocs[doc] || root == nil {
			continue
		}
		ctx := &linter{doc: doc, sites: sites}
		for i := range root.Stmts {
			ctx.onStmt(&root.Stmts[i])
		}
		out = append(out, ctx.diagnostics...)
	}
	return out
}

type linter struct {
	doc         span.DocID
	sites       useSiteMap
	diagnostics []Diagnostic
}

func (c *linter) onStmt(stmt *syntax.Stmt) {
	switch {
	case stmt.Command != nil:
		c.onCommand(stmt.Command)
	case stmt.DefFunc != nil:
		for i := range stmt.DefFunc.Stmts {
			c.onStmt(&stmt.DefFunc.Stmts[i])
		}
	case stmt.Module != nil:
		for i := range stmt.Module.Stmts {
			c.onStmt(&stmt.Module.Stmts[i])
		}
	}
}

func (c *linter) onCommand(stmt *syntax.CommandStmt) {
	loc := stmt.Name.Loc()
	sym, ok := c.sites.lookup(c.doc, loc.Range.Start)
	if !ok {
		c.diagnostics = append(c.diagnostics, Diagnostic{Kind: Undefined, Loc: loc})
		return
	}

	for i, arg := range stmt.Args {
		if i >= len(sym.SignatureOpt) {
			break
		}
		if !isByRefParamType(sym.SignatureOpt[i].ParamTypeOpt) {
			continue
		}
		if !argIsDefinitelyRval(arg, c.doc, c.sites) {
			continue
		}
		argLoc := loc
		if arg.ExprOpt != nil {
			if r, ok := exprRange(arg.ExprOpt); ok {
				argLoc = span.Loc{Doc: c.doc, Range: r}
			}
		}
		c.diagnostics = append(c.diagnostics, Diagnostic{Kind: VarRequired, Loc: argLoc})
	}
}

func isByRefParamType(t string) bool {
	switch t {
	case "var", "array", "modvar", "local":
		return true
	default:
		return false
	}
}

// argIsDefinitelyRval reports whether arg can only ever be a value, not
// something assignable: a literal, an arithmetic expression, or a
// compound whose name resolves to a symbol kind that is never
// assignable (a label, constant, or callable). A compound resolving to
// a variable-like symbol (or to nothing) is not flagged, since it might
// be a valid l-value the analysis simply couldn't pin down.
func argIsDefinitelyRval(arg syntax.Arg, doc span.DocID, sites useSiteMap) bool {
	expr := arg.ExprOpt
	for expr != nil {
		switch {
		case expr.Compound != nil:
			sym, ok := sites.lookup(doc, expr.Compound.Name.Loc().Range.Start)
			if !ok {
				return false
			}
			return symbolKindIsDefinitelyRval(sym)
		case expr.Group != nil:
			expr = expr.Group.Body
		default:
			return true
		}
	}
	return false
}

func symbolKindIsDefinitelyRval(sym *symbol.Symbol) bool {
	switch sym.Kind {
	case symbol.Label, symbol.Const, symbol.Enum,
		symbol.DefFunc, symbol.DefCFunc, symbol.ModFunc, symbol.ModCFunc,
		symbol.ComInterface, symbol.ComFunc:
		return true
	case symbol.Param:
		return sym.ParamTypeOpt != "" && !isByRefParamType(sym.ParamTypeOpt)
	default:
		return false
	}
}

func exprRange(e *syntax.Expr) (span.Range, bool) {
	switch {
	case e.Literal != nil:
		return e.Literal.Loc().Range, true
	case e.Label != nil:
		return e.Label.Star.Loc().Range, true
	case e.Compound != nil:
		return e.Compound.Name.Loc().Range, true
	case e.Group != nil:
		return e.Group.LeftParen.Loc().Range, true
	case e.Prefix != nil:
		return e.Prefix.Minus.Loc().Range, true
	case e.Infix != nil:
		return e.Infix.Op.Loc().Range, true
	default:
		return span.Range{}, false
	}
}
