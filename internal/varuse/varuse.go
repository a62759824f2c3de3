// Package varuse runs the second per-document tree walk: it resolves
// every Ident occurrence against the envs preproc built, records
// def-sites and use-sites directly on the matched *symbol.Symbol, and
// declares a fresh StaticVar the first time an assignment target or a
// dim-family command's first argument names something not yet visible.
//
// Unlike a reference-counted design, a Symbol here is a plain pointer
// shared across every doc in the workspace: recording an occurrence is
// just appending to that pointer's DefSites/UseSites, with no separate
// (doc, index) handle needed to tell same-doc and cross-doc occurrences
// apart.
package varuse

import (
	"github.com/vain0x/hsp3-ginger-sub000/internal/ptoken"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/symbol"
	"github.com/vain0x/hsp3-ginger-sub000/internal/syntax"
)

// dimFamily are the commands whose first argument declares (rather than
// uses) a variable, when that argument is itself a bare/paren/dotted
// name rather than some other expression.
var dimFamily = map[string]bool{
	"ldim": true, "sdim": true, "ddim": true, "dim": true, "dimtype": true,
	"newlab": true, "newmod": true, "dup": true, "dupptr": true, "mref": true,
}

// Ctx threads the workspace-wide environments and the current local
// scope through the walk. NewID mints Symbol IDs from the same counter
// the rest of the compute uses, so every symbol in a compute has a
// distinct ID regardless of which doc's walk created it.
type Ctx struct {
	Doc       span.DocID
	Scope     symbol.LocalScope
	Namer     symbol.ModuleNamer
	Public    *symbol.PublicEnv
	NsEnvs    *symbol.NsEnvs
	LocalEnvs *symbol.LocalEnvs
	NewID     func() int64

	// ModuleIDs/DefFuncIDs are the exact IDs preproc.Analyze minted for
	// this same tree's #module/#deffunc-family nodes. Reusing them
	// (instead of minting fresh ones here) is required: this walk's
	// LocalScope values must match the keys preproc used when it
	// populated LocalEnvs/NsEnvs, or every lookup here would miss.
	ModuleIDs  map[*syntax.ModuleStmt]symbol.ModuleID
	DefFuncIDs map[*syntax.DefFuncStmt]symbol.DefFuncID

	// New collects every symbol this walk declared, in declaration
	// order, for the caller to fold into its doc-symbols bookkeeping.
	// Most are Kind StaticVar; an undeclared non-variable occurrence
	// (e.g. an unknown command name) still mints a placeholder Symbol
	// here with Kind Unresolved, so later occurrences of the same name
	// resolve to it instead of minting a second placeholder.
	New []*symbol.Symbol
}

func (c *Ctx) moduleScope() symbol.LocalScope { return c.Scope.WithoutDefFunc() }

// declareOrRecord resolves name; if a visible symbol already exists, it
// appends loc to the right occurrence list on it (DefSites when isDef,
// else UseSites), otherwise it declares a fresh symbol at module scope:
// a StaticVar when isVar, else an Unresolved placeholder.
func (c *Ctx) declareOrRecord(name ptoken.PToken, isDef, isVar bool) {
	text := name.Text()
	loc := name.Loc()

	if sym, ok := symbol.ResolveImplicit(text, c.Scope, c.Namer, c.Public, c.NsEnvs, c.LocalEnvs); ok {
		if isDef {
			sym.DefSites = append(sym.DefSites, loc)
		} else {
			sym.UseSites = append(sym.UseSites, loc)
		}
		return
	}

	// Not yet visible: declare a fresh symbol. A variable occurrence
	// (assignment target, dim-family first arg, or a plain Ident in an
	// expression) becomes a StaticVar at module scope; anything else
	// (an undeclared command name, an undeclared label use) still gets
	// a placeholder Symbol, but Kind Unresolved, so occurrence-tracking
	// features have something to attach the use-site to even though no
	// declaration exists.
	kind := symbol.Unresolved
	if isVar {
		kind = symbol.StaticVar
	}

	triple := symbol.ResolveForDef(text, symbol.DefLocal, c.moduleScope(), c.Namer)
	sym := &symbol.Symbol{
		ID:        c.NewID(),
		Kind:      kind,
		Name:      triple.Basename,
		ScopeOpt:  triple.ScopeOpt,
		HasScope:  triple.HasScope,
		NsOpt:     triple.NsOpt,
		HasNs:     triple.HasNs,
		LeaderOpt: &name,
	}
	if isDef {
		sym.DefSites = append(sym.DefSites, loc)
	} else {
		sym.UseSites = append(sym.UseSites, loc)
	}
	symbol.ImportSymbolToEnv(sym, triple, c.Public, c.LocalEnvs, c.NsEnvs)
	c.New = append(c.New, sym)
}

func (c *Ctx) onSymbolUse(name ptoken.PToken, isVar bool) { c.declareOrRecord(name, false, isVar) }
func (c *Ctx) onSymbolDef(name ptoken.PToken)             { c.declareOrRecord(name, true, true) }

func (c *Ctx) onCompoundDef(comp *syntax.Compound) {
	c.onSymbolDef(comp.Name)
	for _, arg := range comp.Args {
		c.onExprOpt(arg.ExprOpt)
	}
	for _, dot := range comp.Dots {
		c.onExprOpt(dot.ExprOpt)
	}
}

func (c *Ctx) onCompoundUse(comp *syntax.Compound) {
	c.onSymbolUse(comp.Name, true)
	for _, arg := range comp.Args {
		c.onExprOpt(arg.ExprOpt)
	}
	for _, dot := range comp.Dots {
		c.onExprOpt(dot.ExprOpt)
	}
}

func (c *Ctx) onExprOpt(expr *syntax.Expr) {
	if expr != nil {
		c.onExpr(expr)
	}
}

func (c *Ctx) onExpr(expr *syntax.Expr) {
	switch {
	case expr.Literal != nil:
		// Nothing to resolve.
	case expr.Label != nil:
		if expr.Label.NameOpt != nil {
			c.onSymbolUse(*expr.Label.NameOpt, false)
		}
	case expr.Compound != nil:
		c.onCompoundUse(expr.Compound)
	case expr.Group != nil:
		c.onExprOpt(expr.Group.Body)
	case expr.Prefix != nil:
		c.onExprOpt(expr.Prefix.Arg)
	case expr.Infix != nil:
		c.onExpr(expr.Infix.Left)
		c.onExprOpt(expr.Infix.RightOpt)
	}
}

func (c *Ctx) onArgs(args []syntax.Arg) {
	for _, arg := range args {
		c.onExprOpt(arg.ExprOpt)
	}
}

// OnStmt walks one statement, recursing into #deffunc/#module bodies
// with the scope adjusted the same way preproc.Analyze does.
func (c *Ctx) OnStmt(stmt *syntax.Stmt) {
	switch {
	case stmt.Label != nil:
		// Already declared by preproc; nothing to do here.

	case stmt.Assign != nil:
		s := stmt.Assign
		// Which operator was used can in principle change whether this
		// is a pure def or a def+use (e.g. `+=` reads before writing);
		// this walk always treats the LHS as a def, matching the
		// original's simplified treatment.
		c.onCompoundDef(&s.Left)
		c.onArgs(s.Args)

	case stmt.Command != nil:
		s := stmt.Command
		c.onSymbolUse(s.Name, false)

		args := s.Args
		if dimFamily[s.Name.Text()] && len(args) > 0 && args[0].ExprOpt != nil && args[0].ExprOpt.Compound != nil {
			c.onCompoundDef(args[0].ExprOpt.Compound)
			args = args[1:]
		}
		c.onArgs(args)

	case stmt.Invoke != nil:
		s := stmt.Invoke
		c.onCompoundUse(&s.Left)
		c.onExprOpt(s.MethodOpt)
		c.onArgs(s.Args)

	case stmt.DefFunc != nil:
		s := stmt.DefFunc
		parent := c.Scope
		c.Scope.DefFunc = c.DefFuncIDs[s]
		for i := range s.Stmts {
			c.OnStmt(&s.Stmts[i])
		}
		c.Scope = parent

	case stmt.Module != nil:
		s := stmt.Module
		parent := c.Scope
		c.Scope = symbol.LocalScope{Module: c.ModuleIDs[s]}
		for i := range s.Stmts {
			c.OnStmt(&s.Stmts[i])
		}
		c.Scope = parent

	case stmt.Const != nil, stmt.Define != nil, stmt.Enum != nil,
		stmt.UseLib != nil, stmt.LibFunc != nil, stmt.UseCom != nil,
		stmt.ComFunc != nil, stmt.RegCmd != nil, stmt.Cmd != nil,
		stmt.Global != nil, stmt.Include != nil, stmt.Unknown != nil:
		// Already fully handled by preproc; no variable occurrences here.
	}
}

// Analyze walks root and returns every symbol it newly declared
// (StaticVar and Unresolved placeholders alike). doc and
// the public/ns/local envs must already carry every active doc's
// preproc symbols (workspace.compute's step before this one); moduleIDs
// and defFuncIDs must be the same maps preproc.Analyze returned for
// this exact root.
func Analyze(root *syntax.Root, doc span.DocID, namer symbol.ModuleNamer, public *symbol.PublicEnv, nsEnvs *symbol.NsEnvs, localEnvs *symbol.LocalEnvs, moduleIDs map[*syntax.ModuleStmt]symbol.ModuleID, defFuncIDs map[*syntax.DefFuncStmt]symbol.DefFuncID, newID func() int64) []*symbol.Symbol {
	c := &Ctx{
		Doc: doc, Namer: namer, Public: public, NsEnvs: nsEnvs, LocalEnvs: localEnvs,
		ModuleIDs: moduleIDs, DefFuncIDs: defFuncIDs, NewID: newID,
	}
	for i := range root.Stmts {
		c.OnStmt(&root.Stmts[i])
	}
	return c.New
}
