// Package preproc walks one document's parsed syntax tree and collects
// the symbols its preprocessor-level declarations introduce: labels,
// #const/#define/#enum, #deffunc-family functions and their parameters,
// #func/#cfunc/#comfunc/#cmd, #usecom interfaces, and #module blocks.
// Plain statements (assignments, commands, invocations) declare nothing
// here — static-variable declaration-on-first-use is package varuse's
// job, run as a second pass once every document's symbols are known.
package preproc

import (
	"github.com/vain0x/hsp3-ginger-sub000/internal/ptoken"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/symbol"
	"github.com/vain0x/hsp3-ginger-sub000/internal/syntax"
	"github.com/vain0x/hsp3-ginger-sub000/internal/token"
)

// ModuleInfo records the source location of one #module block, keyed by
// the symbol.ModuleID minted for it.
type ModuleInfo struct {
	ID         symbol.ModuleID
	NameOpt    string
	HasName    bool
	KeywordLoc ptoken.PToken
}

// Result is everything analyze collects from one document's syntax tree.
// ModuleIDs/DefFuncIDs let a later pass (varuse) walk the same tree and
// recover the exact scope identity this pass assigned to each
// #module/#deffunc-family node, instead of re-minting IDs that would
// drift out of sync with the environments this pass populated.
type Result struct {
	Symbols    []*symbol.Symbol
	Modules    []ModuleInfo
	ModuleIDs  map[*syntax.ModuleStmt]symbol.ModuleID
	DefFuncIDs map[*syntax.DefFuncStmt]symbol.DefFuncID
}

// ctx is the mutable state threaded through the tree walk: the running
// symbol/module lists, the module registry (for Namer), and the current
// scope, which on_stmt saves and restores around #module/#deffunc
// nesting exactly as the original recursive walk does.
type ctx struct {
	symbols    []*symbol.Symbol
	modules    []ModuleInfo
	moduleIDs  map[*syntax.ModuleStmt]symbol.ModuleID
	defFuncIDs map[*syntax.DefFuncStmt]symbol.DefFuncID
	scope      symbol.LocalScope
	nextID     int64
}

// Namer returns a symbol.ModuleNamer backed by this result's module
// table, for use by later passes (varuse, workspace integration) that
// need to turn a ModuleID back into its declared name.
func (r Result) Namer() symbol.ModuleNamer {
	byID := make(map[symbol.ModuleID]string, len(r.Modules))
	for _, m := range r.Modules {
		if m.HasName {
			byID[m.ID] = m.NameOpt
		}
	}
	return func(id symbol.ModuleID) string { return byID[id] }
}

// Analyze collects the declarations in root. idBase offsets the Symbol
// IDs it mints so that multiple documents' symbols stay distinct within
// one workspace compute.
func Analyze(root *syntax.Root, idBase int64) Result {
	c := &ctx{
		nextID:     idBase,
		moduleIDs:  make(map[*syntax.ModuleStmt]symbol.ModuleID),
		defFuncIDs: make(map[*syntax.DefFuncStmt]symbol.DefFuncID),
	}
	for i := range root.Stmts {
		c.onStmt(&root.Stmts[i])
	}
	return Result{Symbols: c.symbols, Modules: c.modules, ModuleIDs: c.moduleIDs, DefFuncIDs: c.defFuncIDs}
}

func (c *ctx) newID() int64 {
	c.nextID++
	return c.nextID
}

// deffuncScope is the scope new declarations local to the current
// deffunc body (e.g. its Param slots) enter.
func (c *ctx) deffuncScope() symbol.Scope {
	return symbol.LocalScopeOf(c.scope)
}

// moduleScope is the scope module-level (not deffunc-local)
// declarations enter: the current module with no enclosing deffunc.
func (c *ctx) moduleScope() symbol.Scope {
	return symbol.LocalScopeOf(c.scope.WithoutDefFunc())
}

// privacyScopeOrLocal implements the "local unless explicitly global"
// rule used by #const/#define/#enum/#func/#cfunc/#usecom/#cmd: an
// explicit `global` privacy keyword always wins; absent that (or with
// an explicit `local`), the declaration is scoped to the current
// module.
func (c *ctx) privacyScopeOrLocal(privacy *ptoken.PToken) symbol.Scope {
	if privacy != nil && privacy.Text() == "global" {
		return symbol.GlobalScope
	}
	return c.moduleScope()
}

// privacyScopeOrGlobal implements the "global unless explicitly local"
// rule used by #deffunc-family and #comfunc declarations: an explicit
// `local` privacy keyword scopes the declaration to the current module;
// absent that (or with an explicit `global`), it is visible project-wide.
func (c *ctx) privacyScopeOrGlobal(privacy *ptoken.PToken) symbol.Scope {
	if privacy != nil && privacy.Text() == "local" {
		return c.moduleScope()
	}
	return symbol.GlobalScope
}

func (c *ctx) namer() symbol.ModuleNamer {
	return func(id symbol.ModuleID) string {
		for _, m := range c.modules {
			if m.ID == id && m.HasName {
				return m.NameOpt
			}
		}
		return ""
	}
}

func (c *ctx) addSymbol(kind symbol.Kind, leader, name ptoken.PToken, scope symbol.Scope) *symbol.Symbol {
	ns := symbol.NsForScope(scope, c.namer())
	sym := &symbol.Symbol{
		ID:        c.newID(),
		Kind:      kind,
		Name:      name.Text(),
		ScopeOpt:  scope,
		HasScope:  true,
		NsOpt:     ns,
		HasNs:     true,
		LeaderOpt: &leader,
		DefSites:  []span.Loc{name.Loc()},
	}
	c.symbols = append(c.symbols, sym)
	return sym
}

func defFuncSymbolKind(keyword string) symbol.Kind {
	switch keyword {
	case "defcfunc":
		return symbol.DefCFunc
	case "modfunc":
		return symbol.ModFunc
	case "modcfunc":
		return symbol.ModCFunc
	default: // "deffunc"
		return symbol.DefFunc
	}
}

func paramKind() symbol.Kind { return symbol.Param }

func (c *ctx) onStmt(stmt *syntax.Stmt) {
	switch {
	case stmt.Label != nil:
		s := stmt.Label
		if s.NameOpt != nil {
			c.addSymbol(symbol.Label, s.Star, *s.NameOpt, c.moduleScope())
		}

	case stmt.Assign != nil, stmt.Command != nil, stmt.Invoke != nil:
		// Handled by package varuse, not here.

	case stmt.Const != nil:
		s := stmt.Const
		if s.NameOpt != nil {
			c.addSymbol(symbol.Const, s.Hash, *s.NameOpt, c.privacyScopeOrLocal(s.PrivacyOpt))
		}

	case stmt.Define != nil:
		s := stmt.Define
		if s.NameOpt != nil {
			sym := c.addSymbol(symbol.Macro, s.Hash, *s.NameOpt, c.privacyScopeOrLocal(s.PrivacyOpt))
			sym.CType = s.CTypeOpt != nil
		}

	case stmt.Enum != nil:
		s := stmt.Enum
		if s.NameOpt != nil {
			c.addSymbol(symbol.Enum, s.Hash, *s.NameOpt, c.privacyScopeOrLocal(s.PrivacyOpt))
		}

	case stmt.DefFunc != nil:
		c.onDefFuncStmt(stmt.DefFunc)

	case stmt.UseLib != nil:
		// No symbol; #uselib only loads a DLL.

	case stmt.LibFunc != nil:
		s := stmt.LibFunc
		if s.NameOpt != nil && s.OnExitOpt == nil {
			c.addSymbol(symbol.LibFunc, s.Hash, *s.NameOpt, c.privacyScopeOrLocal(s.PrivacyOpt))
		}

	case stmt.UseCom != nil:
		s := stmt.UseCom
		if s.NameOpt != nil {
			c.addSymbol(symbol.ComInterface, s.Hash, *s.NameOpt, c.privacyScopeOrLocal(nil))
		}

	case stmt.ComFunc != nil:
		s := stmt.ComFunc
		if s.NameOpt != nil {
			c.addSymbol(symbol.ComFunc, s.Hash, *s.NameOpt, c.privacyScopeOrGlobal(s.PrivacyOpt))
		}

	case stmt.RegCmd != nil:
		// No symbol.

	case stmt.Cmd != nil:
		s := stmt.Cmd
		if s.NameOpt != nil {
			c.addSymbol(symbol.PluginCmd, s.Hash, *s.NameOpt, c.privacyScopeOrLocal(s.PrivacyOpt))
		}

	case stmt.Module != nil:
		c.onModuleStmt(stmt.Module)

	case stmt.Global != nil, stmt.Include != nil, stmt.Unknown != nil:
		// No symbol; #global is handled structurally by the module walk
		// that encounters it, #include/#addition feed includegraph, and
		// an unmodeled directive (#if/#ifndef/...) declares nothing.
	}
}

func (c *ctx) onDefFuncStmt(s *syntax.DefFuncStmt) {
	kind := defFuncSymbolKind(s.Keyword.Text())
	var defFuncSym *symbol.Symbol
	if s.NameOpt != nil && s.OnExitOpt == nil {
		defFuncSym = c.addSymbol(kind, s.Hash, *s.NameOpt, c.privacyScopeOrGlobal(s.PrivacyOpt))
	}

	parentScope := c.scope
	// DefFuncID is minted from the running symbol count so it stays
	// distinct from ModuleID without a separate counter; only its
	// identity (not its value) is ever compared. Recorded by node
	// pointer so varuse's later walk over the same tree can recover it.
	c.scope.DefFunc = symbol.DefFuncID(c.newID())
	c.defFuncIDs[s] = c.scope.DefFunc

	var signature []symbol.ParamSig
	for _, param := range s.Params {
		sig := symbol.ParamSig{}
		if param.ParamTyOpt != nil {
			sig.ParamTypeOpt = param.ParamTyOpt.Text()
		}
		if param.NameOpt != nil {
			sig.NameOpt = param.NameOpt.Text()
			sym := c.addSymbol(paramKind(), s.Hash, *param.NameOpt, c.deffuncScope())
			sym.ParamTypeOpt = sig.ParamTypeOpt
		}
		signature = append(signature, sig)
	}
	if defFuncSym != nil {
		defFuncSym.SignatureOpt = signature
	}

	for _, inner := range s.Stmts {
		c.onStmt(&inner)
	}

	c.scope = parentScope
}

func (c *ctx) onModuleStmt(s *syntax.ModuleStmt) {
	id := symbol.ModuleID(c.newID())
	c.moduleIDs[s] = id
	info := ModuleInfo{ID: id, KeywordLoc: s.Keyword}

	if s.NameOpt != nil {
		info.HasName = true
		info.NameOpt = s.NameOpt.Text()
		// A quoted module name (`#module "..."`) is parsed but, per the
		// original FIXME, never registered as a symbol even when its
		// text would be a valid identifier; only the bare Ident form is.
		if s.NameOpt.Kind() == token.Ident {
			c.addSymbol(symbol.ModuleKind, s.Hash, *s.NameOpt, symbol.GlobalScope)
		}
	}
	c.modules = append(c.modules, info)

	parentScope := c.scope
	c.scope = symbol.LocalScope{Module: id}

	for _, inner := range s.Stmts {
		c.onStmt(&inner)
	}
	if s.GlobalOpt != nil {
		// #global ends the module body; nothing to register for it.
	}

	c.scope = parentScope
}
