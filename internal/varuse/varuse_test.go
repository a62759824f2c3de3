package varuse

import (
	"testing"

	"github.com/vain0x/hsp3-ginger-sub000/internal/parser"
	"github.com/vain0x/hsp3-ginger-sub000/internal/preproc"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/symbol"
)

// seed imports every preproc-collected symbol into the envs it belongs
// to, the same way workspace.compute's step 4.c would.
func seed(symbols []*symbol.Symbol, public *symbol.PublicEnv, nsEnvs *symbol.NsEnvs, localEnvs *symbol.LocalEnvs) {
	for _, sym := range symbols {
		triple := symbol.NameScopeNs{
			Basename: sym.Name,
			ScopeOpt: sym.ScopeOpt, HasScope: sym.HasScope,
			NsOpt: sym.NsOpt, HasNs: sym.HasNs,
		}
		symbol.ImportSymbolToEnv(sym, triple, public, localEnvs, nsEnvs)
	}
}

func analyze(t *testing.T, text string) (preproc.Result, []*symbol.Symbol, *symbol.PublicEnv, *symbol.NsEnvs, *symbol.LocalEnvs) {
	t.Helper()
	root, _ := parser.Parse(span.DocID(1), text)
	pre := preproc.Analyze(root, 0)

	public := symbol.NewPublicEnv()
	nsEnvs := symbol.NewNsEnvs()
	localEnvs := symbol.NewLocalEnvs()
	seed(pre.Symbols, public, nsEnvs, localEnvs)

	nextID := int64(len(pre.Symbols))
	newID := func() int64 { nextID++; return nextID }

	statics := Analyze(root, span.DocID(1), pre.Namer(), public, nsEnvs, localEnvs, pre.ModuleIDs, pre.DefFuncIDs, newID)
	return pre, statics, public, nsEnvs, localEnvs
}

// staticVars filters New down to the newly declared StaticVar symbols,
// excluding the Unresolved placeholders minted for undeclared
// non-variable occurrences (e.g. unknown command names like `return`).
func staticVars(all []*symbol.Symbol) []*symbol.Symbol {
	var out []*symbol.Symbol
	for _, s := range all {
		if s.Kind == symbol.StaticVar {
			out = append(out, s)
		}
	}
	return out
}

func TestFirstAssignDeclaresStaticVar(t *testing.T) {
	_, statics, _, _, _ := analyze(t, "s = 1\n")
	if len(statics) != 1 {
		t.Fatalf("expected one new StaticVar, got %d", len(statics))
	}
	sym := statics[0]
	if sym.Kind != symbol.StaticVar || sym.Name != "s" {
		t.Errorf("got %+v, want Kind=StaticVar Name=s", sym)
	}
	if len(sym.DefSites) != 1 {
		t.Errorf("expected one def-site, got %d", len(sym.DefSites))
	}
}

func TestSecondAssignReusesStaticVar(t *testing.T) {
	_, statics, _, _, _ := analyze(t, "s = 1\ns = 2\n")
	if len(statics) != 1 {
		t.Fatalf("expected exactly one declared StaticVar across both assigns, got %d", len(statics))
	}
	if len(statics[0].DefSites) != 2 {
		t.Errorf("expected two def-sites on the shared symbol, got %d", len(statics[0].DefSites))
	}
}

func TestSdimFirstArgIsDef(t *testing.T) {
	_, all, _, _, _ := analyze(t, "sdim s, 256\n")
	// `sdim` itself is an unknown command name here (no help-catalog
	// builtin is wired into this unit test), so it also mints an
	// Unresolved placeholder alongside the StaticVar for s.
	statics := staticVars(all)
	if len(statics) != 1 || statics[0].Name != "s" {
		t.Fatalf("sdim should declare s as a StaticVar, got %+v", statics)
	}
}

func TestUseOfDeffuncParamResolvesNotDeclared(t *testing.T) {
	_, all, _, _, _ := analyze(t, "#deffunc foo int a\n\tb = a\n\treturn\n")
	// a resolves to the existing Param; only b should be newly declared
	// as a StaticVar (the unknown `return` command also mints an
	// Unresolved placeholder, which this test isn't concerned with).
	statics := staticVars(all)
	if len(statics) != 1 || statics[0].Name != "b" {
		t.Fatalf("expected only b to be newly declared, got %+v", statics)
	}
}

func TestModuleLocalVarNotVisibleOutsideModule(t *testing.T) {
	_, statics, _, _, _ := analyze(t, "#module m\n\ts = 1\n#global\ns = 2\n")
	if len(statics) != 2 {
		t.Fatalf("expected two distinct StaticVars (one per scope), got %d", len(statics))
	}
	if statics[0].Name != "s" || statics[1].Name != "s" {
		t.Fatalf("both should be named s, got %+v", statics)
	}
	if statics[0].ScopeOpt == statics[1].ScopeOpt {
		t.Error("the module-scoped s and the toplevel s must not share a scope")
	}
}
