package preproc

import (
	"testing"

	"github.com/vain0x/hsp3-ginger-sub000/internal/parser"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/symbol"
)

func analyzeText(t *testing.T, text string) Result {
	t.Helper()
	root, _ := parser.Parse(span.DocID(1), text)
	return Analyze(root, 0)
}

func findSymbol(r Result, name string) (*symbol.Symbol, bool) {
	for _, s := range r.Symbols {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

func TestAnalyzeLabel(t *testing.T) {
	r := analyzeText(t, "*foo\n")
	sym, ok := findSymbol(r, "foo")
	if !ok {
		t.Fatal("label symbol not collected")
	}
	if sym.Kind != symbol.Label {
		t.Errorf("kind = %v, want Label", sym.Kind)
	}
	if !sym.HasScope || sym.ScopeOpt.Global {
		t.Errorf("toplevel label should be module-scoped local, got %+v", sym.ScopeOpt)
	}
}

func TestAnalyzeDeffuncDefaultsGlobal(t *testing.T) {
	r := analyzeText(t, "#deffunc foo int a, int b\n\treturn\n")
	sym, ok := findSymbol(r, "foo")
	if !ok {
		t.Fatal("deffunc symbol not collected")
	}
	if sym.Kind != symbol.DefFunc {
		t.Errorf("kind = %v, want DefFunc", sym.Kind)
	}
	if !sym.HasScope || !sym.ScopeOpt.Global {
		t.Errorf("deffunc without explicit privacy should default to Global, got %+v", sym.ScopeOpt)
	}

	a, ok := findSymbol(r, "a")
	if !ok {
		t.Fatal("param a not collected")
	}
	if a.Kind != symbol.Param || a.ParamTypeOpt != "int" {
		t.Errorf("param a = %+v, want Kind=Param ParamTypeOpt=int", a)
	}
	if a.HasScope && a.ScopeOpt.Global {
		t.Errorf("a param must be local to its deffunc, not global")
	}
}

func TestAnalyzeDeffuncLocalPrivacy(t *testing.T) {
	r := analyzeText(t, "#deffunc local foo\n\treturn\n")
	sym, _ := findSymbol(r, "foo")
	if !sym.HasScope || sym.ScopeOpt.Global {
		t.Errorf("explicit local privacy must not resolve to Global, got %+v", sym.ScopeOpt)
	}
}

func TestAnalyzeDefineDefaultsLocal(t *testing.T) {
	r := analyzeText(t, "#define FOO 1\n")
	sym, ok := findSymbol(r, "FOO")
	if !ok {
		t.Fatal("macro symbol not collected")
	}
	if sym.Kind != symbol.Macro {
		t.Errorf("kind = %v, want Macro", sym.Kind)
	}
	if sym.CType {
		t.Error("CType should be false without ctype keyword")
	}
	if !sym.HasScope || sym.ScopeOpt.Global {
		t.Errorf("#define without explicit privacy should default to module-local, got %+v", sym.ScopeOpt)
	}
}

func TestAnalyzeDefineGlobalCtype(t *testing.T) {
	r := analyzeText(t, "#define global ctype BAR(%1) (%1 + 1)\n")
	sym, ok := findSymbol(r, "BAR")
	if !ok {
		t.Fatal("macro symbol not collected")
	}
	if !sym.CType {
		t.Error("CType should be true")
	}
	if !sym.HasScope || !sym.ScopeOpt.Global {
		t.Errorf("explicit global privacy should resolve to Global, got %+v", sym.ScopeOpt)
	}
}

func TestAnalyzeModuleScopesMembers(t *testing.T) {
	r := analyzeText(t, "#module m\n#deffunc local f\n\treturn\n#global\n")

	mod, ok := findSymbol(r, "m")
	if !ok || mod.Kind != symbol.ModuleKind {
		t.Fatal("module symbol not collected")
	}

	f, ok := findSymbol(r, "f")
	if !ok {
		t.Fatal("f not collected")
	}
	if f.HasScope && f.ScopeOpt.Global {
		t.Error("f declared local inside #module m should not be Global")
	}
	if !f.HasNs || f.NsOpt != "m" {
		t.Errorf("f should index under namespace \"m\", got %q (HasNs=%v)", f.NsOpt, f.HasNs)
	}
}

func TestAnalyzeQuotedModuleNameNotRegistered(t *testing.T) {
	r := analyzeText(t, "#module \"m\"\n#global\n")
	if _, ok := findSymbol(r, "m"); ok {
		t.Error("a quoted #module name must not be registered as a symbol")
	}
	if len(r.Modules) != 1 {
		t.Fatalf("expected one module recorded, got %d", len(r.Modules))
	}
}

func TestAnalyzeAssignCommandInvokeDeclareNothing(t *testing.T) {
	r := analyzeText(t, "a = 1\nmes a\nobj->method 1\n")
	if len(r.Symbols) != 0 {
		t.Errorf("plain statements should declare no preproc symbols, got %d", len(r.Symbols))
	}
}
