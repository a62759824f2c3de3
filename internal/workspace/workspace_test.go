package workspace

import (
	"testing"

	"github.com/vain0x/hsp3-ginger-sub000/internal/includegraph"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
)

// The fixture mirrors hsp3-analyzer-mini's reachability test:
//
//	main        -> mod_x
//	mod_x_tests -> mod_x
//	isolation      (no edges)
//
// mod_x declares deffunc f; mod_x_tests declares test_main (which calls
// f); main declares app_main (which also calls f); isolation stands
// alone. Reachability should let main and mod_x_tests each see f
// without seeing each other's private deffunc.
const (
	modX span.DocID = iota + 1
	modXTests
	main
	isolation
)

func namesByPath(path string) (span.DocID, bool) {
	switch path {
	case "mod_x.hsp":
		return modX, true
	default:
		return 0, false
	}
}

func newFixture(t *testing.T) *Workspace {
	t.Helper()
	w := New(nil)
	w.SetHost(Host{Resolver: includegraph.ResolverFunc(func(_ span.DocID, name string) (span.DocID, bool) {
		return namesByPath(name)
	})})

	w.UpdateDoc(modX, "#module\n#deffunc f int a, str b\n\treturn\n#global\n")
	w.UpdateDoc(modXTests, "#include \"mod_x.hsp\"\n\n#module\n#deffunc test_main\n\tf 0, 0\n\treturn\n#global\n\n\ttest_main\n")
	w.UpdateDoc(main, "#include \"mod_x.hsp\"\n\n#module\n#deffunc app_main\n\tf 1, 1\n\treturn\n#global\n\n\tapp_main\n")
	w.UpdateDoc(isolation, "#module\n#deffunc isolated_f\n#global\n\n\tisolated_f\n")
	return w
}

func symbolNames(p *Project) map[string]bool {
	out := map[string]bool{}
	for _, s := range p.Symbols {
		out[s.Name] = true
	}
	return out
}

func TestDefaultProjectCoversEveryDoc(t *testing.T) {
	w := newFixture(t)
	p := w.DefaultProject()

	for _, doc := range []span.DocID{modX, modXTests, main, isolation} {
		if !p.ActiveDocs[doc] {
			t.Errorf("doc %d should be active in the default project", doc)
		}
	}
}

func TestProjectForModXTestsSeesFButNotMain(t *testing.T) {
	w := newFixture(t)
	// An explicit project rooted at mod_x_tests: forward reaches mod_x,
	// and nothing reaches main from here.
	w.SetHost(Host{
		Resolver:    includegraph.ResolverFunc(func(_ span.DocID, name string) (span.DocID, bool) { return namesByPath(name) }),
		Entrypoints: []span.DocID{modXTests},
	})
	w.UpdateDoc(modX, "#module\n#deffunc f int a, str b\n\treturn\n#global\n")
	w.UpdateDoc(modXTests, "#include \"mod_x.hsp\"\n\n#module\n#deffunc test_main\n\tf 0, 0\n\treturn\n#global\n\n\ttest_main\n")
	w.UpdateDoc(main, "#include \"mod_x.hsp\"\n\n#module\n#deffunc app_main\n\tf 1, 1\n\treturn\n#global\n\n\tapp_main\n")
	w.UpdateDoc(isolation, "#module\n#deffunc isolated_f\n#global\n\n\tisolated_f\n")

	p := w.ProjectForDoc(modXTests)
	if p.ActiveDocs[main] {
		t.Error("main should not be active in a project rooted at mod_x_tests")
	}
	if !p.ActiveDocs[modX] || !p.ActiveDocs[modXTests] {
		t.Error("mod_x and mod_x_tests should both be active")
	}

	names := symbolNames(p)
	if !names["f"] || !names["test_main"] {
		t.Errorf("expected f and test_main among symbols, got %v", names)
	}
	if names["app_main"] {
		t.Error("app_main belongs to main, which isn't active here")
	}
}

func TestIsolationDocIsIsolatedInExplicitProject(t *testing.T) {
	w := New(nil)
	w.SetHost(Host{
		Resolver:    includegraph.ResolverFunc(func(_ span.DocID, name string) (span.DocID, bool) { return namesByPath(name) }),
		Entrypoints: []span.DocID{isolation},
	})
	w.UpdateDoc(modX, "#module\n#deffunc f int a, str b\n\treturn\n#global\n")
	w.UpdateDoc(main, "#include \"mod_x.hsp\"\n\n#module\n#deffunc app_main\n\tf 1, 1\n\treturn\n#global\n\n\tapp_main\n")
	w.UpdateDoc(isolation, "#module\n#deffunc isolated_f\n#global\n\n\tisolated_f\n")

	p := w.ProjectForDoc(isolation)
	if len(p.ActiveDocs) != 1 || !p.ActiveDocs[isolation] {
		t.Errorf("isolation should only see itself, got %v", p.ActiveDocs)
	}
}

func TestCrossDocCallResolvesToSameSymbol(t *testing.T) {
	w := newFixture(t)
	p := w.DefaultProject()

	// f is declared in mod_x and used (as a command) from both
	// mod_x_tests and main; preproc registers the command symbol on
	// declaration, so every call site should share it.
	var f *struct{ defSites, useSites int }
	for _, s := range p.Symbols {
		if s.Name == "f" {
			f = &struct{ defSites, useSites int }{len(s.DefSites), len(s.UseSites)}
		}
	}
	if f == nil {
		t.Fatal("expected a symbol named f")
	}
	if f.defSites != 1 {
		t.Errorf("expected exactly one def-site for f, got %d", f.defSites)
	}
	if f.useSites != 2 {
		t.Errorf("expected the mod_x_tests and main call sites as use-sites of f, got %d", f.useSites)
	}
}
