package includegraph

import (
	"testing"

	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
)

// The fixture mirrors the mod_x/mod_x_tests/main/isolation scenario:
//
//	main        -> mod_x
//	mod_x_tests -> mod_x
//	isolation      (no edges)
func fixture() *Graph {
	const (
		modX span.DocID = iota + 1
		modXTests
		main
		isolation
	)
	_ = isolation
	return Build([]Edge{
		{From: main, To: modX},
		{From: modXTests, To: modX},
	})
}

func TestActiveDocsFromModX(t *testing.T) {
	g := fixture()
	const modX span.DocID = 1
	active := g.ActiveDocs(modX)
	// mod_x is reachable from itself; main and mod_x_tests both include
	// it, so they're backward-reachable; isolation has no path.
	for _, doc := range []span.DocID{1, 2, 3} {
		if !active[doc] {
			t.Errorf("doc %d should be active from mod_x, got %v", doc, active)
		}
	}
	if active[4] {
		t.Error("isolation should not be active from mod_x")
	}
}

func TestActiveDocsFromMain(t *testing.T) {
	g := fixture()
	const main span.DocID = 3
	active := g.ActiveDocs(main)
	// main can only reach mod_x forward; it has no path to mod_x_tests.
	if !active[3] || !active[1] {
		t.Errorf("main and mod_x should be active, got %v", active)
	}
	if active[2] {
		t.Error("mod_x_tests should not be reachable from main")
	}
}

func TestActiveDocsFromModXTests(t *testing.T) {
	g := fixture()
	const modXTests span.DocID = 2
	active := g.ActiveDocs(modXTests)
	if !active[2] || !active[1] {
		t.Errorf("mod_x_tests and mod_x should be active, got %v", active)
	}
	if active[3] {
		t.Error("main should not be reachable from mod_x_tests")
	}
}

func TestActiveDocsIsolation(t *testing.T) {
	g := fixture()
	const isolation span.DocID = 4
	active := g.ActiveDocs(isolation)
	if len(active) != 1 || !active[4] {
		t.Errorf("isolation should only see itself, got %v", active)
	}
}

func TestDefaultActiveDocsExcludesCommonUnlessReached(t *testing.T) {
	g := fixture()
	all := []span.DocID{1, 2, 3, 4}
	common := map[span.DocID]bool{1: true} // mod_x.hsp is a shared library file
	active := g.DefaultActiveDocs(all, common)
	// main and mod_x_tests are entrypoints (not common); both reach
	// mod_x, so it's pulled in too. isolation is its own entrypoint.
	for _, doc := range all {
		if !active[doc] {
			t.Errorf("doc %d should be active by default, got %v", doc, active)
		}
	}
}
