package diagnose

import (
	"testing"

	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/syntax"
	"github.com/vain0x/hsp3-ginger-sub000/internal/workspace"
)

const doc span.DocID = 1

func newProject(t *testing.T, text string) (*syntax.Root, *workspace.Project) {
	t.Helper()
	w := workspace.New(nil)
	w.UpdateDoc(doc, text)
	da, ok := w.Doc(doc)
	if !ok {
		t.Fatal("expected doc analysis")
	}
	return da.Root, w.DefaultProject()
}

func TestUndefinedCommandIsFlagged(t *testing.T) {
	root, p := newProject(t, "\tnosuchcommand 1\n")

	diags := DiagnosePrecisely(p, map[span.DocID]*syntax.Root{doc: root})
	if len(diags) != 1 || diags[0].Kind != Undefined {
		t.Fatalf("expected exactly one Undefined diagnostic, got %+v", diags)
	}
}

func TestResolvedCommandIsNotFlagged(t *testing.T) {
	root, p := newProject(t, "#module\n#deffunc greet str name\n\treturn\n#global\n\n\tgreet \"a\"\n")

	diags := DiagnosePrecisely(p, map[span.DocID]*syntax.Root{doc: root})
	for _, d := range diags {
		if d.Kind == Undefined {
			t.Errorf("did not expect Undefined for a resolved command, got %+v", d)
		}
	}
}

func TestVarRequiredFlagsALabelPassedByRef(t *testing.T) {
	// setval's first parameter is by-ref (var); *l names a label, which
	// can never be an l-value, so passing it there is always an error.
	root, p := newProject(t, "#deffunc setval var v\n\treturn\n\n*l\n\tsetval *l\n")

	diags := DiagnosePrecisely(p, map[span.DocID]*syntax.Root{doc: root})
	found := false
	for _, d := range diags {
		if d.Kind == VarRequired {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a VarRequired diagnostic, got %+v", diags)
	}
}

func TestNoLintsWithoutSkippedTokens(t *testing.T) {
	root := &syntax.Root{}
	active := map[span.DocID]bool{doc: true}

	lints := DiagnoseSyntaxLints(map[span.DocID]*syntax.Root{doc: root}, active)
	if len(lints) != 0 {
		t.Fatalf("expected no lints for an empty root, got %+v", lints)
	}
}
