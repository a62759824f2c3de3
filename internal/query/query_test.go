package query

import (
	"testing"

	"github.com/vain0x/hsp3-ginger-sub000/internal/parser"
	"github.com/vain0x/hsp3-ginger-sub000/internal/preproc"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/symbol"
	"github.com/vain0x/hsp3-ginger-sub000/internal/workspace"
)

const mainDoc span.DocID = 1

func newProject(t *testing.T, text string) (*workspace.Workspace, *workspace.Project) {
	t.Helper()
	w := workspace.New(nil)
	w.UpdateDoc(mainDoc, text)
	return w, w.DefaultProject()
}

const sample = "#module\n" +
	"#deffunc greet str name\n" +
	"\tmes name\n" +
	"\treturn\n" +
	"#global\n" +
	"\n" +
	"\tgreet \"a\"\n" +
	"\tgreet \"b\"\n"

func posAtOffset(offset int) span.Pos { return span.Pos{Offset: offset} }

func TestGetIdentAtFindsTouchedIdent(t *testing.T) {
	w, _ := newProject(t, sample)
	da, ok := w.Doc(mainDoc)
	if !ok {
		t.Fatal("expected doc analysis")
	}

	pos := posAtOffset(len("#module\n#deffunc "))
	tok, ok := GetIdentAt(da.Tokens, pos)
	if !ok {
		t.Fatal("expected an identifier at pos")
	}
	if tok.Text() != "greet" {
		t.Errorf("expected greet, got %q", tok.Text())
	}
}

func TestInPreprocDetectsDirectiveLines(t *testing.T) {
	w, _ := newProject(t, sample)
	da, _ := w.Doc(mainDoc)

	onDirective := posAtOffset(len("#module\n#deffunc "))
	if !InPreproc(onDirective, da.Tokens) {
		t.Error("expected pos on the #deffunc line to be in_preproc")
	}

	onCall := posAtOffset(len(sample) - len("greet \"b\"\n"))
	if InPreproc(onCall, da.Tokens) {
		t.Error("expected pos on a plain command line not to be in_preproc")
	}
}

func TestCollectDocSymbolsListsDeclarations(t *testing.T) {
	_, p := newProject(t, sample)

	docSymbols := CollectDocSymbols(p, mainDoc)
	names := map[string]bool{}
	for _, ds := range docSymbols {
		names[ds.Symbol.Name] = true
	}
	if !names["greet"] {
		t.Errorf("expected greet among doc symbols, got %v", names)
	}
}

func TestCollectWorkspaceSymbolsFiltersByName(t *testing.T) {
	_, p := newProject(t, sample)

	matches := CollectWorkspaceSymbols(p, "GRE")
	if len(matches) == 0 {
		t.Fatal("expected a case-insensitive substring match for greet")
	}
	for _, m := range matches {
		if m.Symbol.Name != "greet" {
			t.Errorf("unexpected match %q for query GRE", m.Symbol.Name)
		}
	}

	if len(CollectWorkspaceSymbols(p, "zzz")) != 0 {
		t.Error("expected no matches for a query with no hits")
	}
}

func TestLocateSymbolAndHighlights(t *testing.T) {
	_, p := newProject(t, sample)

	var greet *struct{}
	for _, s := range p.Symbols {
		if s.Name == "greet" {
			sym, loc, ok := LocateSymbol(p, mainDoc, s.DefSites[0].Range.Start)
			if !ok {
				t.Fatal("expected LocateSymbol to find greet at its own def-site")
			}
			if sym.Name != "greet" {
				t.Errorf("expected greet, got %q", sym.Name)
			}
			if loc != s.DefSites[0] {
				t.Errorf("expected the def-site loc back, got %v", loc)
			}

			var kinds []DefOrUse
			CollectHighlights(mainDoc, sym, func(kind DefOrUse, _ span.Loc) {
				kinds = append(kinds, kind)
			})
			if len(kinds) != 3 { // one def-site, two call-site uses
				t.Errorf("expected 3 highlighted occurrences, got %d", len(kinds))
			}
			if kinds[0] != Def {
				t.Errorf("expected the def-site to sort first, got %v", kinds[0])
			}
			greet = &struct{}{}
		}
	}
	if greet == nil {
		t.Fatal("expected a symbol named greet")
	}
}

func TestEnclosingScopeDistinguishesDeffuncBodies(t *testing.T) {
	w, p := newProject(t, sample)
	da, _ := w.Doc(mainDoc)
	pre := p.Preproc[mainDoc]

	// A position on the `mes name` line, inside greet's body.
	insideGreet := posAtOffset(len("#module\n#deffunc greet str name\n\t"))
	scope := ResolveScope(da.Root, pre, insideGreet)
	if scope.DefFunc == 0 {
		t.Error("expected a non-zero DefFunc scope inside greet's body")
	}

	// A position on the final top-level `greet "b"` call, outside any
	// deffunc.
	outside := posAtOffset(len(sample) - len("greet \"b\"\n"))
	scope2 := ResolveScope(da.Root, pre, outside)
	if scope2.DefFunc != 0 {
		t.Errorf("expected no enclosing deffunc at the call site, got %v", scope2)
	}
}

func TestCollectPreprocCompletionItemsIncludesHashBuiltins(t *testing.T) {
	builtin := []*symbol.Symbol{
		{Name: "mes", HelpOpt: &symbol.HelpInfo{DescriptionOpt: "show text"}},
		{Name: "#deffunc", HelpOpt: &symbol.HelpInfo{DescriptionOpt: "declare a command"}},
	}

	items := CollectPreprocCompletionItems(builtin)

	foundHash, foundPlain := false, false
	for _, it := range items {
		if it.Keyword == "#deffunc" {
			foundHash = true
		}
		if it.Keyword == "mes" {
			foundPlain = true
		}
	}
	if !foundHash {
		t.Error("expected #deffunc among the completion items")
	}
	if foundPlain {
		t.Error("did not expect a non-# builtin among preproc completion items")
	}
}

func TestDetectIncludeGuardStillReachableFromParser(t *testing.T) {
	root, _ := parser.Parse(mainDoc, "#ifndef GUARD\n#define GUARD\n#endif\n")
	if _, ok := parser.DetectIncludeGuard(root); !ok {
		t.Error("expected the guard pattern to be detected")
	}
}

func TestArgIndexAtCountsCommasBeforePos(t *testing.T) {
	text := "f 1, \"\"\n"
	root, _ := parser.Parse(mainDoc, text)

	if len(root.Stmts) != 1 || root.Stmts[0].Command == nil {
		t.Fatalf("expected a single command statement, got %+v", root.Stmts)
	}
	args := root.Stmts[0].Command.Args
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d: %+v", len(args), args)
	}

	// Position inside the "1" literal: before any comma.
	insideFirst := posAtOffset(len("f "))
	if got := ArgIndexAt(args, insideFirst); got != 0 {
		t.Errorf("expected argIndex 0 inside the first arg, got %d", got)
	}

	// Position right after the comma: past the first comma's end.
	afterComma := posAtOffset(len("f 1, "))
	if got := ArgIndexAt(args, afterComma); got != 1 {
		t.Errorf("expected argIndex 1 after the comma, got %d", got)
	}
}

func findPreprocSymbol(r preproc.Result, name string) *symbol.Symbol {
	for _, s := range r.Symbols {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func TestDocCommentCollectsLeadingCommentLines(t *testing.T) {
	text := "; greets the user\n; in a friendly tone\n#deffunc hello\n\treturn\n"
	root, _ := parser.Parse(mainDoc, text)
	r := preproc.Analyze(root, 0)

	sym := findPreprocSymbol(r, "hello")
	if sym == nil {
		t.Fatal("expected a hello symbol")
	}

	got := DocComment(sym)
	want := []string{"; greets the user", "; in a friendly tone"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDocCommentStopsAtBlankLine(t *testing.T) {
	text := "; unrelated\n\n#deffunc hello\n\treturn\n"
	root, _ := parser.Parse(mainDoc, text)
	r := preproc.Analyze(root, 0)

	sym := findPreprocSymbol(r, "hello")
	if sym == nil {
		t.Fatal("expected a hello symbol")
	}
	if got := DocComment(sym); len(got) != 0 {
		t.Errorf("expected no doc comment across a blank line, got %v", got)
	}
}

func TestDocCommentNilForHelpCatalogSymbol(t *testing.T) {
	sym := &symbol.Symbol{Name: "mes", HelpOpt: &symbol.HelpInfo{}}
	if got := DocComment(sym); got != nil {
		t.Errorf("expected nil doc comment for a LeaderOpt-less symbol, got %v", got)
	}
}

func TestFlipCommaCandidatesSkipsBareCommas(t *testing.T) {
	// "f 1, , 3" parses to 3 args: 1/comma, empty/comma, 3/no-comma.
	root, _ := parser.Parse(mainDoc, "f 1, , 3\n")
	if len(root.Stmts) != 1 || root.Stmts[0].Command == nil {
		t.Fatalf("expected a single command statement, got %+v", root.Stmts)
	}
	args := root.Stmts[0].Command.Args
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d: %+v", len(args), args)
	}

	got := FlipCommaCandidates(args)
	if len(got) != 0 {
		t.Errorf("expected no candidates around a bare comma slot, got %v", got)
	}
}

func TestFlipCommaCandidatesPairsAdjacentExprs(t *testing.T) {
	root, _ := parser.Parse(mainDoc, "f 1, 2, 3\n")
	args := root.Stmts[0].Command.Args

	got := FlipCommaCandidates(args)
	want := []FlipCommaCandidate{{Left: 0, Right: 1}, {Left: 1, Right: 2}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSemanticTokensClassifiesDeffuncAndComment(t *testing.T) {
	text := "; doc\n#deffunc hello\n\tmes \"hi\"\n\treturn\n"
	w, p := newProject(t, text)
	da, ok := w.Doc(mainDoc)
	if !ok {
		t.Fatal("expected doc analysis")
	}

	tokens := SemanticTokens(p, mainDoc, da.Tokens, da.Root)

	var sawComment, sawKeyword, sawString bool
	for _, tok := range tokens {
		switch tok.Class {
		case ClassComment:
			sawComment = true
		case ClassKeyword:
			sawKeyword = true
		case ClassString:
			sawString = true
		}
	}
	if !sawComment {
		t.Error("expected a ClassComment token for the leading `;` comment")
	}
	if !sawKeyword {
		t.Error("expected a ClassKeyword token for the #deffunc keyword")
	}
	if !sawString {
		t.Error("expected a ClassString token for \"hi\"")
	}
}
