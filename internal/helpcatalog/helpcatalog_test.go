package helpcatalog

import "testing"

func TestParsePrmSectionCommand(t *testing.T) {
	prm := []string{
		`"message", model, mode`,
		``,
		`"message": 表示する文字列`,
		`mode (0): モード`,
		`          これは2行目。`,
		`model: モデル`,
	}

	params := parsePrmSection(prm)
	if len(params) != 3 {
		t.Fatalf("expected 3 params, got %d: %+v", len(params), params)
	}

	want := map[string]string{
		`"message"`: `"message": 表示する文字列`,
		"model":     "model: モデル",
		"mode":      "mode (0): モード\n          これは2行目。",
	}
	for _, p := range params {
		if !p.HasDetails {
			t.Errorf("expected details for %q", p.Name)
			continue
		}
		if p.DetailsOpt != want[p.Name] {
			t.Errorf("param %q: got %q, want %q", p.Name, p.DetailsOpt, want[p.Name])
		}
	}
}

func TestParsePrmSectionFunc(t *testing.T) {
	prm := []string{"(n)", "n 数値"}

	params := parsePrmSection(prm)
	if len(params) != 1 || params[0].Name != "n" {
		t.Fatalf("expected a single param named n, got %+v", params)
	}
	if !params[0].HasDetails || params[0].DetailsOpt != "n 数値" {
		t.Errorf("expected details %q, got %+v", "n 数値", params[0])
	}
}

const sampleHelpSource = `; comment lines are dropped
%index
mes
文字列を表示する。

%prm
p1

p1: 表示する文字列

%note
標準命令です。

%index
dim
配列変数を確保する。

%prm
p1, p2

p1: 変数名
p2: 要素数
`

func TestParseSourceSplitsMultipleIndexSections(t *testing.T) {
	entries, warnings := ParseSource("sample.hs", sampleHelpSource)
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}

	if entries[0].Name != "mes" {
		t.Errorf("expected first entry named mes, got %q", entries[0].Name)
	}
	if !entries[0].Builtin {
		t.Error("expected mes to be flagged builtin from its %note section")
	}
	if !entries[0].HasParams || len(entries[0].Params) != 1 || entries[0].Params[0].Name != "p1" {
		t.Errorf("expected a single p1 param, got %+v", entries[0].Params)
	}

	if entries[1].Name != "dim" {
		t.Errorf("expected second entry named dim, got %q", entries[1].Name)
	}
	if len(entries[1].Params) != 2 {
		t.Errorf("expected 2 params for dim, got %+v", entries[1].Params)
	}
}

func TestToSymbolsBuildsHelpCatalogSymbols(t *testing.T) {
	entries, _ := ParseSource("sample.hs", sampleHelpSource)
	syms := ToSymbols(entries)
	if len(syms) != 2 {
		t.Fatalf("expected 2 symbols, got %d", len(syms))
	}

	for _, s := range syms {
		if s.HelpOpt == nil {
			t.Errorf("expected HelpOpt to be set for %q", s.Name)
		}
		if s.LeaderOpt != nil {
			t.Errorf("expected no LeaderOpt for a help-catalog symbol %q", s.Name)
		}
		if !s.ScopeOpt.Global {
			t.Errorf("expected a global scope for %q", s.Name)
		}
	}

	if syms[0].HelpOpt.Builtin != true {
		t.Error("expected mes's HelpInfo.Builtin to carry through from its entry")
	}
	if len(syms[1].SignatureOpt) != 2 {
		t.Errorf("expected dim's signature to carry 2 params, got %+v", syms[1].SignatureOpt)
	}
}
