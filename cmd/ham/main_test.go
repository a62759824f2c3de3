package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatCommentsRewritesSlashComments(t *testing.T) {
	input := "mes \"hi\" // trailing\n// heading comment\n"
	got := formatComments(input)

	if want := "mes \"hi\" ; trailing\n; heading comment\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatCommentsDocComment(t *testing.T) {
	got := formatComments("/// doc\n")
	if got != ";; doc\n" {
		t.Errorf("got %q", got)
	}
}

func TestFormatCommentsSectionRule(t *testing.T) {
	dashes := "----------" // 10 dashes: long enough to count as a rule
	got := formatComments("// " + dashes + "\n")
	want := "; -" + dashes + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatCommentsLeavesSemicolonAlone(t *testing.T) {
	input := "; already fine\n"
	if got := formatComments(input); got != input {
		t.Errorf("got %q, want unchanged %q", got, input)
	}
}

func TestCollectScriptsFindsHspAndAsFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.hsp", "b.AS", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("mes 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var files []string
	if err := collectScripts(dir, &files); err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 script files, got %d: %v", len(files), files)
	}
}

func TestCollectScriptsMissingDirIsNotAnError(t *testing.T) {
	var files []string
	if err := collectScripts(filepath.Join(t.TempDir(), "nope"), &files); err != nil {
		t.Errorf("expected no error for a missing dir, got %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}
}

func TestDocSetReusesDocIDPerBasename(t *testing.T) {
	docs := newDocSet()
	a1 := docs.docFor("/one/x.hsp")
	a2 := docs.docFor("/two/x.hsp")
	b := docs.docFor("/one/y.hsp")

	if a1 != a2 {
		t.Errorf("expected the same DocID for two paths sharing a basename, got %v and %v", a1, a2)
	}
	if a1 == b {
		t.Errorf("expected a distinct DocID for a different basename")
	}
}

func TestReadInputReadsUTF8File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.hsp")
	if err := os.WriteFile(path, []byte("mes \"hi\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := readInput(path)
	if err != nil {
		t.Fatal(err)
	}
	if text != "mes \"hi\"\n" {
		t.Errorf("got %q", text)
	}
}
