package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
)

func TestOpenThenCloseWithNoDiskCopyDrops(t *testing.T) {
	s := New()
	const doc span.DocID = 1

	s.OpenDocInEditor(doc, 1, "mes 1\n")
	s.CloseDocInEditor(doc)

	if _, ok := s.Text(doc); ok {
		t.Error("doc should no longer be tracked once closed with no on-disk copy")
	}

	var changes []DocChange
	changes = s.DrainDocChanges(changes)
	if len(changes) != 2 || changes[0].Action != Opened || changes[1].Action != Closed {
		t.Fatalf("expected Opened then Closed, got %+v", changes)
	}
}

func TestEditorCopyWinsOverDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.hsp")
	if err := os.WriteFile(path, []byte("mes \"disk\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New()
	const doc span.DocID = 1

	if err := s.ChangeFile(doc, path); err != nil {
		t.Fatal(err)
	}
	s.OpenDocInEditor(doc, 1, "mes \"editor\"\n")

	// Reading the file again while the editor copy is open must not
	// clobber the editor's text.
	if err := s.ChangeFile(doc, path); err != nil {
		t.Fatal(err)
	}
	text, _ := s.Text(doc)
	if text != "mes \"editor\"\n" {
		t.Errorf("expected editor text to win, got %q", text)
	}
}

func TestClosingEditorDowngradesToDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.hsp")
	if err := os.WriteFile(path, []byte("mes \"disk\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New()
	const doc span.DocID = 1

	if err := s.ChangeFile(doc, path); err != nil {
		t.Fatal(err)
	}
	s.OpenDocInEditor(doc, 1, "mes \"editor\"\n")
	s.CloseDocInEditor(doc)

	text, ok := s.Text(doc)
	if !ok {
		t.Fatal("doc should still be tracked via its on-disk provenance")
	}
	if text != "mes \"disk\"\n" {
		t.Errorf("expected on-disk text after editor close, got %q", text)
	}
}

func TestCloseFileEventOnlyWhenLastProvenanceRemoved(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.hsp")
	if err := os.WriteFile(path, []byte("mes 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New()
	const doc span.DocID = 1

	if err := s.ChangeFile(doc, path); err != nil {
		t.Fatal(err)
	}
	s.OpenDocInEditor(doc, 1, "mes 2\n")

	s.CloseFile(doc) // on-disk provenance gone, still open in editor
	if _, ok := s.Text(doc); !ok {
		t.Fatal("doc should remain tracked while still open in editor")
	}

	var changes []DocChange
	changes = s.DrainDocChanges(changes)
	for _, c := range changes {
		if c.Action == Closed {
			t.Error("Closed should not fire while the editor provenance remains")
		}
	}

	s.CloseDocInEditor(doc)
	if _, ok := s.Text(doc); ok {
		t.Error("doc should be dropped once both provenances are gone")
	}
}

func TestChangeFileRejectsUndecodableBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.hsp")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x81, 0xff}, 0o644); err != nil {
		t.Fatal(err)
	}

	s := New()
	if err := s.ChangeFile(span.DocID(1), path); err == nil {
		t.Error("expected an error decoding undecodable bytes")
	}
}
