// Package store owns the current text of every tracked document and
// the provenance (open in editor, present on disk, or both) that
// decides which copy wins. It does no analysis itself; it queues a FIFO
// of DocChange events (DrainDocChanges) for its caller, which passes the
// changed text on to package workspace.
package store

import (
	"fmt"
	"os"

	"github.com/vain0x/hsp3-ginger-sub000/internal/encoding"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
)

// Action is the kind of lifecycle event a DocChange reports.
type Action int

const (
	UnknownAction Action = iota
	Opened
	Changed
	Closed
)

func (a Action) String() string {
	switch a {
	case Opened:
		return "Opened"
	case Changed:
		return "Changed"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// DocChange is one lifecycle event: a doc was opened, its text changed,
// or it was closed (meaning no provenance — editor or disk — names it
// any longer).
type DocChange struct {
	Doc    span.DocID
	Action Action
}

// Store holds the current text of every tracked document plus which
// provenances (editor, disk) currently name it.
type Store struct {
	text         map[span.DocID]string
	version      map[span.DocID]int32
	openInEditor map[span.DocID]bool
	onDisk       map[span.DocID]bool
	changes      []DocChange
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		text:         make(map[span.DocID]string),
		version:      make(map[span.DocID]int32),
		openInEditor: make(map[span.DocID]bool),
		onDisk:       make(map[span.DocID]bool),
	}
}

// Text returns the current text for doc and whether it is tracked.
func (s *Store) Text(doc span.DocID) (string, bool) {
	text, ok := s.text[doc]
	return text, ok
}

// Version returns the editor version last recorded for doc, or 0 if
// doc was never opened in an editor (on-disk-only docs have no
// meaningful version).
func (s *Store) Version(doc span.DocID) int32 { return s.version[doc] }

func (s *Store) emit(doc span.DocID, action Action) {
	s.changes = append(s.changes, DocChange{Doc: doc, Action: action})
}

func (s *Store) tracked(doc span.DocID) bool {
	_, ok := s.text[doc]
	return ok
}

// OpenDocInEditor records doc as open in the editor with the given
// version and text, which always wins over any on-disk copy.
func (s *Store) OpenDocInEditor(doc span.DocID, version int32, text string) {
	existed := s.tracked(doc)
	s.openInEditor[doc] = true
	s.version[doc] = version
	s.text[doc] = text
	if existed {
		s.emit(doc, Changed)
	} else {
		s.emit(doc, Opened)
	}
}

// ChangeDocInEditor updates the text of a doc already open in the
// editor.
func (s *Store) ChangeDocInEditor(doc span.DocID, version int32, text string) {
	s.openInEditor[doc] = true
	s.version[doc] = version
	s.text[doc] = text
	s.emit(doc, Changed)
}

// CloseDocInEditor removes the editor provenance for doc. If the doc is
// also tracked on disk, it downgrades to the on-disk copy (no Closed
// event, since the doc is still tracked); otherwise it is dropped
// entirely and a Closed event fires.
func (s *Store) CloseDocInEditor(doc span.DocID) {
	if !s.openInEditor[doc] {
		return
	}
	delete(s.openInEditor, doc)
	delete(s.version, doc)

	if s.onDisk[doc] {
		s.emit(doc, Changed)
		return
	}
	delete(s.text, doc)
	s.emit(doc, Closed)
}

// ChangeFile reads path from disk and decodes it as UTF-8 with a
// Shift-JIS fallback, updating doc's text unless doc is currently open
// in the editor (whose contents always win). It returns an error only
// for I/O failures or bytes that decode as neither encoding.
func (s *Store) ChangeFile(doc span.DocID, path string) error {
	if s.openInEditor[doc] {
		s.onDisk[doc] = true
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text, _, ok := encoding.Decode(data)
	if !ok {
		return fmt.Errorf("store: %s decodes as neither UTF-8 nor Shift-JIS", path)
	}

	existed := s.tracked(doc)
	s.onDisk[doc] = true
	s.text[doc] = text
	if existed {
		s.emit(doc, Changed)
	} else {
		s.emit(doc, Opened)
	}
	return nil
}

// CloseFile removes the on-disk provenance for doc (e.g. the file was
// deleted or left the workspace). If the doc is also open in the
// editor it stays tracked with no event; otherwise it is dropped and a
// Closed event fires.
func (s *Store) CloseFile(doc span.DocID) {
	if !s.onDisk[doc] {
		return
	}
	delete(s.onDisk, doc)

	if s.openInEditor[doc] {
		return
	}
	delete(s.text, doc)
	s.emit(doc, Closed)
}

// DrainDocChanges appends every pending change to out, in the order
// they were recorded, and clears the store's pending queue.
func (s *Store) DrainDocChanges(out []DocChange) []DocChange {
	out = append(out, s.changes...)
	s.changes = s.changes[:0]
	return out
}

// HasChanges reports whether any doc-change event is pending.
func (s *Store) HasChanges() bool { return len(s.changes) > 0 }
