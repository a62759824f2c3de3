package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/vain0x/hsp3-ginger-sub000/internal/diagnose"
	"github.com/vain0x/hsp3-ginger-sub000/internal/includegraph"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/store"
	"github.com/vain0x/hsp3-ginger-sub000/internal/syntax"
	"github.com/vain0x/hsp3-ginger-sub000/internal/workspace"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "watch *.hsp/*.as files under dir and print a diagnostic summary on every change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(args[0])
	},
}

// docSet tracks the DocID assigned to every watched file's basename, so
// that an `#include "sibling.hsp"` in one file resolves to whichever
// other watched file shares that basename — good enough for a
// single-directory CLI convenience, not a substitute for the project's
// own common_docs/entrypoint wiring.
type docSet struct {
	byBasename map[string]span.DocID
	byDoc      map[span.DocID]string
	next       int32
}

func newDocSet() *docSet {
	return &docSet{byBasename: make(map[string]span.DocID), byDoc: make(map[span.DocID]string)}
}

func (d *docSet) docFor(path string) span.DocID {
	base := filepath.Base(path)
	if doc, ok := d.byBasename[base]; ok {
		return doc
	}
	d.next++
	doc := span.DocID(d.next)
	d.byBasename[base] = doc
	d.byDoc[doc] = path
	return doc
}

func runWatch(dir string) error {
	docs := newDocSet()
	src := store.New()
	ws := workspace.New(logger)
	ws.SetHost(workspace.Host{
		Resolver: includegraph.ResolverFunc(func(_ span.DocID, name string) (span.DocID, bool) {
			doc, ok := docs.byBasename[name]
			return doc, ok
		}),
	})

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !isScript(e.Name()) {
			continue
		}
		loadFile(docs, src, ws, filepath.Join(dir, e.Name()))
	}
	recomputeAndReport(ws)

	fmt.Printf("watching %s (ctrl-c to stop)\n", dir)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isScript(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				continue
			}
			loadFile(docs, src, ws, event.Name)
			recomputeAndReport(ws)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "watch error:", err)
		}
	}
}

func isScript(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".hsp" || ext == ".as"
}

func loadFile(docs *docSet, src *store.Store, ws *workspace.Workspace, path string) {
	doc := docs.docFor(path)
	if err := src.ChangeFile(doc, path); err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		return
	}
	text, _ := src.Text(doc)
	ws.UpdateDoc(doc, text)
}

func recomputeAndReport(ws *workspace.Workspace) {
	p := ws.DefaultProject()

	roots := make(map[span.DocID]*syntax.Root, len(p.ActiveDocs))
	for doc := range p.ActiveDocs {
		if da, ok := ws.Doc(doc); ok {
			roots[doc] = da.Root
		}
	}

	lints := diagnose.DiagnoseSyntaxLints(roots, p.ActiveDocs)
	diags := diagnose.DiagnosePrecisely(p, roots)
	fmt.Printf("recompute: %d docs, %d lints, %d diagnostics\n", len(p.ActiveDocs), len(lints), len(diags))
}
