// Package includegraph builds the directed graph of #include/#addition
// edges between documents and answers reachability queries over it:
// which docs are "active" for a project, given a set of entrypoints (or
// none, for the default project).
//
// Resolving an included name to a DocID is the host's job, not this
// package's: BuildFromDocs takes a Resolver so the core stays free of
// path/filesystem heuristics (see SPEC_FULL.md §4.8).
package includegraph

import (
	"sort"

	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
)

// Graph is the directed include graph: edges[d] lists the docs d
// includes; rev is the same edges with direction reversed, so backward
// DFS doesn't need to re-derive it on every query.
type Graph struct {
	edges map[span.DocID][]span.DocID
	rev   map[span.DocID][]span.DocID
}

// Edge is one resolved #include/#addition directive.
type Edge struct {
	From span.DocID
	To   span.DocID
}

// Build constructs a Graph from a flat edge list, deduping and sorting
// each doc's neighbor list for deterministic iteration.
func Build(edges []Edge) *Graph {
	g := &Graph{edges: make(map[span.DocID][]span.DocID), rev: make(map[span.DocID][]span.DocID)}
	for _, e := range edges {
		g.edges[e.From] = append(g.edges[e.From], e.To)
	}
	for from, tos := range g.edges {
		g.edges[from] = dedupSorted(tos)
	}
	for from, tos := range g.edges {
		for _, to := range tos {
			g.rev[to] = append(g.rev[to], from)
		}
	}
	for to, froms := range g.rev {
		g.rev[to] = dedupSorted(froms)
	}
	return g
}

func dedupSorted(docs []span.DocID) []span.DocID {
	sort.Slice(docs, func(i, j int) bool { return docs[i] < docs[j] })
	out := docs[:0]
	var prev span.DocID
	havePrev := false
	for _, d := range docs {
		if havePrev && d == prev {
			continue
		}
		out = append(out, d)
		prev, havePrev = d, true
	}
	return out
}

// Includes returns the docs doc directly includes.
func (g *Graph) Includes(doc span.DocID) []span.DocID { return g.edges[doc] }

// IncludedBy returns the docs that directly include doc.
func (g *Graph) IncludedBy(doc span.DocID) []span.DocID { return g.rev[doc] }

// dfs walks adj starting from each of roots, reflexively (roots are
// included in the result) and transitively, without revisiting a doc.
func dfs(roots []span.DocID, adj map[span.DocID][]span.DocID) map[span.DocID]bool {
	seen := make(map[span.DocID]bool, len(roots))
	stack := append([]span.DocID(nil), roots...)
	for len(stack) > 0 {
		doc := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[doc] {
			continue
		}
		seen[doc] = true
		stack = append(stack, adj[doc]...)
	}
	return seen
}

// ForwardReachable is the reflexive-transitive closure of doc along
// include edges: doc itself plus everything it includes, directly or
// transitively.
func (g *Graph) ForwardReachable(roots ...span.DocID) map[span.DocID]bool {
	return dfs(roots, g.edges)
}

// BackwardReachable is the reflexive-transitive closure of doc along
// reversed include edges: doc itself plus everything that includes it,
// directly or transitively.
func (g *Graph) BackwardReachable(roots ...span.DocID) map[span.DocID]bool {
	return dfs(roots, g.rev)
}

// ActiveDocs is the active-doc set for a project with the given
// entrypoints: the union of the forward-reachable set from each
// entrypoint and the backward-reachable set to each entrypoint.
//
// Reachability is bidirectional because HSP3 commands/functions can be
// forward-referenced: a doc that merely includes a module, and a doc
// the module includes back, must both see each other's declarations
// (see the mod_x/mod_x_tests/main fixture this mirrors).
func (g *Graph) ActiveDocs(entrypoints ...span.DocID) map[span.DocID]bool {
	active := g.ForwardReachable(entrypoints...)
	for doc := range g.BackwardReachable(entrypoints...) {
		active[doc] = true
	}
	return active
}

// DefaultActiveDocs computes the active-doc set for the "default"
// project, which has no explicit entrypoints: every doc not in
// commonDocs, plus any common doc reachable by includes from those.
//
// Unlike ActiveDocs this is forward-only: a common doc is pulled in
// because a non-common entrypoint includes it, not merely because it
// happens to include a non-common doc back. The default project has no
// real entrypoint of its own to anchor that backward direction to —
// every non-common doc already stands as its own entrypoint here, so
// "forward-referenced" pairs among them are already symmetric without
// any backward step.
func (g *Graph) DefaultActiveDocs(allDocs []span.DocID, commonDocs map[span.DocID]bool) map[span.DocID]bool {
	var entrypoints []span.DocID
	for _, doc := range allDocs {
		if !commonDocs[doc] {
			entrypoints = append(entrypoints, doc)
		}
	}
	return g.ForwardReachable(entrypoints...)
}
