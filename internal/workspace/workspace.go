// Package workspace owns the analysis of every tracked document and
// the public/namespace/local symbol environments rebuilt from them on
// each compute. It is the single place where a cross-document query
// may assume the environments and the active-doc set are consistent
// with each other — a guarantee Compute restores before returning.
package workspace

import (
	"github.com/vain0x/hsp3-ginger-sub000/internal/includegraph"
	"github.com/vain0x/hsp3-ginger-sub000/internal/parser"
	"github.com/vain0x/hsp3-ginger-sub000/internal/preproc"
	"github.com/vain0x/hsp3-ginger-sub000/internal/ptoken"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/symbol"
	"github.com/vain0x/hsp3-ginger-sub000/internal/syntax"
	"github.com/vain0x/hsp3-ginger-sub000/internal/varuse"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DocAnalysis is everything a single document's parse contributes: its
// tokens and tree for position-based queries, its preprocessor-level
// declarations, and the include directives it names (raw; resolution
// into DocIDs is a host responsibility — see includegraph.Resolver).
type DocAnalysis struct {
	Text     string
	Tokens   []ptoken.PToken
	Root     *syntax.Root
	Preproc  preproc.Result
	Includes []includegraph.IncludeRef
	Guard    *parser.IncludeGuard
}

// Host supplies the pieces of the environment the core doesn't own
// itself: the symbols builtins contribute, the include resolver, the
// common-docs set, and (optionally) an explicit project's entrypoints.
// A zero Host is valid: no builtins, no includes resolve, every doc is
// an entrypoint of the default project.
type Host struct {
	Builtin     []*symbol.Symbol
	Resolver    includegraph.Resolver
	CommonDocs  map[span.DocID]bool
	Entrypoints []span.DocID // non-empty enables an explicit second project
}

// Project is one computed view of the workspace: the active-doc set
// for some entrypoints, and the envs built from exactly those docs'
// symbols.
type Project struct {
	Entrypoints []span.DocID
	IsDefault   bool
	ActiveDocs  map[span.DocID]bool

	Public    *symbol.PublicEnv
	NsEnvs    *symbol.NsEnvs
	LocalEnvs *symbol.LocalEnvs

	// Symbols is every symbol visible in this project: preproc
	// declarations from active docs plus the StaticVar/Unresolved
	// placeholders varuse declared while walking them.
	Symbols []*symbol.Symbol
	// DocSymbols maps each active doc to the symbols it declares,
	// for query.CollectDocSymbols / query.CollectSymbolsInScope.
	DocSymbols map[span.DocID][]*symbol.Symbol
	// Preproc is this project's own per-doc preproc pass, keyed the same
	// way as DocSymbols. Package query uses its ModuleIDs/DefFuncIDs to
	// find the LocalScope enclosing a position with the same identity
	// that this project's Symbols were scoped against — the workspace's
	// generic DocAnalysis.Preproc is a different pass (idBase 0) and its
	// scope IDs would not compare equal to this project's.
	Preproc map[span.DocID]preproc.Result
}

// Workspace holds every tracked document's analysis and the one or two
// live Projects computed from them (the default project always exists;
// an explicit one exists only when Host.Entrypoints is non-empty).
type Workspace struct {
	log *zap.Logger

	dirty map[span.DocID]bool
	texts map[span.DocID]string
	docs  map[span.DocID]*DocAnalysis

	host Host

	defaultProject  *Project
	explicitProject *Project // nil unless host.Entrypoints is set

	nextID int64
}

// New returns an empty Workspace. A nil logger is replaced with a
// no-op logger.
func New(log *zap.Logger) *Workspace {
	if log == nil {
		log = zap.NewNop()
	}
	return &Workspace{
		log:   log,
		dirty: make(map[span.DocID]bool),
		texts: make(map[span.DocID]string),
		docs:  make(map[span.DocID]*DocAnalysis),
	}
}

// SetHost installs the host collaborators. Call before the first
// Compute; the explicit project (if any) is (re)created from
// host.Entrypoints.
func (w *Workspace) SetHost(host Host) {
	w.host = host
	w.defaultProject = nil
	w.explicitProject = nil
	for doc := range w.docs {
		w.dirty[doc] = true
	}
}

// UpdateDoc records new text for doc and marks it dirty. Call this
// whenever the source store reports an Opened or Changed DocChange.
func (w *Workspace) UpdateDoc(doc span.DocID, text string) {
	w.dirty[doc] = true
	w.texts[doc] = text
	delete(w.docs, doc)
}

// CloseDoc drops doc entirely. Call this on a Closed DocChange.
func (w *Workspace) CloseDoc(doc span.DocID) {
	w.dirty[doc] = true
	delete(w.texts, doc)
	delete(w.docs, doc)
}

// Doc returns the current analysis for doc, computing first if needed.
func (w *Workspace) Doc(doc span.DocID) (*DocAnalysis, bool) {
	w.Compute()
	da, ok := w.docs[doc]
	return da, ok
}

// DefaultProject returns the project covering every doc not in
// host.CommonDocs (plus any common doc reachable from those),
// computing first if needed.
func (w *Workspace) DefaultProject() *Project {
	w.Compute()
	return w.defaultProject
}

// ProjectForDoc returns the explicit project if doc is active in it,
// otherwise the default project, computing first if needed. This
// mirrors require_project_for_doc: most queries should use this rather
// than DefaultProject so that a doc covered by an explicit entrypoint
// list is analyzed with that project's (possibly narrower) active set.
func (w *Workspace) ProjectForDoc(doc span.DocID) *Project {
	w.Compute()
	if w.explicitProject != nil && w.explicitProject.ActiveDocs[doc] {
		return w.explicitProject
	}
	return w.defaultProject
}

func (w *Workspace) newID() int64 {
	w.nextID++
	return w.nextID
}

// Compute executes the pipeline atomically: reparse every dirty doc,
// then rebuild every project's envs from the current active-doc set.
// It is a no-op if nothing is dirty.
func (w *Workspace) Compute() {
	if len(w.dirty) == 0 {
		return
	}

	dirty := make([]span.DocID, 0, len(w.dirty))
	for doc := range w.dirty {
		dirty = append(dirty, doc)
	}
	w.dirty = make(map[span.DocID]bool)

	var g errgroup.Group
	results := make([]*DocAnalysis, len(dirty))
	for i, doc := range dirty {
		i, doc := i, doc
		g.Go(func() error {
			text, ok := w.texts[doc]
			if !ok {
				return nil
			}
			results[i] = analyzeDoc(doc, text)
			return nil
		})
	}
	_ = g.Wait() // analyzeDoc never errors; only I/O boundaries do

	for i, doc := range dirty {
		if results[i] != nil {
			w.docs[doc] = results[i]
		}
	}

	w.log.Debug("compute: reparsed dirty docs", zap.Int("count", len(dirty)))

	allDocs := make([]span.DocID, 0, len(w.docs))
	for doc := range w.docs {
		allDocs = append(allDocs, doc)
	}

	graph := includegraph.BuildFromDocs(rootsOf(w.docs), w.host.resolverOrNop())

	w.defaultProject = w.computeProject(graph, nil, true, allDocs)
	if len(w.host.Entrypoints) > 0 {
		w.explicitProject = w.computeProject(graph, w.host.Entrypoints, false, allDocs)
	} else {
		w.explicitProject = nil
	}
}

func rootsOf(docs map[span.DocID]*DocAnalysis) map[span.DocID]*syntax.Root {
	out := make(map[span.DocID]*syntax.Root, len(docs))
	for doc, da := range docs {
		out[doc] = da.Root
	}
	return out
}

func (h Host) resolverOrNop() includegraph.Resolver {
	if h.Resolver != nil {
		return h.Resolver
	}
	return includegraph.ResolverFunc(func(span.DocID, string) (span.DocID, bool) { return 0, false })
}

func analyzeDoc(doc span.DocID, text string) *DocAnalysis {
	root, tokens := parser.Parse(doc, text)
	pre := preproc.Analyze(root, 0)
	includes := includegraph.CollectIncludes(root)

	da := &DocAnalysis{Text: text, Tokens: tokens, Root: root, Preproc: pre, Includes: includes}
	if guard, ok := parser.DetectIncludeGuard(root); ok {
		da.Guard = &guard
	}
	return da
}

func (w *Workspace) computeProject(graph *includegraph.Graph, entrypoints []span.DocID, isDefault bool, allDocs []span.DocID) *Project {
	var active map[span.DocID]bool
	if isDefault {
		active = graph.DefaultActiveDocs(allDocs, w.host.CommonDocs)
	} else {
		active = graph.ActiveDocs(entrypoints...)
	}

	p := &Project{
		Entrypoints: entrypoints,
		IsDefault:   isDefault,
		ActiveDocs:  active,
		Public:      symbol.NewPublicEnv(),
		NsEnvs:      symbol.NewNsEnvs(),
		LocalEnvs:   symbol.NewLocalEnvs(),
		DocSymbols:  make(map[span.DocID][]*symbol.Symbol),
		Preproc:     make(map[span.DocID]preproc.Result),
	}
	for _, sym := range w.host.Builtin {
		p.Public.Builtin.Insert(sym.Name, sym)
	}

	// Offset every symbol ID by a per-project base so identities never
	// collide across the two concurrently-live projects, even though
	// both are rebuilt from the same doc set.
	idBase := w.newID() * 1_000_000

	// Re-mint preproc symbols per project rather than sharing the
	// DocAnalysis's own preproc.Result.Symbols: two projects can
	// disagree on which docs are active, and a symbol's Ns/Scope
	// triple never changes between projects, only which env it lands
	// in — so a fresh pass is cheap and keeps projects independent.
	perDoc := make(map[span.DocID]preproc.Result, len(active))
	for doc := range active {
		da, ok := w.docs[doc]
		if !ok {
			continue
		}
		pre := preproc.Analyze(da.Root, idBase)
		idBase += int64(len(pre.Symbols)) + 1
		perDoc[doc] = pre
		p.Preproc[doc] = pre
		p.Symbols = append(p.Symbols, pre.Symbols...)
		p.DocSymbols[doc] = append(p.DocSymbols[doc], pre.Symbols...)
		seedEnv(pre.Symbols, p.Public, p.NsEnvs, p.LocalEnvs)
	}

	newID := func() int64 { idBase++; return idBase }
	for doc, pre := range perDoc {
		da := w.docs[doc]
		namer := pre.Namer()
		news := varuse.Analyze(da.Root, doc, namer, p.Public, p.NsEnvs, p.LocalEnvs, pre.ModuleIDs, pre.DefFuncIDs, newID)
		p.Symbols = append(p.Symbols, news...)
		p.DocSymbols[doc] = append(p.DocSymbols[doc], news...)
	}

	return p
}

func seedEnv(symbols []*symbol.Symbol, public *symbol.PublicEnv, nsEnvs *symbol.NsEnvs, localEnvs *symbol.LocalEnvs) {
	for _, sym := range symbols {
		triple := symbol.NameScopeNs{
			Basename: sym.Name,
			ScopeOpt: sym.ScopeOpt, HasScope: sym.HasScope,
			NsOpt: sym.NsOpt, HasNs: sym.HasNs,
		}
		symbol.ImportSymbolToEnv(sym, triple, public, localEnvs, nsEnvs)
	}
}
