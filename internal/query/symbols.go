package query

import (
	"sort"
	"strings"

	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/symbol"
	"github.com/vain0x/hsp3-ginger-sub000/internal/workspace"
)

// LocateSymbol finds the symbol whose def-site or use-site touches pos
// in doc, for go-to-definition and hover.
func LocateSymbol(p *workspace.Project, doc span.DocID, pos span.Pos) (*symbol.Symbol, span.Loc, bool) {
	for _, s := range p.Symbols {
		for _, loc := range s.DefSites {
			if loc.Doc == doc && loc.Range.Touches(pos) {
				return s, loc, true
			}
		}
		for _, loc := range s.UseSites {
			if loc.Doc == doc && loc.Range.Touches(pos) {
				return s, loc, true
			}
		}
	}
	return nil, span.Loc{}, false
}

// DefOrUse marks whether a highlighted occurrence is a declaration or a
// reference.
type DefOrUse int

const (
	Use DefOrUse = iota
	Def
)

type site struct {
	loc  span.Loc
	kind DefOrUse
}

// CollectHighlights reports every occurrence of sym within doc, in
// position order with no duplicate locations. A location that is both
// a def-site and a use-site (never happens in practice, since a
// declaration and its first use are different tokens, but matches the
// original's defensive dedup) keeps the Def classification.
func CollectHighlights(doc span.DocID, sym *symbol.Symbol, onSite func(DefOrUse, span.Loc)) {
	var sites []site
	for _, loc := range sym.DefSites {
		if loc.Doc == doc {
			sites = append(sites, site{loc, Def})
		}
	}
	for _, loc := range sym.UseSites {
		if loc.Doc == doc {
			sites = append(sites, site{loc, Use})
		}
	}

	sort.Slice(sites, func(i, j int) bool {
		return locLess(sites[i].loc, sites[j].loc) ||
			(sites[i].loc == sites[j].loc && sites[i].kind > sites[j].kind)
	})

	var prev span.Loc
	havePrev := false
	for _, s := range sites {
		if havePrev && s.loc == prev {
			continue
		}
		onSite(s.kind, s.loc)
		prev, havePrev = s.loc, true
	}
}

func locLess(a, b span.Loc) bool {
	if a.Doc != b.Doc {
		return a.Doc < b.Doc
	}
	return a.Range.Start.Before(b.Range.Start)
}

// CollectSymbolOptions selects which occurrence kinds
// CollectSymbolOccurrences returns.
type CollectSymbolOptions struct {
	IncludeDef bool
	IncludeUse bool
}

// CollectSymbolOccurrences returns every def-site and/or use-site of
// sym across the whole project, unordered and with no deduplication.
func CollectSymbolOccurrences(opts CollectSymbolOptions, sym *symbol.Symbol) []span.Loc {
	var out []span.Loc
	if opts.IncludeDef {
		out = append(out, sym.DefSites...)
	}
	if opts.IncludeUse {
		out = append(out, sym.UseSites...)
	}
	return out
}

// DocSymbol pairs a declared symbol with its def-site location in the
// doc it was collected from.
type DocSymbol struct {
	Symbol *symbol.Symbol
	Loc    span.Loc
}

// CollectDocSymbols lists every symbol doc declares, each with the
// def-site that lies in that same doc (symbols with no such def-site —
// which should not happen for a doc's own declarations — are skipped).
func CollectDocSymbols(p *workspace.Project, doc span.DocID) []DocSymbol {
	var out []DocSymbol
	for _, s := range p.DocSymbols[doc] {
		for _, loc := range s.DefSites {
			if loc.Doc == doc {
				out = append(out, DocSymbol{Symbol: s, Loc: loc})
				break
			}
		}
	}
	return out
}

// CollectWorkspaceSymbols returns every symbol across active docs whose
// name contains query (case-insensitive), each paired with a def-site
// in the doc that declares it.
func CollectWorkspaceSymbols(p *workspace.Project, query string) []DocSymbol {
	needle := strings.ToLower(strings.TrimSpace(query))

	var out []DocSymbol
	for doc, symbols := range p.DocSymbols {
		if !p.ActiveDocs[doc] {
			continue
		}
		for _, s := range symbols {
			if !strings.Contains(strings.ToLower(s.Name), needle) {
				continue
			}
			for _, loc := range s.DefSites {
				if loc.Doc == doc {
					out = append(out, DocSymbol{Symbol: s, Loc: loc})
					break
				}
			}
		}
	}
	return out
}

// CollectSymbolsInScope lists every symbol visible for completion at
// pos in doc: doc's own locals visible to the enclosing scope, plus (if
// that scope is outside any module) other active docs' locals visible
// to it, plus every project-wide global.
func CollectSymbolsInScope(p *workspace.Project, doc span.DocID, scope symbol.LocalScope) []*symbol.Symbol {
	var out []*symbol.Symbol

	collectLocal := func(symbols []*symbol.Symbol) {
		for _, s := range symbols {
			if s.HasScope && s.ScopeOpt.IsVisibleTo(scope) {
				out = append(out, s)
			}
		}
	}

	collectLocal(p.DocSymbols[doc])

	if scope.IsOutsideModule() {
		for d, symbols := range p.DocSymbols {
			if d != doc {
				collectLocal(symbols)
			}
		}
	}

	for d, symbols := range p.DocSymbols {
		if !p.ActiveDocs[d] {
			continue
		}
		for _, s := range symbols {
			if s.HasScope && s.ScopeOpt.Global {
				out = append(out, s)
			}
		}
	}

	return out
}
