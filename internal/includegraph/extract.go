package includegraph

import (
	"strings"

	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/syntax"
)

// IncludeRef is one `#include`/`#addition` directive found in a doc: the
// quoted name as written, and its location for diagnostics.
type IncludeRef struct {
	Name string
	Loc  span.Loc
}

// CollectIncludes scans root's top-level statements for #include/
// #addition directives and returns the quoted name each one names. HSP3
// does not allow these directives inside a #module body, so this does
// not recurse into Module/DefFunc statements.
func CollectIncludes(root *syntax.Root) []IncludeRef {
	var refs []IncludeRef
	for i := range root.Stmts {
		s := root.Stmts[i].Include
		if s == nil || s.PathOpt == nil {
			continue
		}
		name := unquote(s.PathOpt.Text())
		if name == "" {
			continue
		}
		refs = append(refs, IncludeRef{Name: name, Loc: s.PathOpt.Loc()})
	}
	return refs
}

// unquote strips the surrounding double quotes a Str token carries.
// HSP3 string literals support backslash escapes, but include paths
// essentially never use them; a bare strip is what the original
// resolver relies on too.
func unquote(text string) string {
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		return text[1 : len(text)-1]
	}
	return text
}

// Resolver turns an included name written in fromDoc into the DocID it
// refers to, consulting the host-provided project_docs first and
// falling back to common_docs, the same precedence
// generate_include_graph uses.
type Resolver interface {
	Resolve(fromDoc span.DocID, name string) (span.DocID, bool)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(fromDoc span.DocID, name string) (span.DocID, bool)

func (f ResolverFunc) Resolve(fromDoc span.DocID, name string) (span.DocID, bool) {
	return f(fromDoc, name)
}

// BuildFromDocs walks every doc's include directives and resolves each
// one through resolver, producing the edge list Build consumes.
// Unresolved includes are silently dropped, matching the original's
// "include unresolved" debug-log-and-skip behavior.
func BuildFromDocs(docs map[span.DocID]*syntax.Root, resolver Resolver) *Graph {
	var edges []Edge
	for doc, root := range docs {
		for _, ref := range CollectIncludes(root) {
			if target, ok := resolver.Resolve(doc, ref.Name); ok {
				edges = append(edges, Edge{From: doc, To: target})
			}
		}
	}
	return Build(edges)
}
