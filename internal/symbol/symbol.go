// Package symbol models declared names: their kind, scope, namespace,
// and the environments that make them resolvable across a workspace.
package symbol

import (
	"github.com/vain0x/hsp3-ginger-sub000/internal/ptoken"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
)

// Kind is the declaration kind of a Symbol.
type Kind int

const (
	Unresolved Kind = iota
	Unknown         // from the help catalog; no local leader token
	Label
	StaticVar
	Const
	Enum
	Macro // CType records whether it was declared `ctype`
	DefFunc
	DefCFunc
	ModFunc
	ModCFunc
	Param // ParamType, if known, names the declared parameter type
	ModuleKind
	Field // a module member referenced as name.field (not yet populated by preproc)
	LibFunc
	PluginCmd
	ComInterface
	ComFunc
)

// ParamSig is one parameter slot's signature metadata, populated lazily
// from the (out-of-scope) help catalog for builtins, or directly from
// the parsed parameter list for user-defined deffuncs.
type ParamSig struct {
	ParamTypeOpt string
	NameOpt      string
	DocOpt       string
}

// HelpInfo is the precomputed completion/hover record a help-catalog
// symbol (Kind == Unknown) carries in place of a leader token: its
// %index summary and %prm/%inst/%note documentation, assembled once
// when the catalog loads rather than re-derived per query.
type HelpInfo struct {
	DescriptionOpt string   // %index section: one-line signature summary
	Documentation  []string // %prm/%inst/%note sections, in that order
	Builtin        bool     // standard command/function vs. plugin-supplied
}

// Symbol is one declared name. Two use-sites that resolve to the same
// declaration share the same *Symbol pointer; identity, not value
// equality, is how occurrences are compared (see DESIGN.md's note on
// reference identity and its single-compute-scope caveat).
type Symbol struct {
	ID   int64 // stable only within one compute; see package workspace
	Kind Kind
	Name string // basename, no @module suffix

	ScopeOpt Scope
	HasScope bool
	NsOpt    string
	HasNs    bool

	LeaderOpt *ptoken.PToken // declaring token, nil for a help-catalog symbol
	HelpOpt   *HelpInfo      // set instead of LeaderOpt for a help-catalog symbol

	CType bool // meaningful only when Kind == Macro

	SignatureOpt []ParamSig // meaningful for DefFunc/DefCFunc/ModFunc/ModCFunc/LibFunc/ComFunc

	ParamTypeOpt string // meaningful only when Kind == Param

	// DefSites/UseSites collect every occurrence across every active doc
	// in the current compute. Since a Symbol is one shared pointer,
	// recording an occurrence never needs the (doc, index) indirection a
	// reference-counted design would: any doc's walk appends directly to
	// the same symbol, including docs other than the one that declared it.
	DefSites []span.Loc
	UseSites []span.Loc
}
