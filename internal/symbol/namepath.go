package symbol

import "strings"

// QualKind distinguishes the three ways a raw identifier can be
// qualified: bare, trailing `@` (toplevel), or `@module`.
type QualKind int

const (
	Unqualified QualKind = iota
	Toplevel
	Module
)

// Qual is the qualifier half of a NamePath; ModuleName is only
// meaningful when Kind == Module.
type Qual struct {
	Kind       QualKind
	ModuleName string
}

// NamePath splits a raw identifier into its basename and qualifier by
// the position of the last `@`.
type NamePath struct {
	Base string
	Qual Qual
}

// ParseNamePath decomposes name as described in the data model: the
// text before the last `@` is the base; text after it is the module
// name, or Toplevel if nothing follows the `@`.
func ParseNamePath(name string) NamePath {
	i := strings.LastIndexByte(name, '@')
	if i < 0 {
		return NamePath{Base: name, Qual: Qual{Kind: Unqualified}}
	}
	if i+1 == len(name) {
		return NamePath{Base: name[:i], Qual: Qual{Kind: Toplevel}}
	}
	return NamePath{Base: name[:i], Qual: Qual{Kind: Module, ModuleName: name[i+1:]}}
}
