package symbol

// ModuleID identifies a #module block within a document; zero means
// "outside any module" (toplevel).
type ModuleID int32

// DefFuncID identifies a #deffunc-family block; zero means "not inside
// one".
type DefFuncID int32

// LocalScope is a non-global scope: a module (optional) crossed with a
// deffunc (optional). Two LocalScope values compare equal the way
// ALocalScope's derived Eq does in the original design: by module and
// deffunc identity, not by name.
type LocalScope struct {
	Module  ModuleID
	DefFunc DefFuncID
}

// IsPublic reports whether the scope is outside both any module and any
// deffunc (i.e. toplevel module-level code).
func (s LocalScope) IsPublic() bool { return s.Module == 0 && s.DefFunc == 0 }

// IsOutsideModule reports whether the scope has no enclosing module.
func (s LocalScope) IsOutsideModule() bool { return s.Module == 0 }

// WithoutDefFunc returns the scope with its DefFunc cleared, i.e. the
// enclosing module-level scope.
func (s LocalScope) WithoutDefFunc() LocalScope {
	return LocalScope{Module: s.Module}
}

// IsVisibleTo reports whether a symbol declared in scope s is visible
// from scope other: same module required; a deffunc-local declaration
// is visible only within that same deffunc, but a module-level
// declaration (no deffunc) is visible from every deffunc in the module.
func (s LocalScope) IsVisibleTo(other LocalScope) bool {
	return s.Module == other.Module && (s.DefFunc == 0 || s.DefFunc == other.DefFunc)
}

// NsForScope derives the namespace a preprocessor-declared symbol
// indexes under from its scope alone. Declaration identifiers in this
// dialect are never themselves `@`-qualified (only use-sites and
// assignment targets can be), so the namespace a #deffunc/#define/...
// symbol lands in is just the name of its enclosing module, or "" for
// toplevel/global — it never needs the full NamePath decomposition
// ResolveForDef performs for variable declarations.
func NsForScope(scope Scope, namer ModuleNamer) string {
	if scope.Global || scope.Local.Module == 0 {
		return ""
	}
	return namer.name(scope.Local.Module)
}

// Scope is either Global (visible everywhere in the project) or Local.
type Scope struct {
	Global bool
	Local  LocalScope
}

// GlobalScope is the shared Global scope value.
var GlobalScope = Scope{Global: true}

// LocalScopeOf wraps a LocalScope as a Scope.
func LocalScopeOf(l LocalScope) Scope { return Scope{Local: l} }

// IsVisibleTo compares s against a local context other. It deliberately
// returns false for a Global scope: global visibility is universal and
// is checked separately via the public environment, so this predicate
// is only meaningful for comparing two local scopes (e.g. when
// collecting the locals visible at a position).
func (s Scope) IsVisibleTo(other LocalScope) bool {
	if s.Global {
		return false
	}
	return s.Local.IsVisibleTo(other)
}
