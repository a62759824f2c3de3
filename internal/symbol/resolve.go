package symbol

// DefKind selects which of the three ways a symbol enters scope applies
// at a declaration site: Param slots always bind to the current local
// scope with no namespace; Global/Local follow the privacy-or-default
// rule documented in SPEC_FULL.md §4.5's table.
type DefKind int

const (
	DefGlobal DefKind = iota
	DefLocal
	DefParam
)

// NameScopeNs is the outcome of resolving a raw identifier (at a
// definition or use site) against the enclosing local scope: the
// basename to key environments by, the scope the symbol enters (absent
// for a namespace-only module-qualified definition), and the namespace
// it is additionally indexed under (absent for a Param).
type NameScopeNs struct {
	Basename string
	ScopeOpt Scope
	HasScope bool
	NsOpt    string
	HasNs    bool
}

// ModuleNamer resolves a ModuleID to its registered basename ("" if
// unknown, e.g. an anonymous or unresolved module). Each document's
// preprocessor analysis owns one ModuleID registry and passes its own
// namer in, so multiple workspaces never share mutable state.
type ModuleNamer func(ModuleID) string

func (f ModuleNamer) name(id ModuleID) string {
	if f == nil || id == 0 {
		return ""
	}
	return f(id)
}

// ResolveForDef computes the NameScopeNs triple for a declaration site,
// per SPEC_FULL.md §4.5.
func ResolveForDef(rawName string, def DefKind, local LocalScope, namer ModuleNamer) NameScopeNs {
	np := ParseNamePath(rawName)
	base, qual := np.Base, np.Qual

	var scope Scope
	hasScope := false
	switch {
	case qual.Kind == Unqualified && def == DefParam:
		scope, hasScope = LocalScopeOf(local), true
	case (qual.Kind == Unqualified || qual.Kind == Toplevel) && def == DefGlobal:
		scope, hasScope = GlobalScope, true
	case qual.Kind == Unqualified && def == DefLocal:
		scope, hasScope = LocalScopeOf(local.WithoutDefFunc()), true
	case qual.Kind == Toplevel && def == DefLocal:
		scope, hasScope = LocalScopeOf(LocalScope{}), true
	}

	var ns string
	hasNs := false
	switch {
	case def == DefParam:
		// no namespace
	case qual.Kind == Module:
		ns, hasNs = qual.ModuleName, true
	case qual.Kind == Toplevel:
		ns, hasNs = "", true
	case qual.Kind == Unqualified && def == DefGlobal:
		ns, hasNs = "", true
	case qual.Kind == Unqualified && def == DefLocal && local.IsOutsideModule():
		ns, hasNs = "", true
	case qual.Kind == Unqualified && def == DefLocal:
		ns, hasNs = namer.name(local.Module), true
	}

	return NameScopeNs{Basename: base, ScopeOpt: scope, HasScope: hasScope, NsOpt: ns, HasNs: hasNs}
}

// ResolveForUse computes the NameScopeNs triple for a use site, per
// SPEC_FULL.md §4.5.
func ResolveForUse(rawName string, local LocalScope, namer ModuleNamer) NameScopeNs {
	np := ParseNamePath(rawName)
	base, qual := np.Base, np.Qual

	var scope Scope
	hasScope := false
	var ns string
	hasNs := false

	switch qual.Kind {
	case Unqualified:
		scope, hasScope = LocalScopeOf(local), true
		if local.IsOutsideModule() {
			ns, hasNs = "", true
		} else {
			ns, hasNs = namer.name(local.Module), true
		}
	case Toplevel:
		scope, hasScope = LocalScopeOf(LocalScope{}), true
		ns, hasNs = "", true
	case Module:
		ns, hasNs = qual.ModuleName, true
	}

	return NameScopeNs{Basename: base, ScopeOpt: scope, HasScope: hasScope, NsOpt: ns, HasNs: hasNs}
}

// ResolveImplicit implements the use-site resolution order from
// SPEC_FULL.md §4.7: local scope (falling back to the enclosing
// module-level scope when inside a deffunc), then namespace, then
// public (global, then builtin).
func ResolveImplicit(rawName string, local LocalScope, namer ModuleNamer, public *PublicEnv, nsEnvs *NsEnvs, localEnvs *LocalEnvs) (*Symbol, bool) {
	triple := ResolveForUse(rawName, local, namer)

	if triple.HasScope && !triple.ScopeOpt.Global {
		scope := triple.ScopeOpt.Local
		if env, ok := localEnvs.Get(scope); ok {
			if sym, ok := env.Get(triple.Basename); ok {
				return sym, true
			}
		}
		if scope.DefFunc != 0 {
			outer := scope.WithoutDefFunc()
			if env, ok := localEnvs.Get(outer); ok {
				if sym, ok := env.Get(triple.Basename); ok {
					return sym, true
				}
			}
		}
	}

	if triple.HasNs {
		if env, ok := nsEnvs.Get(triple.NsOpt); ok {
			if sym, ok := env.Get(triple.Basename); ok {
				return sym, true
			}
		}
	}

	if triple.HasScope {
		if sym, ok := public.Resolve(triple.Basename); ok {
			return sym, true
		}
	}

	return nil, false
}

// ImportSymbolToEnv registers sym under basename in whichever of the
// public/local/namespace environments the def-site triple names.
func ImportSymbolToEnv(sym *Symbol, triple NameScopeNs, public *PublicEnv, localEnvs *LocalEnvs, nsEnvs *NsEnvs) {
	if triple.HasScope {
		if triple.ScopeOpt.Global {
			public.Global.Insert(triple.Basename, sym)
		} else {
			localEnvs.Entry(triple.ScopeOpt.Local).Insert(triple.Basename, sym)
		}
	}
	if triple.HasNs {
		nsEnvs.Entry(triple.NsOpt).Insert(triple.Basename, sym)
	}
}
