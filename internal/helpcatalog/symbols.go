package helpcatalog

import "github.com/vain0x/hsp3-ginger-sub000/internal/symbol"

// ToSymbols turns parsed catalog entries into the builtin symbol list a
// workspace.Host installs as Host.Builtin. Every entry becomes a
// project-wide (global), help-catalog symbol (Kind == Unknown) with no
// declaring token — its completion/hover text lives in HelpOpt instead.
func ToSymbols(entries []Entry) []*symbol.Symbol {
	out := make([]*symbol.Symbol, 0, len(entries))
	for i, e := range entries {
		sym := &symbol.Symbol{
			ID:       int64(-(i + 1)), // negative IDs never collide with a per-doc pass's 1-based IDs
			Kind:     symbol.Unknown,
			Name:     e.Name,
			ScopeOpt: symbol.GlobalScope,
			HasScope: true,
			NsOpt:    "",
			HasNs:    true,
			HelpOpt: &symbol.HelpInfo{
				DescriptionOpt: e.DescriptionOpt,
				Documentation:  e.Documentation,
				Builtin:        e.Builtin,
			},
		}
		if e.HasParams {
			sig := make([]symbol.ParamSig, len(e.Params))
			for j, p := range e.Params {
				sig[j] = symbol.ParamSig{NameOpt: p.Name, DocOpt: p.DetailsOpt}
			}
			sym.SignatureOpt = sig
		}
		out = append(out, sym)
	}
	return out
}
