package query

import "github.com/vain0x/hsp3-ginger-sub000/internal/symbol"

// PreprocCompletionItem is one canned keyword suggested while completing
// inside a preprocessor directive (a parameter type, or a privacy/scope
// keyword) — the declarations themselves come from CollectSymbolsInScope
// instead, since they vary per-project.
type PreprocCompletionItem struct {
	Keyword string
	Detail  string
}

// preprocKeywords is the fixed list of #deffunc-family parameter types
// and privacy/scope keywords a directive can use, independent of any
// project's declared symbols.
var preprocKeywords = []PreprocCompletionItem{
	{"ctype", "a macro usable in expression position"},
	{"global", "marks project-wide scope"},
	{"local", "marks a local parameter, or module-local scope"},
	{"int", "an integer parameter, or an integer constant"},
	{"double", "a floating-point parameter, or a floating-point constant"},
	{"str", "a string parameter"},
	{"label", "a label-valued parameter"},
	{"var", "a variable (or array element) parameter"},
	{"array", "an array variable parameter"},
}

// CollectPreprocCompletionItems returns the canned keyword list offered
// while completing inside a preprocessor directive, plus one item per
// builtin whose name itself begins with `#` (directives the help
// catalog documents, like `#deffunc` or `#include`, as opposed to
// ordinary commands and functions).
func CollectPreprocCompletionItems(builtin []*symbol.Symbol) []PreprocCompletionItem {
	out := make([]PreprocCompletionItem, len(preprocKeywords))
	copy(out, preprocKeywords)

	for _, sym := range builtin {
		if sym.HelpOpt == nil || len(sym.Name) == 0 || sym.Name[0] != '#' {
			continue
		}
		detail := ""
		if sym.HelpOpt.DescriptionOpt != "" {
			detail = sym.HelpOpt.DescriptionOpt
		}
		out = append(out, PreprocCompletionItem{Keyword: sym.Name, Detail: detail})
	}

	return out
}
