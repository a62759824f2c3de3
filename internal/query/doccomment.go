package query

import (
	"strings"

	"github.com/vain0x/hsp3-ginger-sub000/internal/symbol"
	"github.com/vain0x/hsp3-ginger-sub000/internal/token"
)

// DocComment collects sym's doc comment: the run of `;`/`//`-style
// comment lines immediately above its declaring token, read backward
// through that token's own leading trivia and stopping at the first
// blank line, then returned in source order. A help-catalog symbol
// (LeaderOpt nil) has no doc comment of its own — its documentation
// lives in HelpOpt instead.
func DocComment(sym *symbol.Symbol) []string {
	if sym.LeaderOpt == nil {
		return nil
	}
	leading := sym.LeaderOpt.Leading

	var lines []string
scan:
	for i := leading.Len() - 1; i >= 0; i-- {
		tok := leading.At(i)
		switch tok.Kind {
		case token.Comment:
			lines = append(lines, tok.Text)
		case token.Blank:
			// indentation before a comment or the declaration itself
		case token.Newlines:
			if strings.Count(tok.Text, "\n") > 1 {
				break scan // blank line: stop before an unrelated paragraph
			}
		default:
			break scan
		}
	}

	for l, r := 0, len(lines)-1; l < r; l, r = l+1, r-1 {
		lines[l], lines[r] = lines[r], lines[l]
	}
	return lines
}
