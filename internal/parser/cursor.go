package parser

import "github.com/vain0x/hsp3-ginger-sub000/internal/ptoken"
import "github.com/vain0x/hsp3-ginger-sub000/internal/token"

// px is the parser cursor over a PToken slice: bounded lookahead, no
// backtracking. Every bump/skip/eat advances monotonically.
type px struct {
	tokens  []ptoken.PToken
	index   int
	skipped []ptoken.PToken
}

func newPx(tokens []ptoken.PToken) *px {
	return &px{tokens: tokens}
}

// nth returns the kind of the token n places ahead (0 = current).
func (p *px) nth(n int) token.Kind {
	i := p.index + n
	if i >= len(p.tokens) {
		return token.Eof
	}
	return p.tokens[i].Kind()
}

func (p *px) next() token.Kind { return p.nth(0) }

func (p *px) nthToken(n int) ptoken.PToken {
	i := p.index + n
	if i >= len(p.tokens) {
		if len(p.tokens) == 0 {
			return ptoken.PToken{}
		}
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *px) nextToken() ptoken.PToken { return p.nthToken(0) }

// bump consumes and returns the current token unconditionally.
func (p *px) bump() ptoken.PToken {
	t := p.nextToken()
	if p.index < len(p.tokens) {
		p.index++
	}
	return t
}

// eat consumes the current token if it has kind k.
func (p *px) eat(k token.Kind) *ptoken.PToken {
	if p.next() != k {
		return nil
	}
	t := p.bump()
	return &t
}

// skip records the current token as unattached and advances.
func (p *px) skip() {
	if p.index < len(p.tokens) {
		p.skipped = append(p.skipped, p.tokens[p.index])
		p.index++
	}
}

// finish returns the skipped-token list and the terminal Eof token.
func (p *px) finish() ([]ptoken.PToken, ptoken.PToken) {
	var eof ptoken.PToken
	if n := len(p.tokens); n > 0 && p.tokens[n-1].Kind() == token.Eof {
		eof = p.tokens[n-1]
	}
	return p.skipped, eof
}
