package parser

import (
	"github.com/vain0x/hsp3-ginger-sub000/internal/ptoken"
	"github.com/vain0x/hsp3-ginger-sub000/internal/syntax"
	"github.com/vain0x/hsp3-ginger-sub000/internal/token"
)

func parseLabelExpr(p *px) *syntax.LabelExpr {
	star := p.eat(token.Star)
	if star == nil {
		return nil
	}
	return &syntax.LabelExpr{Star: *star, NameOpt: p.eat(token.Ident)}
}

// parseArgs parses a comma-separated argument list until a statement or
// paren boundary, preserving bare/trailing commas as Arg slots with a
// nil ExprOpt.
func parseArgs(p *px) []syntax.Arg {
	var args []syntax.Arg

	for {
		switch p.next() {
		case token.Eof, token.Eos, token.LeftBrace, token.RightBrace, token.Colon, token.RightParen:
			return args
		case token.Comma:
			comma := p.bump()
			args = append(args, syntax.Arg{CommaOpt: &comma})
		default:
			expr := parseExpr(p)
			if expr == nil {
				return args
			}
			comma := p.eat(token.Comma)
			args = append(args, syntax.Arg{ExprOpt: expr, CommaOpt: comma})
		}
	}
}

func parseArgsInParen(p *px) (*ptoken.PToken, []syntax.Arg, *ptoken.PToken) {
	left := p.eat(token.LeftParen)
	if left == nil {
		return nil, nil, nil
	}
	args := parseArgs(p)
	right := p.eat(token.RightParen)
	return left, args, right
}

func parseCompound(p *px) *syntax.Compound {
	name := p.eat(token.Ident)
	if name == nil {
		return nil
	}

	switch p.next() {
	case token.Dot:
		var dots []syntax.DotArg
		for {
			dot := p.eat(token.Dot)
			if dot == nil {
				break
			}
			dots = append(dots, syntax.DotArg{Dot: *dot, ExprOpt: parseExpr(p)})
		}
		return &syntax.Compound{Name: *name, Dots: dots}
	case token.LeftParen:
		left, args, right := parseArgsInParen(p)
		return &syntax.Compound{Name: *name, LeftParenOpt: left, Args: args, RightParenOpt: right}
	default:
		return &syntax.Compound{Name: *name}
	}
}

func parseGroupExpr(p *px) *syntax.GroupExpr {
	left := p.eat(token.LeftParen)
	if left == nil {
		return nil
	}
	body := parseExpr(p)
	right := p.eat(token.RightParen)
	return &syntax.GroupExpr{LeftParen: *left, Body: body, RightParenOpt: right}
}

func parseAtomicExpr(p *px) *syntax.Expr {
	switch p.next() {
	case token.Ident:
		if c := parseCompound(p); c != nil {
			return &syntax.Expr{Compound: c}
		}
		return nil
	case token.LeftParen:
		if g := parseGroupExpr(p); g != nil {
			return &syntax.Expr{Group: g}
		}
		return nil
	case token.Star:
		if l := parseLabelExpr(p); l != nil {
			return &syntax.Expr{Label: l}
		}
		return nil
	case token.Number, token.Char, token.Str:
		t := p.bump()
		return &syntax.Expr{Literal: &t}
	default:
		return nil
	}
}

func parsePrefixExpr(p *px) *syntax.Expr {
	if p.next() == token.Minus {
		minus := p.bump()
		arg := parsePrefixExpr(p)
		return &syntax.Expr{Prefix: &syntax.PrefixExpr{Minus: minus, Arg: arg}}
	}
	return parseAtomicExpr(p)
}

func parseInfixExpr(p *px) *syntax.Expr {
	left := parsePrefixExpr(p)
	if left == nil {
		return nil
	}

	for isBinaryOp(p.next()) {
		op := p.bump()
		right := parsePrefixExpr(p)
		left = &syntax.Expr{Infix: &syntax.InfixExpr{Left: left, Op: op, RightOpt: right}}
	}
	return left
}

func parseExpr(p *px) *syntax.Expr {
	return parseInfixExpr(p)
}
