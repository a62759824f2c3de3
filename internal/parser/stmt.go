package parser

import (
	"github.com/vain0x/hsp3-ginger-sub000/internal/ptoken"
	"github.com/vain0x/hsp3-ginger-sub000/internal/syntax"
	"github.com/vain0x/hsp3-ginger-sub000/internal/token"
)

// lookaheadLimit bounds the finite lookahead used to disambiguate
// Assign/Command/Invoke on a long, unparenthesized line. Beyond this
// many tokens the line is assumed to be a Command.
const lookaheadLimit = 30

type exprLikeStmtKind int

const (
	kindAssign exprLikeStmtKind = iota
	kindCommand
	kindInvoke
)

// jumpModifiers are the bareword modifiers a Command statement may take
// immediately after its name (before its argument list).
var jumpModifiers = map[string]bool{
	"gosub": true, "goto": true,
}

func parseJumpModifier(p *px) *ptoken.PToken {
	if p.next() != token.Ident {
		return nil
	}
	if !jumpModifiers[p.nextToken().Text()] {
		return nil
	}
	t := p.bump()
	return &t
}

func lookaheadAfterParen(i int, p *px) exprLikeStmtKind {
	balance := 1

	for {
		k := p.nth(i)
		i++

		switch {
		case k == token.LeftParen:
			balance++
		case k == token.RightParen:
			if balance <= 1 {
				goto done
			}
			balance--
		case k == token.Comma && balance == 1:
			return kindAssign
		case k == token.SlimArrow:
			return kindInvoke
		case toOperatorKind(k) == opAssign:
			return kindAssign
		case atEndOfStmt(k):
			goto done
		case i >= lookaheadLimit:
			return kindCommand
		}
	}

done:
	switch k := p.nth(i); {
	case (k == token.Plus || k == token.Minus) && atEndOfStmt(p.nth(i+1)):
		return kindAssign
	case atEndOfStmt(k):
		return kindCommand
	default:
		switch toOperatorKind(k) {
		case opNone, opInfix, opInfixOrAssign:
			return kindCommand
		default: // opAssign, opPrefixOrInfixOrAssign
			return kindAssign
		}
	}
}

func lookaheadStmt(p *px) exprLikeStmtKind {
	switch second := p.nth(1); second {
	case token.LeftParen:
		return lookaheadAfterParen(2, p)
	case token.Dot:
		return kindAssign
	case token.SlimArrow:
		return kindInvoke
	default:
		switch toOperatorKind(second) {
		case opNone:
			return kindCommand
		case opInfix, opInfixOrAssign, opAssign:
			return kindAssign
		case opPrefixOrInfixOrAssign:
			if atEndOfStmt(p.nth(2)) {
				return kindAssign // `x-`
			}
			// `x-a...`: ambiguous between prefix-minus and compound
			// assign; assume prefix (use `-=` for compound assign).
			return kindCommand
		default:
			return kindCommand
		}
	}
}

func parseExprLikeStmt(p *px) *syntax.Stmt {
	switch lookaheadStmt(p) {
	case kindAssign:
		if a := parseAssignStmt(p); a != nil {
			return &syntax.Stmt{Assign: a}
		}
	case kindCommand:
		if c := parseCommandStmt(p); c != nil {
			return &syntax.Stmt{Command: c}
		}
	case kindInvoke:
		if iv := parseInvokeStmt(p); iv != nil {
			return &syntax.Stmt{Invoke: iv}
		}
	}
	return nil
}

func parseAssignStmt(p *px) *syntax.AssignStmt {
	left := parseCompound(p)
	if left == nil {
		return nil
	}
	var opOpt *ptoken.PToken
	if isAssignmentOperator(p.next()) {
		t := p.bump()
		opOpt = &t
	}
	args := parseArgs(p)
	return &syntax.AssignStmt{Left: *left, OpOpt: opOpt, Args: args}
}

func parseCommandStmt(p *px) *syntax.CommandStmt {
	name := p.bump()
	jump := parseJumpModifier(p)
	args := parseArgs(p)
	return &syntax.CommandStmt{Name: name, JumpModifierOpt: jump, Args: args}
}

func parseInvokeStmt(p *px) *syntax.InvokeStmt {
	left := parseCompound(p)
	if left == nil {
		return nil
	}
	arrow := p.eat(token.SlimArrow)
	method := parseAtomicExpr(p)
	args := parseArgs(p)
	return &syntax.InvokeStmt{Left: *left, ArrowOpt: arrow, MethodOpt: method, Args: args}
}

func parseStmt(p *px) *syntax.Stmt {
	var stmt *syntax.Stmt
	switch p.next() {
	case token.Ident:
		stmt = parseExprLikeStmt(p)
	case token.Star:
		if l := parseLabelExpr(p); l != nil {
			stmt = &syntax.Stmt{Label: &syntax.LabelStmt{Star: l.Star, NameOpt: l.NameOpt}}
		}
	case token.Hash:
		stmt = parsePreprocStmt(p)
	default:
		return nil
	}

	parseEndOfStmt(p)
	return stmt
}

func parseEndOfStmt(p *px) {
	for !atEndOfStmt(p.next()) {
		p.skip()
	}
}

// ParseRoot parses a complete PToken sequence (including the trailing
// Eof) into a Root.
func ParseRoot(tokens []ptoken.PToken) *syntax.Root {
	p := newPx(tokens)
	var stmts []syntax.Stmt

	for {
		switch p.next() {
		case token.Eof:
			goto done
		case token.Eos, token.Colon, token.LeftBrace, token.RightBrace:
			p.skip()
		default:
			if stmt := parseStmt(p); stmt != nil {
				stmts = append(stmts, *stmt)
			} else {
				p.skip()
			}
		}
	}

done:
	skipped, eof := p.finish()
	return &syntax.Root{Stmts: stmts, Skipped: skipped, Eof: eof}
}
