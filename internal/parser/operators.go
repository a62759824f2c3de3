package parser

import "github.com/vain0x/hsp3-ginger-sub000/internal/token"

type operatorKind int

const (
	opNone operatorKind = iota
	opInfix
	opAssign
	opInfixOrAssign
	opPrefixOrInfixOrAssign
)

func toOperatorKind(k token.Kind) operatorKind {
	switch k {
	case token.Minus, token.Star:
		return opPrefixOrInfixOrAssign
	case token.AndAnd, token.PipePipe, token.EqualEqual:
		return opInfix
	case token.LeftAngle, token.RightAngle, token.And, token.Backslash, token.Bang,
		token.Equal, token.Hat, token.LeftEqual, token.LeftShift, token.Pipe,
		token.Plus, token.RightEqual, token.RightShift, token.Slash:
		return opInfixOrAssign
	case token.AndEqual, token.BackslashEqual, token.BangEqual, token.HatEqual,
		token.MinusEqual, token.MinusMinus, token.PipeEqual, token.PlusEqual,
		token.PlusPlus, token.SlashEqual, token.StarEqual:
		return opAssign
	default:
		return opNone
	}
}

func isAssignmentOperator(k token.Kind) bool {
	switch toOperatorKind(k) {
	case opAssign, opInfixOrAssign:
		return true
	default:
		return false
	}
}

func atEndOfStmt(k token.Kind) bool {
	switch k {
	case token.Eof, token.Eos, token.Colon, token.LeftBrace, token.RightBrace:
		return true
	default:
		return false
	}
}

func isBinaryOp(k token.Kind) bool {
	switch k {
	case token.LeftAngle, token.RightAngle, token.And, token.AndAnd, token.Backslash,
		token.Bang, token.Equal, token.EqualEqual, token.Hat, token.LeftEqual,
		token.LeftShift, token.Minus, token.Pipe, token.PipePipe, token.Plus,
		token.RightEqual, token.RightShift, token.Slash, token.Star:
		return true
	default:
		return false
	}
}
