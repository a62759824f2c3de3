// Package syntax defines the abstract syntax tree produced by the parser.
// Every node holds onto its constituent PTokens so that later phases can
// recover exact source text and trivia (e.g. doc comments) without a
// separate re-scan, and every optional field models a parser recovery
// point: a missing subtree never prevents later phases from running.
package syntax

import "github.com/vain0x/hsp3-ginger-sub000/internal/ptoken"

// Root is the result of parsing one document.
type Root struct {
	Stmts   []Stmt
	Skipped []ptoken.PToken // tokens the parser could not attach to any node
	Eof     ptoken.PToken
}

// Stmt is the sum type of top-level and nested statements.
type Stmt struct {
	Label    *LabelStmt
	Assign   *AssignStmt
	Command  *CommandStmt
	Invoke   *InvokeStmt
	Const    *ConstStmt
	Define   *DefineStmt
	Enum     *EnumStmt
	DefFunc  *DefFuncStmt
	UseLib   *UseLibStmt
	LibFunc  *LibFuncStmt
	UseCom   *UseComStmt
	ComFunc  *ComFuncStmt
	RegCmd   *RegCmdStmt
	Cmd      *CmdStmt
	Module   *ModuleStmt
	Global   *GlobalStmt
	Include  *IncludeStmt
	Unknown  *UnknownPreProcStmt
}

type LabelStmt struct {
	Star    ptoken.PToken
	NameOpt *ptoken.PToken
}

type AssignStmt struct {
	Left  Compound
	OpOpt *ptoken.PToken
	Args  []Arg
}

type CommandStmt struct {
	Name            ptoken.PToken
	JumpModifierOpt *ptoken.PToken
	Args            []Arg
}

type InvokeStmt struct {
	Left      Compound
	ArrowOpt  *ptoken.PToken
	MethodOpt *Expr
	Args      []Arg
}

type ConstStmt struct {
	Hash       ptoken.PToken
	PrivacyOpt *ptoken.PToken
	NameOpt    *ptoken.PToken
	CTypeOpt   *ptoken.PToken
	Args       []Arg
}

type DefineStmt struct {
	Hash       ptoken.PToken
	PrivacyOpt *ptoken.PToken
	CTypeOpt   *ptoken.PToken
	NameOpt    *ptoken.PToken
	Params     []Param // macro parameter list, if parenthesized
	Tokens     []ptoken.PToken
}

type EnumStmt struct {
	Hash       ptoken.PToken
	PrivacyOpt *ptoken.PToken
	NameOpt    *ptoken.PToken
	Args       []Arg
}

// Param models one parameter slot in a #deffunc-family declaration, or a
// macro parameter placeholder; ParamTyOpt/NameOpt/CommaOpt are all
// individually optional to tolerate a trailing comma or a bare comma
// (`,,`) between unnamed slots.
type Param struct {
	ParamTyOpt *ptoken.PToken
	NameOpt    *ptoken.PToken
	CommaOpt   *ptoken.PToken
}

// DefFuncStmt covers #deffunc, #defcfunc, #modfunc and #modcfunc —
// distinguished by Keyword.Text(). #modinit and #modterm are not parsed
// as a DefFuncStmt: they come out as UnknownPreProcStmt and do not end a
// preceding deffunc body.
type DefFuncStmt struct {
	Hash       ptoken.PToken
	Keyword    ptoken.PToken
	PrivacyOpt *ptoken.PToken
	NameOpt    *ptoken.PToken
	OnExitOpt  *ptoken.PToken
	Params     []Param
	Stmts      []Stmt
}

type UseLibStmt struct {
	Hash    ptoken.PToken
	NameOpt *ptoken.PToken
}

// LibFuncStmt covers #func and #cfunc.
type LibFuncStmt struct {
	Hash       ptoken.PToken
	Keyword    ptoken.PToken
	PrivacyOpt *ptoken.PToken
	NameOpt    *ptoken.PToken
	OnExitOpt  *ptoken.PToken
	Params     []Param
}

type UseComStmt struct {
	Hash    ptoken.PToken
	NameOpt *ptoken.PToken
}

// ComFuncStmt covers #comfunc.
type ComFuncStmt struct {
	Hash       ptoken.PToken
	PrivacyOpt *ptoken.PToken
	NameOpt    *ptoken.PToken
	Params     []Param
}

type RegCmdStmt struct {
	Hash ptoken.PToken
}

type CmdStmt struct {
	Hash       ptoken.PToken
	PrivacyOpt *ptoken.PToken
	NameOpt    *ptoken.PToken
}

type ModuleStmt struct {
	Hash    ptoken.PToken
	Keyword ptoken.PToken
	NameOpt *ptoken.PToken // Ident or Str
	Stmts   []Stmt
	GlobalOpt *GlobalStmt
}

type GlobalStmt struct {
	Hash    ptoken.PToken
	Keyword ptoken.PToken
}

type IncludeStmt struct {
	Hash     ptoken.PToken
	Keyword  ptoken.PToken // "include" or "addition"
	PathOpt  *ptoken.PToken
}

// UnknownPreProcStmt is a `#...` directive whose keyword this dialect
// does not model structurally (e.g. #if/#ifdef/#ifndef/#else/#endif,
// #undef, #packopt, #epack, #deprecated, #cmpopt, #pack, #usecom args
// beyond the modeled forms). Its raw tokens are preserved so that
// include-guard detection and completion can still inspect them.
type UnknownPreProcStmt struct {
	Hash   ptoken.PToken
	Tokens []ptoken.PToken
}

// Arg is one comma-separated slot in an argument list: the expression,
// if present, and the comma that follows it, if present. A slot can
// have either, both, or — for a bare leading/repeated comma — only the
// comma, which is how `mes , 1` or a trailing `,` survives parsing.
type Arg struct {
	ExprOpt  *Expr
	CommaOpt *ptoken.PToken
}

// DotArg is one `.expr` segment of a name-dots compound.
type DotArg struct {
	Dot     ptoken.PToken
	ExprOpt *Expr
}

// Compound is a name, name(args), or name.args.dots syntactic form, used
// both as an assignment target and inside expressions.
type Compound struct {
	Name       ptoken.PToken
	LeftParenOpt  *ptoken.PToken
	Args          []Arg // Paren form; nil for a bare Name or Dots form
	RightParenOpt *ptoken.PToken
	Dots          []DotArg // Dots form; nil for a bare Name or Paren form
}

// Expr is the expression sum type.
type Expr struct {
	Literal  *ptoken.PToken // Number, Char, or Str
	Label    *LabelExpr
	Compound *Compound
	Group    *GroupExpr
	Prefix   *PrefixExpr
	Infix    *InfixExpr
}

type LabelExpr struct {
	Star    ptoken.PToken
	NameOpt *ptoken.PToken
}

type GroupExpr struct {
	LeftParen  ptoken.PToken
	Body       *Expr
	RightParenOpt *ptoken.PToken
}

type PrefixExpr struct {
	Minus ptoken.PToken
	Arg   *Expr
}

type InfixExpr struct {
	Left     *Expr
	Op       ptoken.PToken
	RightOpt *Expr
}
