package parser

import (
	"github.com/vain0x/hsp3-ginger-sub000/internal/ptoken"
	"github.com/vain0x/hsp3-ginger-sub000/internal/syntax"
	"github.com/vain0x/hsp3-ginger-sub000/internal/token"
)

var deffuncLikeKeywords = map[string]bool{
	"deffunc": true, "defcfunc": true, "modfunc": true, "modcfunc": true,
}

func atDeffuncTerminator(p ptoken.PToken) bool {
	if p.Kind() != token.Ident {
		return false
	}
	text := p.Text()
	return deffuncLikeKeywords[text] || text == "module" || text == "global"
}

func eatIdentText(pattern string, p *px) *ptoken.PToken {
	if p.next() == token.Ident && p.nextToken().Text() == pattern {
		t := p.bump()
		return &t
	}
	return nil
}

func eatPrivacy(p *px) *ptoken.PToken {
	if p.next() != token.Ident {
		return nil
	}
	switch p.nextToken().Text() {
	case "global", "local":
		t := p.bump()
		return &t
	default:
		return nil
	}
}

// paramTypes are the type keywords recognized in a #deffunc-family
// parameter slot (`int`, `str`, `array`, `var`, `label`, `modvar`, ...).
var paramTypes = map[string]bool{
	"int": true, "str": true, "double": true, "label": true,
	"var": true, "array": true, "modvar": true, "local": true,
}

func eatParamTy(p *px) *ptoken.PToken {
	if p.next() != token.Ident {
		return nil
	}
	if !paramTypes[p.nextToken().Text()] {
		return nil
	}
	t := p.bump()
	return &t
}

func parseEndOfPreproc(p *px) {
	for p.next() != token.Eof && p.next() != token.Eos {
		p.skip()
	}
}

func parseDeffuncParams(p *px) []syntax.Param {
	var params []syntax.Param

	for {
		switch p.next() {
		case token.Eof, token.Eos:
			return params
		case token.Comma:
			comma := p.bump()
			params = append(params, syntax.Param{CommaOpt: &comma})
		case token.Ident:
			ty := eatParamTy(p)
			name := p.eat(token.Ident)
			comma := p.eat(token.Comma)
			params = append(params, syntax.Param{ParamTyOpt: ty, NameOpt: name, CommaOpt: comma})
			if comma == nil {
				return params
			}
		default:
			p.skip()
		}
	}
}

func parseDeffuncLikeStmt(hash ptoken.PToken, p *px) *syntax.DefFuncStmt {
	keyword := p.bump()
	privacy := eatPrivacy(p)
	name := p.eat(token.Ident)
	onExit := eatIdentText("onexit", p)
	params := parseDeffuncParams(p)

	var stmts []syntax.Stmt
	for {
		switch p.next() {
		case token.Eof:
			goto done
		case token.Eos, token.LeftBrace, token.RightBrace, token.Colon:
			p.skip()
		case token.Hash:
			if atDeffuncTerminator(p.nthToken(1)) {
				goto done
			}
			if s := parseStmt(p); s != nil {
				stmts = append(stmts, *s)
			} else {
				p.skip()
			}
		default:
			if s := parseStmt(p); s != nil {
				stmts = append(stmts, *s)
			} else {
				p.skip()
			}
		}
	}
done:
	return &syntax.DefFuncStmt{
		Hash: hash, Keyword: keyword, PrivacyOpt: privacy, NameOpt: name,
		OnExitOpt: onExit, Params: params, Stmts: stmts,
	}
}

func parseLibFuncStmt(hash ptoken.PToken, p *px) *syntax.LibFuncStmt {
	keyword := p.bump()
	privacy := eatPrivacy(p)
	name := p.eat(token.Ident)
	onExit := eatIdentText("onexit", p)
	params := parseDeffuncParams(p)
	return &syntax.LibFuncStmt{Hash: hash, Keyword: keyword, PrivacyOpt: privacy, NameOpt: name, OnExitOpt: onExit, Params: params}
}

func parseComFuncStmt(hash ptoken.PToken, p *px) *syntax.ComFuncStmt {
	p.bump() // "comfunc"
	privacy := eatPrivacy(p)
	name := p.eat(token.Ident)
	params := parseDeffuncParams(p)
	return &syntax.ComFuncStmt{Hash: hash, PrivacyOpt: privacy, NameOpt: name, Params: params}
}

func parseModuleStmt(hash ptoken.PToken, p *px) *syntax.ModuleStmt {
	keyword := p.bump() // "module"

	var name *ptoken.PToken
	switch p.next() {
	case token.Ident, token.Str:
		t := p.bump()
		name = &t
	}

	// The field-name list after a quoted/ident module name is not
	// structurally parsed (tracked as an upstream FIXME); skip to the
	// end of this directive line.
	parseEndOfPreproc(p)

	var stmts []syntax.Stmt
	var globalOpt *syntax.GlobalStmt
	for {
		switch p.next() {
		case token.Eof:
			goto done
		case token.Eos, token.LeftBrace, token.RightBrace, token.Colon:
			p.skip()
		default:
			if s := parseStmt(p); s != nil {
				if s.Global != nil {
					globalOpt = s.Global
					goto done
				}
				stmts = append(stmts, *s)
			} else {
				p.skip()
			}
		}
	}
done:
	return &syntax.ModuleStmt{Hash: hash, Keyword: keyword, NameOpt: name, Stmts: stmts, GlobalOpt: globalOpt}
}

func parseGlobalStmt(hash ptoken.PToken, p *px) *syntax.GlobalStmt {
	keyword := p.bump() // "global"
	return &syntax.GlobalStmt{Hash: hash, Keyword: keyword}
}

func parseConstStmt(hash ptoken.PToken, p *px) *syntax.ConstStmt {
	p.bump() // "const"
	privacy := eatPrivacy(p)
	ctype := eatIdentText("double", p)
	name := p.eat(token.Ident)
	args := parseArgs(p)
	return &syntax.ConstStmt{Hash: hash, PrivacyOpt: privacy, NameOpt: name, CTypeOpt: ctype, Args: args}
}

func parseDefineStmt(hash ptoken.PToken, p *px) *syntax.DefineStmt {
	p.bump() // "define"
	privacy := eatPrivacy(p)
	ctype := eatIdentText("ctype", p)
	name := p.eat(token.Ident)

	var params []syntax.Param
	if p.next() == token.LeftParen {
		p.bump()
		params = parseDeffuncParams(p)
		p.eat(token.RightParen)
	}

	var tokens []ptoken.PToken
	for p.next() != token.Eof && p.next() != token.Eos {
		tokens = append(tokens, p.bump())
	}

	return &syntax.DefineStmt{Hash: hash, PrivacyOpt: privacy, CTypeOpt: ctype, NameOpt: name, Params: params, Tokens: tokens}
}

func parseEnumStmt(hash ptoken.PToken, p *px) *syntax.EnumStmt {
	p.bump() // "enum"
	privacy := eatPrivacy(p)
	name := p.eat(token.Ident)
	args := parseArgs(p)
	return &syntax.EnumStmt{Hash: hash, PrivacyOpt: privacy, NameOpt: name, Args: args}
}

func parseUseLibStmt(hash ptoken.PToken, p *px) *syntax.UseLibStmt {
	p.bump() // "uselib"
	name := p.eat(token.Str)
	return &syntax.UseLibStmt{Hash: hash, NameOpt: name}
}

func parseUseComStmt(hash ptoken.PToken, p *px) *syntax.UseComStmt {
	p.bump() // "usecom"
	name := p.eat(token.Ident)
	return &syntax.UseComStmt{Hash: hash, NameOpt: name}
}

func parseRegCmdStmt(hash ptoken.PToken, p *px) *syntax.RegCmdStmt {
	p.bump() // "regcmd"
	return &syntax.RegCmdStmt{Hash: hash}
}

func parseCmdStmt(hash ptoken.PToken, p *px) *syntax.CmdStmt {
	p.bump() // "cmd"
	privacy := eatPrivacy(p)
	name := p.eat(token.Ident)
	return &syntax.CmdStmt{Hash: hash, PrivacyOpt: privacy, NameOpt: name}
}

func parseIncludeStmt(hash ptoken.PToken, p *px) *syntax.IncludeStmt {
	keyword := p.bump() // "include" or "addition"
	path := p.eat(token.Str)
	return &syntax.IncludeStmt{Hash: hash, Keyword: keyword, PathOpt: path}
}

func parseUnknownPreprocStmt(hash ptoken.PToken, p *px) *syntax.UnknownPreProcStmt {
	var tokens []ptoken.PToken
	for p.next() != token.Eof && p.next() != token.Eos {
		tokens = append(tokens, p.bump())
	}
	return &syntax.UnknownPreProcStmt{Hash: hash, Tokens: tokens}
}

func parsePreprocStmt(p *px) *syntax.Stmt {
	hash := p.eat(token.Hash)
	if hash == nil {
		return nil
	}

	var stmt *syntax.Stmt
	switch p.nextToken().Text() {
	case "module":
		stmt = &syntax.Stmt{Module: parseModuleStmt(*hash, p)}
	case "global":
		stmt = &syntax.Stmt{Global: parseGlobalStmt(*hash, p)}
	case "const":
		stmt = &syntax.Stmt{Const: parseConstStmt(*hash, p)}
	case "define":
		stmt = &syntax.Stmt{Define: parseDefineStmt(*hash, p)}
	case "enum":
		stmt = &syntax.Stmt{Enum: parseEnumStmt(*hash, p)}
	case "func", "cfunc":
		stmt = &syntax.Stmt{LibFunc: parseLibFuncStmt(*hash, p)}
	case "comfunc":
		stmt = &syntax.Stmt{ComFunc: parseComFuncStmt(*hash, p)}
	case "uselib":
		stmt = &syntax.Stmt{UseLib: parseUseLibStmt(*hash, p)}
	case "usecom":
		stmt = &syntax.Stmt{UseCom: parseUseComStmt(*hash, p)}
	case "regcmd":
		stmt = &syntax.Stmt{RegCmd: parseRegCmdStmt(*hash, p)}
	case "cmd":
		stmt = &syntax.Stmt{Cmd: parseCmdStmt(*hash, p)}
	case "include", "addition":
		stmt = &syntax.Stmt{Include: parseIncludeStmt(*hash, p)}
	default:
		if deffuncLikeKeywords[p.nextToken().Text()] {
			stmt = &syntax.Stmt{DefFunc: parseDeffuncLikeStmt(*hash, p)}
		} else {
			stmt = &syntax.Stmt{Unknown: parseUnknownPreprocStmt(*hash, p)}
			parseEndOfPreproc(p)
			return stmt
		}
	}

	parseEndOfPreproc(p)
	return stmt
}
