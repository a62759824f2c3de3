package query

import (
	"github.com/vain0x/hsp3-ginger-sub000/internal/preproc"
	"github.com/vain0x/hsp3-ginger-sub000/internal/ptoken"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/symbol"
	"github.com/vain0x/hsp3-ginger-sub000/internal/syntax"
)

// ResolveScope is EnclosingScope specialized for a document's own
// per-project preproc pass, the form every caller outside this package
// actually has on hand (workspace.Project.Preproc).
func ResolveScope(root *syntax.Root, pre preproc.Result, pos span.Pos) symbol.LocalScope {
	return EnclosingScope(root, pre.ModuleIDs, pre.DefFuncIDs, pos)
}

// EnclosingScope finds the LocalScope a position sits in, by walking
// root's Module/DefFunc nesting and checking which body contains pos.
// moduleIDs/defFuncIDs must come from the same preproc pass whose
// symbols the caller intends to compare scopes against (see the note on
// workspace.Project.Preproc): the *syntax.ModuleStmt/*DefFuncStmt node
// pointers are shared with root, but the minted IDs differ per pass.
func EnclosingScope(root *syntax.Root, moduleIDs map[*syntax.ModuleStmt]symbol.ModuleID, defFuncIDs map[*syntax.DefFuncStmt]symbol.DefFuncID, pos span.Pos) symbol.LocalScope {
	return scopeAt(root.Stmts, root.Eof.Ahead(), symbol.LocalScope{}, moduleIDs, defFuncIDs, pos)
}

func scopeAt(stmts []syntax.Stmt, parentEnd span.Pos, scope symbol.LocalScope, moduleIDs map[*syntax.ModuleStmt]symbol.ModuleID, defFuncIDs map[*syntax.DefFuncStmt]symbol.DefFuncID, pos span.Pos) symbol.LocalScope {
	for i := range stmts {
		start, ok := firstTokenOf(stmts[i])
		if !ok {
			continue
		}
		end := parentEnd
		if i+1 < len(stmts) {
			if next, ok := firstTokenOf(stmts[i+1]); ok {
				end = next.Ahead()
			}
		}
		if pos.Before(start.Ahead()) || !pos.Before(end) {
			continue
		}

		switch {
		case stmts[i].Module != nil:
			s := stmts[i].Module
			inner := symbol.LocalScope{Module: moduleIDs[s]}
			bodyEnd := end
			if s.GlobalOpt != nil {
				bodyEnd = s.GlobalOpt.Hash.Ahead()
			}
			return scopeAt(s.Stmts, bodyEnd, inner, moduleIDs, defFuncIDs, pos)
		case stmts[i].DefFunc != nil:
			s := stmts[i].DefFunc
			inner := symbol.LocalScope{Module: scope.Module, DefFunc: defFuncIDs[s]}
			return scopeAt(s.Stmts, end, inner, moduleIDs, defFuncIDs, pos)
		default:
			return scope
		}
	}
	return scope
}

// firstTokenOf returns the earliest token belonging to stmt, used as
// its position-search boundary.
func firstTokenOf(stmt syntax.Stmt) (ptoken.PToken, bool) {
	switch {
	case stmt.Label != nil:
		return stmt.Label.Star, true
	case stmt.Assign != nil:
		return firstCompoundToken(stmt.Assign.Left)
	case stmt.Command != nil:
		return stmt.Command.Name, true
	case stmt.Invoke != nil:
		return firstCompoundToken(stmt.Invoke.Left)
	case stmt.Const != nil:
		return stmt.Const.Hash, true
	case stmt.Define != nil:
		return stmt.Define.Hash, true
	case stmt.Enum != nil:
		return stmt.Enum.Hash, true
	case stmt.DefFunc != nil:
		return stmt.DefFunc.Hash, true
	case stmt.UseLib != nil:
		return stmt.UseLib.Hash, true
	case stmt.LibFunc != nil:
		return stmt.LibFunc.Hash, true
	case stmt.UseCom != nil:
		return stmt.UseCom.Hash, true
	case stmt.ComFunc != nil:
		return stmt.ComFunc.Hash, true
	case stmt.RegCmd != nil:
		return stmt.RegCmd.Hash, true
	case stmt.Cmd != nil:
		return stmt.Cmd.Hash, true
	case stmt.Module != nil:
		return stmt.Module.Hash, true
	case stmt.Global != nil:
		return stmt.Global.Hash, true
	case stmt.Include != nil:
		return stmt.Include.Hash, true
	case stmt.Unknown != nil:
		return stmt.Unknown.Hash, true
	default:
		return ptoken.PToken{}, false
	}
}

func firstCompoundToken(c syntax.Compound) (ptoken.PToken, bool) {
	return c.Name, true
}
