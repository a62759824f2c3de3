package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vain0x/hsp3-ginger-sub000/internal/encoding"
	"github.com/vain0x/hsp3-ginger-sub000/internal/parser"
	"github.com/vain0x/hsp3-ginger-sub000/internal/ptoken"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/syntax"
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "parse files and dump their syntax trees",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, files []string) error {
		for i, filename := range files {
			text, err := readInput(filename)
			if err != nil {
				return fmt.Errorf("read %s: %w", filename, err)
			}

			doc := span.DocID(i + 1)
			root, _ := parser.Parse(doc, text)

			fmt.Printf("file: %s\n", filename)
			dumpRoot(os.Stdout, root)
		}
		return nil
	},
}

// readInput reads filename, or stdin if filename is "-", decoding disk
// bytes as UTF-8 with a Shift-JIS fallback the same way store.ChangeFile
// does.
func readInput(filename string) (string, error) {
	if filename == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	text, _, ok := encoding.Decode(data)
	if !ok {
		return "", fmt.Errorf("decodes as neither UTF-8 nor Shift-JIS")
	}
	return text, nil
}

// dumpRoot prints an indented outline of root's statements. Output
// shape is a debugging convenience, not a stable format any other
// component reads back.
func dumpRoot(w io.Writer, root *syntax.Root) {
	for i := range root.Stmts {
		dumpStmt(w, &root.Stmts[i], 0)
	}
	for _, tok := range root.Skipped {
		fmt.Fprintf(w, "%sskipped %s %q\n", indent(1), tok.Kind(), tok.Text())
	}
}

func indent(depth int) string { return strings.Repeat("  ", depth) }

func dumpStmt(w io.Writer, stmt *syntax.Stmt, depth int) {
	pad := indent(depth)
	switch {
	case stmt.Label != nil:
		fmt.Fprintf(w, "%sLabel %s\n", pad, nameOrBlank(stmt.Label.NameOpt))
	case stmt.Assign != nil:
		fmt.Fprintf(w, "%sAssign %s\n", pad, stmt.Assign.Left.Name.Text())
	case stmt.Command != nil:
		fmt.Fprintf(w, "%sCommand %s (%d args)\n", pad, stmt.Command.Name.Text(), len(stmt.Command.Args))
	case stmt.Invoke != nil:
		fmt.Fprintf(w, "%sInvoke %s\n", pad, stmt.Invoke.Left.Name.Text())
	case stmt.Const != nil:
		fmt.Fprintf(w, "%sConst %s\n", pad, nameOrBlank(stmt.Const.NameOpt))
	case stmt.Define != nil:
		fmt.Fprintf(w, "%sDefine %s\n", pad, nameOrBlank(stmt.Define.NameOpt))
	case stmt.Enum != nil:
		fmt.Fprintf(w, "%sEnum %s\n", pad, nameOrBlank(stmt.Enum.NameOpt))
	case stmt.DefFunc != nil:
		fmt.Fprintf(w, "%sDefFunc %s %s\n", pad, stmt.DefFunc.Keyword.Text(), nameOrBlank(stmt.DefFunc.NameOpt))
		for i := range stmt.DefFunc.Stmts {
			dumpStmt(w, &stmt.DefFunc.Stmts[i], depth+1)
		}
	case stmt.UseLib != nil:
		fmt.Fprintf(w, "%sUseLib\n", pad)
	case stmt.LibFunc != nil:
		fmt.Fprintf(w, "%sLibFunc %s\n", pad, nameOrBlank(stmt.LibFunc.NameOpt))
	case stmt.UseCom != nil:
		fmt.Fprintf(w, "%sUseCom %s\n", pad, nameOrBlank(stmt.UseCom.NameOpt))
	case stmt.ComFunc != nil:
		fmt.Fprintf(w, "%sComFunc %s\n", pad, nameOrBlank(stmt.ComFunc.NameOpt))
	case stmt.RegCmd != nil:
		fmt.Fprintf(w, "%sRegCmd\n", pad)
	case stmt.Cmd != nil:
		fmt.Fprintf(w, "%sCmd %s\n", pad, nameOrBlank(stmt.Cmd.NameOpt))
	case stmt.Module != nil:
		fmt.Fprintf(w, "%sModule %s\n", pad, nameOrBlank(stmt.Module.NameOpt))
		for i := range stmt.Module.Stmts {
			dumpStmt(w, &stmt.Module.Stmts[i], depth+1)
		}
	case stmt.Global != nil:
		fmt.Fprintf(w, "%sGlobal\n", pad)
	case stmt.Include != nil:
		fmt.Fprintf(w, "%sInclude %s\n", pad, nameOrBlank(stmt.Include.PathOpt))
	case stmt.Unknown != nil:
		fmt.Fprintf(w, "%sUnknownPreProc\n", pad)
	}
}

// nameOrBlank renders an optional name-bearing token's text, or "?" if
// the parser could not recover one.
func nameOrBlank(tok *ptoken.PToken) string {
	if tok == nil {
		return "?"
	}
	return tok.Text()
}
