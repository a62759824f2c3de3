package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vain0x/hsp3-ginger-sub000/internal/lexer"
	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/token"
)

var formatCommentsCmd = &cobra.Command{
	Use:   "format-comments [files...]",
	Short: "rewrite // comments as ; comments, overwriting each input file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, files []string) error {
		count := 0
		for _, filename := range files {
			text, err := readInput(filename)
			if err != nil {
				return err
			}
			output := formatComments(text)

			if filename == "-" {
				if _, err := os.Stdout.WriteString(output); err != nil {
					return err
				}
			} else if err := os.WriteFile(filename, []byte(output), 0o644); err != nil {
				return err
			}
			count++
		}
		return nil
	},
}

// formatComments rewrites every `//`-style comment token to the `;`
// form HSP3 tools otherwise expect, preserving alignment where the
// original used multiple spaces to line up trailing comments. Lines
// that are entirely dashes or equal signs become section-rule comments
// (`; -...`/`; =...`); a triple-slash is treated as a doc comment and
// becomes `;;`.
func formatComments(text string) string {
	tokens := lexer.Lex(span.DocID(1), text)

	var out strings.Builder
	out.Grow(len(text))

	for _, tok := range tokens {
		if tok.Kind != token.Comment || !strings.HasPrefix(tok.Text, "//") {
			out.WriteString(tok.Text)
			continue
		}

		body := tok.Text
		slash := 0
		for slash < len(body) && body[slash] == '/' {
			slash++
		}
		rest := body[slash:]

		space := 0
		for space < len(rest) && rest[space] == ' ' {
			space++
		}
		tab := 0
		for tab < len(rest) && rest[tab] == '\t' {
			tab++
		}
		indentWidth := space
		if tab > indentWidth {
			indentWidth = tab
		}
		content := rest[indentWidth:]

		if slash == 2 && space == 1 && len(content) >= 10 && isAllRune(content, '-') {
			out.WriteString("; -")
			out.WriteString(content)
			continue
		}
		if slash == 2 && space == 1 && len(content) >= 10 && isAllRune(content, '=') {
			out.WriteString("; =")
			out.WriteString(content)
			continue
		}

		n := slash + space
		if slash == 3 {
			out.WriteString(";;")
			n -= 2
		} else {
			out.WriteString(";")
			n--
		}

		switch {
		case tab >= 1:
			out.WriteString(strings.Repeat("\t", tab))
		case space == 1:
			out.WriteString(" ")
		case space >= 2:
			out.WriteString(strings.Repeat(" ", n))
		}

		out.WriteString(content)
	}

	return out.String()
}

func isAllRune(s string, r rune) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c != r {
			return false
		}
	}
	return true
}
