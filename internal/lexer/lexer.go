// Package lexer implements the single-pass, no-backtracking scanner that
// turns document text into a flat token sequence.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vain0x/hsp3-ginger-sub000/internal/span"
	"github.com/vain0x/hsp3-ginger-sub000/internal/token"
)

type scanner struct {
	doc    span.DocID
	text   string
	offset int // byte offset of the scan head
	start  int // byte offset where the current token began

	line, col8, col16 int // position of the scan head
	sLine, sCol8, sCol16 int // position at token start

	out []token.Token
}

// Lex scans text into a non-empty token sequence terminated by a
// synthetic Eof token. It never fails: unrecognized bytes become Bad
// tokens.
func Lex(doc span.DocID, text string) []token.Token {
	sc := &scanner{doc: doc, text: text}
	sc.run()
	return sc.out
}

func (sc *scanner) pos() span.Pos {
	return span.Pos{Line: sc.line, UTF8: sc.col8, UTF16: sc.col16, Offset: sc.offset}
}

func (sc *scanner) startPos() span.Pos {
	return span.Pos{Line: sc.sLine, UTF8: sc.sCol8, UTF16: sc.sCol16, Offset: sc.start}
}

// peek returns the rune at the scan head plus n runes ahead (n=0 is the
// current rune), or 0 at end of input.
func (sc *scanner) peek(n int) rune {
	i := sc.offset
	for ; n > 0; n-- {
		if i >= len(sc.text) {
			return 0
		}
		_, size := utf8.DecodeRuneInString(sc.text[i:])
		i += size
	}
	if i >= len(sc.text) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(sc.text[i:])
	return r
}

func (sc *scanner) byteAt(i int) byte {
	if i < 0 || i >= len(sc.text) {
		return 0
	}
	return sc.text[i]
}

// bump advances the scan head by one rune, updating line/column.
func (sc *scanner) bump() {
	if sc.offset >= len(sc.text) {
		return
	}
	r, size := utf8.DecodeRuneInString(sc.text[sc.offset:])
	sc.offset += size
	if r == '\n' {
		sc.line++
		sc.col8, sc.col16 = 0, 0
		return
	}
	sc.col8 += size
	sc.col16 += utf16Width(r)
}

func utf16Width(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

func (sc *scanner) bumpN(n int) {
	for i := 0; i < n; i++ {
		sc.bump()
	}
}

// bumpBytes advances the scan head by n bytes (a whole number of runes).
func (sc *scanner) bumpBytes(n int) {
	end := sc.offset + n
	for sc.offset < end && sc.offset < len(sc.text) {
		sc.bump()
	}
}

func (sc *scanner) bumpAll() {
	for sc.offset < len(sc.text) {
		sc.bump()
	}
}

// find returns the byte offset (relative to the scan head) of the first
// occurrence of needle at or after the scan head, or -1.
func (sc *scanner) find(needle string) int {
	i := strings.Index(sc.text[sc.offset:], needle)
	return i
}

func (sc *scanner) commit(kind token.Kind) {
	text := sc.text[sc.start:sc.offset]
	sc.out = append(sc.out, token.Token{
		Kind: kind,
		Text: text,
		Loc:  span.Loc{Doc: sc.doc, Range: span.Range{Start: sc.startPos(), End: sc.pos()}},
	})
	sc.start = sc.offset
	sc.sLine, sc.sCol8, sc.sCol16 = sc.line, sc.col8, sc.col16
}

func (sc *scanner) run() {
	for {
		c := sc.peek(0)
		switch {
		case c == 0 && sc.offset >= len(sc.text):
			goto done
		case c == '\r':
			if sc.peek(1) == '\n' {
				sc.bumpN(2)
				sc.eatSpaces()
				sc.commit(token.Newlines)
			} else {
				sc.bump()
				sc.eatBlank()
				sc.commit(token.Blank)
			}
		case c == '\n':
			sc.bump()
			sc.eatSpaces()
			sc.commit(token.Newlines)
		case c == ' ' || c == '\t' || c == '　':
			sc.eatBlank()
			sc.commit(token.Blank)
		case c == '0' && (sc.peek(1) == 'b' || sc.peek(1) == 'B'):
			sc.bumpN(2)
			sc.eatWhile(isBinDigit)
			sc.commit(token.Number)
		case c == '0' && (sc.peek(1) == 'x' || sc.peek(1) == 'X'):
			sc.bumpN(2)
			sc.eatWhile(isHexDigit)
			sc.commit(token.Number)
		case c == '$':
			sc.bump()
			sc.eatWhile(isHexDigit)
			sc.commit(token.Number)
		case c >= '0' && c <= '9':
			sc.eatWhile(isDigit)
			sc.eatDigitSuffix()
			sc.commit(token.Number)
		case c == '\'':
			sc.bump()
			sc.eatEscapedText('\'')
			sc.eatExact("'")
			sc.commit(token.Char)
		case c == '"':
			sc.bump()
			sc.eatEscapedText('"')
			sc.eatExact(`"`)
			sc.commit(token.Str)
		case c == '{' && sc.peek(1) == '"':
			sc.bumpN(2)
			if i := sc.find(`"}`); i >= 0 {
				sc.bumpBytes(i + 2)
			} else {
				sc.bumpAll()
			}
			sc.commit(token.Str)
		case c == ';':
			sc.bump()
			sc.eatLine()
			sc.commit(token.Comment)
		case c == '/' && sc.peek(1) == '/':
			sc.bumpN(2)
			sc.eatLine()
			sc.commit(token.Comment)
		case c == '/' && sc.peek(1) == '*':
			sc.bumpN(2)
			if i := sc.find("*/"); i >= 0 {
				sc.bumpBytes(i + 2)
			} else {
				sc.bumpAll()
			}
			sc.commit(token.Comment)
		case c == '\\' && sc.peek(1) == '\r' && sc.peek(2) == '\n':
			sc.bumpN(3)
			sc.eatBlank()
			sc.commit(token.Blank)
		case c == '\\' && sc.peek(1) == '\n':
			sc.bumpN(2)
			sc.eatBlank()
			sc.commit(token.Blank)
		case isIdentStart(c):
			sc.bump()
			for isIdentCont(sc.peek(0)) {
				sc.bump()
			}
			text := sc.text[sc.start:sc.offset]
			kind := token.Ident
			if kw, ok := token.Keywords[text]; ok {
				kind = kw
			}
			sc.commit(kind)
		default:
			if k, n, ok := punct(c, sc.peek(1)); ok {
				sc.bumpN(n)
				sc.commit(k)
				continue
			}
			if unicode.IsSpace(c) {
				sc.eatBlank()
				sc.commit(token.Blank)
				continue
			}
			// Bad run: consume while nothing else recognizes the input.
			sc.bump()
			for {
				c2 := sc.peek(0)
				if c2 == 0 && sc.offset >= len(sc.text) {
					break
				}
				if isRecognized(c2) {
					break
				}
				sc.bump()
			}
			sc.commit(token.Bad)
		}
	}
done:
	sc.out = append(sc.out, token.Token{
		Kind: token.Eof,
		Loc:  span.Loc{Doc: sc.doc, Range: span.Range{Start: sc.pos(), End: sc.pos()}},
	})
}

func isRecognized(c rune) bool {
	if c == 0 {
		return true
	}
	if isIdentStart(c) || isDigit(c) {
		return true
	}
	if _, _, ok := punct(c, 0); ok {
		return true
	}
	switch c {
	case '\r', '\n', ' ', '\t', '　', '\'', '"', ';':
		return true
	}
	return unicode.IsSpace(c)
}

func isDigit(c rune) bool    { return c >= '0' && c <= '9' }
func isBinDigit(c rune) bool { return c == '0' || c == '1' }
func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c rune) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c == '_', c == '@', c == '`':
		return true
	case c == 0:
		return false
	case unicode.IsControl(c), isASCIIPunct(c):
		return false
	default:
		return !unicode.IsSpace(c)
	}
}

func isIdentCont(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}

func isASCIIPunct(c rune) bool {
	return strings.ContainsRune("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c)
}

func (sc *scanner) eatBlank() {
	for {
		c := sc.peek(0)
		switch {
		case c == ' ' || c == '\t' || c == '　':
			sc.bump()
		case c == '\r':
			if sc.peek(1) == '\n' {
				return
			}
			sc.bump()
		case c == '\n':
			return
		case c != 0 && unicode.IsSpace(c):
			sc.bump()
		default:
			return
		}
	}
}

func (sc *scanner) eatSpaces() {
	for {
		c := sc.peek(0)
		if c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '　' {
			sc.bump()
			continue
		}
		if c != 0 && unicode.IsSpace(c) {
			sc.bump()
			continue
		}
		return
	}
}

func (sc *scanner) eatLine() {
	i := sc.find("\n")
	if i < 0 {
		sc.bumpAll()
		return
	}
	if i >= 1 && sc.byteAt(sc.offset+i-1) == '\r' {
		i--
	}
	sc.bumpBytes(i)
}

func (sc *scanner) eatWhile(pred func(rune) bool) {
	for pred(sc.peek(0)) {
		sc.bump()
	}
}

func (sc *scanner) eatDigitSuffix() {
	if sc.peek(0) == '.' {
		sc.bump()
		sc.eatWhile(isDigit)
	}
	if c := sc.peek(0); c == 'e' || c == 'E' {
		sc.bump()
		if c2 := sc.peek(0); c2 == '+' || c2 == '-' {
			sc.bump()
		}
		sc.eatWhile(isDigit)
	}
}

func (sc *scanner) eatEscapedText(quote rune) {
	for {
		c := sc.peek(0)
		switch {
		case c == 0 && sc.offset >= len(sc.text):
			return
		case c == '\n' || c == '\r':
			return
		case c == '\\':
			sc.bump()
			sc.bump()
		case c == quote:
			return
		default:
			sc.bump()
		}
	}
}

func (sc *scanner) eatExact(s string) bool {
	if strings.HasPrefix(sc.text[sc.offset:], s) {
		sc.bumpN(utf8.RuneCountInString(s))
		return true
	}
	return false
}

// punct matches the fixed punctuation table, longest-first.
func punct(c, c2 rune) (token.Kind, int, bool) {
	two := func(k token.Kind) (token.Kind, int, bool) { return k, 2, true }
	one := func(k token.Kind) (token.Kind, int, bool) { return k, 1, true }
	switch c {
	case '(':
		return one(token.LeftParen)
	case ')':
		return one(token.RightParen)
	case '{':
		return one(token.LeftBrace)
	case '}':
		return one(token.RightBrace)
	case '<':
		switch c2 {
		case '=':
			return two(token.LeftEqual)
		case '<':
			return two(token.LeftShift)
		}
		return one(token.LeftAngle)
	case '>':
		switch c2 {
		case '=':
			return two(token.RightEqual)
		case '>':
			return two(token.RightShift)
		}
		return one(token.RightAngle)
	case '&':
		switch c2 {
		case '&':
			return two(token.AndAnd)
		case '=':
			return two(token.AndEqual)
		}
		return one(token.And)
	case '\\':
		if c2 == '=' {
			return two(token.BackslashEqual)
		}
		return one(token.Backslash)
	case '!':
		if c2 == '=' {
			return two(token.BangEqual)
		}
		return one(token.Bang)
	case ':':
		return one(token.Colon)
	case ',':
		return one(token.Comma)
	case '.':
		return one(token.Dot)
	case '=':
		if c2 == '=' {
			return two(token.EqualEqual)
		}
		return one(token.Equal)
	case '#':
		return one(token.Hash)
	case '^':
		if c2 == '=' {
			return two(token.HatEqual)
		}
		return one(token.Hat)
	case '-':
		switch c2 {
		case '=':
			return two(token.MinusEqual)
		case '-':
			return two(token.MinusMinus)
		case '>':
			return two(token.SlimArrow)
		}
		return one(token.Minus)
	case '%':
		return one(token.Percent)
	case '|':
		switch c2 {
		case '=':
			return two(token.PipeEqual)
		case '|':
			return two(token.PipePipe)
		}
		return one(token.Pipe)
	case '+':
		switch c2 {
		case '=':
			return two(token.PlusEqual)
		case '+':
			return two(token.PlusPlus)
		}
		return one(token.Plus)
	case '/':
		if c2 == '=' {
			return two(token.SlashEqual)
		}
		return one(token.Slash)
	case '*':
		if c2 == '=' {
			return two(token.StarEqual)
		}
		return one(token.Star)
	}
	return 0, 0, false
}
