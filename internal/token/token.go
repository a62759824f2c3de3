// Package token defines lexical token kinds and trivia classification.
package token

import "github.com/vain0x/hsp3-ginger-sub000/internal/span"

// Kind identifies the lexical class of a Token.
type Kind int

const (
	Bad Kind = iota
	Eof

	// Trivia.
	Blank    // non-newline whitespace, including escaped newlines
	Newlines // one or more newlines plus any following whitespace
	Comment  // `;...`, `//...`, `/*...*/`

	// Literals and identifiers.
	Ident
	Number
	Char
	Str

	// Keywords.
	If
	Else

	// Synthetic.
	Eos // end of statement, inserted by the trivia attacher

	// Punctuation.
	Hash         // #
	At           // @ (only emitted standalone; usually folded into Ident)
	Dot          // .
	Comma        // ,
	Colon        // :
	LeftParen    // (
	RightParen   // )
	LeftBrace    // {
	RightBrace   // }
	LeftAngle    // <
	RightAngle   // >
	LeftEqual    // <=
	RightEqual   // >=
	LeftShift    // <<
	RightShift   // >>
	EqualEqual   // ==
	BangEqual    // !=
	Equal        // =
	Bang         // !
	And          // &
	AndAnd       // &&
	AndEqual     // &=
	Pipe         // |
	PipePipe     // ||
	PipeEqual    // |=
	Hat          // ^
	HatEqual     // ^=
	Plus         // +
	PlusPlus     // ++
	PlusEqual    // +=
	Minus        // -
	MinusMinus   // --
	MinusEqual   // -=
	SlimArrow    // ->
	Star         // *
	StarEqual    // *=
	Slash        // /
	SlashEqual   // /=
	Percent      // %
	Backslash    // \
	BackslashEqual
)

var trivia = map[Kind]bool{
	Blank:    true,
	Newlines: true,
	Comment:  true,
}

// IsTrivia reports whether k is whitespace or comment trivia attached to
// a PToken rather than a significant token in its own right.
func IsTrivia(k Kind) bool { return trivia[k] }

// IsLeadingTrivia reports whether k may appear in a PToken's leading
// trivia run. All trivia kinds qualify, including Newlines: blank lines
// and comment-only lines before a token are folded into its leading
// trivia rather than re-emitted as separate tokens.
func IsLeadingTrivia(k Kind) bool { return trivia[k] }

// IsTrailingTrivia reports whether k may appear in a PToken's trailing
// trivia run: blanks and comments up to (but not including) the line's
// terminating Newlines/Eof.
func IsTrailingTrivia(k Kind) bool { return k == Blank || k == Comment }

// IsLineEnd reports whether k ends a line for trivia-attachment purposes.
func IsLineEnd(k Kind) bool { return k == Newlines || k == Eof }

// Keywords maps reserved identifier text to its keyword Kind.
var Keywords = map[string]Kind{
	"if":   If,
	"else": Else,
}

// Token is one lexical unit: a kind, its source text, and its location.
type Token struct {
	Kind Kind
	Text string
	Loc  span.Loc
}

func (t Token) String() string {
	return t.Text
}
