// Package lex implements the lexical pass of the dolang transpiler front
// end. It converts raw program text into an ordered sequence of typed tokens
// for a downstream parser to consume.
package lex

import "fmt"

// TokenKind classifies a lexed token. It is a closed enumeration; the lexer
// never produces a kind outside the constants defined here, and no kind
// carries a payload beyond the classification itself.
type TokenKind int

const (
	// keywords
	Function TokenKind = iota
	Return
	Import
	Let
	Const

	// literals
	String
	Integer

	// identifiers
	Identifier

	// brackets and such
	LeftParenthesis
	RightParenthesis
	LeftSquareBracket
	RightSquareBracket
	LeftBrace
	RightBrace

	// separators
	Period
	Comma
	Set
	Colon
	Semicolon
	Arrow

	// operators
	Plus
	Minus
)

var kindNames = map[TokenKind]string{
	Function:           "Function",
	Return:             "Return",
	Import:             "Import",
	Let:                "Let",
	Const:              "Const",
	String:             "String",
	Integer:            "Integer",
	Identifier:         "Identifier",
	LeftParenthesis:    "LeftParenthesis",
	RightParenthesis:   "RightParenthesis",
	LeftSquareBracket:  "LeftSquareBracket",
	RightSquareBracket: "RightSquareBracket",
	LeftBrace:          "LeftBrace",
	RightBrace:         "RightBrace",
	Period:             "Period",
	Comma:              "Comma",
	Set:                "Set",
	Colon:              "Colon",
	Semicolon:          "Semicolon",
	Arrow:              "Arrow",
	Plus:               "Plus",
	Minus:              "Minus",
}

func (k TokenKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// keywords maps source spellings to their keyword kinds. Matching is
// case-sensitive and whole-word; an identifier that merely begins with a
// keyword, such as "lets", is still an identifier.
var keywords = map[string]TokenKind{
	"function": Function,
	"return":   Return,
	"import":   Import,
	"let":      Let,
	"const":    Const,
}

// Token is one classified, positioned substring of the source text. Text is
// the exact substring matched, delimiting quotes included for strings, and is
// never empty. Pos is the zero-based offset, in characters, of the token's
// first character in the original input.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

func (t Token) String() string {
	return fmt.Sprintf("(%s %q @%d)", t.Kind, t.Text, t.Pos)
}
