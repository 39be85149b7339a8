package lex

import (
	"fmt"
	"unicode"
)

// Lexer is the transient state of a single scan: the full input as an
// indexable sequence of characters, a cursor, and the tokens accumulated so
// far. Create one with New, consume it with one call to Run, then discard
// it. Independent Lexers share nothing and may run concurrently.
type Lexer struct {
	input  []rune
	cur    int
	tokens []Token
}

// New creates a Lexer over the given source text. Position bookkeeping is in
// characters rather than bytes, so the input is held as runes.
func New(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

// Lex scans the given source text and returns the complete token sequence,
// or the first lexical error encountered.
func Lex(input string) ([]Token, error) {
	return New(input).Run()
}

// Run performs the scan in one left-to-right pass. On success it returns
// every token in the input in strictly increasing position order; an empty
// input yields an empty sequence. On failure it returns the first *Error
// encountered and no tokens. There is no partial recovery: scanning stops at
// the first unterminated literal or unrecognized character.
func (lx *Lexer) Run() ([]Token, error) {
	for lx.cur < len(lx.input) {
		ch := lx.input[lx.cur]

		// whitespace separates tokens but is never part of one
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			lx.cur++
			continue
		}

		// comments run from '#' to end of line and are stripped
		if ch == '#' {
			for lx.cur < len(lx.input) && lx.input[lx.cur] != '\n' {
				lx.cur++
			}
			continue
		}

		switch {
		case isIdentStart(ch):
			lx.scanIdentifier()
		case isDigit(ch):
			lx.scanInteger()
		case ch == '"':
			if err := lx.scanString(); err != nil {
				return nil, err
			}
		default:
			if err := lx.scanPunctuation(); err != nil {
				return nil, err
			}
		}
	}

	return lx.tokens, nil
}

// scanIdentifier consumes the maximal run of letters, digits, and
// underscores, then decides keyword versus identifier by exact lookup of the
// whole matched text.
func (lx *Lexer) scanIdentifier() {
	start := lx.cur
	for lx.cur < len(lx.input) && isIdentPart(lx.input[lx.cur]) {
		lx.cur++
	}

	text := string(lx.input[start:lx.cur])
	kind, ok := keywords[text]
	if !ok {
		kind = Identifier
	}
	lx.emit(kind, text, start)
}

// scanInteger consumes the maximal run of decimal digits. There is no sign
// handling here (a leading '-' is a separate Minus token) and no decimal
// point support; a digit run followed by '.' produces Integer then Period.
func (lx *Lexer) scanInteger() {
	start := lx.cur
	for lx.cur < len(lx.input) && isDigit(lx.input[lx.cur]) {
		lx.cur++
	}
	lx.emit(Integer, string(lx.input[start:lx.cur]), start)
}

// scanString consumes a double-quoted literal. The first '"' after the
// opener terminates the literal; there is no escape processing. The emitted
// text includes both delimiting quotes. Reaching end of input before a
// closing quote is a lexical error positioned at the opening quote.
func (lx *Lexer) scanString() error {
	start := lx.cur
	lx.cur++ // opening quote

	for lx.cur < len(lx.input) {
		if lx.input[lx.cur] == '"' {
			lx.cur++
			lx.emit(String, string(lx.input[start:lx.cur]), start)
			return nil
		}
		lx.cur++
	}

	return newError(UnterminatedString, "unterminated string literal", start, lx.input)
}

// scanPunctuation consumes one punctuation token, looking ahead a single
// character for the two-character forms: "->" is one Arrow and ":=" is one
// Set, never fragments. A lone '=' is also Set; a lone ':' is Colon.
func (lx *Lexer) scanPunctuation() error {
	start := lx.cur
	ch := lx.input[lx.cur]

	var kind TokenKind
	switch ch {
	case '(':
		kind = LeftParenthesis
	case ')':
		kind = RightParenthesis
	case '[':
		kind = LeftSquareBracket
	case ']':
		kind = RightSquareBracket
	case '{':
		kind = LeftBrace
	case '}':
		kind = RightBrace
	case '.':
		kind = Period
	case ',':
		kind = Comma
	case ';':
		kind = Semicolon
	case '+':
		kind = Plus
	case '=':
		kind = Set
	case ':':
		if lx.cur+1 < len(lx.input) && lx.input[lx.cur+1] == '=' {
			lx.cur += 2
			lx.emit(Set, ":=", start)
			return nil
		}
		kind = Colon
	case '-':
		if lx.cur+1 < len(lx.input) && lx.input[lx.cur+1] == '>' {
			lx.cur += 2
			lx.emit(Arrow, "->", start)
			return nil
		}
		kind = Minus
	default:
		return newError(UnexpectedCharacter, fmt.Sprintf("unexpected character %q", ch), start, lx.input)
	}

	lx.cur++
	lx.emit(kind, string(ch), start)
	return nil
}

func (lx *Lexer) emit(kind TokenKind, text string, pos int) {
	lx.tokens = append(lx.tokens, Token{Kind: kind, Text: text, Pos: pos})
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || isDigit(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
