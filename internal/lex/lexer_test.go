package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Lex_tokenKindSequence(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []TokenKind
	}{
		{
			name:   "blank string",
			input:  "",
			expect: []TokenKind{},
		},
		{
			name:   "only whitespace",
			input:  " \t\r\n  ",
			expect: []TokenKind{},
		},
		{
			name:   "let statement",
			input:  "let x = 5;",
			expect: []TokenKind{Let, Identifier, Set, Integer, Semicolon},
		},
		{
			name:  "function definition",
			input: "function f(a: int) -> int { return a; }",
			expect: []TokenKind{
				Function, Identifier, LeftParenthesis, Identifier, Colon,
				Identifier, RightParenthesis, Arrow, Identifier, LeftBrace,
				Return, Identifier, Semicolon, RightBrace,
			},
		},
		{
			name:   "import statement",
			input:  "import \"std\"",
			expect: []TokenKind{Import, String},
		},
		{
			name:   "walrus assignment",
			input:  "x := 5",
			expect: []TokenKind{Identifier, Set, Integer},
		},
		{
			name:   "lone colon is not set",
			input:  "x: int",
			expect: []TokenKind{Identifier, Colon, Identifier},
		},
		{
			name:   "arrow is never minus fragments",
			input:  "->",
			expect: []TokenKind{Arrow},
		},
		{
			name:   "lone minus",
			input:  "-",
			expect: []TokenKind{Minus},
		},
		{
			name:   "minus then integer",
			input:  "-5",
			expect: []TokenKind{Minus, Integer},
		},
		{
			name:   "plus and minus",
			input:  "a + b - c",
			expect: []TokenKind{Identifier, Plus, Identifier, Minus, Identifier},
		},
		{
			name:   "digit run followed by period",
			input:  "5.",
			expect: []TokenKind{Integer, Period},
		},
		{
			name:   "keyword prefix is identifier",
			input:  "lets",
			expect: []TokenKind{Identifier},
		},
		{
			name:   "keyword match is case-sensitive",
			input:  "Let",
			expect: []TokenKind{Identifier},
		},
		{
			name:   "underscore starts identifier",
			input:  "_x1",
			expect: []TokenKind{Identifier},
		},
		{
			name:   "all brackets",
			input:  "()[]{}",
			expect: []TokenKind{LeftParenthesis, RightParenthesis, LeftSquareBracket, RightSquareBracket, LeftBrace, RightBrace},
		},
		{
			name:   "member access",
			input:  "a.b, c",
			expect: []TokenKind{Identifier, Period, Identifier, Comma, Identifier},
		},
		{
			name:   "comment only",
			input:  "# nothing to see here",
			expect: []TokenKind{},
		},
		{
			name:   "comment strips to end of line",
			input:  "let x # the value\nconst y",
			expect: []TokenKind{Let, Identifier, Const, Identifier},
		},
		{
			name:   "empty string literal",
			input:  "\"\"",
			expect: []TokenKind{String},
		},
		{
			name:   "backslash does not escape the closing quote",
			input:  "\"a\\\" x",
			expect: []TokenKind{String, Identifier},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actualToks, err := Lex(tc.input)
			if !assert.NoError(err) {
				return
			}

			actual := make([]TokenKind, len(actualToks))
			for i := range actualToks {
				actual[i] = actualToks[i].Kind
			}

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Lex_fullTokens(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []Token
	}{
		{
			name:  "let statement",
			input: "let x = 5;",
			expect: []Token{
				{Kind: Let, Text: "let", Pos: 0},
				{Kind: Identifier, Text: "x", Pos: 4},
				{Kind: Set, Text: "=", Pos: 6},
				{Kind: Integer, Text: "5", Pos: 8},
				{Kind: Semicolon, Text: ";", Pos: 9},
			},
		},
		{
			name:  "walrus keeps its surface text",
			input: "x := \"hi\" # c",
			expect: []Token{
				{Kind: Identifier, Text: "x", Pos: 0},
				{Kind: Set, Text: ":=", Pos: 2},
				{Kind: String, Text: "\"hi\"", Pos: 5},
			},
		},
		{
			name:  "positions count characters across lines",
			input: "let\nx",
			expect: []Token{
				{Kind: Let, Text: "let", Pos: 0},
				{Kind: Identifier, Text: "x", Pos: 4},
			},
		},
		{
			name:  "arrow position is at the dash",
			input: "a ->b",
			expect: []Token{
				{Kind: Identifier, Text: "a", Pos: 0},
				{Kind: Arrow, Text: "->", Pos: 2},
				{Kind: Identifier, Text: "b", Pos: 4},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Lex(tc.input)
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Lex_errors(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		expectKind ErrorKind
		expectPos  int
		expectLine int
		expectCol  int
	}{
		{
			name:       "unterminated string at start",
			input:      "\"unterminated",
			expectKind: UnterminatedString,
			expectPos:  0,
			expectLine: 1,
			expectCol:  1,
		},
		{
			name:       "unterminated string mid-input",
			input:      "let s = \"abc",
			expectKind: UnterminatedString,
			expectPos:  8,
			expectLine: 1,
			expectCol:  9,
		},
		{
			name:       "unexpected character at start",
			input:      "@",
			expectKind: UnexpectedCharacter,
			expectPos:  0,
			expectLine: 1,
			expectCol:  1,
		},
		{
			name:       "unexpected character on later line",
			input:      "let x = 5;\nlet y = ?;",
			expectKind: UnexpectedCharacter,
			expectPos:  19,
			expectLine: 2,
			expectCol:  9,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actualToks, err := Lex(tc.input)
			if !assert.Error(err) {
				return
			}
			assert.Nil(actualToks)

			var lexErr *Error
			if !assert.ErrorAs(err, &lexErr) {
				return
			}

			assert.Equal(tc.expectKind, lexErr.Kind())
			assert.Equal(tc.expectPos, lexErr.Position())
			assert.Equal(tc.expectLine, lexErr.Line())
			assert.Equal(tc.expectCol, lexErr.Column())
		})
	}
}

func Test_Lex_idempotence(t *testing.T) {
	assert := assert.New(t)

	input := "function f(a: int) -> int { return a; } # trailing"

	first, err1 := Lex(input)
	second, err2 := Lex(input)

	assert.NoError(err1)
	assert.NoError(err2)
	assert.Equal(first, second)
}

func Test_Lex_whitespaceInsensitivity(t *testing.T) {
	assert := assert.New(t)

	tight := "let x=5;"
	loose := "let \t x\n\n=    5\r\n;"

	tightToks, err := Lex(tight)
	if !assert.NoError(err) {
		return
	}
	looseToks, err := Lex(loose)
	if !assert.NoError(err) {
		return
	}

	if !assert.Len(looseToks, len(tightToks)) {
		return
	}
	for i := range tightToks {
		assert.Equal(tightToks[i].Kind, looseToks[i].Kind, "token #%d, kind mismatch", i)
		assert.Equal(tightToks[i].Text, looseToks[i].Text, "token #%d, text mismatch", i)
	}
}

func Test_Lex_roundTrip(t *testing.T) {
	assert := assert.New(t)

	// with no comments and single spaces between tokens, rejoining the token
	// texts must rebuild the input exactly
	input := "function f ( a : int ) -> int { return a ; }"

	toks, err := Lex(input)
	if !assert.NoError(err) {
		return
	}

	rebuilt := ""
	for i := range toks {
		if i > 0 {
			rebuilt += " "
		}
		rebuilt += toks[i].Text
	}

	assert.Equal(input, rebuilt)
}

func Test_Error_FullMessage(t *testing.T) {
	assert := assert.New(t)

	_, err := Lex("let y = ?;")
	if !assert.Error(err) {
		return
	}

	var lexErr *Error
	if !assert.ErrorAs(err, &lexErr) {
		return
	}

	expect := "let y = ?;\n" +
		"        ^\n" +
		"lexical error: around line 1, char 9: unexpected character '?'"
	assert.Equal(expect, lexErr.FullMessage())
}
