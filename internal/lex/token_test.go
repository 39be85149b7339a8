package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_TokenKind_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("Function", Function.String())
	assert.Equal("Set", Set.String())
	assert.Equal("LeftSquareBracket", LeftSquareBracket.String())
	assert.Equal("TokenKind(9999)", TokenKind(9999).String())
}

func Test_Token_String(t *testing.T) {
	assert := assert.New(t)

	tok := Token{Kind: Identifier, Text: "x", Pos: 4}
	assert.Equal("(Identifier \"x\" @4)", tok.String())
}
