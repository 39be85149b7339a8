package lex

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dekarrin/rezi"
)

// This file contains the binary token-cache format. A lexed stream can be
// persisted with EncodeTokens and handed to a later stage without
// re-scanning the source.

func encBinaryInt(i int) []byte {
	enc := make([]byte, 8)
	binary.BigEndian.PutUint64(enc, uint64(i))
	return enc
}

// always consumes 8 bytes but does return len
func decBinaryInt(data []byte) (int, int, error) {
	if len(data) < 8 {
		return 0, 0, fmt.Errorf("data does not contain 8 bytes")
	}

	return int(int64(binary.BigEndian.Uint64(data[:8]))), 8, nil
}

func encBinaryString(s string) []byte {
	enc := make([]byte, 0)

	chCount := 0
	for _, ch := range s {
		chBuf := make([]byte, utf8.UTFMax)
		byteLen := utf8.EncodeRune(chBuf, ch)
		enc = append(enc, chBuf[:byteLen]...)
		chCount++
	}

	countBytes := encBinaryInt(chCount)
	enc = append(countBytes, enc...)

	return enc
}

// returns the string followed by bytes consumed
func decBinaryString(data []byte) (string, int, error) {
	runeCount, readBytes, err := decBinaryInt(data)
	if err != nil {
		return "", 0, fmt.Errorf("decoding string rune count: %w", err)
	}
	data = data[readBytes:]

	if runeCount < 0 {
		return "", 0, fmt.Errorf("string rune count < 0")
	}

	var sb strings.Builder

	for i := 0; i < runeCount; i++ {
		ch, chBytes := utf8.DecodeRune(data)
		if ch == utf8.RuneError {
			if chBytes == 0 {
				return "", 0, fmt.Errorf("unexpected end of data in string")
			}
			return "", 0, fmt.Errorf("invalid UTF-8 encoding in string")
		}

		sb.WriteRune(ch)
		readBytes += chBytes
		data = data[chBytes:]
	}

	return sb.String(), readBytes, nil
}

func (t Token) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, encBinaryInt(int(t.Kind))...)
	data = append(data, encBinaryString(t.Text)...)
	data = append(data, encBinaryInt(t.Pos)...)

	return data, nil
}

func (t *Token) UnmarshalBinary(data []byte) error {
	var err error
	var bytesRead int

	var kindVal int
	kindVal, bytesRead, err = decBinaryInt(data)
	if err != nil {
		return fmt.Errorf("token kind: %w", err)
	}
	if _, ok := kindNames[TokenKind(kindVal)]; !ok {
		return fmt.Errorf("unknown token kind %d", kindVal)
	}
	t.Kind = TokenKind(kindVal)
	data = data[bytesRead:]

	t.Text, bytesRead, err = decBinaryString(data)
	if err != nil {
		return fmt.Errorf("token text: %w", err)
	}
	data = data[bytesRead:]

	t.Pos, _, err = decBinaryInt(data)
	if err != nil {
		return fmt.Errorf("token position: %w", err)
	}

	return nil
}

// EncodeTokens serializes a token stream to the cache format: the token
// count followed by each token individually framed.
func EncodeTokens(tokens []Token) []byte {
	data := encBinaryInt(len(tokens))

	for _, t := range tokens {
		data = append(data, rezi.EncBinary(t)...)
	}

	return data
}

// DecodeTokens parses data previously produced by EncodeTokens back into a
// token stream.
func DecodeTokens(data []byte) ([]Token, error) {
	count, readBytes, err := decBinaryInt(data)
	if err != nil {
		return nil, fmt.Errorf("token count: %w", err)
	}
	data = data[readBytes:]

	if count < 0 {
		return nil, fmt.Errorf("token count < 0")
	}

	tokens := make([]Token, count)
	for i := 0; i < count; i++ {
		n, err := rezi.DecBinary(data, &tokens[i])
		if err != nil {
			return nil, fmt.Errorf("token #%d: %w", i, err)
		}
		data = data[n:]
	}

	return tokens, nil
}
