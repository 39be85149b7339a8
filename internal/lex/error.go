package lex

import "fmt"

// file error.go contains the errors produced by scanning dolang source.

// ErrorKind identifies the way a lex run failed.
type ErrorKind int

const (
	// UnterminatedString means a string literal's opening quote was never
	// closed before end of input.
	UnterminatedString ErrorKind = iota

	// UnexpectedCharacter means a character matched no scanning rule.
	UnexpectedCharacter
)

// Error describes the first problem encountered while scanning. It carries
// the zero-based character offset the problem was detected at, along with
// the 1-indexed line and column derived from that offset for display
// purposes.
type Error struct {
	kind       ErrorKind
	message    string
	pos        int
	line       int
	col        int
	sourceLine string
}

func (e *Error) Error() string {
	if e.line == 0 {
		return fmt.Sprintf("lexical error: %s", e.message)
	}

	return fmt.Sprintf("lexical error: around line %d, char %d: %s", e.line, e.col, e.message)
}

// Kind returns which of the lexical failure modes occurred.
func (e *Error) Kind() ErrorKind {
	return e.kind
}

// Position returns the zero-based character offset in the input at which the
// problem was detected. For an unterminated string this is the offset of the
// opening quote.
func (e *Error) Position() int {
	return e.pos
}

// Line returns the 1-indexed line the problem was detected on.
func (e *Error) Line() int {
	return e.line
}

// Column returns the 1-indexed character-of-line the problem was detected
// at.
func (e *Error) Column() int {
	return e.col
}

// FullMessage shows the complete message of the error string along with the
// offending line and a cursor to the problem position in a formatted way.
func (e *Error) FullMessage() string {
	errMsg := e.Error()

	if e.line != 0 {
		errMsg = e.SourceLineWithCursor() + "\n" + errMsg
	}

	return errMsg
}

// SourceLineWithCursor returns the offending source code on one line and
// directly under it a cursor showing where the problem was detected.
func (e *Error) SourceLineWithCursor() string {
	if e.sourceLine == "" {
		return ""
	}

	cursorLine := ""
	// col is 1-indexed.
	for i := 0; i < e.col-1; i++ {
		cursorLine += " "
	}

	return e.sourceLine + "\n" + cursorLine + "^"
}

// newError builds an *Error for the problem at the given offset, deriving
// the line, column, and offending source line from the input being scanned.
func newError(kind ErrorKind, msg string, pos int, input []rune) *Error {
	e := &Error{
		kind:    kind,
		message: msg,
		pos:     pos,
		line:    1,
		col:     1,
	}

	lineStart := 0
	for i := 0; i < pos && i < len(input); i++ {
		if input[i] == '\n' {
			e.line++
			e.col = 1
			lineStart = i + 1
		} else {
			e.col++
		}
	}

	lineEnd := lineStart
	for lineEnd < len(input) && input[lineEnd] != '\n' {
		lineEnd++
	}
	e.sourceLine = string(input[lineStart:lineEnd])

	return e
}
