package dolang

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/thedavidchu/dolang/internal/input"
	"github.com/thedavidchu/dolang/internal/lex"
)

// Session is an interactive lexing session attached to an input stream and
// an output stream. Each line entered is scanned as dolang source and the
// resulting tokens, or the positioned lexical error, are printed.
type Session struct {
	in    input.Reader
	out   *bufio.Writer
	width int
}

// NewSession creates a session ready to operate on the given input and
// output streams. If nil is given for the input stream, lines are read from
// stdin; if nil is given for the output stream, a buffered writer is opened
// on stdout. Readline-based editing is used when reading directly from a
// terminal unless forceDirectInput is set.
func NewSession(inputStream io.Reader, outputStream io.Writer, forceDirectInput bool, width int) (*Session, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}
	if width <= 0 {
		width = consoleOutputWidth
	}

	s := &Session{
		out:   bufio.NewWriter(outputStream),
		width: width,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout

	if useReadline {
		var err error
		s.in, err = input.NewInteractiveReader("dolang> ")
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		s.in = input.NewDirectReader(inputStream)
	}

	return s, nil
}

// Close cleans up all resources associated with the Session, including any
// readline-related resources created for interactive mode.
func (s *Session) Close() error {
	if err := s.in.Close(); err != nil {
		return fmt.Errorf("close line reader: %w", err)
	}
	return nil
}

// Run reads lines and lexes them until end of input (Ctrl-D on a terminal).
// A lexical error in one line is reported like any other result and does not
// end the session.
func (s *Session) Run() error {
	intro := "dolang token inspector\n"
	intro += "======================\n"
	intro += "Type a line of dolang source to see its tokens. Press Ctrl-D to exit.\n"

	if err := s.write(intro); err != nil {
		return err
	}

	for {
		line, err := s.in.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}

		toks, lexErr := lex.Lex(line)
		if lexErr != nil {
			if err := s.write(FullErrorMessage(lexErr) + "\n"); err != nil {
				return err
			}
			continue
		}

		listing := fmt.Sprintf("%d tokens\n", len(toks))
		if len(toks) > 0 {
			listing = listTokens(toks, s.width) + "\n"
		}
		if err := s.write(listing); err != nil {
			return err
		}
	}

	return s.write("Goodbye\n")
}

func (s *Session) write(str string) error {
	if _, err := s.out.WriteString(str); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := s.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}
