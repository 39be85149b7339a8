// Package dolang contains the front end of the dolang source-to-source
// transpiler: a driver that reads program text and runs the lexical pass
// over it. Later stages (parsing, type checking, code generation) do not
// exist yet, so the driver's output is the token stream itself, as a
// human-readable listing and optionally as a binary cache for the future
// parser to pick up.
package dolang

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dekarrin/rosed"
	"github.com/thedavidchu/dolang/internal/lex"
	"github.com/thedavidchu/dolang/internal/manifest"
)

const consoleOutputWidth = 80

// Transpiler runs the front end over source files and writes its reports to
// an output stream.
type Transpiler struct {
	out       *bufio.Writer
	width     int
	tokensOut string
}

// New creates a Transpiler writing its reports to the given output stream.
// If nil is given for the output stream, a bufio.Writer is opened on stdout.
// If width is not positive, a default console width is used. If
// tokensOutPath is not empty, the lexed token stream is also written there
// in the binary cache format.
func New(outputStream io.Writer, width int, tokensOutPath string) *Transpiler {
	if outputStream == nil {
		outputStream = os.Stdout
	}
	if width <= 0 {
		width = consoleOutputWidth
	}

	return &Transpiler{
		out:       bufio.NewWriter(outputStream),
		width:     width,
		tokensOut: tokensOutPath,
	}
}

// TranslateFile runs the front end on the file at path. The file may be a
// single dolang source file or a TOML build manifest naming several;
// manifests are detected by their header. Each source file is lexed and its
// token listing written to the output stream. The first lexical error stops
// the run and is returned as a *lex.Error wrapped with the offending file's
// path.
//
// If a token cache path was configured, the tokens of all translated files
// are written there as one stream, in translation order. Positions in the
// cache are relative to each token's own source file.
func (t *Transpiler) TranslateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %q: %w", path, err)
	}

	sources := []string{path}
	if manifest.IsManifest(data) {
		sources, err = manifest.ResolveSources(path)
		if err != nil {
			return fmt.Errorf("loading manifest %q: %w", path, err)
		}
	}

	var allToks []lex.Token
	for _, src := range sources {
		toks, err := t.translateSource(src)
		if err != nil {
			return err
		}
		allToks = append(allToks, toks...)
	}

	if t.tokensOut != "" {
		if err := os.WriteFile(t.tokensOut, lex.EncodeTokens(allToks), 0644); err != nil {
			return fmt.Errorf("writing token cache: %w", err)
		}
	}

	return nil
}

// translateSource lexes one source file and writes its token listing.
func (t *Transpiler) translateSource(path string) ([]lex.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	toks, err := lex.Lex(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	plural := "s"
	if len(toks) == 1 {
		plural = ""
	}
	report := fmt.Sprintf("%s: %d token%s\n", path, len(toks), plural)
	if len(toks) > 0 {
		report += listTokens(toks, t.width) + "\n"
	}

	if wErr := t.write(report); wErr != nil {
		return nil, wErr
	}

	return toks, nil
}

func (t *Transpiler) write(s string) error {
	if _, err := t.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := t.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

// listTokens returns a text table of the tokens in a stream with their
// positions, kinds, and exact source text.
func listTokens(tokens []lex.Token, width int) string {
	data := [][]string{{"Pos", "Kind", "Text"}}

	for _, tok := range tokens {
		infoRow := []string{strconv.Itoa(tok.Pos), tok.Kind.String(), tok.Text}
		data = append(data, infoRow)
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, width, tableOpts).
		String()
}

// FullErrorMessage returns the most detailed rendering available for an
// error returned by TranslateFile: for lexical errors, the offending source
// line with a cursor followed by the positioned message; for everything
// else, the plain error text.
func FullErrorMessage(err error) string {
	var lexErr *lex.Error
	if errors.As(err, &lexErr) {
		return lexErr.FullMessage()
	}
	return err.Error()
}
