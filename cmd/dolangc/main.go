/*
Dolangc runs the front end of the dolang transpiler.

It reads dolang source text and scans it into a stream of tokens, printing
the stream as a listing. No further stages exist yet; when they do, the same
entry point will carry the stream through them. The input may be a single
source file or a TOML build manifest naming several.

Usage:

	dolangc [flags] FILE
	dolangc -i

The flags are:

	-v, --version
		Give the current version of dolangc and then exit.

	-i, --interactive
		Start an interactive session that lexes each entered line instead of
		reading a file.

	-t, --tokens OUT
		Also write the lexed token stream to OUT in the binary cache format.
		If not given, will default to the value of environment variable
		DOLANG_TOKENS_OUT, and if that is not given, no cache is written.

	-d, --direct
		Force reading directly from stdin as opposed to using GNU readline
		based routines for reading lines even if launched in a tty with stdin
		and stdout.

	-w, --width WIDTH
		Width of console output. Defaults to 80.
*/
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/thedavidchu/dolang"
	"github.com/thedavidchu/dolang/internal/lex"
	"github.com/thedavidchu/dolang/internal/version"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitLexError indicates an unsuccessful program execution due to a
	// lexical error in the input.
	ExitLexError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue reading the input or setting up the front end.
	ExitInitError

	// ExitUsageError indicates an unsuccessful program execution due to bad
	// arguments.
	ExitUsageError
)

const EnvTokensOut = "DOLANG_TOKENS_OUT"

var (
	returnCode int = ExitSuccess

	flagVersion     = pflag.BoolP("version", "v", false, "Give the current version of dolangc and then exit.")
	flagInteractive = pflag.BoolP("interactive", "i", false, "Start an interactive lexing session instead of reading a file.")
	flagTokens      = pflag.StringP("tokens", "t", "", "Write the lexed token stream to the given file.")
	flagDirect      = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
	flagWidth       = pflag.IntP("width", "w", 80, "Width of console output.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic("unrecoverable panic occured")
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("dolangc v%s\n", version.Current)
		return
	}

	args := pflag.Args()

	if *flagInteractive {
		if len(args) > 0 {
			fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
			returnCode = ExitUsageError
			return
		}

		sess, err := dolang.NewSession(os.Stdin, os.Stdout, *flagDirect, *flagWidth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		defer sess.Close()

		if err := sess.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
		}
		return
	}

	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Expected exactly one input file\nDo -h for help.\n")
		returnCode = ExitUsageError
		return
	}

	tokensOut := os.Getenv(EnvTokensOut)
	if pflag.Lookup("tokens").Changed {
		tokensOut = *flagTokens
	}

	tp := dolang.New(os.Stdout, *flagWidth, tokensOut)

	if err := tp.TranslateFile(args[0]); err != nil {
		var lexErr *lex.Error
		if errors.As(err, &lexErr) {
			fmt.Fprintf(os.Stderr, "%s\n", dolang.FullErrorMessage(err))
			returnCode = ExitLexError
		} else {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
		}
		return
	}
}
