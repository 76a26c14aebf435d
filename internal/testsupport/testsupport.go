// Package testsupport is the shared scaffolding behind `joy test DIR`
// and the package-level golden-script tests: building a
// fully-wired context, running a script with its stdout captured, and
// extracting expected-output comments from a script's source.
//
// The convention adopted here: a line of the form `# expected: TEXT`
// (the `#`-to-end-of-line comment form the scanner already recognizes)
// contributes one line of expected stdout; a script with no such
// comments is run only for its exit behavior, with no output comparison.
package testsupport

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/shakfu/joy"
	"github.com/shakfu/joy/internal/stdlib"
	"github.com/shakfu/joy/primitives"
)

const expectedPrefix = "# expected:"

// ExpectedOutput scans src for expected-output comment lines and joins
// them with "\n" (plus a trailing "\n", matching how `.`/putln-terminated
// output naturally ends). ok is false if src carries no such comment, the
// signal that a caller should skip output comparison entirely.
func ExpectedOutput(src []byte) (text string, ok bool) {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(src))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, expectedPrefix) {
			lines = append(lines, strings.TrimSpace(strings.TrimPrefix(line, expectedPrefix)))
		}
	}
	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n") + "\n", true
}

// NewContext builds a context wired the same way every entry point wires
// one: primitives registered, then the standard library loaded on top.
func NewContext(argv []string) (*joy.Context, error) {
	ctx := joy.NewContext(argv)
	primitives.Register(ctx)
	if err := stdlib.Load(ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

// Result is one script run's outcome.
type Result struct {
	Stdout   string
	ExitCode int
	Err      error // non-nil for a lex/parse/eval error that was not abort/quit
}

// RunCapture parses and runs src against ctx with ctx.Stdout redirected to
// an in-memory buffer, translating abort/quit signals into an exit code
// exactly as cmd/joy's evalSource does, so the two never disagree on what
// counts as a successful run.
func RunCapture(ctx *joy.Context, file string, src []byte) Result {
	var buf bytes.Buffer
	ctx.Stdout = &buf

	p, err := joy.NewParser(file, src)
	if err != nil {
		return Result{Stdout: buf.String(), ExitCode: 1, Err: err}
	}
	prog, err := p.ParseProgram()
	if err != nil {
		return Result{Stdout: buf.String(), ExitCode: 1, Err: err}
	}
	if err := ctx.Run(prog); err != nil {
		switch e := err.(type) {
		case *joy.QuitSignal:
			return Result{Stdout: buf.String(), ExitCode: e.Code}
		case *joy.AbortSignal:
			return Result{Stdout: buf.String(), ExitCode: 1}
		default:
			return Result{Stdout: buf.String(), ExitCode: 1, Err: err}
		}
	}
	return Result{Stdout: buf.String(), ExitCode: 0}
}
