// Command joy is the evaluator's command-line driver, grounded on
// tools/gelrun.go's flag.Bool/check() shape, generalized from a single
// fixed invocation to joy's four subcommands. The REPL loop and line
// editing tools/geli.go also shows are deliberately out of scope, so
// only run/-e/compile/test are implemented here.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/shakfu/joy"
	"github.com/shakfu/joy/internal/codegen"
	"github.com/shakfu/joy/internal/runtime"
	"github.com/shakfu/joy/internal/testsupport"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: joy [run FILE | -e EXPR | compile FILE | test DIR] [args...]")
		return 1
	}

	switch args[0] {
	case "-e":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "joy -e: missing EXPR")
			return 1
		}
		return runExpr(args[1], args[2:])
	case "run":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "joy run: missing FILE")
			return 1
		}
		return runFile(args[1], args[2:])
	case "compile":
		return compileCmd(args[1:])
	case "test":
		return testCmd(args[1:])
	default:
		return runFile(args[0], args[1:])
	}
}

// newContext builds a context wired exactly as every other entry point
// expects: primitives registered, then the standard library loaded on top.
func newContext(argv []string) (*joy.Context, error) {
	return testsupport.NewContext(argv)
}

func runFile(path string, extraArgv []string) int {
	ctx, err := newContext(append([]string{path}, extraArgv...))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	ctx.ScriptDir = filepath.Dir(path)

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return evalSource(ctx, path, src)
}

func runExpr(expr string, extraArgv []string) int {
	ctx, err := newContext(extraArgv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return evalSource(ctx, "<expr>", []byte(expr))
}

// evalSource parses and runs src against ctx, translating abort/quit
// signals into exit codes per ("abort exits non-zero, quit
// exits zero") rather than letting them print as ordinary errors.
func evalSource(ctx *joy.Context, file string, src []byte) int {
	p, err := joy.NewParser(file, src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	prog, err := p.ParseProgram()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := ctx.Run(prog); err != nil {
		switch e := err.(type) {
		case *joy.QuitSignal:
			return e.Code
		case *joy.AbortSignal:
			return 1
		default:
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	return 0
}

// compileCmd implements `compile FILE [-o DIR] [-n NAME] [--run] [--no-compile]`.
func compileCmd(args []string) int {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	outDir := fs.String("o", ".", "output directory")
	name := fs.String("n", "", "name of the produced executable (default: FILE's base name)")
	doRun := fs.Bool("run", false, "execute the resulting binary after building")
	noCompile := fs.Bool("no-compile", false, "lower to C only; do not invoke the system compiler")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "joy compile: missing FILE")
		return 1
	}
	file := fs.Arg(0)

	n := *name
	if n == "" {
		n = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}

	ctx, err := newContext([]string{file})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	ctx.ScriptDir = filepath.Dir(file)

	unit, err := codegen.BuildUnit(ctx, file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lowering:", err)
		return 1
	}
	src, err := codegen.Emit(ctx, unit, file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "emitting:", err)
		return 1
	}

	dir := filepath.Join(*outDir, n)
	if err := runtime.WriteTo(dir); err != nil {
		fmt.Fprintln(os.Stderr, "writing runtime:", err)
		return 1
	}
	if err := os.WriteFile(filepath.Join(dir, n+".c"), []byte(src), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "writing generated source:", err)
		return 1
	}

	if *noCompile {
		return 0
	}

	cmd := exec.Command("make", "NAME="+n)
	cmd.Dir = dir
	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "make:", err)
		return 1
	}

	if !*doRun {
		return 0
	}
	bin := exec.Command(filepath.Join(dir, n))
	bin.Stdout, bin.Stderr, bin.Stdin = os.Stdout, os.Stderr, os.Stdin
	if err := bin.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode()
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// testCmd implements `test DIR [--pattern GLOB] [--compile] [-v]`: run
// every matching .joy file and check its output against the expected-output
// comments it carries (testsupport.ExpectedOutput), concurrently via
// errgroup the way a build driver fans out independent compile units. Each
// script gets its own Context, so scripts never share dictionary state.
func testCmd(args []string) int {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	pattern := fs.String("pattern", "*.joy", "glob pattern selecting test scripts")
	compile := fs.Bool("compile", false, "also run each script through the C backend and compare")
	verbose := fs.Bool("v", false, "print each script's name as it runs")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "joy test: missing DIR")
		return 1
	}
	dir := fs.Arg(0)

	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if ok, _ := filepath.Match(*pattern, d.Name()); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	sort.Strings(files)

	results := make([]error, len(files))
	var g errgroup.Group
	g.SetLimit(goruntime.NumCPU())
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			results[i] = runScriptTest(f, *compile, *verbose)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, err := range results {
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", files[i], err)
		} else if *verbose {
			fmt.Printf("ok   %s\n", files[i])
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d/%d scripts failed\n", failed, len(files))
		return 1
	}
	return 0
}

// runScriptTest runs one .joy file under the interpreter and, if expected-
// output comments are present, compares stdout byte-for-byte. With
// --compile it additionally lowers the same script to C, builds it in a
// scratch directory under the system temp directory, runs the binary, and checks that
// its stdout matches the interpreter's rather than the comment text a second time.
func runScriptTest(path string, compile bool, verbose bool) error {
	if verbose {
		fmt.Println("running", path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	ctx, err := testsupport.NewContext([]string{path})
	if err != nil {
		return err
	}
	ctx.ScriptDir = filepath.Dir(path)
	res := testsupport.RunCapture(ctx, path, src)
	if res.Err != nil {
		return res.Err
	}
	if expected, ok := testsupport.ExpectedOutput(src); ok && res.Stdout != expected {
		return fmt.Errorf("output mismatch:\n--- expected ---\n%s--- actual ---\n%s", expected, res.Stdout)
	}

	if !compile {
		return nil
	}
	return compileAndCompare(path, res.Stdout)
}

// compileAndCompare lowers path to C in a scratch directory, builds it,
// runs it, and requires its stdout to match interpreted, per 
func compileAndCompare(path, interpreted string) error {
	dir, err := os.MkdirTemp("", "joytest-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	ctx, err := testsupport.NewContext([]string{path})
	if err != nil {
		return err
	}
	ctx.ScriptDir = filepath.Dir(path)

	unit, err := codegen.BuildUnit(ctx, path)
	if err != nil {
		return fmt.Errorf("lowering: %w", err)
	}
	src, err := codegen.Emit(ctx, unit, path)
	if err != nil {
		return fmt.Errorf("emitting: %w", err)
	}

	out := filepath.Join(dir, name)
	if err := runtime.WriteTo(out); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(out, name+".c"), []byte(src), 0o644); err != nil {
		return err
	}

	mk := exec.Command("make", "NAME="+name)
	mk.Dir = out
	if output, err := mk.CombinedOutput(); err != nil {
		return fmt.Errorf("make: %w\n%s", err, output)
	}

	bin := exec.Command(filepath.Join(out, name))
	stdout, err := bin.Output()
	if err != nil {
		return fmt.Errorf("running compiled binary: %w", err)
	}
	if string(stdout) != interpreted {
		return fmt.Errorf("compiled output differs from interpreted:\n--- interpreted ---\n%s--- compiled ---\n%s", interpreted, stdout)
	}
	return nil
}
