package primitives

import (
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shakfu/joy"
	"github.com/shakfu/joy/internal/stdlib"
)

// SystemCommands implements the OS/environment/time/conversion words,
// grounded on evaluator/system.py's thin os.environ/subprocess/time
// wrapping, mapped onto Go's os/os-exec/time/strconv packages.
var SystemCommands = map[string]joy.Primitive{
	"getenv": func(ctx *joy.Context) error { // S -> S'
		if err := ctx.Need("getenv", 1); err != nil {
			return err
		}
		name, err := ctx.PopString("getenv")
		if err != nil {
			return err
		}
		ctx.Push(joy.NewStr(os.Getenv(string(name.Bytes()))))
		return nil
	},

	"system": func(ctx *joy.Context) error { // S -> I
		if err := ctx.Need("system", 1); err != nil {
			return err
		}
		cmd, err := ctx.PopString("system")
		if err != nil {
			return err
		}
		c := exec.Command("sh", "-c", string(cmd.Bytes()))
		c.Stdin, c.Stdout, c.Stderr = ctx.Stdin, ctx.Stdout, ctx.Stderr
		status := 0
		if runErr := c.Run(); runErr != nil {
			if exitErr, ok := runErr.(*exec.ExitError); ok {
				status = exitErr.ExitCode()
			} else {
				status = -1
			}
		}
		ctx.Push(joy.Int64(status))
		return nil
	},

	"argc": func(ctx *joy.Context) error {
		ctx.Push(joy.Int64(len(ctx.Argv)))
		return nil
	},

	"argv": func(ctx *joy.Context) error {
		vs := make([]joy.Value, len(ctx.Argv))
		for i, a := range ctx.Argv {
			vs[i] = joy.NewStr(a)
		}
		ctx.Push(joy.FromSlice(vs, false))
		return nil
	},

	"time": func(ctx *joy.Context) error {
		ctx.Push(joy.Int64(time.Now().Unix()))
		return nil
	},

	"clock": func(ctx *joy.Context) error {
		ctx.Push(joy.Int64(time.Now().UnixNano() / 1000))
		return nil
	},

	"localtime": timeStruct(func(t time.Time) time.Time { return t }),
	"gmtime":    timeStruct(func(t time.Time) time.Time { return t.UTC() }),

	"mktime": func(ctx *joy.Context) error { // LIST -> I
		if err := ctx.Need("mktime", 1); err != nil {
			return err
		}
		l, err := ctx.PopQuotation("mktime")
		if err != nil {
			return err
		}
		fields := l.Slice()
		if len(fields) < 6 {
			return joy.NewDomainError("mktime", "time struct needs at least 6 fields, got %d", len(fields))
		}
		get := func(i int) int {
			n, _ := fields[i].(joy.Int64)
			return int(n)
		}
		t := time.Date(get(5)+1900, time.Month(get(4)+1), get(3), get(2), get(1), get(0), 0, time.Local)
		ctx.Push(joy.Int64(t.Unix()))
		return nil
	},

	"strftime": func(ctx *joy.Context) error { // LIST S -> S'
		if err := ctx.Need("strftime", 2); err != nil {
			return err
		}
		format, err := ctx.PopString("strftime")
		if err != nil {
			return err
		}
		l, err := ctx.PopQuotation("strftime")
		if err != nil {
			return err
		}
		t, err := timeFromStruct(l)
		if err != nil {
			return err
		}
		ctx.Push(joy.NewStr(strftime(t, string(format.Bytes()))))
		return nil
	},

	"chr": func(ctx *joy.Context) error { // I -> C
		if err := ctx.Need("chr", 1); err != nil {
			return err
		}
		n, err := ctx.PopInt("chr")
		if err != nil {
			return err
		}
		ctx.Push(joy.Char(byte(n)))
		return nil
	},

	"ord": func(ctx *joy.Context) error { // C -> I
		if err := ctx.Need("ord", 1); err != nil {
			return err
		}
		b, err := charByte(ctx.Pop(), "ord")
		if err != nil {
			return err
		}
		ctx.Push(joy.Int64(b))
		return nil
	},

	"strtol": func(ctx *joy.Context) error { // S I -> I
		if err := ctx.Need("strtol", 2); err != nil {
			return err
		}
		base, err := ctx.PopInt("strtol")
		if err != nil {
			return err
		}
		s, err := ctx.PopString("strtol")
		if err != nil {
			return err
		}
		n, perr := strconv.ParseInt(string(s.Bytes()), int(base), 64)
		if perr != nil {
			n = 0
		}
		ctx.Push(joy.Int64(n))
		return nil
	},

	"strtod": func(ctx *joy.Context) error { // S -> F
		if err := ctx.Need("strtod", 1); err != nil {
			return err
		}
		s, err := ctx.PopString("strtod")
		if err != nil {
			return err
		}
		f, perr := strconv.ParseFloat(string(s.Bytes()), 64)
		if perr != nil {
			f = 0
		}
		ctx.Push(joy.Float64(f))
		return nil
	},

	"format": func(ctx *joy.Context) error { // N C I J -> S
		if err := ctx.Need("format", 4); err != nil {
			return err
		}
		prec, err := ctx.PopInt("format")
		if err != nil {
			return err
		}
		width, err := ctx.PopInt("format")
		if err != nil {
			return err
		}
		fc, err := charByte(ctx.Pop(), "format")
		if err != nil {
			return err
		}
		n, err := ctx.PopInt("format")
		if err != nil {
			return err
		}
		ctx.Push(joy.NewStr(formatValue(int64(n), fc, int(width), int(prec))))
		return nil
	},

	"formatf": func(ctx *joy.Context) error { // F C I J -> S
		if err := ctx.Need("formatf", 4); err != nil {
			return err
		}
		prec, err := ctx.PopInt("formatf")
		if err != nil {
			return err
		}
		width, err := ctx.PopInt("formatf")
		if err != nil {
			return err
		}
		fc, err := charByte(ctx.Pop(), "formatf")
		if err != nil {
			return err
		}
		f, _, err := numeric("formatf", ctx.Pop())
		if err != nil {
			return err
		}
		ctx.Push(joy.NewStr(formatFloat(f, fc, int(width), int(prec))))
		return nil
	},

	"maxint": func(ctx *joy.Context) error { // -> I
		ctx.Push(joy.Int64(math.MaxInt64))
		return nil
	},

	"intern": func(ctx *joy.Context) error { // S -> SYM
		if err := ctx.Need("intern", 1); err != nil {
			return err
		}
		s, err := ctx.PopString("intern")
		if err != nil {
			return err
		}
		ctx.Push(joy.NewSym(string(s.Bytes())))
		return nil
	},

	"name": func(ctx *joy.Context) error { // SYM -> S
		if err := ctx.Need("name", 1); err != nil {
			return err
		}
		sym, err := ctx.PopSymbol("name")
		if err != nil {
			return err
		}
		ctx.Push(joy.NewStr(sym.Name()))
		return nil
	},

	"include": func(ctx *joy.Context) error { // S ->
		if err := ctx.Need("include", 1); err != nil {
			return err
		}
		path, err := ctx.PopString("include")
		if err != nil {
			return err
		}
		return includeFile(ctx, string(path.Bytes()))
	},

	"abort": func(ctx *joy.Context) error { return joy.NewAbortSignal() },

	"quit": func(ctx *joy.Context) error { // I -> , default 0
		code := 0
		if ctx.Stack.Len() > 0 {
			if n, ok := ctx.Pop().(joy.Int64); ok {
				code = int(n)
			}
		}
		return joy.NewQuitSignal(code)
	},

	"gc": func(ctx *joy.Context) error { return nil }, // no-op
}

// includeFile loads and runs another .joy file into ctx's dictionary,
// searching the including file's directory, the process's working
// directory, then the embedded standard-library path, mirroring the
// Python source's include_ search order. ScriptDir is updated
// for the duration of the included file's own execution so a chain of
// includes resolves each hop relative to its own location.
func includeFile(ctx *joy.Context, name string) error {
	candidates := []string{}
	if ctx.ScriptDir != "" {
		candidates = append(candidates, filepath.Join(ctx.ScriptDir, name))
	}
	candidates = append(candidates, name)

	for _, path := range candidates {
		src, rerr := os.ReadFile(path)
		if rerr != nil {
			continue
		}
		return runIncluded(ctx, path, src)
	}

	if stdlib.Has(filepath.Base(name)) {
		return stdlib.LoadFile(ctx, filepath.Base(name))
	}
	return joy.NewDomainError("include", "cannot find %s", name)
}

func runIncluded(ctx *joy.Context, path string, src []byte) error {
	p, err := joy.NewParser(path, src)
	if err != nil {
		return err
	}
	prog, err := p.ParseProgram()
	if err != nil {
		return err
	}
	prevDir := ctx.ScriptDir
	ctx.ScriptDir = filepath.Dir(path)
	defer func() { ctx.ScriptDir = prevDir }()
	return ctx.Run(prog)
}

func timeStruct(adjust func(time.Time) time.Time) joy.Primitive {
	return func(ctx *joy.Context) error {
		if err := ctx.Need("localtime", 1); err != nil {
			return err
		}
		n, err := ctx.PopInt("localtime")
		if err != nil {
			return err
		}
		t := adjust(time.Unix(int64(n), 0))
		ctx.Push(timeToStruct(t))
		return nil
	}
}

// timeToStruct builds the 9-integer time-struct list:
// sec, min, hour, mday, mon, year, wday, yday, isdst.
func timeToStruct(t time.Time) *joy.List {
	isdst := 0
	if t.IsDST() {
		isdst = 1
	}
	return joy.NewList(
		joy.Int64(t.Second()), joy.Int64(t.Minute()), joy.Int64(t.Hour()),
		joy.Int64(t.Day()), joy.Int64(int(t.Month())-1), joy.Int64(t.Year()-1900),
		joy.Int64(int(t.Weekday())), joy.Int64(t.YearDay()-1), joy.Int64(isdst),
	)
}

func timeFromStruct(l *joy.List) (time.Time, error) {
	fields := l.Slice()
	if len(fields) < 6 {
		return time.Time{}, joy.NewDomainError("strftime", "time struct needs at least 6 fields, got %d", len(fields))
	}
	get := func(i int) int {
		n, _ := fields[i].(joy.Int64)
		return int(n)
	}
	return time.Date(get(5)+1900, time.Month(get(4)+1), get(3), get(2), get(1), get(0), 0, time.Local), nil
}

// strftime implements the common subset of C strftime directives used by
// Joy scripts: %Y %m %d %H %M %S %j %a %A %b %B and a literal %%.
func strftime(t time.Time, layout string) string {
	out := make([]byte, 0, len(layout)*2)
	for i := 0; i < len(layout); i++ {
		if layout[i] != '%' || i+1 >= len(layout) {
			out = append(out, layout[i])
			continue
		}
		i++
		switch layout[i] {
		case 'Y':
			out = append(out, []byte(strconv.Itoa(t.Year()))...)
		case 'm':
			out = append(out, []byte(pad2(int(t.Month())))...)
		case 'd':
			out = append(out, []byte(pad2(t.Day()))...)
		case 'H':
			out = append(out, []byte(pad2(t.Hour()))...)
		case 'M':
			out = append(out, []byte(pad2(t.Minute()))...)
		case 'S':
			out = append(out, []byte(pad2(t.Second()))...)
		case 'j':
			out = append(out, []byte(strconv.Itoa(t.YearDay()))...)
		case 'a':
			out = append(out, []byte(t.Weekday().String()[:3])...)
		case 'A':
			out = append(out, []byte(t.Weekday().String())...)
		case 'b':
			out = append(out, []byte(t.Month().String()[:3])...)
		case 'B':
			out = append(out, []byte(t.Month().String())...)
		case '%':
			out = append(out, '%')
		default:
			out = append(out, '%', layout[i])
		}
	}
	return string(out)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// formatValue/formatFloat follow C printf-style single-conversion
// directives with an explicit value/format-char/width/precision argument
// order, confirmed against evaluator/system.py's
// format_/formatf_.
func formatValue(n int64, fc byte, width, prec int) string {
	if fc == 'b' {
		return padTo(strconv.FormatInt(n, 2), width)
	}
	verb := "%" + padSpec(width) + string(fc)
	if fc == 'i' {
		verb = "%" + padSpec(width) + "d"
	}
	return fmt.Sprintf(verb, n)
}

func formatFloat(f float64, fc byte, width, prec int) string {
	if prec < 0 {
		prec = 6
	}
	verb := "%" + padSpec(width) + "." + strconv.Itoa(prec) + string(fc)
	return fmt.Sprintf(verb, f)
}

func padSpec(width int) string {
	if width <= 0 {
		return ""
	}
	return strconv.Itoa(width)
}

func padTo(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
