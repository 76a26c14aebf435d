// Package primitives registers Joy's built-in words on a *joy.Context,
// grouped by concern the way commands package groups gelo's
// builtins (LogicCommands, MathCommands, CombinatorCommands, ...): one
// map[string]joy.Primitive per file, aggregated by all.go.
package primitives

import (
	"io"

	"github.com/shakfu/joy"
)

// snapshotTest runs q against a copy of the stack, consumes its boolean
// result, and restores the stack to exactly its pre-test state regardless
// of what q left behind. This is the snapshot/restore discipline that
// ifte, cond, while and the predicate-testing recursion combinators
// (linrec, tailrec, binrec, genrec, condlinrec/condnestrec) depend on.
func snapshotTest(ctx *joy.Context, q *joy.List) (bool, error) {
	snap := ctx.Stack.Snapshot()
	if err := ctx.RunQuotation(q); err != nil {
		return false, err
	}
	if ctx.Stack.Len() == 0 {
		ctx.Stack.Restore(snap)
		return false, joy.NewDomainError("test", "predicate quotation left the stack empty")
	}
	result := joy.Truthy(ctx.Stack.Pop())
	ctx.Stack.Restore(snap)
	return result, nil
}

// snapshotRun runs q against a copy of the stack and restores the original
// afterward, discarding whatever q pushed. No primitive in this package
// calls it.
func snapshotRun(ctx *joy.Context, q *joy.List) error {
	snap := ctx.Stack.Snapshot()
	if err := ctx.RunQuotation(q); err != nil {
		return err
	}
	ctx.Stack.Restore(snap)
	return nil
}

// withoutTop pops the stack's top n values (dip's "lift the quotation's
// argument out of the way" trick), runs fn, then pushes them back in
// their original order on top of whatever fn left.
func withoutTop(ctx *joy.Context, n int, fn func() error) error {
	held := make([]joy.Value, n)
	for i := 0; i < n; i++ {
		held[i] = ctx.Pop()
	}
	if err := fn(); err != nil {
		for i := n - 1; i >= 0; i-- {
			ctx.Push(held[i])
		}
		return err
	}
	for i := n - 1; i >= 0; i-- {
		ctx.Push(held[i])
	}
	return nil
}

// aggregateElements returns an aggregate's members as a Go slice plus a
// rebuild function that restores the same concrete kind (LIST, QUOTATION,
// STRING or SET) from a new member slice. Grounded on the Python source's
// _make_aggregate, which preserves the input's kind across map/filter/
// split/fold rather than always producing a LIST.
func aggregateElements(v joy.Value) (elems []joy.Value, rebuild func([]joy.Value) joy.Value) {
	switch t := v.(type) {
	case *joy.Str:
		return t.Chars(), func(vs []joy.Value) joy.Value {
			b := make([]byte, len(vs))
			for i, e := range vs {
				c, _ := e.(joy.Char)
				b[i] = byte(c)
			}
			return joy.NewStrBytes(b)
		}
	case joy.Set64:
		var out []joy.Value
		for i := 0; i < 64; i++ {
			if t.Has(i) {
				out = append(out, joy.Int64(i))
			}
		}
		return out, func(vs []joy.Value) joy.Value {
			var mask joy.Set64
			for _, e := range vs {
				if n, ok := e.(joy.Int64); ok && n >= 0 && n <= 63 {
					mask |= joy.Set64(1) << uint(n)
				}
			}
			return mask
		}
	case *joy.List:
		quoted := t != nil && t.Kind() == joy.KindQuotation
		return t.Slice(), func(vs []joy.Value) joy.Value {
			return joy.FromSlice(vs, quoted)
		}
	default:
		return nil, nil
	}
}

// charByte coerces a CHAR or INTEGER value to its byte value, for the
// console/file primitives that write one raw byte (putch, fputch).
func charByte(v joy.Value, prim string) (byte, error) {
	switch t := v.(type) {
	case joy.Char:
		return byte(t), nil
	case joy.Int64:
		return byte(t), nil
	default:
		return 0, joy.NewTypeError(prim, "char or integer", v.Kind().String())
	}
}

// readLine reads bytes from r up to and excluding the next '\n' (or EOF),
// trimming a trailing '\r' the way input()/getline discard the line
// terminator. Used by get/getline, which each consume exactly one line.
// Reads one byte at a time rather than wrapping r in a buffered reader,
// since r is a bare io.Reader reused across calls - a bufio.Reader
// allocated fresh per call would read ahead past the line and drop
// whatever it buffered but didn't return.
func readLine(r io.Reader) ([]byte, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				return bytesTrimNewline(line), nil
			}
			line = append(line, buf[0])
		}
		if err != nil {
			if err == io.EOF {
				if len(line) == 0 {
					return nil, io.EOF
				}
				return bytesTrimNewline(line), nil
			}
			return nil, err
		}
	}
}

func bytesTrimNewline(b []byte) []byte {
	n := len(b)
	if n > 0 && b[n-1] == '\n' {
		n--
	}
	if n > 0 && b[n-1] == '\r' {
		n--
	}
	return b[:n]
}
