package primitives

import "github.com/shakfu/joy"

// ConsoleCommands implements the stdin/stdout-bound I/O primitives,
// grounded on commands/io.go's Puts/Gets pair - generalized from a
// single channel-backed Send/Recv to Joy's several distinct console
// words, each writing through ctx.Stdout/reading through ctx.Stdin
// rather than os.Stdout/os.Stdin directly so a host embedding the
// evaluator can redirect them.
var ConsoleCommands = map[string]joy.Primitive{
	"put": func(ctx *joy.Context) error { // X -> , writes X's display form, no newline
		if err := ctx.Need("put", 1); err != nil {
			return err
		}
		v := ctx.Pop()
		_, err := ctx.Stdout.Write([]byte(v.String()))
		return err
	},

	"putln": func(ctx *joy.Context) error { // X -> , writes X's display form plus a newline
		if err := ctx.Need("putln", 1); err != nil {
			return err
		}
		v := ctx.Pop()
		_, err := ctx.Stdout.Write([]byte(v.String() + "\n"))
		return err
	},

	"putch": func(ctx *joy.Context) error { // C -> , writes one raw byte
		if err := ctx.Need("putch", 1); err != nil {
			return err
		}
		b, err := charByte(ctx.Pop(), "putch")
		if err != nil {
			return err
		}
		_, werr := ctx.Stdout.Write([]byte{b})
		return werr
	},

	"putchars": func(ctx *joy.Context) error { // S -> , writes a STRING's raw bytes
		if err := ctx.Need("putchars", 1); err != nil {
			return err
		}
		s, err := ctx.PopString("putchars")
		if err != nil {
			return err
		}
		_, werr := ctx.Stdout.Write(s.Bytes())
		return werr
	},

	// "." prints the top of stack's display form followed by a newline and
	// pops it; on an empty stack it is a no-op rather than an underflow
	// error, following the later-registered, more permissive variant of
	// the two the Python source itself defines under the same name.
	".": func(ctx *joy.Context) error {
		if ctx.Stack.Len() == 0 {
			return nil
		}
		v := ctx.Pop()
		_, err := ctx.Stdout.Write([]byte(v.String() + "\n"))
		return err
	},

	"get": func(ctx *joy.Context) error { // -> F..., parses and pushes the term(s) read from one line of stdin
		line, err := readLine(ctx.Stdin)
		if err != nil {
			return joy.NewRuntimeError("get: reading input: %v", err)
		}
		p, err := joy.NewParser("<get>", line)
		if err != nil {
			return joy.NewRuntimeError("get: parsing input: %v", err)
		}
		program, err := p.ParseProgram()
		if err != nil {
			return joy.NewRuntimeError("get: parsing input: %v", err)
		}
		for _, item := range program {
			if item.Define != nil {
				continue
			}
			ctx.Push(item.Value)
		}
		return nil
	},

	"getch": func(ctx *joy.Context) error { // -> C, or -1 on EOF
		buf := make([]byte, 1)
		n, err := ctx.Stdin.Read(buf)
		if n == 0 || err != nil {
			ctx.Push(joy.Int64(-1))
			return nil
		}
		ctx.Push(joy.Char(buf[0]))
		return nil
	},

	"getline": func(ctx *joy.Context) error { // -> S, reads through the next newline
		line, err := readLine(ctx.Stdin)
		if err != nil {
			ctx.Push(joy.NewStrBytes(nil))
			return nil
		}
		ctx.Push(joy.NewStrBytes(line))
		return nil
	},
}
