package primitives

import "github.com/shakfu/joy"

// StackCommands implements the plain stack-shuffling words,
// grounded on evaluator/stack_ops.py for the exact member names and
// argument order of the "operate under the top element" twins.
var StackCommands = map[string]joy.Primitive{
	"id": func(ctx *joy.Context) error { return nil },

	"dup": func(ctx *joy.Context) error {
		if err := ctx.Need("dup", 1); err != nil {
			return err
		}
		ctx.Push(ctx.Stack.Peek(0).Copy())
		return nil
	},

	"dup2": func(ctx *joy.Context) error {
		if err := ctx.Need("dup2", 2); err != nil {
			return err
		}
		a, b := ctx.Stack.Peek(1), ctx.Stack.Peek(0)
		ctx.Push(a.Copy())
		ctx.Push(b.Copy())
		return nil
	},

	"pop": func(ctx *joy.Context) error {
		if err := ctx.Need("pop", 1); err != nil {
			return err
		}
		ctx.Pop()
		return nil
	},

	"swap": func(ctx *joy.Context) error {
		if err := ctx.Need("swap", 2); err != nil {
			return err
		}
		a, b := ctx.Pop(), ctx.Pop()
		ctx.Push(a)
		ctx.Push(b)
		return nil
	},

	"over": func(ctx *joy.Context) error {
		if err := ctx.Need("over", 2); err != nil {
			return err
		}
		ctx.Push(ctx.Stack.Peek(1).Copy())
		return nil
	},

	"rotate": func(ctx *joy.Context) error { // X Y Z -> Z Y X
		if err := ctx.Need("rotate", 3); err != nil {
			return err
		}
		z, y, x := ctx.Pop(), ctx.Pop(), ctx.Pop()
		ctx.Push(z)
		ctx.Push(y)
		ctx.Push(x)
		return nil
	},

	"rotated": func(ctx *joy.Context) error { // X Y Z W -> Z Y X W
		if err := ctx.Need("rotated", 4); err != nil {
			return err
		}
		w := ctx.Pop()
		z, y, x := ctx.Pop(), ctx.Pop(), ctx.Pop()
		ctx.Push(z)
		ctx.Push(y)
		ctx.Push(x)
		ctx.Push(w)
		return nil
	},

	"rollup": func(ctx *joy.Context) error { // X Y Z -> Z X Y
		if err := ctx.Need("rollup", 3); err != nil {
			return err
		}
		z, y, x := ctx.Pop(), ctx.Pop(), ctx.Pop()
		ctx.Push(z)
		ctx.Push(x)
		ctx.Push(y)
		return nil
	},

	"rollupd": func(ctx *joy.Context) error { // X Y Z W -> Z X Y W
		if err := ctx.Need("rollupd", 4); err != nil {
			return err
		}
		w := ctx.Pop()
		z, y, x := ctx.Pop(), ctx.Pop(), ctx.Pop()
		ctx.Push(z)
		ctx.Push(x)
		ctx.Push(y)
		ctx.Push(w)
		return nil
	},

	"rolldown": func(ctx *joy.Context) error { // X Y Z -> Y Z X
		if err := ctx.Need("rolldown", 3); err != nil {
			return err
		}
		z, y, x := ctx.Pop(), ctx.Pop(), ctx.Pop()
		ctx.Push(y)
		ctx.Push(z)
		ctx.Push(x)
		return nil
	},

	"rolldownd": func(ctx *joy.Context) error { // X Y Z W -> Y Z X W
		if err := ctx.Need("rolldownd", 4); err != nil {
			return err
		}
		w := ctx.Pop()
		z, y, x := ctx.Pop(), ctx.Pop(), ctx.Pop()
		ctx.Push(y)
		ctx.Push(z)
		ctx.Push(x)
		ctx.Push(w)
		return nil
	},

	"dupd": func(ctx *joy.Context) error {
		if err := ctx.Need("dupd", 2); err != nil {
			return err
		}
		top := ctx.Pop()
		ctx.Push(ctx.Stack.Peek(0).Copy())
		ctx.Push(top)
		return nil
	},

	"popd": func(ctx *joy.Context) error {
		if err := ctx.Need("popd", 2); err != nil {
			return err
		}
		top := ctx.Pop()
		ctx.Pop()
		ctx.Push(top)
		return nil
	},

	"swapd": func(ctx *joy.Context) error {
		if err := ctx.Need("swapd", 3); err != nil {
			return err
		}
		top := ctx.Pop()
		a, b := ctx.Pop(), ctx.Pop()
		ctx.Push(a)
		ctx.Push(b)
		ctx.Push(top)
		return nil
	},

	"choice": func(ctx *joy.Context) error { // B T F -> X, no execution
		if err := ctx.Need("choice", 3); err != nil {
			return err
		}
		f, t := ctx.Pop(), ctx.Pop()
		b := ctx.Pop()
		if joy.Truthy(b) {
			ctx.Push(t)
		} else {
			ctx.Push(f)
		}
		return nil
	},

	"stack": func(ctx *joy.Context) error {
		ctx.Push(ctx.Stack.AsList())
		return nil
	},

	"unstack": func(ctx *joy.Context) error {
		if err := ctx.Need("unstack", 1); err != nil {
			return err
		}
		l, err := ctx.PopQuotation("unstack")
		if err != nil {
			return err
		}
		ctx.Stack.ReplaceFromList(l)
		return nil
	},
}
