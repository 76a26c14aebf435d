package primitives

import "github.com/shakfu/joy"

func cmp(prim string, op func(int) bool) joy.Primitive {
	return func(ctx *joy.Context) error {
		if err := ctx.Need(prim, 2); err != nil {
			return err
		}
		b, a := ctx.Pop(), ctx.Pop()
		ctx.Push(joy.Bool(op(joy.Compare(a, b))))
		return nil
	}
}

// CompareCommands implements the relational and equality words, grounded on evaluator/logic.py's _numeric_value-coercing
// comparisons, but built on this repo's Compare/Equal total order instead
// of re-deriving numeric coercion per operator.
var CompareCommands = map[string]joy.Primitive{
	"<":  cmp("<", func(c int) bool { return c < 0 }),
	">":  cmp(">", func(c int) bool { return c > 0 }),
	"<=": cmp("<=", func(c int) bool { return c <= 0 }),
	">=": cmp(">=", func(c int) bool { return c >= 0 }),

	"=": func(ctx *joy.Context) error {
		if err := ctx.Need("=", 2); err != nil {
			return err
		}
		b, a := ctx.Pop(), ctx.Pop()
		ctx.Push(joy.Bool(joy.Equal(a, b)))
		return nil
	},
	"!=": func(ctx *joy.Context) error {
		if err := ctx.Need("!=", 2); err != nil {
			return err
		}
		b, a := ctx.Pop(), ctx.Pop()
		ctx.Push(joy.Bool(!joy.Equal(a, b)))
		return nil
	},

	// equal is deep structural equality across LIST/QUOTATION regardless of
	// the Quoted tag; = gives the same answer, since joy.Equal also walks
	// lists element by element.
	"equal": func(ctx *joy.Context) error {
		if err := ctx.Need("equal", 2); err != nil {
			return err
		}
		b, a := ctx.Pop(), ctx.Pop()
		ctx.Push(joy.Bool(deepEqual(a, b)))
		return nil
	},

	"compare": func(ctx *joy.Context) error {
		if err := ctx.Need("compare", 2); err != nil {
			return err
		}
		b, a := ctx.Pop(), ctx.Pop()
		ctx.Push(joy.Int64(joy.Compare(a, b)))
		return nil
	},
}

func deepEqual(a, b joy.Value) bool {
	al, aok := a.(*joy.List)
	bl, bok := b.(*joy.List)
	if aok && bok {
		for al != nil && bl != nil {
			if !deepEqual(al.Value, bl.Value) {
				return false
			}
			al, bl = al.Next, bl.Next
		}
		return al == nil && bl == nil
	}
	return joy.Equal(a, b)
}
