package primitives

import "github.com/shakfu/joy"

// QuotationCommands implements the direct-execution and dip family,
// grounded on evaluator/combinators.py's i/x/dip/dipd/dipdd/keep.
var QuotationCommands = map[string]joy.Primitive{
	"i": func(ctx *joy.Context) error { // [P] -> ... (pops, runs)
		if err := ctx.Need("i", 1); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("i")
		if err != nil {
			return err
		}
		return ctx.RunQuotation(q)
	},

	"x": func(ctx *joy.Context) error { // [P] -> [P] ... (peeks, runs)
		if err := ctx.Need("x", 1); err != nil {
			return err
		}
		v := ctx.Stack.Peek(0)
		l, ok := v.(*joy.List)
		if !ok {
			return joy.NewTypeError("x", "quotation", v.Kind().String())
		}
		return ctx.RunQuotation(joy.AsQuotation(l))
	},

	"dip": func(ctx *joy.Context) error { // X [P] -> ... X
		if err := ctx.Need("dip", 2); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("dip")
		if err != nil {
			return err
		}
		if err := ctx.Need("dip", 1); err != nil {
			return err
		}
		return withoutTop(ctx, 1, func() error { return ctx.RunQuotation(q) })
	},

	"dipd": func(ctx *joy.Context) error { // X Y [P] -> ... X Y
		if err := ctx.Need("dipd", 3); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("dipd")
		if err != nil {
			return err
		}
		if err := ctx.Need("dipd", 2); err != nil {
			return err
		}
		return withoutTop(ctx, 2, func() error { return ctx.RunQuotation(q) })
	},

	"dipdd": func(ctx *joy.Context) error { // X Y Z [P] -> ... X Y Z
		if err := ctx.Need("dipdd", 4); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("dipdd")
		if err != nil {
			return err
		}
		if err := ctx.Need("dipdd", 3); err != nil {
			return err
		}
		return withoutTop(ctx, 3, func() error { return ctx.RunQuotation(q) })
	},

	"keep": func(ctx *joy.Context) error { // X [P] -> ... X
		if err := ctx.Need("keep", 2); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("keep")
		if err != nil {
			return err
		}
		if err := ctx.Need("keep", 1); err != nil {
			return err
		}
		x := ctx.Stack.Peek(0).Copy()
		if err := ctx.RunQuotation(q); err != nil {
			return err
		}
		ctx.Push(x)
		return nil
	},
}
