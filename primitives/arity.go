package primitives

import "github.com/shakfu/joy"

// applyToCopy runs q against a one-item stack holding a copy of x and
// returns whatever single value q left on top, restoring the caller's real
// stack to untouched in between. Used by the per-item families (unary,
// bi, tri, cleave, app*) that apply a quotation to an operand "off to the
// side" without disturbing the rest of the stack.
func applyToCopy(ctx *joy.Context, x joy.Value, q *joy.List) (joy.Value, error) {
	snap := ctx.Stack.Snapshot()
	ctx.Stack.Restore(nil)
	ctx.Push(x.Copy())
	err := ctx.RunQuotation(q)
	var result joy.Value
	if err == nil {
		if ctx.Stack.Len() == 0 {
			err = joy.NewDomainError("unary", "quotation left no result")
		} else {
			result = ctx.Pop()
		}
	}
	ctx.Stack.Restore(snap)
	return result, err
}

// ArityCommands implements the fixed-arity application combinators,
// grounded on evaluator/combinators.py.
var ArityCommands = map[string]joy.Primitive{
	"nullary": func(ctx *joy.Context) error { // [P] -> X
		if err := ctx.Need("nullary", 1); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("nullary")
		if err != nil {
			return err
		}
		snap := ctx.Stack.Snapshot()
		if err := ctx.RunQuotation(q); err != nil {
			return err
		}
		if ctx.Stack.Len() == 0 {
			ctx.Stack.Restore(snap)
			return joy.NewDomainError("nullary", "quotation left no result")
		}
		result := ctx.Pop()
		ctx.Stack.Restore(snap)
		ctx.Push(result)
		return nil
	},

	"unary": unaryN(1),
	"unary2": unaryN(2),
	"unary3": unaryN(3),
	"unary4": unaryN(4),

	"binary": func(ctx *joy.Context) error { // X Y [P] -> R
		if err := ctx.Need("binary", 3); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("binary")
		if err != nil {
			return err
		}
		if err := ctx.Need("binary", 2); err != nil {
			return err
		}
		y, x := ctx.Pop(), ctx.Pop()
		r, err := applyJoint(ctx, []joy.Value{x, y}, q)
		if err != nil {
			return err
		}
		ctx.Push(r)
		return nil
	},

	"ternary": func(ctx *joy.Context) error { // X Y Z [P] -> R
		if err := ctx.Need("ternary", 4); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("ternary")
		if err != nil {
			return err
		}
		if err := ctx.Need("ternary", 3); err != nil {
			return err
		}
		z, y, x := ctx.Pop(), ctx.Pop(), ctx.Pop()
		r, err := applyJoint(ctx, []joy.Value{x, y, z}, q)
		if err != nil {
			return err
		}
		ctx.Push(r)
		return nil
	},

	"bi": func(ctx *joy.Context) error { // X [P] [Q] -> R1 R2
		if err := ctx.Need("bi", 3); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("bi")
		if err != nil {
			return err
		}
		p, err := ctx.PopQuotation("bi")
		if err != nil {
			return err
		}
		if err := ctx.Need("bi", 1); err != nil {
			return err
		}
		x := ctx.Pop()
		r1, err := applyToCopy(ctx, x, p)
		if err != nil {
			return err
		}
		r2, err := applyToCopy(ctx, x, q)
		if err != nil {
			return err
		}
		ctx.Push(r1)
		ctx.Push(r2)
		return nil
	},

	"tri": func(ctx *joy.Context) error { // X [P] [Q] [R] -> R1 R2 R3
		if err := ctx.Need("tri", 4); err != nil {
			return err
		}
		r, err := ctx.PopQuotation("tri")
		if err != nil {
			return err
		}
		q, err := ctx.PopQuotation("tri")
		if err != nil {
			return err
		}
		p, err := ctx.PopQuotation("tri")
		if err != nil {
			return err
		}
		if err := ctx.Need("tri", 1); err != nil {
			return err
		}
		x := ctx.Pop()
		r1, err := applyToCopy(ctx, x, p)
		if err != nil {
			return err
		}
		r2, err := applyToCopy(ctx, x, q)
		if err != nil {
			return err
		}
		r3, err := applyToCopy(ctx, x, r)
		if err != nil {
			return err
		}
		ctx.Push(r1)
		ctx.Push(r2)
		ctx.Push(r3)
		return nil
	},

	"cleave": func(ctx *joy.Context) error { // X [P1] [P2] -> R1 R2, same as bi
		if err := ctx.Need("cleave", 3); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("cleave")
		if err != nil {
			return err
		}
		p, err := ctx.PopQuotation("cleave")
		if err != nil {
			return err
		}
		if err := ctx.Need("cleave", 1); err != nil {
			return err
		}
		x := ctx.Pop()
		r1, err := applyToCopy(ctx, x, p)
		if err != nil {
			return err
		}
		r2, err := applyToCopy(ctx, x, q)
		if err != nil {
			return err
		}
		ctx.Push(r1)
		ctx.Push(r2)
		return nil
	},

	"app1": func(ctx *joy.Context) error { // X [P] -> R
		if err := ctx.Need("app1", 2); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("app1")
		if err != nil {
			return err
		}
		if err := ctx.Need("app1", 1); err != nil {
			return err
		}
		x := ctx.Pop()
		r, err := applyToCopy(ctx, x, q)
		if err != nil {
			return err
		}
		ctx.Push(r)
		return nil
	},

	"app11": func(ctx *joy.Context) error { // X Y [P] -> R
		if err := ctx.Need("app11", 3); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("app11")
		if err != nil {
			return err
		}
		if err := ctx.Need("app11", 2); err != nil {
			return err
		}
		y, x := ctx.Pop(), ctx.Pop()
		r, err := applyJoint(ctx, []joy.Value{x, y}, q)
		if err != nil {
			return err
		}
		ctx.Push(r)
		return nil
	},

	"app12": func(ctx *joy.Context) error { // X Y1 Y2 [P] -> R1 R2
		if err := ctx.Need("app12", 4); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("app12")
		if err != nil {
			return err
		}
		if err := ctx.Need("app12", 3); err != nil {
			return err
		}
		y2, y1, x := ctx.Pop(), ctx.Pop(), ctx.Pop()
		r1, err := applyJoint(ctx, []joy.Value{x, y1}, q)
		if err != nil {
			return err
		}
		r2, err := applyJoint(ctx, []joy.Value{x, y2}, q)
		if err != nil {
			return err
		}
		ctx.Push(r1)
		ctx.Push(r2)
		return nil
	},

	"app2": func(ctx *joy.Context) error { // X Y [P] -> R1 R2
		if err := ctx.Need("app2", 3); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("app2")
		if err != nil {
			return err
		}
		if err := ctx.Need("app2", 2); err != nil {
			return err
		}
		y, x := ctx.Pop(), ctx.Pop()
		r1, err := applyToCopy(ctx, x, q)
		if err != nil {
			return err
		}
		r2, err := applyToCopy(ctx, y, q)
		if err != nil {
			return err
		}
		ctx.Push(r1)
		ctx.Push(r2)
		return nil
	},

	"app3": func(ctx *joy.Context) error { // X Y Z [P] -> R1 R2 R3
		if err := ctx.Need("app3", 4); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("app3")
		if err != nil {
			return err
		}
		if err := ctx.Need("app3", 3); err != nil {
			return err
		}
		z, y, x := ctx.Pop(), ctx.Pop(), ctx.Pop()
		r1, err := applyToCopy(ctx, x, q)
		if err != nil {
			return err
		}
		r2, err := applyToCopy(ctx, y, q)
		if err != nil {
			return err
		}
		r3, err := applyToCopy(ctx, z, q)
		if err != nil {
			return err
		}
		ctx.Push(r1)
		ctx.Push(r2)
		ctx.Push(r3)
		return nil
	},

	"app4": func(ctx *joy.Context) error { // W X Y Z [P] -> R1 R2 R3 R4
		if err := ctx.Need("app4", 5); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("app4")
		if err != nil {
			return err
		}
		if err := ctx.Need("app4", 4); err != nil {
			return err
		}
		z, y, x, w := ctx.Pop(), ctx.Pop(), ctx.Pop(), ctx.Pop()
		results := make([]joy.Value, 0, 4)
		for _, v := range []joy.Value{w, x, y, z} {
			r, err := applyToCopy(ctx, v, q)
			if err != nil {
				return err
			}
			results = append(results, r)
		}
		for _, r := range results {
			ctx.Push(r)
		}
		return nil
	},

	"spread": func(ctx *joy.Context) error { // X1..Xn [[P1]..[Pn]] -> R1..Rn
		if err := ctx.Need("spread", 1); err != nil {
			return err
		}
		ql, err := ctx.PopQuotation("spread")
		if err != nil {
			return err
		}
		quots := ql.Slice()
		if err := ctx.Need("spread", len(quots)); err != nil {
			return err
		}
		operands := make([]joy.Value, len(quots))
		for i := len(quots) - 1; i >= 0; i-- {
			operands[i] = ctx.Pop()
		}
		for i, qv := range quots {
			q, ok := qv.(*joy.List)
			if !ok {
				return joy.NewTypeError("spread", "quotation", qv.Kind().String())
			}
			r, err := applyToCopy(ctx, operands[i], joy.AsQuotation(q))
			if err != nil {
				return err
			}
			ctx.Push(r)
		}
		return nil
	},

	"infra": func(ctx *joy.Context) error { // L [P] -> L'
		if err := ctx.Need("infra", 2); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("infra")
		if err != nil {
			return err
		}
		l, err := ctx.PopQuotation("infra")
		if err != nil {
			return err
		}
		outer := ctx.Stack.Snapshot()
		ctx.Stack.ReplaceFromList(l)
		if err := ctx.RunQuotation(q); err != nil {
			ctx.Stack.Restore(outer)
			return err
		}
		result := ctx.Stack.AsList()
		ctx.Stack.Restore(outer)
		ctx.Push(result)
		return nil
	},

	"construct": func(ctx *joy.Context) error { // [P] [[Q1]..[Qn]] -> R1..Rn
		if err := ctx.Need("construct", 2); err != nil {
			return err
		}
		ql, err := ctx.PopQuotation("construct")
		if err != nil {
			return err
		}
		p, err := ctx.PopQuotation("construct")
		if err != nil {
			return err
		}
		base := ctx.Stack.Snapshot()
		if err := ctx.RunQuotation(p); err != nil {
			ctx.Stack.Restore(base)
			return err
		}
		prepared := ctx.Stack.Snapshot()
		var results []joy.Value
		for _, qv := range ql.Slice() {
			q, ok := qv.(*joy.List)
			if !ok {
				ctx.Stack.Restore(base)
				return joy.NewTypeError("construct", "quotation", qv.Kind().String())
			}
			ctx.Stack.Restore(prepared)
			if err := ctx.RunQuotation(joy.AsQuotation(q)); err != nil {
				ctx.Stack.Restore(base)
				return err
			}
			if ctx.Stack.Len() == 0 {
				ctx.Stack.Restore(base)
				return joy.NewDomainError("construct", "clause quotation left no result")
			}
			results = append(results, ctx.Pop())
		}
		ctx.Stack.Restore(base)
		for _, r := range results {
			ctx.Push(r)
		}
		return nil
	},

	"compose": func(ctx *joy.Context) error { // [P] [Q] -> [P ++ Q]
		if err := ctx.Need("compose", 2); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("compose")
		if err != nil {
			return err
		}
		p, err := ctx.PopQuotation("compose")
		if err != nil {
			return err
		}
		ctx.Push(joy.FromSlice(append(p.Slice(), q.Slice()...), true))
		return nil
	},
}

func unaryN(n int) joy.Primitive {
	return func(ctx *joy.Context) error {
		if err := ctx.Need("unary", n+1); err != nil {
			return err
		}
		q, err := ctx.PopQuotation("unary")
		if err != nil {
			return err
		}
		if err := ctx.Need("unary", n); err != nil {
			return err
		}
		operands := make([]joy.Value, n)
		for i := n - 1; i >= 0; i-- {
			operands[i] = ctx.Pop()
		}
		results := make([]joy.Value, n)
		for i, x := range operands {
			r, err := applyToCopy(ctx, x, q)
			if err != nil {
				return err
			}
			results[i] = r
		}
		for _, r := range results {
			ctx.Push(r)
		}
		return nil
	}
}

// applyJoint runs q against a stack preloaded with all of operands (in
// order) and returns the single value it leaves, restoring the caller's
// real stack afterward. Used by binary/ternary/app11/app12, which apply a
// quotation to several operands jointly rather than one at a time.
func applyJoint(ctx *joy.Context, operands []joy.Value, q *joy.List) (joy.Value, error) {
	snap := ctx.Stack.Snapshot()
	ctx.Stack.Restore(nil)
	for _, v := range operands {
		ctx.Push(v.Copy())
	}
	err := ctx.RunQuotation(q)
	var result joy.Value
	if err == nil {
		if ctx.Stack.Len() == 0 {
			err = joy.NewDomainError("binary", "quotation left no result")
		} else {
			result = ctx.Pop()
		}
	}
	ctx.Stack.Restore(snap)
	return result, err
}
