package primitives

import "github.com/shakfu/joy"

// LoopCommands implements the counted/conditional loops and the aggregate
// iteration combinators, grounded on evaluator/combinators.py
// (times/while/loop) and evaluator/aggregate.py (step/map/filter/split/
// fold/any/all).
var LoopCommands = map[string]joy.Primitive{
	"times": func(ctx *joy.Context) error { // N [P] -> ...
		if err := ctx.Need("times", 2); err != nil {
			return err
		}
		p, err := ctx.PopQuotation("times")
		if err != nil {
			return err
		}
		n, err := ctx.PopInt("times")
		if err != nil {
			return err
		}
		for i := joy.Int64(0); i < n; i++ {
			if err := ctx.RunQuotation(p); err != nil {
				return err
			}
		}
		return nil
	},

	"while": func(ctx *joy.Context) error { // [B] [P] -> ...
		if err := ctx.Need("while", 2); err != nil {
			return err
		}
		p, err := ctx.PopQuotation("while")
		if err != nil {
			return err
		}
		b, err := ctx.PopQuotation("while")
		if err != nil {
			return err
		}
		for {
			ok, err := snapshotTest(ctx, b)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if err := ctx.RunQuotation(p); err != nil {
				return err
			}
		}
	},

	"loop": func(ctx *joy.Context) error { // [P] -> ..., runs P until it leaves false
		if err := ctx.Need("loop", 1); err != nil {
			return err
		}
		p, err := ctx.PopQuotation("loop")
		if err != nil {
			return err
		}
		for {
			if err := ctx.RunQuotation(p); err != nil {
				return err
			}
			if err := ctx.Need("loop", 1); err != nil {
				return err
			}
			if !joy.Truthy(ctx.Pop()) {
				return nil
			}
		}
	},

	"step": iterateNoResult("step"),
	"each": iterateNoResult("each"),

	"map": func(ctx *joy.Context) error { // A [P] -> A'
		if err := ctx.Need("map", 2); err != nil {
			return err
		}
		p, err := ctx.PopQuotation("map")
		if err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("map")
		if err != nil {
			return err
		}
		elems, rebuild := aggregateElements(agg)
		out := make([]joy.Value, len(elems))
		for i, e := range elems {
			r, err := applyToCopy(ctx, e, p)
			if err != nil {
				return err
			}
			out[i] = r
		}
		ctx.Push(rebuild(out))
		return nil
	},

	"filter": func(ctx *joy.Context) error { // A [P] -> A'
		if err := ctx.Need("filter", 2); err != nil {
			return err
		}
		p, err := ctx.PopQuotation("filter")
		if err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("filter")
		if err != nil {
			return err
		}
		elems, rebuild := aggregateElements(agg)
		var out []joy.Value
		for _, e := range elems {
			keep, err := testElem(ctx, e, p)
			if err != nil {
				return err
			}
			if keep {
				out = append(out, e)
			}
		}
		ctx.Push(rebuild(out))
		return nil
	},

	"split": func(ctx *joy.Context) error { // A [P] -> A1 A2
		if err := ctx.Need("split", 2); err != nil {
			return err
		}
		p, err := ctx.PopQuotation("split")
		if err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("split")
		if err != nil {
			return err
		}
		elems, rebuild := aggregateElements(agg)
		var yes, no []joy.Value
		for _, e := range elems {
			keep, err := testElem(ctx, e, p)
			if err != nil {
				return err
			}
			if keep {
				yes = append(yes, e)
			} else {
				no = append(no, e)
			}
		}
		ctx.Push(rebuild(yes))
		ctx.Push(rebuild(no))
		return nil
	},

	"fold": func(ctx *joy.Context) error { // A V0 [P] -> V
		if err := ctx.Need("fold", 3); err != nil {
			return err
		}
		p, err := ctx.PopQuotation("fold")
		if err != nil {
			return err
		}
		acc := ctx.Pop()
		agg, err := ctx.PopAggregate("fold")
		if err != nil {
			return err
		}
		elems, _ := aggregateElements(agg)
		for _, e := range elems {
			r, err := applyJoint(ctx, []joy.Value{acc, e}, p)
			if err != nil {
				return err
			}
			acc = r
		}
		ctx.Push(acc)
		return nil
	},

	"any":  anyAll("any", false),
	"some": anyAll("some", false),
	"all":  anyAll("all", true),
}

// iterateNoResult builds step/each: run P once per element, in order,
// discarding no results and collecting none.
func iterateNoResult(prim string) joy.Primitive {
	return func(ctx *joy.Context) error {
		if err := ctx.Need(prim, 2); err != nil {
			return err
		}
		p, err := ctx.PopQuotation(prim)
		if err != nil {
			return err
		}
		agg, err := ctx.PopAggregate(prim)
		if err != nil {
			return err
		}
		elems, _ := aggregateElements(agg)
		for _, e := range elems {
			ctx.Push(e)
			if err := ctx.RunQuotation(p); err != nil {
				return err
			}
		}
		return nil
	}
}

func testElem(ctx *joy.Context, e joy.Value, p *joy.List) (bool, error) {
	snap := ctx.Stack.Snapshot()
	ctx.Stack.Restore(nil)
	ctx.Push(e.Copy())
	err := ctx.RunQuotation(p)
	var result bool
	if err == nil {
		if ctx.Stack.Len() == 0 {
			err = joy.NewDomainError("filter", "predicate left no result")
		} else {
			result = joy.Truthy(ctx.Pop())
		}
	}
	ctx.Stack.Restore(snap)
	return result, err
}

func anyAll(prim string, allMode bool) joy.Primitive {
	return func(ctx *joy.Context) error {
		if err := ctx.Need(prim, 2); err != nil {
			return err
		}
		p, err := ctx.PopQuotation(prim)
		if err != nil {
			return err
		}
		agg, err := ctx.PopAggregate(prim)
		if err != nil {
			return err
		}
		elems, _ := aggregateElements(agg)
		for _, e := range elems {
			ok, err := testElem(ctx, e, p)
			if err != nil {
				return err
			}
			if allMode && !ok {
				ctx.Push(joy.False)
				return nil
			}
			if !allMode && ok {
				ctx.Push(joy.True)
				return nil
			}
		}
		ctx.Push(joy.Bool(allMode))
		return nil
	}
}
