package primitives

import "github.com/shakfu/joy"

// AggregateCommands implements the LIST/QUOTATION/STRING/SET-polymorphic
// aggregate words, grounded on evaluator/aggregate.py for
// per-kind dispatch (cons prepends a Go rune for STRING but a Value for
// LIST/QUOTATION; SET's members are the integers it contains, not a
// structural decomposition).
var AggregateCommands = map[string]joy.Primitive{
	"cons": func(ctx *joy.Context) error { // X A -> A'
		if err := ctx.Need("cons", 2); err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("cons")
		if err != nil {
			return err
		}
		x := ctx.Pop()
		v, err := prepend(x, agg)
		if err != nil {
			return err
		}
		ctx.Push(v)
		return nil
	},

	"swons": func(ctx *joy.Context) error { // A X -> A'
		if err := ctx.Need("swons", 2); err != nil {
			return err
		}
		x := ctx.Pop()
		agg, err := ctx.PopAggregate("swons")
		if err != nil {
			return err
		}
		v, err := prepend(x, agg)
		if err != nil {
			return err
		}
		ctx.Push(v)
		return nil
	},

	"first": func(ctx *joy.Context) error {
		if err := ctx.Need("first", 1); err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("first")
		if err != nil {
			return err
		}
		elems, _ := aggregateElements(agg)
		if len(elems) == 0 {
			return joy.NewDomainError("first", "empty aggregate")
		}
		ctx.Push(elems[0])
		return nil
	},

	"rest": func(ctx *joy.Context) error {
		if err := ctx.Need("rest", 1); err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("rest")
		if err != nil {
			return err
		}
		elems, rebuild := aggregateElements(agg)
		if len(elems) == 0 {
			return joy.NewDomainError("rest", "empty aggregate")
		}
		ctx.Push(rebuild(elems[1:]))
		return nil
	},

	"uncons": func(ctx *joy.Context) error { // A -> X A'
		if err := ctx.Need("uncons", 1); err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("uncons")
		if err != nil {
			return err
		}
		elems, rebuild := aggregateElements(agg)
		if len(elems) == 0 {
			return joy.NewDomainError("uncons", "empty aggregate")
		}
		ctx.Push(elems[0])
		ctx.Push(rebuild(elems[1:]))
		return nil
	},

	"unswons": func(ctx *joy.Context) error { // A -> A' X
		if err := ctx.Need("unswons", 1); err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("unswons")
		if err != nil {
			return err
		}
		elems, rebuild := aggregateElements(agg)
		if len(elems) == 0 {
			return joy.NewDomainError("unswons", "empty aggregate")
		}
		ctx.Push(rebuild(elems[1:]))
		ctx.Push(elems[0])
		return nil
	},

	// null tests for zero/empty: a numeric or char tests against 0, a
	// boolean against false, a file against a closed/nil handle, and any
	// other aggregate against length 0, mirroring the Python source's
	// per-kind dispatch rather than only accepting aggregates.
	"null": func(ctx *joy.Context) error {
		if err := ctx.Need("null", 1); err != nil {
			return err
		}
		v := ctx.Pop()
		switch t := v.(type) {
		case joy.Int64:
			ctx.Push(joy.Bool(t == 0))
		case joy.Float64:
			ctx.Push(joy.Bool(t == 0))
		case joy.Bool:
			ctx.Push(joy.Bool(!bool(t)))
		case joy.Char:
			ctx.Push(joy.Bool(t == 0))
		case *joy.FileHandle:
			ctx.Push(joy.Bool(t.File() == nil))
		case *joy.List, *joy.Str, joy.Set64:
			elems, _ := aggregateElements(v)
			ctx.Push(joy.Bool(len(elems) == 0))
		default:
			return joy.NewTypeError("null", "aggregate or numeric", v.Kind().String())
		}
		return nil
	},

	// small tests for 0-or-1 elements, or (mirroring null) a numeric/char
	// value below 2 and every boolean, per the Python source's small.
	"small": func(ctx *joy.Context) error {
		if err := ctx.Need("small", 1); err != nil {
			return err
		}
		v := ctx.Pop()
		switch t := v.(type) {
		case joy.Int64:
			ctx.Push(joy.Bool(t < 2))
		case joy.Float64:
			ctx.Push(joy.Bool(t < 2))
		case joy.Bool:
			ctx.Push(joy.Bool(true))
		case joy.Char:
			ctx.Push(joy.Bool(t < 2))
		case *joy.List, *joy.Str, joy.Set64:
			elems, _ := aggregateElements(v)
			ctx.Push(joy.Bool(len(elems) <= 1))
		default:
			return joy.NewTypeError("small", "aggregate or numeric", v.Kind().String())
		}
		return nil
	},

	"size": func(ctx *joy.Context) error {
		if err := ctx.Need("size", 1); err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("size")
		if err != nil {
			return err
		}
		elems, _ := aggregateElements(agg)
		ctx.Push(joy.Int64(len(elems)))
		return nil
	},

	"reverse": func(ctx *joy.Context) error {
		if err := ctx.Need("reverse", 1); err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("reverse")
		if err != nil {
			return err
		}
		elems, rebuild := aggregateElements(agg)
		rev := make([]joy.Value, len(elems))
		for i, e := range elems {
			rev[len(elems)-1-i] = e
		}
		ctx.Push(rebuild(rev))
		return nil
	},

	"concat": func(ctx *joy.Context) error {
		if err := ctx.Need("concat", 2); err != nil {
			return err
		}
		b, err := ctx.PopAggregate("concat")
		if err != nil {
			return err
		}
		a, err := ctx.PopAggregate("concat")
		if err != nil {
			return err
		}
		v, err := concatAggregates(a, b)
		if err != nil {
			return err
		}
		ctx.Push(v)
		return nil
	},

	"swoncat": func(ctx *joy.Context) error { // A B -> B++A
		if err := ctx.Need("swoncat", 2); err != nil {
			return err
		}
		b, err := ctx.PopAggregate("swoncat")
		if err != nil {
			return err
		}
		a, err := ctx.PopAggregate("swoncat")
		if err != nil {
			return err
		}
		v, err := concatAggregates(b, a)
		if err != nil {
			return err
		}
		ctx.Push(v)
		return nil
	},

	"enconcat": func(ctx *joy.Context) error { // A X B -> A++[X]++B
		if err := ctx.Need("enconcat", 3); err != nil {
			return err
		}
		b, err := ctx.PopAggregate("enconcat")
		if err != nil {
			return err
		}
		x := ctx.Pop()
		a, err := ctx.PopAggregate("enconcat")
		if err != nil {
			return err
		}
		mid, err := prepend(x, b)
		if err != nil {
			return err
		}
		v, err := concatAggregates(a, mid)
		if err != nil {
			return err
		}
		ctx.Push(v)
		return nil
	},

	"at": func(ctx *joy.Context) error { // A N -> X
		if err := ctx.Need("at", 2); err != nil {
			return err
		}
		n, err := ctx.PopInt("at")
		if err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("at")
		if err != nil {
			return err
		}
		v, err := indexAt("at", agg, int64(n))
		if err != nil {
			return err
		}
		ctx.Push(v)
		return nil
	},

	"of": func(ctx *joy.Context) error { // N A -> X
		if err := ctx.Need("of", 2); err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("of")
		if err != nil {
			return err
		}
		n, err := ctx.PopInt("of")
		if err != nil {
			return err
		}
		v, err := indexAt("of", agg, int64(n))
		if err != nil {
			return err
		}
		ctx.Push(v)
		return nil
	},

	"pick": func(ctx *joy.Context) error { // A N -> X, same as at
		if err := ctx.Need("pick", 2); err != nil {
			return err
		}
		n, err := ctx.PopInt("pick")
		if err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("pick")
		if err != nil {
			return err
		}
		v, err := indexAt("pick", agg, int64(n))
		if err != nil {
			return err
		}
		ctx.Push(v)
		return nil
	},

	"drop": func(ctx *joy.Context) error { // A N -> A'
		if err := ctx.Need("drop", 2); err != nil {
			return err
		}
		n, err := ctx.PopInt("drop")
		if err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("drop")
		if err != nil {
			return err
		}
		elems, rebuild := aggregateElements(agg)
		k := int(n)
		if k < 0 {
			k = 0
		}
		if k > len(elems) {
			k = len(elems)
		}
		ctx.Push(rebuild(elems[k:]))
		return nil
	},

	"take": func(ctx *joy.Context) error { // A N -> A'
		if err := ctx.Need("take", 2); err != nil {
			return err
		}
		n, err := ctx.PopInt("take")
		if err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("take")
		if err != nil {
			return err
		}
		elems, rebuild := aggregateElements(agg)
		k := int(n)
		if k < 0 {
			k = 0
		}
		if k > len(elems) {
			k = len(elems)
		}
		ctx.Push(rebuild(elems[:k]))
		return nil
	},

	"in": func(ctx *joy.Context) error { // X A -> B
		if err := ctx.Need("in", 2); err != nil {
			return err
		}
		agg, err := ctx.PopAggregate("in")
		if err != nil {
			return err
		}
		x := ctx.Pop()
		ctx.Push(joy.Bool(member(x, agg)))
		return nil
	},

	"has": func(ctx *joy.Context) error { // A X -> B
		if err := ctx.Need("has", 2); err != nil {
			return err
		}
		x := ctx.Pop()
		agg, err := ctx.PopAggregate("has")
		if err != nil {
			return err
		}
		ctx.Push(joy.Bool(member(x, agg)))
		return nil
	},
}

func prepend(x joy.Value, agg joy.Value) (joy.Value, error) {
	elems, rebuild := aggregateElements(agg)
	if rebuild == nil {
		return nil, joy.NewTypeError("cons", "aggregate", agg.Kind().String())
	}
	out := make([]joy.Value, 0, len(elems)+1)
	out = append(out, x)
	out = append(out, elems...)
	return rebuild(out), nil
}

func concatAggregates(a, b joy.Value) (joy.Value, error) {
	ae, rebuild := aggregateElements(a)
	if rebuild == nil {
		return nil, joy.NewTypeError("concat", "aggregate", a.Kind().String())
	}
	be, _ := aggregateElements(b)
	out := make([]joy.Value, 0, len(ae)+len(be))
	out = append(out, ae...)
	out = append(out, be...)
	return rebuild(out), nil
}

func indexAt(prim string, agg joy.Value, n int64) (joy.Value, error) {
	elems, _ := aggregateElements(agg)
	if n < 0 || int(n) >= len(elems) {
		return nil, joy.NewDomainError(prim, "index %d out of range (size %d)", n, len(elems))
	}
	return elems[n], nil
}

func member(x joy.Value, agg joy.Value) bool {
	if set, ok := agg.(joy.Set64); ok {
		if n, ok := x.(joy.Int64); ok {
			return set.Has(int(n))
		}
		return false
	}
	elems, _ := aggregateElements(agg)
	for _, e := range elems {
		if joy.Equal(e, x) {
			return true
		}
	}
	return false
}
