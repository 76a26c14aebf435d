package primitives

import "github.com/shakfu/joy"

// numeric coerces an operand to a float64 for arithmetic, accepting
// INTEGER, FLOAT, CHAR and BOOLEAN the way evaluator/arithmetic.py's
// _numeric_value does, and reports whether the operand was integral so
// callers can keep integer results in INTEGER rather than always widening
// to FLOAT.
func numeric(prim string, v joy.Value) (f float64, isInt bool, err error) {
	switch t := v.(type) {
	case joy.Int64:
		return float64(t), true, nil
	case joy.Float64:
		return float64(t), false, nil
	case joy.Char:
		return float64(t), true, nil
	case joy.Bool:
		if t {
			return 1, true, nil
		}
		return 0, true, nil
	default:
		return 0, false, joy.NewTypeError(prim, "number", v.Kind().String())
	}
}

func numericResult(isInt bool, f float64) joy.Value {
	if isInt {
		return joy.Int64(int64(f))
	}
	return joy.Float64(f)
}

func binaryArith(prim string, fn func(a, b float64) float64) joy.Primitive {
	return func(ctx *joy.Context) error {
		if err := ctx.Need(prim, 2); err != nil {
			return err
		}
		bv, av := ctx.Pop(), ctx.Pop()
		a, aInt, err := numeric(prim, av)
		if err != nil {
			return err
		}
		b, bInt, err := numeric(prim, bv)
		if err != nil {
			return err
		}
		ctx.Push(numericResult(aInt && bInt, fn(a, b)))
		return nil
	}
}

func unaryArith(prim string, fn func(a float64) float64) joy.Primitive {
	return func(ctx *joy.Context) error {
		if err := ctx.Need(prim, 1); err != nil {
			return err
		}
		a, aInt, err := numeric(prim, ctx.Pop())
		if err != nil {
			return err
		}
		ctx.Push(numericResult(aInt, fn(a)))
		return nil
	}
}

// ArithCommands implements +, -, *, /, rem, div and the small family of
// sign/rounding words, grounded on evaluator/arithmetic.py.
// Integer-vs-float result typing follows this spec's stricter rule, not
// the Python source's float-auto-demotes-to-int behaviour: a binary op
// stays INTEGER only when BOTH operands were already integral.
var ArithCommands = map[string]joy.Primitive{
	"+": binaryArith("+", func(a, b float64) float64 { return a + b }),
	"-": binaryArith("-", func(a, b float64) float64 { return a - b }),
	"*": binaryArith("*", func(a, b float64) float64 { return a * b }),

	"/": func(ctx *joy.Context) error {
		if err := ctx.Need("/", 2); err != nil {
			return err
		}
		bv, av := ctx.Pop(), ctx.Pop()
		a, aInt, err := numeric("/", av)
		if err != nil {
			return err
		}
		b, bInt, err := numeric("/", bv)
		if err != nil {
			return err
		}
		if b == 0 {
			return joy.NewDomainError("/", "division by zero")
		}
		if aInt && bInt {
			ctx.Push(joy.Int64(int64(a) / int64(b)))
			return nil
		}
		ctx.Push(joy.Float64(a / b))
		return nil
	},

	"rem": func(ctx *joy.Context) error {
		if err := ctx.Need("rem", 2); err != nil {
			return err
		}
		bv, av := ctx.Pop(), ctx.Pop()
		b, err := asInt("rem", bv)
		if err != nil {
			return err
		}
		a, err := asInt("rem", av)
		if err != nil {
			return err
		}
		if b == 0 {
			return joy.NewDomainError("rem", "division by zero")
		}
		ctx.Push(joy.Int64(a % b))
		return nil
	},

	"div": func(ctx *joy.Context) error { // I J -> Q R
		if err := ctx.Need("div", 2); err != nil {
			return err
		}
		bv, av := ctx.Pop(), ctx.Pop()
		b, err := asInt("div", bv)
		if err != nil {
			return err
		}
		a, err := asInt("div", av)
		if err != nil {
			return err
		}
		if b == 0 {
			return joy.NewDomainError("div", "division by zero")
		}
		ctx.Push(joy.Int64(a / b))
		ctx.Push(joy.Int64(a % b))
		return nil
	},

	"abs": unaryArith("abs", func(a float64) float64 {
		if a < 0 {
			return -a
		}
		return a
	}),

	"neg": unaryArith("neg", func(a float64) float64 { return -a }),

	"sign": unaryArith("sign", func(a float64) float64 {
		switch {
		case a > 0:
			return 1
		case a < 0:
			return -1
		default:
			return 0
		}
	}),

	"succ": unaryArith("succ", func(a float64) float64 { return a + 1 }),
	"pred": unaryArith("pred", func(a float64) float64 { return a - 1 }),

	"max": binaryArith("max", func(a, b float64) float64 {
		if a > b {
			return a
		}
		return b
	}),
	"min": binaryArith("min", func(a, b float64) float64 {
		if a < b {
			return a
		}
		return b
	}),
}

func asInt(prim string, v joy.Value) (int64, error) {
	n, ok := v.(joy.Int64)
	if !ok {
		return 0, joy.NewTypeError(prim, "integer", v.Kind().String())
	}
	return int64(n), nil
}
