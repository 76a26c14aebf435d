package primitives

import (
	"math"
	"math/rand"

	"github.com/shakfu/joy"
)

func mathUnary(prim string, fn func(float64) float64) joy.Primitive {
	return func(ctx *joy.Context) error {
		if err := ctx.Need(prim, 1); err != nil {
			return err
		}
		a, _, err := numeric(prim, ctx.Pop())
		if err != nil {
			return err
		}
		ctx.Push(joy.Float64(fn(a)))
		return nil
	}
}

// NumericCommands implements the transcendental math words and rand/srand,
// grounded on evaluator/arithmetic.py's thin wrapper over Python's math
// module, mapped word for word onto Go's math package. Every one of
// these returns FLOAT, except frexp's exponent and rand's result, which
// are INTEGER, matching the INTEGER-vs-FLOAT discipline
// kept elsewhere; there is no integral-input special case to mirror
// from the Python source, which round-trips whole results back to int.
var NumericCommands = map[string]joy.Primitive{
	"sin":  mathUnary("sin", math.Sin),
	"cos":  mathUnary("cos", math.Cos),
	"tan":  mathUnary("tan", math.Tan),
	"asin": mathUnary("asin", math.Asin),
	"acos": mathUnary("acos", math.Acos),
	"atan": mathUnary("atan", math.Atan),
	"sinh": mathUnary("sinh", math.Sinh),
	"cosh": mathUnary("cosh", math.Cosh),
	"tanh": mathUnary("tanh", math.Tanh),
	"exp":  mathUnary("exp", math.Exp),
	"log":  mathUnary("log", math.Log),
	"log10": mathUnary("log10", math.Log10),
	"sqrt": mathUnary("sqrt", math.Sqrt),
	"ceil": mathUnary("ceil", math.Ceil),
	"floor": mathUnary("floor", math.Floor),
	"trunc": mathUnary("trunc", math.Trunc),
	"round": mathUnary("round", math.Round),

	"atan2": func(ctx *joy.Context) error {
		if err := ctx.Need("atan2", 2); err != nil {
			return err
		}
		bv, av := ctx.Pop(), ctx.Pop()
		b, _, err := numeric("atan2", bv)
		if err != nil {
			return err
		}
		a, _, err := numeric("atan2", av)
		if err != nil {
			return err
		}
		ctx.Push(joy.Float64(math.Atan2(a, b)))
		return nil
	},

	"pow": func(ctx *joy.Context) error {
		if err := ctx.Need("pow", 2); err != nil {
			return err
		}
		bv, av := ctx.Pop(), ctx.Pop()
		b, _, err := numeric("pow", bv)
		if err != nil {
			return err
		}
		a, _, err := numeric("pow", av)
		if err != nil {
			return err
		}
		ctx.Push(joy.Float64(math.Pow(a, b)))
		return nil
	},

	"modf": func(ctx *joy.Context) error { // F -> Iint Ffrac
		if err := ctx.Need("modf", 1); err != nil {
			return err
		}
		a, _, err := numeric("modf", ctx.Pop())
		if err != nil {
			return err
		}
		ip, fp := math.Modf(a)
		ctx.Push(joy.Float64(ip))
		ctx.Push(joy.Float64(fp))
		return nil
	},

	"frexp": func(ctx *joy.Context) error { // F -> F I
		if err := ctx.Need("frexp", 1); err != nil {
			return err
		}
		a, _, err := numeric("frexp", ctx.Pop())
		if err != nil {
			return err
		}
		frac, exp := math.Frexp(a)
		ctx.Push(joy.Float64(frac))
		ctx.Push(joy.Int64(exp))
		return nil
	},

	"ldexp": func(ctx *joy.Context) error { // F I -> F
		if err := ctx.Need("ldexp", 2); err != nil {
			return err
		}
		ev := ctx.Pop()
		e, ok := ev.(joy.Int64)
		if !ok {
			return joy.NewTypeError("ldexp", "integer", ev.Kind().String())
		}
		a, _, err := numeric("ldexp", ctx.Pop())
		if err != nil {
			return err
		}
		ctx.Push(joy.Float64(math.Ldexp(a, int(e))))
		return nil
	},

	"rand": func(ctx *joy.Context) error {
		ctx.Push(joy.Int64(ctx.Rand().Int63()))
		return nil
	},

	"srand": func(ctx *joy.Context) error {
		if err := ctx.Need("srand", 1); err != nil {
			return err
		}
		n, err := ctx.PopInt("srand")
		if err != nil {
			return err
		}
		ctx.SeedRand(rand.NewSource(int64(n)))
		return nil
	},
}
