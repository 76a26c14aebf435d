package primitives

import "github.com/shakfu/joy"

// LogicCommands implements true, false and the boolean connectives.
// true/false are genuine zero-arity primitives, not scanner/parser
// literals, grounded on evaluator/logic.py's true_/false_
// registrations - a DEFINE of either name shadows it exactly like any
// other word, which is why eval.go's fallbackLiteral does not special-
// case them. and/or/xor operate as bitmask ops when BOTH operands are
// SET, otherwise as boolean ops on truthiness; not mirrors
// the same rule over its single operand.
var LogicCommands = map[string]joy.Primitive{
	"true":  func(ctx *joy.Context) error { ctx.Push(joy.True); return nil },
	"false": func(ctx *joy.Context) error { ctx.Push(joy.False); return nil },

	"not": func(ctx *joy.Context) error {
		if err := ctx.Need("not", 1); err != nil {
			return err
		}
		v := ctx.Pop()
		if s, ok := v.(joy.Set64); ok {
			ctx.Push(^s)
			return nil
		}
		ctx.Push(joy.Bool(!joy.Truthy(v)))
		return nil
	},

	"and": setOrBool("and", func(a, b joy.Set64) joy.Set64 { return a & b }, func(a, b bool) bool { return a && b }),
	"or":  setOrBool("or", func(a, b joy.Set64) joy.Set64 { return a | b }, func(a, b bool) bool { return a || b }),
	"xor": setOrBool("xor", func(a, b joy.Set64) joy.Set64 { return a ^ b }, func(a, b bool) bool { return a != b }),
}

func setOrBool(prim string, setOp func(a, b joy.Set64) joy.Set64, boolOp func(a, b bool) bool) joy.Primitive {
	return func(ctx *joy.Context) error {
		if err := ctx.Need(prim, 2); err != nil {
			return err
		}
		b, a := ctx.Pop(), ctx.Pop()
		if as, ok := a.(joy.Set64); ok {
			if bs, ok := b.(joy.Set64); ok {
				ctx.Push(setOp(as, bs))
				return nil
			}
		}
		ctx.Push(joy.Bool(boolOp(joy.Truthy(a), joy.Truthy(b))))
		return nil
	}
}
