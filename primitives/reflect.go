package primitives

import "github.com/shakfu/joy"

// ReflectCommands implements the dictionary-introspection and evaluator-flag
// words, grounded on evaluator/inscribe.py's body_/get_/put_
// dictionary pokes and the flag accessors in evaluator.py's interactive
// loop. assign closes over a DeepCopy of its argument so later mutation of
// the original value (e.g. a LIST still on the stack) can never leak into
// the newly bound word, matching dispatch's own "push a deep copy" rule for
// ordinary literals (eval.go).
var ReflectCommands = map[string]joy.Primitive{
	"body": func(ctx *joy.Context) error { // SYM -> QUOTATION
		if err := ctx.Need("body", 1); err != nil {
			return err
		}
		sym, err := ctx.PopSymbol("body")
		if err != nil {
			return err
		}
		b, ok := ctx.Dict.Get(sym.Name())
		if !ok || !b.IsUser {
			return joy.NewDomainError("body", "%s is not a user-defined word", sym.Name())
		}
		ctx.Push(joy.AsQuotation(b.Body))
		return nil
	},

	"assign": func(ctx *joy.Context) error { // X SYM ->
		if err := ctx.Need("assign", 2); err != nil {
			return err
		}
		sym, err := ctx.PopSymbol("assign")
		if err != nil {
			return err
		}
		x := ctx.Pop().DeepCopy()
		ctx.Dict.SetUser(sym.Name(), joy.NewQuotation(x))
		return nil
	},

	"unassign": func(ctx *joy.Context) error { // SYM ->
		if err := ctx.Need("unassign", 1); err != nil {
			return err
		}
		sym, err := ctx.PopSymbol("unassign")
		if err != nil {
			return err
		}
		ctx.Dict.Unassign(sym.Name())
		return nil
	},

	"user": func(ctx *joy.Context) error { // SYM -> B
		if err := ctx.Need("user", 1); err != nil {
			return err
		}
		sym, err := ctx.PopSymbol("user")
		if err != nil {
			return err
		}
		b, ok := ctx.Dict.Get(sym.Name())
		ctx.Push(joy.Bool(ok && b.IsUser))
		return nil
	},

	"autoput": func(ctx *joy.Context) error { // -> B
		ctx.Push(joy.Bool(ctx.Autoput))
		return nil
	},
	"setautoput": func(ctx *joy.Context) error { // B ->
		if err := ctx.Need("setautoput", 1); err != nil {
			return err
		}
		b, err := ctx.PopBool("setautoput")
		if err != nil {
			return err
		}
		ctx.Autoput = bool(b)
		return nil
	},

	"undeferror": func(ctx *joy.Context) error { // -> B
		ctx.Push(joy.Bool(ctx.UndefError))
		return nil
	},
	"setundeferror": func(ctx *joy.Context) error { // B ->
		if err := ctx.Need("setundeferror", 1); err != nil {
			return err
		}
		b, err := ctx.PopBool("setundeferror")
		if err != nil {
			return err
		}
		ctx.UndefError = bool(b)
		return nil
	},

	"echo": func(ctx *joy.Context) error { // -> I
		ctx.Push(joy.Int64(ctx.Echo))
		return nil
	},
	"setecho": func(ctx *joy.Context) error { // I ->
		if err := ctx.Need("setecho", 1); err != nil {
			return err
		}
		n, err := ctx.PopInt("setecho")
		if err != nil {
			return err
		}
		ctx.Echo = int(n)
		return nil
	},

	"undefs": func(ctx *joy.Context) error { // -> LIST
		vs := make([]joy.Value, len(ctx.Undefs))
		for i, n := range ctx.Undefs {
			vs[i] = joy.NewSym(n)
		}
		ctx.Push(joy.FromSlice(vs, false))
		return nil
	},
}
