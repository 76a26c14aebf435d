package primitives

import "github.com/shakfu/joy"

// ConditionalCommands implements ifte, branch, cond, case and opcase,
// grounded on evaluator/combinators.py. ifte/cond snapshot
// and restore the stack around the test the way every predicate-taking
// combinator must (helpers.go); branch's condition is already a BOOLEAN
// value rather than a quotation to test, so it needs no snapshot.
var ConditionalCommands = map[string]joy.Primitive{
	"ifte": func(ctx *joy.Context) error { // [B] [T] [F] -> ...
		if err := ctx.Need("ifte", 3); err != nil {
			return err
		}
		f, err := ctx.PopQuotation("ifte")
		if err != nil {
			return err
		}
		t, err := ctx.PopQuotation("ifte")
		if err != nil {
			return err
		}
		b, err := ctx.PopQuotation("ifte")
		if err != nil {
			return err
		}
		ok, err := snapshotTest(ctx, b)
		if err != nil {
			return err
		}
		if ok {
			return ctx.RunQuotation(t)
		}
		return ctx.RunQuotation(f)
	},

	"branch": func(ctx *joy.Context) error { // B [T] [F] -> ...
		if err := ctx.Need("branch", 3); err != nil {
			return err
		}
		f, err := ctx.PopQuotation("branch")
		if err != nil {
			return err
		}
		t, err := ctx.PopQuotation("branch")
		if err != nil {
			return err
		}
		b := ctx.Pop()
		if joy.Truthy(b) {
			return ctx.RunQuotation(t)
		}
		return ctx.RunQuotation(f)
	},

	// cond : [[[B1] T1] [[B2] T2] ... [D]] -> ...
	// A one-element clause is the default: run it unconditionally. Every
	// other clause is [[Bi] Ti]: test Bi (snapshot/restore), and on a match
	// run Ti and stop.
	"cond": func(ctx *joy.Context) error {
		if err := ctx.Need("cond", 1); err != nil {
			return err
		}
		clauses, err := ctx.PopQuotation("cond")
		if err != nil {
			return err
		}
		for _, cv := range clauses.Slice() {
			clause, ok := cv.(*joy.List)
			if !ok {
				return joy.NewTypeError("cond", "clause quotation", cv.Kind().String())
			}
			parts := clause.Slice()
			if len(parts) == 1 {
				body, ok := parts[0].(*joy.List)
				if !ok {
					return joy.NewTypeError("cond", "clause body quotation", parts[0].Kind().String())
				}
				return ctx.RunQuotation(joy.AsQuotation(body))
			}
			if len(parts) != 2 {
				return joy.NewDomainError("cond", "clause must have 1 or 2 parts, got %d", len(parts))
			}
			test, ok := parts[0].(*joy.List)
			if !ok {
				return joy.NewTypeError("cond", "clause test quotation", parts[0].Kind().String())
			}
			matched, err := snapshotTest(ctx, joy.AsQuotation(test))
			if err != nil {
				return err
			}
			if matched {
				body, ok := parts[1].(*joy.List)
				if !ok {
					return joy.NewTypeError("cond", "clause body quotation", parts[1].Kind().String())
				}
				return ctx.RunQuotation(joy.AsQuotation(body))
			}
		}
		return nil
	},

	// case : X [[V1 B1] [V2 B2] ... [D]] -> ...
	// X is consumed on a match (compared to each Vi by =), preserved
	// (pushed back) for the default clause.
	"case": func(ctx *joy.Context) error {
		if err := ctx.Need("case", 2); err != nil {
			return err
		}
		clauses, err := ctx.PopQuotation("case")
		if err != nil {
			return err
		}
		x := ctx.Pop()
		for _, cv := range clauses.Slice() {
			clause, ok := cv.(*joy.List)
			if !ok {
				return joy.NewTypeError("case", "clause quotation", cv.Kind().String())
			}
			parts := clause.Slice()
			if len(parts) == 1 {
				body, ok := parts[0].(*joy.List)
				if !ok {
					return joy.NewTypeError("case", "clause body quotation", parts[0].Kind().String())
				}
				ctx.Push(x)
				return ctx.RunQuotation(joy.AsQuotation(body))
			}
			if len(parts) != 2 {
				return joy.NewDomainError("case", "clause must have 1 or 2 parts, got %d", len(parts))
			}
			if joy.Equal(parts[0], x) {
				body, ok := parts[1].(*joy.List)
				if !ok {
					return joy.NewTypeError("case", "clause body quotation", parts[1].Kind().String())
				}
				return ctx.RunQuotation(joy.AsQuotation(body))
			}
		}
		ctx.Push(x)
		return nil
	},

	// opcase : X [[K1 [B1]] [K2 [B2]] ... [D]] -> [Bi] (dispatched by kind,
	// pushes the matching clause's body as a QUOTATION rather than running
	// it - the distinguishing feature of opcase over case).
	"opcase": func(ctx *joy.Context) error {
		if err := ctx.Need("opcase", 2); err != nil {
			return err
		}
		clauses, err := ctx.PopQuotation("opcase")
		if err != nil {
			return err
		}
		x := ctx.Pop()
		for _, cv := range clauses.Slice() {
			clause, ok := cv.(*joy.List)
			if !ok {
				return joy.NewTypeError("opcase", "clause quotation", cv.Kind().String())
			}
			parts := clause.Slice()
			if len(parts) == 1 {
				body, ok := parts[0].(*joy.List)
				if !ok {
					return joy.NewTypeError("opcase", "clause body quotation", parts[0].Kind().String())
				}
				ctx.Push(joy.AsQuotation(body))
				return nil
			}
			if len(parts) != 2 {
				return joy.NewDomainError("opcase", "clause must have 1 or 2 parts, got %d", len(parts))
			}
			if kindMatches(parts[0], x) {
				body, ok := parts[1].(*joy.List)
				if !ok {
					return joy.NewTypeError("opcase", "clause body quotation", parts[1].Kind().String())
				}
				ctx.Push(joy.AsQuotation(body))
				return nil
			}
		}
		return joy.NewDomainError("opcase", "no matching clause for kind %s", x.Kind().String())
	},
}

// kindMatches reports whether key names x's kind, either as a SYMBOL
// holding the kind's name or as a sample value of that kind.
func kindMatches(key joy.Value, x joy.Value) bool {
	if sym, ok := key.(*joy.Sym); ok {
		return sym.Name() == x.Kind().String()
	}
	return key.Kind() == x.Kind()
}

// ifKind builds the per-kind inspection combinators
//: X [T] [F] -> ..., inspecting X's kind without popping it,
// then running T or F. One closure factory shared across all eight,
// grounded on evaluator/combinators.py's ifinteger/iffloat/ifchar/
// iflogical/ifset/ifstring/iflist/iffile, each a one-line kind test over
// the same if_ helper in the Python source.
func ifKind(name string, match func(joy.Kind) bool) joy.Primitive {
	return func(ctx *joy.Context) error {
		if err := ctx.Need(name, 3); err != nil {
			return err
		}
		f, err := ctx.PopQuotation(name)
		if err != nil {
			return err
		}
		t, err := ctx.PopQuotation(name)
		if err != nil {
			return err
		}
		if err := ctx.Need(name, 1); err != nil {
			return err
		}
		x := ctx.Stack.Peek(0)
		if match(x.Kind()) {
			return ctx.RunQuotation(t)
		}
		return ctx.RunQuotation(f)
	}
}

func init() {
	ConditionalCommands["ifinteger"] = ifKind("ifinteger", func(k joy.Kind) bool { return k == joy.KindInteger })
	ConditionalCommands["iffloat"] = ifKind("iffloat", func(k joy.Kind) bool { return k == joy.KindFloat })
	ConditionalCommands["ifchar"] = ifKind("ifchar", func(k joy.Kind) bool { return k == joy.KindChar })
	ConditionalCommands["iflogical"] = ifKind("iflogical", func(k joy.Kind) bool { return k == joy.KindBoolean })
	ConditionalCommands["ifset"] = ifKind("ifset", func(k joy.Kind) bool { return k == joy.KindSet })
	ConditionalCommands["ifstring"] = ifKind("ifstring", func(k joy.Kind) bool { return k == joy.KindString })
	ConditionalCommands["iflist"] = ifKind("iflist", func(k joy.Kind) bool { return k == joy.KindList || k == joy.KindQuotation })
	ConditionalCommands["iffile"] = ifKind("iffile", func(k joy.Kind) bool { return k == joy.KindFile })
}
