package joy

// frame is one pending stretch of terms awaiting execution. The evaluator
// keeps a single shared stack of these instead of recursing through Go
// function calls for ordinary word expansion, so that a Joy program
// recursing through plain dictionary lookups (the common case: a word
// whose body calls itself by name) costs no Go stack at all - only the
// combinators that must inspect a sub-result before deciding what runs
// next (ifte, the recursion combinators) pay for a nested Go call, and
// that nesting is bounded by how deeply the *program text* nests
// combinators, not by how many times a loop iterates.
//
// Grounded on interpreter.go peval/eval tail-loop,
// generalized from gelo's continuation-passing command dispatch to a
// flat frame stack.
type frame struct {
	terms []Value
	pos   int
}

// Push places a value on the operand stack. Primitives use this directly;
// dispatch uses it for literal terms.
func (c *Context) Push(v Value) { c.Stack.Push(v) }

// Run executes a parsed program against ctx, installing definition blocks
// as they are reached and running the term sequence in between. Consecutive non-definition terms are batched into a single
// frame so a top-level script with no definitions runs as one driver pass.
func (c *Context) Run(p Program) error {
	i := 0
	for i < len(p) {
		if p[i].Define != nil {
			if err := c.installDefineBlock(p[i].Define); err != nil {
				return err
			}
			i++
			continue
		}
		j := i
		var batch []Value
		for j < len(p) && p[j].Define == nil {
			batch = append(batch, p[j].Value)
			j++
		}
		if err := c.RunTerms(batch); err != nil {
			return err
		}
		i = j
	}
	return nil
}

// installDefineBlock binds every clause in block to the dictionary. All
// clauses become visible together, after every clause's body has parsed
// successfully, so one clause may forward-reference a sibling defined
// later in the same block.
func (c *Context) installDefineBlock(block *DefineBlock) error {
	for _, clause := range block.Clauses {
		c.Dict.SetUser(clause.Name, clause.Body)
	}
	return nil
}

// RunTerms runs a flat term sequence to completion using the shared frame
// stack. This is the primitive building block both Run and RunQuotation
// are built from.
func (c *Context) RunTerms(terms []Value) error {
	barrier := len(c.frames)
	c.frames = append(c.frames, frame{terms: terms})
	return c.driver(barrier)
}

// RunQuotation runs a QUOTATION/LIST's elements as code. Combinators that
// must run a sub-quotation to completion before deciding what happens next
// (ifte's test, the recursion combinators' predicate) call this; plain
// word expansion never does, which is what keeps ordinary recursion
// iterative.
func (c *Context) RunQuotation(q *List) error {
	return c.RunTerms(q.Slice())
}

// driver pops and executes terms until the frame stack returns to barrier
// depth. A dispatch error unwinds every frame pushed since barrier before
// propagating, so a failed primitive never leaves stale continuations
// behind for an enclosing catch.
func (c *Context) driver(barrier int) error {
	for len(c.frames) > barrier {
		top := &c.frames[len(c.frames)-1]
		if top.pos >= len(top.terms) {
			c.frames = c.frames[:len(c.frames)-1]
			continue
		}
		term := top.terms[top.pos]
		top.pos++
		if err := c.dispatch(term); err != nil {
			c.frames = c.frames[:barrier]
			return err
		}
	}
	return nil
}

// dispatch runs one term: a non-symbol term is data and is pushed as a
// deep copy (so executing the same literal list twice never aliases
// state); a symbol is looked up in the dictionary and either invoked
// (primitive) or expanded in place (user word, by pushing its body as the
// new top frame - no Go recursion).
func (c *Context) dispatch(term Value) error {
	sym, isSym := term.(*Sym)
	if !isSym {
		c.Stack.Push(term.DeepCopy())
		return nil
	}
	name := sym.Name()
	if b, ok := c.Dict.Get(name); ok {
		if b.IsUser {
			c.frames = append(c.frames, frame{terms: b.Body.Slice()})
			return nil
		}
		evalTrace("call %s", name)
		return b.Prim(c)
	}
	if v, ok := fallbackLiteral(name); ok {
		c.Stack.Push(v)
		return nil
	}
	if c.UndefError {
		return NewUndefinedWordError(name)
	}
	c.Undefs = append(c.Undefs, name)
	return nil
}

// fallbackLiteral resolves the inf/-inf/nan float spellings, which are identifier-shaped tokens and therefore literals only
// when nothing shadows them in the dictionary. true/false are ordinary
// primitive words (primitives/logic.go), not handled here, so a
// DEFINE of "true" or "false" shadows them exactly like any other word.
func fallbackLiteral(name string) (Value, bool) {
	switch name {
	case "inf":
		return Float64(posInf()), true
	case "-inf":
		return Float64(negInf()), true
	case "nan":
		return Float64(nanVal()), true
	}
	return nil, false
}
