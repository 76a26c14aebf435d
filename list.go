package joy

// List is a cons-cell chain used for BOTH the LIST and QUOTATION variants;
// Quoted distinguishes them, since the surface syntax `[...]` is shared
// and the distinction is positional (data vs. code). A nil *List is the
// empty aggregate. Grounded on list.go's *List (Value,
// Next) with Map/Copy/DeepCopy/Equals walking the chain.
type List struct {
	Value  Value
	Next   *List
	Quoted bool
}

// NewList builds a LIST from the given values, left to right.
func NewList(vs ...Value) *List { return buildList(vs, false) }

// NewQuotation builds a QUOTATION from the given terms, left to right.
func NewQuotation(vs ...Value) *List { return buildList(vs, true) }

func buildList(vs []Value, quoted bool) *List {
	var head, tail *List
	for _, v := range vs {
		cell := &List{Value: v, Quoted: quoted}
		if head == nil {
			head, tail = cell, cell
		} else {
			tail.Next = cell
			tail = cell
		}
	}
	return head
}

// AsQuotation reinterprets a LIST/QUOTATION chain's Quoted tag, returning
// l itself when already quoted and otherwise a fresh spine (elements
// shared, not copied); used when a combinator accepts "a quotation" and
// receives either variant.
func AsQuotation(l *List) *List {
	if l == nil {
		return nil
	}
	if l.Quoted {
		return l
	}
	cp := l.shallow()
	for c := cp; c != nil; c = c.Next {
		c.Quoted = true
	}
	return cp
}

func AsListValue(l *List) *List {
	if l == nil || !l.Quoted {
		return l
	}
	cp := l.shallow()
	for c := cp; c != nil; c = c.Next {
		c.Quoted = false
	}
	return cp
}

func (l *List) shallow() *List {
	var head, tail *List
	for c := l; c != nil; c = c.Next {
		cell := &List{Value: c.Value, Quoted: c.Quoted}
		if head == nil {
			head, tail = cell, cell
		} else {
			tail.Next = cell
			tail = cell
		}
	}
	return head
}

func (l *List) Kind() Kind {
	if l != nil && l.Quoted {
		return KindQuotation
	}
	return KindList
}

func (l *List) Copy() Value { return l.shallow() }

func (l *List) DeepCopy() Value {
	var head, tail *List
	for c := l; c != nil; c = c.Next {
		cell := &List{Value: c.Value.DeepCopy(), Quoted: c.Quoted}
		if head == nil {
			head, tail = cell, cell
		} else {
			tail.Next = cell
			tail = cell
		}
	}
	return head
}

func (l *List) Equal(v Value) bool {
	o, ok := v.(*List)
	if !ok {
		return false
	}
	a, b := l, o
	for a != nil && b != nil {
		if !Equal(a.Value, b.Value) {
			return false
		}
		a, b = a.Next, b.Next
	}
	return a == nil && b == nil
}

func (l *List) String() string {
	out := "["
	for c, first := l, true; c != nil; c, first = c.Next, false {
		if !first {
			out += " "
		}
		out += c.Value.String()
	}
	return out + "]"
}

// Len returns the number of cells in the chain (0 for nil).
func (l *List) Len() int {
	n := 0
	for c := l; c != nil; c = c.Next {
		n++
	}
	return n
}

// Slice flattens the chain into a Go slice, left to right.
func (l *List) Slice() []Value {
	out := make([]Value, 0, l.Len())
	for c := l; c != nil; c = c.Next {
		out = append(out, c.Value)
	}
	return out
}

// FromSlice builds a chain from a Go slice, preserving the Quoted tag.
func FromSlice(vs []Value, quoted bool) *List { return buildList(vs, quoted) }

// Reverse returns a new chain with elements in reverse order.
func (l *List) Reverse() *List {
	var out *List
	for c := l; c != nil; c = c.Next {
		out = &List{Value: c.Value, Next: out, Quoted: l.Quoted}
	}
	return out
}

// Append concatenates two chains, producing fresh cells for both.
func (l *List) Append(o *List) *List {
	vs := l.Slice()
	vs = append(vs, o.Slice()...)
	quoted := false
	if l != nil {
		quoted = l.Quoted
	} else if o != nil {
		quoted = o.Quoted
	}
	return buildList(vs, quoted)
}
