package joy

// Primitive is a built-in action on the evaluator context, taking and
// returning the operand stack. Arity/type checking is the primitive's own
// responsibility, using ctx.Pop*/ctx.Push helpers.
type Primitive func(ctx *Context) error

// Binding is a dictionary entry: either a primitive or a user-defined
// quotation.
type Binding struct {
	Name      string
	Prim      Primitive
	Body      *List // non-nil for user definitions
	IsUser    bool
}

// Dict is an order-preserving name -> binding map. Grounded on
// namespace.go's dict chain, collapsed to Joy's single global
// scope: Joy has no lexical nesting, only shadow-by-redefinition.
type Dict struct {
	order []string
	rep   map[string]*Binding
}

func NewDict() *Dict {
	return &Dict{rep: make(map[string]*Binding)}
}

func (d *Dict) Get(name string) (*Binding, bool) {
	b, ok := d.rep[name]
	return b, ok
}

func (d *Dict) Has(name string) bool {
	_, ok := d.rep[name]
	return ok
}

// SetPrimitive installs or shadows a primitive binding.
func (d *Dict) SetPrimitive(name string, p Primitive) {
	d.set(&Binding{Name: name, Prim: p})
}

// SetUser installs or shadows a user-defined word. Later definitions of the
// same name shadow earlier ones globally.
func (d *Dict) SetUser(name string, body *List) {
	d.set(&Binding{Name: name, Body: body, IsUser: true})
}

func (d *Dict) set(b *Binding) {
	if _, existed := d.rep[b.Name]; !existed {
		d.order = append(d.order, b.Name)
	}
	d.rep[b.Name] = b
}

// SetBinding installs an already-built binding verbatim, or removes the
// name if b is nil. Used by the self-recursive conditional combinators
// (condlinrec/condnestrec) to temporarily rebind their own name to a
// closure carrying the clause list, then restore whatever was bound
// before.
func (d *Dict) SetBinding(name string, b *Binding) {
	if b == nil {
		d.Unassign(name)
		return
	}
	d.set(b)
}

// Unassign removes a binding (the unassign primitive).
func (d *Dict) Unassign(name string) {
	delete(d.rep, name)
}

// Names returns binding names in installation order.
func (d *Dict) Names() []string {
	out := make([]string, 0, len(d.order))
	for _, n := range d.order {
		if _, ok := d.rep[n]; ok {
			out = append(out, n)
		}
	}
	return out
}
