package codegen

import "github.com/shakfu/joy"

// Pool collects every literal aggregate (LIST, QUOTATION, STRING) reachable
// from the program text so emit.go can give each one a builder function
// and a startup-time constant-pool slot.
// Scalars (INTEGER, FLOAT, CHAR, BOOLEAN, SET) need no pool slot: emit.go
// inlines them directly at their use site.
type Pool struct {
	entries []joy.Value
	seen    map[joy.Value]int
}

func NewPool() *Pool {
	return &Pool{seen: make(map[joy.Value]int)}
}

// Intern registers v (recursively, for a *List's elements) and returns its
// pool slot index, or -1 if v is a scalar that does not need pooling.
func (p *Pool) Intern(v joy.Value) int {
	switch t := v.(type) {
	case *joy.Str:
		return p.intern(v)
	case *joy.List:
		for _, e := range t.Slice() {
			p.Intern(e) // register nested literals first, depth-first
		}
		return p.intern(v)
	default:
		return -1
	}
}

func (p *Pool) intern(v joy.Value) int {
	if idx, ok := p.seen[v]; ok {
		return idx
	}
	idx := len(p.entries)
	p.entries = append(p.entries, v)
	p.seen[v] = idx
	return idx
}

// Entries returns the interned values in assignment order (index == slot).
func (p *Pool) Entries() []joy.Value {
	out := make([]joy.Value, len(p.entries))
	copy(out, p.entries)
	return out
}

// IndexOf reports v's pool slot, if any. emit.go uses this to turn a body's
// *Str/*List term into a "push pool[N]" instruction instead of rebuilding
// the aggregate inline at every use site.
func (p *Pool) IndexOf(v joy.Value) (int, bool) {
	idx, ok := p.seen[v]
	return idx, ok
}
