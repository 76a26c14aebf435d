// Package joy implements the core of the Joy programming language: the
// scanner, parser, dictionary, value model and tree-walking evaluator.
package joy

// Kind tags the dynamic type of a Value. Every primitive's arity and type
// contract is checked against this tag, never against a Go type assertion
// alone, so error messages can name the expected and actual kinds.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindBoolean
	KindChar
	KindString
	KindSymbol
	KindList
	KindQuotation
	KindSet
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindList:
		return "list"
	case KindQuotation:
		return "quotation"
	case KindSet:
		return "set"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Value is the tagged union every stack slot, aggregate element and program
// term is an instance of. Concrete types: Int64, Float64, Bool, Char, *Str,
// *Sym, *List (used for both LIST and QUOTATION, see its Quoted field),
// Set64, *FileHandle.
type Value interface {
	Kind() Kind
	// Copy returns a value safe to hold independently of the receiver. For
	// scalars this is the receiver itself; for owned-buffer aggregates it is
	// a shallow copy of the buffer (elements are shared).
	Copy() Value
	// DeepCopy recursively copies owned buffers all the way down.
	DeepCopy() Value
	// Equal implements Joy's permissive structural equality.
	Equal(Value) bool
	// String renders the value the way it would be written back as source;
	// used by put/putln/., by error messages and by the C lowering's
	// constant-pool initialisers.
	String() string
}

// Truthy implements universal truthiness rule.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Bool:
		return bool(t)
	case Int64:
		return t != 0
	case Float64:
		return t != 0
	case Char:
		return t != 0
	case *Str:
		return len(t.b) != 0
	case *Sym:
		return true
	case *List:
		return t != nil
	case Set64:
		return t != 0
	case *FileHandle:
		return true
	default:
		return false
	}
}

// Compare implements total order: same-kind values compare
// naturally; numeric kinds compare across INTEGER/FLOAT; everything else
// falls back to a fixed tag order so comparison never panics.
func Compare(a, b Value) int {
	an, aok := asFloat(a)
	bn, bok := asFloat(b)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	if as, ok := a.(*Str); ok {
		if bs, ok := b.(*Str); ok {
			return compareBytes(as.b, bs.b)
		}
	}
	if as, ok := a.(*Sym); ok {
		if bs, ok := b.(*Sym); ok {
			return compareBytes([]byte(as.name), []byte(bs.name))
		}
	}
	if al, ok := a.(*List); ok {
		if bl, ok := b.(*List); ok {
			return compareLists(al, bl)
		}
	}
	if as, ok := a.(Set64); ok {
		if bs, ok := b.(Set64); ok {
			switch {
			case as < bs:
				return -1
			case as > bs:
				return 1
			default:
				return 0
			}
		}
	}
	ta, tb := tagOrder(a.Kind()), tagOrder(b.Kind())
	switch {
	case ta < tb:
		return -1
	case ta > tb:
		return 1
	default:
		return 0
	}
}

func tagOrder(k Kind) int { return int(k) }

func asFloat(v Value) (float64, bool) {
	switch t := v.(type) {
	case Int64:
		return float64(t), true
	case Float64:
		return float64(t), true
	default:
		return 0, false
	}
}

func compareBytes(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func compareLists(a, b *List) int {
	for a != nil && b != nil {
		if c := Compare(a.Value, b.Value); c != 0 {
			return c
		}
		a, b = a.Next, b.Next
	}
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	default:
		return 1
	}
}

// Equal implements permissive equality: numeric kinds compare
// by value across INTEGER/FLOAT, SET compares to INTEGER by bitmask, and
// heterogeneous comparisons default to false.
func Equal(a, b Value) bool {
	if an, aok := asFloat(a); aok {
		if bn, bok := asFloat(b); bok {
			return an == bn
		}
	}
	if as, ok := a.(Set64); ok {
		if bi, ok := b.(Int64); ok {
			return uint64(as) == uint64(bi)
		}
	}
	if bs, ok := b.(Set64); ok {
		if ai, ok := a.(Int64); ok {
			return uint64(bs) == uint64(ai)
		}
	}
	return a.Equal(b)
}
