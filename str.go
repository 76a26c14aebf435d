package joy

// Str is the STRING variant: an owned, immutable-after-construction UTF-8
// buffer. Grounded on sym.go _dSymbol/_iSymbol
// owned-[]byte wrapper, without the intern pool (DESIGN.md, "Dropped
// teacher constructs").
type Str struct {
	b []byte
}

func NewStr(s string) *Str { return &Str{b: []byte(s)} }
func NewStrBytes(b []byte) *Str {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &Str{b: cp}
}

func (s *Str) Bytes() []byte { return s.b }
func (s *Str) Kind() Kind    { return KindString }
func (s *Str) Copy() Value   { return s }
func (s *Str) DeepCopy() Value {
	return NewStrBytes(s.b)
}
func (s *Str) Equal(v Value) bool {
	o, ok := v.(*Str)
	return ok && string(s.b) == string(o.b)
}

// String renders the quoted source form ("…", with the same backslash
// escapes the scanner accepts), not the raw bytes - matching the Value
// interface's "written back as source" contract. Primitives that need the
// raw bytes (fopen's path, putchars, fputstring) read s.Bytes() directly
// instead of going through String().
func (s *Str) String() string {
	out := make([]byte, 0, len(s.b)+2)
	out = append(out, '"')
	for _, b := range s.b {
		switch b {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\n':
			out = append(out, '\\', 'n')
		case '\t':
			out = append(out, '\\', 't')
		case '\r':
			out = append(out, '\\', 'r')
		default:
			out = append(out, b)
		}
	}
	out = append(out, '"')
	return string(out)
}

// Chars returns the string's characters as Joy CHAR values, used by the
// iteration primitives (first/rest/size/map/filter/step/at/of) that treat
// STRING as character-oriented per 
func (s *Str) Chars() []Value {
	out := make([]Value, len(s.b))
	for i, c := range s.b {
		out[i] = Char(c)
	}
	return out
}

// Sym is the SYMBOL variant: a reference looked up in the dictionary when
// executed. Plain owned-string wrapper; no intern pool (DESIGN.md).
type Sym struct {
	name string
}

func NewSym(s string) *Sym { return &Sym{name: s} }

func (s *Sym) Name() string  { return s.name }
func (s *Sym) Kind() Kind    { return KindSymbol }
func (s *Sym) Copy() Value   { return s }
func (s *Sym) DeepCopy() Value { return s }
func (s *Sym) Equal(v Value) bool {
	o, ok := v.(*Sym)
	return ok && s.name == o.name
}
func (s *Sym) String() string { return s.name }
