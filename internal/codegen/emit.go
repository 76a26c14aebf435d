// Package codegen lowers a resolved program into a single C translation unit
// that links against internal/runtime's embedded value/stack/dictionary
// model. Grounded on unparser.go's tree-walk-and-emit-to-buffer shape,
// generalized from unparsing Joy source back to unparsing it forward
// into C.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shakfu/joy"
)

// Emit renders unit as a complete C source file (written as NAME.c by the
// compile subcommand). ctx is the
// dictionary the unit was resolved against (BuildUnit's ctx), used here
// only to classify each symbol term as a direct call to a known user word,
// a primitive-table call, or (for names bound only at runtime via assign,
// or never bound at all) a dynamic dispatch through the name string.
func Emit(ctx *joy.Context, unit *Unit, moduleName string) (string, error) {
	e := &emitter{ctx: ctx, unit: unit, moduleName: moduleName}
	e.header()
	e.forwardDecls()
	e.poolBuilders()
	e.poolTable()
	e.metadata()
	e.words()
	e.main()
	return e.buf.String(), nil
}

type emitter struct {
	ctx        *joy.Context
	unit       *Unit
	moduleName string
	buf        strings.Builder
}

func (e *emitter) line(format string, args ...interface{}) {
	fmt.Fprintf(&e.buf, format+"\n", args...)
}

func (e *emitter) header() {
	e.line("/* generated from %s by the joy compiler; do not edit by hand. */", e.moduleName)
	e.line("#include \"joy_runtime.h\"")
	e.line("#include <string.h>")
	e.line("")
}

func (e *emitter) forwardDecls() {
	for _, w := range e.unit.Words {
		e.line("static void %s(JoyContext *ctx);", mangleWord(w.Name))
	}
	e.line("")
}

// poolBuilders emits one builder function per interned *Str/*List literal,
// in slot order so a builder referencing an earlier slot (a nested
// aggregate) always appears after the slot it depends on.
func (e *emitter) poolBuilders() {
	entries := e.unit.Pool.Entries()
	for i, v := range entries {
		e.line("static JoyValue *%s(JoyContext *ctx) {", poolBuilderName(i))
		switch t := v.(type) {
		case *joy.Str:
			e.line("  return joy_new_string(ctx, %s, %d);", cStringLiteral(string(t.Bytes())), len(t.Bytes()))
		case *joy.List:
			e.emitListBuilder(t)
		default:
			e.line("  /* unreachable: only STRING/LIST/QUOTATION values are pooled */")
			e.line("  return joy_nil(ctx);")
		}
		e.line("}")
		e.line("")
	}
}

// emitListBuilder writes the body of one LIST/QUOTATION pool builder: build
// the chain tail-first with joy_cons, using a pooled sub-builder for any
// element that is itself a *Str/*List, or an inline scalar push otherwise.
func (e *emitter) emitListBuilder(l *joy.List) {
	elems := l.Slice()
	e.line("  JoyValue *acc = joy_nil(ctx);")
	for i := len(elems) - 1; i >= 0; i-- {
		e.line("  acc = joy_cons(ctx, %s, acc);", e.valueExpr(elems[i]))
	}
	quoted := "0"
	if l.Quoted {
		quoted = "1"
	}
	e.line("  joy_set_quoted(acc, %s);", quoted)
	e.line("  return acc;")
}

// valueExpr renders a single C expression that produces v's JoyValue*: a
// direct scalar constructor for scalars and symbols, or a reference into
// the already-built constant pool for aggregates.
func (e *emitter) valueExpr(v joy.Value) string {
	switch t := v.(type) {
	case joy.Int64:
		return fmt.Sprintf("joy_new_int(ctx, %dLL)", int64(t))
	case joy.Float64:
		return fmt.Sprintf("joy_new_float(ctx, %s)", strconv.FormatFloat(float64(t), 'g', -1, 64))
	case joy.Bool:
		if bool(t) {
			return "joy_new_bool(ctx, 1)"
		}
		return "joy_new_bool(ctx, 0)"
	case joy.Char:
		return fmt.Sprintf("joy_new_char(ctx, %d)", byte(t))
	case joy.Set64:
		return fmt.Sprintf("joy_new_set(ctx, %dULL)", uint64(t))
	case *joy.Sym:
		return fmt.Sprintf("joy_new_symbol(ctx, %s)", cStringLiteral(t.Name()))
	case *joy.Str, *joy.List:
		if idx, ok := e.unit.Pool.IndexOf(v); ok {
			return fmt.Sprintf("joy_pool_get(ctx, %d)", idx)
		}
		return "joy_nil(ctx)" // unreachable: collectTermPool interns every aggregate reached
	default:
		return "joy_nil(ctx)"
	}
}

func (e *emitter) poolTable() {
	n := len(e.unit.Pool.Entries())
	e.line("static JoyValue *joy_pool[%d];", max1(n))
	e.line("static void joy_init_pool(JoyContext *ctx) {")
	for i := 0; i < n; i++ {
		e.line("  joy_pool[%d] = %s(ctx);", i, poolBuilderName(i))
	}
	e.line("}")
	e.line("JoyValue *joy_pool_get(JoyContext *ctx, int idx) { (void)ctx; return joy_pool[idx]; }")
	e.line("")
}

func max1(n int) int {
	if n == 0 {
		return 1
	}
	return n
}

func poolBuilderName(i int) string { return mangleLabel("pool_build_", i) }

// words emits one C function per user-defined word, whose body runs
// sequentially through e.terms. Per a reference to another
// user word becomes a direct call (jw_other(ctx)); a reference to a
// primitive becomes a call through the primitive table.
func (e *emitter) words() {
	for _, w := range e.unit.Words {
		e.line("static void %s(JoyContext *ctx) {", mangleWord(w.Name))
		e.terms(w.Body.Slice())
		e.line("}")
		e.line("")
	}
}

// terms emits the straight-line body for one term sequence: a data term
// pushes its value, a symbol term dispatches per classify.
func (e *emitter) terms(vs []joy.Value) {
	for _, v := range vs {
		if sym, ok := v.(*joy.Sym); ok {
			e.line("  %s", e.call(sym.Name()))
			continue
		}
		e.line("  joy_push(ctx, %s);", e.valueExpr(v))
	}
}

// call classifies name against the dictionary the unit was resolved
// against and renders the matching C statement: a direct call for a known
// user word, a primitive-table call for a built-in, or a name-keyed dynamic
// dispatch for anything resolved only at runtime (assign, or a genuinely
// undefined word the undeferror flag tolerates).
func (e *emitter) call(name string) string {
	if b, ok := e.ctx.Dict.Get(name); ok {
		if b.IsUser {
			return fmt.Sprintf("%s(ctx);", mangleWord(name))
		}
		return fmt.Sprintf("joy_call_primitive(ctx, %s);", cStringLiteral(name))
	}
	return fmt.Sprintf("joy_dispatch_dynamic(ctx, %s);", cStringLiteral(name))
}

// main registers the primitive table, builds the constant pool, then runs
// the top-level term sequence in source order - the same three steps
// context.go's Context setup plus Run perform at evaluation time.
func (e *emitter) main() {
	e.line("int main(int argc, char **argv) {")
	e.line("  JoyContext *ctx = joy_context_new(argc, argv);")
	e.line("  joy_register_primitives(ctx);")
	e.line("  joy_register_primitive(ctx, \"body\", joy_compiled_body);")
	e.line("  joy_register_primitive(ctx, \"get\", joy_compiled_get);")
	e.line("  joy_init_pool(ctx);")
	e.terms(topValues(e.unit.Top))
	e.line("  int code = joy_context_exit_code(ctx);")
	e.line("  joy_context_free(ctx);")
	e.line("  return code;")
	e.line("}")
}

func topValues(p joy.Program) []joy.Value {
	out := make([]joy.Value, 0, len(p))
	for _, item := range p {
		if item.Value != nil {
			out = append(out, item.Value)
		}
	}
	return out
}

// cStringLiteral renders s as a C string literal, escaping the characters
// C's grammar requires and hex-escaping everything outside printable ASCII
// so generated source is stable regardless of the host's locale.
func cStringLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString("\\n")
		case c == '\t':
			b.WriteString("\\t")
		case c >= 0x20 && c < 0x7f:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "\\x%02x\"\"", c) // close/reopen so a following hex digit can't extend the escape
		}
	}
	b.WriteByte('"')
	return b.String()
}
