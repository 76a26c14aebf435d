package codegen

// metadata emits the compile-time support requires for the two
// primitives whose full semantics depend on the host parser or the
// interpreter's live dictionary, neither of which a compiled artifact
// carries:
//
//   - body (SYM -> QUOTATION): resolved here against a name -> pool-slot
//     table built from every user word BuildUnit saw, since a compiled
//     word's source body is exactly the *List already sitting in the
//     constant pool (convert.go interns the whole body, not just its
//     elements, for this reason). A name absent from the table - a
//     primitive, or a word bound only by a runtime assign the lowering
//     pass could not see - raises a runtime error (joy_runtime_error)
//     instead of the interpreter's in-memory lookup.
//   - get (-> X): requires reading and parsing arbitrary text at runtime,
//     i.e. the host parser, which the compiled artifact does not link.
//     Lowered to a stub that always raises a runtime error instead.
func (e *emitter) metadata() {
	e.line("typedef struct { const char *name; int pool_index; } JoyMetaEntry;")
	e.line("static const JoyMetaEntry joy_meta_table[] = {")
	for _, w := range e.unit.Words {
		idx, ok := e.unit.Pool.IndexOf(w.Body)
		if !ok {
			continue // not reached: collectWords interns every body, an empty (nil *List) one included
		}
		e.line("  { %s, %d },", cStringLiteral(w.Name), idx)
	}
	e.line("};")
	e.line("static const int joy_meta_table_len = %d;", len(e.unit.Words))
	e.line("")
	e.line("static int joy_meta_lookup(const char *name) {")
	e.line("  for (int i = 0; i < joy_meta_table_len; i++) {")
	e.line("    if (strcmp(joy_meta_table[i].name, name) == 0) return joy_meta_table[i].pool_index;")
	e.line("  }")
	e.line("  return -1;")
	e.line("}")
	e.line("")
	e.line("static void joy_compiled_body(JoyContext *ctx) {")
	e.line("  JoyValue *sym = joy_pop(ctx);")
	e.line("  int idx = joy_meta_lookup(joy_symbol_name(sym));")
	e.line("  if (idx < 0) {")
	e.line("    joy_runtime_error(ctx, \"body\", \"no source body recorded for this symbol in the compiled program\");")
	e.line("    return;")
	e.line("  }")
	e.line("  joy_push(ctx, joy_pool_get(ctx, idx));")
	e.line("}")
	e.line("")
	e.line("static void joy_compiled_get(JoyContext *ctx) {")
	e.line("  joy_runtime_error(ctx, \"get\", \"get is not available in a compiled program; run the source instead\");")
	e.line("}")
	e.line("")
}
