package codegen

import (
	"os"
	"path/filepath"

	"github.com/shakfu/joy"
)

// Unit is the fully-resolved, include-flattened input to emission: a single
// top-level term sequence plus the complete set of user-word bodies it (and
// the standard library it was loaded against) can reach. Building a Unit is
// lowering's first half; emit.go's job starts once a Unit exists.
type Unit struct {
	Top   joy.Program
	Words []WordDef
	Pool  *Pool
}

// WordDef is one user-defined word pulled out of ctx.Dict for emission,
// in the dictionary's installation order (so forward declarations in the
// generated C file can be emitted in a stable, deterministic order).
type WordDef struct {
	Name string
	Body *joy.List
}

// BuildUnit parses entryPath, preprocesses every include it (transitively)
// reaches into ctx's dictionary exactly as running the program would, then
// snapshots the resulting top-level terms and user dictionary into a Unit.
// include is resolved entirely here, at lowering time: requires
// the compiled artifact to carry no runtime include, so by the time emit.go
// runs there must be nothing left to include.
func BuildUnit(ctx *joy.Context, entryPath string) (*Unit, error) {
	visited := map[string]bool{}
	top, err := loadIncluding(ctx, entryPath, visited)
	if err != nil {
		return nil, err
	}

	pool := NewPool()
	words := collectWords(ctx, pool)
	collectTermPool(top, pool)

	return &Unit{Top: top, Words: words, Pool: pool}, nil
}

// loadIncluding parses path, runs its DEFINE blocks into ctx (so later
// includes and the top-level terms see earlier definitions, matching
// runtime load order), expands include terms inline, and returns the
// flattened top-level term sequence with include terms removed. Cycles are
// rejected via a visited set keyed by absolute path, since two different
// relative spellings of the same file must not be loaded twice either.
func loadIncluding(ctx *joy.Context, path string, visited map[string]bool) (joy.Program, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if visited[abs] {
		return nil, joy.NewDomainError("include", "cyclic include of %s", path)
	}
	visited[abs] = true

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := joy.NewParser(path, src)
	if err != nil {
		return nil, err
	}
	prog, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	var out joy.Program
	for _, item := range prog {
		if item.Define != nil {
			if err := installDefine(ctx, item.Define); err != nil {
				return nil, err
			}
			continue
		}
		if sym, ok := item.Value.(*joy.Sym); ok {
			if inc, ok := pendingInclude(out, sym); ok {
				out = out[:len(out)-1] // drop the pushed filename literal
				target := inc
				if !filepath.IsAbs(target) {
					target = filepath.Join(dir, target)
				}
				sub, err := loadIncluding(ctx, target, visited)
				if err != nil {
					return nil, err
				}
				out = append(out, sub...)
				continue
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// pendingInclude recognizes the two-term "STRING include" pattern at the
// tail of out: a *joy.Str literal immediately followed by the include
// symbol. Reports the string's contents and true if sym is "include" and
// the preceding term pushed a literal string.
func pendingInclude(out joy.Program, sym *joy.Sym) (string, bool) {
	if sym.Name() != "include" || len(out) == 0 {
		return "", false
	}
	s, ok := out[len(out)-1].Value.(*joy.Str)
	if !ok {
		return "", false
	}
	return string(s.Bytes()), true
}

// installDefine runs one DEFINE/LIBRA/CONST/MODULE block's clauses into
// ctx's dictionary, mirroring the evaluator's own installDefineBlock
// (eval.go, unexported) so emission sees the identical final bindings a run
// would: every clause becomes visible together.
func installDefine(ctx *joy.Context, block *joy.DefineBlock) error {
	for _, clause := range block.Clauses {
		ctx.Dict.SetUser(clause.Name, clause.Body)
	}
	return nil
}

// collectWords snapshots every user-defined word bound in ctx.Dict, in
// installation order, registering each body's literal aggregates into pool
// along the way.
func collectWords(ctx *joy.Context, pool *Pool) []WordDef {
	var out []WordDef
	for _, name := range ctx.Dict.Names() {
		b, ok := ctx.Dict.Get(name)
		if !ok || !b.IsUser {
			continue
		}
		collectTermPool(bodyProgram(b.Body), pool)
		pool.Intern(b.Body) // whole-body entry, for the body primitive's metadata table
		out = append(out, WordDef{Name: name, Body: b.Body})
	}
	return out
}

// bodyProgram re-wraps a *List body (which already holds Terms as Values)
// as a Program so collectTermPool can walk both top-level programs and word
// bodies uniformly.
func bodyProgram(body *joy.List) joy.Program {
	var prog joy.Program
	for _, v := range body.Slice() {
		prog = append(prog, joy.ProgramItem{Value: v})
	}
	return prog
}

// collectTermPool registers every literal aggregate appearing in prog's
// terms into pool; symbol terms denoting a word call need no pool entry.
func collectTermPool(prog joy.Program, pool *Pool) {
	for _, item := range prog {
		if item.Value == nil {
			continue
		}
		if _, isSym := item.Value.(*joy.Sym); isSym {
			continue
		}
		pool.Intern(item.Value)
	}
}
