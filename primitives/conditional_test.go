package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakfu/joy"
)

func TestIfteRunsTrueBranchAndRestoresStackBeforeBranching(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.Int64(9))
	ctx.Push(q(sym("true")))
	ctx.Push(q(joy.Int64(1), sym("-")))
	ctx.Push(q(joy.Int64(2), sym("-")))
	require.NoError(t, ConditionalCommands["ifte"](ctx))
	r, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(8), int64(r))
}

func TestIftePredicateDoesNotLeakItsOwnStackEffect(t *testing.T) {
	// B pops and discards its operand to test something derived from it;
	// ifte must test against a snapshot so T/F still see the original
	// value underneath, not whatever B left behind.
	ctx := newTestContext()
	ctx.Push(joy.Int64(9))
	ctx.Push(q(sym("null"), sym("not")))
	ctx.Push(q(joy.Int64(1), sym("-")))
	ctx.Push(q(joy.Int64(2), sym("-")))
	require.NoError(t, ConditionalCommands["ifte"](ctx))
	r, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(8), int64(r))
}

func TestIfteRunsFalseBranch(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.Int64(9))
	ctx.Push(q(sym("false")))
	ctx.Push(q(joy.Int64(1), sym("-")))
	ctx.Push(q(joy.Int64(2), sym("-")))
	require.NoError(t, ConditionalCommands["ifte"](ctx))
	r, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(7), int64(r))
}

func TestBranchTestsAnAlreadyBooleanValue(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.Bool(false))
	ctx.Push(q(joy.Int64(10)))
	ctx.Push(q(joy.Int64(20)))
	require.NoError(t, ConditionalCommands["branch"](ctx))
	r, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(20), int64(r))
}

func TestCondRunsFirstMatchingClauseAndStops(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.Int64(9))
	clauses := q(
		q(q(sym("false")), q(joy.Int64(100))),
		q(q(sym("true")), q(joy.Int64(1), sym("-"))),
		q(q(joy.Int64(1), sym("-"))),
	)
	ctx.Push(clauses)
	require.NoError(t, ConditionalCommands["cond"](ctx))
	r, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(8), int64(r))
}

func TestCondFallsThroughToDefaultSingletonClause(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.Int64(9))
	clauses := q(
		q(q(sym("false")), q(joy.Int64(100))),
		q(q(joy.Int64(2), sym("-"))),
	)
	ctx.Push(clauses)
	require.NoError(t, ConditionalCommands["cond"](ctx))
	r, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(7), int64(r))
}

func TestCaseConsumesTheMatchedSelectorAndRunsItsBody(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.Int64(2))
	clauses := q(
		q(joy.Int64(1), q(joy.Int64(100))),
		q(joy.Int64(2), q(joy.Int64(9), joy.Int64(2), sym("-"))),
		q(q(joy.Int64(0))),
	)
	ctx.Push(clauses)
	require.NoError(t, ConditionalCommands["case"](ctx))
	r, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(7), int64(r))
}

func TestCaseRestoresTheSelectorForTheDefaultClause(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.Int64(5))
	clauses := q(
		q(joy.Int64(1), q(joy.Int64(100))),
		q(q(joy.Int64(1), sym("-"))),
	)
	ctx.Push(clauses)
	require.NoError(t, ConditionalCommands["case"](ctx))
	r, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(4), int64(r), "the default clause runs with the unmatched selector pushed back first")
}

func TestOpcaseDispatchesByKindAndPushesTheBodyUnrun(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.Int64(5))
	clauses := q(
		q(sym("integer"), q(joy.Int64(1), sym("-"))),
		q(sym("string"), q(joy.Int64(0))),
	)
	ctx.Push(clauses)
	require.NoError(t, ConditionalCommands["opcase"](ctx))
	body, ok := ctx.Pop().(*joy.List)
	require.True(t, ok)
	assert.Equal(t, 2, len(body.Slice()), "opcase must push the matching body as a quotation, not run it")
}

func TestIfintegerInspectsWithoutPoppingOperand(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.Int64(5))
	ctx.Push(q(joy.Int64(100)))
	ctx.Push(q(joy.Int64(200)))
	require.NoError(t, ConditionalCommands["ifinteger"](ctx))
	r, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(100), int64(r))
	original, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(5), int64(original), "ifinteger must inspect X without consuming it")
}

func TestIfstringFalseBranchOnNonString(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.Int64(5))
	ctx.Push(q(joy.Int64(100)))
	ctx.Push(q(joy.Int64(200)))
	require.NoError(t, ConditionalCommands["ifstring"](ctx))
	r, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(200), int64(r))
}
