package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakfu/joy"
)

func boolResult(t *testing.T, ctx *joy.Context) bool {
	b, ok := ctx.Pop().(joy.Bool)
	require.True(t, ok)
	return bool(b)
}

func TestLessThanIsStrict(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.Int64(2))
	ctx.Push(joy.Int64(5))
	require.NoError(t, CompareCommands["<"](ctx))
	assert.True(t, boolResult(t, ctx))

	ctx.Push(joy.Int64(5))
	ctx.Push(joy.Int64(5))
	require.NoError(t, CompareCommands["<"](ctx))
	assert.False(t, boolResult(t, ctx))
}

func TestGreaterOrEqual(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.Int64(5))
	ctx.Push(joy.Int64(5))
	require.NoError(t, CompareCommands[">="](ctx))
	assert.True(t, boolResult(t, ctx))
}

func TestEqualsComparesScalars(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.Int64(3))
	ctx.Push(joy.Int64(3))
	require.NoError(t, CompareCommands["="](ctx))
	assert.True(t, boolResult(t, ctx))
}

func TestNotEquals(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.Int64(3))
	ctx.Push(joy.Int64(4))
	require.NoError(t, CompareCommands["!="](ctx))
	assert.True(t, boolResult(t, ctx))
}

func TestEqualDoesDeepStructuralComparisonAcrossLists(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.NewList(joy.Int64(1), joy.Int64(2)))
	ctx.Push(joy.NewList(joy.Int64(1), joy.Int64(2)))
	require.NoError(t, CompareCommands["equal"](ctx))
	assert.True(t, boolResult(t, ctx))
}

func TestEqualDistinguishesDifferentListContents(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.NewList(joy.Int64(1), joy.Int64(2)))
	ctx.Push(joy.NewList(joy.Int64(1), joy.Int64(3)))
	require.NoError(t, CompareCommands["equal"](ctx))
	assert.False(t, boolResult(t, ctx))
}

func TestCompareIsNonCommutativeThreeWay(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.Int64(2))
	ctx.Push(joy.Int64(5))
	require.NoError(t, CompareCommands["compare"](ctx))
	n, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Less(t, int64(n), int64(0))

	ctx.Push(joy.Int64(5))
	ctx.Push(joy.Int64(2))
	require.NoError(t, CompareCommands["compare"](ctx))
	m, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Greater(t, int64(m), int64(0))
}
