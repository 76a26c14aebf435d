package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakfu/joy"
	"github.com/shakfu/joy/internal/stdlib"
	"github.com/shakfu/joy/primitives"
)

func newLoadedContext(t *testing.T) *joy.Context {
	t.Helper()
	ctx := joy.NewContext(nil)
	primitives.Register(ctx)
	require.NoError(t, stdlib.Load(ctx))
	return ctx
}

func runAndPop(t *testing.T, ctx *joy.Context, src string) joy.Value {
	t.Helper()
	p, err := joy.NewParser("<test>", []byte(src))
	require.NoError(t, err)
	prog, err := p.ParseProgram()
	require.NoError(t, err)
	require.NoError(t, ctx.Run(prog))
	require.NotZero(t, ctx.Stack.Len())
	return ctx.Stack.Pop()
}

func TestLoadDefinesEveryListedWord(t *testing.T) {
	ctx := newLoadedContext(t)
	words := []string{
		"second", "third", "popop", "unit", "dupdd",
		"sum", "product", "fact", "square", "cube", "average", "palindrome",
		"last", "secondlast", "max-of", "min-of", "countIf", "sumOfSquares", "concatAll",
	}
	for _, w := range words {
		b, ok := ctx.Dict.Get(w)
		assert.True(t, ok, "missing word %q", w)
		assert.True(t, b.IsUser, "%q should be user-defined", w)
	}
}

func TestFactComputesFactorial(t *testing.T) {
	ctx := newLoadedContext(t)
	got := runAndPop(t, ctx, "5 fact")
	assert.Equal(t, joy.Int64(120), got)
}

func TestSquareAndCube(t *testing.T) {
	ctx := newLoadedContext(t)
	assert.Equal(t, joy.Int64(9), runAndPop(t, ctx, "3 square"))
	assert.Equal(t, joy.Int64(27), runAndPop(t, ctx, "3 cube"))
}

func TestSumAndProduct(t *testing.T) {
	ctx := newLoadedContext(t)
	assert.Equal(t, joy.Int64(10), runAndPop(t, ctx, "[1 2 3 4] sum"))
	assert.Equal(t, joy.Int64(24), runAndPop(t, ctx, "[1 2 3 4] product"))
}

func TestAverageOfList(t *testing.T) {
	ctx := newLoadedContext(t)
	got := runAndPop(t, ctx, "[2 4 6] average")
	assert.Equal(t, joy.Int64(4), got)
}

func TestPalindromeOnStringsAndLists(t *testing.T) {
	ctx := newLoadedContext(t)
	assert.Equal(t, joy.Bool(true), runAndPop(t, ctx, `"level" palindrome`))
	assert.Equal(t, joy.Bool(false), runAndPop(t, ctx, `"hello" palindrome`))
}

func TestMaxOfAndMinOf(t *testing.T) {
	ctx := newLoadedContext(t)
	assert.Equal(t, joy.Int64(9), runAndPop(t, ctx, "[3 9 1 7] max-of"))
	assert.Equal(t, joy.Int64(1), runAndPop(t, ctx, "[3 9 1 7] min-of"))
}

func TestSecondAndThird(t *testing.T) {
	ctx := newLoadedContext(t)
	assert.Equal(t, joy.Int64(2), runAndPop(t, ctx, "[1 2 3] second"))
	assert.Equal(t, joy.Int64(3), runAndPop(t, ctx, "[1 2 3] third"))
}

func TestLastAndSecondlast(t *testing.T) {
	ctx := newLoadedContext(t)
	assert.Equal(t, joy.Int64(3), runAndPop(t, ctx, "[1 2 3] last"))
	assert.Equal(t, joy.Int64(2), runAndPop(t, ctx, "[1 2 3] secondlast"))
}

func TestSumOfSquares(t *testing.T) {
	ctx := newLoadedContext(t)
	got := runAndPop(t, ctx, "[1 2 3] sumOfSquares")
	assert.Equal(t, joy.Int64(14), got)
}

func TestConcatAllFlattensListOfLists(t *testing.T) {
	ctx := newLoadedContext(t)
	got := runAndPop(t, ctx, "[[1 2] [3] [4 5]] concatAll")
	l, ok := got.(*joy.List)
	require.True(t, ok)
	assert.Equal(t, "[1 2 3 4 5]", l.String())
}

func TestCountIfCountsMatches(t *testing.T) {
	ctx := newLoadedContext(t)
	got := runAndPop(t, ctx, "[1 2 3 4 5 6] [2 rem 0 =] countIf")
	assert.Equal(t, joy.Int64(3), got)
}

func TestHasRecognizesEmbeddedFilesOnly(t *testing.T) {
	assert.True(t, stdlib.Has("base.joy"))
	assert.True(t, stdlib.Has("aggregate.joy"))
	assert.False(t, stdlib.Has("nope.joy"))
}
