package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakfu/joy"
)

func pushAll(ctx *joy.Context, vs ...joy.Value) {
	for _, v := range vs {
		ctx.Push(v)
	}
}

func popInts(t *testing.T, ctx *joy.Context, n int) []int64 {
	out := make([]int64, n)
	for i := n - 1; i >= 0; i-- {
		v, ok := ctx.Pop().(joy.Int64)
		require.True(t, ok)
		out[i] = int64(v)
	}
	return out
}

func TestDupPushesACopyNotTheSameSlot(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.Int64(7))
	require.NoError(t, StackCommands["dup"](ctx))
	assert.Equal(t, []int64{7, 7}, popInts(t, ctx, 2))
}

func TestDup2PreservesOrder(t *testing.T) {
	ctx := newTestContext()
	pushAll(ctx, joy.Int64(1), joy.Int64(2))
	require.NoError(t, StackCommands["dup2"](ctx))
	assert.Equal(t, []int64{1, 2, 1, 2}, popInts(t, ctx, 4))
}

func TestPopDropsOnlyTOS(t *testing.T) {
	ctx := newTestContext()
	pushAll(ctx, joy.Int64(1), joy.Int64(2))
	require.NoError(t, StackCommands["pop"](ctx))
	assert.Equal(t, []int64{1}, popInts(t, ctx, 1))
}

func TestSwapReversesTopTwo(t *testing.T) {
	ctx := newTestContext()
	pushAll(ctx, joy.Int64(1), joy.Int64(2))
	require.NoError(t, StackCommands["swap"](ctx))
	assert.Equal(t, []int64{2, 1}, popInts(t, ctx, 2))
}

func TestOverCopiesSecondFromTop(t *testing.T) {
	ctx := newTestContext()
	pushAll(ctx, joy.Int64(1), joy.Int64(2))
	require.NoError(t, StackCommands["over"](ctx))
	assert.Equal(t, []int64{1, 2, 1}, popInts(t, ctx, 3))
}

func TestRotateBringsBottomToTop(t *testing.T) {
	// X Y Z -> Z Y X
	ctx := newTestContext()
	pushAll(ctx, joy.Int64(1), joy.Int64(2), joy.Int64(3))
	require.NoError(t, StackCommands["rotate"](ctx))
	assert.Equal(t, []int64{3, 2, 1}, popInts(t, ctx, 3))
}

func TestRotatedLeavesTOSUntouched(t *testing.T) {
	// X Y Z W -> Z Y X W
	ctx := newTestContext()
	pushAll(ctx, joy.Int64(1), joy.Int64(2), joy.Int64(3), joy.Int64(4))
	require.NoError(t, StackCommands["rotated"](ctx))
	assert.Equal(t, []int64{3, 2, 1, 4}, popInts(t, ctx, 4))
}

func TestRollupSendsTopToThird(t *testing.T) {
	// X Y Z -> Z X Y
	ctx := newTestContext()
	pushAll(ctx, joy.Int64(1), joy.Int64(2), joy.Int64(3))
	require.NoError(t, StackCommands["rollup"](ctx))
	assert.Equal(t, []int64{3, 1, 2}, popInts(t, ctx, 3))
}

func TestRollupdLeavesTOSUntouched(t *testing.T) {
	// X Y Z W -> Z X Y W
	ctx := newTestContext()
	pushAll(ctx, joy.Int64(1), joy.Int64(2), joy.Int64(3), joy.Int64(4))
	require.NoError(t, StackCommands["rollupd"](ctx))
	assert.Equal(t, []int64{3, 1, 2, 4}, popInts(t, ctx, 4))
}

func TestRolldownBringsThirdToTop(t *testing.T) {
	// X Y Z -> Y Z X
	ctx := newTestContext()
	pushAll(ctx, joy.Int64(1), joy.Int64(2), joy.Int64(3))
	require.NoError(t, StackCommands["rolldown"](ctx))
	assert.Equal(t, []int64{2, 3, 1}, popInts(t, ctx, 3))
}

func TestRolldowndLeavesTOSUntouched(t *testing.T) {
	// X Y Z W -> Y Z X W
	ctx := newTestContext()
	pushAll(ctx, joy.Int64(1), joy.Int64(2), joy.Int64(3), joy.Int64(4))
	require.NoError(t, StackCommands["rolldownd"](ctx))
	assert.Equal(t, []int64{2, 3, 1, 4}, popInts(t, ctx, 4))
}

func TestDupdDuplicatesBeneathTOS(t *testing.T) {
	ctx := newTestContext()
	pushAll(ctx, joy.Int64(1), joy.Int64(2))
	require.NoError(t, StackCommands["dupd"](ctx))
	assert.Equal(t, []int64{1, 1, 2}, popInts(t, ctx, 3))
}

func TestPopdDropsBeneathTOS(t *testing.T) {
	ctx := newTestContext()
	pushAll(ctx, joy.Int64(1), joy.Int64(2))
	require.NoError(t, StackCommands["popd"](ctx))
	assert.Equal(t, []int64{2}, popInts(t, ctx, 1))
}

func TestSwapdSwapsBeneathTOS(t *testing.T) {
	ctx := newTestContext()
	pushAll(ctx, joy.Int64(1), joy.Int64(2), joy.Int64(3))
	require.NoError(t, StackCommands["swapd"](ctx))
	assert.Equal(t, []int64{2, 1, 3}, popInts(t, ctx, 3))
}

func TestChoicePicksTrueBranchWithoutExecuting(t *testing.T) {
	ctx := newTestContext()
	pushAll(ctx, joy.Bool(true), joy.Int64(11), joy.Int64(22))
	require.NoError(t, StackCommands["choice"](ctx))
	assert.Equal(t, []int64{11}, popInts(t, ctx, 1))
}

func TestChoicePicksFalseBranch(t *testing.T) {
	ctx := newTestContext()
	pushAll(ctx, joy.Bool(false), joy.Int64(11), joy.Int64(22))
	require.NoError(t, StackCommands["choice"](ctx))
	assert.Equal(t, []int64{22}, popInts(t, ctx, 1))
}

func TestStackPushesListWithTOSFirst(t *testing.T) {
	ctx := newTestContext()
	pushAll(ctx, joy.Int64(1), joy.Int64(2), joy.Int64(3))
	require.NoError(t, StackCommands["stack"](ctx))
	l, ok := ctx.Pop().(*joy.List)
	require.True(t, ok)
	elems := l.Slice()
	require.Len(t, elems, 3)
	assert.Equal(t, int64(3), int64(elems[0].(joy.Int64)))
	assert.Equal(t, int64(2), int64(elems[1].(joy.Int64)))
	assert.Equal(t, int64(1), int64(elems[2].(joy.Int64)))

	// the original stack is untouched by taking a snapshot of it
	assert.Equal(t, []int64{1, 2, 3}, popInts(t, ctx, 3))
}

func TestUnstackReplacesStackFromListTOSFirst(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.NewList(joy.Int64(9), joy.Int64(8), joy.Int64(7)))
	require.NoError(t, StackCommands["unstack"](ctx))
	assert.Equal(t, []int64{7, 8, 9}, popInts(t, ctx, 3))
}
