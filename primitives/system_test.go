package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakfu/joy"
)

func newTestContext() *joy.Context {
	ctx := joy.NewContext(nil)
	Register(ctx)
	return ctx
}

func TestInternNameRoundTrip(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.NewStr("foo-bar"))
	require.NoError(t, SystemCommands["intern"](ctx))
	require.NoError(t, SystemCommands["name"](ctx))

	v := ctx.Pop()
	s, ok := v.(*joy.Str)
	require.True(t, ok)
	assert.Equal(t, "foo-bar", string(s.Bytes()))
}

func TestOrdChrRoundTrip(t *testing.T) {
	ctx := newTestContext()
	for _, n := range []int64{0, 65, 127, 255, 256, 300} {
		ctx.Push(joy.Int64(n))
		require.NoError(t, SystemCommands["chr"](ctx))
		require.NoError(t, SystemCommands["ord"](ctx))

		got, ok := ctx.Pop().(joy.Int64)
		require.True(t, ok)
		assert.Equal(t, n%256, int64(got), "ord (chr %d) should be %d mod 256", n, n)
	}
}

func TestStrtolBase(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.NewStr("ff"))
	ctx.Push(joy.Int64(16))
	require.NoError(t, SystemCommands["strtol"](ctx))
	n, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(255), int64(n))
}

func TestStrtolInvalidInputYieldsZero(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.NewStr("not-a-number"))
	ctx.Push(joy.Int64(10))
	require.NoError(t, SystemCommands["strtol"](ctx))
	n, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(0), int64(n))
}

func TestMaxintReportsActualMaximum(t *testing.T) {
	ctx := newTestContext()
	require.NoError(t, SystemCommands["maxint"](ctx))
	n, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(1<<63-1), int64(n))
}

func TestArgcArgvReflectContextArgv(t *testing.T) {
	ctx := joy.NewContext([]string{"prog.joy", "a", "b"})
	Register(ctx)

	require.NoError(t, SystemCommands["argc"](ctx))
	n, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(3), int64(n))

	require.NoError(t, SystemCommands["argv"](ctx))
	l, ok := ctx.Pop().(*joy.List)
	require.True(t, ok)
	elems := l.Slice()
	require.Len(t, elems, 3)
	assert.Equal(t, "prog.joy", elems[0].String()[1:len(elems[0].String())-1])
}

func TestIncludeLoadsEmbeddedStdlibByBaseName(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.NewStr("base.joy"))
	require.NoError(t, SystemCommands["include"](ctx))
	// base.joy defines "square".
	_, ok := ctx.Dict.Get("square")
	assert.True(t, ok)
}
