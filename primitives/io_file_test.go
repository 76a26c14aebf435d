package primitives

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakfu/joy"
)

func tempFilePath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "joytest.txt")
}

func TestFopenWriteThenReadRoundTrips(t *testing.T) {
	ctx := newTestContext()
	path := tempFilePath(t)

	ctx.Push(joy.NewStrBytes([]byte(path)))
	ctx.Push(joy.NewStrBytes([]byte("w")))
	require.NoError(t, FileCommands["fopen"](ctx))
	wf, ok := ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)
	require.NotNil(t, wf.File())

	ctx.Push(wf)
	ctx.Push(joy.NewList(joy.Int64('h'), joy.Int64('i')))
	require.NoError(t, FileCommands["fwrite"](ctx))
	wf2, ok := ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)

	ctx.Push(wf2)
	require.NoError(t, FileCommands["fclose"](ctx))

	ctx.Push(joy.NewStrBytes([]byte(path)))
	ctx.Push(joy.NewStrBytes([]byte("r")))
	require.NoError(t, FileCommands["fopen"](ctx))
	rf, ok := ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)
	require.NotNil(t, rf.File())

	ctx.Push(rf)
	ctx.Push(joy.Int64(2))
	require.NoError(t, FileCommands["fread"](ctx))
	data, ok := ctx.Pop().(*joy.List)
	require.True(t, ok)
	elems := data.Slice()
	require.Len(t, elems, 2)
	assert.Equal(t, int64('h'), int64(elems[0].(joy.Int64)))
	assert.Equal(t, int64('i'), int64(elems[1].(joy.Int64)))
	rf2, ok := ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)

	ctx.Push(rf2)
	require.NoError(t, FileCommands["fclose"](ctx))
}

func TestFopenOnMissingFileForReadPushesNilHandleRatherThanError(t *testing.T) {
	ctx := newTestContext()
	ctx.Push(joy.NewStrBytes([]byte(filepath.Join(t.TempDir(), "does-not-exist.txt"))))
	ctx.Push(joy.NewStrBytes([]byte("r")))
	require.NoError(t, FileCommands["fopen"](ctx))
	f, ok := ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)
	assert.Nil(t, f.File())
}

func TestFcloseOnStdinIsANoOp(t *testing.T) {
	ctx := newTestContext()
	require.NoError(t, FileCommands["stdin"](ctx))
	f, ok := ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)
	ctx.Push(f)
	require.NoError(t, FileCommands["fclose"](ctx))
}

func TestFeofBecomesTrueAfterReadingPastEnd(t *testing.T) {
	ctx := newTestContext()
	path := tempFilePath(t)
	require.NoError(t, os.WriteFile(path, []byte("ab"), 0644))

	ctx.Push(joy.NewStrBytes([]byte(path)))
	ctx.Push(joy.NewStrBytes([]byte("r")))
	require.NoError(t, FileCommands["fopen"](ctx))
	f, ok := ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)

	ctx.Push(f)
	ctx.Push(joy.Int64(10))
	require.NoError(t, FileCommands["fread"](ctx))
	_ = ctx.Pop()
	f2, ok := ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)

	ctx.Push(f2)
	require.NoError(t, FileCommands["feof"](ctx))
	eof, ok := ctx.Pop().(joy.Bool)
	require.True(t, ok)
	assert.True(t, bool(eof))
	_, ok = ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)
}

func TestFtellReflectsPositionAfterFseek(t *testing.T) {
	ctx := newTestContext()
	path := tempFilePath(t)
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0644))

	ctx.Push(joy.NewStrBytes([]byte(path)))
	ctx.Push(joy.NewStrBytes([]byte("r")))
	require.NoError(t, FileCommands["fopen"](ctx))
	f, ok := ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)

	ctx.Push(f)
	ctx.Push(joy.Int64(3))
	ctx.Push(joy.Int64(0))
	require.NoError(t, FileCommands["fseek"](ctx))
	f2, ok := ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)

	ctx.Push(f2)
	require.NoError(t, FileCommands["ftell"](ctx))
	pos, ok := ctx.Pop().(joy.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(3), int64(pos))
	_, ok = ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)
}

func TestFputchThenFgetchRoundTrips(t *testing.T) {
	ctx := newTestContext()
	path := tempFilePath(t)

	ctx.Push(joy.NewStrBytes([]byte(path)))
	ctx.Push(joy.NewStrBytes([]byte("w+")))
	require.NoError(t, FileCommands["fopen"](ctx))
	f, ok := ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)

	ctx.Push(f)
	ctx.Push(joy.Char('Z'))
	require.NoError(t, FileCommands["fputch"](ctx))
	f2, ok := ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)

	_, serr := f2.File().Seek(0, 0)
	require.NoError(t, serr)

	ctx.Push(f2)
	require.NoError(t, FileCommands["fgetch"](ctx))
	c, ok := ctx.Pop().(joy.Char)
	require.True(t, ok)
	assert.Equal(t, byte('Z'), byte(c))
	_, ok = ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)
}

func TestFputstringThenFgetsRoundTrips(t *testing.T) {
	ctx := newTestContext()
	path := tempFilePath(t)

	ctx.Push(joy.NewStrBytes([]byte(path)))
	ctx.Push(joy.NewStrBytes([]byte("w+")))
	require.NoError(t, FileCommands["fopen"](ctx))
	f, ok := ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)

	ctx.Push(f)
	ctx.Push(joy.NewStrBytes([]byte("hello\n")))
	require.NoError(t, FileCommands["fputstring"](ctx))
	f2, ok := ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)

	_, serr := f2.File().Seek(0, 0)
	require.NoError(t, serr)

	ctx.Push(f2)
	require.NoError(t, FileCommands["fgets"](ctx))
	line, ok := ctx.Pop().(*joy.Str)
	require.True(t, ok)
	assert.Equal(t, "hello", string(line.Bytes()))
	_, ok = ctx.Pop().(*joy.FileHandle)
	require.True(t, ok)
}

func TestFremoveDeletesAFile(t *testing.T) {
	ctx := newTestContext()
	path := tempFilePath(t)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	ctx.Push(joy.NewStrBytes([]byte(path)))
	require.NoError(t, FileCommands["fremove"](ctx))
	ok, okT := ctx.Pop().(joy.Bool)
	require.True(t, okT)
	assert.True(t, bool(ok))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFrenameMovesAFileOldThenNew(t *testing.T) {
	ctx := newTestContext()
	oldPath := tempFilePath(t)
	newPath := filepath.Join(filepath.Dir(oldPath), "renamed.txt")
	require.NoError(t, os.WriteFile(oldPath, []byte("x"), 0644))

	ctx.Push(joy.NewStrBytes([]byte(oldPath)))
	ctx.Push(joy.NewStrBytes([]byte(newPath)))
	require.NoError(t, FileCommands["frename"](ctx))
	ok, okT := ctx.Pop().(joy.Bool)
	require.True(t, okT)
	assert.True(t, bool(ok))
	_, statErr := os.Stat(newPath)
	assert.NoError(t, statErr)
}
