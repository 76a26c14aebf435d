package runtime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteToCopiesEveryEmbeddedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteTo(dir))

	for _, name := range Names {
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		want, err := files.ReadFile(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestWriteToCreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, WriteTo(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEmbeddedRuntimeDeclaresLifecycleAPI(t *testing.T) {
	h, err := files.ReadFile("joy_runtime.h")
	require.NoError(t, err)
	assert.Contains(t, string(h), "JoyContext *joy_context_new(int argc, char **argv);")
	assert.Contains(t, string(h), "void joy_register_primitives(JoyContext *ctx);")
}

func TestMakefileBuildsAgainstNamedSource(t *testing.T) {
	mk, err := files.ReadFile("Makefile")
	require.NoError(t, err)
	assert.Contains(t, string(mk), "$(NAME).c")
}
