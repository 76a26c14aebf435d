package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMangleUsesOnlyValidCIdentifierBytes(t *testing.T) {
	for _, name := range []string{"+", "<=", "!=", "foo", "foo_bar", "list-of?", "++"} {
		got := mangleWord(name)
		for i := 0; i < len(got); i++ {
			c := got[i]
			valid := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
			assert.Truef(t, valid, "mangleWord(%q) = %q contains invalid C identifier byte %q", name, got, c)
		}
	}
}

func TestMangleIsInjectiveOnDistinctNames(t *testing.T) {
	names := []string{"+", "-", "<=", ">=", "!=", "foo", "foo_bar", "foo__bar", "a_b", "a__b", "."}
	seen := map[string]string{}
	for _, name := range names {
		got := mangleWord(name)
		if prior, ok := seen[got]; ok {
			t.Fatalf("mangleWord collision: %q and %q both produce %q", prior, name, got)
		}
		seen[got] = name
	}
}

func TestMangleWordHasWordPrefix(t *testing.T) {
	assert.Equal(t, "jw_foo", mangleWord("foo"))
}

func TestMangleLabel(t *testing.T) {
	assert.Equal(t, "pool_3", mangleLabel("pool_", 3))
	assert.NotEqual(t, mangleLabel("pool_", 1), mangleLabel("pool_", 2))
}
