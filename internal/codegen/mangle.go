package codegen

import (
	"fmt"
	"strings"
)

// mangle turns a Joy word name into a valid C identifier. Joy names are
// frequently pure punctuation (+, <=, !=, ...), so every byte outside
// [A-Za-z0-9_] is replaced by an underscore-bracketed hex escape rather
// than dropped, keeping the mapping injective enough that two distinct
// Joy names never collide on the same C symbol.
func mangle(prefix, name string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '_':
			b.WriteString("__")
		default:
			fmt.Fprintf(&b, "_%02x", c)
		}
	}
	return b.String()
}

// mangleWord produces the C function name for a user-defined word's body.
func mangleWord(name string) string { return mangle("jw_", name) }

// mangleLabel produces a unique C identifier fragment for a pool entry or
// other generated-but-anonymous artifact, not tied to any Joy name.
func mangleLabel(prefix string, n int) string {
	return fmt.Sprintf("%s%d", prefix, n)
}
