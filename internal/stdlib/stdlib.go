// Package stdlib embeds the two standard-library source files this
// system requires (a base library of stack/arithmetic shorthands, then an
// aggregate library of list/set combinator shorthands) and loads them into
// a fresh Context before any user program runs. Grounded on tools/gelrun.go's prelude-loading step (open file, vm.Run it, check() the
// error), adapted from a sibling-file read to a compiled-in embed.FS since
// this system has no installed standard-library layout.
package stdlib

import (
	"embed"

	"github.com/shakfu/joy"
)

//go:embed base.joy aggregate.joy
var files embed.FS

// Names lists the embedded library files in load order, also the set of
// names the include primitive's embedded-path fallback recognizes.
var Names = []string{"base.joy", "aggregate.joy"}

// Load installs the standard library's definitions into ctx's dictionary.
// Called once, after Register populates the built-in primitives and before
// any user program runs.
func Load(ctx *joy.Context) error {
	for _, name := range Names {
		if err := LoadFile(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile runs one embedded library file by name, used directly by
// Load and by the include primitive's fallback search path.
func LoadFile(ctx *joy.Context, name string) error {
	src, err := files.ReadFile(name)
	if err != nil {
		return err
	}
	p, err := joy.NewParser(name, src)
	if err != nil {
		return err
	}
	prog, err := p.ParseProgram()
	if err != nil {
		return err
	}
	return ctx.Run(prog)
}

// Has reports whether name is one of the embedded library files.
func Has(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}
