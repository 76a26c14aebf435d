// Package runtime embeds the C support files every compiled Joy program
// links against and copies them verbatim into a compile
// subcommand's output directory alongside the generated translation unit.
package runtime

import (
	"embed"
	"os"
	"path/filepath"
)

//go:embed joy_runtime.c joy_runtime.h joy_primitives.c Makefile
var files embed.FS

// Names lists the embedded files, in the order WriteTo copies them.
var Names = []string{"joy_runtime.c", "joy_runtime.h", "joy_primitives.c", "Makefile"}

// WriteTo copies every embedded runtime file into dir, creating it if
// necessary. Called once per compile subcommand invocation, so a later
// `make` in dir finds joy_runtime.c/h, joy_primitives.c and the Makefile
// sitting next to the generated NAME.c.
func WriteTo(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, name := range Names {
		src, err := files.ReadFile(name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, name), src, 0o644); err != nil {
			return err
		}
	}
	return nil
}
