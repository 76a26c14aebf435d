package primitives

import "github.com/shakfu/joy"

// tables lists every primitive group in the same "one map per concern"
// shape commands package registers in RegisterAllCommands,
// generalized here to Joy's single flat dictionary (there is no gelo-style
// per-namespace command set to pick from).
var tables = []map[string]joy.Primitive{
	StackCommands,
	ArithCommands,
	QuotationCommands,
	ConsoleCommands,
	FileCommands,
	AggregateCommands,
	ArityCommands,
	CompareCommands,
	ConditionalCommands,
	LoopCommands,
	LogicCommands,
	NumericCommands,
	RecursionCommands,
	SystemCommands,
	ReflectCommands,
}

// Register installs every built-in word onto ctx's dictionary. Called once
// by the standard-library loader before any base.joy/aggregate.joy text or
// user program runs.
func Register(ctx *joy.Context) {
	for _, table := range tables {
		for name, prim := range table {
			ctx.Dict.SetPrimitive(name, prim)
		}
	}
}
