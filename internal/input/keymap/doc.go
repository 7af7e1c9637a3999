// Package keymap holds the bindings declared by a script run.
//
// # Key Concepts
//
// Binding: one primary key, zero or more modifiers, and an opaque command.
//
// KeyArg: the normalized form of bind's keys argument, either One key or
// Many keys. It is classified once when the argument is parsed.
//
// Registry: the append-only accumulator a run writes into. Each run owns its
// own Registry, so independent runs never share bindings.
//
// # Expansion
//
// A KeyArg with N keys expands to N bindings that share the same modifiers
// and command:
//
//	arg := keymap.Many{key.New("a"), key.New("h")}
//	reg.Push(keymap.Expand(mods, arg, cmd)...)
package keymap
