package keymap

import (
	"fmt"

	"github.com/dshills/keybind/internal/input/key"
)

// Binding associates a primary key and its modifiers with a command.
// Bindings are immutable; accessors return copies.
type Binding struct {
	modifiers []key.Key
	key       key.Key
	command   any
}

// NewBinding creates a binding. The modifier slice is copied, so later
// changes by the caller do not affect the binding.
// Modifiers keep their declared order; duplicates are preserved.
func NewBinding(modifiers []key.Key, k key.Key, command any) Binding {
	mods := make([]key.Key, len(modifiers))
	copy(mods, modifiers)
	return Binding{
		modifiers: mods,
		key:       k,
		command:   command,
	}
}

// Modifiers returns a copy of the modifier keys in declared order.
func (b Binding) Modifiers() []key.Key {
	mods := make([]key.Key, len(b.modifiers))
	copy(mods, b.modifiers)
	return mods
}

// Key returns the primary key.
func (b Binding) Key() key.Key {
	return b.key
}

// Command returns the command value exactly as the script passed it.
// For script-declared bindings this is a lua.LValue.
func (b Binding) Command() any {
	return b.command
}

// String returns a diagnostic representation.
func (b Binding) String() string {
	return fmt.Sprintf("[%s] %s => %v", key.Join(b.modifiers, " "), b.key, b.command)
}

// Expand builds one binding per key in arg, all sharing modifiers and command.
func Expand(modifiers []key.Key, arg KeyArg, command any) []Binding {
	keys := arg.Keys()
	out := make([]Binding, 0, len(keys))
	for _, k := range keys {
		out = append(out, NewBinding(modifiers, k, command))
	}
	return out
}
