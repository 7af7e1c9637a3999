package keymap

import "github.com/dshills/keybind/internal/input/key"

// KeyArg is the normalized keys argument of bind: One or Many.
type KeyArg interface {
	// Keys returns the keys in declared order.
	Keys() []key.Key

	isKeyArg()
}

// One is a keys argument that was a single Key.
type One key.Key

// Keys returns the single key.
func (o One) Keys() []key.Key {
	return []key.Key{key.Key(o)}
}

func (One) isKeyArg() {}

// Many is a keys argument that was a list of Keys.
type Many []key.Key

// Keys returns a copy of the listed keys.
func (m Many) Keys() []key.Key {
	out := make([]key.Key, len(m))
	copy(out, m)
	return out
}

func (Many) isKeyArg() {}
