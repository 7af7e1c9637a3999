package key

import (
	"errors"
	"fmt"
)

// Errors returned when building a key table.
var (
	// ErrInvalidName is returned when a constant name is not a usable global name.
	ErrInvalidName = errors.New("invalid key constant name")

	// ErrEmptyID is returned when a constant has no key ID.
	ErrEmptyID = errors.New("empty key id")
)

// reservedNames are globals owned by the host and cannot be key constants.
var reservedNames = map[string]bool{
	"Key":  true,
	"bind": true,
	"_G":   true,
}

// luaKeywords cannot be used as global identifiers in scripts.
var luaKeywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "goto": true,
	"if": true, "in": true, "local": true, "nil": true, "not": true,
	"or": true, "repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}

// Constant is a named key published to scripts.
type Constant struct {
	Name string
	Key  Key
}

// Table is an ordered set of key constants.
// Publishing order follows insertion order.
type Table struct {
	constants []Constant
	index     map[string]int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// DefaultTable returns the built-in constants: SUPER, A, H, J, K, L.
func DefaultTable() *Table {
	t := NewTable()
	for _, c := range []struct{ name, id string }{
		{"SUPER", "super"},
		{"A", "a"},
		{"H", "h"},
		{"J", "j"},
		{"K", "k"},
		{"L", "l"},
	} {
		// Built-in names are always valid.
		_ = t.Set(c.name, c.id)
	}
	return t
}

// Set adds a constant or replaces the ID of an existing one.
// A replaced constant keeps its original position.
func (t *Table) Set(name, id string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w for %q", ErrEmptyID, name)
	}
	if i, ok := t.index[name]; ok {
		t.constants[i].Key = New(id)
		return nil
	}
	t.index[name] = len(t.constants)
	t.constants = append(t.constants, Constant{Name: name, Key: New(id)})
	return nil
}

// Get returns the key published under name.
func (t *Table) Get(name string) (Key, bool) {
	i, ok := t.index[name]
	if !ok {
		return Key{}, false
	}
	return t.constants[i].Key, true
}

// Len returns the number of constants.
func (t *Table) Len() int {
	return len(t.constants)
}

// Constants returns a copy of the constants in publishing order.
func (t *Table) Constants() []Constant {
	out := make([]Constant, len(t.constants))
	copy(out, t.constants)
	return out
}

// ValidateName checks that name is a Lua identifier not owned by the host.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	for i, r := range name {
		isAlpha := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !isAlpha && !(isDigit && i > 0) {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	if luaKeywords[name] || reservedNames[name] {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
	}
	return nil
}
