package key

import (
	"fmt"
	"strings"
)

// Key identifies a physical key or modifier by its ID.
// Two keys are equal when their IDs are equal.
type Key struct {
	ID string
}

// New returns the key with the given ID.
func New(id string) Key {
	return Key{ID: id}
}

// String returns the diagnostic form "<key:ID>".
func (k Key) String() string {
	return "<key:" + k.ID + ">"
}

// Equal reports whether both keys have the same ID.
func (k Key) Equal(other Key) bool {
	return k.ID == other.ID
}

// IsZero returns true if the key has no ID.
func (k Key) IsZero() bool {
	return k.ID == ""
}

// MarshalText encodes the key as its ID.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.ID), nil
}

// Join formats each key with String and joins the results with sep,
// e.g. "<key:a> <key:b>" for sep " ".
func Join(keys []Key, sep string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, sep)
}

// EqualSlices reports whether two key slices hold the same IDs in the same order.
func EqualSlices(a, b []Key) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// GoString implements fmt.GoStringer for test output.
func (k Key) GoString() string {
	return fmt.Sprintf("key.New(%q)", k.ID)
}
