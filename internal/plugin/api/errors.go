package api

import (
	"errors"
	"fmt"
)

// Errors returned by the Key type and bind.
var (
	// ErrNotAKey indicates a value does not carry the Key descriptor.
	ErrNotAKey = errors.New("not a Key")

	// ErrMalformedKey indicates a Key-tagged table without a string keyid.
	ErrMalformedKey = errors.New("Key has no string keyid")

	// ErrMalformedDescriptor indicates the Key descriptor is missing or no
	// longer indexes itself. This is a prelude bug, not a user error.
	ErrMalformedDescriptor = errors.New("Key descriptor is malformed")

	// ErrKeyTypeMissing indicates bind was registered before the key module.
	ErrKeyTypeMissing = errors.New("key module not registered")
)

// TypeError reports a bind argument that is not shaped as required.
type TypeError struct {
	// Func is the Lua function name.
	Func string
	// Arg is the 1-based argument position.
	Arg int
	// Param is the argument name.
	Param string
	// Index identifies the offending list element, empty for the whole argument.
	Index string
	// Reason describes what is wrong.
	Reason string
	// Err is ErrNotAKey or ErrMalformedKey.
	Err error
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	if e.Index != "" {
		return fmt.Sprintf("%s: bad argument #%d (%s): element %s %s", e.Func, e.Arg, e.Param, e.Index, e.Reason)
	}
	return fmt.Sprintf("%s: bad argument #%d (%s): %s", e.Func, e.Arg, e.Param, e.Reason)
}

// Unwrap returns the underlying error.
func (e *TypeError) Unwrap() error {
	return e.Err
}

// StartupError reports a failure while installing the Key type.
type StartupError struct {
	// Stage names what was being installed ("prelude", "descriptor", "keys").
	Stage string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StartupError) Error() string {
	return fmt.Sprintf("startup %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StartupError) Unwrap() error {
	return e.Err
}
