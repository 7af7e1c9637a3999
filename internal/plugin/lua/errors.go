package lua

import (
	"errors"
	"fmt"
)

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution times out.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrScriptNotFound is returned when a script file does not exist.
	ErrScriptNotFound = errors.New("script not found")
)

// ScriptError is returned when a named chunk fails to compile or run.
type ScriptError struct {
	// Name is the diagnostic chunk name.
	Name string
	// Err is the underlying error, usually a *lua.ApiError.
	Err error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
