package app

import "errors"

// Application errors.
var (
	// ErrInvalidOptions indicates the options could not be applied.
	ErrInvalidOptions = errors.New("invalid options")
)
