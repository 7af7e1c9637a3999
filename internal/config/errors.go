package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidLevel indicates an unknown log level.
	ErrInvalidLevel = errors.New("invalid log level")

	// ErrInvalidFormat indicates an unknown output format.
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidTimeout indicates a timeout that is not a non-negative duration.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrMissingScript indicates no script path is configured.
	ErrMissingScript = errors.New("script path is required")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes a setting with an unusable value.
type ValidationError struct {
	// Path is the setting path, e.g. "log.level".
	Path string
	// Value is the invalid value.
	Value any
	// Err is the sentinel describing the problem.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v (value: %v)", e.Path, e.Err, e.Value)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
