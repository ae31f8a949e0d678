package compiler

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned by CachedCompile for input that is neither a
	// path nor a usable Record.
	ErrInvalidInput = errors.New("invalid cache input: expected a file path or a compilation record")

	// ErrRequireCycle is returned when a file requires itself, directly or
	// through other files.
	ErrRequireCycle = errors.New("require cycle")
)

// DirectiveError locates a failed directive call.
type DirectiveError struct {
	File      string
	Line      int
	Directive string
	Err       error
}

func (e *DirectiveError) Error() string {
	file := e.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d: jess.%s: %v", file, e.Line, e.Directive, e.Err)
}

func (e *DirectiveError) Unwrap() error {
	return e.Err
}
