// Package compiler translates a parsed pattern AST into the executable
// finite-state machine consumed by a backtracking matcher.
//
// Compilation is a pure, synchronous tree transformation: one recursive
// pass produces the machine, the capture-group table and a deferred
// backreference list, followed by a single validation pass over the
// backreferences. All mutable state lives in a per-call structure, so a
// single Compiler value is safe to reuse from concurrent callers.
package compiler

import (
	"errors"
	"fmt"
)

// Common compilation errors
var (
	// ErrTooDeep indicates the pattern's nesting exceeds the configured
	// limit
	ErrTooDeep = errors.New("pattern nesting too deep")

	// ErrNoSuchGroup indicates a backreference to a capture group that
	// does not exist anywhere in the pattern
	ErrNoSuchGroup = errors.New("no capture group with that index")
)

// CompileError is the user-facing compilation failure: a human-readable
// message plus the byte offset of the offending construct in the pattern
// text.
type CompileError struct {
	Message string
	Offset  int
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error at offset %d: %s", e.Offset, e.Message)
}

// Unwrap returns the underlying sentinel error, if any
func (e *CompileError) Unwrap() error {
	return e.Err
}
