package fsm

import (
	"fmt"
)

// BuildError represents an error during machine construction via the
// Builder API. These indicate programming errors in the compiler, not
// user-facing pattern problems.
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("fsm build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("fsm build error: %s", e.Message)
}
