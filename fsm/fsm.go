// Package fsm defines the compiled finite-state representation consumed
// by a backtracking matcher.
//
// A Machine is an append-only arena of states. States are pure identity
// tokens; all behavior lives on their ordered transition lists. Transition
// order is semantically load-bearing: a backtracking matcher tries
// transitions in list order, which is how alternation precedence and
// greedy/lazy quantifier preference are encoded.
//
// Machines are built with the Builder's constructor algebra (Character,
// Concatenate, Alternate, ZeroOrMore, ...) and are immutable once
// finalized, so a compiled machine is freely shareable between concurrent
// matches.
package fsm

import (
	"fmt"

	"github.com/coregx/backrex/ast"
)

// StateID uniquely identifies a state within one machine.
// IDs are allocation-order integers local to a single compilation; they
// carry no meaning across machines.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// TransitionKind identifies what a transition requires of the input.
type TransitionKind uint8

const (
	// TransEpsilon consumes nothing and is always taken when tried
	TransEpsilon TransitionKind = iota

	// TransRune consumes one literal character
	TransRune

	// TransRuneAny consumes any character, optionally excluding newline
	TransRuneAny

	// TransRuneSet consumes one character drawn from a character set
	TransRuneSet

	// TransBackreference consumes whatever text the referenced capture
	// group holds at match time; resolution is entirely the matcher's job
	TransBackreference

	// TransLook consumes nothing and succeeds only when the position
	// satisfies the anchor assertion
	TransLook
)

// String returns a human-readable representation of the TransitionKind
func (k TransitionKind) String() string {
	switch k {
	case TransEpsilon:
		return "Epsilon"
	case TransRune:
		return "Rune"
	case TransRuneAny:
		return "RuneAny"
	case TransRuneSet:
		return "RuneSet"
	case TransBackreference:
		return "Backreference"
	case TransLook:
		return "Look"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Transition is one directed edge of the machine. The kind determines
// which payload fields are valid.
type Transition struct {
	to   StateID
	kind TransitionKind

	// For Rune: the character and case-folding flag.
	// caseInsensitive is shared with RuneSet.
	r               rune
	caseInsensitive bool

	// For RuneAny
	includingNewline bool

	// For RuneSet
	set ast.CharSet

	// For Backreference: referenced capture group index
	group int

	// For Look
	look ast.AnchorKind
}

// To returns the target state
func (t Transition) To() StateID {
	return t.to
}

// Kind returns the transition's type
func (t Transition) Kind() TransitionKind {
	return t.kind
}

// Rune returns the character and case-folding flag of a Rune transition.
// Returns (0, false) for other kinds.
func (t Transition) Rune() (r rune, caseInsensitive bool) {
	if t.kind == TransRune {
		return t.r, t.caseInsensitive
	}
	return 0, false
}

// IncludesNewline reports whether a RuneAny transition matches newline.
func (t Transition) IncludesNewline() bool {
	return t.kind == TransRuneAny && t.includingNewline
}

// RuneSet returns the character set and case-folding flag of a RuneSet
// transition.
func (t Transition) RuneSet() (set ast.CharSet, caseInsensitive bool) {
	if t.kind == TransRuneSet {
		return t.set, t.caseInsensitive
	}
	return ast.CharSet{}, false
}

// Group returns the capture group index of a Backreference transition.
// Returns 0 for other kinds.
func (t Transition) Group() int {
	if t.kind == TransBackreference {
		return t.group
	}
	return 0
}

// Look returns the anchor assertion of a Look transition.
func (t Transition) Look() ast.AnchorKind {
	return t.look
}

// IsConsuming reports whether taking the transition can consume input.
// Epsilon and Look transitions are zero-width; a Backreference consumes a
// match-time-determined amount and counts as consuming.
func (t Transition) IsConsuming() bool {
	switch t.kind {
	case TransRune, TransRuneAny, TransRuneSet, TransBackreference:
		return true
	default:
		return false
	}
}

// String returns a human-readable representation of the transition
func (t Transition) String() string {
	switch t.kind {
	case TransEpsilon:
		return fmt.Sprintf("ε -> %d", t.to)
	case TransRune:
		if t.caseInsensitive {
			return fmt.Sprintf("%q/i -> %d", t.r, t.to)
		}
		return fmt.Sprintf("%q -> %d", t.r, t.to)
	case TransRuneAny:
		if t.includingNewline {
			return fmt.Sprintf(". (incl. \\n) -> %d", t.to)
		}
		return fmt.Sprintf(". -> %d", t.to)
	case TransRuneSet:
		if t.caseInsensitive {
			return fmt.Sprintf("%s/i -> %d", t.set, t.to)
		}
		return fmt.Sprintf("%s -> %d", t.set, t.to)
	case TransBackreference:
		return fmt.Sprintf("\\%d -> %d", t.group, t.to)
	case TransLook:
		return fmt.Sprintf("%s -> %d", t.look, t.to)
	default:
		return fmt.Sprintf("Unknown -> %d", t.to)
	}
}

// State is one node of the machine: an identity plus an ordered list of
// outgoing transitions.
type State struct {
	id          StateID
	transitions []Transition
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// Transitions returns the ordered outgoing transitions. The returned
// slice must not be mutated.
func (s *State) Transitions() []Transition {
	return s.transitions
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	return fmt.Sprintf("State(%d, %d transitions)", s.id, len(s.transitions))
}

// Machine is the finalized compiled graph: the full state arena plus the
// root subgraph's boundary states. Immutable once built.
type Machine struct {
	states []State
	start  StateID
	end    StateID
}

// Start returns the machine's entry state
func (m *Machine) Start() StateID {
	return m.start
}

// End returns the machine's accepting state
func (m *Machine) End() StateID {
	return m.end
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (m *Machine) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(m.states) {
		return nil
	}
	return &m.states[id]
}

// Len returns the total number of states in the machine
func (m *Machine) Len() int {
	return len(m.states)
}

// String returns a human-readable representation of the machine
func (m *Machine) String() string {
	return fmt.Sprintf("Machine{states: %d, start: %d, end: %d}", len(m.states), m.start, m.end)
}
