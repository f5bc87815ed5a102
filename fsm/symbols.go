package fsm

import (
	"fmt"

	"github.com/coregx/backrex/ast"
)

// Symbol maps a machine state back to the AST unit whose compilation
// produced it. IsEnd distinguishes the unit's exit state from its entry
// state.
type Symbol struct {
	Unit  *ast.Unit
	IsEnd bool
}

// Symbols is the optional debug table from machine states to source
// constructs. The compiler populates it only when diagnostics are
// requested; it is read-only afterwards and has no role in matching
// correctness.
type Symbols struct {
	entries map[StateID]Symbol
}

// NewSymbols creates an empty symbol table
func NewSymbols() *Symbols {
	return &Symbols{entries: make(map[StateID]Symbol)}
}

// Record associates a state with the unit that produced it. The compiler
// records every subgraph's boundary states, last writer wins when
// composition reuses a child's boundary as its own.
func (s *Symbols) Record(id StateID, unit *ast.Unit, isEnd bool) {
	s.entries[id] = Symbol{Unit: unit, IsEnd: isEnd}
}

// Lookup returns the symbol recorded for the state, if any.
func (s *Symbols) Lookup(id StateID) (Symbol, bool) {
	sym, ok := s.entries[id]
	return sym, ok
}

// Len returns the number of recorded states
func (s *Symbols) Len() int {
	return len(s.entries)
}

// Description renders the state's symbol as
// "<state> [<Start|End>, <unit label>]", or an explicit missing marker
// when the state was never recorded (diagnostics were off, or the state
// belongs to a different compilation).
func (s *Symbols) Description(id StateID) string {
	sym, ok := s.entries[id]
	if !ok {
		return fmt.Sprintf("%d [no symbol]", id)
	}
	boundary := "Start"
	if sym.IsEnd {
		boundary = "End"
	}
	return fmt.Sprintf("%d [%s, %s]", id, boundary, sym.Unit)
}
