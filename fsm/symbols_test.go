package fsm

import (
	"testing"

	"github.com/coregx/backrex/ast"
)

// TestSymbols_RecordLookup tests basic table operations
func TestSymbols_RecordLookup(t *testing.T) {
	unit := ast.NewCharacter(ast.NewSpan(0, 1), 'a')
	syms := NewSymbols()

	if syms.Len() != 0 {
		t.Errorf("new table Len() = %d, want 0", syms.Len())
	}

	syms.Record(4, unit, false)
	syms.Record(5, unit, true)

	sym, ok := syms.Lookup(4)
	if !ok || sym.Unit != unit || sym.IsEnd {
		t.Errorf("Lookup(4) = (%+v, %v), want start symbol for unit", sym, ok)
	}
	sym, ok = syms.Lookup(5)
	if !ok || !sym.IsEnd {
		t.Errorf("Lookup(5) = (%+v, %v), want end symbol", sym, ok)
	}
	if _, ok := syms.Lookup(6); ok {
		t.Error("Lookup of unrecorded state should report absence")
	}
	if syms.Len() != 2 {
		t.Errorf("Len() = %d, want 2", syms.Len())
	}
}

// TestSymbols_Description tests the rendered format and the missing
// marker
func TestSymbols_Description(t *testing.T) {
	unit := ast.NewGroup(ast.NewSpan(0, 3), 1, true)
	syms := NewSymbols()
	syms.Record(7, unit, false)
	syms.Record(8, unit, true)

	if got, want := syms.Description(7), "7 [Start, Group #1]"; got != want {
		t.Errorf("Description(7) = %q, want %q", got, want)
	}
	if got, want := syms.Description(8), "8 [End, Group #1]"; got != want {
		t.Errorf("Description(8) = %q, want %q", got, want)
	}
	if got, want := syms.Description(99), "99 [no symbol]"; got != want {
		t.Errorf("Description(99) = %q, want %q", got, want)
	}
}

// TestSymbols_LastWriterWins tests the overwrite rule used when
// composition reuses a child's boundary state
func TestSymbols_LastWriterWins(t *testing.T) {
	child := ast.NewCharacter(ast.NewSpan(0, 1), 'a')
	parent := ast.NewExpression(ast.NewSpan(0, 1), child)

	syms := NewSymbols()
	syms.Record(0, child, false)
	syms.Record(0, parent, false)

	sym, ok := syms.Lookup(0)
	if !ok || sym.Unit != parent {
		t.Error("later record should win for a shared boundary state")
	}
	if syms.Len() != 1 {
		t.Errorf("Len() = %d, want 1", syms.Len())
	}
}
