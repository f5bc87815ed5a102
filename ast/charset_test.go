package ast

import (
	"testing"
)

// TestCharSet_Contains tests membership for plain and negated sets
func TestCharSet_Contains(t *testing.T) {
	tests := []struct {
		name string
		set  CharSet
		r    rune
		want bool
	}{
		{"single range hit", NewCharSet(false, RuneRange{Lo: 'a', Hi: 'z'}), 'q', true},
		{"single range miss", NewCharSet(false, RuneRange{Lo: 'a', Hi: 'z'}), 'Q', false},
		{"range boundary lo", NewCharSet(false, RuneRange{Lo: 'a', Hi: 'z'}), 'a', true},
		{"range boundary hi", NewCharSet(false, RuneRange{Lo: 'a', Hi: 'z'}), 'z', true},
		{"multi range", NewCharSet(false, RuneRange{Lo: 'a', Hi: 'z'}, RuneRange{Lo: '0', Hi: '9'}), '5', true},
		{"negated hit", NewCharSet(true, RuneRange{Lo: 'a', Hi: 'z'}), 'q', false},
		{"negated miss", NewCharSet(true, RuneRange{Lo: 'a', Hi: 'z'}), '5', true},
		{"from runes", NewCharSetFromRunes('x', 'y'), 'y', true},
		{"from runes miss", NewCharSetFromRunes('x', 'y'), 'z', false},
		{"empty set", NewCharSet(false), 'a', false},
		{"unicode", NewCharSet(false, RuneRange{Lo: 'а', Hi: 'я'}), 'ж', true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Contains(tt.r); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

// TestCharSet_Size tests character counting and the negated sentinel
func TestCharSet_Size(t *testing.T) {
	tests := []struct {
		name string
		set  CharSet
		want int
	}{
		{"empty", NewCharSet(false), 0},
		{"single", NewCharSetFromRunes('a'), 1},
		{"range", NewCharSet(false, RuneRange{Lo: 'a', Hi: 'e'}), 5},
		{"two ranges", NewCharSet(false, RuneRange{Lo: 'a', Hi: 'c'}, RuneRange{Lo: '0', Hi: '1'}), 5},
		{"negated", NewCharSet(true, RuneRange{Lo: 'a', Hi: 'z'}), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestCharSet_Runes tests enumeration order
func TestCharSet_Runes(t *testing.T) {
	set := NewCharSet(false, RuneRange{Lo: 'a', Hi: 'c'}, RuneRange{Lo: '0', Hi: '1'})
	got := set.Runes()
	want := []rune{'a', 'b', 'c', '0', '1'}
	if len(got) != len(want) {
		t.Fatalf("Runes() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Runes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if NewCharSet(true, RuneRange{Lo: 'a', Hi: 'z'}).Runes() != nil {
		t.Error("negated set Runes() should be nil")
	}
}

// TestCharSet_String tests bracket notation
func TestCharSet_String(t *testing.T) {
	tests := []struct {
		set  CharSet
		want string
	}{
		{NewCharSet(false, RuneRange{Lo: 'a', Hi: 'z'}), "[a-z]"},
		{NewCharSet(true, RuneRange{Lo: 'a', Hi: 'z'}, RuneRange{Lo: '0', Hi: '9'}), "[^a-z0-9]"},
		{NewCharSetFromRunes('x'), "[x]"},
		{NewCharSet(false), "[]"},
	}
	for _, tt := range tests {
		if got := tt.set.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
