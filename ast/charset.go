package ast

import (
	"fmt"
	"strings"
)

// RuneRange is an inclusive range of Unicode codepoints [Lo, Hi].
// A single character is represented with Lo == Hi.
type RuneRange struct {
	Lo rune
	Hi rune
}

// CharSet is the character-class primitive of the AST: an ordered list of
// rune ranges, optionally negated. It is a value type; compilations may
// share a set freely.
//
// Case folding is not stored in the set. The compiler's caseInsensitive
// option travels alongside the set into the FSM, where the matcher applies
// it.
type CharSet struct {
	ranges  []RuneRange
	negated bool
}

// NewCharSet creates a character set from the given ranges.
//
// Example:
//
//	set := ast.NewCharSet(false, ast.RuneRange{Lo: 'a', Hi: 'z'}, ast.RuneRange{Lo: '0', Hi: '9'})
//	set.Contains('q') // true
func NewCharSet(negated bool, ranges ...RuneRange) CharSet {
	rs := make([]RuneRange, len(ranges))
	copy(rs, ranges)
	return CharSet{ranges: rs, negated: negated}
}

// NewCharSetFromRunes creates a non-negated set matching exactly the given
// characters.
func NewCharSetFromRunes(runes ...rune) CharSet {
	ranges := make([]RuneRange, 0, len(runes))
	for _, r := range runes {
		ranges = append(ranges, RuneRange{Lo: r, Hi: r})
	}
	return CharSet{ranges: ranges}
}

// Contains reports whether the set matches the given character.
func (c CharSet) Contains(r rune) bool {
	for _, rr := range c.ranges {
		if r >= rr.Lo && r <= rr.Hi {
			return !c.negated
		}
	}
	return c.negated
}

// IsNegated reports whether the set is a complement set like [^a-z].
func (c CharSet) IsNegated() bool {
	return c.negated
}

// Ranges returns the underlying rune ranges. The returned slice must not
// be mutated.
func (c CharSet) Ranges() []RuneRange {
	return c.ranges
}

// IsEmpty reports whether the set has no ranges at all.
func (c CharSet) IsEmpty() bool {
	return len(c.ranges) == 0
}

// Size returns the number of distinct characters a non-negated set
// matches. Returns -1 for negated sets, whose membership is unbounded for
// practical purposes.
func (c CharSet) Size() int {
	if c.negated {
		return -1
	}
	n := 0
	for _, rr := range c.ranges {
		n += int(rr.Hi-rr.Lo) + 1
	}
	return n
}

// Runes enumerates the characters of a non-negated set in range order.
// Returns nil for negated sets.
func (c CharSet) Runes() []rune {
	if c.negated {
		return nil
	}
	runes := make([]rune, 0, c.Size())
	for _, rr := range c.ranges {
		for r := rr.Lo; r <= rr.Hi; r++ {
			runes = append(runes, r)
		}
	}
	return runes
}

// String returns the conventional bracket notation for the set
func (c CharSet) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	if c.negated {
		sb.WriteByte('^')
	}
	for _, rr := range c.ranges {
		if rr.Lo == rr.Hi {
			sb.WriteString(fmt.Sprintf("%c", rr.Lo))
		} else {
			sb.WriteString(fmt.Sprintf("%c-%c", rr.Lo, rr.Hi))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
