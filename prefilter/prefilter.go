// Package prefilter builds compile-time literal prefilters.
//
// A prefilter is an Aho-Corasick automaton over the literal prefixes
// extracted from a pattern. A matcher can ask it for the next candidate
// position instead of attempting the full backtracking machine at every
// offset. Prefilters are an optimization only: a matcher that ignores
// them is still correct.
package prefilter

import (
	"errors"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/backrex/ast"
	"github.com/coregx/backrex/literal"
)

// Build requirements
var (
	// ErrNoLiterals indicates the sequence has no usable literals
	ErrNoLiterals = errors.New("no literals to build a prefilter from")

	// ErrEmptyLiteral indicates a zero-length literal, which would match
	// at every position
	ErrEmptyLiteral = errors.New("literal sequence contains an empty literal")
)

// MinLiterals is the smallest alternative count worth an automaton.
// A single literal is better served by a plain substring search.
const MinLiterals = 2

// Prefilter locates candidate match positions using the pattern's
// extracted literals. Immutable and safe for concurrent use.
type Prefilter struct {
	auto     *ahocorasick.Automaton
	literals *literal.Seq
}

// Build constructs a prefilter from an extracted literal sequence.
// The sequence must be non-empty and contain no zero-length literal;
// incomplete literals are fine, since a prefilter only needs valid
// prefixes, not exact matches.
func Build(seq *literal.Seq) (*Prefilter, error) {
	if seq.IsEmpty() {
		return nil, ErrNoLiterals
	}
	if seq.HasEmpty() {
		return nil, ErrEmptyLiteral
	}

	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}

	return &Prefilter{auto: auto, literals: seq.Clone()}, nil
}

// FromAST extracts literals from the tree and builds a prefilter when the
// result is usable: at least MinLiterals distinct alternatives, none of
// them empty. Returns (nil, nil) when the pattern simply yields no usable
// literal set; that is the common case, not an error.
func FromAST(tree *ast.AST) (*Prefilter, error) {
	seq := literal.New(literal.DefaultConfig()).Extract(tree)
	seq.Minimize()
	if seq.Len() < MinLiterals || seq.HasEmpty() {
		return nil, nil
	}
	return Build(seq)
}

// Find returns the start offset of the earliest literal occurrence at or
// after position at, or -1 when no literal occurs. Every match of the
// original pattern starts at some reported offset, so skipping between
// offsets is sound.
func (p *Prefilter) Find(haystack []byte, at int) int {
	if at >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, at)
	if m == nil {
		return -1
	}
	return m.Start
}

// IsMatch reports whether any literal occurs in the haystack. A false
// result proves the pattern cannot match at all.
func (p *Prefilter) IsMatch(haystack []byte) bool {
	return p.auto.IsMatch(haystack)
}

// LiteralCount returns the number of literals the prefilter was built
// from
func (p *Prefilter) LiteralCount() int {
	return p.literals.Len()
}
