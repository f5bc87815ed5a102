// Package literal extracts literal byte sequences from a pattern AST.
//
// The extracted sequences feed prefilter construction: a pattern like
// (foo|bar)baz can only match where "foobaz" or "barbaz" occurs, so a
// fast multi-substring search can rule out most of the haystack before
// the backtracking matcher runs.
package literal

// Literal is one extracted byte sequence. Complete indicates the literal
// is the entire text its source construct can match; incomplete literals
// are prefixes only and cannot anchor an exact prefilter.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral creates a literal from the given bytes.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the literal's length in bytes
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging.
func (l Literal) String() string {
	if l.Complete {
		return "literal{" + string(l.Bytes) + ", complete=true}"
	}
	return "literal{" + string(l.Bytes) + ", complete=false}"
}

// Seq is a sequence of alternative literal prefixes: the pattern can only
// match text beginning with one of them. An empty incomplete literal means
// the pattern admits text the extractor could not characterize, which
// makes the sequence useless for prefiltering.
type Seq struct {
	literals []Literal
}

// NewSeq creates a sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals in the sequence
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the given index.
// Panics if the index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence has no literals
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// IsExact reports whether every literal in the sequence is complete, i.e.
// the sequence enumerates exactly the texts the pattern can match.
func (s *Seq) IsExact() bool {
	if s.IsEmpty() {
		return false
	}
	for _, l := range s.literals {
		if !l.Complete {
			return false
		}
	}
	return true
}

// HasEmpty reports whether any literal is zero-length. A zero-length
// literal matches everywhere, so a prefilter built from the sequence
// would be pure overhead.
func (s *Seq) HasEmpty() bool {
	if s == nil {
		return false
	}
	for _, l := range s.literals {
		if len(l.Bytes) == 0 {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the sequence
func (s *Seq) Clone() *Seq {
	lits := make([]Literal, len(s.literals))
	for i, l := range s.literals {
		b := make([]byte, len(l.Bytes))
		copy(b, l.Bytes)
		lits[i] = Literal{Bytes: b, Complete: l.Complete}
	}
	return &Seq{literals: lits}
}

// Minimize removes literals that have a strictly shorter literal of the
// sequence as a prefix: for prefix matching, "foo" makes "foobar"
// redundant. Exact duplicates keep their first occurrence. Operates in
// place, preserving order.
func (s *Seq) Minimize() {
	if s.Len() < 2 {
		return
	}
	orig := s.literals
	kept := make([]Literal, 0, len(orig))
	for i, l := range orig {
		redundant := false
		for j, other := range orig {
			if i == j || !isPrefix(other.Bytes, l.Bytes) {
				continue
			}
			if len(other.Bytes) < len(l.Bytes) || j < i {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, l)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest byte prefix shared by every
// literal in the sequence. Returns nil for an empty sequence.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return nil
	}
	prefix := s.literals[0].Bytes
	for _, l := range s.literals[1:] {
		prefix = commonPrefix(prefix, l.Bytes)
		if len(prefix) == 0 {
			break
		}
	}
	return prefix
}

// isPrefix reports whether prefix is a prefix of b.
func isPrefix(prefix, b []byte) bool {
	if len(prefix) > len(b) {
		return false
	}
	for i := range prefix {
		if prefix[i] != b[i] {
			return false
		}
	}
	return true
}

// commonPrefix returns the longest common prefix of a and b.
func commonPrefix(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
