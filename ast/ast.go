// Package ast models a parsed regular-expression pattern as an immutable
// tree of units.
//
// The tree is produced by an upstream parser and consumed by the
// compiler. Every unit carries the half-open source interval it was
// parsed from, so diagnostics can point back into the pattern text. The
// package also provides an iterative pre-order traversal (Visit) and a
// diagnostic tree dump (Describe); neither plays any role in matching
// correctness.
package ast

import (
	"fmt"
	"strconv"
)

// Span is a half-open interval of byte offsets into the original pattern
// text. End >= Start always holds; zero-width spans (End == Start) are used
// by anchors.
type Span struct {
	Start int
	End   int
}

// NewSpan creates a span covering [start, end).
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// String returns a human-readable representation of the span
func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}

// Kind identifies the syntactic construct a Unit represents.
// The set is closed: the compiler matches exhaustively over these values.
type Kind uint8

const (
	// KindExpression is an ordered sequence of sibling units (concatenation)
	KindExpression Kind = iota

	// KindGroup is a parenthesized sub-expression, capturing or not
	KindGroup

	// KindAlternation is an ordered list of mutually exclusive branches
	KindAlternation

	// KindBackreference references a previously numbered capturing group
	KindBackreference

	// KindAnchor is a zero-width positional assertion
	KindAnchor

	// KindMatch is a terminal consuming construct (character, dot, set)
	KindMatch

	// KindQuantified applies repetition to a single child unit
	KindQuantified
)

// String returns a human-readable representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindExpression:
		return "Expression"
	case KindGroup:
		return "Group"
	case KindAlternation:
		return "Alternation"
	case KindBackreference:
		return "Backreference"
	case KindAnchor:
		return "Anchor"
	case KindMatch:
		return "Match"
	case KindQuantified:
		return "QuantifiedExpression"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// AnchorKind identifies a zero-width assertion type.
type AnchorKind uint8

const (
	// AnchorStartOfString asserts position 0 (or after a line break in
	// multiline mode, which is a matcher concern)
	AnchorStartOfString AnchorKind = iota

	// AnchorEndOfString asserts the end of the input
	AnchorEndOfString

	// AnchorWordBoundary asserts a word/non-word transition
	AnchorWordBoundary

	// AnchorNonWordBoundary asserts the absence of a word boundary
	AnchorNonWordBoundary

	// AnchorStartOfStringOnly asserts position 0 regardless of mode (\A)
	AnchorStartOfStringOnly

	// AnchorEndOfStringOnly asserts the very end of the input (\z)
	AnchorEndOfStringOnly

	// AnchorEndOfStringOnlyNotNewline asserts the end of the input,
	// allowing one trailing newline (\Z)
	AnchorEndOfStringOnlyNotNewline

	// AnchorPreviousMatchEnd asserts the position where the previous
	// match ended (\G)
	AnchorPreviousMatchEnd
)

// String returns the conventional pattern notation for the anchor
func (a AnchorKind) String() string {
	switch a {
	case AnchorStartOfString:
		return "^"
	case AnchorEndOfString:
		return "$"
	case AnchorWordBoundary:
		return `\b`
	case AnchorNonWordBoundary:
		return `\B`
	case AnchorStartOfStringOnly:
		return `\A`
	case AnchorEndOfStringOnly:
		return `\z`
	case AnchorEndOfStringOnlyNotNewline:
		return `\Z`
	case AnchorPreviousMatchEnd:
		return `\G`
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(a))
	}
}

// MatchKind identifies the flavor of a terminal consuming construct.
type MatchKind uint8

const (
	// MatchCharacter matches one literal character
	MatchCharacter MatchKind = iota

	// MatchAnyCharacter matches any character (dot), optionally
	// including newlines
	MatchAnyCharacter

	// MatchCharacterSet matches one character drawn from a CharSet
	MatchCharacterSet
)

// String returns a human-readable representation of the MatchKind
func (m MatchKind) String() string {
	switch m {
	case MatchCharacter:
		return "Character"
	case MatchAnyCharacter:
		return "AnyCharacter"
	case MatchCharacterSet:
		return "CharacterSet"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(m))
	}
}

// QuantifierKind identifies a repetition operator.
type QuantifierKind uint8

const (
	// QuantZeroOrMore is the * operator
	QuantZeroOrMore QuantifierKind = iota

	// QuantOneOrMore is the + operator
	QuantOneOrMore

	// QuantZeroOrOne is the ? operator
	QuantZeroOrOne

	// QuantRange is a bounded {lower,upper} repetition
	QuantRange
)

// UnboundedMax marks a range quantifier with no upper bound, e.g. {2,}.
const UnboundedMax = -1

// Quantifier describes a repetition operator. Min and Max are meaningful
// only for QuantRange; Max == UnboundedMax means no upper bound. The parser
// guarantees Min <= Max when both are finite.
type Quantifier struct {
	Kind QuantifierKind
	Min  int
	Max  int
}

// IsUnbounded reports whether the quantifier has no upper bound.
func (q Quantifier) IsUnbounded() bool {
	switch q.Kind {
	case QuantZeroOrMore, QuantOneOrMore:
		return true
	case QuantRange:
		return q.Max == UnboundedMax
	default:
		return false
	}
}

// String returns the conventional pattern notation for the quantifier
func (q Quantifier) String() string {
	switch q.Kind {
	case QuantZeroOrMore:
		return "*"
	case QuantOneOrMore:
		return "+"
	case QuantZeroOrOne:
		return "?"
	case QuantRange:
		if q.Max == UnboundedMax {
			return fmt.Sprintf("{%d,}", q.Min)
		}
		if q.Min == q.Max {
			return fmt.Sprintf("{%d}", q.Min)
		}
		return fmt.Sprintf("{%d,%d}", q.Min, q.Max)
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(q.Kind))
	}
}

// Unit is a single node of the pattern AST. The kind tag determines which
// fields are valid, mirroring a closed tagged sum: every construct the
// parser can produce has exactly one Kind, and the compiler matches over
// them exhaustively.
//
// Units are immutable after construction and safe to share between
// compilations.
type Unit struct {
	kind   Kind
	source Span

	// For Expression, Group, Alternation: ordered children.
	// For QuantifiedExpression: exactly one child.
	children []*Unit

	// For Group: capture index and capturing flag.
	// For Backreference: referenced group index.
	index     int
	capturing bool

	// For Anchor
	anchor AnchorKind

	// For Match
	match            MatchKind
	char             rune
	includingNewline bool
	set              CharSet

	// For QuantifiedExpression
	quantifier Quantifier
	lazy       bool
}

// NewExpression creates a concatenation of the given children.
func NewExpression(source Span, children ...*Unit) *Unit {
	return &Unit{kind: KindExpression, source: source, children: children}
}

// NewGroup creates a parenthesized sub-expression. index is the capture
// index assigned by the parser and is meaningful only when capturing is
// true.
func NewGroup(source Span, index int, capturing bool, children ...*Unit) *Unit {
	return &Unit{
		kind:      KindGroup,
		source:    source,
		index:     index,
		capturing: capturing,
		children:  children,
	}
}

// NewAlternation creates an ordered list of mutually exclusive branches.
// Branch order fixes the trial precedence of the backtracking matcher.
func NewAlternation(source Span, children ...*Unit) *Unit {
	return &Unit{kind: KindAlternation, source: source, children: children}
}

// NewBackreference creates a reference to the capturing group with the
// given index.
func NewBackreference(source Span, index int) *Unit {
	return &Unit{kind: KindBackreference, source: source, index: index}
}

// NewAnchor creates a zero-width assertion.
func NewAnchor(source Span, anchor AnchorKind) *Unit {
	return &Unit{kind: KindAnchor, source: source, anchor: anchor}
}

// NewCharacter creates a literal single-character match.
func NewCharacter(source Span, r rune) *Unit {
	return &Unit{kind: KindMatch, source: source, match: MatchCharacter, char: r}
}

// NewAnyCharacter creates a dot match. includingNewline preserves the
// parser-level (?s)-style flag; the compile option may still widen it.
func NewAnyCharacter(source Span, includingNewline bool) *Unit {
	return &Unit{
		kind:             KindMatch,
		source:           source,
		match:            MatchAnyCharacter,
		includingNewline: includingNewline,
	}
}

// NewCharacterSet creates a character-class match.
func NewCharacterSet(source Span, set CharSet) *Unit {
	return &Unit{kind: KindMatch, source: source, match: MatchCharacterSet, set: set}
}

// NewQuantified applies a quantifier to a single child unit.
func NewQuantified(source Span, q Quantifier, lazy bool, child *Unit) *Unit {
	return &Unit{
		kind:       KindQuantified,
		source:     source,
		quantifier: q,
		lazy:       lazy,
		children:   []*Unit{child},
	}
}

// Kind returns the unit's construct tag
func (u *Unit) Kind() Kind {
	return u.kind
}

// Span returns the unit's source interval
func (u *Unit) Span() Span {
	return u.source
}

// Children returns the ordered child list. It is nil for terminal units.
// The returned slice must not be mutated.
func (u *Unit) Children() []*Unit {
	return u.children
}

// Child returns the single child of a quantified expression.
// Returns nil for any other kind.
func (u *Unit) Child() *Unit {
	if u.kind == KindQuantified && len(u.children) == 1 {
		return u.children[0]
	}
	return nil
}

// Index returns the capture index for Group units and the referenced group
// index for Backreference units. Returns 0 for other kinds.
func (u *Unit) Index() int {
	if u.kind == KindGroup || u.kind == KindBackreference {
		return u.index
	}
	return 0
}

// IsCapturing reports whether a Group unit captures. Always false for
// other kinds.
func (u *Unit) IsCapturing() bool {
	return u.kind == KindGroup && u.capturing
}

// Anchor returns the assertion type for Anchor units.
func (u *Unit) Anchor() AnchorKind {
	return u.anchor
}

// Match returns the match flavor for Match units.
func (u *Unit) Match() MatchKind {
	return u.match
}

// Rune returns the literal character of a MatchCharacter unit.
func (u *Unit) Rune() rune {
	return u.char
}

// IncludesNewline reports whether a MatchAnyCharacter unit matches
// newlines.
func (u *Unit) IncludesNewline() bool {
	return u.includingNewline
}

// Set returns the character set of a MatchCharacterSet unit.
func (u *Unit) Set() CharSet {
	return u.set
}

// Quantifier returns the repetition operator of a quantified unit.
func (u *Unit) Quantifier() Quantifier {
	return u.quantifier
}

// IsLazy reports whether a quantified unit prefers fewer repetitions.
func (u *Unit) IsLazy() bool {
	return u.lazy
}

// IsTerminal reports whether the unit has no children
// (Backreference, Anchor, Match).
func (u *Unit) IsTerminal() bool {
	switch u.kind {
	case KindBackreference, KindAnchor, KindMatch:
		return true
	default:
		return false
	}
}

// IsCompound reports whether the unit carries an ordered child list.
func (u *Unit) IsCompound() bool {
	return !u.IsTerminal()
}

// String returns a variant-specific label for the unit, used by the tree
// dump and the symbol table.
func (u *Unit) String() string {
	switch u.kind {
	case KindExpression:
		return "Expression"
	case KindGroup:
		if u.capturing {
			return fmt.Sprintf("Group #%d", u.index)
		}
		return "Group (non-capturing)"
	case KindAlternation:
		return "Alternation"
	case KindBackreference:
		return fmt.Sprintf(`Backreference \%d`, u.index)
	case KindAnchor:
		return "Anchor " + u.anchor.String()
	case KindMatch:
		switch u.match {
		case MatchCharacter:
			return "Character " + strconv.QuoteRune(u.char)
		case MatchAnyCharacter:
			if u.includingNewline {
				return "AnyCharacter (including newline)"
			}
			return "AnyCharacter"
		case MatchCharacterSet:
			return "CharacterSet " + u.set.String()
		default:
			return u.match.String()
		}
	case KindQuantified:
		label := "Quantified " + u.quantifier.String()
		if u.lazy {
			label += " lazy"
		}
		return label
	default:
		return u.kind.String()
	}
}

// AST owns the root unit of a parsed pattern together with the original
// pattern text, so diagnostics can quote source substrings.
type AST struct {
	root    *Unit
	pattern string
}

// New creates an AST from a root unit and the pattern text it was parsed
// from. The root is conventionally an Expression.
func New(root *Unit, pattern string) *AST {
	return &AST{root: root, pattern: pattern}
}

// Root returns the root unit
func (a *AST) Root() *Unit {
	return a.root
}

// Pattern returns the original pattern text
func (a *AST) Pattern() string {
	return a.pattern
}

// Source returns the pattern substring covered by the span.
// Out-of-range spans yield an empty string rather than panicking, so a
// malformed span from a buggy producer degrades to a blank quote in
// diagnostics.
func (a *AST) Source(s Span) string {
	if s.Start < 0 || s.End > len(a.pattern) || s.Start > s.End {
		return ""
	}
	return a.pattern[s.Start:s.End]
}
