package literal

import (
	"unicode/utf8"

	"github.com/coregx/backrex/ast"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits keep extraction cheap on complex patterns:
//   - MaxLiterals: caps the number of alternatives, so wide alternations
//     and cross products cannot blow up memory
//   - MaxLiteralLen: caps each literal's byte length; very long literals
//     hurt prefilter cache locality
//   - MaxClassSize: caps how large a character set may be before it is
//     treated as opaque instead of being expanded per character
type ExtractorConfig struct {
	MaxLiterals   int
	MaxLiteralLen int
	MaxClassSize  int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor derives the literal prefixes a pattern can match.
//
// Extraction assumes case-sensitive matching; callers compiling with case
// folding should not build prefilters from the result.
type Extractor struct {
	config ExtractorConfig
}

// New creates an extractor with the given configuration
func New(config ExtractorConfig) *Extractor {
	if config.MaxLiterals == 0 {
		config.MaxLiterals = 64
	}
	if config.MaxLiteralLen == 0 {
		config.MaxLiteralLen = 64
	}
	if config.MaxClassSize == 0 {
		config.MaxClassSize = 10
	}
	return &Extractor{config: config}
}

// Extract walks the AST and returns the literal prefixes of the texts it
// can match. The result always has at least one literal; a single empty
// incomplete literal means nothing useful could be extracted.
func (e *Extractor) Extract(tree *ast.AST) *Seq {
	if tree == nil || tree.Root() == nil {
		return unknownSeq()
	}
	return e.extract(tree.Root())
}

// unknownSeq is the bottom of the extraction lattice: the construct can
// match text the extractor cannot enumerate, starting with anything.
func unknownSeq() *Seq {
	return NewSeq(NewLiteral(nil, false))
}

// exactEmptySeq is the concatenation identity: the construct matches
// exactly the empty string.
func exactEmptySeq() *Seq {
	return NewSeq(NewLiteral(nil, true))
}

func (e *Extractor) extract(u *ast.Unit) *Seq {
	switch u.Kind() {
	case ast.KindExpression, ast.KindGroup:
		return e.extractConcat(u.Children())
	case ast.KindAlternation:
		return e.extractAlternation(u.Children())
	case ast.KindBackreference:
		return unknownSeq()
	case ast.KindAnchor:
		// Zero-width: contributes no bytes.
		return exactEmptySeq()
	case ast.KindMatch:
		return e.extractMatch(u)
	case ast.KindQuantified:
		return e.extractQuantified(u)
	default:
		return unknownSeq()
	}
}

func (e *Extractor) extractMatch(u *ast.Unit) *Seq {
	switch u.Match() {
	case ast.MatchCharacter:
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], u.Rune())
		b := make([]byte, n)
		copy(b, buf[:n])
		return NewSeq(NewLiteral(b, true))
	case ast.MatchCharacterSet:
		set := u.Set()
		size := set.Size()
		if size <= 0 || size > e.config.MaxClassSize {
			return unknownSeq()
		}
		lits := make([]Literal, 0, size)
		for _, r := range set.Runes() {
			var buf [utf8.UTFMax]byte
			n := utf8.EncodeRune(buf[:], r)
			b := make([]byte, n)
			copy(b, buf[:n])
			lits = append(lits, NewLiteral(b, true))
		}
		return NewSeq(lits...)
	default:
		return unknownSeq()
	}
}

// extractConcat folds the children left to right, cross-multiplying each
// child's alternatives onto the accumulated prefixes. Once a prefix is
// incomplete it can no longer be extended.
func (e *Extractor) extractConcat(children []*ast.Unit) *Seq {
	acc := exactEmptySeq()
	for _, child := range children {
		if allIncomplete(acc) {
			break
		}
		acc = e.cross(acc, e.extract(child))
	}
	return acc
}

func allIncomplete(s *Seq) bool {
	for i := 0; i < s.Len(); i++ {
		if s.Get(i).Complete {
			return false
		}
	}
	return true
}

// cross concatenates every complete literal of a with every literal of b.
// Incomplete literals of a pass through unchanged.
func (e *Extractor) cross(a, b *Seq) *Seq {
	var lits []Literal
	for i := 0; i < a.Len(); i++ {
		al := a.Get(i)
		if !al.Complete {
			lits = append(lits, al)
			continue
		}
		for j := 0; j < b.Len(); j++ {
			bl := b.Get(j)
			combined := make([]byte, 0, len(al.Bytes)+len(bl.Bytes))
			combined = append(combined, al.Bytes...)
			combined = append(combined, bl.Bytes...)
			complete := bl.Complete
			if len(combined) > e.config.MaxLiteralLen {
				combined = combined[:e.config.MaxLiteralLen]
				complete = false
			}
			lits = append(lits, NewLiteral(combined, complete))
			if len(lits) > e.config.MaxLiterals {
				return unknownSeq()
			}
		}
	}
	return NewSeq(lits...)
}

func (e *Extractor) extractAlternation(children []*ast.Unit) *Seq {
	var lits []Literal
	for _, child := range children {
		branch := e.extract(child)
		for i := 0; i < branch.Len(); i++ {
			lits = append(lits, branch.Get(i))
			if len(lits) > e.config.MaxLiterals {
				return unknownSeq()
			}
		}
	}
	if len(lits) == 0 {
		return unknownSeq()
	}
	return NewSeq(lits...)
}

func (e *Extractor) extractQuantified(u *ast.Unit) *Seq {
	q := u.Quantifier()
	child := u.Child()
	switch q.Kind {
	case ast.QuantZeroOrMore:
		return unknownSeq()
	case ast.QuantOneOrMore:
		// One mandatory copy; whatever follows is unknown.
		return markIncomplete(e.extract(child))
	case ast.QuantZeroOrOne:
		branch := e.extract(child)
		lits := []Literal{NewLiteral(nil, true)}
		for i := 0; i < branch.Len(); i++ {
			lits = append(lits, branch.Get(i))
			if len(lits) > e.config.MaxLiterals {
				return unknownSeq()
			}
		}
		return NewSeq(lits...)
	case ast.QuantRange:
		if q.Min == 0 {
			if q.Max == 0 {
				return exactEmptySeq()
			}
			return unknownSeq()
		}
		acc := exactEmptySeq()
		for i := 0; i < q.Min; i++ {
			acc = e.cross(acc, e.extract(child))
		}
		if q.Max == q.Min {
			return acc
		}
		return markIncomplete(acc)
	default:
		return unknownSeq()
	}
}

// markIncomplete demotes every literal of the sequence to a prefix.
func markIncomplete(s *Seq) *Seq {
	lits := make([]Literal, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		l := s.Get(i)
		lits = append(lits, NewLiteral(l.Bytes, false))
	}
	return NewSeq(lits...)
}
