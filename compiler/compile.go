package compiler

import (
	"fmt"

	"github.com/coregx/backrex/ast"
	"github.com/coregx/backrex/fsm"
)

// Options are the pattern-author-facing compilation flags.
// Absent flags default to off.
type Options struct {
	// CaseInsensitive folds case for literal-character and character-set
	// matches
	CaseInsensitive bool

	// DotMatchesLineSeparators makes the any-character match consume
	// newlines, and disables the trailing-newline exemption of the \Z
	// anchor
	DotMatchesLineSeparators bool
}

// Config configures compiler behavior beyond the per-pattern Options
type Config struct {
	// Diagnostics enables the symbol table mapping machine states back
	// to the AST units that produced them. Purely descriptive; off by
	// default.
	Diagnostics bool

	// MaxNestingDepth limits translation recursion to prevent stack
	// overflow on adversarial patterns. Default: 100.
	MaxNestingDepth int
}

// DefaultConfig returns a compiler configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Diagnostics:     false,
		MaxNestingDepth: 100,
	}
}

// Compiler translates pattern ASTs into backtracking machines. It holds
// only configuration: all per-compilation state is allocated per call, so
// one Compiler may be shared and reused freely, including concurrently.
type Compiler struct {
	config Config
}

// NewCompiler creates a compiler with the given configuration
func NewCompiler(config Config) *Compiler {
	if config.MaxNestingDepth == 0 {
		config.MaxNestingDepth = 100
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultConfig())
}

// CaptureGroup records the machine boundary states of one capturing
// group. The matcher uses the (Start, End) pair to attribute matched text
// to the user-visible capture index.
type CaptureGroup struct {
	Index int
	Start fsm.StateID
	End   fsm.StateID
}

// CompiledRegex is the compiler's output: the machine plus the ordered
// capture-group table. Immutable once returned and safe for concurrent
// reads.
type CompiledRegex struct {
	machine       *fsm.Machine
	captureGroups []CaptureGroup
}

// Machine returns the compiled state machine
func (r *CompiledRegex) Machine() *fsm.Machine {
	return r.machine
}

// CaptureGroups returns the capture groups in pre-order (source order).
// A copy is returned to keep the compiled value immutable.
func (r *CompiledRegex) CaptureGroups() []CaptureGroup {
	groups := make([]CaptureGroup, len(r.captureGroups))
	copy(groups, r.captureGroups)
	return groups
}

// backreference is the deferred validation record for one \N construct.
type backreference struct {
	index  int
	source ast.Span
}

// compilation is the per-call state: builder arena, accumulator tables
// and recursion depth. A fresh value is created for every Compile call
// and discarded afterwards, which is what makes the Compiler re-entrant.
type compilation struct {
	config  Config
	opts    Options
	builder *fsm.Builder

	captures []CaptureGroup
	backrefs []backreference
	symbols  *fsm.Symbols
	depth    int
}

// Compile translates the AST using a compiler with default configuration.
func Compile(tree *ast.AST, opts Options) (*CompiledRegex, *fsm.Symbols, error) {
	return NewDefaultCompiler().Compile(tree, opts)
}

// Compile translates the AST into a machine. On success it returns the
// compiled regex and the symbol table (empty unless Diagnostics is set);
// on an invalid backreference it returns a *CompileError carrying the
// offending token's offset.
//
// Compilation is deterministic: identical (AST, Options) inputs always
// produce structurally identical output or an identical error.
func (c *Compiler) Compile(tree *ast.AST, opts Options) (*CompiledRegex, *fsm.Symbols, error) {
	comp := &compilation{
		config:  c.config,
		opts:    opts,
		builder: fsm.NewBuilder(),
		symbols: fsm.NewSymbols(),
	}

	root, err := comp.compile(tree.Root())
	if err != nil {
		return nil, nil, err
	}

	machine, err := comp.builder.Machine(root)
	if err != nil {
		return nil, nil, err
	}

	if err := comp.validateBackreferences(); err != nil {
		return nil, nil, err
	}

	return &CompiledRegex{
		machine:       machine,
		captureGroups: comp.captures,
	}, comp.symbols, nil
}

// compile translates one unit and, in diagnostic mode, records the
// resulting subgraph's boundary states against it. Recording happens for
// every translated unit, including the independent copies produced by
// bounded-quantifier expansion. When composition reuses a child boundary
// state as its own, the enclosing unit's record wins.
func (comp *compilation) compile(u *ast.Unit) (fsm.Subgraph, error) {
	comp.depth++
	if comp.depth > comp.config.MaxNestingDepth {
		return fsm.Subgraph{}, &CompileError{
			Message: fmt.Sprintf("pattern nesting exceeds %d levels", comp.config.MaxNestingDepth),
			Offset:  u.Span().Start,
			Err:     ErrTooDeep,
		}
	}
	defer func() { comp.depth-- }()

	sub, err := comp.compileUnit(u)
	if err != nil {
		return fsm.Subgraph{}, err
	}

	if comp.config.Diagnostics {
		comp.symbols.Record(sub.Start, u, false)
		comp.symbols.Record(sub.End, u, true)
	}
	return sub, nil
}

// compileUnit dispatches on the unit's kind, one translation rule per
// variant. The set of kinds is closed; a value outside it means the AST
// producer and this compiler disagree about the contract, which is not a
// pattern error and must not surface on the user error channel.
func (comp *compilation) compileUnit(u *ast.Unit) (fsm.Subgraph, error) {
	switch u.Kind() {
	case ast.KindExpression:
		parts, err := comp.compileChildren(u)
		if err != nil {
			return fsm.Subgraph{}, err
		}
		return comp.builder.Concatenate(parts...), nil
	case ast.KindGroup:
		return comp.compileGroup(u)
	case ast.KindAlternation:
		parts, err := comp.compileChildren(u)
		if err != nil {
			return fsm.Subgraph{}, err
		}
		return comp.builder.Alternate(parts...), nil
	case ast.KindBackreference:
		comp.backrefs = append(comp.backrefs, backreference{
			index:  u.Index(),
			source: u.Span(),
		})
		return comp.builder.Backreference(u.Index()), nil
	case ast.KindAnchor:
		return comp.compileAnchor(u), nil
	case ast.KindMatch:
		return comp.compileMatch(u), nil
	case ast.KindQuantified:
		return comp.compileQuantified(u)
	default:
		panic(fmt.Sprintf("compiler: unrecognized AST unit kind %d", u.Kind()))
	}
}

// compileChildren translates an ordered child list in order.
func (comp *compilation) compileChildren(u *ast.Unit) ([]fsm.Subgraph, error) {
	children := u.Children()
	parts := make([]fsm.Subgraph, 0, len(children))
	for _, child := range children {
		sub, err := comp.compile(child)
		if err != nil {
			return nil, err
		}
		parts = append(parts, sub)
	}
	return parts, nil
}

// compileGroup translates a parenthesized sub-expression. For capturing
// groups the table slot is reserved before the children are translated,
// so nested capturing groups land after their parent and the table order
// equals the AST's pre-order, which is source order.
func (comp *compilation) compileGroup(u *ast.Unit) (fsm.Subgraph, error) {
	slot := -1
	if u.IsCapturing() {
		slot = len(comp.captures)
		comp.captures = append(comp.captures, CaptureGroup{
			Index: u.Index(),
			Start: fsm.InvalidState,
			End:   fsm.InvalidState,
		})
	}

	parts, err := comp.compileChildren(u)
	if err != nil {
		return fsm.Subgraph{}, err
	}
	sub := comp.builder.Group(comp.builder.Concatenate(parts...))

	if slot >= 0 {
		comp.captures[slot].Start = sub.Start
		comp.captures[slot].End = sub.End
	}
	return sub, nil
}

// compileAnchor maps an assertion one-to-one onto its machine primitive.
// With DotMatchesLineSeparators set, \Z loses its trailing-newline
// exemption and behaves as \z.
func (comp *compilation) compileAnchor(u *ast.Unit) fsm.Subgraph {
	kind := u.Anchor()
	if kind == ast.AnchorEndOfStringOnlyNotNewline && comp.opts.DotMatchesLineSeparators {
		kind = ast.AnchorEndOfStringOnly
	}
	return comp.builder.Anchor(kind)
}

// compileMatch translates a terminal consuming construct, parameterized
// by the compile options.
func (comp *compilation) compileMatch(u *ast.Unit) fsm.Subgraph {
	switch u.Match() {
	case ast.MatchCharacter:
		return comp.builder.Character(u.Rune(), comp.opts.CaseInsensitive)
	case ast.MatchAnyCharacter:
		includingNewline := u.IncludesNewline() || comp.opts.DotMatchesLineSeparators
		return comp.builder.AnyCharacter(includingNewline)
	case ast.MatchCharacterSet:
		return comp.builder.CharacterSet(u.Set(), comp.opts.CaseInsensitive)
	default:
		panic(fmt.Sprintf("compiler: unrecognized match kind %d", u.Match()))
	}
}

// compileQuantified dispatches on the quantifier kind. The simple
// operators map to machine primitives directly; bounded ranges are
// expanded.
func (comp *compilation) compileQuantified(u *ast.Unit) (fsm.Subgraph, error) {
	q := u.Quantifier()
	switch q.Kind {
	case ast.QuantZeroOrMore:
		inner, err := comp.compile(u.Child())
		if err != nil {
			return fsm.Subgraph{}, err
		}
		return comp.builder.ZeroOrMore(inner, u.IsLazy()), nil
	case ast.QuantOneOrMore:
		inner, err := comp.compile(u.Child())
		if err != nil {
			return fsm.Subgraph{}, err
		}
		return comp.builder.OneOrMore(inner, u.IsLazy()), nil
	case ast.QuantZeroOrOne:
		inner, err := comp.compile(u.Child())
		if err != nil {
			return fsm.Subgraph{}, err
		}
		return comp.builder.ZeroOrOne(inner, u.IsLazy()), nil
	case ast.QuantRange:
		return comp.expandRange(u)
	default:
		panic(fmt.Sprintf("compiler: unrecognized quantifier kind %d", q.Kind))
	}
}

// expandRange expands a bounded {lower,upper} quantifier.
//
// The mandatory prefix is lower independently translated copies of the
// child, concatenated. For an unbounded upper the suffix is a single
// zero-or-more around one further copy. For a finite upper the suffix
// folds upper-lower further copies from the innermost outward into the
// nested form x(x(x)?)?, each level wrapped as zeroOrOne(group(...)).
// The group wrapper gives every optional level its own boundary states,
// which is what lets a memoizing backtracker bound re-exploration when a
// partial match unwinds.
//
// Each copy re-invokes translation on the same subtree, so every copy
// owns distinct states and, in diagnostic mode, its own symbol entries.
func (comp *compilation) expandRange(u *ast.Unit) (fsm.Subgraph, error) {
	q := u.Quantifier()
	lazy := u.IsLazy()
	child := u.Child()

	parts := make([]fsm.Subgraph, 0, q.Min+1)
	for i := 0; i < q.Min; i++ {
		sub, err := comp.compile(child)
		if err != nil {
			return fsm.Subgraph{}, err
		}
		parts = append(parts, sub)
	}

	var suffix fsm.Subgraph
	if q.Max == ast.UnboundedMax {
		inner, err := comp.compile(child)
		if err != nil {
			return fsm.Subgraph{}, err
		}
		suffix = comp.builder.ZeroOrMore(inner, lazy)
	} else {
		suffix = comp.builder.Empty()
		for i := 0; i < q.Max-q.Min; i++ {
			sub, err := comp.compile(child)
			if err != nil {
				return fsm.Subgraph{}, err
			}
			wrapped := comp.builder.Group(comp.builder.Concatenate(sub, suffix))
			suffix = comp.builder.ZeroOrOne(wrapped, lazy)
		}
	}

	parts = append(parts, suffix)
	return comp.builder.Concatenate(parts...), nil
}

// validateBackreferences runs once after the whole tree is translated.
// The check is existence-only over the entire capture table: it does not
// require the referenced group to precede the backreference in source
// order, nor forbid a group referencing itself. Whether forward and self
// references should fail at compile time is deliberately left to the
// matcher, which may treat an unresolved group as a non-match.
func (comp *compilation) validateBackreferences() error {
	for _, ref := range comp.backrefs {
		found := false
		for _, g := range comp.captures {
			if g.Index == ref.index {
				found = true
				break
			}
		}
		if !found {
			return &CompileError{
				Message: fmt.Sprintf("pattern references non-existent capture group %d", ref.index),
				Offset:  ref.source.Start,
				Err:     ErrNoSuchGroup,
			}
		}
	}
	return nil
}
