package fsm

import (
	"fmt"

	"github.com/coregx/backrex/ast"
)

// Subgraph is a compiled fragment: every constructor returns exactly one
// entry state and one exit state. The states are owned by the Builder that
// produced them.
type Subgraph struct {
	Start StateID
	End   StateID
}

// Builder constructs machines from composable subgraphs. Each constructor
// allocates states in the builder's arena and wires their transitions;
// transition order encodes the backtracking trial order.
//
// A Builder is single-writer and not safe for concurrent use; the Machine
// it produces is.
type Builder struct {
	states []State
}

// NewBuilder creates a new machine builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new machine builder with specified
// initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
	}
}

// addState allocates a fresh state and returns its ID.
func (b *Builder) addState() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id})
	return id
}

// addTransition appends a transition to the given state's ordered list.
func (b *Builder) addTransition(from StateID, t Transition) {
	b.states[from].transitions = append(b.states[from].transitions, t)
}

// epsilon wires a zero-width transition from one state to another.
func (b *Builder) epsilon(from, to StateID) {
	b.addTransition(from, Transition{to: to, kind: TransEpsilon})
}

// Empty creates a subgraph that matches the empty string.
func (b *Builder) Empty() Subgraph {
	start := b.addState()
	end := b.addState()
	b.epsilon(start, end)
	return Subgraph{Start: start, End: end}
}

// Character creates a subgraph consuming one literal character.
func (b *Builder) Character(r rune, caseInsensitive bool) Subgraph {
	start := b.addState()
	end := b.addState()
	b.addTransition(start, Transition{
		to:              end,
		kind:            TransRune,
		r:               r,
		caseInsensitive: caseInsensitive,
	})
	return Subgraph{Start: start, End: end}
}

// AnyCharacter creates a subgraph consuming any one character, newline
// included only when requested.
func (b *Builder) AnyCharacter(includingNewline bool) Subgraph {
	start := b.addState()
	end := b.addState()
	b.addTransition(start, Transition{
		to:               end,
		kind:             TransRuneAny,
		includingNewline: includingNewline,
	})
	return Subgraph{Start: start, End: end}
}

// CharacterSet creates a subgraph consuming one character from the set.
func (b *Builder) CharacterSet(set ast.CharSet, caseInsensitive bool) Subgraph {
	start := b.addState()
	end := b.addState()
	b.addTransition(start, Transition{
		to:              end,
		kind:            TransRuneSet,
		set:             set,
		caseInsensitive: caseInsensitive,
	})
	return Subgraph{Start: start, End: end}
}

// Backreference creates a subgraph consuming whatever text the capture
// group with the given index holds at match time.
func (b *Builder) Backreference(index int) Subgraph {
	start := b.addState()
	end := b.addState()
	b.addTransition(start, Transition{
		to:    end,
		kind:  TransBackreference,
		group: index,
	})
	return Subgraph{Start: start, End: end}
}

// Anchor creates a zero-width subgraph asserting the given position
// condition.
func (b *Builder) Anchor(kind ast.AnchorKind) Subgraph {
	start := b.addState()
	end := b.addState()
	b.addTransition(start, Transition{
		to:   end,
		kind: TransLook,
		look: kind,
	})
	return Subgraph{Start: start, End: end}
}

// Concatenate chains subgraphs in order, epsilon-linking each exit to the
// next entry. With no parts it degenerates to Empty.
func (b *Builder) Concatenate(parts ...Subgraph) Subgraph {
	if len(parts) == 0 {
		return b.Empty()
	}
	for i := 0; i < len(parts)-1; i++ {
		b.epsilon(parts[i].End, parts[i+1].Start)
	}
	return Subgraph{Start: parts[0].Start, End: parts[len(parts)-1].End}
}

// Alternate creates an ordered choice between subgraphs. The entry state
// offers one epsilon per branch in argument order, which fixes the
// matcher's branch-trial precedence.
func (b *Builder) Alternate(parts ...Subgraph) Subgraph {
	if len(parts) == 0 {
		return b.Empty()
	}
	start := b.addState()
	end := b.addState()
	for _, p := range parts {
		b.epsilon(start, p.Start)
		b.epsilon(p.End, end)
	}
	return Subgraph{Start: start, End: end}
}

// Group wraps a subgraph in a fresh entry/exit pair. The wrapper states
// give the inner fragment a stable boundary: capture groups record them,
// and a memoizing backtracker can key its cache on them.
func (b *Builder) Group(inner Subgraph) Subgraph {
	start := b.addState()
	end := b.addState()
	b.epsilon(start, inner.Start)
	b.epsilon(inner.End, end)
	return Subgraph{Start: start, End: end}
}

// ZeroOrMore repeats the inner subgraph zero or more times. Greedy order
// offers the entering epsilon before the exit; lazy reverses that. After
// each iteration control returns to the entry state, re-offering the same
// ordered choice.
func (b *Builder) ZeroOrMore(inner Subgraph, lazy bool) Subgraph {
	start := b.addState()
	end := b.addState()
	if lazy {
		b.epsilon(start, end)
		b.epsilon(start, inner.Start)
	} else {
		b.epsilon(start, inner.Start)
		b.epsilon(start, end)
	}
	b.epsilon(inner.End, start)
	return Subgraph{Start: start, End: end}
}

// OneOrMore repeats the inner subgraph at least once. The repeat-or-exit
// choice sits on the inner exit, ordered by laziness.
func (b *Builder) OneOrMore(inner Subgraph, lazy bool) Subgraph {
	start := b.addState()
	end := b.addState()
	b.epsilon(start, inner.Start)
	if lazy {
		b.epsilon(inner.End, end)
		b.epsilon(inner.End, inner.Start)
	} else {
		b.epsilon(inner.End, inner.Start)
		b.epsilon(inner.End, end)
	}
	return Subgraph{Start: start, End: end}
}

// ZeroOrOne makes the inner subgraph optional, take-or-skip ordered by
// laziness.
func (b *Builder) ZeroOrOne(inner Subgraph, lazy bool) Subgraph {
	start := b.addState()
	end := b.addState()
	if lazy {
		b.epsilon(start, end)
		b.epsilon(start, inner.Start)
	} else {
		b.epsilon(start, inner.Start)
		b.epsilon(start, end)
	}
	b.epsilon(inner.End, end)
	return Subgraph{Start: start, End: end}
}

// Len returns the current number of allocated states
func (b *Builder) Len() int {
	return len(b.states)
}

// Validate checks that every transition targets a state inside the arena.
func (b *Builder) Validate() error {
	for i := range b.states {
		for j, t := range b.states[i].transitions {
			if t.to == InvalidState || int(t.to) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("transition %d targets invalid state %d", j, t.to),
					StateID: StateID(i),
				}
			}
		}
	}
	return nil
}

// Machine finalizes the arena into an immutable machine rooted at the
// given subgraph. The builder must not be used after this call.
func (b *Builder) Machine(root Subgraph) (*Machine, error) {
	if int(root.Start) >= len(b.states) || int(root.End) >= len(b.states) {
		return nil, &BuildError{Message: "root subgraph out of bounds", StateID: root.Start}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &Machine{
		states: b.states,
		start:  root.Start,
		end:    root.End,
	}, nil
}
