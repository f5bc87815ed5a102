package ast

import (
	"fmt"
	"strings"
)

// Describe renders the tree as one line per unit: two spaces of
// indentation per nesting level, the unit's variant label, the quoted
// source substring, and the raw offset interval.
//
// The output is for developers and tooling only; nothing in compilation
// or matching depends on it.
//
// Example output for the pattern "(a|b)+":
//
//	Expression "(a|b)+" [0, 6)
//	  Quantified + "(a|b)+" [0, 6)
//	    Group #1 "(a|b)" [0, 5)
//	      Alternation "a|b" [1, 4)
//	        Character 'a' "a" [1, 2)
//	        Character 'b' "b" [3, 4)
func Describe(tree *AST) string {
	if tree == nil || tree.Root() == nil {
		return ""
	}

	var sb strings.Builder
	Visit(tree.Root(), func(u *Unit, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(u.String())
		sb.WriteString(fmt.Sprintf(" %q %s", tree.Source(u.Span()), u.Span()))
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}
