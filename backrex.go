// Package backrex compiles parsed regular-expression trees into
// finite-state machines for backtracking matchers.
//
// backrex sits between a pattern parser and a matching engine: it takes
// an already-parsed AST (see the ast package) and produces an executable
// state graph (see the fsm package) plus the capture-group table a
// matcher needs to attribute captured text. It performs no lexing and no
// matching itself.
//
// Basic usage:
//
//	// AST for the pattern "(a)\1", normally produced by a parser
//	tree := ast.New(ast.NewExpression(ast.NewSpan(0, 5),
//	    ast.NewGroup(ast.NewSpan(0, 3), 1, true,
//	        ast.NewCharacter(ast.NewSpan(1, 2), 'a')),
//	    ast.NewBackreference(ast.NewSpan(3, 5), 1),
//	), `(a)\1`)
//
//	re, _, err := backrex.Compile(tree, backrex.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(re.Machine().Len())
//
// Diagnostics:
//
//	fmt.Print(ast.Describe(tree))             // indented source tree
//	_, syms, _ := backrex.CompileWithConfig(  // state -> AST unit table
//	    tree, backrex.Options{}, compiler.Config{Diagnostics: true})
//	fmt.Println(syms.Description(re.Machine().Start()))
//
// Prefiltering:
//
//	pf, _ := prefilter.FromAST(tree)  // nil for most patterns
//	if pf != nil {
//	    next := pf.Find(haystack, 0)  // candidate position for the matcher
//	    _ = next
//	}
package backrex

import (
	"github.com/coregx/backrex/ast"
	"github.com/coregx/backrex/compiler"
	"github.com/coregx/backrex/fsm"
)

// Options re-exports the compiler's pattern-level flags.
type Options = compiler.Options

// CompiledRegex re-exports the compiler's output type.
type CompiledRegex = compiler.CompiledRegex

// Compile translates a pattern AST with default compiler configuration.
// The returned symbol table is empty; use CompileWithConfig with
// Diagnostics set to populate it.
func Compile(tree *ast.AST, opts Options) (*CompiledRegex, *fsm.Symbols, error) {
	return compiler.Compile(tree, opts)
}

// CompileWithConfig translates a pattern AST with explicit compiler
// configuration.
func CompileWithConfig(tree *ast.AST, opts Options, config compiler.Config) (*CompiledRegex, *fsm.Symbols, error) {
	return compiler.NewCompiler(config).Compile(tree, opts)
}

// MustCompile is like Compile but panics on error.
// Useful for trees known to be valid at program start.
func MustCompile(tree *ast.AST, opts Options) *CompiledRegex {
	re, _, err := Compile(tree, opts)
	if err != nil {
		panic("backrex: Compile: " + err.Error())
	}
	return re
}
