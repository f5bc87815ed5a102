package backrex_test

import (
	"strings"
	"testing"

	"github.com/coregx/backrex"
	"github.com/coregx/backrex/ast"
	"github.com/coregx/backrex/compiler"
)

// backrefTree builds the AST for "(a)\1".
func backrefTree() *ast.AST {
	return ast.New(ast.NewExpression(ast.NewSpan(0, 5),
		ast.NewGroup(ast.NewSpan(0, 3), 1, true,
			ast.NewCharacter(ast.NewSpan(1, 2), 'a')),
		ast.NewBackreference(ast.NewSpan(3, 5), 1),
	), `(a)\1`)
}

// TestCompile tests the facade end to end
func TestCompile(t *testing.T) {
	re, syms, err := backrex.Compile(backrefTree(), backrex.Options{})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if got := len(re.CaptureGroups()); got != 1 {
		t.Errorf("capture group count = %d, want 1", got)
	}
	if re.Machine().Len() == 0 {
		t.Error("machine has no states")
	}
	if syms.Len() != 0 {
		t.Errorf("symbols Len() = %d, want 0 without diagnostics", syms.Len())
	}
}

// TestCompileWithConfig tests the diagnostics toggle through the facade
func TestCompileWithConfig(t *testing.T) {
	re, syms, err := backrex.CompileWithConfig(backrefTree(), backrex.Options{}, compiler.Config{Diagnostics: true})
	if err != nil {
		t.Fatalf("CompileWithConfig failed: %v", err)
	}
	if syms.Len() == 0 {
		t.Fatal("diagnostics requested but symbol table is empty")
	}

	desc := syms.Description(re.Machine().Start())
	if !strings.Contains(desc, "Start") {
		t.Errorf("Description(start) = %q, want a Start symbol", desc)
	}
}

// TestMustCompile tests panic behavior on an invalid tree
func TestMustCompile(t *testing.T) {
	re := backrex.MustCompile(backrefTree(), backrex.Options{})
	if re == nil {
		t.Fatal("MustCompile returned nil")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustCompile should panic on a dangling backreference")
		}
	}()
	bad := ast.New(ast.NewBackreference(ast.NewSpan(0, 2), 1), `\1`)
	backrex.MustCompile(bad, backrex.Options{})
}

// TestConcurrentCompile tests that independent compilations of the same
// tree share no state
func TestConcurrentCompile(t *testing.T) {
	tree := backrefTree()
	done := make(chan int, 8)

	for i := 0; i < 8; i++ {
		go func() {
			re, _, err := backrex.Compile(tree, backrex.Options{})
			if err != nil {
				done <- -1
				return
			}
			done <- re.Machine().Len()
		}()
	}

	first := <-done
	for i := 1; i < 8; i++ {
		if n := <-done; n != first {
			t.Errorf("compilation %d produced %d states, want %d", i, n, first)
		}
	}
	if first <= 0 {
		t.Error("concurrent compilation failed")
	}
}
