package ast

// Visitor is the callback invoked by Visit for every unit in pre-order.
// depth is the nesting level, 0 for the root. Returning false prunes the
// traversal below the current unit; its siblings are still visited.
type Visitor func(unit *Unit, depth int) bool

// visitFrame is one entry of the explicit traversal stack.
type visitFrame struct {
	unit  *Unit
	depth int
}

// Visit performs a depth-first pre-order traversal of the tree rooted at
// the given unit. The traversal is iterative with an explicit work stack,
// so arbitrarily deep trees cannot exhaust the goroutine stack. It keeps
// no state between calls and never mutates the tree.
//
// Example:
//
//	ast.Visit(root, func(u *ast.Unit, depth int) bool {
//	    fmt.Printf("%*s%s\n", depth*2, "", u)
//	    return true
//	})
func Visit(root *Unit, fn Visitor) {
	if root == nil {
		return
	}

	stack := make([]visitFrame, 0, 16)
	stack = append(stack, visitFrame{unit: root, depth: 0})

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(frame.unit, frame.depth) {
			continue
		}

		// Push children in reverse so the leftmost child is visited first.
		children := frame.unit.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, visitFrame{unit: children[i], depth: frame.depth + 1})
		}
	}
}
