package optimize

import (
	"shale/ir"
)

// Optimize rewrites the tree rooted at node by folding constant expressions
// and eliminating dead code.  When enabled is false the input is returned
// unchanged.  The pass is semantics-preserving and idempotent: running it a
// second time produces the same tree.
func Optimize(node ir.Node, enabled bool) ir.Node {
	if !enabled {
		return node
	}

	return optimizeNode(node)
}

// optimizeNode rewrites a single tree node.
func optimizeNode(node ir.Node) ir.Node {
	switch v := node.(type) {
	case *ir.Let:
		return &ir.Let{NodeBase: ir.NewNodeBase(v.Span()), Name: v.Name, Value: foldValue(v.Value)}
	case *ir.Command:
		return foldCommand(v)
	case *ir.If:
		return optimizeIf(v)
	case *ir.Sequence:
		return optimizeSequence(v)
	default:
		// Exit and Noop have nothing to rewrite.
		return node
	}
}

// optimizeIf rewrites a conditional.  A condition folded to a constant
// selects its branch statically; the untaken branch is dropped.
func optimizeIf(stmt *ir.If) ir.Node {
	cond := foldValue(stmt.Cond)

	if lit, ok := cond.(*ir.Literal); ok && (lit.Text == "true" || lit.Text == "false") {
		if lit.Text == "true" {
			return optimizeNode(stmt.Then)
		}

		if stmt.Else == nil {
			return &ir.Noop{NodeBase: ir.NewNodeBase(stmt.Span())}
		}

		return optimizeNode(stmt.Else)
	}

	opt := &ir.If{
		NodeBase: ir.NewNodeBase(stmt.Span()),
		Cond:     cond,
		Then:     optimizeNode(stmt.Then),
	}

	if stmt.Else != nil {
		opt.Else = optimizeNode(stmt.Else)
	}

	return opt
}

// optimizeSequence rewrites a sequence: children are optimized, no-ops are
// pruned, nested sequences are flattened, and anything after an unconditional
// exit is dropped as unreachable.
func optimizeSequence(seq *ir.Sequence) ir.Node {
	var nodes []ir.Node

	for _, child := range seq.Nodes {
		opt := optimizeNode(child)

		switch v := opt.(type) {
		case *ir.Noop:
			continue
		case *ir.Sequence:
			nodes = append(nodes, v.Nodes...)
		default:
			nodes = append(nodes, opt)
		}

		// An exit ends the script unconditionally, so the tail of the
		// sequence is unreachable.  A flattened inner sequence may end in
		// one as well.
		if _, ok := nodes[len(nodes)-1].(*ir.Exit); ok {
			break
		}
	}

	switch len(nodes) {
	case 0:
		return &ir.Noop{NodeBase: ir.NewNodeBase(seq.Span())}
	case 1:
		return nodes[0]
	default:
		return &ir.Sequence{NodeBase: ir.NewNodeBase(seq.Span()), Nodes: nodes}
	}
}
