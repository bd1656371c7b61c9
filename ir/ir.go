package ir

import "shale/report"

// Node represents a shell IR node.  The IR is a tree: every node is owned
// exclusively by its parent, so passes may rebuild subtrees freely without
// aliasing concerns.
type Node interface {
	// Span returns the source span the node was lowered from.  May be nil
	// for synthesized nodes.
	Span() *report.TextSpan

	// node distinguishes IR nodes from other values.
	node()
}

// The base struct embedded in all IR nodes.
type NodeBase struct {
	// The span of the source construct this node was lowered from.
	span *report.TextSpan
}

// NewNodeBase creates a new node base with the given span.
func NewNodeBase(span *report.TextSpan) NodeBase {
	return NodeBase{span: span}
}

func (nb NodeBase) Span() *report.TextSpan {
	return nb.span
}

func (nb NodeBase) node() {}

/* -------------------------------------------------------------------------- */

// Let represents a shell variable assignment: `name=value`.
type Let struct {
	NodeBase

	// The shell-level name being assigned.
	Name string

	// The value being assigned.
	Value Value
}

// Command represents a single shell command invocation.  Commands double as
// the payload of command substitutions: a Command reached through a
// Substitution value is emitted as `$(...)` rather than as a statement.
type Command struct {
	NodeBase

	// The program name.  Empty for a dynamic invocation, in which case the
	// first argument is emitted in command position.  The verifier treats
	// dynamic invocations with non-literal heads as injection risks.
	Program string

	// The ordered command arguments.
	Args []Value
}

// If represents a conditional: the condition is a value in test position.
type If struct {
	NodeBase

	// The branch condition.
	Cond Value

	// The then-branch of the conditional.
	Then Node

	// The else-branch of the conditional, or nil.
	Else Node
}

// Sequence represents an ordered sequence of IR nodes.
type Sequence struct {
	NodeBase

	// The nodes of the sequence in execution order.
	Nodes []Node
}

// Exit represents script termination with a fixed exit code.
type Exit struct {
	NodeBase

	// The exit code.
	Code int
}

// Noop represents the absence of an operation.  Lowering emits it for
// constructs with no runtime behavior; the optimizer prunes it.
type Noop struct {
	NodeBase
}
