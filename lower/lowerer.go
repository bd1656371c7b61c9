package lower

import (
	"fmt"

	"shale/ast"
	"shale/common"
	"shale/ir"
	"shale/report"
	"shale/validate"
)

// Lowerer is the construct responsible for converting a validated unit into
// shell IR.  The entry function's body becomes the program's top-level
// sequence; user-defined calls are inlined at their call sites, which always
// terminates because the validated call graph is acyclic.
type Lowerer struct {
	// The unit being lowered.
	unit *validate.Unit

	// The target dialect.  Lowering is dialect-sensitive only for `echo`.
	dialect common.Dialect

	// The stack of local variable scopes mapping source names to bindings.
	// The stack is replaced wholesale at inline boundaries: an inlined body
	// must not resolve the caller's locals.
	scopes []map[string]binding

	// The set of shell-level names already handed out.  Shadowed re-uses of
	// a source name are renamed so the emitted assignments cannot clobber
	// the outer binding.
	usedNames map[string]bool

	// The counter used to give each inlined call site a unique name prefix.
	inlineCounter int

	// IR nodes synthesized while lowering an expression (inlined function
	// bodies) which must execute before the statement under construction.
	pending []ir.Node

	// Whether the entry function is being lowered (returns become exits).
	entry bool

	// The shell variable receiving the current frame's return value, or ""
	// when the value is unused.
	retVar string
}

// binding records the shell-level name and source type of a local binding.
type binding struct {
	shellName string
	typ       ast.Type
}

// Lower converts a validated unit into shell IR.  Lowering is deterministic
// and total over any unit that passed validation: residual unsupported
// shapes indicate a validator defect and surface as internal errors.
func Lower(unit *validate.Unit, dialect common.Dialect) (root ir.Node, err error) {
	defer report.CatchErrors(&err)

	l := &Lowerer{
		unit:      unit,
		dialect:   dialect,
		usedNames: make(map[string]bool),
		entry:     true,
	}

	l.pushScope()
	nodes := l.lowerBlock(unit.Entry.Body)
	l.popScope()

	return &ir.Sequence{
		NodeBase: ir.NewNodeBase(unit.Entry.Span()),
		Nodes:    nodes,
	}, nil
}

// -----------------------------------------------------------------------------

// lowerBlock lowers a statement block, draining the pending inline sequences
// ahead of each statement that produced them.
func (l *Lowerer) lowerBlock(stmts []ast.Stmt) []ir.Node {
	var nodes []ir.Node

	for _, stmt := range stmts {
		node := l.lowerStmt(stmt)
		nodes = append(nodes, l.takePending()...)
		nodes = append(nodes, node)
	}

	return nodes
}

// takePending returns and clears the pending inline sequences.
func (l *Lowerer) takePending() []ir.Node {
	pending := l.pending
	l.pending = nil
	return pending
}

// -----------------------------------------------------------------------------

// inlineCall inlines a call to a user-defined function at its call site.  If
// wantValue is set, the produced sequence is queued as pending and the
// returned value references the frame's return variable; otherwise the
// sequence itself is returned as a statement node.
func (l *Lowerer) inlineCall(call *ast.FuncCall, wantValue bool) (ir.Node, ir.Value) {
	fn := l.unit.ByName[call.Name]

	l.inlineCounter++
	prefix := fmt.Sprintf("%s_%d", fn.Name, l.inlineCounter)

	// Lower the arguments in the caller's scope before entering the frame.
	argValues := make([]ir.Value, len(call.Args))
	for i, arg := range call.Args {
		argValues[i] = l.lowerExpr(arg)
	}

	// Enter the inlined frame: fresh scope stack, fresh return target.
	savedScopes, savedEntry, savedRetVar := l.scopes, l.entry, l.retVar

	l.scopes = nil
	l.entry = false
	l.retVar = ""
	if wantValue {
		l.retVar = prefix + "_ret"
	}

	l.pushScope()

	// Bind the parameters to their argument values under frame-local names.
	var nodes []ir.Node
	for i, param := range fn.Params {
		shellName := prefix + "_" + param.Name
		l.scopes[0][param.Name] = binding{shellName: shellName, typ: param.Type}
		l.usedNames[shellName] = true

		nodes = append(nodes, &ir.Let{
			NodeBase: ir.NewNodeBase(call.Span()),
			Name:     shellName,
			Value:    argValues[i],
		})
	}

	nodes = append(nodes, l.lowerBlock(fn.Body)...)

	retVar := l.retVar
	l.scopes, l.entry, l.retVar = savedScopes, savedEntry, savedRetVar

	seq := &ir.Sequence{NodeBase: ir.NewNodeBase(call.Span()), Nodes: nodes}

	if wantValue {
		l.pending = append(l.pending, seq)
		return nil, &ir.Variable{Name: retVar}
	}

	return seq, nil
}

// -----------------------------------------------------------------------------

// bind introduces a local binding for a source name, renaming the shell-level
// name if the source name shadows an existing binding.
func (l *Lowerer) bind(name string, typ ast.Type) string {
	shellName := name
	for n := 2; l.usedNames[shellName]; n++ {
		shellName = fmt.Sprintf("%s_%d", name, n)
	}

	l.usedNames[shellName] = true
	l.scopes[len(l.scopes)-1][name] = binding{shellName: shellName, typ: typ}

	return shellName
}

// lookup resolves a source name to its binding.  Resolution cannot fail on
// validated input.
func (l *Lowerer) lookup(name string, span *report.TextSpan) binding {
	// Traverse local scopes in reverse order to implement shadowing.
	for i := len(l.scopes) - 1; i > -1; i-- {
		if b, ok := l.scopes[i][name]; ok {
			return b
		}
	}

	report.ICE("lowering reached an unresolved variable `%s` at %s", name, span)
	return binding{} // unreachable
}

// pushScope pushes a new local scope onto the scope stack.
func (l *Lowerer) pushScope() {
	l.scopes = append(l.scopes, make(map[string]binding))
}

// popScope removes the top local scope from the scope stack.
func (l *Lowerer) popScope() {
	l.scopes = l.scopes[:len(l.scopes)-1]
}
