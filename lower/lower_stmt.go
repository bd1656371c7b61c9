package lower

import (
	"strconv"

	"shale/ast"
	"shale/common"
	"shale/ir"
	"shale/report"
)

// lowerStmt lowers a single statement to an IR node.
func (l *Lowerer) lowerStmt(stmt ast.Stmt) ir.Node {
	switch v := stmt.(type) {
	case *ast.LetStmt:
		return l.lowerLet(v)
	case *ast.ExprStmt:
		return l.lowerExprStmt(v)
	case *ast.IfStmt:
		return l.lowerIf(v)
	case *ast.ReturnStmt:
		return l.lowerReturn(v)
	default:
		report.ICE("lowering reached an unvalidated statement at %s", stmt.Span())
		return nil // unreachable
	}
}

// lowerLet lowers a let binding to a shell assignment.  The initializer is
// lowered before the name is bound so a shadowing initializer still sees the
// outer binding.
func (l *Lowerer) lowerLet(let *ast.LetStmt) ir.Node {
	value := l.lowerExpr(let.Init)

	typ := let.Type
	if !let.HasType {
		typ = l.inferType(let.Init)
	}

	return &ir.Let{
		NodeBase: ir.NewNodeBase(let.Span()),
		Name:     l.bind(let.Name, typ),
		Value:    value,
	}
}

// lowerExprStmt lowers an expression evaluated for its side effects.
func (l *Lowerer) lowerExprStmt(stmt *ast.ExprStmt) ir.Node {
	switch v := stmt.Expr.(type) {
	case *ast.FuncCall:
		if std, ok := common.StdFuncs[v.Name]; ok {
			return l.lowerStdCallStmt(std, v)
		}

		node, _ := l.inlineCall(v, false)
		return node
	case *ast.MethodCall:
		return l.methodCommand(v)
	default:
		// A pure expression in statement position has no runtime behavior.
		return &ir.Noop{NodeBase: ir.NewNodeBase(stmt.Span())}
	}
}

// lowerStdCallStmt lowers a standard-library call in statement position.
func (l *Lowerer) lowerStdCallStmt(std *common.StdFunc, call *ast.FuncCall) ir.Node {
	// `exit` with a literal code becomes a true exit node.
	if std.Name == "exit" {
		if lit, ok := call.Args[0].(*ast.Literal); ok && lit.Kind == ast.I32Lit {
			code, _ := strconv.Atoi(lit.Value)
			return &ir.Exit{NodeBase: ir.NewNodeBase(call.Span()), Code: code}
		}
	}

	return l.stdCommand(std, call)
}

// lowerIf lowers a conditional statement.
func (l *Lowerer) lowerIf(stmt *ast.IfStmt) ir.Node {
	cond := l.lowerTest(stmt.Cond)

	l.pushScope()
	thenNode := ir.Node(&ir.Sequence{
		NodeBase: ir.NewNodeBase(stmt.Span()),
		Nodes:    l.lowerBlock(stmt.Then),
	})
	l.popScope()

	var elseNode ir.Node
	if stmt.Else != nil {
		l.pushScope()
		elseNode = &ir.Sequence{
			NodeBase: ir.NewNodeBase(stmt.Span()),
			Nodes:    l.lowerBlock(stmt.Else),
		}
		l.popScope()
	}

	return &ir.If{
		NodeBase: ir.NewNodeBase(stmt.Span()),
		Cond:     cond,
		Then:     thenNode,
		Else:     elseNode,
	}
}

// lowerReturn lowers a return statement.  In the entry function a return
// terminates the script; in an inlined frame it assigns the frame's return
// variable (if the call site uses the value).
func (l *Lowerer) lowerReturn(stmt *ast.ReturnStmt) ir.Node {
	if l.entry {
		return &ir.Exit{NodeBase: ir.NewNodeBase(stmt.Span()), Code: 0}
	}

	if l.retVar != "" && stmt.Value != nil {
		return &ir.Let{
			NodeBase: ir.NewNodeBase(stmt.Span()),
			Name:     l.retVar,
			Value:    l.lowerExpr(stmt.Value),
		}
	}

	return &ir.Noop{NodeBase: ir.NewNodeBase(stmt.Span())}
}
