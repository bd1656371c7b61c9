package lower

import (
	"shale/ast"
	"shale/common"
	"shale/ir"
	"shale/report"
)

// lowerExpr lowers an expression to a shell value.
func (l *Lowerer) lowerExpr(expr ast.Expr) ir.Value {
	switch v := expr.(type) {
	case *ast.Literal:
		return &ir.Literal{Text: v.Value}
	case *ast.Variable:
		return &ir.Variable{Name: l.lookup(v.Name, v.Span()).shellName}
	case *ast.FuncCall:
		return l.lowerCallExpr(v)
	case *ast.MethodCall:
		return &ir.Substitution{Cmd: l.methodCommand(v)}
	case *ast.BinaryOp:
		return l.lowerBinaryOp(v)
	case *ast.UnaryOp:
		return l.lowerUnaryOp(v)
	default:
		report.ICE("lowering reached an unvalidated expression at %s", expr.Span())
		return nil // unreachable
	}
}

// lowerCallExpr lowers a function call in value position.
func (l *Lowerer) lowerCallExpr(call *ast.FuncCall) ir.Value {
	if std, ok := common.StdFuncs[call.Name]; ok {
		if std.Return == ast.UnitType {
			panic(report.Raise(call.Span(), "`%s` has no value", call.Name))
		}

		return &ir.Substitution{Cmd: l.stdCommand(std, call)}
	}

	_, value := l.inlineCall(call, true)
	return value
}

// lowerBinaryOp lowers a binary operator application.
func (l *Lowerer) lowerBinaryOp(bin *ast.BinaryOp) ir.Value {
	operandType := l.inferType(bin.Lhs)

	switch bin.Op {
	case ast.OpAdd:
		if isStringy(operandType) {
			return l.lowerConcat(bin)
		}

		return l.lowerArith(ir.ArithAdd, bin)
	case ast.OpSub:
		return l.lowerArith(ir.ArithSub, bin)
	case ast.OpMul:
		return l.lowerArith(ir.ArithMul, bin)
	case ast.OpDiv:
		return l.lowerArith(ir.ArithDiv, bin)
	case ast.OpMod:
		return l.lowerArith(ir.ArithMod, bin)

	case ast.OpEq, ast.OpNotEq:
		op := ir.CmpEq
		if isIntLike(operandType) {
			if bin.Op == ast.OpNotEq {
				op = ir.CmpNe
			}
		} else {
			op = ir.CmpStrEq
			if bin.Op == ast.OpNotEq {
				op = ir.CmpStrNe
			}
		}

		return &ir.Comparison{Op: op, Lhs: l.lowerExpr(bin.Lhs), Rhs: l.lowerExpr(bin.Rhs)}
	case ast.OpLt, ast.OpLtEq, ast.OpGt, ast.OpGtEq:
		if !isIntLike(operandType) {
			panic(report.Raise(bin.Span(), "ordering comparisons require integer operands"))
		}

		ops := map[ast.BinaryOpKind]ir.CompareOp{
			ast.OpLt:   ir.CmpLt,
			ast.OpLtEq: ir.CmpLe,
			ast.OpGt:   ir.CmpGt,
			ast.OpGtEq: ir.CmpGe,
		}

		return &ir.Comparison{Op: ops[bin.Op], Lhs: l.lowerExpr(bin.Lhs), Rhs: l.lowerExpr(bin.Rhs)}

	case ast.OpAnd:
		return &ir.Logical{Op: ir.LogicAnd, Lhs: l.lowerTest(bin.Lhs), Rhs: l.lowerTest(bin.Rhs)}
	case ast.OpOr:
		return &ir.Logical{Op: ir.LogicOr, Lhs: l.lowerTest(bin.Lhs), Rhs: l.lowerTest(bin.Rhs)}
	default:
		report.ICE("lowering reached an unknown binary operator at %s", bin.Span())
		return nil // unreachable
	}
}

// lowerConcat lowers a string concatenation, flattening nested
// concatenations into a single parts list.
func (l *Lowerer) lowerConcat(bin *ast.BinaryOp) ir.Value {
	var parts []ir.Value

	appendPart := func(v ir.Value) {
		if c, ok := v.(*ir.Concat); ok {
			parts = append(parts, c.Parts...)
		} else {
			parts = append(parts, v)
		}
	}

	appendPart(l.lowerExpr(bin.Lhs))
	appendPart(l.lowerExpr(bin.Rhs))

	return &ir.Concat{Parts: parts}
}

// lowerArith lowers an integer arithmetic application.  Operands are type
// checked here: arithmetic expansion is the one emission position where
// literal text appears unquoted, so only integer values may reach it.
func (l *Lowerer) lowerArith(op ir.ArithOp, bin *ast.BinaryOp) ir.Value {
	if !isIntLike(l.inferType(bin.Lhs)) || !isIntLike(l.inferType(bin.Rhs)) {
		panic(report.Raise(bin.Span(), "arithmetic requires integer operands"))
	}

	return &ir.Arithmetic{Op: op, Lhs: l.lowerExpr(bin.Lhs), Rhs: l.lowerExpr(bin.Rhs)}
}

// lowerUnaryOp lowers a unary operator application.
func (l *Lowerer) lowerUnaryOp(un *ast.UnaryOp) ir.Value {
	switch un.Op {
	case ast.OpNot:
		return &ir.Not{Operand: l.lowerTest(un.Operand)}
	case ast.OpNeg:
		if !isIntLike(l.inferType(un.Operand)) {
			panic(report.Raise(un.Span(), "negation requires an integer operand"))
		}

		return &ir.Arithmetic{
			Op:  ir.ArithSub,
			Lhs: &ir.Literal{Text: "0"},
			Rhs: l.lowerExpr(un.Operand),
		}
	default:
		report.ICE("lowering reached an unknown unary operator at %s", un.Span())
		return nil // unreachable
	}
}

// lowerTest lowers an expression into test position.  Comparisons, logical
// connectives, and negations are already test-compatible; any other boolean
// value is tested by string equality against the canonical `true`.
func (l *Lowerer) lowerTest(expr ast.Expr) ir.Value {
	value := l.lowerExpr(expr)

	switch value.(type) {
	case *ir.Comparison, *ir.Logical, *ir.Not:
		return value
	default:
		return &ir.Comparison{Op: ir.CmpStrEq, Lhs: value, Rhs: &ir.Literal{Text: "true"}}
	}
}

// -----------------------------------------------------------------------------

// stdCommand builds the command invocation of a standard-library call.
func (l *Lowerer) stdCommand(std *common.StdFunc, call *ast.FuncCall) *ir.Command {
	// `echo` is dialect-sensitive: the dash and ash builtins interpret
	// backslash escapes, so those dialects print through printf instead.
	if std.Name == "echo" && l.dialect != common.DialectPosix {
		return &ir.Command{
			NodeBase: ir.NewNodeBase(call.Span()),
			Program:  "printf",
			Args:     []ir.Value{&ir.Literal{Text: `%s\n`}, l.lowerExpr(call.Args[0])},
		}
	}

	// `exec` runs the program named by its first argument: the program slot
	// is left empty and the head argument is emitted in command position.
	// The verifier flags non-literal heads.
	if std.Name == "exec" {
		args := make([]ir.Value, len(call.Args))
		for i, arg := range call.Args {
			args[i] = l.lowerExpr(arg)
		}

		return &ir.Command{NodeBase: ir.NewNodeBase(call.Span()), Program: "", Args: args}
	}

	args := make([]ir.Value, 0, len(std.FixedArgs)+len(call.Args))
	for _, fixed := range std.FixedArgs {
		args = append(args, &ir.Literal{Text: fixed})
	}
	for _, arg := range call.Args {
		args = append(args, l.lowerExpr(arg))
	}

	return &ir.Command{NodeBase: ir.NewNodeBase(call.Span()), Program: std.Program, Args: args}
}

// methodCommand builds the helper invocation of a standard-library method.
func (l *Lowerer) methodCommand(call *ast.MethodCall) *ir.Command {
	method := common.StdMethods[call.Method]

	args := make([]ir.Value, 0, len(call.Args)+1)
	args = append(args, l.lowerExpr(call.Receiver))
	for _, arg := range call.Args {
		args = append(args, l.lowerExpr(arg))
	}

	return &ir.Command{NodeBase: ir.NewNodeBase(call.Span()), Program: method.Helper, Args: args}
}

// -----------------------------------------------------------------------------

// inferType infers the source type of an expression.
func (l *Lowerer) inferType(expr ast.Expr) ast.Type {
	switch v := expr.(type) {
	case *ast.Literal:
		switch v.Kind {
		case ast.BoolLit:
			return ast.BoolType
		case ast.I32Lit:
			return ast.I32Type
		default:
			return ast.StrType
		}
	case *ast.Variable:
		return l.lookup(v.Name, v.Span()).typ
	case *ast.FuncCall:
		if std, ok := common.StdFuncs[v.Name]; ok {
			return std.Return
		}

		return l.unit.ByName[v.Name].ReturnType
	case *ast.MethodCall:
		if v.Method == "len" {
			return ast.I32Type
		}

		return ast.StrType
	case *ast.BinaryOp:
		switch v.Op {
		case ast.OpAdd:
			if isStringy(l.inferType(v.Lhs)) {
				return ast.StrType
			}

			return ast.I32Type
		case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
			return ast.I32Type
		default:
			return ast.BoolType
		}
	case *ast.UnaryOp:
		if v.Op == ast.OpNot {
			return ast.BoolType
		}

		return ast.I32Type
	default:
		return ast.UnitType
	}
}

// isStringy returns whether values of the type are carried as shell strings
// with string semantics.
func isStringy(t ast.Type) bool {
	return t == ast.StrType || t == ast.PathType || t == ast.URLType
}

// isIntLike returns whether values of the type have integer semantics.
func isIntLike(t ast.Type) bool {
	return t == ast.I32Type || t == ast.DurationType
}
