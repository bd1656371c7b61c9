package ast

import "shale/report"

// Expr is the interface implemented by all expression nodes.
type Expr interface {
	ASTNode

	// expr distinguishes expressions from other AST nodes.
	expr()
}

// ExprBase is the base struct embedded in all expressions.
type ExprBase struct {
	ASTBase
}

func (eb ExprBase) expr() {}

// -----------------------------------------------------------------------------

// LitKind enumerates the kinds of literal values.
type LitKind int

const (
	BoolLit LitKind = iota
	I32Lit
	StrLit
)

// Literal represents a single literal value.
type Literal struct {
	ExprBase

	// The kind of the literal.
	Kind LitKind

	// The literal's value spelled as source text: `true`, a decimal numeral,
	// or the unescaped content of a string literal.
	Value string
}

// Variable represents a reference to a named binding or parameter.
type Variable struct {
	ExprBase

	// The name being referenced.
	Name string
}

// -----------------------------------------------------------------------------

// FuncCall represents a call to a named function: either a user-defined
// function or a standard-library operation.
type FuncCall struct {
	ExprBase

	// The name of the callee.
	Name string

	// The span of the callee name.
	NameSpan *report.TextSpan

	// The ordered call arguments.
	Args []Expr
}

// MethodCall represents a method call on a receiver expression.  Methods
// always denote standard-library operations: the restricted subset has no
// user-defined methods.
type MethodCall struct {
	ExprBase

	// The receiver expression.
	Receiver Expr

	// The method name.
	Method string

	// The span of the method name.
	MethodSpan *report.TextSpan

	// The ordered call arguments (excluding the receiver).
	Args []Expr
}

// -----------------------------------------------------------------------------

// BinaryOpKind enumerates the closed set of binary operators.
type BinaryOpKind int

const (
	OpAdd BinaryOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpMod

	OpEq
	OpNotEq
	OpLt
	OpLtEq
	OpGt
	OpGtEq

	OpAnd
	OpOr
)

// UnaryOpKind enumerates the closed set of unary operators.
type UnaryOpKind int

const (
	OpNot UnaryOpKind = iota
	OpNeg
)

// BinaryOp represents a binary operator application.
type BinaryOp struct {
	ExprBase

	// The operator being applied.
	Op BinaryOpKind

	// The operand expressions.
	Lhs, Rhs Expr
}

// UnaryOp represents a unary operator application.
type UnaryOp struct {
	ExprBase

	// The operator being applied.
	Op UnaryOpKind

	// The operand expression.
	Operand Expr
}
