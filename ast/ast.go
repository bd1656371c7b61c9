package ast

import "shale/report"

// The abstract interface for all AST nodes.
type ASTNode interface {
	// The text span of the AST node.
	Span() *report.TextSpan
}

// A utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// -----------------------------------------------------------------------------

// File represents a single parsed compilation unit: an ordered list of
// function definitions.
type File struct {
	// The ordered function definitions of the unit.
	Funcs []*FuncDef
}

// FuncDef represents a function definition.  Function definitions are
// immutable once constructed by the parser.
type FuncDef struct {
	ASTBase

	// The name of the function.
	Name string

	// The span of the function's name.
	NameSpan *report.TextSpan

	// The ordered parameters of the function.
	Params []Param

	// The declared return type of the function.  This is UnitType if the
	// function returns nothing.
	ReturnType Type

	// The ordered statements comprising the function body.
	Body []Stmt
}

// Param represents a single function parameter.
type Param struct {
	// The name of the parameter.
	Name string

	// The declared type of the parameter.
	Type Type

	// The span of the parameter declaration.
	Span *report.TextSpan
}
