package ast

// Stmt is the interface implemented by all statement nodes.
type Stmt interface {
	ASTNode

	// stmt distinguishes statements from other AST nodes.
	stmt()
}

// StmtBase is the base struct embedded in all statements.
type StmtBase struct {
	ASTBase
}

func (sb StmtBase) stmt() {}

// -----------------------------------------------------------------------------

// LetStmt represents an immutable variable binding: `let name = expr`.  A
// binding is scoped to the remainder of its enclosing block; re-declaring the
// same name shadows the earlier binding.
type LetStmt struct {
	StmtBase

	// The name being bound.
	Name string

	// The optional declared type of the binding.  HasType indicates whether
	// the source carried an explicit type label.
	Type    Type
	HasType bool

	// The initializer of the binding.
	Init Expr
}

// ExprStmt represents an expression evaluated for its side effects.
type ExprStmt struct {
	StmtBase

	// The expression being evaluated.
	Expr Expr
}

// IfStmt represents a conditional statement.
type IfStmt struct {
	StmtBase

	// The branch condition.
	Cond Expr

	// The ordered statements of the then-block.
	Then []Stmt

	// The ordered statements of the else-block.  This is nil if no else
	// clause was given.  An `else if` chain parses as an else-block holding a
	// single nested IfStmt.
	Else []Stmt
}

// ReturnStmt represents a return statement.
type ReturnStmt struct {
	StmtBase

	// The value being returned, or nil for a bare `return`.
	Value Expr
}

// -----------------------------------------------------------------------------
// The statements below are parseable but lie outside the restricted subset:
// the validator rejects them.  Keeping them in the tree lets the parser give
// precise spans for the rejection.

// WhileStmt represents a while loop.
type WhileStmt struct {
	StmtBase

	// The loop condition.
	Cond Expr

	// The loop body.
	Body []Stmt
}

// AssignStmt represents a reassignment of an existing name.
type AssignStmt struct {
	StmtBase

	// The name being reassigned.
	Name string

	// The value being assigned.
	Value Expr
}
