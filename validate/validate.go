package validate

import (
	"strings"

	"shale/ast"
	"shale/common"
	"shale/report"
)

// EntryName is the name of the designated entry function.
const EntryName = "main"

// Unit is a validated restricted compilation unit: the ordered function
// definitions of one source file plus validation metadata.  A Unit upholds
// the restricted-subset invariants: exactly one entry function, unique
// function names, and an acyclic call graph.
type Unit struct {
	// The ordered function definitions of the unit.
	Funcs []*ast.FuncDef

	// The function definitions keyed by name.
	ByName map[string]*ast.FuncDef

	// The designated entry function.
	Entry *ast.FuncDef
}

// Validate checks a parsed compilation unit against the restricted subset
// and returns the validated unit.  The returned error, if non-nil, is a
// *validate.Error.  Validate is a pure function: it never mutates the tree
// and is deterministic given the same input.
func Validate(file *ast.File) (unit *Unit, err error) {
	defer report.CatchErrors(&err)

	unit = &Unit{
		Funcs:  file.Funcs,
		ByName: make(map[string]*ast.FuncDef),
	}

	// Collect functions, rejecting duplicate names and locating the entry
	// point.
	for _, fn := range file.Funcs {
		if _, ok := unit.ByName[fn.Name]; ok {
			if fn.Name == EntryName {
				raise(MultipleEntryPoints, fn.NameSpan, "multiple entry functions defined")
			}

			raise(DuplicateFunction, fn.NameSpan, "multiple functions named `%s` defined", fn.Name)
		}

		if _, ok := common.StdFuncs[fn.Name]; ok {
			raise(DuplicateFunction, fn.NameSpan, "function `%s` shadows a standard-library function", fn.Name)
		}

		unit.ByName[fn.Name] = fn

		if fn.Name == EntryName {
			unit.Entry = fn
		}
	}

	if unit.Entry == nil {
		raise(MissingEntryPoint, nil, "missing entry function `%s`", EntryName)
	}

	if len(unit.Entry.Params) > 0 || unit.Entry.ReturnType != ast.UnitType {
		raise(UnsupportedConstruct, unit.Entry.NameSpan,
			"entry function signature must be of the form: `fn %s()`", EntryName)
	}

	// Validate each function body.
	for _, fn := range unit.Funcs {
		v := &walker{unit: unit}
		v.walkFunc(fn)
	}

	// Detect direct and indirect recursion over the call graph.
	checkRecursion(unit)

	return unit, nil
}

// -----------------------------------------------------------------------------

// walker validates a single function body, tracking the let-bindings in
// scope so variable references can be resolved.
type walker struct {
	// The unit being validated.
	unit *Unit

	// The stack of local scopes used to look up bindings.
	scopes []map[string]bool

	// Whether the function being walked is the entry function.
	entry bool

	// Whether the function being walked returns a value.
	returnsValue bool

	// Whether the walker is inside a conditional branch.
	inBranch bool
}

// walkFunc validates a function definition.
func (w *walker) walkFunc(fn *ast.FuncDef) {
	w.entry = fn.Name == EntryName
	w.returnsValue = fn.ReturnType != ast.UnitType

	w.pushScope()
	defer w.popScope()

	for _, param := range fn.Params {
		w.define(param.Name)
	}

	w.walkBlock(fn.Body)

	// A value-returning function must end in a return so its value is always
	// produced.  Early returns in branches are already rejected above, so
	// checking the final statement is sufficient.
	if fn.ReturnType != ast.UnitType {
		if len(fn.Body) == 0 {
			raise(UnsupportedConstruct, fn.NameSpan,
				"function `%s` must end with a return statement", fn.Name)
		}

		last := fn.Body[len(fn.Body)-1]
		if ret, ok := last.(*ast.ReturnStmt); !ok || ret.Value == nil {
			raise(UnsupportedConstruct, last.Span(),
				"function `%s` must end with a return statement", fn.Name)
		}
	}
}

// walkBlock validates a statement block.  A new scope is NOT pushed here:
// let-bindings scope to the remainder of their enclosing block, and blocks
// themselves (if/else bodies) push their own scopes.
func (w *walker) walkBlock(stmts []ast.Stmt) {
	for i, stmt := range stmts {
		w.walkStmt(stmt)

		// Statements after a return are unreachable; rejecting them keeps
		// return a syntactic block terminator, which the inliner relies on.
		if _, ok := stmt.(*ast.ReturnStmt); ok && i < len(stmts)-1 {
			raise(UnsupportedConstruct, stmts[i+1].Span(), "unreachable statement after return")
		}
	}
}

// walkStmt validates a single statement.
func (w *walker) walkStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.LetStmt:
		w.walkExpr(v.Init, 0)
		// Re-declaring the same name shadows: no duplicate check.
		w.define(v.Name)
	case *ast.ExprStmt:
		w.walkExpr(v.Expr, 0)
	case *ast.IfStmt:
		w.walkExpr(v.Cond, 0)

		wasInBranch := w.inBranch
		w.inBranch = true

		w.pushScope()
		w.walkBlock(v.Then)
		w.popScope()

		if v.Else != nil {
			w.pushScope()
			w.walkBlock(v.Else)
			w.popScope()
		}

		w.inBranch = wasInBranch
	case *ast.ReturnStmt:
		// In the entry function a return terminates the script, so it may
		// appear anywhere.  Everywhere else the call is inlined and an early
		// return has no block to escape from.
		if !w.entry && w.inBranch {
			raise(UnsupportedConstruct, v.Span(),
				"return inside a conditional branch is only supported in the entry function")
		}

		if v.Value != nil {
			if !w.returnsValue {
				raise(UnsupportedConstruct, v.Span(),
					"cannot return a value from a function with no return type")
			}

			w.walkExpr(v.Value, 0)
		}
	case *ast.WhileStmt:
		raise(UnsupportedConstruct, v.Span(), "loops are not part of the restricted subset")
	case *ast.AssignStmt:
		raise(UnsupportedConstruct, v.Span(),
			"bindings are immutable; re-declare `%s` with `let` to shadow it", v.Name)
	default:
		raise(UnsupportedConstruct, stmt.Span(), "unsupported statement")
	}
}

// walkExpr validates a single expression at the given nesting depth.
func (w *walker) walkExpr(expr ast.Expr, depth int) {
	if depth > common.MaxExprDepth {
		raise(ExpressionTooDeep, expr.Span(),
			"expression nesting exceeds the maximum depth of %d", common.MaxExprDepth)
	}

	switch v := expr.(type) {
	case *ast.Literal:
		if v.Kind == ast.StrLit && strings.ContainsRune(v.Value, 0) {
			raise(InvalidLiteral, v.Span(), "string literal contains a NUL character")
		}
	case *ast.Variable:
		if !w.resolved(v.Name) {
			raise(UnsupportedConstruct, v.Span(), "undefined variable: `%s`", v.Name)
		}
	case *ast.FuncCall:
		w.walkCall(v, depth)
	case *ast.MethodCall:
		method, ok := common.StdMethods[v.Method]
		if !ok {
			raise(UnsupportedConstruct, v.MethodSpan, "unknown method: `%s`", v.Method)
		}

		if len(v.Args) != method.Arity {
			raise(UnsupportedConstruct, v.Span(),
				"method `%s` takes %d arguments, got %d", v.Method, method.Arity, len(v.Args))
		}

		w.walkExpr(v.Receiver, depth+1)
		for _, arg := range v.Args {
			w.walkExpr(arg, depth+1)
		}
	case *ast.BinaryOp:
		w.walkExpr(v.Lhs, depth+1)
		w.walkExpr(v.Rhs, depth+1)
	case *ast.UnaryOp:
		w.walkExpr(v.Operand, depth+1)
	default:
		raise(UnsupportedConstruct, expr.Span(), "unsupported expression")
	}
}

// walkCall validates a function call expression.
func (w *walker) walkCall(call *ast.FuncCall, depth int) {
	if std, ok := common.StdFuncs[call.Name]; ok {
		if std.Variadic {
			if len(call.Args) < len(std.Params) {
				raise(UnsupportedConstruct, call.Span(),
					"`%s` takes at least %d arguments, got %d", call.Name, len(std.Params), len(call.Args))
			}
		} else if len(call.Args) != len(std.Params) {
			raise(UnsupportedConstruct, call.Span(),
				"`%s` takes %d arguments, got %d", call.Name, len(std.Params), len(call.Args))
		}
	} else if fn, ok := w.unit.ByName[call.Name]; ok {
		if len(call.Args) != len(fn.Params) {
			raise(UnsupportedConstruct, call.Span(),
				"`%s` takes %d arguments, got %d", call.Name, len(fn.Params), len(call.Args))
		}
	} else {
		raise(UnsupportedConstruct, call.NameSpan, "undefined function: `%s`", call.Name)
	}

	for _, arg := range call.Args {
		w.walkExpr(arg, depth+1)
	}
}

// -----------------------------------------------------------------------------

// define defines a name in the current local scope.
func (w *walker) define(name string) {
	w.scopes[len(w.scopes)-1][name] = true
}

// resolved returns whether a name resolves in any visible scope.
func (w *walker) resolved(name string) bool {
	// Traverse local scopes in reverse order to implement shadowing.
	for i := len(w.scopes) - 1; i > -1; i-- {
		if w.scopes[i][name] {
			return true
		}
	}

	return false
}

// pushScope pushes a new local scope onto the scope stack.
func (w *walker) pushScope() {
	w.scopes = append(w.scopes, make(map[string]bool))
}

// popScope removes the top local scope from the scope stack.
func (w *walker) popScope() {
	w.scopes = w.scopes[:len(w.scopes)-1]
}
