package validate

import "shale/ast"

/*
Recursion Detection
-------------------

The restricted subset forbids recursion entirely: user-defined calls are
inlined during lowering, so any cycle in the call graph (a direct self-call or
a mutual cycle of any length) would make inlining diverge.

Detection is a depth-first search over the call graph carrying a recursion
stack: a node on the stack that is reached again closes a cycle.  Nodes are
additionally marked done once fully explored so shared (diamond-shaped) call
structures are not re-walked.
*/

// checkRecursion walks the unit's call graph and raises RecursionDetected on
// the first cycle found.  The reported cycle starts and ends with the same
// function name.
func checkRecursion(unit *Unit) {
	c := &cycleChecker{
		unit: unit,
		done: make(map[string]bool),
		on:   make(map[string]bool),
	}

	for _, fn := range unit.Funcs {
		if !c.done[fn.Name] {
			c.search(fn)
		}
	}
}

// cycleChecker holds the traversal state for recursion detection.
type cycleChecker struct {
	// The unit being checked.
	unit *Unit

	// Functions whose call subtrees are fully explored.
	done map[string]bool

	// Functions on the current recursion stack.
	on map[string]bool

	// The current recursion stack in visit order.
	stack []string
}

// search explores the call subtree rooted at the given function.
func (c *cycleChecker) search(fn *ast.FuncDef) {
	c.on[fn.Name] = true
	c.stack = append(c.stack, fn.Name)

	for _, stmt := range fn.Body {
		c.searchStmt(fn, stmt)
	}

	c.stack = c.stack[:len(c.stack)-1]
	c.on[fn.Name] = false
	c.done[fn.Name] = true
}

// searchStmt explores the calls made by a single statement.
func (c *cycleChecker) searchStmt(fn *ast.FuncDef, stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.LetStmt:
		c.searchExpr(fn, v.Init)
	case *ast.ExprStmt:
		c.searchExpr(fn, v.Expr)
	case *ast.IfStmt:
		c.searchExpr(fn, v.Cond)
		for _, s := range v.Then {
			c.searchStmt(fn, s)
		}
		for _, s := range v.Else {
			c.searchStmt(fn, s)
		}
	case *ast.ReturnStmt:
		if v.Value != nil {
			c.searchExpr(fn, v.Value)
		}
	}
}

// searchExpr explores the calls made by a single expression.
func (c *cycleChecker) searchExpr(fn *ast.FuncDef, expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.FuncCall:
		if callee, ok := c.unit.ByName[v.Name]; ok {
			c.follow(v, callee)
		}

		for _, arg := range v.Args {
			c.searchExpr(fn, arg)
		}
	case *ast.MethodCall:
		c.searchExpr(fn, v.Receiver)
		for _, arg := range v.Args {
			c.searchExpr(fn, arg)
		}
	case *ast.BinaryOp:
		c.searchExpr(fn, v.Lhs)
		c.searchExpr(fn, v.Rhs)
	case *ast.UnaryOp:
		c.searchExpr(fn, v.Operand)
	}
}

// follow traverses a call edge to a user-defined callee.
func (c *cycleChecker) follow(call *ast.FuncCall, callee *ast.FuncDef) {
	if c.on[callee.Name] {
		// Slice the recursion stack down to the cycle and close it.
		var cycle []string
		for i, name := range c.stack {
			if name == callee.Name {
				cycle = append(cycle, c.stack[i:]...)
				break
			}
		}
		cycle = append(cycle, callee.Name)

		panic(&Error{
			Kind:    RecursionDetected,
			Span:    call.NameSpan,
			Message: "recursion detected in call graph",
			Cycle:   cycle,
		})
	}

	if !c.done[callee.Name] {
		c.search(callee)
	}
}
