package syntax

import "shale/ast"

// parseStmt parses a single statement.
//
// stmt := let_stmt | return_stmt | if_stmt | while_stmt
//       | assign_or_expr_stmt ;
func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Kind {
	case TOK_LET:
		return p.parseLetStmt()
	case TOK_RETURN:
		return p.parseReturnStmt()
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_WHILE:
		return p.parseWhileStmt()
	default:
		return p.parseAssignOrExprStmt()
	}
}

// parseLetStmt parses a let binding.
//
// let_stmt := 'let' 'IDENT' [':' type_label] '=' expr ';' ;
func (p *Parser) parseLetStmt() ast.Stmt {
	startSpan := p.tok.Span
	p.next() // `let`

	nameTok := p.tok
	p.wantAndNext(TOK_IDENT)

	var typ ast.Type
	hasType := false
	if p.got(TOK_COLON) {
		p.next()
		typ, _ = p.parseTypeLabel()
		hasType = true
	}

	p.wantAndNext(TOK_ASSIGN)
	init := p.parseExpr()

	endSpan := p.tok.Span
	p.wantAndNext(TOK_SEMI)

	return &ast.LetStmt{
		StmtBase: ast.StmtBase{ASTBase: ast.NewASTBaseOver(startSpan, endSpan)},
		Name:     nameTok.Value,
		Type:     typ,
		HasType:  hasType,
		Init:     init,
	}
}

// parseReturnStmt parses a return statement.
//
// return_stmt := 'return' [expr] ';' ;
func (p *Parser) parseReturnStmt() ast.Stmt {
	startSpan := p.tok.Span
	p.next() // `return`

	var value ast.Expr
	if !p.got(TOK_SEMI) {
		value = p.parseExpr()
	}

	endSpan := p.tok.Span
	p.wantAndNext(TOK_SEMI)

	return &ast.ReturnStmt{
		StmtBase: ast.StmtBase{ASTBase: ast.NewASTBaseOver(startSpan, endSpan)},
		Value:    value,
	}
}

// parseIfStmt parses a conditional statement.
//
// if_stmt := 'if' expr block ['else' (if_stmt | block)] ;
func (p *Parser) parseIfStmt() ast.Stmt {
	startSpan := p.tok.Span
	p.next() // `if`

	cond := p.parseExpr()
	thenBlock, endSpan := p.parseBlock()

	var elseBlock []ast.Stmt
	if p.got(TOK_ELSE) {
		p.next()

		if p.got(TOK_IF) {
			// An `else if` chain becomes an else-block holding the nested if.
			nested := p.parseIfStmt()
			elseBlock = []ast.Stmt{nested}
			endSpan = nested.Span()
		} else {
			elseBlock, endSpan = p.parseBlock()
		}
	}

	return &ast.IfStmt{
		StmtBase: ast.StmtBase{ASTBase: ast.NewASTBaseOver(startSpan, endSpan)},
		Cond:     cond,
		Then:     thenBlock,
		Else:     elseBlock,
	}
}

// parseWhileStmt parses a while loop.  Loops are outside the restricted
// subset: the validator rejects them with the loop's span.
//
// while_stmt := 'while' expr block ;
func (p *Parser) parseWhileStmt() ast.Stmt {
	startSpan := p.tok.Span
	p.next() // `while`

	cond := p.parseExpr()
	body, endSpan := p.parseBlock()

	return &ast.WhileStmt{
		StmtBase: ast.StmtBase{ASTBase: ast.NewASTBaseOver(startSpan, endSpan)},
		Cond:     cond,
		Body:     body,
	}
}

// parseAssignOrExprStmt parses either an assignment to an existing name or a
// bare expression statement.
//
// assign_or_expr_stmt := 'IDENT' '=' expr ';' | expr ';' ;
func (p *Parser) parseAssignOrExprStmt() ast.Stmt {
	expr := p.parseExpr()

	if p.got(TOK_ASSIGN) {
		v, ok := expr.(*ast.Variable)
		if !ok {
			p.reject()
		}

		p.next()
		value := p.parseExpr()
		endSpan := p.tok.Span
		p.wantAndNext(TOK_SEMI)

		return &ast.AssignStmt{
			StmtBase: ast.StmtBase{ASTBase: ast.NewASTBaseOver(expr.Span(), endSpan)},
			Name:     v.Name,
			Value:    value,
		}
	}

	endSpan := p.tok.Span
	p.wantAndNext(TOK_SEMI)

	return &ast.ExprStmt{
		StmtBase: ast.StmtBase{ASTBase: ast.NewASTBaseOver(expr.Span(), endSpan)},
		Expr:     expr,
	}
}
