package syntax

import (
	"shale/ast"
	"shale/report"
)

// binaryOpOf maps operator token kinds to their AST operator kinds.
var binaryOpOf = map[int]ast.BinaryOpKind{
	TOK_PLUS:  ast.OpAdd,
	TOK_MINUS: ast.OpSub,
	TOK_STAR:  ast.OpMul,
	TOK_SLASH: ast.OpDiv,
	TOK_MOD:   ast.OpMod,
	TOK_EQ:    ast.OpEq,
	TOK_NEQ:   ast.OpNotEq,
	TOK_LT:    ast.OpLt,
	TOK_LTEQ:  ast.OpLtEq,
	TOK_GT:    ast.OpGt,
	TOK_GTEQ:  ast.OpGtEq,
	TOK_LAND:  ast.OpAnd,
	TOK_LOR:   ast.OpOr,
}

// parseExpr parses an expression.
//
// expr := and_expr {'||' and_expr} ;
func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinaryChain(
		func() ast.Expr { return p.parseAndExpr() },
		TOK_LOR,
	)
}

// parseAndExpr parses a logical-and expression.
//
// and_expr := comp_expr {'&&' comp_expr} ;
func (p *Parser) parseAndExpr() ast.Expr {
	return p.parseBinaryChain(
		func() ast.Expr { return p.parseCompExpr() },
		TOK_LAND,
	)
}

// parseCompExpr parses a comparison expression.
//
// comp_expr := arith_expr [comp_op arith_expr] ;
// comp_op := '==' | '!=' | '<' | '<=' | '>' | '>=' ;
func (p *Parser) parseCompExpr() ast.Expr {
	lhs := p.parseArithExpr()

	switch p.tok.Kind {
	case TOK_EQ, TOK_NEQ, TOK_LT, TOK_LTEQ, TOK_GT, TOK_GTEQ:
		op := binaryOpOf[p.tok.Kind]
		p.next()
		rhs := p.parseArithExpr()

		return &ast.BinaryOp{
			ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span())},
			Op:       op,
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}

	return lhs
}

// parseArithExpr parses an additive expression.
//
// arith_expr := term {('+' | '-') term} ;
func (p *Parser) parseArithExpr() ast.Expr {
	return p.parseBinaryChain(
		func() ast.Expr { return p.parseTerm() },
		TOK_PLUS, TOK_MINUS,
	)
}

// parseTerm parses a multiplicative expression.
//
// term := unary_expr {('*' | '/' | '%') unary_expr} ;
func (p *Parser) parseTerm() ast.Expr {
	return p.parseBinaryChain(
		func() ast.Expr { return p.parseUnaryExpr() },
		TOK_STAR, TOK_SLASH, TOK_MOD,
	)
}

// parseBinaryChain parses a left-associative chain of binary operator
// applications over the given operand parser and operator token kinds.
func (p *Parser) parseBinaryChain(operand func() ast.Expr, opKinds ...int) ast.Expr {
	lhs := operand()

	for {
		matched := false
		for _, kind := range opKinds {
			if p.got(kind) {
				matched = true
				break
			}
		}

		if !matched {
			return lhs
		}

		op := binaryOpOf[p.tok.Kind]
		p.next()
		rhs := operand()

		lhs = &ast.BinaryOp{
			ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span())},
			Op:       op,
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}
}

// parseUnaryExpr parses a unary operator application.
//
// unary_expr := ('!' | '-') unary_expr | postfix_expr ;
func (p *Parser) parseUnaryExpr() ast.Expr {
	switch p.tok.Kind {
	case TOK_NOT, TOK_MINUS:
		op := ast.OpNot
		if p.got(TOK_MINUS) {
			op = ast.OpNeg
		}

		startSpan := p.tok.Span
		p.next()
		operand := p.parseUnaryExpr()

		return &ast.UnaryOp{
			ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOver(startSpan, operand.Span())},
			Op:       op,
			Operand:  operand,
		}
	}

	return p.parsePostfixExpr()
}

// parsePostfixExpr parses an atom followed by any number of method calls.
//
// postfix_expr := atom {'.' 'IDENT' '(' [expr_list] ')'} ;
func (p *Parser) parsePostfixExpr() ast.Expr {
	expr := p.parseAtom()

	for p.got(TOK_DOT) {
		p.next()

		methodTok := p.tok
		p.wantAndNext(TOK_IDENT)

		p.wantAndNext(TOK_LPAREN)
		args, endSpan := p.parseExprList()

		expr = &ast.MethodCall{
			ExprBase:   ast.ExprBase{ASTBase: ast.NewASTBaseOver(expr.Span(), endSpan)},
			Receiver:   expr,
			Method:     methodTok.Value,
			MethodSpan: methodTok.Span,
			Args:       args,
		}
	}

	return expr
}

// parseAtom parses an atomic expression.
//
// atom := 'INTLIT' | 'STRINGLIT' | 'true' | 'false'
//       | 'IDENT' ['(' [expr_list] ')'] | '(' expr ')' ;
func (p *Parser) parseAtom() ast.Expr {
	tok := p.tok

	switch tok.Kind {
	case TOK_INTLIT:
		p.next()
		return &ast.Literal{
			ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOn(tok.Span)},
			Kind:     ast.I32Lit,
			Value:    tok.Value,
		}
	case TOK_STRINGLIT:
		p.next()
		return &ast.Literal{
			ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOn(tok.Span)},
			Kind:     ast.StrLit,
			Value:    tok.Value,
		}
	case TOK_TRUE, TOK_FALSE:
		p.next()
		return &ast.Literal{
			ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOn(tok.Span)},
			Kind:     ast.BoolLit,
			Value:    tok.Value,
		}
	case TOK_IDENT:
		p.next()

		if p.got(TOK_LPAREN) {
			p.next()
			args, endSpan := p.parseExprList()

			return &ast.FuncCall{
				ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOver(tok.Span, endSpan)},
				Name:     tok.Value,
				NameSpan: tok.Span,
				Args:     args,
			}
		}

		return &ast.Variable{
			ExprBase: ast.ExprBase{ASTBase: ast.NewASTBaseOn(tok.Span)},
			Name:     tok.Value,
		}
	case TOK_LPAREN:
		p.next()
		expr := p.parseExpr()
		p.wantAndNext(TOK_RPAREN)
		return expr
	default:
		p.reject()
		return nil // unreachable
	}
}

// parseExprList parses a comma-separated expression list terminated by a
// closing parenthesis (which is consumed).  It returns the expressions and
// the span of the closing parenthesis.
//
// expr_list := [expr {',' expr}] ;
func (p *Parser) parseExprList() ([]ast.Expr, *report.TextSpan) {
	var exprs []ast.Expr

	for !p.got(TOK_RPAREN) {
		if len(exprs) > 0 {
			p.wantAndNext(TOK_COMMA)
		}

		exprs = append(exprs, p.parseExpr())
	}

	endSpan := p.tok.Span
	p.next() // `)`

	return exprs, endSpan
}
