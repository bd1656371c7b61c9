package syntax

import (
	"shale/ast"
	"shale/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is the parser for a shale source text.  It is a recursive descent
// parser: all parsing functions assume that they begin with the parser
// centered on the first token of their production and must consume all tokens
// (including the last) of their production, leaving the parser on the next
// token.  Parsers are created once per compilation unit.
type Parser struct {
	// lexer is the Lexer this parser is using to tokenize the source text.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token
}

// Parse parses a compilation unit from the given source text.  The returned
// error, if non-nil, is a *report.LocalError carrying the offending span.
func Parse(src string) (file *ast.File, err error) {
	defer report.CatchErrors(&err)

	p := &Parser{lexer: NewLexer(src)}

	// Move the parser onto the first token.
	p.next()

	file = p.parseFile()
	return file, nil
}

// -----------------------------------------------------------------------------

// parseFile parses a compilation unit.
//
// file := func_def {func_def} ;
func (p *Parser) parseFile() *ast.File {
	file := &ast.File{}

	for !p.got(TOK_EOF) {
		file.Funcs = append(file.Funcs, p.parseFuncDef())
	}

	return file
}

// parseFuncDef parses a function definition.
//
// func_def := 'fn' 'IDENT' '(' [param_list] ')' ['->' type_label] block ;
// param_list := param {',' param} ;
// param := 'IDENT' ':' type_label ;
func (p *Parser) parseFuncDef() *ast.FuncDef {
	startSpan := p.tok.Span
	p.wantAndNext(TOK_FN)

	nameTok := p.tok
	p.wantAndNext(TOK_IDENT)

	p.wantAndNext(TOK_LPAREN)

	var params []ast.Param
	for !p.got(TOK_RPAREN) {
		if len(params) > 0 {
			p.wantAndNext(TOK_COMMA)
		}

		paramName := p.tok
		p.wantAndNext(TOK_IDENT)
		p.wantAndNext(TOK_COLON)
		paramType, typeSpan := p.parseTypeLabel()

		params = append(params, ast.Param{
			Name: paramName.Value,
			Type: paramType,
			Span: report.NewSpanOver(paramName.Span, typeSpan),
		})
	}
	p.next() // `)`

	returnType := ast.UnitType
	if p.got(TOK_ARROW) {
		p.next()
		returnType, _ = p.parseTypeLabel()
	}

	body, endSpan := p.parseBlock()

	return &ast.FuncDef{
		ASTBase:    ast.NewASTBaseOver(startSpan, endSpan),
		Name:       nameTok.Value,
		NameSpan:   nameTok.Span,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
	}
}

// parseTypeLabel parses a type label.
//
// type_label := 'IDENT' | '(' ')' ;
func (p *Parser) parseTypeLabel() (ast.Type, *report.TextSpan) {
	if p.got(TOK_LPAREN) {
		startSpan := p.tok.Span
		p.next()
		endSpan := p.tok.Span
		p.wantAndNext(TOK_RPAREN)
		return ast.UnitType, report.NewSpanOver(startSpan, endSpan)
	}

	tok := p.tok
	p.wantAndNext(TOK_IDENT)

	typ, ok := ast.TypeByName(tok.Value)
	if !ok {
		panic(report.Raise(tok.Span, "unknown type: `%s`", tok.Value))
	}

	return typ, tok.Span
}

// parseBlock parses a braced statement block.  It returns the statements and
// the span of the closing brace.
//
// block := '{' {stmt} '}' ;
func (p *Parser) parseBlock() ([]ast.Stmt, *report.TextSpan) {
	p.wantAndNext(TOK_LBRACE)

	var stmts []ast.Stmt
	for !p.got(TOK_RBRACE) {
		stmts = append(stmts, p.parseStmt())
	}

	endSpan := p.tok.Span
	p.next() // `}`

	return stmts, endSpan
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	p.tok = p.lexer.NextToken()
}

// got returns true if the parser is on a token of a given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// want asserts that the parser is on a token of the given kind and rejects
// the current token if not.
func (p *Parser) want(kind int) {
	if !p.got(kind) {
		p.reject()
	}
}

// wantAndNext performs a want operation and moves the parser forward.
func (p *Parser) wantAndNext(kind int) {
	p.want(kind)
	p.next()
}

// reject raises an unexpected-token error on the current token.
func (p *Parser) reject() {
	if p.got(TOK_EOF) {
		panic(report.Raise(p.tok.Span, "unexpected end of source text"))
	}

	panic(report.Raise(p.tok.Span, "unexpected token: `%s`", p.tok.Value))
}
