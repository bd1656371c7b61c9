package syntax

import "shale/report"

// Token represents a single lexical token.
type Token struct {
	// The token kind.  This must be one of the enumerated token kinds.
	Kind int

	// The token's spelling in the source text.  For string literals this is
	// the unescaped content without the enclosing quotes.
	Value string

	// The span over which the token occurs.
	Span *report.TextSpan
}

// Enumeration of the different token kinds.
const (
	TOK_EOF = iota

	TOK_IDENT
	TOK_INTLIT
	TOK_STRINGLIT

	// Keywords.
	TOK_FN
	TOK_LET
	TOK_IF
	TOK_ELSE
	TOK_RETURN
	TOK_WHILE
	TOK_TRUE
	TOK_FALSE

	// Operators.
	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_SLASH
	TOK_MOD
	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_LTEQ
	TOK_GT
	TOK_GTEQ
	TOK_LAND
	TOK_LOR
	TOK_NOT
	TOK_ASSIGN

	// Punctuation.
	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_COMMA
	TOK_SEMI
	TOK_COLON
	TOK_ARROW
	TOK_DOT
)

// keywords maps keyword spellings to their token kinds.
var keywords = map[string]int{
	"fn":     TOK_FN,
	"let":    TOK_LET,
	"if":     TOK_IF,
	"else":   TOK_ELSE,
	"return": TOK_RETURN,
	"while":  TOK_WHILE,
	"true":   TOK_TRUE,
	"false":  TOK_FALSE,
}

// symbolPatterns maps symbol strings (patterns) to their punctuation/operator
// token kind.
var symbolPatterns = map[string]int{
	"+": TOK_PLUS,
	"-": TOK_MINUS,
	"*": TOK_STAR,
	"/": TOK_SLASH,
	"%": TOK_MOD,

	"==": TOK_EQ,
	"!=": TOK_NEQ,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,

	"&&": TOK_LAND,
	"||": TOK_LOR,
	"!":  TOK_NOT,

	"=": TOK_ASSIGN,

	"(":  TOK_LPAREN,
	")":  TOK_RPAREN,
	"{":  TOK_LBRACE,
	"}":  TOK_RBRACE,
	",":  TOK_COMMA,
	";":  TOK_SEMI,
	":":  TOK_COLON,
	"->": TOK_ARROW,
	".":  TOK_DOT,
}
