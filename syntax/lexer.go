package syntax

import (
	"strings"

	"shale/report"
)

// Lexer is responsible for tokenizing a source text.
type Lexer struct {
	src     []rune
	ndx     int
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer over the given source text.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:     []rune(src),
		tokBuff: &strings.Builder{},
	}
}

// NextToken retrieves the next token from the source text.  If the text has
// ended, this will be an EOF token.  Lexical errors are raised as local
// compile errors.
func (l *Lexer) NextToken() *Token {
	for {
		c := l.peek()
		if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '#':
			l.skipComment()
		case '"':
			return l.lexStringLit()
		default:
			if isDecimalDigit(c) {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	return &Token{Kind: TOK_EOF, Span: l.spanHere()}
}

// -----------------------------------------------------------------------------

// lexIdentOrKeyword lexes an identifier or a keyword.
func (l *Lexer) lexIdentOrKeyword() *Token {
	l.mark()

	for c := l.peek(); c != -1 && (isFirstIdentChar(c) || isDecimalDigit(c)); c = l.peek() {
		l.eat()
	}

	value := l.drain()
	if kind, ok := keywords[value]; ok {
		return l.makeToken(kind, value)
	}

	return l.makeToken(TOK_IDENT, value)
}

// lexNumericLit lexes a decimal integer literal.  Leading zeros are stripped
// so the numeral means the same thing to the constant folder and to the
// shell's arithmetic expansion, which reads a `0` prefix as octal.
func (l *Lexer) lexNumericLit() *Token {
	l.mark()

	for c := l.peek(); isDecimalDigit(c); c = l.peek() {
		l.eat()
	}

	value := strings.TrimLeft(l.drain(), "0")
	if value == "" {
		value = "0"
	}

	return l.makeToken(TOK_INTLIT, value)
}

// lexStringLit lexes a double-quoted string literal, processing escape
// sequences.  The token value is the unescaped content.
func (l *Lexer) lexStringLit() *Token {
	l.mark()
	l.skip() // opening quote

	for {
		c := l.peek()

		switch c {
		case -1, '\n':
			panic(report.Raise(l.spanFromMark(), "unterminated string literal"))
		case '"':
			l.skip()
			return l.makeToken(TOK_STRINGLIT, l.drain())
		case '\\':
			l.skip()
			l.lexEscapeSequence()
		default:
			l.eat()
		}
	}
}

// lexEscapeSequence lexes the character following a backslash in a string
// literal and writes the denoted character to the token buffer.
func (l *Lexer) lexEscapeSequence() {
	c := l.peek()

	switch c {
	case 'n':
		l.tokBuff.WriteRune('\n')
	case 't':
		l.tokBuff.WriteRune('\t')
	case 'r':
		l.tokBuff.WriteRune('\r')
	case '\\', '"':
		l.tokBuff.WriteRune(c)
	case '0':
		l.tokBuff.WriteRune(0)
	default:
		panic(report.Raise(l.spanHere(), "invalid escape sequence: `\\%c`", c))
	}

	l.skip()
}

// lexPunctOrOper lexes a punctuation or operator symbol.
func (l *Lexer) lexPunctOrOper() *Token {
	l.mark()
	l.eat()

	// Try to grow the symbol to the longest matching pattern.
	for {
		c := l.peek()
		if c == -1 {
			break
		}

		if _, ok := symbolPatterns[l.tokBuff.String()+string(c)]; ok {
			l.eat()
		} else {
			break
		}
	}

	value := l.drain()
	kind, ok := symbolPatterns[value]
	if !ok {
		panic(report.Raise(l.spanFromMark(), "unknown symbol: `%s`", value))
	}

	return l.makeToken(kind, value)
}

// skipComment skips a line comment introduced by `#`.
func (l *Lexer) skipComment() {
	for c := l.peek(); c != -1 && c != '\n'; c = l.peek() {
		l.skip()
	}
}

// -----------------------------------------------------------------------------

// peek returns the rune the lexer is positioned on without moving forward.
// It returns -1 at the end of the source text.
func (l *Lexer) peek() rune {
	if l.ndx < len(l.src) {
		return l.src[l.ndx]
	}

	return -1
}

// eat moves the lexer forward one rune writing it into the token buffer.
func (l *Lexer) eat() {
	l.tokBuff.WriteRune(l.src[l.ndx])
	l.advance()
}

// skip moves the lexer forward one rune without recording it.
func (l *Lexer) skip() {
	l.advance()
}

// advance updates the lexer's position over the current rune.
func (l *Lexer) advance() {
	if l.src[l.ndx] == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}

	l.ndx++
}

// mark records the current position as the start of a token.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// drain returns and resets the contents of the token buffer.
func (l *Lexer) drain() string {
	value := l.tokBuff.String()
	l.tokBuff.Reset()
	return value
}

// makeToken creates a new token of the given kind and value spanning from the
// marked start position to the current position.
func (l *Lexer) makeToken(kind int, value string) *Token {
	return &Token{Kind: kind, Value: value, Span: l.spanFromMark()}
}

// spanFromMark returns the span from the marked start position to the current
// position.
func (l *Lexer) spanFromMark() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// spanHere returns a zero-width span at the current position.
func (l *Lexer) spanHere() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.line,
		StartCol:  l.col,
		EndLine:   l.line,
		EndCol:    l.col + 1,
	}
}

// -----------------------------------------------------------------------------

func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isFirstIdentChar(c rune) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}
