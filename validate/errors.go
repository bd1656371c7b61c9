package validate

import (
	"fmt"
	"strings"

	"shale/report"
)

// ErrorKind enumerates the kinds of validation errors.
type ErrorKind int

const (
	// UnsupportedConstruct indicates a syntax construct outside the
	// restricted subset.
	UnsupportedConstruct ErrorKind = iota

	// MissingEntryPoint indicates that no entry function was defined.
	MissingEntryPoint

	// MultipleEntryPoints indicates that more than one entry function was
	// defined.
	MultipleEntryPoints

	// RecursionDetected indicates a direct or indirect cycle in the call
	// graph.
	RecursionDetected

	// ExpressionTooDeep indicates an expression nested beyond the fixed
	// depth bound.
	ExpressionTooDeep

	// InvalidLiteral indicates a literal value not representable in POSIX
	// shell (eg. a string containing NUL).
	InvalidLiteral

	// DuplicateFunction indicates two function definitions sharing a name.
	DuplicateFunction
)

// Error is a validation error: erroneous input that the restricted subset
// cannot accept.
type Error struct {
	// The kind of the validation error.
	Kind ErrorKind

	// The span of the offending source text.  May be nil.
	Span *report.TextSpan

	// The error message.
	Message string

	// For RecursionDetected: the function names forming the cycle, starting
	// and ending with the same name.
	Cycle []string
}

func (e *Error) Error() string {
	if e.Kind == RecursionDetected && len(e.Cycle) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Cycle, " -> "))
	}

	return e.Message
}

// ErrorSpan returns the span of the offending source text.
func (e *Error) ErrorSpan() *report.TextSpan {
	return e.Span
}

// raise panics with a new validation error of the given kind.
func raise(kind ErrorKind, span *report.TextSpan, msg string, args ...interface{}) {
	panic(&Error{Kind: kind, Span: span, Message: fmt.Sprintf(msg, args...)})
}
