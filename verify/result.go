package verify

import (
	"fmt"

	"shale/report"
)

// The safety properties the verifier checks.
const (
	PropInjection      = "injection"
	PropDeterminism    = "determinism"
	PropIdempotency    = "idempotency"
	PropResourceSafety = "resource-safety"
)

// Violation is a located failure of a single safety property.
type Violation struct {
	// The property that was violated.
	Property string `json:"property"`

	// The source span of the offending node.  May be nil for synthesized
	// nodes with no source position.
	Span *report.TextSpan `json:"span,omitempty"`

	// A human-readable description of the violation.
	Message string `json:"message"`
}

// Error makes a violation reportable through the standard error display.
func (v Violation) Error() string {
	return fmt.Sprintf("%s violation: %s", v.Property, v.Message)
}

// ErrorSpan returns the span the violation is located at.
func (v Violation) ErrorSpan() *report.TextSpan {
	return v.Span
}

// Result aggregates every violation and warning found during a verification
// run.  A result is produced fresh per run and never mutated afterwards.
type Result struct {
	// The level the run was performed at.
	Level Level `json:"level"`

	// The violations found.  Any violation fails verification.
	Violations []Violation `json:"violations"`

	// Advisory findings that do not fail verification at this level.
	Warnings []Violation `json:"warnings"`
}

// Pass returns whether verification succeeded.
func (r *Result) Pass() bool {
	return len(r.Violations) == 0
}
