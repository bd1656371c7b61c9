package verify

import (
	"fmt"

	"shale/effects"
	"shale/ir"
	"shale/report"
)

// Level selects how strict a verification run is.  Each level checks a
// superset of the properties of the levels below it, so a violation reported
// at one level is always reported at every higher level.
type Level int

const (
	// LevelBasic checks command injection and resource safety.
	// Non-determinism is reported as a warning only.
	LevelBasic Level = iota

	// LevelStrict adds determinism and idempotency readiness.
	LevelStrict

	// LevelParanoid additionally promotes every warning to a violation.
	LevelParanoid
)

var levelNames = map[Level]string{
	LevelBasic:    "basic",
	LevelStrict:   "strict",
	LevelParanoid: "paranoid",
}

func (l Level) String() string {
	return levelNames[l]
}

func (l Level) MarshalJSON() ([]byte, error) {
	return []byte(`"` + levelNames[l] + `"`), nil
}

// LevelByName looks up a verification level by its configuration name.
func LevelByName(name string) (Level, bool) {
	for level, levelName := range levelNames {
		if levelName == name {
			return level, true
		}
	}

	return 0, false
}

/* -------------------------------------------------------------------------- */

// Verify walks the tree rooted at node and checks it against the four safety
// properties at the given level.  The tree is never mutated; every violation
// found is collected into the result rather than aborting the walk.
func Verify(node ir.Node, info *effects.Info, level Level) *Result {
	v := &verifier{info: info, level: level, result: &Result{Level: level}}
	v.walkNode(node)
	return v.result
}

// verifier carries the state of a single verification run.
type verifier struct {
	// The effect analysis of the tree being verified.
	info *effects.Info

	// The level of the run.
	level Level

	// The result being accumulated.
	result *Result
}

// violate records a violation.
func (v *verifier) violate(property string, span *report.TextSpan, msg string, args ...interface{}) {
	v.result.Violations = append(v.result.Violations, Violation{
		Property: property,
		Span:     span,
		Message:  fmt.Sprintf(msg, args...),
	})
}

// warn records an advisory finding.  At the paranoid level every warning is
// promoted to a violation.
func (v *verifier) warn(property string, span *report.TextSpan, msg string, args ...interface{}) {
	if v.level >= LevelParanoid {
		v.violate(property, span, msg, args...)
		return
	}

	v.result.Warnings = append(v.result.Warnings, Violation{
		Property: property,
		Span:     span,
		Message:  fmt.Sprintf(msg, args...),
	})
}

/* -------------------------------------------------------------------------- */

func (v *verifier) walkNode(node ir.Node) {
	switch n := node.(type) {
	case *ir.Let:
		v.walkValue(n.Value)
	case *ir.Command:
		v.checkCommand(n)
	case *ir.If:
		v.walkValue(n.Cond)
		v.walkNode(n.Then)

		if n.Else != nil {
			v.walkNode(n.Else)
		}
	case *ir.Sequence:
		for _, child := range n.Nodes {
			v.walkNode(child)
		}
	}
}

func (v *verifier) walkValue(value ir.Value) {
	switch val := value.(type) {
	case *ir.Concat:
		for _, part := range val.Parts {
			v.walkValue(part)
		}
	case *ir.Substitution:
		v.checkCommand(val.Cmd)
	case *ir.Comparison:
		v.walkValue(val.Lhs)
		v.walkValue(val.Rhs)
	case *ir.Arithmetic:
		v.walkValue(val.Lhs)
		v.walkValue(val.Rhs)
	case *ir.Logical:
		v.walkValue(val.Lhs)
		v.walkValue(val.Rhs)
	case *ir.Not:
		v.walkValue(val.Operand)
	}
}

// checkCommand checks a single command invocation, whether it appears in
// statement position or inside a command substitution.
func (v *verifier) checkCommand(cmd *ir.Command) {
	v.checkInjection(cmd)
	v.checkResourceSafety(cmd)

	// Determinism and idempotency are judged against the command's intrinsic
	// classification only: effects carried in by substitution arguments are
	// attributed to the nested command when the argument walk reaches it.
	intrinsic := v.info.Intrinsic(cmd)

	if intrinsic.Has(effects.NonDeterministic) {
		kind := v.info.NonDeterminismKind(cmd)
		if v.level >= LevelStrict {
			v.violate(PropDeterminism, cmd.Span(),
				"`%s` is non-deterministic (%s): repeated runs produce different output", commandName(cmd), kind)
		} else {
			v.warn(PropDeterminism, cmd.Span(),
				"`%s` is non-deterministic (%s)", commandName(cmd), kind)
		}
	}

	if intrinsic.Has(effects.RequiresIdempotencyGuard) && v.level >= LevelStrict {
		v.violate(PropIdempotency, cmd.Span(),
			"`%s` is not idempotent: use the guarded variant so repeated runs succeed", commandName(cmd))
	}

	for _, arg := range cmd.Args {
		v.walkValue(arg)
	}
}

// commandName returns the display name of a command's program, resolving the
// literal head of a dynamic invocation where possible.
func commandName(cmd *ir.Command) string {
	if cmd.Program != "" {
		return cmd.Program
	}

	if len(cmd.Args) > 0 {
		if lit, ok := cmd.Args[0].(*ir.Literal); ok {
			return lit.Text
		}
	}

	return "<dynamic>"
}
