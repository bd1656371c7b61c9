package verify

import (
	"shale/ir"
)

// Programs that interpret their arguments as shell syntax.  Routing data
// through any of these defeats the quoting contract, so they are rejected
// outright rather than escaped.
var interpreterDenylist = map[string]bool{
	"eval":   true,
	"sh":     true,
	"bash":   true,
	"dash":   true,
	"ash":    true,
	"source": true,
	".":      true,
	"xargs":  true,
}

// Programs that produce unbounded output on their own.
var unboundedPrograms = map[string]bool{
	"yes": true,
}

// Device paths that act as unbounded data sources.
var unboundedDevices = map[string]bool{
	"/dev/zero":    true,
	"/dev/urandom": true,
	"/dev/random":  true,
	"/dev/full":    true,
}

// checkInjection flags commands that could turn argument data into command
// syntax.  The quoting contract makes interpolated values inert in argument
// position, so the residual risks are interpreter programs and invocations
// whose program name is itself computed at runtime.
func (v *verifier) checkInjection(cmd *ir.Command) {
	name := cmd.Program

	if name == "" {
		if len(cmd.Args) == 0 {
			v.violate(PropInjection, cmd.Span(), "dynamic invocation has no program")
			return
		}

		lit, ok := cmd.Args[0].(*ir.Literal)
		if !ok {
			v.violate(PropInjection, cmd.Span(),
				"program name is computed at runtime: only literal program names can be verified")
			return
		}

		name = lit.Text
	}

	if interpreterDenylist[name] {
		v.violate(PropInjection, cmd.Span(),
			"`%s` interprets its input as shell syntax and defeats the quoting contract", name)
	}
}

// checkResourceSafety flags commands matching known resource-exhaustion
// patterns.  These are violations at every level.
func (v *verifier) checkResourceSafety(cmd *ir.Command) {
	if unboundedPrograms[commandName(cmd)] {
		v.violate(PropResourceSafety, cmd.Span(),
			"`%s` produces unbounded output", commandName(cmd))
	}

	for _, arg := range cmd.Args {
		lit, ok := arg.(*ir.Literal)
		if !ok {
			continue
		}

		if unboundedDevices[lit.Text] {
			v.violate(PropResourceSafety, cmd.Span(),
				"`%s` is an unbounded data source", lit.Text)
		}
	}
}
