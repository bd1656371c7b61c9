package effects

import "shale/ir"

// Info holds the effect sets computed for an IR tree.  Effects are auxiliary
// data: they are kept out of the IR nodes themselves so the optimizer can
// stay effect-agnostic, and they are recomputed from scratch whenever the IR
// changes.
type Info struct {
	// The effect set of each node.
	sets map[ir.Node]Set

	// The kind of non-determinism per non-deterministic command.
	ndKinds map[*ir.Command]NDKind
}

// Of returns the effect set of the given node.
func (info *Info) Of(n ir.Node) Set {
	return info.sets[n]
}

// NonDeterminismKind returns the kind of non-determinism of the given
// command, or the empty kind if the command is deterministic.
func (info *Info) NonDeterminismKind(cmd *ir.Command) NDKind {
	return info.ndKinds[cmd]
}

// Root returns the effect set of the whole analyzed tree.
func (info *Info) Root(root ir.Node) Set {
	return info.sets[root]
}

// Intrinsic returns the effects intrinsic to the command itself, excluding
// anything contributed by its argument values.  A command nested in a
// substitution argument carries its own intrinsic set.
func (info *Info) Intrinsic(cmd *ir.Command) Set {
	set := classifyProgram(cmd)

	if _, ok := ndPrograms[programName(cmd)]; ok {
		set = set.With(NonDeterministic)
	}

	return set
}

// -----------------------------------------------------------------------------

// Analyze computes the effect set of every node in the given IR tree as a
// bottom-up fold: a compound node's set is the union of its children's sets
// plus any effect intrinsic to the node itself.
func Analyze(root ir.Node) *Info {
	info := &Info{
		sets:    make(map[ir.Node]Set),
		ndKinds: make(map[*ir.Command]NDKind),
	}

	info.analyzeNode(root)
	return info
}

// analyzeNode computes, records, and returns the effect set of a node.
func (info *Info) analyzeNode(n ir.Node) Set {
	var set Set

	switch v := n.(type) {
	case *ir.Let:
		set = info.analyzeValue(v.Value)
	case *ir.Command:
		set = info.analyzeCommand(v)
	case *ir.If:
		set = info.analyzeValue(v.Cond)
		set = set.Union(info.analyzeNode(v.Then))
		if v.Else != nil {
			set = set.Union(info.analyzeNode(v.Else))
		}
	case *ir.Sequence:
		for _, node := range v.Nodes {
			set = set.Union(info.analyzeNode(node))
		}
	case *ir.Exit, *ir.Noop:
		// No intrinsic effects.
	}

	info.sets[n] = set
	return set
}

// analyzeValue computes the effect set of a shell value.  Values themselves
// are effect-free except for the commands embedded in substitutions.
func (info *Info) analyzeValue(v ir.Value) Set {
	var set Set

	switch val := v.(type) {
	case *ir.Concat:
		for _, part := range val.Parts {
			set = set.Union(info.analyzeValue(part))
		}
	case *ir.Substitution:
		set = info.analyzeCommand(val.Cmd)
	case *ir.Comparison:
		set = info.analyzeValue(val.Lhs).Union(info.analyzeValue(val.Rhs))
	case *ir.Arithmetic:
		set = info.analyzeValue(val.Lhs).Union(info.analyzeValue(val.Rhs))
	case *ir.Logical:
		set = info.analyzeValue(val.Lhs).Union(info.analyzeValue(val.Rhs))
	case *ir.Not:
		set = info.analyzeValue(val.Operand)
	}

	return set
}

// analyzeCommand classifies a command against the fixed program tables and
// folds in the effects of its argument values.
func (info *Info) analyzeCommand(cmd *ir.Command) Set {
	set := classifyProgram(cmd)

	if kind, ok := ndPrograms[programName(cmd)]; ok {
		set = set.With(NonDeterministic)
		info.ndKinds[cmd] = kind
	}

	for _, arg := range cmd.Args {
		set = set.Union(info.analyzeValue(arg))
	}

	info.sets[cmd] = set
	return set
}

// -----------------------------------------------------------------------------
// The fixed classification tables.  Programs not listed in any table are
// external commands: they spawn a process and nothing more is assumed.

// shellBuiltins are programs executed by the shell itself without spawning.
var shellBuiltins = map[string]bool{
	"echo":   true,
	"printf": true,
	"test":   true,
	"exit":   true,
	":":      true,
}

// envPrograms read the process environment.
var envPrograms = map[string]bool{
	"printenv": true,
	"env":      true,
}

// networkPrograms perform network access.
var networkPrograms = map[string]bool{
	"curl": true,
	"wget": true,
}

// fsWritePrograms mutate the filesystem.
var fsWritePrograms = map[string]bool{
	"mkdir":            true,
	"rm":               true,
	"ln":               true,
	"cp":               true,
	"mv":               true,
	"touch":            true,
	"shale_write_file": true,
}

// ndPrograms produce non-deterministic output.
var ndPrograms = map[string]NDKind{
	"date":       NDClock,
	"shale_rand": NDRandom,
}

// guardFlags maps guard-sensitive programs to the leading flag of their
// idempotent variant.  A bare invocation of one of these programs requires
// an idempotency guard; the flagged variant does not.
var guardFlags = map[string]string{
	"mkdir": "-p",
	"rm":    "-f",
	"ln":    "-sf",
}

// programName resolves the effective program name of a command.  A dynamic
// invocation with a literal head classifies as that head; a computed head
// resolves to the empty name and takes the conservative default.
func programName(cmd *ir.Command) string {
	if cmd.Program != "" {
		return cmd.Program
	}

	if len(cmd.Args) > 0 {
		if lit, ok := cmd.Args[0].(*ir.Literal); ok {
			return lit.Text
		}
	}

	return ""
}

// classifyProgram returns the intrinsic effect set of a command based on its
// program name and fixed leading flags.
func classifyProgram(cmd *ir.Command) Set {
	var set Set
	name := programName(cmd)

	if !shellBuiltins[name] {
		set = set.With(SpawnsProcess)
	}

	if envPrograms[name] {
		set = set.With(ReadsEnv)
	}

	if networkPrograms[name] {
		set = set.With(Network)
	}

	if fsWritePrograms[name] {
		set = set.With(WritesFilesystem)

		if flag, ok := guardFlags[name]; ok && !hasLeadingFlag(cmd, flag) {
			set = set.With(RequiresIdempotencyGuard)
		}
	}

	return set
}

// hasLeadingFlag returns whether the command's first argument after the
// program name is the given literal flag.
func hasLeadingFlag(cmd *ir.Command, flag string) bool {
	args := cmd.Args
	if cmd.Program == "" && len(args) > 0 {
		args = args[1:]
	}

	if len(args) == 0 {
		return false
	}

	lit, ok := args[0].(*ir.Literal)
	return ok && lit.Text == flag
}
