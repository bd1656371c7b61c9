package transpile

import (
	"shale/common"
	"shale/effects"
	"shale/emit"
	"shale/ir"
	"shale/lower"
	"shale/optimize"
	"shale/syntax"
	"shale/validate"
	"shale/verify"
)

// Config carries the options of a single transpilation.
type Config struct {
	// The target shell dialect.
	Dialect common.Dialect

	// The verification level.
	VerifyLevel verify.Level

	// Whether the optimizer runs.
	Optimize bool

	// Whether the verification result is serialized as an auxiliary proof
	// artifact alongside the script.
	EmitProof bool
}

// DefaultConfig returns the configuration used when none is given: the POSIX
// baseline dialect, strict verification, and the optimizer enabled.
func DefaultConfig() Config {
	return Config{
		Dialect:     common.DialectPosix,
		VerifyLevel: verify.LevelStrict,
		Optimize:    true,
	}
}

// Result is the product of a successful transpilation.  Verification
// findings are data, not errors: a script is returned even when verification
// fails so the caller can decide whether to act on the violations.
type Result struct {
	// The emitted shell script.
	Script string

	// The verification result for the emitted script.
	Verification *verify.Result

	// The effect set of the whole program.
	Effects effects.Set
}

// Transpile runs the full pipeline over the given source text: validation,
// lowering, optimization, effect analysis, verification, and emission.  The
// pipeline is a pure function of its input: the same source and config always
// produce the same result, including the same errors.
func Transpile(src string, cfg Config) (*Result, error) {
	root, err := front(src, cfg.Dialect)
	if err != nil {
		return nil, err
	}

	root = optimize.Optimize(root, cfg.Optimize)

	// Effects are derived data: recompute after the tree has changed.
	info := effects.Analyze(root)

	return &Result{
		Script:       emit.Emit(root, cfg.Dialect),
		Verification: verify.Verify(root, info, cfg.VerifyLevel),
		Effects:      info.Root(root),
	}, nil
}

// Check runs validation and lowering only, for fast feedback without
// emission.
func Check(src string) error {
	_, err := front(src, common.DialectPosix)
	return err
}

// front runs the front half of the pipeline: parsing, validation, and
// lowering to the shell tree.
func front(src string, dialect common.Dialect) (ir.Node, error) {
	file, err := syntax.Parse(src)
	if err != nil {
		return nil, err
	}

	unit, err := validate.Validate(file)
	if err != nil {
		return nil, err
	}

	return lower.Lower(unit, dialect)
}
