package effects

import "strings"

// Effect is a tag describing an observable capability of an IR node.
type Effect uint8

const (
	// ReadsEnv marks nodes that read the process environment.
	ReadsEnv Effect = 1 << iota

	// WritesFilesystem marks nodes that mutate the filesystem.
	WritesFilesystem

	// SpawnsProcess marks nodes that spawn an external process.
	SpawnsProcess

	// Network marks nodes that perform network access.
	Network

	// NonDeterministic marks nodes whose output varies across runs.  The
	// kind of non-determinism is recorded separately per command.
	NonDeterministic

	// RequiresIdempotencyGuard marks nodes whose repeated execution fails
	// unless the idempotent command variant is used.
	RequiresIdempotencyGuard
)

// effectNames maps effects to their display names.
var effectNames = []struct {
	effect Effect
	name   string
}{
	{ReadsEnv, "reads-env"},
	{WritesFilesystem, "writes-filesystem"},
	{SpawnsProcess, "spawns-process"},
	{Network, "network"},
	{NonDeterministic, "non-deterministic"},
	{RequiresIdempotencyGuard, "requires-idempotency-guard"},
}

// Set is a set of effects.
type Set uint8

// Has returns whether the set contains the given effect.
func (s Set) Has(e Effect) bool {
	return s&Set(e) != 0
}

// Union returns the union of two sets.
func (s Set) Union(other Set) Set {
	return s | other
}

// With returns the set extended with the given effect.
func (s Set) With(e Effect) Set {
	return s | Set(e)
}

// String returns the set's display form.
func (s Set) String() string {
	if s == 0 {
		return "pure"
	}

	var names []string
	for _, en := range effectNames {
		if s.Has(en.effect) {
			names = append(names, en.name)
		}
	}

	return strings.Join(names, "+")
}

// NDKind identifies a source of non-determinism.
type NDKind string

const (
	NDClock  NDKind = "clock"
	NDRandom NDKind = "random"
)
