package common

// Dialect identifies the target shell flavor.  Dialects only produce minor
// emission differences: the safety guarantees are identical for all of them.
type Dialect int

const (
	// DialectPosix targets the strict POSIX baseline (default).
	DialectPosix Dialect = iota

	// DialectDash targets the Debian Almquist shell.
	DialectDash

	// DialectAsh targets the BusyBox Almquist shell.
	DialectAsh
)

// dialectNames maps dialects to their configuration names.
var dialectNames = map[Dialect]string{
	DialectPosix: "posix",
	DialectDash:  "dash",
	DialectAsh:   "ash",
}

func (d Dialect) String() string {
	return dialectNames[d]
}

// DialectByName returns the dialect with the given configuration name if one
// exists.
func DialectByName(name string) (Dialect, bool) {
	for d, n := range dialectNames {
		if n == name {
			return d, true
		}
	}

	return DialectPosix, false
}
