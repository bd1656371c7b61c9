package report

import "sync"

// LogLevel selects how much diagnostic output a transpiler run displays.
type LogLevel int

const (
	// LogLevelSilent suppresses all output.  Errors are still recorded so
	// AnyErrors reflects the run's outcome.
	LogLevelSilent LogLevel = iota

	// LogLevelError displays errors only.
	LogLevelError

	// LogLevelWarn additionally displays verification warnings.
	LogLevelWarn

	// LogLevelVerbose displays everything, including success and
	// informational messages.  This is the default.
	LogLevelVerbose
)

// LogLevelByName maps a CLI selector value onto a log level.  Unrecognized
// names resolve to the verbose default.
func LogLevelByName(name string) LogLevel {
	switch name {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn":
		return LogLevelWarn
	default:
		return LogLevelVerbose
	}
}

// reporter serializes the transpiler's diagnostic output.  Display calls
// take the mutex: independent transpilations may run concurrently and their
// findings must not interleave mid-line.
type reporter struct {
	m sync.Mutex

	// The selected log level.
	logLevel LogLevel

	// Whether an error has been reported.
	isErr bool
}

// rep is the global reporter instance.
var rep *reporter

// InitReporter initializes the global reporter to the given log level.  A
// second call is a no-op.
func InitReporter(logLevel LogLevel) {
	if rep == nil {
		rep = &reporter{logLevel: logLevel}
	}
}

// AnyErrors returns whether any errors were reported.
func AnyErrors() bool {
	return rep != nil && rep.isErr
}
