package report

import "fmt"

// LocalError is a compilation error that occurs in a context in which the
// source text is known by the error handler and thus doesn't need to be
// passed along with the error.
type LocalError struct {
	// The error message.
	Message string

	// The span over which the error occurs.  May be nil when no position
	// information is available.
	Span *TextSpan
}

func (le *LocalError) Error() string {
	return le.Message
}

// Raise creates a new local compile error.
func Raise(span *TextSpan, msg string, args ...interface{}) *LocalError {
	return &LocalError{Message: fmt.Sprintf(msg, args...), Span: span}
}

// -----------------------------------------------------------------------------

// InternalError represents an internal compiler error: an invariant violation
// within the pipeline itself.  These are never expected during normal
// operation and always indicate a defect.
type InternalError struct {
	// The error message.
	Message string
}

func (ie *InternalError) Error() string {
	return "internal compiler error: " + ie.Message
}

// ICE panics with an internal compiler error.  Pipeline stages use it to fail
// loudly when handed input an earlier stage should have rejected.
// NB: The panic is converted to an error by CatchErrors at the stage boundary.
func ICE(msg string, args ...interface{}) {
	panic(&InternalError{Message: fmt.Sprintf(msg, args...)})
}

// -----------------------------------------------------------------------------

// CatchErrors catches any errors thrown by a `panic` during a stage of
// compilation and stores them into *err.  In effect, this handler determines
// where "unrecoverable" errors within a given stage of the pipeline should
// stop bubbling.
// NB: This function must ALWAYS be deferred.
func CatchErrors(err *error) {
	if x := recover(); x != nil {
		switch v := x.(type) {
		case *LocalError:
			*err = v
		case *InternalError:
			*err = v
		case error:
			*err = v
		default:
			// Anything else is a runtime panic we did not raise ourselves:
			// still a defect, but keep the payload.
			*err = &InternalError{Message: fmt.Sprint(v)}
		}
	}
}
