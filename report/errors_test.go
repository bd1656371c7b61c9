package report

import (
	"errors"
	"strings"
	"testing"
)

// --- helpers -----------------------------------------------------------------

func catchPanic(payload interface{}) (err error) {
	defer CatchErrors(&err)
	panic(payload)
}

// --- tests -------------------------------------------------------------------

func TestRaiseCarriesSpanAndMessage(t *testing.T) {
	span := &TextSpan{StartLine: 2, StartCol: 4, EndLine: 2, EndCol: 9}
	err := Raise(span, "undefined variable: `%s`", "target")

	if err.Error() != "undefined variable: `target`" {
		t.Errorf("message: got %q", err.Error())
	}
	if err.Span != span {
		t.Error("span must be the one given")
	}
}

func TestCatchErrorsLocalError(t *testing.T) {
	raised := Raise(nil, "bad input")

	err := catchPanic(raised)
	if err != raised {
		t.Fatalf("want the raised error back, got %v", err)
	}
}

func TestCatchErrorsInternalError(t *testing.T) {
	err := func() (err error) {
		defer CatchErrors(&err)
		ICE("unreachable node kind %d", 42)
		return
	}()

	var ie *InternalError
	if !errors.As(err, &ie) {
		t.Fatalf("want *InternalError, got %T", err)
	}
	if !strings.HasPrefix(err.Error(), "internal compiler error: ") {
		t.Errorf("message: got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "unreachable node kind 42") {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestCatchErrorsForeignPanic(t *testing.T) {
	err := catchPanic("index out of range")

	var ie *InternalError
	if !errors.As(err, &ie) {
		t.Fatalf("want *InternalError for a foreign panic, got %T", err)
	}
	if !strings.Contains(err.Error(), "index out of range") {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestCatchErrorsNoPanic(t *testing.T) {
	err := func() (err error) {
		defer CatchErrors(&err)
		return
	}()

	if err != nil {
		t.Fatalf("want nil when nothing panics, got %v", err)
	}
}

func TestTextSpanString(t *testing.T) {
	span := &TextSpan{StartLine: 0, StartCol: 0, EndLine: 0, EndCol: 4}
	if span.String() != "1:1" {
		t.Errorf("got %q", span.String())
	}

	span = &TextSpan{StartLine: 9, StartCol: 15, EndLine: 9, EndCol: 20}
	if span.String() != "10:16" {
		t.Errorf("got %q", span.String())
	}
}

func TestNewSpanOver(t *testing.T) {
	start := &TextSpan{StartLine: 1, StartCol: 2, EndLine: 1, EndCol: 5}
	end := &TextSpan{StartLine: 3, StartCol: 0, EndLine: 3, EndCol: 7}

	over := NewSpanOver(start, end)
	if over.StartLine != 1 || over.StartCol != 2 || over.EndLine != 3 || over.EndCol != 7 {
		t.Errorf("got %+v", over)
	}
}

func TestLogLevelByName(t *testing.T) {
	cases := map[string]LogLevel{
		"silent":  LogLevelSilent,
		"error":   LogLevelError,
		"warn":    LogLevelWarn,
		"verbose": LogLevelVerbose,
		"bogus":   LogLevelVerbose,
	}

	for name, want := range cases {
		if got := LogLevelByName(name); got != want {
			t.Errorf("LogLevelByName(%q) = %d, want %d", name, got, want)
		}
	}
}
