package report

import (
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// ReportError reports a compilation error in the given source text.  The
// srcPath is the representative path to the erroneous source file.  The error
// may carry a span, in which case the offending source text is displayed with
// caret underlining.
func ReportError(srcPath, source string, err error) {
	if rep.logLevel == LogLevelSilent {
		rep.isErr = true
		return
	}

	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true

	if le, ok := err.(*LocalError); ok && le.Span != nil {
		pterm.Error.Printfln("%s:%s: %s", srcPath, le.Span, le.Message)
		displaySourceText(source, le.Span)
	} else if spanned, ok := err.(interface{ ErrorSpan() *TextSpan }); ok && spanned.ErrorSpan() != nil {
		pterm.Error.Printfln("%s:%s: %s", srcPath, spanned.ErrorSpan(), err.Error())
		displaySourceText(source, spanned.ErrorSpan())
	} else {
		pterm.Error.Printfln("%s: %s", srcPath, err.Error())
	}
}

// ReportWarning reports a compilation warning.  The arguments are of the same
// form as those to ReportError.
func ReportWarning(srcPath string, span *TextSpan, msg string) {
	if rep.logLevel < LogLevelWarn {
		return
	}

	rep.m.Lock()
	defer rep.m.Unlock()

	if span != nil {
		pterm.Warning.Printfln("%s:%s: %s", srcPath, span, msg)
	} else {
		pterm.Warning.Printfln("%s: %s", srcPath, msg)
	}
}

// ReportInfo reports a verbose-only informational message.
func ReportInfo(msg string, args ...interface{}) {
	if rep.logLevel == LogLevelVerbose {
		pterm.Info.Printfln(msg, args...)
	}
}

// ReportSuccess reports a verbose-only success message.
func ReportSuccess(msg string, args ...interface{}) {
	if rep.logLevel == LogLevelVerbose {
		pterm.Success.Printfln(msg, args...)
	}
}

// ReportFatal reports a fatal error and exits the program.  These are
// expected errors that generally result from invalid configuration of some
// form: missing project file, unwritable output path, etc.
func ReportFatal(msg string, args ...interface{}) {
	if rep == nil || rep.logLevel > LogLevelSilent {
		pterm.Error.Printfln(msg, args...)
	}

	os.Exit(1)
}

// -----------------------------------------------------------------------------

// displaySourceText displays a segment of source text defined by a text span
// with caret underlining.
func displaySourceText(source string, span *TextSpan) {
	// Collect all the source lines containing the given source text.
	var lines []string
	for ln, line := range strings.Split(source, "\n") {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(line, "\t", "    "))
		}
	}

	if len(lines) == 0 {
		return
	}

	// Calculate the maximum line number length and build the format string
	// used to left-pad line numbers.
	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		pterm.Printf(lineNumFmtStr, i+span.StartLine+1)
		pterm.Println(line)

		// The number of spaces before caret underlining begins.  For any line
		// which is not the starting line this is always zero since the
		// underlining continues from the previous line.
		carretPrefixCount := 0
		if i == 0 {
			carretPrefixCount = span.StartCol
		}

		// The number of characters at the end of the line that should not be
		// underlined.  Only the last line leaves a suffix bare.
		carretSuffixCount := 0
		if i == len(lines)-1 {
			carretSuffixCount = len(line) - span.EndCol
		}

		carretCount := len(line) - carretSuffixCount - carretPrefixCount
		if carretCount < 1 {
			carretCount = 1
		}

		pterm.Print(strings.Repeat(" ", maxLineNumLen), " | ")
		pterm.Print(strings.Repeat(" ", carretPrefixCount))
		pterm.Println(pterm.FgRed.Sprint(strings.Repeat("^", carretCount)))
	}

	pterm.Println()
}
