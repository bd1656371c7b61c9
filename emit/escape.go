package emit

import (
	"strings"

	"shale/report"
)

// quoteLiteral renders a literal string as a shell word that expands to
// exactly the literal text.  Literals free of characters that are special
// inside double quotes are double-quoted; everything else is single-quoted,
// with embedded single quotes split out as `'\''`.
func quoteLiteral(text string) string {
	if !strings.ContainsAny(text, "$`\"\\!") {
		return `"` + text + `"`
	}

	return "'" + strings.ReplaceAll(text, "'", `'\''`) + "'"
}

// isSafeIdent reports whether a name matches the safe-identifier pattern
// under which it may be emitted unquoted as a variable name.
func isSafeIdent(name string) bool {
	if name == "" {
		return false
	}

	for i, r := range name {
		switch {
		case r == '_':
		case 'a' <= r && r <= 'z':
		case 'A' <= r && r <= 'Z':
		case '0' <= r && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// isSafeProgram reports whether a program name may be emitted unquoted in
// command position.  Program names are compiler-chosen, so anything outside
// this pattern indicates a pipeline defect.
func isSafeProgram(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == '.' || r == '/' || r == ':':
		case 'a' <= r && r <= 'z':
		case 'A' <= r && r <= 'Z':
		case '0' <= r && r <= '9':
		default:
			return false
		}
	}

	return true
}

// isNumeral reports whether text is a decimal numeral that may appear bare
// inside an arithmetic expansion.  Leading zeros are excluded because the
// shell reads a `0` prefix as octal.
func isNumeral(text string) bool {
	if strings.HasPrefix(text, "-") {
		text = text[1:]
	}

	if text == "" || (len(text) > 1 && text[0] == '0') {
		return false
	}

	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// checkIdent validates a variable name before it is interpolated.
func checkIdent(name string) {
	if !isSafeIdent(name) {
		report.ICE("emitter asked to interpolate unsafe variable name `%s`", name)
	}
}
