package emit

import (
	"strconv"
	"strings"

	"shale/common"
	"shale/ir"
	"shale/report"
)

// Emit renders the tree rooted at node as a self-contained POSIX shell
// script.  Emission is deterministic: the same tree always produces
// byte-identical text.  Malformed trees indicate a pipeline defect and fail
// loudly rather than producing unsafe output.
func Emit(node ir.Node, dialect common.Dialect) string {
	e := &emitter{dialect: dialect}

	e.emitHeader(node)
	e.emitNode(node)

	return e.sb.String()
}

// emitter carries the output buffer and indentation state of an emission.
type emitter struct {
	sb      strings.Builder
	dialect common.Dialect
	indent  int
}

// line writes a single indented line of script text.
func (e *emitter) line(text string) {
	for i := 0; i < e.indent; i++ {
		e.sb.WriteString("    ")
	}

	e.sb.WriteString(text)
	e.sb.WriteByte('\n')
}

// emitHeader writes the shebang, the shell option preamble, and definitions
// for every runtime helper the script references.
func (e *emitter) emitHeader(node ir.Node) {
	if e.dialect == common.DialectDash {
		e.line("#!/bin/dash")
	} else {
		e.line("#!/bin/sh")
	}

	e.line("set -euf")
	e.line("")

	used := collectHelpers(node)
	for _, helper := range runtimeHelpers {
		if used[helper.Name] {
			for _, defLine := range strings.Split(helper.Body, "\n") {
				e.line(defLine)
			}

			e.line("")
		}
	}
}

/* -------------------------------------------------------------------------- */

func (e *emitter) emitNode(node ir.Node) {
	switch n := node.(type) {
	case *ir.Let:
		checkIdent(n.Name)
		e.line(n.Name + "=" + e.valueText(n.Value))
	case *ir.Command:
		e.line(e.commandText(n))
	case *ir.If:
		e.emitIf(n)
	case *ir.Sequence:
		for _, child := range n.Nodes {
			e.emitNode(child)
		}
	case *ir.Exit:
		e.line("exit " + strconv.Itoa(n.Code))
	case *ir.Noop:
		e.line(":")
	default:
		report.ICE("emitter reached an unknown node kind")
	}
}

func (e *emitter) emitIf(stmt *ir.If) {
	e.line("if " + e.testText(stmt.Cond) + "; then")

	e.indent++
	e.emitBranch(stmt.Then)
	e.indent--

	if stmt.Else != nil {
		e.line("else")

		e.indent++
		e.emitBranch(stmt.Else)
		e.indent--
	}

	e.line("fi")
}

// emitBranch emits a conditional branch body.  Shell requires at least one
// statement per branch, so an empty branch becomes the null command.
func (e *emitter) emitBranch(node ir.Node) {
	if seq, ok := node.(*ir.Sequence); ok && len(seq.Nodes) == 0 {
		e.line(":")
		return
	}

	e.emitNode(node)
}

/* -------------------------------------------------------------------------- */

// commandText renders a command invocation.  Fixed program names are emitted
// bare after validation; the head of a dynamic invocation is emitted quoted
// like any other value, which is valid in command position and keeps computed
// names inert as words.
func (e *emitter) commandText(cmd *ir.Command) string {
	var words []string

	args := cmd.Args
	if cmd.Program != "" {
		if !isSafeProgram(cmd.Program) {
			report.ICE("emitter asked to run unsafe program name `%s`", cmd.Program)
		}

		words = append(words, cmd.Program)
	} else {
		if len(args) == 0 {
			report.ICE("dynamic invocation has no program")
		}

		words = append(words, e.valueText(args[0]))
		args = args[1:]
	}

	for _, arg := range args {
		words = append(words, e.valueText(arg))
	}

	return strings.Join(words, " ")
}

// valueText renders a value in word position: an assignment right-hand side
// or a command argument.  Every variable reference and command substitution
// is double-quoted; these rules are mechanical per node kind, never skipped
// based on content.
func (e *emitter) valueText(value ir.Value) string {
	switch v := value.(type) {
	case *ir.Literal:
		return quoteLiteral(v.Text)
	case *ir.Variable:
		checkIdent(v.Name)
		return `"$` + v.Name + `"`
	case *ir.Concat:
		var parts []string
		for _, part := range v.Parts {
			parts = append(parts, e.valueText(part))
		}

		return strings.Join(parts, "")
	case *ir.Substitution:
		return `"$(` + e.commandText(v.Cmd) + `)"`
	case *ir.Arithmetic:
		return `"$((` + e.arithText(v) + `))"`
	case *ir.Comparison, *ir.Logical, *ir.Not:
		// A test in word position materializes its canonical boolean.
		return `"$(if ` + e.testText(value) + `; then printf 'true'; else printf 'false'; fi)"`
	default:
		report.ICE("emitter reached an unknown value kind")
		return "" // unreachable
	}
}

// arithText renders the body of an arithmetic expansion.  Literal numerals
// appear bare and variables expand unquoted, which is safe inside `$(( ))`.
func (e *emitter) arithText(arith *ir.Arithmetic) string {
	return e.arithOperand(arith.Lhs) + " " + arith.Op.Token() + " " + e.arithOperand(arith.Rhs)
}

func (e *emitter) arithOperand(value ir.Value) string {
	switch v := value.(type) {
	case *ir.Literal:
		if !isNumeral(v.Text) {
			report.ICE("emitter asked to expand non-numeric literal `%s` in arithmetic position", v.Text)
		}

		return v.Text
	case *ir.Variable:
		checkIdent(v.Name)
		return "$" + v.Name
	case *ir.Arithmetic:
		return "(" + e.arithText(v) + ")"
	case *ir.Substitution:
		return `$(` + e.commandText(v.Cmd) + `)`
	default:
		report.ICE("emitter reached a non-arithmetic operand in arithmetic position")
		return "" // unreachable
	}
}

/* -------------------------------------------------------------------------- */

// testText renders a value in test position: the condition of an `if`.
func (e *emitter) testText(value ir.Value) string {
	switch v := value.(type) {
	case *ir.Comparison:
		return "[ " + e.valueText(v.Lhs) + " " + v.Op.Token() + " " + e.valueText(v.Rhs) + " ]"
	case *ir.Logical:
		return e.testOperand(v.Lhs) + " " + v.Op.Token() + " " + e.testOperand(v.Rhs)
	case *ir.Not:
		return "! " + e.testOperand(v.Operand)
	default:
		// Any other boolean value is tested against the canonical `true`.
		return `[ ` + e.valueText(value) + ` = "true" ]`
	}
}

// testOperand renders a logical operand, bracing nested connectives so the
// shell's flat `&&`/`||` precedence cannot reassociate them.
func (e *emitter) testOperand(value ir.Value) string {
	if _, ok := value.(*ir.Logical); ok {
		return "{ " + e.testText(value) + "; }"
	}

	return e.testText(value)
}
