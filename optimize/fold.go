package optimize

import (
	"strconv"
	"strings"

	"shale/ir"
)

// foldValue folds a shell value whose operands are all compile-time
// constants into its literal result.  Folding mirrors the arithmetic and
// string semantics of the emitted script, so it never changes observable
// behavior.
func foldValue(value ir.Value) ir.Value {
	switch v := value.(type) {
	case *ir.Concat:
		return foldConcat(v)
	case *ir.Arithmetic:
		return foldArithmetic(v)
	case *ir.Comparison:
		return foldComparison(v)
	case *ir.Logical:
		return foldLogical(v)
	case *ir.Not:
		return foldNot(v)
	case *ir.Substitution:
		return &ir.Substitution{Cmd: foldCommand(v.Cmd)}
	default:
		// Literals and variables are already in normal form.
		return value
	}
}

// foldCommand folds the arguments of a command invocation.
func foldCommand(cmd *ir.Command) *ir.Command {
	args := make([]ir.Value, len(cmd.Args))
	for i, arg := range cmd.Args {
		args[i] = foldValue(arg)
	}

	return &ir.Command{NodeBase: ir.NewNodeBase(cmd.Span()), Program: cmd.Program, Args: args}
}

// foldConcat folds a concatenation, merging adjacent literal parts.  A
// concatenation of nothing but literals collapses to a single literal.
func foldConcat(concat *ir.Concat) ir.Value {
	var parts []ir.Value
	var run strings.Builder
	inRun := false

	flush := func() {
		if inRun {
			parts = append(parts, &ir.Literal{Text: run.String()})
			run.Reset()
			inRun = false
		}
	}

	for _, part := range concat.Parts {
		folded := foldValue(part)

		if lit, ok := folded.(*ir.Literal); ok {
			run.WriteString(lit.Text)
			inRun = true
			continue
		}

		flush()
		parts = append(parts, folded)
	}

	flush()

	if len(parts) == 1 {
		return parts[0]
	}

	return &ir.Concat{Parts: parts}
}

// foldArithmetic folds an arithmetic expression over literal integers.
// Division and modulo by zero are left unfolded so the failure stays a
// runtime error, exactly as the emitted script would behave.
func foldArithmetic(arith *ir.Arithmetic) ir.Value {
	lhs := foldValue(arith.Lhs)
	rhs := foldValue(arith.Rhs)

	a, aok := litInt(lhs)
	b, bok := litInt(rhs)
	if !aok || !bok {
		return &ir.Arithmetic{Op: arith.Op, Lhs: lhs, Rhs: rhs}
	}

	var result int64
	switch arith.Op {
	case ir.ArithAdd:
		result = a + b
	case ir.ArithSub:
		result = a - b
	case ir.ArithMul:
		result = a * b
	case ir.ArithDiv:
		if b == 0 {
			return &ir.Arithmetic{Op: arith.Op, Lhs: lhs, Rhs: rhs}
		}

		result = a / b
	case ir.ArithMod:
		if b == 0 {
			return &ir.Arithmetic{Op: arith.Op, Lhs: lhs, Rhs: rhs}
		}

		result = a % b
	}

	return &ir.Literal{Text: strconv.FormatInt(result, 10)}
}

// foldComparison folds a comparison over literal operands into the canonical
// boolean literal.
func foldComparison(cmp *ir.Comparison) ir.Value {
	lhs := foldValue(cmp.Lhs)
	rhs := foldValue(cmp.Rhs)

	out := func(result bool) ir.Value {
		return &ir.Literal{Text: boolText(result)}
	}

	switch cmp.Op {
	case ir.CmpStrEq, ir.CmpStrNe:
		l, lok := lhs.(*ir.Literal)
		r, rok := rhs.(*ir.Literal)
		if lok && rok {
			return out((l.Text == r.Text) == (cmp.Op == ir.CmpStrEq))
		}
	default:
		a, aok := litInt(lhs)
		b, bok := litInt(rhs)
		if aok && bok {
			switch cmp.Op {
			case ir.CmpEq:
				return out(a == b)
			case ir.CmpNe:
				return out(a != b)
			case ir.CmpLt:
				return out(a < b)
			case ir.CmpLe:
				return out(a <= b)
			case ir.CmpGt:
				return out(a > b)
			case ir.CmpGe:
				return out(a >= b)
			}
		}
	}

	return &ir.Comparison{Op: cmp.Op, Lhs: lhs, Rhs: rhs}
}

// foldLogical folds a logical connective when its left operand is a known
// boolean.  Both shell connectives short-circuit, so dropping the right
// operand on a deciding left operand matches runtime behavior even when the
// right operand has side effects.
func foldLogical(logic *ir.Logical) ir.Value {
	lhs := foldValue(logic.Lhs)
	rhs := foldValue(logic.Rhs)

	if b, ok := litBool(lhs); ok {
		if logic.Op == ir.LogicAnd {
			if !b {
				return &ir.Literal{Text: "false"}
			}

			return rhs
		}

		if b {
			return &ir.Literal{Text: "true"}
		}

		return rhs
	}

	return &ir.Logical{Op: logic.Op, Lhs: lhs, Rhs: rhs}
}

// foldNot folds a negation of a known boolean.
func foldNot(not *ir.Not) ir.Value {
	operand := foldValue(not.Operand)

	if b, ok := litBool(operand); ok {
		return &ir.Literal{Text: boolText(!b)}
	}

	return &ir.Not{Operand: operand}
}

// litInt extracts the integer value of a literal operand.
func litInt(value ir.Value) (int64, bool) {
	lit, ok := value.(*ir.Literal)
	if !ok {
		return 0, false
	}

	n, err := strconv.ParseInt(lit.Text, 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

// litBool extracts the boolean value of a canonical boolean literal.
func litBool(value ir.Value) (bool, bool) {
	lit, ok := value.(*ir.Literal)
	if !ok {
		return false, false
	}

	switch lit.Text {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

func boolText(b bool) string {
	if b {
		return "true"
	}

	return "false"
}
