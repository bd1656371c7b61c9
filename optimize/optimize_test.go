package optimize

import (
	"reflect"
	"testing"

	"shale/ir"
)

// --- helpers -----------------------------------------------------------------

func lit(text string) *ir.Literal {
	return &ir.Literal{Text: text}
}

func wantLiteral(t *testing.T, v ir.Value, text string) {
	t.Helper()
	l, ok := v.(*ir.Literal)
	if !ok {
		t.Fatalf("want literal %q, got %#v", text, v)
	}
	if l.Text != text {
		t.Fatalf("want literal %q, got %q", text, l.Text)
	}
}

// --- tests -------------------------------------------------------------------

func TestFoldArithmetic(t *testing.T) {
	node := &ir.Let{Name: "n", Value: &ir.Arithmetic{Op: ir.ArithAdd, Lhs: lit("1"), Rhs: lit("2")}}

	opt := Optimize(node, true).(*ir.Let)
	wantLiteral(t, opt.Value, "3")
}

func TestFoldNestedArithmetic(t *testing.T) {
	inner := &ir.Arithmetic{Op: ir.ArithMul, Lhs: lit("3"), Rhs: lit("4")}
	node := &ir.Let{Name: "n", Value: &ir.Arithmetic{Op: ir.ArithSub, Lhs: inner, Rhs: lit("2")}}

	opt := Optimize(node, true).(*ir.Let)
	wantLiteral(t, opt.Value, "10")
}

func TestNeverFoldDivisionByZero(t *testing.T) {
	node := &ir.Let{Name: "n", Value: &ir.Arithmetic{Op: ir.ArithDiv, Lhs: lit("1"), Rhs: lit("0")}}

	opt := Optimize(node, true).(*ir.Let)
	if _, ok := opt.Value.(*ir.Arithmetic); !ok {
		t.Fatalf("division by zero must stay a runtime error, got %#v", opt.Value)
	}
}

func TestFoldConcat(t *testing.T) {
	node := &ir.Let{Name: "s", Value: &ir.Concat{Parts: []ir.Value{lit("a"), lit("b"), lit("c")}}}

	opt := Optimize(node, true).(*ir.Let)
	wantLiteral(t, opt.Value, "abc")
}

func TestFoldConcatMergesLiteralRuns(t *testing.T) {
	v := &ir.Variable{Name: "x"}
	node := &ir.Let{Name: "s", Value: &ir.Concat{Parts: []ir.Value{lit("a"), lit("b"), v, lit("c")}}}

	opt := Optimize(node, true).(*ir.Let)
	concat, ok := opt.Value.(*ir.Concat)
	if !ok || len(concat.Parts) != 3 {
		t.Fatalf("want 3 parts after merging, got %#v", opt.Value)
	}
	wantLiteral(t, concat.Parts[0], "ab")
}

func TestFoldComparison(t *testing.T) {
	node := &ir.Let{Name: "b", Value: &ir.Comparison{Op: ir.CmpLt, Lhs: lit("1"), Rhs: lit("2")}}

	opt := Optimize(node, true).(*ir.Let)
	wantLiteral(t, opt.Value, "true")
}

func TestFoldStringComparison(t *testing.T) {
	node := &ir.Let{Name: "b", Value: &ir.Comparison{Op: ir.CmpStrNe, Lhs: lit("a"), Rhs: lit("a")}}

	opt := Optimize(node, true).(*ir.Let)
	wantLiteral(t, opt.Value, "false")
}

func TestFoldLogicalShortCircuit(t *testing.T) {
	effectful := &ir.Comparison{Op: ir.CmpStrEq, Lhs: &ir.Variable{Name: "x"}, Rhs: lit("true")}

	and := &ir.Logical{Op: ir.LogicAnd, Lhs: lit("false"), Rhs: effectful}
	node := Optimize(&ir.Let{Name: "b", Value: and}, true).(*ir.Let)
	wantLiteral(t, node.Value, "false")

	or := &ir.Logical{Op: ir.LogicOr, Lhs: lit("true"), Rhs: effectful}
	node = Optimize(&ir.Let{Name: "b", Value: or}, true).(*ir.Let)
	wantLiteral(t, node.Value, "true")
}

func TestFoldNot(t *testing.T) {
	node := &ir.Let{Name: "b", Value: &ir.Not{Operand: lit("true")}}

	opt := Optimize(node, true).(*ir.Let)
	wantLiteral(t, opt.Value, "false")
}

func TestConstantIfSelectsBranch(t *testing.T) {
	thenCmd := &ir.Command{Program: "echo", Args: []ir.Value{lit("yes")}}
	elseCmd := &ir.Command{Program: "echo", Args: []ir.Value{lit("no")}}

	cond := &ir.If{
		Cond: &ir.Comparison{Op: ir.CmpEq, Lhs: lit("1"), Rhs: lit("1")},
		Then: thenCmd,
		Else: elseCmd,
	}

	opt := Optimize(cond, true)
	cmd, ok := opt.(*ir.Command)
	if !ok {
		t.Fatalf("want taken branch, got %#v", opt)
	}
	wantLiteral(t, cmd.Args[0], "yes")
}

func TestConstantIfFalseWithoutElse(t *testing.T) {
	cond := &ir.If{
		Cond: &ir.Comparison{Op: ir.CmpEq, Lhs: lit("1"), Rhs: lit("2")},
		Then: &ir.Command{Program: "echo", Args: []ir.Value{lit("never")}},
	}

	if _, ok := Optimize(cond, true).(*ir.Noop); !ok {
		t.Fatal("untaken if without else must become a noop")
	}
}

func TestDeadCodeAfterExit(t *testing.T) {
	seq := &ir.Sequence{Nodes: []ir.Node{
		&ir.Command{Program: "echo", Args: []ir.Value{lit("hi")}},
		&ir.Exit{Code: 0},
		&ir.Command{Program: "echo", Args: []ir.Value{lit("dead")}},
	}}

	opt := Optimize(seq, true).(*ir.Sequence)
	if len(opt.Nodes) != 2 {
		t.Fatalf("want nodes after exit dropped, got %d nodes", len(opt.Nodes))
	}
	if _, ok := opt.Nodes[1].(*ir.Exit); !ok {
		t.Fatalf("sequence must end at the exit, got %#v", opt.Nodes[1])
	}
}

func TestNoopPruning(t *testing.T) {
	seq := &ir.Sequence{Nodes: []ir.Node{
		&ir.Noop{},
		&ir.Command{Program: "echo", Args: []ir.Value{lit("hi")}},
		&ir.Noop{},
	}}

	opt := Optimize(seq, true)
	if _, ok := opt.(*ir.Command); !ok {
		t.Fatalf("want single surviving command, got %#v", opt)
	}
}

func TestIdempotence(t *testing.T) {
	seq := &ir.Sequence{Nodes: []ir.Node{
		&ir.Let{Name: "n", Value: &ir.Arithmetic{Op: ir.ArithAdd, Lhs: lit("1"), Rhs: lit("2")}},
		&ir.If{
			Cond: &ir.Comparison{Op: ir.CmpStrEq, Lhs: &ir.Variable{Name: "n"}, Rhs: lit("3")},
			Then: &ir.Command{Program: "echo", Args: []ir.Value{lit("three")}},
		},
		&ir.Exit{Code: 0},
	}}

	once := Optimize(seq, true)
	twice := Optimize(once, true)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("optimizer is not idempotent:\nonce:  %#v\ntwice: %#v", once, twice)
	}
}

func TestDisabledIsIdentity(t *testing.T) {
	seq := &ir.Sequence{Nodes: []ir.Node{
		&ir.Let{Name: "n", Value: &ir.Arithmetic{Op: ir.ArithAdd, Lhs: lit("1"), Rhs: lit("2")}},
	}}

	if Optimize(seq, false) != ir.Node(seq) {
		t.Fatal("disabled optimizer must return its input unchanged")
	}
}
