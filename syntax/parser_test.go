package syntax

import (
	"testing"

	"shale/ast"
	"shale/report"
)

// --- helpers -----------------------------------------------------------------

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	file, err := Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v\nsource:\n%s", err, src)
	}
	return file
}

func parseErr(t *testing.T, src string) error {
	t.Helper()
	_, err := Parse(src)
	if err != nil {
		if _, ok := err.(*report.LocalError); !ok {
			t.Fatalf("want *report.LocalError, got %T: %v", err, err)
		}
	}
	if err == nil {
		t.Fatalf("want parse error, got none\nsource:\n%s", src)
	}
	return err
}

// --- tests -------------------------------------------------------------------

func TestParseEntryFunction(t *testing.T) {
	file := mustParse(t, `
fn main() {
    let x = "hello";
    echo(x);
}
`)

	if len(file.Funcs) != 1 {
		t.Fatalf("want 1 function, got %d", len(file.Funcs))
	}

	fn := file.Funcs[0]
	if fn.Name != "main" || len(fn.Params) != 0 || fn.ReturnType != ast.UnitType {
		t.Fatalf("bad entry signature: %s(%d params) -> %s", fn.Name, len(fn.Params), fn.ReturnType)
	}

	if len(fn.Body) != 2 {
		t.Fatalf("want 2 statements, got %d", len(fn.Body))
	}

	let, ok := fn.Body[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("want let statement, got %T", fn.Body[0])
	}
	if let.Name != "x" || let.HasType {
		t.Fatalf("bad let: name=%s hasType=%v", let.Name, let.HasType)
	}
	lit, ok := let.Init.(*ast.Literal)
	if !ok || lit.Kind != ast.StrLit || lit.Value != "hello" {
		t.Fatalf("bad let initializer: %#v", let.Init)
	}

	es, ok := fn.Body[1].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("want expression statement, got %T", fn.Body[1])
	}
	call, ok := es.Expr.(*ast.FuncCall)
	if !ok || call.Name != "echo" || len(call.Args) != 1 {
		t.Fatalf("bad call: %#v", es.Expr)
	}
	if v, ok := call.Args[0].(*ast.Variable); !ok || v.Name != "x" {
		t.Fatalf("bad call argument: %#v", call.Args[0])
	}
}

func TestParseParamsAndReturnType(t *testing.T) {
	file := mustParse(t, `
fn add(a: i32, b: i32) -> i32 {
    return a + b;
}
`)

	fn := file.Funcs[0]
	if len(fn.Params) != 2 || fn.Params[0].Type != ast.I32Type || fn.Params[1].Type != ast.I32Type {
		t.Fatalf("bad params: %#v", fn.Params)
	}
	if fn.ReturnType != ast.I32Type {
		t.Fatalf("want i32 return, got %s", fn.ReturnType)
	}

	ret, ok := fn.Body[0].(*ast.ReturnStmt)
	if !ok || ret.Value == nil {
		t.Fatalf("want valued return, got %#v", fn.Body[0])
	}
	bin, ok := ret.Value.(*ast.BinaryOp)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("want addition, got %#v", ret.Value)
	}
}

func TestParsePrecedence(t *testing.T) {
	file := mustParse(t, `
fn main() {
    let b = 1 + 2 * 3 == 7 && true;
}
`)

	let := file.Funcs[0].Body[0].(*ast.LetStmt)

	and, ok := let.Init.(*ast.BinaryOp)
	if !ok || and.Op != ast.OpAnd {
		t.Fatalf("want && at the top, got %#v", let.Init)
	}

	eq, ok := and.Lhs.(*ast.BinaryOp)
	if !ok || eq.Op != ast.OpEq {
		t.Fatalf("want == below &&, got %#v", and.Lhs)
	}

	add, ok := eq.Lhs.(*ast.BinaryOp)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("want + below ==, got %#v", eq.Lhs)
	}

	if mul, ok := add.Rhs.(*ast.BinaryOp); !ok || mul.Op != ast.OpMul {
		t.Fatalf("want * below +, got %#v", add.Rhs)
	}
}

func TestParseElseIfChain(t *testing.T) {
	file := mustParse(t, `
fn main() {
    if a == 1 {
        echo("one");
    } else if a == 2 {
        echo("two");
    } else {
        echo("many");
    }
}
`)

	outer := file.Funcs[0].Body[0].(*ast.IfStmt)
	if len(outer.Else) != 1 {
		t.Fatalf("want single nested if in else, got %d statements", len(outer.Else))
	}

	nested, ok := outer.Else[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("want nested if, got %T", outer.Else[0])
	}
	if nested.Else == nil {
		t.Fatal("nested if lost its else block")
	}
}

func TestParseMethodChain(t *testing.T) {
	file := mustParse(t, `
fn main() {
    let s = name.trim().upper();
}
`)

	let := file.Funcs[0].Body[0].(*ast.LetStmt)

	upper, ok := let.Init.(*ast.MethodCall)
	if !ok || upper.Method != "upper" {
		t.Fatalf("want upper() at the top, got %#v", let.Init)
	}

	trim, ok := upper.Receiver.(*ast.MethodCall)
	if !ok || trim.Method != "trim" {
		t.Fatalf("want trim() below upper(), got %#v", upper.Receiver)
	}

	if v, ok := trim.Receiver.(*ast.Variable); !ok || v.Name != "name" {
		t.Fatalf("bad receiver: %#v", trim.Receiver)
	}
}

func TestParseStringEscapes(t *testing.T) {
	file := mustParse(t, `
fn main() {
    let s = "a\tb\"c\\d";
}
`)

	lit := file.Funcs[0].Body[0].(*ast.LetStmt).Init.(*ast.Literal)
	if lit.Value != "a\tb\"c\\d" {
		t.Fatalf("bad escape handling: %q", lit.Value)
	}
}

func TestParseComments(t *testing.T) {
	file := mustParse(t, `
# leading comment
fn main() {
    # inner comment
    echo("hi"); # trailing comment
}
`)

	if len(file.Funcs[0].Body) != 1 {
		t.Fatalf("want 1 statement, got %d", len(file.Funcs[0].Body))
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing semicolon", `fn main() { echo("hi") }`},
		{"unterminated string", `fn main() { let x = "oops; }`},
		{"unknown type", `fn main() { let x: wat = 1; }`},
		{"missing paren", `fn main( { }`},
		{"stray token", `fn main() { } ?`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			parseErr(t, c.src)
		})
	}
}

func TestParseLeadingZeroLiterals(t *testing.T) {
	file := mustParse(t, `
fn main() {
    let n = 010;
    let z = 000;
    echo(n);
}
`)

	body := file.Funcs[0].Body

	let, ok := body[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("want let statement, got %T", body[0])
	}
	if lit, ok := let.Init.(*ast.Literal); !ok || lit.Kind != ast.I32Lit || lit.Value != "10" {
		t.Fatalf("leading zeros must be stripped from the numeral: %#v", let.Init)
	}

	let = body[1].(*ast.LetStmt)
	if lit, ok := let.Init.(*ast.Literal); !ok || lit.Value != "0" {
		t.Fatalf("zero must lex to a single digit: %#v", let.Init)
	}
}
