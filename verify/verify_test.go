package verify

import (
	"strings"
	"testing"

	"shale/effects"
	"shale/ir"
)

// --- helpers -----------------------------------------------------------------

func lit(text string) *ir.Literal {
	return &ir.Literal{Text: text}
}

func command(program string, args ...string) *ir.Command {
	cmd := &ir.Command{Program: program}
	for _, arg := range args {
		cmd.Args = append(cmd.Args, lit(arg))
	}
	return cmd
}

func verifyNode(t *testing.T, node ir.Node, level Level) *Result {
	t.Helper()
	return Verify(node, effects.Analyze(node), level)
}

func wantViolations(t *testing.T, result *Result, property string, count int) {
	t.Helper()
	got := 0
	for _, v := range result.Violations {
		if v.Property == property {
			got++
		}
	}
	if got != count {
		t.Fatalf("want %d %s violation(s), got %d: %v", count, property, got, result.Violations)
	}
}

// --- tests -------------------------------------------------------------------

func TestCleanScriptPasses(t *testing.T) {
	node := &ir.Sequence{Nodes: []ir.Node{
		&ir.Let{Name: "x", Value: lit("hello")},
		command("echo", "hello"),
	}}

	for _, level := range []Level{LevelBasic, LevelStrict, LevelParanoid} {
		result := verifyNode(t, node, level)
		if !result.Pass() {
			t.Fatalf("clean script must pass at %s: %v", level, result.Violations)
		}
	}
}

func TestNonDeterminismByLevel(t *testing.T) {
	node := &ir.Let{Name: "now", Value: &ir.Substitution{Cmd: command("date", "+%s")}}

	basic := verifyNode(t, node, LevelBasic)
	if !basic.Pass() {
		t.Fatalf("non-determinism must not fail basic: %v", basic.Violations)
	}
	if len(basic.Warnings) != 1 {
		t.Fatalf("want 1 warning at basic, got %v", basic.Warnings)
	}

	strict := verifyNode(t, node, LevelStrict)
	wantViolations(t, strict, PropDeterminism, 1)

	paranoid := verifyNode(t, node, LevelParanoid)
	wantViolations(t, paranoid, PropDeterminism, 1)
}

func TestIdempotencyGuard(t *testing.T) {
	bare := ir.Node(command("rm", "/tmp/x"))
	guarded := ir.Node(command("rm", "-f", "/tmp/x"))

	if !verifyNode(t, bare, LevelBasic).Pass() {
		t.Fatal("idempotency is not checked at basic")
	}

	wantViolations(t, verifyNode(t, bare, LevelStrict), PropIdempotency, 1)

	if result := verifyNode(t, guarded, LevelStrict); !result.Pass() {
		t.Fatalf("rm -f must pass strict: %v", result.Violations)
	}
}

func TestInterpreterDenylist(t *testing.T) {
	node := command("eval", "echo hi")

	for _, level := range []Level{LevelBasic, LevelStrict, LevelParanoid} {
		wantViolations(t, verifyNode(t, node, level), PropInjection, 1)
	}
}

func TestDynamicLiteralHeadDenylisted(t *testing.T) {
	node := &ir.Command{Program: "", Args: []ir.Value{lit("sh"), lit("-c"), lit("echo hi")}}
	wantViolations(t, verifyNode(t, node, LevelBasic), PropInjection, 1)
}

func TestComputedProgramName(t *testing.T) {
	node := &ir.Command{Program: "", Args: []ir.Value{&ir.Variable{Name: "tool"}}}
	wantViolations(t, verifyNode(t, node, LevelBasic), PropInjection, 1)
}

func TestLiteralDynamicHeadAllowed(t *testing.T) {
	node := &ir.Command{Program: "", Args: []ir.Value{lit("hostname")}}
	if result := verifyNode(t, node, LevelBasic); !result.Pass() {
		t.Fatalf("literal head must verify: %v", result.Violations)
	}
}

func TestResourceSafetyAtEveryLevel(t *testing.T) {
	unbounded := command("yes")
	device := command("cat", "/dev/zero")

	for _, level := range []Level{LevelBasic, LevelStrict, LevelParanoid} {
		wantViolations(t, verifyNode(t, unbounded, level), PropResourceSafety, 1)
		wantViolations(t, verifyNode(t, device, level), PropResourceSafety, 1)
	}
}

func TestSubstitutionInsideArgumentChecked(t *testing.T) {
	node := command("echo")
	node.Args = append(node.Args, &ir.Substitution{Cmd: command("date", "+%s")})

	wantViolations(t, verifyNode(t, node, LevelStrict), PropDeterminism, 1)
}

func TestNonDeterminismAttributedToSource(t *testing.T) {
	node := command("echo")
	node.Args = append(node.Args, &ir.Substitution{Cmd: command("date", "+%s")})

	result := verifyNode(t, node, LevelStrict)
	wantViolations(t, result, PropDeterminism, 1)

	v := result.Violations[0]
	if !strings.Contains(v.Message, "`date`") || !strings.Contains(v.Message, "clock") {
		t.Fatalf("violation must name the non-deterministic command and kind: %q", v.Message)
	}
}

func TestIdempotencyAttributedToSource(t *testing.T) {
	node := command("echo")
	node.Args = append(node.Args, &ir.Substitution{Cmd: command("rm", "/tmp/x")})

	result := verifyNode(t, node, LevelStrict)
	wantViolations(t, result, PropIdempotency, 1)

	if !strings.Contains(result.Violations[0].Message, "`rm`") {
		t.Fatalf("violation must name the unguarded command: %q", result.Violations[0].Message)
	}
}

func TestMonotonicity(t *testing.T) {
	node := &ir.Sequence{Nodes: []ir.Node{
		command("eval", "x"),
		command("rm", "/tmp/x"),
		&ir.Let{Name: "now", Value: &ir.Substitution{Cmd: command("date", "+%s")}},
	}}

	basic := verifyNode(t, node, LevelBasic)
	strict := verifyNode(t, node, LevelStrict)
	paranoid := verifyNode(t, node, LevelParanoid)

	if len(basic.Violations) > len(strict.Violations) || len(strict.Violations) > len(paranoid.Violations) {
		t.Fatalf("levels must be monotonic: basic=%d strict=%d paranoid=%d",
			len(basic.Violations), len(strict.Violations), len(paranoid.Violations))
	}

	// Every violation found at a lower level appears at the higher levels.
	for _, v := range basic.Violations {
		found := false
		for _, sv := range strict.Violations {
			if sv.Property == v.Property && sv.Message == v.Message {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("strict hides a basic violation: %v", v)
		}
	}
}

func TestViolationsAggregated(t *testing.T) {
	node := &ir.Sequence{Nodes: []ir.Node{
		command("eval", "x"),
		command("yes"),
	}}

	result := verifyNode(t, node, LevelBasic)
	if len(result.Violations) != 2 {
		t.Fatalf("verifier must not stop at the first violation: %v", result.Violations)
	}
}

func TestParanoidPromotesWarnings(t *testing.T) {
	node := &ir.Let{Name: "now", Value: &ir.Substitution{Cmd: command("date", "+%s")}}

	paranoid := verifyNode(t, node, LevelParanoid)
	if len(paranoid.Warnings) != 0 {
		t.Fatalf("paranoid must leave no warnings: %v", paranoid.Warnings)
	}
	if paranoid.Pass() {
		t.Fatal("paranoid must fail on promoted warnings")
	}
}
