package vm

import (
	"context"
	"testing"

	"github.com/coregx/redosentinel/ast"
)

func compile(t *testing.T, pattern string) *Program {
	t.Helper()
	p, err := ast.Parse(pattern, ast.DefaultFlags())
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return Compile(p)
}

func run(t *testing.T, prog *Program, input string) Result {
	t.Helper()
	res, err := Run(context.Background(), prog, []rune(input), 0, Options{MaxSteps: 1 << 20})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res
}

func TestRunMatchesSimpleLiteral(t *testing.T) {
	prog := compile(t, "abc")
	if !run(t, prog, "abc").Matched {
		t.Fatal("expected match for literal abc")
	}
	if run(t, prog, "abd").Matched {
		t.Fatal("expected no match for abd")
	}
}

func TestRunMatchesStarGreedy(t *testing.T) {
	prog := compile(t, "a*b")
	res := run(t, prog, "aaab")
	if !res.Matched {
		t.Fatal("expected a*b to match aaab")
	}
}

func TestRunGrowsStepsOnAmbiguousPattern(t *testing.T) {
	prog := compile(t, "(a*)*b")
	shortRes := run(t, prog, "aaaaaaaaaaaaaaaa")
	longRes, err := Run(context.Background(), prog, []rune("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"), 0, Options{MaxSteps: 1 << 24})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if longRes.Steps <= shortRes.Steps {
		t.Fatalf("expected step growth: short=%d long=%d", shortRes.Steps, longRes.Steps)
	}
}

func TestRunRespectsAnchors(t *testing.T) {
	prog := compile(t, "^abc$")
	if !run(t, prog, "abc").Matched {
		t.Fatal("expected ^abc$ to match abc")
	}
}

func TestRunBackreference(t *testing.T) {
	prog := compile(t, `(a+)\1`)
	if !run(t, prog, "aaaa").Matched {
		t.Fatal("expected (a+)\\1 to match aaaa")
	}
	if run(t, prog, "ab").Matched {
		t.Fatal("expected (a+)\\1 not to match ab")
	}
}

func TestRunLookahead(t *testing.T) {
	prog := compile(t, `a(?=b)`)
	if !run(t, prog, "ab").Matched {
		t.Fatal("expected a(?=b) to match ab")
	}
}

func TestRunLookbehindChecksTextBeforePosition(t *testing.T) {
	prog := compile(t, `.(?<=a)b`)
	if !run(t, prog, "ab").Matched {
		t.Fatal("expected .(?<=a)b to match ab (preceding char is a)")
	}
	if run(t, prog, "cb").Matched {
		t.Fatal("expected .(?<=a)b not to match cb (preceding char is c, not a)")
	}
}

func TestRunNegativeLookbehind(t *testing.T) {
	prog := compile(t, `.(?<!a)b`)
	if run(t, prog, "ab").Matched {
		t.Fatal("expected .(?<!a)b not to match ab (preceding char is a)")
	}
	if !run(t, prog, "cb").Matched {
		t.Fatal("expected .(?<!a)b to match cb (preceding char is c, not a)")
	}
}

func TestResolveAcceleration(t *testing.T) {
	if !ResolveAcceleration(AccelOn) {
		t.Fatal("AccelOn must always resolve true")
	}
	if ResolveAcceleration(AccelOff) {
		t.Fatal("AccelOff must always resolve false")
	}
}

func TestAcceleratedClassMatchAgreesWithPortableScan(t *testing.T) {
	prog := compile(t, "[a-z0-9]+")
	input := []rune("abc123XYZ")

	portable, err := Run(context.Background(), prog, input, 0, Options{MaxSteps: 1 << 16, Accelerate: false})
	if err != nil {
		t.Fatalf("Run (portable): %v", err)
	}
	accelerated, err := Run(context.Background(), prog, input, 0, Options{MaxSteps: 1 << 16, Accelerate: true})
	if err != nil {
		t.Fatalf("Run (accelerated): %v", err)
	}
	if portable.Matched != accelerated.Matched {
		t.Fatalf("accelerated path disagrees with portable scan: portable=%v accelerated=%v", portable.Matched, accelerated.Matched)
	}
}

func TestAsciiFastClassMatchUsesBitmap(t *testing.T) {
	bitmap := asciiBitmap([]ast.RuneRange{{Lo: 'a', Hi: 'z'}})
	if !asciiFastClassMatch(bitmap, false, 'm') {
		t.Fatal("expected 'm' to be in [a-z]")
	}
	if asciiFastClassMatch(bitmap, false, 'M') {
		t.Fatal("expected 'M' not to be in [a-z]")
	}
	if !asciiFastClassMatch(bitmap, true, 'M') {
		t.Fatal("expected negated [^a-z] to admit 'M'")
	}
}
