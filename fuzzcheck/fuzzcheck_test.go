package fuzzcheck

import (
	"context"
	"testing"

	"github.com/coregx/redosentinel/ast"
	"github.com/coregx/redosentinel/vm"
)

func parse(t *testing.T, pattern string) *ast.Pattern {
	t.Helper()
	p, err := ast.Parse(pattern, ast.DefaultFlags())
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return p
}

func TestSeederProducesBaselineSeeds(t *testing.T) {
	p := parse(t, "(a|b)+c")
	seeds := NewSeeder(p).Seeds()
	if len(seeds) == 0 {
		t.Fatal("expected at least one seed")
	}
	found := false
	for _, s := range seeds {
		if s == "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the length-0 baseline seed")
	}
}

func TestMutatorProducesVariants(t *testing.T) {
	p := parse(t, "a+b")
	m := NewMutator(p)
	variants := m.Mutate("a")
	if len(variants) == 0 {
		t.Fatal("expected mutated variants")
	}
}

func TestClassifyDetectsExponentialGrowth(t *testing.T) {
	// Exponential: steps(kL) ~ 2^(kL) at L=4, so 16, 256, 65536.
	fit := Classify(16, 256, 65536, 1.8, 1.5)
	if fit.Class != GrowthExponential {
		t.Fatalf("expected exponential growth, got %v", fit.Class)
	}
}

func TestClassifyDetectsLinearGrowth(t *testing.T) {
	fit := Classify(100, 150, 200, 1.8, 1.5)
	if fit.Class != GrowthLinear {
		t.Fatalf("expected linear growth, got %v", fit.Class)
	}
}

func TestClassifyDetectsPolynomialGrowth(t *testing.T) {
	// Quadratic: steps(kL) ~ (kL)^2, so steps4L/stepsL = 16 (degree 2). A
	// high exponentialThreshold keeps the ratio test from firing first, so
	// the log-log degree fit is what classifies this as polynomial.
	fit := Classify(10, 40, 160, 10.0, 1.5)
	if fit.Class != GrowthPolynomial {
		t.Fatalf("expected polynomial growth, got %v", fit.Class)
	}
	if fit.Degree < 2 {
		t.Fatalf("expected a degree >= 2, got %d", fit.Degree)
	}
}

func TestRunTerminatesWithinBudgetOnBackreferencePattern(t *testing.T) {
	// Backreferences force the fuzz path (enfa.Build rejects them); a
	// pattern like (a+)(a+)\1\2-style overlap isn't needed here — this
	// just exercises that Run terminates and returns within budget on a
	// pattern the automaton path can't touch.
	p := parse(t, `(a+)\1`)
	prog := vm.Compile(p)
	cfg := DefaultConfig()
	cfg.MaxIterations = 50
	_, iterations, err := Run(context.Background(), p, prog, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if iterations == 0 {
		t.Fatal("expected at least one iteration")
	}
}
