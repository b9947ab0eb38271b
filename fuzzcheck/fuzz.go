package fuzzcheck

import (
	"context"
	"time"

	"github.com/coregx/redosentinel/ast"
	"github.com/coregx/redosentinel/vm"
)

// Config bounds one fuzz-path run (spec §3 Config.max_iterations and the
// overall timeout, plus the EXPONENTIAL_THRESHOLD/POLYNOMIAL_THRESHOLD
// tunables §9 leaves open).
type Config struct {
	MaxIterations        int
	TimeBudget           time.Duration
	ExponentialThreshold float64
	PolynomialThreshold  float64
	MaxSteps             int64
	Accelerate           bool
	// Dynamic selects spec §3's seeder=DYNAMIC: a candidate whose step count
	// grows by more than 5% from L to 2L is pumped and the pumped string is
	// queued right after it (coverage-guided), instead of the STATIC default
	// of taking candidates (seeds, then their mutants) strictly in queue order.
	Dynamic bool
}

// DefaultConfig matches spec §4.7's defaults for the fuzz loop.
func DefaultConfig() Config {
	return Config{
		MaxIterations:        2000,
		TimeBudget:           2 * time.Second,
		ExponentialThreshold: 1.8,
		PolynomialThreshold:  1.5,
		MaxSteps:             1 << 22,
	}
}

// Witness is a fuzz-discovered candidate whose step count grew super
// linearly, along with the growth fit that justified flagging it.
type Witness struct {
	Base  string
	Fit   GrowthFit
	Steps [3]int64 // at L, 2L, 4L
}

// Run drives the seed→mutate→measure loop until a super-linear candidate is
// found, MaxIterations is exhausted, or TimeBudget elapses (spec §4.7:
// "Terminate when a candidate exceeds threshold at length L·4 within
// max_iterations or time budget; otherwise verdict is SAFE").
func Run(ctx context.Context, p *ast.Pattern, prog *vm.Program, cfg Config) (*Witness, int, error) {
	seeder := NewSeeder(p)
	mutator := NewMutator(p)
	deadline := time.Now().Add(cfg.TimeBudget)

	candidates := seeder.Seeds()
	iterations := 0

	for i := 0; i < len(candidates); i++ {
		base := candidates[i]

		if iterations >= cfg.MaxIterations || time.Now().After(deadline) {
			return nil, iterations, nil
		}
		iterations++

		if base != "" {
			w, steps, err := probe(ctx, prog, base, cfg)
			if err != nil {
				return nil, iterations, err
			}
			if w != nil {
				return w, iterations, nil
			}
			// seeder=DYNAMIC (spec §3): a candidate whose step count grows by
			// more than 5% between L and 2L, even if not past
			// EXPONENTIAL_THRESHOLD, is pumped further and explored next
			// rather than waiting its turn behind every queued candidate —
			// STATIC mutates every candidate and takes them breadth-first.
			if cfg.Dynamic && steps[0] > 0 && float64(steps[1])/float64(steps[0]) > 1.05 {
				pumped := Pump(base, 2)
				rest := append([]string{pumped}, candidates[i+1:]...)
				candidates = append(candidates[:i+1], rest...)
			}
		}

		for _, mutant := range mutator.Mutate(base) {
			if seeder.redundant(mutant) {
				continue
			}
			candidates = append(candidates, mutant)
		}
	}

	return nil, iterations, nil
}

// probe measures step growth for base at lengths L, 2L, 4L and classifies
// it, also returning the raw steps so the caller can use them for
// seeder=DYNAMIC prioritization without re-running the VM.
func probe(ctx context.Context, prog *vm.Program, base string, cfg Config) (*Witness, [3]int64, error) {
	var steps [3]int64
	for i, factor := range []int{1, 2, 4} {
		input := Pump(base, factor)
		res, err := vm.Run(ctx, prog, []rune(input), 0, vm.Options{MaxSteps: cfg.MaxSteps, Accelerate: cfg.Accelerate})
		if err != nil {
			if _, ok := err.(*vm.ErrStepBudgetExceeded); ok {
				steps[i] = cfg.MaxSteps
				continue
			}
			return nil, steps, err
		}
		steps[i] = res.Steps
	}

	fit := Classify(steps[0], steps[1], steps[2], cfg.ExponentialThreshold, cfg.PolynomialThreshold)
	if fit.Class == GrowthLinear {
		return nil, steps, nil
	}
	return &Witness{Base: base, Fit: fit, Steps: steps}, steps, nil
}
