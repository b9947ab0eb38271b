// Package recall implements the recall validator (spec §4.8): it replays a
// synthesized attack pattern at three pump lengths and confirms the
// reported complexity actually reproduces super-linear step growth, or
// downgrades the verdict to UNKNOWN when it doesn't.
package recall

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/coregx/redosentinel/vm"
	"github.com/coregx/redosentinel/witness"
)

// Verdict is the recall validator's confirmation of (or retraction of) a
// candidate's reported complexity class.
type Verdict uint8

const (
	VerdictUnknown Verdict = iota
	VerdictExponential
	VerdictPolynomial
)

// Result carries the confirmed verdict plus the raw measurements that
// justified it, for diagnostic transparency.
type Result struct {
	Verdict Verdict
	Degree  int // meaningful only for VerdictPolynomial, minimum 2
	N       [3]int
	Steps   [3]int64
}

// Options bounds one validation run (spec §3 Config.recall_timeout, plus a
// per-trial step cap; Epsilon is the small tolerance spec §4.8's exponential
// check allows).
type Options struct {
	RecallTimeout time.Duration
	MaxSteps      int64
	Epsilon       float64
	Accelerate    bool
}

// DefaultOptions mirrors spec §4.8's "small ε" and a conservative per-trial
// step cap.
func DefaultOptions() Options {
	return Options{RecallTimeout: 500 * time.Millisecond, MaxSteps: 1 << 24, Epsilon: 0.2}
}

// Validate replays ap at n1, n1+Δ, n1+2Δ (Δ = n1 by default, spec §4.8) and
// classifies the resulting step growth. A nil *Result (with no error) means
// skip_recall was honored by the caller before ever reaching here; Validate
// itself always produces a verdict once invoked.
func Validate(ctx context.Context, prog *vm.Program, ap witness.AttackPattern, n1 int, opts Options) (*Result, error) {
	if n1 <= 0 {
		n1 = 1
	}
	delta := n1
	ns := [3]int{n1, n1 + delta, n1 + 2*delta}

	var steps [3]int64
	for i, n := range ns {
		s, err := measure(ctx, prog, ap, n, opts)
		if err != nil {
			return nil, err
		}
		steps[i] = s
	}

	res := &Result{N: ns, Steps: steps}

	// Exponential check: steps(n+Δ)/steps(n) >= 2^Δ·(1−ε).
	if steps[0] > 0 {
		ratio := float64(steps[1]) / float64(steps[0])
		threshold := math.Pow(2, float64(delta)) * (1 - opts.Epsilon)
		if ratio >= threshold {
			res.Verdict = VerdictExponential
			return res, nil
		}
	}

	// Polynomial check: degree ≈ log(s3/s1) / log(n3/n1), rounded, min 2.
	if steps[0] > 0 && ns[0] > 0 && ns[2] != ns[0] {
		degree := math.Log(float64(steps[2])/float64(steps[0])) / math.Log(float64(ns[2])/float64(ns[0]))
		rounded := int(math.Round(degree))
		if rounded >= 2 {
			res.Verdict = VerdictPolynomial
			res.Degree = rounded
			return res, nil
		}
	}

	res.Verdict = VerdictUnknown
	return res, nil
}

// measure builds the attack string at pump count n and runs the VM under
// RecallTimeout, saturating at MaxSteps if the budget trips (spec §4.8:
// "Runs each through the VM with recall_timeout per trial").
func measure(ctx context.Context, prog *vm.Program, ap witness.AttackPattern, n int, opts Options) (int64, error) {
	var b strings.Builder
	b.WriteString(ap.Prefix)
	for i := 0; i < n; i++ {
		b.WriteString(ap.Pump)
	}
	b.WriteString(ap.Suffix)

	trialCtx, cancel := context.WithTimeout(ctx, opts.RecallTimeout)
	defer cancel()

	res, err := vm.Run(trialCtx, prog, []rune(b.String()), 0, vm.Options{MaxSteps: opts.MaxSteps, Accelerate: opts.Accelerate})
	if err != nil {
		if _, ok := err.(*vm.ErrStepBudgetExceeded); ok {
			return opts.MaxSteps, nil
		}
		if err == context.DeadlineExceeded {
			return opts.MaxSteps, nil
		}
		return 0, err
	}
	return res.Steps, nil
}
