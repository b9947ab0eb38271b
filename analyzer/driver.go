package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/coregx/redosentinel/ast"
	"github.com/coregx/redosentinel/fuzzcheck"
	"github.com/coregx/redosentinel/recall"
	"github.com/coregx/redosentinel/vm"
	"github.com/coregx/redosentinel/witness"
)

// recallBaseline is the n1 pump count recall validation replays at (spec
// §4.8 leaves n1 to the implementation; kept small so the exponential
// check's 2^Δ threshold stays computable in a handful of VM steps).
const recallBaseline = 5

// Check is the primary entry point (spec §6): parse, gate, analyze, recall
// validate, and report — all within a single synchronous call.
func Check(source string, flags ast.Flags, cfg Config) Diagnostics {
	if err := cfg.Validate(); err != nil {
		return Diagnostics{Status: StatusError, Source: source, Flags: flags, Error: err.Error()}
	}

	deadline := time.Now().Add(cfg.Timeout)
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()

	pattern, err := ast.Parse(source, flags)
	if err != nil {
		msg := err.Error()
		if pe, ok := err.(*ast.ParseError); ok {
			msg = fmt.Sprintf("%s at offset %d", pe.Reason, pe.Position)
		}
		return Diagnostics{Status: StatusError, Source: source, Flags: flags, Error: msg}
	}

	decision := evaluateGate(pattern, cfg)
	if decision == routeUnknown {
		return Diagnostics{
			Status: StatusUnknown, Source: source, Flags: flags,
			Message: "pattern uses unsupported features and checker=AUTOMATON forbids the fuzz fallback",
		}
	}

	if timedOut(deadline) {
		return budgetExceeded(source, flags, "timeout")
	}

	if decision == routeAutomaton {
		diag, fallThrough := checkAutomaton(pattern, source, flags, cfg, ctx, deadline)
		if !fallThrough {
			return diag
		}
		// Oversize NFA discovered mid-build: fuzz fallback (spec §7
		// "Oversize NFA / AST — same: fuzz fallback").
	}

	return checkFuzz(pattern, source, flags, cfg, ctx, deadline)
}

func checkAutomaton(p *ast.Pattern, source string, flags ast.Flags, cfg Config, ctx context.Context, deadline time.Time) (Diagnostics, bool) {
	outcome, err := runAutomaton(p, cfg)
	if err != nil {
		return Diagnostics{Status: StatusError, Source: source, Flags: flags, Error: fmt.Sprintf("internal: %v", err)}, false
	}
	if outcome.Oversize {
		return Diagnostics{}, true
	}

	if timedOut(deadline) {
		return budgetExceeded(source, flags, "timeout"), false
	}

	if outcome.Complexity.Class == ComplexitySafe {
		return Diagnostics{
			Status: StatusSafe, Source: source, Flags: flags,
			Complexity: &outcome.Complexity, Checker: CheckerNameAutomaton,
			Message: "no exploitable ambiguity found",
		}, false
	}

	if cfg.SkipRecall {
		c := outcome.Complexity
		return Diagnostics{
			Status: StatusVulnerable, Source: source, Flags: flags,
			Complexity: &c, AttackPattern: outcome.Attack, Hotspot: outcome.Hotspot,
			Checker: CheckerNameAutomaton,
		}, false
	}

	prog := vm.Compile(p)
	recallOpts := recall.DefaultOptions()
	recallOpts.RecallTimeout = cfg.RecallTimeout
	recallOpts.Accelerate = vm.ResolveAcceleration(vm.AccelMode(cfg.Acceleration))

	res, err := validateWithRetries(ctx, prog, *outcome.Attack, cfg, recallOpts)
	if err != nil {
		return budgetExceeded(source, flags, "recall_timeout"), false
	}

	switch res.Verdict {
	case recall.VerdictUnknown:
		return Diagnostics{
			Status: StatusUnknown, Source: source, Flags: flags, Checker: CheckerNameAutomaton,
			Message: "candidate witness failed recall validation",
		}, false
	case recall.VerdictPolynomial:
		c := Polynomial(res.Degree)
		return Diagnostics{
			Status: StatusVulnerable, Source: source, Flags: flags,
			Complexity: &c, AttackPattern: outcome.Attack, Hotspot: outcome.Hotspot,
			Checker: CheckerNameAutomaton,
		}, false
	default: // VerdictExponential
		c := Exponential
		return Diagnostics{
			Status: StatusVulnerable, Source: source, Flags: flags,
			Complexity: &c, AttackPattern: outcome.Attack, Hotspot: outcome.Hotspot,
			Checker: CheckerNameAutomaton,
		}, false
	}
}

func checkFuzz(p *ast.Pattern, source string, flags ast.Flags, cfg Config, ctx context.Context, deadline time.Time) Diagnostics {
	prog := vm.Compile(p)
	fzCfg := fuzzcheck.Config{
		MaxIterations:        cfg.MaxIterations,
		TimeBudget:           time.Until(deadline),
		ExponentialThreshold: cfg.ExponentialThreshold,
		PolynomialThreshold:  cfg.PolynomialThreshold,
		MaxSteps:             1 << 22,
		Accelerate:           vm.ResolveAcceleration(vm.AccelMode(cfg.Acceleration)),
		Dynamic:              cfg.Seeder == SeederDynamic,
	}

	w, _, err := fuzzcheck.Run(ctx, p, prog, fzCfg)
	if err != nil {
		return budgetExceeded(source, flags, "timeout")
	}
	if w == nil {
		c := Safe
		return Diagnostics{
			Status: StatusSafe, Source: source, Flags: flags, Complexity: &c,
			Checker: CheckerNameFuzz, Message: "no super-linear growth found within budget (not a proof)",
		}
	}

	ap := witness.AttackPattern{Pump: w.Base, Base: 0}
	ap.Repeat = cfg.AttackLimit
	if len(ap.Pump) > 0 && (ap.Base+len(ap.Pump)*ap.Repeat) > cfg.MaxAttackLength {
		ap.Repeat = cfg.MaxAttackLength / len(ap.Pump)
	}

	if cfg.SkipRecall {
		c := fuzzComplexity(w.Fit)
		return Diagnostics{
			Status: StatusVulnerable, Source: source, Flags: flags,
			Complexity: &c, AttackPattern: &ap, Checker: CheckerNameFuzz,
		}
	}

	recallOpts := recall.DefaultOptions()
	recallOpts.RecallTimeout = cfg.RecallTimeout
	recallOpts.Accelerate = fzCfg.Accelerate
	res, err := validateWithRetries(ctx, prog, ap, cfg, recallOpts)
	if err != nil {
		return budgetExceeded(source, flags, "recall_timeout")
	}
	if res.Verdict == recall.VerdictUnknown {
		return Diagnostics{
			Status: StatusUnknown, Source: source, Flags: flags, Checker: CheckerNameFuzz,
			Message: "candidate witness failed recall validation",
		}
	}

	c := Exponential
	if res.Verdict == recall.VerdictPolynomial {
		c = Polynomial(res.Degree)
	}
	return Diagnostics{
		Status: StatusVulnerable, Source: source, Flags: flags,
		Complexity: &c, AttackPattern: &ap, Checker: CheckerNameFuzz,
	}
}

// validateWithRetries calls recall.Validate up to cfg.RecallLimit times
// (spec §3 Config.recall_limit: "max recall attempts"), doubling the
// baseline pump count on each Unknown verdict — a witness that's too small
// to clear recall's confirmation thresholds at n1 may still clear them at a
// larger baseline, and retrying cheaply beats reporting UNKNOWN for a
// pattern that is, in fact, vulnerable.
func validateWithRetries(ctx context.Context, prog *vm.Program, ap witness.AttackPattern, cfg Config, opts recall.Options) (*recall.Result, error) {
	n1 := recallBaseline
	for attempt := 0; attempt < cfg.RecallLimit; attempt++ {
		res, err := recall.Validate(ctx, prog, ap, n1, opts)
		if err != nil {
			return nil, err
		}
		if res.Verdict != recall.VerdictUnknown || attempt == cfg.RecallLimit-1 {
			return res, nil
		}
		n1 *= 2
	}
	return &recall.Result{Verdict: recall.VerdictUnknown}, nil
}

func fuzzComplexity(fit fuzzcheck.GrowthFit) Complexity {
	if fit.Class == fuzzcheck.GrowthExponential {
		return Exponential
	}
	return Polynomial(fit.Degree)
}

func timedOut(deadline time.Time) bool {
	return time.Now().After(deadline)
}

func budgetExceeded(source string, flags ast.Flags, budget string) Diagnostics {
	return Diagnostics{
		Status: StatusUnknown, Source: source, Flags: flags,
		Message: fmt.Sprintf("budget exceeded: %s", budget),
	}
}
