package fuzzcheck

import "math"

// GrowthClass categorizes how VM step count grows with input length, the
// coarse fuzz-path counterpart to package scc's automaton-derived
// Complexity (spec §4.7: "fit step-count growth to {linear, polynomial
// (regression on log-log), exponential (ratio ≥ configured
// EXPONENTIAL_THRESHOLD)}").
type GrowthClass uint8

const (
	GrowthLinear GrowthClass = iota
	GrowthPolynomial
	GrowthExponential
)

// GrowthFit is the classifier's verdict plus, for polynomial growth, the
// estimated degree.
type GrowthFit struct {
	Class  GrowthClass
	Degree int
}

// Classify fits {stepsL, steps2L, steps4L} (step counts at lengths L, 2L,
// 4L) to a growth category. exponentialThreshold is Config's
// EXPONENTIAL_THRESHOLD (spec §9's exposed tunable; SPEC_FULL.md
// Config.ExponentialThreshold). polynomialThreshold (SPEC_FULL.md
// Config.PolynomialThreshold) is the minimum fitted degree before growth is
// reported as polynomial rather than folded into linear noise — log-log
// regression on a 3-point sample is noisy, so a degree estimate of e.g.
// 1.1 should read as linear, not Polynomial(1).
func Classify(stepsL, steps2L, steps4L int64, exponentialThreshold, polynomialThreshold float64) GrowthFit {
	if stepsL <= 0 {
		stepsL = 1
	}
	if steps2L <= 0 {
		steps2L = 1
	}
	ratio1 := float64(steps2L) / float64(stepsL)
	ratio2 := float64(steps4L) / float64(steps2L)

	if ratio1 >= exponentialThreshold && ratio2 >= exponentialThreshold {
		return GrowthFit{Class: GrowthExponential}
	}

	degree := math.Log(float64(steps4L)/float64(stepsL)) / math.Log(4)
	if degree < polynomialThreshold {
		return GrowthFit{Class: GrowthLinear, Degree: 1}
	}
	rounded := int(math.Round(degree))
	if rounded < 2 {
		rounded = 2
	}
	return GrowthFit{Class: GrowthPolynomial, Degree: rounded}
}
