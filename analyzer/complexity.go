package analyzer

import "fmt"

// ComplexityClass tags a Complexity value (spec §3: "Tagged: Safe |
// Polynomial(k≥2) | Exponential").
type ComplexityClass uint8

const (
	ComplexitySafe ComplexityClass = iota
	ComplexityPolynomial
	ComplexityExponential
)

// Complexity is the reported match-cost growth of a pattern. Ordering is
// Safe < Polynomial(2) < Polynomial(3) < … < Exponential (spec §3).
type Complexity struct {
	Class  ComplexityClass
	Degree int // meaningful only when Class == ComplexityPolynomial, >= 2
}

// Safe is the Complexity value for a pattern with no detected ambiguity.
var Safe = Complexity{Class: ComplexitySafe}

// Polynomial builds a Polynomial(k) complexity; k is clamped to a minimum
// of 2 per spec's "Polynomial(k≥2)".
func Polynomial(degree int) Complexity {
	if degree < 2 {
		degree = 2
	}
	return Complexity{Class: ComplexityPolynomial, Degree: degree}
}

// Exponential is the Complexity value for a pattern with an EDA witness.
var Exponential = Complexity{Class: ComplexityExponential}

// IsExponential reports whether c is the Exponential class (spec P2:
// "complexity.is_exponential").
func (c Complexity) IsExponential() bool {
	return c.Class == ComplexityExponential
}

// Less orders c below other per spec §3's stated total order.
func (c Complexity) Less(other Complexity) bool {
	if c.Class != other.Class {
		return c.Class < other.Class
	}
	return c.Degree < other.Degree
}

// Summary renders the canonical Big-O label (spec §6: "O(n)", "O(n^k)", or
// "O(2^n)").
func (c Complexity) Summary() string {
	switch c.Class {
	case ComplexitySafe:
		return "O(n)"
	case ComplexityPolynomial:
		return fmt.Sprintf("O(n^%d)", c.Degree)
	case ComplexityExponential:
		return "O(2^n)"
	default:
		return "O(?)"
	}
}
