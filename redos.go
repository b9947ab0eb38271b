// Package redosentinel detects ReDoS (Regular-Expression Denial-of-Service)
// vulnerabilities in regular expression patterns ahead of time.
//
// redosentinel answers a single question for a given pattern: can some input
// string drive the matcher's running time into polynomial or exponential
// blowup relative to its length? It does so without ever running the
// pattern against attacker-controlled input at full cost — it builds a
// lookahead-augmented automaton, searches it for ambiguous cycles (EDA for
// exponential, IDA for polynomial), and falls back to a bounded fuzzing loop
// for patterns (backreferences, lookaround) the automaton path can't model.
//
// Basic usage:
//
//	diag := redosentinel.Check(`^(a+)+$`, redosentinel.DefaultFlags(), redosentinel.DefaultConfig())
//	if diag.Status == redosentinel.StatusVulnerable {
//	    fmt.Println(diag.Complexity.Summary(), diag.AttackPattern.String())
//	}
//
// Convenience predicates:
//
//	if redosentinel.IsVulnerable(pattern, redosentinel.DefaultFlags(), redosentinel.DefaultConfig()) {
//	    log.Fatal("pattern is vulnerable to ReDoS")
//	}
package redosentinel

import (
	"github.com/coregx/redosentinel/analyzer"
	"github.com/coregx/redosentinel/ast"
)

// Flags controls parse-time pattern semantics (case-insensitivity,
// multiline anchors, dot-matches-newline).
type Flags = ast.Flags

// Config controls every tunable of the analysis pipeline: which checker
// path to use, time/size budgets, and the acceleration/seeder knobs.
type Config = analyzer.Config

// Diagnostics is the single result of a Check call.
type Diagnostics = analyzer.Diagnostics

// Complexity is the reported match-cost growth class of a pattern: Safe,
// Polynomial(k>=2), or Exponential.
type Complexity = analyzer.Complexity

// Status is Diagnostics' top-level verdict.
type Status = analyzer.Status

const (
	StatusSafe       = analyzer.StatusSafe
	StatusVulnerable = analyzer.StatusVulnerable
	StatusUnknown    = analyzer.StatusUnknown
	StatusError      = analyzer.StatusError
)

// DefaultFlags returns the default parse flags (case-sensitive, ^/$ match
// whole-input only, . excludes newline).
func DefaultFlags() Flags {
	return ast.DefaultFlags()
}

// DefaultConfig returns the pipeline's default tunables.
func DefaultConfig() Config {
	return analyzer.DefaultConfig()
}

// Check parses source under flags and analyzes it for ReDoS vulnerability,
// returning a single Diagnostics value. Check never panics: parse errors,
// budget exhaustion, and internal failures are reported through
// Diagnostics.Status/Error rather than as a Go error return, since a
// vulnerability scan over a large corpus of untrusted patterns must keep
// going past any one bad pattern.
func Check(source string, flags Flags, cfg Config) Diagnostics {
	return analyzer.Check(source, flags, cfg)
}

// IsVulnerable reports whether Check finds source exploitable.
func IsVulnerable(source string, flags Flags, cfg Config) bool {
	return analyzer.IsVulnerable(source, flags, cfg)
}

// IsSafe reports whether Check finds source free of detected ambiguity.
func IsSafe(source string, flags Flags, cfg Config) bool {
	return analyzer.IsSafe(source, flags, cfg)
}
