// Package analyzer wires the parser, ε-NFA/OrderedNFA/NFAwLA automaton
// pipeline, SCC ambiguity detector, witness synthesizer, step-counting VM,
// fuzz loop, and recall validator into the single entry point the rest of
// the system calls: Check.
package analyzer

import (
	"fmt"
	"time"
)

// CheckerMode selects the analysis path (spec §3 Config.checker).
type CheckerMode uint8

const (
	CheckerAuto CheckerMode = iota
	CheckerAutomaton
	CheckerFuzz
)

// MatchMode controls how the exploitability filter treats implicit
// trailing context (spec §3 Config.match_mode, §4.4).
type MatchMode uint8

const (
	MatchAuto MatchMode = iota
	MatchFull
	MatchPartial
)

// SeederMode picks the fuzz seed strategy (spec §3 Config.seeder).
type SeederMode uint8

const (
	SeederStatic SeederMode = iota
	SeederDynamic
)

// AccelMode is the tri-state acceleration knob (spec §3 Config.acceleration).
type AccelMode uint8

const (
	AccelAuto AccelMode = iota
	AccelOn
	AccelOff
)

// Config controls every tunable spec §3 names, plus the two thresholds and
// one semantic toggle this implementation's own expansion adds (see
// DESIGN.md's Open Question resolutions).
type Config struct {
	Checker   CheckerMode
	MatchMode MatchMode

	Timeout       time.Duration
	RecallTimeout time.Duration

	MaxAttackLength int
	AttackLimit     int // minimum repeat count for a synthesized attack string

	MaxIterations  int
	MaxNFASize     int
	MaxPatternSize int
	RecallLimit    int
	SkipRecall     bool

	RandomSeed int64

	Seeder       SeederMode
	Acceleration AccelMode

	// ExponentialThreshold is the fuzz loop's EXPONENTIAL_THRESHOLD (spec
	// §4.7); exposed per §9's open question about its tunability.
	ExponentialThreshold float64
	// PolynomialThreshold is the minimum fitted polynomial degree that is
	// reported as polynomial; smaller estimates are treated as linear.
	PolynomialThreshold float64

	// MultilineAnchorExploitable resolves spec §9's open question on
	// whether a line-end anchor ($ under multiline) alone should satisfy
	// the exploitability filter's anchor test, the same way a true
	// end-of-text anchor does. Default true: treated the same as the
	// source (spec §4.4: "The source treats $ as a right anchor for
	// exploitability even under multiline mode").
	MultilineAnchorExploitable bool
}

// DefaultConfig returns spec §3/§4's stated defaults.
func DefaultConfig() Config {
	return Config{
		Checker:                    CheckerAuto,
		MatchMode:                  MatchAuto,
		Timeout:                    2 * time.Second,
		RecallTimeout:              500 * time.Millisecond,
		MaxAttackLength:            1 << 16,
		AttackLimit:                20,
		MaxIterations:              2000,
		MaxNFASize:                 20000,
		MaxPatternSize:             2000,
		RecallLimit:                3,
		SkipRecall:                 false,
		RandomSeed:                 0,
		Seeder:                     SeederStatic,
		Acceleration:               AccelAuto,
		ExponentialThreshold:       1.8,
		PolynomialThreshold:        1.5,
		MultilineAnchorExploitable: true,
	}
}

// Validate checks Config's numeric fields are within sane ranges, mirroring
// the teacher's meta.Config.Validate idiom.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return &ConfigError{Field: "Timeout", Message: "must be positive"}
	}
	if c.RecallTimeout <= 0 {
		return &ConfigError{Field: "RecallTimeout", Message: "must be positive"}
	}
	if c.MaxAttackLength < 1 {
		return &ConfigError{Field: "MaxAttackLength", Message: "must be >= 1"}
	}
	if c.AttackLimit < 1 {
		return &ConfigError{Field: "AttackLimit", Message: "must be >= 1"}
	}
	if c.MaxIterations < 1 {
		return &ConfigError{Field: "MaxIterations", Message: "must be >= 1"}
	}
	if c.MaxNFASize < 1 {
		return &ConfigError{Field: "MaxNFASize", Message: "must be >= 1"}
	}
	if c.MaxPatternSize < 1 {
		return &ConfigError{Field: "MaxPatternSize", Message: "must be >= 1"}
	}
	if c.RecallLimit < 1 {
		return &ConfigError{Field: "RecallLimit", Message: "must be >= 1"}
	}
	if c.ExponentialThreshold <= 1 {
		return &ConfigError{Field: "ExponentialThreshold", Message: "must be > 1"}
	}
	if c.PolynomialThreshold <= 1 {
		return &ConfigError{Field: "PolynomialThreshold", Message: "must be > 1"}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("analyzer: invalid config field %s: %s", e.Field, e.Message)
}
