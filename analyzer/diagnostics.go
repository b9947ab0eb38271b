package analyzer

import (
	"github.com/coregx/redosentinel/ast"
	"github.com/coregx/redosentinel/witness"
)

// Status is Diagnostics' top-level verdict (spec §3/§6).
type Status uint8

const (
	StatusSafe Status = iota
	StatusVulnerable
	StatusUnknown
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSafe:
		return "safe"
	case StatusVulnerable:
		return "vulnerable"
	case StatusUnknown:
		return "unknown"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Checker names which analysis path produced the verdict (spec §3/§6).
type Checker string

const (
	CheckerNameAutomaton Checker = "automaton"
	CheckerNameFuzz      Checker = "fuzz"
)

// Diagnostics is the single return value of Check (spec §3/§6).
type Diagnostics struct {
	Status        Status
	Source        string
	Flags         ast.Flags
	Complexity    *Complexity
	AttackPattern *witness.AttackPattern
	Hotspot       *witness.Hotspot
	Checker       Checker
	Message       string
	Error         string
}

// attackJSON / hotspotJSON / complexityJSON mirror spec §6's serialization
// shape exactly; diagnosticsJSON is what ToJSON emits.
type complexityJSON struct {
	Type    string `json:"type"`
	Degree  *int   `json:"degree"`
	Summary string `json:"summary"`
}

type attackJSON struct {
	Prefix string `json:"prefix"`
	Pump   string `json:"pump"`
	Suffix string `json:"suffix"`
	Base   int    `json:"base"`
	Repeat int    `json:"repeat"`
	String string `json:"string"`
}

type hotspotJSON struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

type diagnosticsJSON struct {
	Status     string           `json:"status"`
	Source     string           `json:"source"`
	Flags      string           `json:"flags"`
	Complexity *complexityJSON  `json:"complexity"`
	Attack     *attackJSON      `json:"attack"`
	Hotspot    *hotspotJSON     `json:"hotspot"`
	Checker    string           `json:"checker"`
	Message    string           `json:"message"`
	Error      string           `json:"error"`
}

// ToJSON converts Diagnostics into the stable wire shape spec §6 names.
func (d Diagnostics) ToJSON() interface{} {
	out := diagnosticsJSON{
		Status:  d.Status.String(),
		Source:  d.Source,
		Flags:   d.Flags.String(),
		Checker: string(d.Checker),
		Message: d.Message,
		Error:   d.Error,
	}
	if d.Complexity != nil {
		var degree *int
		if d.Complexity.Class == ComplexityPolynomial {
			v := d.Complexity.Degree
			degree = &v
		}
		out.Complexity = &complexityJSON{
			Type:    complexityTypeName(d.Complexity.Class),
			Degree:  degree,
			Summary: d.Complexity.Summary(),
		}
	}
	if d.AttackPattern != nil {
		out.Attack = &attackJSON{
			Prefix: d.AttackPattern.Prefix,
			Pump:   d.AttackPattern.Pump,
			Suffix: d.AttackPattern.Suffix,
			Base:   d.AttackPattern.Base,
			Repeat: d.AttackPattern.Repeat,
			String: d.AttackPattern.String(),
		}
	}
	if d.Hotspot != nil {
		text := ""
		if d.Hotspot.Start >= 0 && d.Hotspot.End <= len(d.Source) && d.Hotspot.Start <= d.Hotspot.End {
			text = d.Source[d.Hotspot.Start:d.Hotspot.End]
		}
		out.Hotspot = &hotspotJSON{Start: d.Hotspot.Start, End: d.Hotspot.End, Text: text}
	}
	return out
}

func complexityTypeName(c ComplexityClass) string {
	switch c {
	case ComplexitySafe:
		return "safe"
	case ComplexityPolynomial:
		return "polynomial"
	case ComplexityExponential:
		return "exponential"
	default:
		return "safe"
	}
}
