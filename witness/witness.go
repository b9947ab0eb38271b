// Package witness synthesizes a concrete attack string and source hotspot
// from an exploitable ambiguity candidate (spec §4.6).
package witness

import (
	"strings"

	"github.com/coregx/redosentinel/ast"
	"github.com/coregx/redosentinel/nfawla"
)

// AttackPattern is the structured form of spec §3's attack_pattern: a
// prefix that drives the engine into the ambiguous loop, a pump repeated
// enough times to blow the budget, and a suffix engineered to force the
// backtracking search rather than an early accept.
type AttackPattern struct {
	Prefix string
	Pump   string
	Suffix string
	Repeat int
	Base   int
}

// String renders the full attack string: prefix + pump×repeat + suffix.
func (a AttackPattern) String() string {
	var b strings.Builder
	b.WriteString(a.Prefix)
	for i := 0; i < a.Repeat; i++ {
		b.WriteString(a.Pump)
	}
	b.WriteString(a.Suffix)
	return b.String()
}

// Hotspot is a byte-offset span within the original pattern source
// implicated in the ambiguity, for diagnostic display (spec §3 Hotspot).
type Hotspot struct {
	Start, End int
}

// Options bounds the synthesized attack string (spec §3 Config fields
// max_attack_length and attack_limit).
type Options struct {
	MaxAttackLength int
	MinRepeat       int // attack_limit's minimum repeat count, default 20
}

// DefaultOptions mirrors spec §3's stated defaults.
func DefaultOptions() Options {
	return Options{MaxAttackLength: 1 << 16, MinRepeat: 20}
}

// Synthesize builds the attack pattern and hotspot for a candidate whose
// ambiguity loop sits at NFAwLA state loopState, spelled by pumpClasses,
// with cycleStates the full set of NFAwLA states participating in the
// cycle (EDA diamond or IDA chain) used for hotspot computation.
func Synthesize(g *nfawla.Graph, loopState int, pumpClasses []int, cycleStates []int, opts Options) (AttackPattern, Hotspot) {
	prefixClasses, _ := g.ShortestWord(loopState)

	prefix := classesToString(g, prefixClasses)
	pump := classesToString(g, pumpClasses)
	suffix := synthesizeSuffix(g, pumpClasses)

	ap := AttackPattern{Prefix: prefix, Pump: pump, Suffix: suffix, Base: len(prefix)}
	ap.Repeat = fitRepeat(ap, opts)

	return ap, hotspotOf(g, cycleStates)
}

// classesToString materializes a class sequence into a concrete string
// using one representative rune per class (spec §4.6's "shortest string").
func classesToString(g *nfawla.Graph, classes []int) string {
	var b strings.Builder
	for _, c := range classes {
		b.WriteRune(g.Alphabet.Representative(c))
	}
	return b.String()
}

// synthesizeSuffix picks a rune absent from the pump's own class set, so
// appending it forces the backtracking engine to exhaust every pumped
// alternative before failing, rather than accepting early.
func synthesizeSuffix(g *nfawla.Graph, pumpClasses []int) string {
	used := make(map[int]bool, len(pumpClasses))
	for _, c := range pumpClasses {
		used[c] = true
	}
	total := g.Alphabet.NumClasses()
	for c := 0; c < total; c++ {
		if !used[c] {
			return string(g.Alphabet.Representative(c))
		}
	}
	// every class appears in the pump (pathological, tiny alphabet): fall
	// back to repeating the first pump rune, which still forces a full
	// backtrack even though it cannot strictly "fail" the loop.
	if len(pumpClasses) > 0 {
		return string(g.Alphabet.Representative(pumpClasses[0]))
	}
	return ""
}

// fitRepeat picks the largest repeat count that keeps the full attack
// string within MaxAttackLength while never going below MinRepeat (spec
// §4.6: "|prefix| + |pump|·repeat + |suffix| ≤ max_attack_length and
// repeat ≥ attack_limit's minimum").
func fitRepeat(ap AttackPattern, opts Options) int {
	if len(ap.Pump) == 0 {
		return opts.MinRepeat
	}
	budget := opts.MaxAttackLength - len(ap.Prefix) - len(ap.Suffix)
	if budget <= 0 {
		return opts.MinRepeat
	}
	repeat := budget / len(ap.Pump)
	if repeat < opts.MinRepeat {
		repeat = opts.MinRepeat
	}
	return repeat
}

// hotspotOf unions the source spans of every ordered-NFA state underlying
// the NFAwLA states in cycleStates.
func hotspotOf(g *nfawla.Graph, cycleStates []int) Hotspot {
	h := Hotspot{Start: -1, End: -1}
	for _, i := range cycleStates {
		if i < 0 || i >= len(g.States) {
			continue
		}
		span := spanOf(g, i)
		if span.Start == 0 && span.End == 0 {
			continue
		}
		if h.Start == -1 || span.Start < h.Start {
			h.Start = span.Start
		}
		if span.End > h.End {
			h.End = span.End
		}
	}
	if h.Start == -1 {
		return Hotspot{}
	}
	return h
}

func spanOf(g *nfawla.Graph, nfawlaState int) ast.Span {
	q := g.States[nfawlaState].Q
	return g.Ordered.State(q).Span
}
