// Package fuzzcheck implements the fuzz path (spec §4.7's "Fuzz loop"):
// seed generation from the AST, biased mutation, and step-growth
// classification, used whenever the feasibility gate routes a pattern away
// from the automaton path.
package fuzzcheck

import (
	"sort"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/redosentinel/ast"
)

// Seeder enumerates candidate inputs derived directly from the pattern's
// AST: character-class samples, repetition-length variants, and
// alternation samples (spec §4.7).
type Seeder struct {
	pattern *ast.Pattern
	literal *ahocorasick.Automaton // guards against re-seeding substrings already covered
}

// NewSeeder builds a Seeder for p, extracting its literal runs (two or more
// consecutive literals) into an Aho-Corasick automaton so Run can cheaply
// skip a freshly mutated candidate that already contains one of those
// literal runs as a substring — redundant seed work that otherwise grows
// with alternation width. Seeds itself does not apply this filter.
func NewSeeder(p *ast.Pattern) *Seeder {
	s := &Seeder{pattern: p}
	literals := extractLiteralRuns(p.Root)
	if len(literals) > 0 {
		builder := ahocorasick.NewBuilder()
		for _, lit := range literals {
			builder.AddPattern([]byte(lit))
		}
		if auto, err := builder.Build(); err == nil {
			s.literal = auto
		}
	}
	return s
}

// Seeds returns the deduplicated seed corpus for p.
func (s *Seeder) Seeds() []string {
	set := map[string]bool{}
	var out []string
	add := func(str string) {
		if set[str] {
			return
		}
		set[str] = true
		out = append(out, str)
	}

	add("") // length-0 baseline

	for _, alt := range alternativeSamples(s.pattern.Root) {
		add(alt)
	}
	for _, rep := range repetitionSamples(s.pattern.Root) {
		add(rep)
	}
	for _, cls := range classSamples(s.pattern.Root) {
		add(cls)
	}

	sort.Strings(out)
	return out
}

// redundant reports whether candidate already contains one of the pattern's
// own literal runs as a substring, via an O(len(candidate)) Aho-Corasick scan
// instead of a per-literal substring search.
func (s *Seeder) redundant(candidate string) bool {
	if s.literal == nil || candidate == "" {
		return false
	}
	return s.literal.IsMatch([]byte(candidate))
}

func extractLiteralRuns(n *ast.Node) []string {
	var runs []string
	var cur []rune
	flush := func() {
		if len(cur) >= 2 {
			runs = append(runs, string(cur))
		}
		cur = nil
	}
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n == nil {
			return
		}
		switch n.Op {
		case ast.OpLiteral:
			cur = append(cur, n.Rune)
			return
		case ast.OpConcat:
			for _, s := range n.Sub {
				walk(s)
			}
			flush()
			return
		}
		flush()
		for _, s := range n.Sub {
			walk(s)
		}
	}
	walk(n)
	flush()
	return runs
}
