package fuzzcheck

import (
	"strings"

	"github.com/coregx/redosentinel/ast"
)

// Mutator applies biased edits to a seed, aimed at discovering inputs that
// drive repeated backtracking rather than covering syntax (spec §4.7:
// "Mutator applies biased edits (repeat-character, insert-from-class,
// prefix/suffix with a class sample, concatenate pump candidates)").
type Mutator struct {
	classRunes []rune
}

// NewMutator collects one representative rune per distinct class/literal in
// p, used as the alphabet for insert/prefix/suffix edits.
func NewMutator(p *ast.Pattern) *Mutator {
	m := &Mutator{}
	seen := map[rune]bool{}
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n == nil {
			return
		}
		var r rune
		switch n.Op {
		case ast.OpLiteral:
			r = n.Rune
		case ast.OpCharClass, ast.OpDot:
			r = firstClassRune(n)
		}
		if r != 0 && !seen[r] {
			seen[r] = true
			m.classRunes = append(m.classRunes, r)
		}
		for _, s := range n.Sub {
			walk(s)
		}
	}
	walk(p.Root)
	if len(m.classRunes) == 0 {
		m.classRunes = []rune{'a'}
	}
	return m
}

// Mutate returns one edited variant per strategy, for the given seed.
func (m *Mutator) Mutate(seed string) []string {
	var out []string
	rep := string(m.classRunes[0])

	if seed != "" {
		out = append(out, seed+strings.Repeat(string(rune(seed[len(seed)-1])), len(seed))) // repeat-character
	}
	out = append(out, rep+seed)      // insert-from-class at front
	out = append(out, seed+rep)      // insert-from-class at back
	out = append(out, rep+seed+rep)  // prefix+suffix with a class sample
	out = append(out, seed+seed)     // concatenate pump candidate (double up)
	out = append(out, seed+seed+seed)

	return out
}

// Pump builds length multiples of base — the "run the VM on lengths L, L·2,
// L·4" growth probe (spec §4.7).
func Pump(base string, factor int) string {
	if base == "" {
		return ""
	}
	return strings.Repeat(base, factor)
}
