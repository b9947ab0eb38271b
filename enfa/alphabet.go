// Package enfa builds a Thompson ε-NFA from an ast.Pattern (spec §4.2).
package enfa

import (
	"sort"

	"github.com/coregx/redosentinel/ast"
)

// Alphabet partitions the (very large) rune space into a small number of
// equivalence classes: two runes share a class iff every CharClass/Dot/
// Literal predicate in the pattern treats them identically. This mirrors
// the teacher's nfa.ByteClasses, generalized from a fixed 256-byte alphabet
// to an open rune alphabet recorded as a sorted boundary list instead of a
// dense 256-entry table.
//
// Reducing the alphabet this way is what keeps the NFAwLA determinization
// in §4.4 and the SCC self-product in §4.5 tractable: both algorithms are
// driven by "for every symbol in the alphabet", and the alphabet here is
// O(distinct boundaries in the pattern) rather than all of Unicode.
type Alphabet struct {
	bounds []rune // sorted; bounds[i] is the inclusive upper bound of class i, the last class covers everything above the final bound
}

// classBuilder accumulates boundaries while walking the AST, analogous to
// the teacher's ByteClassSet.
type classBuilder struct {
	set map[rune]struct{}
}

func newClassBuilder() *classBuilder {
	return &classBuilder{set: map[rune]struct{}{}}
}

// markRange records that [lo, hi] must not straddle a class boundary:
// lo-1 and hi are both boundaries, same logic as ByteClassSet.SetRange.
func (cb *classBuilder) markRange(lo, hi rune) {
	if lo > 0 {
		cb.set[lo-1] = struct{}{}
	}
	cb.set[hi] = struct{}{}
}

// BuildAlphabet scans every literal/char-class/dot predicate reachable from
// root and returns the coarsest alphabet that still distinguishes them.
func BuildAlphabet(root *ast.Node, flags ast.Flags) *Alphabet {
	cb := newClassBuilder()
	cb.markRange('\n', '\n') // dot's boundary, relevant with/without dotall
	walkAlphabet(root, cb)

	bounds := make([]rune, 0, len(cb.set))
	for r := range cb.set {
		bounds = append(bounds, r)
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })
	return &Alphabet{bounds: bounds}
}

func walkAlphabet(n *ast.Node, cb *classBuilder) {
	if n == nil {
		return
	}
	switch n.Op {
	case ast.OpLiteral:
		cb.markRange(n.Rune, n.Rune)
	case ast.OpCharClass:
		for _, r := range n.Ranges {
			cb.markRange(r.Lo, r.Hi)
		}
	}
	for _, s := range n.Sub {
		walkAlphabet(s, cb)
	}
}

// Class returns the equivalence class id for r.
func (a *Alphabet) Class(r rune) int {
	return sort.Search(len(a.bounds), func(i int) bool { return a.bounds[i] >= r })
}

// NumClasses returns the total number of equivalence classes.
func (a *Alphabet) NumClasses() int {
	return len(a.bounds) + 1
}

// Representative returns one concrete rune belonging to class id, used when
// materializing a witness (a class id) into an actual string (spec §4.6).
func (a *Alphabet) Representative(class int) rune {
	if class == 0 {
		if len(a.bounds) == 0 {
			return 'a'
		}
		return a.bounds[0]
	}
	if class-1 < len(a.bounds) {
		return a.bounds[class-1] + 1
	}
	if len(a.bounds) == 0 {
		return 'a'
	}
	return a.bounds[len(a.bounds)-1] + 1
}

// ClassesOf returns every class id covered by the rune ranges, honoring
// negation, using one representative rune per class as the membership probe.
func (a *Alphabet) ClassesOf(ranges []ast.RuneRange, negated bool) []int {
	var out []int
	for c := 0; c < a.NumClasses(); c++ {
		rep := a.Representative(c)
		in := runeInRanges(rep, ranges)
		if in != negated {
			out = append(out, c)
		}
	}
	return out
}

func runeInRanges(r rune, ranges []ast.RuneRange) bool {
	for _, rr := range ranges {
		if r >= rr.Lo && r <= rr.Hi {
			return true
		}
	}
	return false
}
