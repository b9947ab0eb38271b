package fuzzcheck

import "github.com/coregx/redosentinel/ast"

// materialize renders a full concrete string for n using default choices
// (first alternative, Min repeat count, first class rune), substituting
// override for the subtree rooted at target when target is reached.
func materialize(n, target *ast.Node, override string) string {
	if n == nil {
		return ""
	}
	if n == target {
		return override
	}
	switch n.Op {
	case ast.OpLiteral:
		return string(n.Rune)
	case ast.OpCharClass:
		return string(firstClassRune(n))
	case ast.OpDot, ast.OpAnyChar:
		return "a"
	case ast.OpAnchor, ast.OpLookaround, ast.OpBackref:
		return ""
	case ast.OpConcat:
		s := ""
		for _, sub := range n.Sub {
			s += materialize(sub, target, override)
		}
		return s
	case ast.OpAlt:
		if len(n.Sub) == 0 {
			return ""
		}
		return materialize(n.Sub[0], target, override)
	case ast.OpGroup:
		if len(n.Sub) == 0 {
			return ""
		}
		return materialize(n.Sub[0], target, override)
	case ast.OpRepeat:
		count := n.Min
		if count == 0 && n.Max != 0 {
			count = 0
		}
		body := materialize(n.Sub[0], target, override)
		s := ""
		for i := 0; i < count; i++ {
			s += body
		}
		return s
	}
	return ""
}

func firstClassRune(n *ast.Node) rune {
	if n.Negated {
		// pick a rune guaranteed not covered by any listed range
		for r := rune('a'); r <= 'z'; r++ {
			if !runeInRanges(r, n.Ranges) {
				return r
			}
		}
		return '#'
	}
	if len(n.Ranges) == 0 {
		return 'a'
	}
	return n.Ranges[0].Lo
}

func runeInRanges(r rune, ranges []ast.RuneRange) bool {
	for _, rr := range ranges {
		if r >= rr.Lo && r <= rr.Hi {
			return true
		}
	}
	return false
}

// alternativeSamples generates one materialized string per alternation
// branch, for every Alt node in the tree.
func alternativeSamples(root *ast.Node) []string {
	var out []string
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n == nil {
			return
		}
		if n.Op == ast.OpAlt {
			for _, branch := range n.Sub {
				out = append(out, materialize(root, n, materialize(branch, nil, "")))
			}
		}
		for _, s := range n.Sub {
			walk(s)
		}
	}
	walk(root)
	return out
}

// repetitionSamples generates length-0/1/min/min+1 variants for every
// Repeat node (spec §4.7: "repetition expansions of length 0/1/min/min+1").
func repetitionSamples(root *ast.Node) []string {
	var out []string
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n == nil {
			return
		}
		if n.Op == ast.OpRepeat {
			body := materialize(n.Sub[0], nil, "")
			for _, count := range repeatLengths(n) {
				s := ""
				for i := 0; i < count; i++ {
					s += body
				}
				out = append(out, materialize(root, n, s))
			}
		}
		for _, s := range n.Sub {
			walk(s)
		}
	}
	walk(root)
	return out
}

func repeatLengths(n *ast.Node) []int {
	candidates := []int{0, 1, n.Min, n.Min + 1}
	seen := map[int]bool{}
	var out []int
	for _, c := range candidates {
		if c < 0 || seen[c] {
			continue
		}
		if n.Max != ast.Unbounded && c > n.Max {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// classSamples generates a single-rune variant for every CharClass/Dot node.
func classSamples(root *ast.Node) []string {
	var out []string
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n == nil {
			return
		}
		if n.Op == ast.OpCharClass || n.Op == ast.OpDot {
			out = append(out, materialize(root, n, string(firstClassRune(n))))
		}
		for _, s := range n.Sub {
			walk(s)
		}
	}
	walk(root)
	return out
}
