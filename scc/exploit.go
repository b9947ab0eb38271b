package scc

import "github.com/coregx/redosentinel/nfawla"

// MatchMode controls how the exploitability filter treats implicit
// trailing context (spec §3 Config.match_mode, §4.4).
type MatchMode uint8

const (
	MatchAuto MatchMode = iota
	MatchFull
	MatchPartial
)

// requiresContinuation reports whether, from NFAwLA state q, the pattern
// still needs at least one more character to complete a match — i.e. q is
// not itself an accepting product state. This is the graph-level half of
// the "portion of the AST following the ambiguous sub-expression requires a
// further character" test in spec §4.4: reaching an accepting state means
// the remaining suffix (if any) is entirely optional.
func requiresContinuation(g *nfawla.Graph, q int) bool {
	return !g.IsAccepting(q)
}

// Exploitable implements spec §4.4's admission rule for a multi-transition
// candidate rooted at NFAwLA state q: the candidate survives iff the
// pattern has a right anchor, or a continuation is mandatory, or
// match_mode=FULL demands the whole input be consumed regardless. Under
// match_mode=PARTIAL both the anchor and continuation conditions must hold.
func Exploitable(g *nfawla.Graph, q int, hasRightAnchor bool, mode MatchMode) bool {
	continuation := requiresContinuation(g, q)
	switch mode {
	case MatchFull:
		return true
	case MatchPartial:
		return hasRightAnchor && continuation
	default: // MatchAuto
		return hasRightAnchor || continuation
	}
}
