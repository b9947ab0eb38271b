package analyzer

import "github.com/coregx/redosentinel/ast"

// gateDecision is the feasibility gate's routing verdict (spec §4.7).
type gateDecision uint8

const (
	routeAutomaton gateDecision = iota
	routeFuzz
	routeUnknown
)

// evaluateGate applies spec §4.7's three ordered rules:
//  1. Backreference/look-around, oversize AST, or a projected NFAwLA size
//     over MaxNFASize → FUZZ.
//  2. checker=AUTOMATON forces the automaton path; if the pattern is
//     unsupported there, the verdict becomes UNKNOWN instead of falling
//     back.
//  3. Otherwise AUTOMATON.
//
// projectedNFASize is a cheap upper bound on NFAwLA size (node count
// squared, since the look-ahead product is bounded by |Q|×|R| and |R| is
// itself bounded by 2^|Q| in the worst case but in practice tracks |Q|); a
// tight bound is recomputed for real once nfawla.Build runs, which can
// still itself fail with ErrOversize and fall back.
func evaluateGate(p *ast.Pattern, cfg Config) gateDecision {
	unsupported := p.HasBackreference() || p.HasLookaround()
	nodes := p.NodeCount()
	oversizeAST := nodes > cfg.MaxPatternSize
	projectedNFASize := nodes * nodes
	oversizeNFA := projectedNFASize > cfg.MaxNFASize

	if unsupported || oversizeAST || oversizeNFA {
		if cfg.Checker == CheckerAutomaton {
			return routeUnknown
		}
		return routeFuzz
	}

	if cfg.Checker == CheckerFuzz {
		return routeFuzz
	}

	return routeAutomaton
}
