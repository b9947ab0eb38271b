package scc

import "github.com/coregx/redosentinel/nfawla"

// EDAWitness is an exponential-ambiguity candidate: a component containing
// a "diamond" — two distinguishable label sequences that both return to the
// same state q, spelling the same non-empty word (spec §4.5).
type EDAWitness struct {
	Component int   // index into the Components slice Analyze was given
	Loop      int   // the NFAwLA state q shared by both paths
	PumpWord  []int // the class sequence w spelled by the diamond
}

// pairState is a self-product node: two (possibly equal) component-local
// state positions walked in lockstep.
type pairState struct{ a, b int }

// detectEDA builds the self-product of comp (states are ordered pairs of
// comp-local positions) and searches for a non-trivial path from some
// diagonal pair (q,q) back to that same pair, passing through at least one
// off-diagonal pair — the signature of two distinct label sequences
// re-converging on the same state after spelling the same word.
func detectEDA(g *nfawla.Graph, compIdx int, comp Component) *EDAWitness {
	n := len(comp.States)
	if n == 0 {
		return nil
	}
	// local adjacency restricted to the component, since any transition
	// leaving the component can never contribute to a within-component cycle.
	adj := make([][]nfawla.Edge, n)
	for i, s := range comp.States {
		for _, e := range g.Edges[s] {
			if j, ok := comp.index[e.To]; ok {
				adj[i] = append(adj[i], nfawla.Edge{Class: e.Class, To: j})
			}
		}
	}

	for start := 0; start < n; start++ {
		if w, ok := searchDiamond(adj, start); ok {
			return &EDAWitness{Component: compIdx, Loop: comp.States[start], PumpWord: w}
		}
	}
	return nil
}

// searchDiamond runs a breadth-first search over the self-product graph
// rooted at (start,start), looking for a return to (start,start) via a path
// that visits at least one off-diagonal pair.
func searchDiamond(adj [][]nfawla.Edge, start int) ([]int, bool) {
	type frame struct {
		p      pairState
		word   []int
		sawOff bool
	}
	visited := map[pairState]bool{}
	queue := []frame{{p: pairState{start, start}}}
	visited[pairState{start, start}] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, ea := range adj[cur.p.a] {
			for _, eb := range adj[cur.p.b] {
				if ea.Class != eb.Class {
					continue
				}
				next := pairState{ea.To, eb.To}
				sawOff := cur.sawOff || next.a != next.b
				if next.a == next.b && next.a == start && sawOff {
					word := append(append([]int{}, cur.word...), ea.Class)
					return word, true
				}
				if visited[next] {
					continue
				}
				visited[next] = true
				word := append(append([]int{}, cur.word...), ea.Class)
				queue = append(queue, frame{p: next, word: word, sawOff: sawOff})
			}
		}
	}
	return nil, false
}
