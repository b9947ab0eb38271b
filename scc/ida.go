package scc

import "github.com/coregx/redosentinel/nfawla"

// IDAWitness is a polynomial-ambiguity candidate: a chain of distinct SCCs
// that all loop on the same pump word, chained by paths spelling that word
// (spec §4.5). Degree is the number of chained components, i.e. the chain's
// path length in edges + 1 (minimum 2).
type IDAWitness struct {
	Degree   int
	Chain    []int // component indices, in chain order
	PumpWord []int
}

// selfLoopWord finds, for a non-trivial component, a short word spelled by
// some cycle returning to the same state — the necessary "loops on w"
// precondition for IDA chaining. A single-class self-loop (the common case:
// `a+`, `[a-z]*`) is preferred when present since it gives the simplest
// chainable word.
func selfLoopWord(g *nfawla.Graph, comp Component) (state int, word []int, ok bool) {
	for _, s := range comp.States {
		for _, e := range g.Edges[s] {
			if e.To == s {
				return s, []int{e.Class}, true
			}
		}
	}
	// No direct self-loop: fall back to the shortest cycle found by
	// breadth-first search within the component.
	adj := make(map[int][]nfawla.Edge, len(comp.States))
	for _, s := range comp.States {
		for _, e := range g.Edges[s] {
			if comp.Contains(e.To) {
				adj[s] = append(adj[s], e)
			}
		}
	}
	for _, start := range comp.States {
		if w, ok := findCycle(adj, start); ok {
			return start, w, true
		}
	}
	return 0, nil, false
}

func findCycle(adj map[int][]nfawla.Edge, start int) ([]int, bool) {
	type frame struct {
		state int
		word  []int
	}
	visited := map[int]bool{start: true}
	queue := []frame{{state: start}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range adj[cur.state] {
			word := append(append([]int{}, cur.word...), e.Class)
			if e.To == start && len(word) > 0 {
				return word, true
			}
			if visited[e.To] {
				continue
			}
			visited[e.To] = true
			queue = append(queue, frame{state: e.To, word: word})
		}
	}
	return nil, false
}

// pathSpells reports whether some path in g from `from` to `to` spells
// exactly word (i.e. a sequence of states s0=from, s1, ..., sk=to with each
// step consuming the next class in word) — the "path from C1 to C2 spelling
// w" condition of the IDA test.
func pathSpells(g *nfawla.Graph, from, to int, word []int) bool {
	frontier := map[int]bool{from: true}
	for _, class := range word {
		next := map[int]bool{}
		for s := range frontier {
			for _, e := range g.Edges[s] {
				if e.Class == class {
					next[e.To] = true
				}
			}
		}
		if len(next) == 0 {
			return false
		}
		frontier = next
	}
	return frontier[to]
}

// wordsEqual compares two class sequences for exact equality.
func wordsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// detectIDA builds the meta-graph of components that share a pump word and
// are connected by a path spelling it, then returns the longest chain.
func detectIDA(g *nfawla.Graph, comps []Component) *IDAWitness {
	type loop struct {
		state int
		word  []int
	}
	loops := make([]*loop, len(comps))
	for i, c := range comps {
		if !c.NonTrivial {
			continue
		}
		if s, w, ok := selfLoopWord(g, c); ok {
			loops[i] = &loop{state: s, word: w}
		}
	}

	// meta[i] = indices of components reachable from i via a shared-word
	// chaining step.
	meta := make([][]int, len(comps))
	for i, li := range loops {
		if li == nil {
			continue
		}
		for j, lj := range loops {
			if i == j || lj == nil {
				continue
			}
			if !wordsEqual(li.word, lj.word) {
				continue
			}
			if pathSpells(g, li.state, lj.state, li.word) {
				meta[i] = append(meta[i], j)
			}
		}
	}

	best := &IDAWitness{}
	var dfs func(path []int, word []int)
	visiting := make([]bool, len(comps))
	dfs = func(path []int, word []int) {
		if len(path) > len(best.Chain) {
			best.Chain = append([]int{}, path...)
			best.PumpWord = word
		}
		last := path[len(path)-1]
		for _, next := range meta[last] {
			if visiting[next] {
				continue
			}
			visiting[next] = true
			dfs(append(path, next), word)
			visiting[next] = false
		}
	}
	for i, li := range loops {
		if li == nil {
			continue
		}
		visiting[i] = true
		dfs([]int{i}, li.word)
		visiting[i] = false
	}

	if len(best.Chain) < 2 {
		return nil
	}
	best.Degree = len(best.Chain) // chain length already counts the +1 (k SCCs chained -> degree k, minimum 2)
	return best
}
