// Package scc partitions the pruned NFAwLA into strongly connected
// components and tests each non-trivial component for exponential (EDA) or
// polynomial (IDA) degree of ambiguity, per spec §4.5.
package scc

import "github.com/coregx/redosentinel/nfawla"

// Component is one strongly connected component of the NFAwLA: the set of
// member state indices and whether it is "non-trivial" (size ≥ 2, or a
// single state with a self-loop) — only non-trivial components can harbor a
// backtracking loop.
type Component struct {
	States     []int
	index      map[int]int // state index -> position in States
	NonTrivial bool
}

// Contains reports whether state s belongs to the component.
func (c *Component) Contains(s int) bool {
	_, ok := c.index[s]
	return ok
}

// Tarjan computes the strongly connected components of g in reverse
// finishing order (standard Tarjan), returning only iteration-stable
// results: determinism here is what keeps Analyze's output reproducible
// under a fixed random_seed (spec P6).
func Tarjan(g *nfawla.Graph) []Component {
	n := len(g.States)
	t := &tarjanState{
		g:       g,
		index:   make([]int, n),
		low:     make([]int, n),
		onStack: make([]bool, n),
		visited: make([]bool, n),
	}
	for i := range t.index {
		t.index[i] = -1
	}
	for s := 0; s < n; s++ {
		if !t.visited[s] {
			t.strongConnect(s)
		}
	}
	return t.comps
}

type tarjanState struct {
	g       *nfawla.Graph
	counter int
	index   []int
	low     []int
	onStack []bool
	visited []bool
	stack   []int
	comps   []Component
}

// strongConnect is an explicit-stack rewrite of Tarjan's recursive algorithm
// (pattern NFAs can be deep enough, via long literal runs, to risk
// overflowing a real call stack).
func (t *tarjanState) strongConnect(root int) {
	type frame struct {
		v       int
		edgeIdx int
	}
	stack := []frame{{v: root}}
	t.visit(root)

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		v := top.v
		edges := t.g.Edges[v]
		if top.edgeIdx < len(edges) {
			w := edges[top.edgeIdx].To
			top.edgeIdx++
			if !t.visited[w] {
				t.visit(w)
				stack = append(stack, frame{v: w})
				continue
			} else if t.onStack[w] {
				if t.low[w] < t.low[v] {
					t.low[v] = t.low[w]
				}
			}
			continue
		}
		// done with v: pop and propagate low-link to caller
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			parent := &stack[len(stack)-1]
			if t.low[v] < t.low[parent.v] {
				t.low[parent.v] = t.low[v]
			}
		}
		if t.low[v] == t.index[v] {
			t.popComponent(v)
		}
	}
}

func (t *tarjanState) visit(v int) {
	t.index[v] = t.counter
	t.low[v] = t.counter
	t.counter++
	t.visited[v] = true
	t.onStack[v] = true
	t.stack = append(t.stack, v)
}

func (t *tarjanState) popComponent(root int) {
	var members []int
	for {
		n := len(t.stack) - 1
		w := t.stack[n]
		t.stack = t.stack[:n]
		t.onStack[w] = false
		members = append(members, w)
		if w == root {
			break
		}
	}
	idx := make(map[int]int, len(members))
	for i, s := range members {
		idx[s] = i
	}
	nonTrivial := len(members) > 1 || hasSelfLoop(t.g, members[0])
	t.comps = append(t.comps, Component{States: members, index: idx, NonTrivial: nonTrivial})
}

func hasSelfLoop(g *nfawla.Graph, s int) bool {
	for _, e := range g.Edges[s] {
		if e.To == s {
			return true
		}
	}
	return false
}
