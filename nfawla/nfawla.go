package nfawla

import (
	"github.com/coregx/redosentinel/enfa"
	"github.com/coregx/redosentinel/ordered"
)

// State is a single NFAwLA state: a forward OrderedNFA state paired with
// the reverse-DFA subset describing which continuations remain viable.
type State struct {
	Q enfa.StateID
	D DState
}

// Edge is a pruned, class-labelled transition between two NFAwLA states.
type Edge struct {
	Class int
	To    int // index into Graph.States
}

// Graph is the pruned product automaton (spec §4.4). Edges whose target
// subset is dead are never added, so every edge that survives leads to a
// state from which acceptance remains possible.
type Graph struct {
	States   []State
	Edges    [][]Edge // Edges[i] = outgoing edges of States[i]
	Start    int
	Ordered  *ordered.NFA
	Alphabet *enfa.Alphabet
	rdfa     *RDFA
}

// Build constructs the NFAwLA for n, bounded by maxStates (applied to both
// the reverse-DFA determinization and the product construction so a
// pathological pattern can't blow either budget silently).
func Build(n *ordered.NFA, maxStates int) (*Graph, error) {
	rdfa, err := Determinize(n, maxStates)
	if err != nil {
		return nil, err
	}

	g := &Graph{Ordered: n, Alphabet: n.Alphabet, rdfa: rdfa}
	index := map[State]int{}

	intern := func(s State) int {
		if idx, ok := index[s]; ok {
			return idx
		}
		idx := len(g.States)
		index[s] = idx
		g.States = append(g.States, s)
		g.Edges = append(g.Edges, nil)
		return idx
	}

	start := State{Q: n.Start, D: rdfa.Start}
	g.Start = intern(start)

	queue := []int{g.Start}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		s := g.States[i]
		for _, e := range n.State(s.Q).Edges {
			class := e.Class
			d2 := rdfa.Trans[s.D][class]
			if rdfa.Dead(d2) {
				continue // pruned: this continuation can never reach acceptance
			}
			target := State{Q: e.To, D: d2}
			before := len(g.States)
			idx := intern(target)
			g.Edges[i] = append(g.Edges[i], Edge{Class: class, To: idx})
			if idx >= before {
				queue = append(queue, idx)
			}
			if len(g.States) > maxStates {
				return nil, &ErrOversize{Limit: maxStates}
			}
		}
	}
	return g, nil
}

// IsAccepting reports whether the NFAwLA state at index i corresponds to an
// accepting OrderedNFA state.
func (g *Graph) IsAccepting(i int) bool {
	return g.Ordered.State(g.States[i].Q).Accept
}

// ShortestWord performs a BFS from Start to target, returning the sequence
// of alphabet classes labelling the shortest path (spec §4.6 prefix
// computation: "shortest string reaching (q,D) from the NFAwLA initial").
// Returns (nil, false) if target is unreachable.
func (g *Graph) ShortestWord(target int) ([]int, bool) {
	if target == g.Start {
		return nil, true
	}
	type step struct {
		from  int
		class int
	}
	visited := make([]bool, len(g.States))
	hasVia := make([]bool, len(g.States))
	via := make([]step, len(g.States))
	visited[g.Start] = true
	queue := []int{g.Start}
	found := false
	for len(queue) > 0 && !found {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.Edges[cur] {
			if visited[e.To] {
				continue
			}
			visited[e.To] = true
			hasVia[e.To] = true
			via[e.To] = step{from: cur, class: e.Class}
			if e.To == target {
				found = true
				break
			}
			queue = append(queue, e.To)
		}
	}
	if !found {
		return nil, false
	}
	var classes []int
	for cur := target; hasVia[cur]; cur = via[cur].from {
		classes = append([]int{via[cur].class}, classes...)
	}
	return classes, true
}
