// Package ordered eliminates ε-edges from an enfa.Graph, producing an
// ε-free NFA whose per-state edge order still encodes alternation/loop
// priority (spec §4.3).
package ordered

import (
	"github.com/coregx/redosentinel/ast"
	"github.com/coregx/redosentinel/enfa"
)

// Edge is a single consuming transition.
type Edge struct {
	Class int
	To    enfa.StateID
}

// State is one OrderedNFA state: it keeps the identity (and source span) of
// the ε-NFA state it was reduced from, but its Edges list is now the
// ε-closure-merged set of consuming transitions, in discovery order.
type State struct {
	ID     enfa.StateID
	Accept bool
	Edges  []Edge
	Span   ast.Span
}

// NFA is the ε-free reduction of an enfa.Graph. State ids are shared with
// the source graph: every ε-NFA state is kept, including states not
// reachable from Start, so NumStates equals the source graph's state count.
type NFA struct {
	States   []State
	Start    enfa.StateID
	Alphabet *enfa.Alphabet
}

// Reduce computes the OrderedNFA for g.
func Reduce(g *enfa.Graph) *NFA {
	n := &NFA{
		States:   make([]State, len(g.States)),
		Start:    g.Start,
		Alphabet: g.Alphabet,
	}
	closures := make([][]enfa.StateID, len(g.States))
	for i := range g.States {
		closures[i] = epsilonClosure(g, enfa.StateID(i))
	}
	for i, st := range g.States {
		out := State{ID: st.ID, Span: st.Span}
		for _, r := range closures[i] {
			rs := &g.States[r]
			if rs.Accept {
				out.Accept = true
			}
			out.Edges = append(out.Edges, edgesOf(rs)...)
		}
		n.States[i] = out
	}
	return n
}

func edgesOf(s *enfa.State) []Edge {
	edges := make([]Edge, len(s.Classes))
	for i, ce := range s.Classes {
		edges[i] = Edge{Class: ce.Class, To: ce.To}
	}
	return edges
}

// epsilonClosure returns the states reachable from start via ε-edges only
// (including start itself), visited in order-preserving DFS so that the
// first alternative/greedy branch is enumerated first. Cycles (e.g. a star
// loop's split pointing back at itself) are broken by a visited set.
func epsilonClosure(g *enfa.Graph, start enfa.StateID) []enfa.StateID {
	visited := make(map[enfa.StateID]bool)
	var order []enfa.StateID
	var visit func(id enfa.StateID)
	visit = func(id enfa.StateID) {
		if visited[id] {
			return
		}
		visited[id] = true
		order = append(order, id)
		for _, next := range g.States[id].Eps {
			visit(next)
		}
	}
	visit(start)
	return order
}

// State returns the OrderedNFA state with the given id.
func (n *NFA) State(id enfa.StateID) *State {
	return &n.States[id]
}

// NumStates returns the number of states.
func (n *NFA) NumStates() int {
	return len(n.States)
}
