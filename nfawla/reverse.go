// Package nfawla builds the look-ahead-augmented NFA described in spec
// §4.4: the OrderedNFA reversed, determinized, and paired back with the
// forward OrderedNFA so that transitions which cannot contribute to any
// accepted string are pruned before ambiguity analysis (package scc) runs.
package nfawla

import (
	"sort"

	"github.com/coregx/redosentinel/enfa"
	"github.com/coregx/redosentinel/ordered"
)

// revAdjacency indexes, per alphabet class, every edge of the OrderedNFA by
// its target so that "who are q's predecessors on c" (needed by subset
// construction over the reversed automaton) is an O(1) map lookup instead
// of a full edge scan per step.
type revAdjacency struct {
	byClass []map[enfa.StateID][]enfa.StateID // indexed by class
}

func buildRevAdjacency(n *ordered.NFA) *revAdjacency {
	r := &revAdjacency{byClass: make([]map[enfa.StateID][]enfa.StateID, n.Alphabet.NumClasses())}
	for c := range r.byClass {
		r.byClass[c] = make(map[enfa.StateID][]enfa.StateID)
	}
	for _, st := range n.States {
		for _, e := range st.Edges {
			r.byClass[e.Class][e.To] = append(r.byClass[e.Class][e.To], st.ID)
		}
	}
	return r
}

// predecessors returns, for symbol class c, every OrderedNFA state with an
// edge on c into any member of targets — the reverse-automaton step.
func (r *revAdjacency) predecessors(targets []enfa.StateID, class int) []enfa.StateID {
	seen := make(map[enfa.StateID]struct{})
	var out []enfa.StateID
	for _, t := range targets {
		for _, from := range r.byClass[class][t] {
			if _, ok := seen[from]; !ok {
				seen[from] = struct{}{}
				out = append(out, from)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// acceptSet returns every OrderedNFA state tagged as accepting, i.e. the
// reverse automaton's start set (spec §4.4 "start from the original
// accept").
func acceptSet(n *ordered.NFA) []enfa.StateID {
	var out []enfa.StateID
	for _, st := range n.States {
		if st.Accept {
			out = append(out, st.ID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
