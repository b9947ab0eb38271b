package nfawla

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coregx/redosentinel/enfa"
	"github.com/coregx/redosentinel/ordered"
)

// DState identifies a state of the determinized reverse automaton R.
type DState int32

// DeadState is the canonical empty subset: "no OrderedNFA state can reach
// acceptance from here", per spec §4.4's dead-state pruning rule.
const DeadState DState = 0

// ErrOversize is returned when determinization would exceed the configured
// state budget; the feasibility gate (package analyzer) treats this as a
// signal to fall back to the fuzz path (spec §4.7).
type ErrOversize struct {
	Limit int
}

func (e *ErrOversize) Error() string {
	return fmt.Sprintf("nfawla: reverse determinization exceeded %d states", e.Limit)
}

// RDFA is the determinized reverse automaton: R[d] is the sorted set of
// OrderedNFA states in subset d, and Trans[d][class] is the subset reached
// by stepping the SAME forward symbol class through every predecessor
// relation (spec §4.4).
type RDFA struct {
	Subsets [][]enfa.StateID
	Trans   [][]DState // Trans[d][class]
	Start   DState
}

// Dead reports whether d is the trap subset (spec: "all members
// non-accepting" — realized here as the canonical empty subset produced
// whenever no predecessor exists on that class).
func (r *RDFA) Dead(d DState) bool {
	return d == DeadState || len(r.Subsets[d]) == 0
}

// Determinize builds R by subset-constructing the reverse of n, starting
// from the accept set and bounded by maxStates (spec §3 Config.max_nfa_size
// governs this transitively through the feasibility gate).
func Determinize(n *ordered.NFA, maxStates int) (*RDFA, error) {
	adj := buildRevAdjacency(n)
	numClasses := n.Alphabet.NumClasses()

	r := &RDFA{}
	index := map[string]DState{}

	intern := func(subset []enfa.StateID) DState {
		key := subsetKey(subset)
		if id, ok := index[key]; ok {
			return id
		}
		id := DState(len(r.Subsets))
		index[key] = id
		r.Subsets = append(r.Subsets, subset)
		r.Trans = append(r.Trans, make([]DState, numClasses))
		return id
	}

	// DState(0) is always the empty/dead subset, whether or not it's ever
	// produced by a real predecessor step.
	intern(nil)

	start := acceptSet(n)
	r.Start = intern(start)

	queue := []DState{r.Start}
	for len(queue) > 0 {
		d := queue[0]
		queue = queue[1:]
		subset := r.Subsets[d]
		for c := 0; c < numClasses; c++ {
			if len(r.Subsets) > maxStates {
				return nil, &ErrOversize{Limit: maxStates}
			}
			pred := adj.predecessors(subset, c)
			before := len(r.Subsets)
			target := intern(pred)
			r.Trans[d][c] = target
			if int(target) >= before {
				queue = append(queue, target)
			}
		}
		if len(r.Subsets) > maxStates {
			return nil, &ErrOversize{Limit: maxStates}
		}
	}
	return r, nil
}

func subsetKey(subset []enfa.StateID) string {
	var b strings.Builder
	for i, s := range subset {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(s)))
	}
	return b.String()
}
