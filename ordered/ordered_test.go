package ordered

import (
	"testing"

	"github.com/coregx/redosentinel/ast"
	"github.com/coregx/redosentinel/enfa"
)

func reduce(t *testing.T, pattern string) *NFA {
	t.Helper()
	p, err := ast.Parse(pattern, ast.DefaultFlags())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g, err := enfa.Build(p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return Reduce(g)
}

func TestReduceKeepsConsumingEdges(t *testing.T) {
	n := reduce(t, "a*b")
	if n.NumStates() == 0 {
		t.Fatal("empty ordered NFA")
	}
	foundConsuming := false
	for _, st := range n.States {
		if len(st.Edges) > 0 {
			foundConsuming = true
		}
	}
	if !foundConsuming {
		t.Fatal("expected at least one consuming edge in ordered NFA")
	}
}

func TestReduceAcceptReachable(t *testing.T) {
	n := reduce(t, "a")
	acceptFound := false
	for _, st := range n.States {
		if st.Accept {
			acceptFound = true
		}
	}
	if !acceptFound {
		t.Fatal("no accepting state found in ordered NFA")
	}
}

func TestReduceStarStartAcceptsAndConsumes(t *testing.T) {
	// a* : the start state accepts the empty match and also offers the
	// consuming 'a' edge.
	n := reduce(t, "a*")
	start := n.State(n.Start)
	if !start.Accept {
		t.Fatal("a* start state should be able to accept the empty match")
	}
	if len(start.Edges) == 0 {
		t.Fatal("a* start state should also offer a consuming edge for 'a'")
	}
}
