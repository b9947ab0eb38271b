package nfawla

import (
	"testing"

	"github.com/coregx/redosentinel/ast"
	"github.com/coregx/redosentinel/enfa"
	"github.com/coregx/redosentinel/ordered"
)

func build(t *testing.T, pattern string, maxStates int) *Graph {
	t.Helper()
	p, err := ast.Parse(pattern, ast.DefaultFlags())
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	g, err := enfa.Build(p)
	if err != nil {
		t.Fatalf("enfa.Build(%q): %v", pattern, err)
	}
	n := ordered.Reduce(g)
	nw, err := Build(n, maxStates)
	if err != nil {
		t.Fatalf("nfawla.Build(%q): %v", pattern, err)
	}
	return nw
}

func TestBuildSimplePatternsReachAccept(t *testing.T) {
	for _, pattern := range []string{"a", "a*", "a+b", "(a|b)+", "[a-z]{2,4}"} {
		g := build(t, pattern, 4096)
		if len(g.States) == 0 {
			t.Errorf("pattern %q: empty NFAwLA", pattern)
			continue
		}
		foundAccept := false
		for i := range g.States {
			if g.IsAccepting(i) {
				foundAccept = true
				break
			}
		}
		if !foundAccept {
			t.Errorf("pattern %q: no accepting NFAwLA state reachable", pattern)
		}
	}
}

func TestBuildAcyclicPatternHasNoSelfLoops(t *testing.T) {
	// `ab` has no loop, so no NFAwLA state may carry a self-loop edge.
	g := build(t, "ab", 4096)
	for i, edges := range g.Edges {
		for _, e := range edges {
			if e.To == i {
				t.Errorf("self-loop at state %d should have been pruned or is a real cycle worth inspecting", i)
			}
		}
	}
}

func TestShortestWordFromStartIsEmpty(t *testing.T) {
	g := build(t, "a+", 4096)
	classes, ok := g.ShortestWord(g.Start)
	if !ok {
		t.Fatal("start state should be reachable from itself")
	}
	if len(classes) != 0 {
		t.Fatalf("expected empty path to self, got %v", classes)
	}
}

func TestShortestWordToAcceptIsNonEmpty(t *testing.T) {
	g := build(t, "abc", 4096)
	target := -1
	for i := range g.States {
		if g.IsAccepting(i) {
			target = i
			break
		}
	}
	if target < 0 {
		t.Fatal("no accepting state found")
	}
	classes, ok := g.ShortestWord(target)
	if !ok {
		t.Fatal("accepting state should be reachable")
	}
	if len(classes) == 0 {
		t.Fatal("expected a non-empty path to accept a non-empty literal pattern")
	}
}

func TestBuildOversizeReturnsErrOversize(t *testing.T) {
	p, err := ast.Parse("(a|b|c|d|e){1,50}", ast.DefaultFlags())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g, err := enfa.Build(p)
	if err != nil {
		t.Fatalf("enfa.Build: %v", err)
	}
	n := ordered.Reduce(g)
	_, err = Build(n, 4)
	if err == nil {
		t.Fatal("expected ErrOversize for a tiny state budget")
	}
	if _, ok := err.(*ErrOversize); !ok {
		t.Fatalf("expected *ErrOversize, got %T: %v", err, err)
	}
}
