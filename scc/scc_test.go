package scc

import (
	"testing"

	"github.com/coregx/redosentinel/ast"
	"github.com/coregx/redosentinel/enfa"
	"github.com/coregx/redosentinel/nfawla"
	"github.com/coregx/redosentinel/ordered"
)

func buildGraph(t *testing.T, pattern string) *nfawla.Graph {
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
	nw, err := nfawla.Build(n, 8192)
	if err != nil {
		t.Fatalf("nfawla.Build(%q): %v", pattern, err)
	}
	return nw
}

func TestTarjanFindsSelfLoopAsNonTrivial(t *testing.T) {
	g := buildGraph(t, "a+")
	comps := Tarjan(g)
	found := false
	for _, c := range comps {
		if c.NonTrivial {
			found = true
		}
	}
	if !found {
		t.Fatal("a+ should contain a non-trivial component (the loop)")
	}
}

func TestAnalyzeDetectsEDAForNestedStar(t *testing.T) {
	// (a*)* is the textbook exponential-ambiguity pattern: two ways to
	// consume each 'a' (inner star vs. outer star iteration).
	g := buildGraph(t, "(a*)*")
	res := Analyze(g)
	if res.Kind != KindEDA {
		t.Fatalf("expected KindEDA for (a*)*, got %v", res.Kind)
	}
	if len(res.EDA.PumpWord) == 0 {
		t.Fatal("expected a non-empty pump word")
	}
}

func TestAnalyzeSafeForSimpleLiteral(t *testing.T) {
	g := buildGraph(t, "abc")
	res := Analyze(g)
	if res.Kind != KindNone {
		t.Fatalf("expected KindNone for a plain literal, got %v", res.Kind)
	}
}

func TestAnalyzeSafeForSingleStar(t *testing.T) {
	// a* alone has only one way to consume each character: no ambiguity.
	g := buildGraph(t, "a*")
	res := Analyze(g)
	if res.Kind != KindNone {
		t.Fatalf("expected KindNone for a*, got %v", res.Kind)
	}
}

func TestExploitableRequiresAnchorUnderPartial(t *testing.T) {
	g := buildGraph(t, "(a*)*")
	// Find any state to probe; the exact state doesn't matter for this
	// mode-logic test as long as it's a valid index.
	q := 0
	if Exploitable(g, q, false, MatchPartial) && !requiresContinuation(g, q) {
		t.Fatal("MatchPartial without anchor or continuation should not be exploitable")
	}
	if !Exploitable(g, q, true, MatchFull) {
		t.Fatal("MatchFull should always be exploitable regardless of anchor")
	}
}
