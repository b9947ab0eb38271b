package enfa

import (
	"testing"

	"github.com/coregx/redosentinel/ast"
)

func build(t *testing.T, pattern string) *Graph {
	t.Helper()
	p, err := ast.Parse(pattern, ast.DefaultFlags())
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	g, err := Build(p)
	if err != nil {
		t.Fatalf("Build(%q): %v", pattern, err)
	}
	return g
}

func TestBuildSimplePatterns(t *testing.T) {
	for _, pattern := range []string{
		"a", "a*", "a+", "a?", "a{2,4}", "a{3}", "a{2,}",
		"ab", "a|b", "(a+)+", "(a*)*", "[a-z]+", "^a+$", `\d+`,
	} {
		g := build(t, pattern)
		if g.NumStates() == 0 {
			t.Errorf("pattern %q produced empty graph", pattern)
		}
		if !g.State(g.Accept).Accept {
			t.Errorf("pattern %q: accept state not marked accepting", pattern)
		}
	}
}

func TestBuildRejectsBackreferenceAndLookaround(t *testing.T) {
	for _, pattern := range []string{`(a)\1`, `a(?=b)`, `(?<=a)b`} {
		p, err := ast.Parse(pattern, ast.DefaultFlags())
		if err != nil {
			t.Fatalf("Parse(%q): %v", pattern, err)
		}
		if _, err := Build(p); err == nil {
			t.Errorf("Build(%q) expected ErrUnsupported, got nil", pattern)
		}
	}
}

func TestAlphabetClassesOfHonorNegation(t *testing.T) {
	p, err := ast.Parse("[a-z]", ast.DefaultFlags())
	if err != nil {
		t.Fatal(err)
	}
	alpha := BuildAlphabet(p.Root, p.Flags)
	classesIn := alpha.ClassesOf([]ast.RuneRange{{Lo: 'a', Hi: 'z'}}, false)
	classesOut := alpha.ClassesOf([]ast.RuneRange{{Lo: 'a', Hi: 'z'}}, true)
	if len(classesIn) == 0 {
		t.Fatal("expected at least one class for [a-z]")
	}
	total := alpha.NumClasses()
	if len(classesIn)+len(classesOut) != total {
		t.Errorf("classesIn(%d) + classesOut(%d) != total(%d)", len(classesIn), len(classesOut), total)
	}
}
