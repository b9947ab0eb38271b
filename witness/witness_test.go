package witness

import (
	"strings"
	"testing"

	"github.com/coregx/redosentinel/ast"
	"github.com/coregx/redosentinel/enfa"
	"github.com/coregx/redosentinel/nfawla"
	"github.com/coregx/redosentinel/ordered"
	"github.com/coregx/redosentinel/scc"
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

func TestSynthesizeProducesNonEmptyAttackForNestedStar(t *testing.T) {
	g := buildGraph(t, "^(a*)*$")
	res := scc.Analyze(g)
	if res.Kind != scc.KindEDA {
		t.Fatalf("expected EDA, got %v", res.Kind)
	}
	ap, hotspot := Synthesize(g, res.EDA.Loop, res.EDA.PumpWord, res.Components[0].States, DefaultOptions())
	if ap.Pump == "" {
		t.Fatal("expected a non-empty pump string")
	}
	if ap.Repeat < DefaultOptions().MinRepeat {
		t.Fatalf("expected repeat >= %d, got %d", DefaultOptions().MinRepeat, ap.Repeat)
	}
	full := ap.String()
	if !strings.Contains(full, strings.Repeat(ap.Pump, ap.Repeat)) {
		t.Fatal("rendered attack string should contain the repeated pump")
	}
	_ = hotspot
}

func TestFitRepeatRespectsMaxAttackLength(t *testing.T) {
	ap := AttackPattern{Prefix: "", Pump: "a", Suffix: "!"}
	opts := Options{MaxAttackLength: 100, MinRepeat: 20}
	repeat := fitRepeat(ap, opts)
	total := len(ap.Prefix) + repeat*len(ap.Pump) + len(ap.Suffix)
	if total > opts.MaxAttackLength {
		t.Fatalf("attack length %d exceeds budget %d", total, opts.MaxAttackLength)
	}
	if repeat < opts.MinRepeat {
		t.Fatalf("repeat %d below minimum %d", repeat, opts.MinRepeat)
	}
}
