package analyzer

import (
	"github.com/coregx/redosentinel/ast"
	"github.com/coregx/redosentinel/enfa"
	"github.com/coregx/redosentinel/nfawla"
	"github.com/coregx/redosentinel/ordered"
	"github.com/coregx/redosentinel/scc"
	"github.com/coregx/redosentinel/witness"
)

// automatonOutcome is what the automaton path contributes to Diagnostics
// before recall validation runs.
type automatonOutcome struct {
	Complexity Complexity
	Attack     *witness.AttackPattern
	Hotspot    *witness.Hotspot
	Oversize   bool // true: caller should fall back to the fuzz path
}

// runAutomaton executes the ε-NFA → OrderedNFA → NFAwLA → SCC → witness
// pipeline (spec §4.2–§4.6) and applies the §4.4 exploitability filter.
func runAutomaton(p *ast.Pattern, cfg Config) (*automatonOutcome, error) {
	g, err := enfa.Build(p)
	if err != nil {
		return nil, err
	}
	n := ordered.Reduce(g)

	graph, err := nfawla.Build(n, cfg.MaxNFASize)
	if err != nil {
		if _, ok := err.(*nfawla.ErrOversize); ok {
			return &automatonOutcome{Oversize: true}, nil
		}
		return nil, err
	}

	result := scc.Analyze(graph)

	hasRightAnchor := p.HasRightAnchor(cfg.MultilineAnchorExploitable)
	mode := toSCCMatchMode(cfg.MatchMode)

	switch result.Kind {
	case scc.KindEDA:
		if !scc.Exploitable(graph, result.EDA.Loop, hasRightAnchor, mode) {
			return &automatonOutcome{Complexity: Safe}, nil
		}
		ap, hotspot := witness.Synthesize(graph, result.EDA.Loop, result.EDA.PumpWord,
			result.Components[componentOf(result.Components, result.EDA.Loop)].States,
			witness.Options{MaxAttackLength: cfg.MaxAttackLength, MinRepeat: cfg.AttackLimit})
		return &automatonOutcome{Complexity: Exponential, Attack: &ap, Hotspot: &hotspot}, nil

	case scc.KindIDA:
		// Use the first chained component's representative loop state for
		// both the exploitability probe and the witness prefix/hotspot.
		firstComp := result.Components[result.IDA.Chain[0]]
		loopState := firstComp.States[0]
		if !scc.Exploitable(graph, loopState, hasRightAnchor, mode) {
			return &automatonOutcome{Complexity: Safe}, nil
		}
		var cycleStates []int
		for _, ci := range result.IDA.Chain {
			cycleStates = append(cycleStates, result.Components[ci].States...)
		}
		ap, hotspot := witness.Synthesize(graph, loopState, result.IDA.PumpWord, cycleStates,
			witness.Options{MaxAttackLength: cfg.MaxAttackLength, MinRepeat: cfg.AttackLimit})
		return &automatonOutcome{Complexity: Polynomial(result.IDA.Degree), Attack: &ap, Hotspot: &hotspot}, nil

	default:
		return &automatonOutcome{Complexity: Safe}, nil
	}
}

func componentOf(comps []scc.Component, state int) int {
	for i, c := range comps {
		if c.Contains(state) {
			return i
		}
	}
	return 0
}

func toSCCMatchMode(m MatchMode) scc.MatchMode {
	switch m {
	case MatchFull:
		return scc.MatchFull
	case MatchPartial:
		return scc.MatchPartial
	default:
		return scc.MatchAuto
	}
}
