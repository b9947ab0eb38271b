package scc

import "github.com/coregx/redosentinel/nfawla"

// Kind distinguishes the two ambiguity classes (spec §4.5).
type Kind uint8

const (
	KindNone Kind = iota
	KindEDA
	KindIDA
)

// Result is the raw ambiguity verdict before the §4.4 exploitability filter
// runs (package analyzer owns that step, since it needs the AST).
type Result struct {
	Kind       Kind
	EDA        *EDAWitness
	IDA        *IDAWitness
	Components []Component
}

// Analyze partitions g into SCCs and runs the EDA then IDA tests (spec
// §4.5). When both hold, EDA wins per the documented tie-break.
func Analyze(g *nfawla.Graph) *Result {
	comps := Tarjan(g)

	var eda *EDAWitness
	for i, c := range comps {
		if !c.NonTrivial {
			continue
		}
		if w := detectEDA(g, i, c); w != nil {
			eda = w
			break
		}
	}
	if eda != nil {
		return &Result{Kind: KindEDA, EDA: eda, Components: comps}
	}

	if ida := detectIDA(g, comps); ida != nil {
		return &Result{Kind: KindIDA, IDA: ida, Components: comps}
	}

	return &Result{Kind: KindNone, Components: comps}
}
