package recall

import (
	"context"
	"testing"
	"time"

	"github.com/coregx/redosentinel/ast"
	"github.com/coregx/redosentinel/vm"
	"github.com/coregx/redosentinel/witness"
)

func TestValidateConfirmsExponential(t *testing.T) {
	p, err := ast.Parse(`(a*)*b`, ast.DefaultFlags())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	prog := vm.Compile(p)
	ap := witness.AttackPattern{Prefix: "", Pump: "a", Suffix: ""}

	opts := DefaultOptions()
	opts.RecallTimeout = 2 * time.Second
	opts.MaxSteps = 1 << 20

	res, err := Validate(context.Background(), prog, ap, 6, opts)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Verdict != VerdictExponential {
		t.Fatalf("expected exponential verdict, got %v (steps=%v)", res.Verdict, res.Steps)
	}
}

func TestValidateDowngradesLinearPattern(t *testing.T) {
	p, err := ast.Parse(`a+b`, ast.DefaultFlags())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	prog := vm.Compile(p)
	ap := witness.AttackPattern{Prefix: "", Pump: "a", Suffix: "b"}

	res, err := Validate(context.Background(), prog, ap, 4, DefaultOptions())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Verdict != VerdictUnknown {
		t.Fatalf("expected unknown/downgrade for a linear pattern, got %v", res.Verdict)
	}
}
