package redosentinel

import "testing"

func TestCheckSafeLiteral(t *testing.T) {
	d := Check(`^hello$`, DefaultFlags(), DefaultConfig())
	if d.Status != StatusSafe {
		t.Fatalf("expected safe, got %v (%s)", d.Status, d.Message)
	}
}

func TestCheckVulnerableNestedQuantifier(t *testing.T) {
	d := Check(`^(a+)+$`, DefaultFlags(), DefaultConfig())
	if d.Status != StatusVulnerable {
		t.Fatalf("expected vulnerable, got %v (%s)", d.Status, d.Message)
	}
	if d.Complexity == nil || !d.Complexity.IsExponential() {
		t.Fatalf("expected exponential complexity, got %+v", d.Complexity)
	}
	if d.AttackPattern == nil || d.AttackPattern.String() == "" {
		t.Fatal("expected a non-empty synthesized attack pattern")
	}
}

func TestIsVulnerableAndIsSafeAgree(t *testing.T) {
	cfg := DefaultConfig()
	flags := DefaultFlags()
	if !IsVulnerable(`^(a|a)*$`, flags, cfg) {
		t.Fatal("expected (a|a)* to be reported vulnerable")
	}
	if !IsSafe(`^[a-z]+$`, flags, cfg) {
		t.Fatal("expected [a-z]+ to be reported safe")
	}
}

func TestCheckReportsErrorOnMalformedPattern(t *testing.T) {
	d := Check(`(`, DefaultFlags(), DefaultConfig())
	if d.Status != StatusError {
		t.Fatalf("expected error status, got %v", d.Status)
	}
}
