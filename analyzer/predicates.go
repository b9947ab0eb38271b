package analyzer

import "github.com/coregx/redosentinel/ast"

// IsVulnerable is a thin convenience wrapper over Check (spec §6).
func IsVulnerable(source string, flags ast.Flags, cfg Config) bool {
	return Check(source, flags, cfg).Status == StatusVulnerable
}

// IsSafe is a thin convenience wrapper over Check (spec §6).
func IsSafe(source string, flags ast.Flags, cfg Config) bool {
	return Check(source, flags, cfg).Status == StatusSafe
}
