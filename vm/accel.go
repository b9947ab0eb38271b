package vm

import (
	"golang.org/x/sys/cpu"
)

// AccelerationAvailable reports whether the host CPU exposes the SIMD
// extensions the VM's ASCII fast path wants (AVX2 on amd64, NEON on arm64).
// Mirrors the teacher's EnableASCIIOptimization feature-detection strategy,
// narrowed here to gate the VM's ASCII-only comparison loop rather than a
// whole second compiled automaton.
func AccelerationAvailable() bool {
	return cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD
}

// ResolveAcceleration turns Config.acceleration's AUTO/ON/OFF tri-state
// (spec §3) into the concrete Options.Accelerate the interpreter consults.
type AccelMode uint8

const (
	AccelAuto AccelMode = iota
	AccelOn
	AccelOff
)

func ResolveAcceleration(mode AccelMode) bool {
	switch mode {
	case AccelOn:
		return true
	case AccelOff:
		return false
	default:
		return AccelerationAvailable()
	}
}

// asciiFastClassMatch is the accelerated path for OpClass comparisons
// against an ASCII-only input slice: a single bit test against the
// instruction's precomputed 128-bit membership bitmap (vm/compile.go's
// asciiBitmap), instead of classMatches' linear scan over Ranges. Used by
// the interpreter when Options.Accelerate is true and the whole input has
// already been confirmed ASCII-only by isASCII.
func asciiFastClassMatch(bitmap [2]uint64, negated bool, b byte) bool {
	word := bitmap[b/64]
	in := word&(1<<uint(b%64)) != 0
	return in != negated
}

// isASCII reports whether every rune in input is below U+0080 — the
// precondition for using the accelerated comparison path.
func isASCII(input []rune) bool {
	for _, r := range input {
		if r >= 0x80 {
			return false
		}
	}
	return true
}
