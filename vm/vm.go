// Package vm implements the step-counting backtracking interpreter (spec
// §4.7's "Step-counting VM") used by both the fuzz loop (package
// fuzzcheck) and the recall validator (package recall) to measure how an
// input's match cost grows.
package vm

import "github.com/coregx/redosentinel/ast"

// OpCode tags a single VM instruction, mirroring spec §4.7's instruction
// set: CHAR, ANY, CLASS, MATCH, JMP, SPLIT, SAVE, BACKREF, CHECK_ANCHOR,
// LOOK_AROUND.
type OpCode uint8

const (
	OpChar OpCode = iota
	OpAny
	OpClass
	OpMatch
	OpJmp
	OpSplit
	OpSave
	OpBackref
	OpCheckAnchor
	OpLookAround
)

// Instruction is one VM instruction. Only the fields relevant to Op are
// meaningful; see per-field comments.
type Instruction struct {
	Op OpCode

	Rune rune // OpChar

	Ranges  []ast.RuneRange // OpClass
	Negated bool            // OpClass

	// ASCIIBitmap is a 128-bit membership bitmap over Ranges restricted to
	// [0x00, 0x7F], precomputed once at compile time (see compile.go) so the
	// ASCII-accelerated interpreter path (vm/accel.go) can test membership
	// with two shifts and a mask instead of scanning Ranges per character.
	// Bits for runes >= 0x80 are never set here. Run switches acceleration
	// off for any input containing a rune >= 0x80 (isASCII), so such inputs
	// are always tested with classMatches.
	ASCIIBitmap [2]uint64 // OpClass: bits 0-63, 64-127


	X, Y int // OpJmp: X is the target; OpSplit: X preferred (greedy), then Y

	Slot int // OpSave: capture slot index

	RefIndex int // OpBackref: 1-based capture group index

	Anchor ast.AnchorKind // OpCheckAnchor

	Sub         *Program // OpLookAround: compiled sub-program
	NegatedLook bool     // OpLookAround: true for (?!...) / (?<!...)
	Behind      bool     // OpLookAround: true for (?<=...) / (?<!...)
}

// Program is a compiled instruction sequence plus the metadata the
// interpreter needs to evaluate it (spec §4.7: "Compiler maps AST to
// instructions mirroring the ε-NFA layout").
type Program struct {
	Instrs    []Instruction
	NumSlots  int // 2 * (NumCaptures + 1): start/end per capture, plus group 0
	Multiline bool
	Dotall    bool
}
