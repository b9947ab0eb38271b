package vm

import "github.com/coregx/redosentinel/ast"

// Compile maps p's AST to a Program, following the same fragment-and-patch
// technique as the ε-NFA builder (package enfa) but targeting linear
// instruction addresses instead of graph states — the classic backtracking
// VM compile strategy the step-counting interpreter then executes directly.
func Compile(p *ast.Pattern) *Program {
	prog := &Program{
		NumSlots:  2 * (p.NumCaptures + 1),
		Multiline: p.Flags.Multiline,
		Dotall:    p.Flags.Dotall,
	}
	c := &compiler{prog: prog}
	c.emit(Instruction{Op: OpSave, Slot: 0})
	c.compile(p.Root)
	c.emit(Instruction{Op: OpSave, Slot: 1})
	c.emit(Instruction{Op: OpMatch})
	return prog
}

type compiler struct {
	prog *Program
}

// pc returns the address of the next instruction to be emitted.
func (c *compiler) pc() int { return len(c.prog.Instrs) }

func (c *compiler) emit(ins Instruction) int {
	c.prog.Instrs = append(c.prog.Instrs, ins)
	return c.pc() - 1
}

// asciiBitmap builds a 128-bit membership bitmap over ranges restricted to
// the ASCII range, used to accelerate OpClass dispatch (vm/accel.go) when
// the interpreter already knows the whole input is ASCII-only.
func asciiBitmap(ranges []ast.RuneRange) [2]uint64 {
	var bits [2]uint64
	for _, rr := range ranges {
		lo, hi := rr.Lo, rr.Hi
		if lo > 0x7F {
			continue
		}
		if hi > 0x7F {
			hi = 0x7F
		}
		for r := lo; r <= hi; r++ {
			bits[r/64] |= 1 << uint(r%64)
		}
	}
	return bits
}

func (c *compiler) patchJmp(at, target int) { c.prog.Instrs[at].X = target }
func (c *compiler) patchSplit(at, x, y int) {
	c.prog.Instrs[at].X = x
	c.prog.Instrs[at].Y = y
}

func (c *compiler) compile(n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Op {
	case ast.OpLiteral:
		c.emit(Instruction{Op: OpChar, Rune: n.Rune})
	case ast.OpCharClass:
		c.emit(Instruction{Op: OpClass, Ranges: n.Ranges, Negated: n.Negated, ASCIIBitmap: asciiBitmap(n.Ranges)})
	case ast.OpDot, ast.OpAnyChar:
		c.emit(Instruction{Op: OpAny})
	case ast.OpAnchor:
		c.emit(Instruction{Op: OpCheckAnchor, Anchor: n.Anchor})
	case ast.OpBackref:
		c.emit(Instruction{Op: OpBackref, RefIndex: n.RefIndex})
	case ast.OpConcat:
		for _, s := range n.Sub {
			c.compile(s)
		}
	case ast.OpAlt:
		c.compileAlt(n.Sub)
	case ast.OpGroup:
		if n.CapIndex > 0 {
			c.emit(Instruction{Op: OpSave, Slot: 2 * n.CapIndex})
			c.compile(n.Sub[0])
			c.emit(Instruction{Op: OpSave, Slot: 2*n.CapIndex + 1})
		} else {
			c.compile(n.Sub[0])
		}
	case ast.OpRepeat:
		c.compileRepeat(n)
	case ast.OpLookaround:
		sub := &Program{NumSlots: c.prog.NumSlots, Multiline: c.prog.Multiline, Dotall: c.prog.Dotall}
		sc := &compiler{prog: sub}
		sc.compile(n.Sub[0])
		sc.emit(Instruction{Op: OpMatch})
		c.emit(Instruction{Op: OpLookAround, Sub: sub, NegatedLook: n.Negated, Behind: n.Behind})
	}
}

// compileAlt emits ordered SPLIT chains so the first alternative keeps
// greedy priority, matching the ε-NFA builder's left-alternative-first rule.
func (c *compiler) compileAlt(alts []*ast.Node) {
	if len(alts) == 1 {
		c.compile(alts[0])
		return
	}
	split := c.emit(Instruction{Op: OpSplit})
	left := c.pc()
	c.compile(alts[0])
	jmp := c.emit(Instruction{Op: OpJmp})
	right := c.pc()
	c.patchSplit(split, left, right)
	c.compileAlt(alts[1:])
	c.patchJmp(jmp, c.pc())
}

// compileRepeat handles `?`, `*`, `+`, `{n,m}` and `{n,}` uniformly: bounded
// counts unroll into nested optional copies (mirroring enfa's
// buildNestedOptional), unbounded tails compile to the standard
// split-body-jmp-back loop.
func (c *compiler) compileRepeat(n *ast.Node) {
	body := n.Sub[0]
	for i := 0; i < n.Min; i++ {
		c.compile(body)
	}
	if n.Max == ast.Unbounded {
		c.compileStarLoop(body, n.Greedy)
		return
	}
	optional := n.Max - n.Min
	c.compileNestedOptional(body, optional, n.Greedy)
}

func (c *compiler) compileStarLoop(body *ast.Node, greedy bool) {
	splitAt := c.pc()
	split := c.emit(Instruction{Op: OpSplit})
	bodyStart := c.pc()
	c.compile(body)
	c.emit(Instruction{Op: OpJmp, X: splitAt})
	after := c.pc()
	if greedy {
		c.patchSplit(split, bodyStart, after)
	} else {
		c.patchSplit(split, after, bodyStart)
	}
}

func (c *compiler) compileNestedOptional(body *ast.Node, depth int, greedy bool) {
	if depth <= 0 {
		return
	}
	split := c.emit(Instruction{Op: OpSplit})
	bodyStart := c.pc()
	c.compile(body)
	c.compileNestedOptional(body, depth-1, greedy)
	after := c.pc()
	if greedy {
		c.patchSplit(split, bodyStart, after)
	} else {
		c.patchSplit(split, after, bodyStart)
	}
}
