package enfa

import "github.com/coregx/redosentinel/ast"

// frag is a fragment of the graph under construction: an entry state and a
// dangling exit state whose only purpose is to be ε-linked to whatever
// comes next (or to the final accept state at the top level).
type frag struct {
	entry, exit StateID
}

// Build compiles pattern into a Thompson ε-NFA. It returns ErrUnsupported if
// the pattern contains a Backref or Lookaround node; the caller (the
// feasibility gate) is expected to have already screened for this, but
// Build re-checks defensively rather than producing a silently wrong graph.
func Build(p *ast.Pattern) (*Graph, error) {
	alphabet := BuildAlphabet(p.Root, p.Flags)
	g := &Graph{Alphabet: alphabet}

	b := &builder{g: g, flags: p.Flags}
	f, err := b.build(p.Root)
	if err != nil {
		return nil, err
	}
	accept := g.newState(p.Root.Span)
	g.States[accept].Accept = true
	g.addEps(f.exit, accept)
	g.Start = f.entry
	g.Accept = accept
	return g, nil
}

type builder struct {
	g     *Graph
	flags ast.Flags
}

func (b *builder) build(n *ast.Node) (frag, error) {
	switch n.Op {
	case ast.OpLiteral:
		return b.buildClass([]ast.RuneRange{{Lo: n.Rune, Hi: n.Rune}}, false, n.Span), nil
	case ast.OpCharClass:
		return b.buildClass(n.Ranges, n.Negated, n.Span), nil
	case ast.OpDot, ast.OpAnyChar:
		return b.buildDot(n), nil
	case ast.OpConcat:
		return b.buildConcat(n)
	case ast.OpAlt:
		return b.buildAlt(n)
	case ast.OpRepeat:
		return b.buildRepeat(n)
	case ast.OpGroup:
		if len(n.Sub) == 0 {
			return b.buildEpsilon(n.Span), nil
		}
		return b.build(n.Sub[0])
	case ast.OpAnchor:
		// Zero-width assertions pass through structurally; whether they make
		// an ambiguity exploitable is decided later from the AST directly
		// (spec §4.4), not from NFA structure.
		return b.buildEpsilon(n.Span), nil
	case ast.OpBackref, ast.OpLookaround:
		return frag{}, &BuildError{Reason: "automaton path", Err: ErrUnsupported}
	default:
		return frag{}, &BuildError{Reason: "unknown node", Err: ErrUnsupported}
	}
}

func (b *builder) buildEpsilon(span ast.Span) frag {
	entry := b.g.newState(span)
	exit := b.g.newState(span)
	b.g.addEps(entry, exit)
	return frag{entry, exit}
}

func (b *builder) buildClass(ranges []ast.RuneRange, negated bool, span ast.Span) frag {
	entry := b.g.newState(span)
	exit := b.g.newState(span)
	for _, class := range b.g.Alphabet.ClassesOf(ranges, negated) {
		b.g.addClass(entry, class, exit)
	}
	return frag{entry, exit}
}

func (b *builder) buildDot(n *ast.Node) frag {
	if n.Op == ast.OpAnyChar {
		return b.buildClass(nil, true, n.Span) // negated-empty == everything
	}
	if b.flags.Dotall {
		return b.buildClass(nil, true, n.Span)
	}
	return b.buildClass([]ast.RuneRange{{Lo: '\n', Hi: '\n'}}, true, n.Span)
}

func (b *builder) buildConcat(n *ast.Node) (frag, error) {
	if len(n.Sub) == 0 {
		return b.buildEpsilon(n.Span), nil
	}
	first, err := b.build(n.Sub[0])
	if err != nil {
		return frag{}, err
	}
	entry := first.entry
	prevExit := first.exit
	for _, child := range n.Sub[1:] {
		f, err := b.build(child)
		if err != nil {
			return frag{}, err
		}
		b.g.addEps(prevExit, f.entry)
		prevExit = f.exit
	}
	return frag{entry, prevExit}, nil
}

// buildAlt builds ordered ε-edges to each alternative, left-to-right, so
// that greedy leftmost-alternative priority survives ε-elimination
// (spec §4.2).
func (b *builder) buildAlt(n *ast.Node) (frag, error) {
	entry := b.g.newState(n.Span)
	exit := b.g.newState(n.Span)
	for _, child := range n.Sub {
		f, err := b.build(child)
		if err != nil {
			return frag{}, err
		}
		b.g.addEps(entry, f.entry)
		b.g.addEps(f.exit, exit)
	}
	return frag{entry, exit}, nil
}

func (b *builder) buildRepeat(n *ast.Node) (frag, error) {
	child := n.Sub[0]
	if n.Max == ast.Unbounded {
		if n.Min == 0 {
			return b.buildStar(child, n.Greedy)
		}
		return b.buildPlusAfterMandatory(child, n.Min, n.Greedy)
	}
	return b.buildBounded(child, n.Min, n.Max, n.Greedy)
}

// buildStar implements X*: a split that privileges the body when greedy,
// and a trailing ε back to the split, per spec §4.2.
func (b *builder) buildStar(child *ast.Node, greedy bool) (frag, error) {
	split := b.g.newState(child.Span)
	exit := b.g.newState(child.Span)
	f, err := b.build(child)
	if err != nil {
		return frag{}, err
	}
	if greedy {
		b.g.addEps(split, f.entry)
		b.g.addEps(split, exit)
	} else {
		b.g.addEps(split, exit)
		b.g.addEps(split, f.entry)
	}
	b.g.addEps(f.exit, split)
	return frag{split, exit}, nil
}

// buildPlus implements X+: the body runs once unconditionally, then loops
// like X*.
func (b *builder) buildPlus(child *ast.Node, greedy bool) (frag, error) {
	f, err := b.build(child)
	if err != nil {
		return frag{}, err
	}
	split := b.g.newState(child.Span)
	exit := b.g.newState(child.Span)
	if greedy {
		b.g.addEps(split, f.entry)
		b.g.addEps(split, exit)
	} else {
		b.g.addEps(split, exit)
		b.g.addEps(split, f.entry)
	}
	b.g.addEps(f.exit, split)
	return frag{f.entry, exit}, nil
}

// buildPlusAfterMandatory builds (min-1) mandatory copies of child followed
// by a X+ loop, implementing {min,} for min >= 1.
func (b *builder) buildPlusAfterMandatory(child *ast.Node, min int, greedy bool) (frag, error) {
	var entry StateID
	prevExit := InvalidState
	for i := 0; i < min-1; i++ {
		f, err := b.build(child)
		if err != nil {
			return frag{}, err
		}
		if i == 0 {
			entry = f.entry
		} else {
			b.g.addEps(prevExit, f.entry)
		}
		prevExit = f.exit
	}
	last, err := b.buildPlus(child, greedy)
	if err != nil {
		return frag{}, err
	}
	if min == 1 {
		return last, nil
	}
	b.g.addEps(prevExit, last.entry)
	return frag{entry, last.exit}, nil
}

// buildBounded implements {min,max}: min mandatory copies followed by
// (max-min) copies nested as optional-of-optional, so skipping one skips
// every copy after it (spec §4.2's "unrolled" bounded repetition).
func (b *builder) buildBounded(child *ast.Node, min, max int, greedy bool) (frag, error) {
	optional := max - min
	tail, err := b.buildNestedOptional(child, optional, greedy)
	if err != nil {
		return frag{}, err
	}
	if min == 0 {
		return tail, nil
	}
	var entry StateID
	prevExit := InvalidState
	for i := 0; i < min; i++ {
		f, err := b.build(child)
		if err != nil {
			return frag{}, err
		}
		if i == 0 {
			entry = f.entry
		} else {
			b.g.addEps(prevExit, f.entry)
		}
		prevExit = f.exit
	}
	b.g.addEps(prevExit, tail.entry)
	return frag{entry, tail.exit}, nil
}

// buildNestedOptional builds n optional copies of child nested so that the
// resulting fragment is a no-op when n == 0.
func (b *builder) buildNestedOptional(child *ast.Node, n int, greedy bool) (frag, error) {
	if n <= 0 {
		return b.buildEpsilon(child.Span), nil
	}
	inner, err := b.buildNestedOptional(child, n-1, greedy)
	if err != nil {
		return frag{}, err
	}
	f, err := b.build(child)
	if err != nil {
		return frag{}, err
	}
	b.g.addEps(f.exit, inner.entry)

	split := b.g.newState(child.Span)
	exit := b.g.newState(child.Span)
	if greedy {
		b.g.addEps(split, f.entry)
		b.g.addEps(split, exit)
	} else {
		b.g.addEps(split, exit)
		b.g.addEps(split, f.entry)
	}
	b.g.addEps(inner.exit, exit)
	return frag{split, exit}, nil
}
