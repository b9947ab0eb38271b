package vm

import (
	"context"

	"github.com/coregx/redosentinel/ast"
)

// Result is the outcome of running a Program against an input: whether it
// matched, and how many steps it took (spec §4.7: "Its outputs are
// (matched?, steps)").
type Result struct {
	Matched bool
	Steps   int64
}

// ErrStepBudgetExceeded is returned when a run's step counter exceeds
// MaxSteps before reaching MATCH or exhausting every alternative — the
// mechanism the fuzz loop and recall validator use to detect runaway
// backtracking without waiting for it to finish (spec §5: "cancellation is
// cooperative ... at VM instruction-dispatch every 4096 steps").
type ErrStepBudgetExceeded struct {
	Steps int64
}

func (e *ErrStepBudgetExceeded) Error() string { return "vm: step budget exceeded" }

// Options bounds a single Run.
type Options struct {
	MaxSteps    int64
	Accelerate  bool // honors Config.acceleration (package analyzer) via accel.go
	CheckBudget func() bool // returns true if the overall deadline has passed; consulted every 4096 steps

	// RequireEndPos/EndPos constrain OpMatch to accept only a run that ends
	// exactly at EndPos, used by matchesBehind to ask "does sub match some
	// input[k:EndPos]" rather than "does sub match starting at k".
	RequireEndPos bool
	EndPos        int
}

// Run interprets prog against input, starting at startPos (0 for a match
// attempt from the start of input, or any other offset). The attempt is
// anchored at startPos only: MATCH succeeds wherever the input position is,
// so a match need not consume the rest of the input. It returns once MATCH
// is reached via the greedy left-to-right search order, the search space is
// exhausted, or the step budget trips.
func Run(ctx context.Context, prog *Program, input []rune, startPos int, opts Options) (Result, error) {
	steps := int64(0)
	caps := make([]int, prog.NumSlots)
	for i := range caps {
		caps[i] = -1
	}
	if opts.Accelerate && !isASCII(input) {
		opts.Accelerate = false // fast path only ever applies to ASCII-only input
	}
	matched, err := runFrom(ctx, prog, input, 0, startPos, caps, &steps, opts, 0)
	return Result{Matched: matched, Steps: steps}, err
}

// runFrom is the recursive backtracker: it tries pc's instruction, and on
// SPLIT recurses into the preferred branch first (greedy), falling back to
// the alternate branch only if the first exhausts without matching.
func runFrom(ctx context.Context, prog *Program, input []rune, pc, pos int, caps []int, steps *int64, opts Options, depth int) (bool, error) {
	for {
		*steps++
		if opts.MaxSteps > 0 && *steps > opts.MaxSteps {
			return false, &ErrStepBudgetExceeded{Steps: *steps}
		}
		if *steps%4096 == 0 {
			if opts.CheckBudget != nil && opts.CheckBudget() {
				return false, context.DeadlineExceeded
			}
			if err := ctx.Err(); err != nil {
				return false, err
			}
		}

		ins := prog.Instrs[pc]
		switch ins.Op {
		case OpChar:
			*steps++
			if pos >= len(input) || input[pos] != ins.Rune {
				return false, nil
			}
			pc, pos = pc+1, pos+1

		case OpAny:
			*steps++
			if pos >= len(input) {
				return false, nil
			}
			if !prog.Dotall && input[pos] == '\n' {
				return false, nil
			}
			pc, pos = pc+1, pos+1

		case OpClass:
			*steps++
			if pos >= len(input) {
				return false, nil
			}
			var ok bool
			if opts.Accelerate {
				ok = asciiFastClassMatch(ins.ASCIIBitmap, ins.Negated, byte(input[pos]))
			} else {
				ok = classMatches(ins.Ranges, ins.Negated, input[pos])
			}
			if !ok {
				return false, nil
			}
			pc, pos = pc+1, pos+1

		case OpSave:
			next := make([]int, len(caps))
			copy(next, caps)
			if ins.Slot < len(next) {
				next[ins.Slot] = pos
			}
			caps = next
			pc = pc + 1

		case OpJmp:
			pc = ins.X

		case OpSplit:
			savedCaps := make([]int, len(caps))
			copy(savedCaps, caps)
			ok, err := runFrom(ctx, prog, input, ins.X, pos, caps, steps, opts, depth+1)
			if err != nil || ok {
				return ok, err
			}
			return runFrom(ctx, prog, input, ins.Y, pos, savedCaps, steps, opts, depth+1)

		case OpCheckAnchor:
			if !anchorSatisfied(ins.Anchor, input, pos, prog.Multiline) {
				return false, nil
			}
			pc = pc + 1

		case OpBackref:
			lo, hi := caps[2*ins.RefIndex], caps[2*ins.RefIndex+1]
			if lo < 0 || hi < 0 {
				pc = pc + 1
				continue
			}
			n := hi - lo
			if pos+n > len(input) {
				return false, nil
			}
			for i := 0; i < n; i++ {
				*steps++
				if input[pos+i] != input[lo+i] {
					return false, nil
				}
			}
			pc, pos = pc+1, pos+n

		case OpLookAround:
			var matched bool
			var err error
			if ins.Behind {
				matched, err = matchesBehind(ctx, ins.Sub, input, pos, steps, opts)
			} else {
				var subRes Result
				subRes, err = Run(ctx, ins.Sub, input, pos, Options{MaxSteps: opts.MaxSteps, CheckBudget: opts.CheckBudget})
				matched = subRes.Matched
				*steps += subRes.Steps
			}
			if err != nil {
				return false, err
			}
			satisfied := matched != ins.NegatedLook
			if !satisfied {
				return false, nil
			}
			pc = pc + 1

		case OpMatch:
			if opts.RequireEndPos && pos != opts.EndPos {
				return false, nil
			}
			return true, nil

		default:
			return false, nil
		}
	}
}

// matchesBehind implements look-behind by scanning candidate start
// positions backward from pos and asking whether sub matches
// input[k:pos] for some k — the assertion holds iff some such k exists.
// Variable-length look-behind (e.g. (?<=a+)) is supported this way at the
// cost of an O(pos) scan, same as a lookbehind-scanning engine pays.
func matchesBehind(ctx context.Context, sub *Program, input []rune, pos int, steps *int64, opts Options) (bool, error) {
	subOpts := Options{
		MaxSteps:      opts.MaxSteps,
		CheckBudget:   opts.CheckBudget,
		RequireEndPos: true,
		EndPos:        pos,
	}
	for k := pos; k >= 0; k-- {
		res, err := Run(ctx, sub, input, k, subOpts)
		*steps += res.Steps
		if err != nil {
			return false, err
		}
		if res.Matched {
			return true, nil
		}
		if opts.MaxSteps > 0 && *steps > opts.MaxSteps {
			return false, &ErrStepBudgetExceeded{Steps: *steps}
		}
	}
	return false, nil
}

func classMatches(ranges []ast.RuneRange, negated bool, r rune) bool {
	in := false
	for _, rr := range ranges {
		if r >= rr.Lo && r <= rr.Hi {
			in = true
			break
		}
	}
	return in != negated
}
