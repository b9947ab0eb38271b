package vm

import "github.com/coregx/redosentinel/ast"

// anchorSatisfied evaluates a CHECK_ANCHOR instruction against input at
// pos, honoring multiline for the line-anchor variants.
func anchorSatisfied(kind ast.AnchorKind, input []rune, pos int, multiline bool) bool {
	switch kind {
	case ast.AnchorStart, ast.AnchorTextStart:
		return pos == 0
	case ast.AnchorEnd, ast.AnchorTextEnd:
		return pos == len(input)
	case ast.AnchorLineStart:
		if !multiline {
			return pos == 0
		}
		return pos == 0 || input[pos-1] == '\n'
	case ast.AnchorLineEnd:
		if !multiline {
			return pos == len(input)
		}
		return pos == len(input) || input[pos] == '\n'
	case ast.AnchorWordBoundary:
		return isWordBoundary(input, pos)
	case ast.AnchorNonWordBoundary:
		return !isWordBoundary(input, pos)
	default:
		return true
	}
}

func isWordBoundary(input []rune, pos int) bool {
	before := pos > 0 && isWordRune(input[pos-1])
	after := pos < len(input) && isWordRune(input[pos])
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
