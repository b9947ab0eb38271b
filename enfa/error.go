package enfa

import (
	"errors"
	"fmt"
)

// ErrUnsupported indicates the pattern uses a construct the ε-NFA builder
// cannot represent (backreferences, look-around). The feasibility gate
// (package analyzer) checks for this ahead of time and routes such patterns
// to the fuzz path instead (spec §4.2, §4.7).
var ErrUnsupported = errors.New("unsupported construct for automaton path")

// BuildError wraps a build failure with a short reason naming what failed.
type BuildError struct {
	Reason string
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("enfa: %s: %v", e.Reason, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }
