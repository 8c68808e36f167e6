// Package machine implements the CBPV abstract machine of spec §4.5: a
// CEK-style (C, E, S) state over the dynamics AST (internal/linked),
// with a persistent environment, an explicit stack of continuation and
// destructor frames, eager value evaluation, and the primitive
// re-entry protocol (pop pending destructor frames before invoking a
// primitive).
//
// Grounded on ailang's evaluator package for the persistent-environment,
// explicit-Value-type idiom, and on
// original_source/zydeco-lang/src/dynamics/*.rs for the exact machine
// transitions.
package machine

import (
	"fmt"
	"strings"

	"github.com/zydeco-lang/zydeco/internal/linked"
)

// Value is a runtime value.
type Value interface {
	String() string
	valueTag()
}

type IntV int64

func (IntV) valueTag()       {}
func (v IntV) String() string { return fmt.Sprintf("%d", int64(v)) }

type StringV string

func (StringV) valueTag()       {}
func (v StringV) String() string { return string(v) }

type CharV rune

func (CharV) valueTag()       {}
func (v CharV) String() string { return string(rune(v)) }

// CtorV is a saturated data constructor application.
type CtorV struct {
	Name string
	Args []Value
}

func (*CtorV) valueTag() {}
func (c *CtorV) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	if len(parts) == 0 {
		return c.Name
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// ThunkV suspends a computation. Env is set exactly once, at the point
// the thunk value is first produced (by the evaluation of a Thunk value
// node, or by Rec's self-reference construction); a ThunkV that is
// copied around afterward never recaptures its environment again —
// this is the "eager but idempotent" resolution of SPEC_FULL.md §4's
// supplemented runtime-value-resolution behavior.
type ThunkV struct {
	Body linked.Computation
	Env  *Env
}

func (*ThunkV) valueTag()       {}
func (t *ThunkV) String() string { return fmt.Sprintf("thunk(%s)", t.Body) }

// ExitCodeV is the terminal value of an OS-typed program: reaching it
// ends the machine run immediately regardless of any pending stack
// (spec §4.5: "the machine runs until reaching a terminal: either Ret V
// with empty stack ... or ExitCode n").
type ExitCodeV int

func (ExitCodeV) valueTag()       {}
func (e ExitCodeV) String() string { return fmt.Sprintf("ExitCode(%d)", int(e)) }
