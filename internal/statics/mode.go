package statics

import "github.com/zydeco-lang/zydeco/internal/ztypes"

// Mode is one state of the bidirectional checker's trampoline (spec
// §4.3: "a step returns SynMode, AnaMode, or Done"). Each concrete Mode
// knows how to take its own step; Run drives the trampoline to
// completion. Independent subterms of a compound rule (e.g. the `V` and
// `C` of a `let`) are still resolved through ordinary Go calls to Syn/Ana
// before the continuation Mode is produced — Zydeco terms are shallow
// enough in practice that this does not risk the host-stack growth the
// trampoline exists to avoid for the *linear* chain of modes a single
// term traverses (synthesis bouncing into analysis and back).
type Mode interface {
	step(c *Checker) (Mode, error)
}

// Done terminates the trampoline carrying the resulting type (nil for a
// pure analysis judgment, which only ever succeeds or fails).
type Done struct {
	Type *ztypes.Type
}

func (d Done) step(*Checker) (Mode, error) { return d, nil }

// Run drives m to a Done state, returning its type (or nil for analysis).
func Run(c *Checker, m Mode) (*ztypes.Type, error) {
	for {
		next, err := m.step(c)
		if err != nil {
			return nil, err
		}
		if done, ok := next.(Done); ok {
			return done.Type, nil
		}
		m = next
	}
}
