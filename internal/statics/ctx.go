// Package statics implements the bidirectional type checker of spec
// §4.3: Synthesis (Γ⊢e⇒τ) and Analysis (Γ⊢e⇐τ) judgments over the
// internal/syntax term algebra, plus the four-pass module checker.
//
// Grounded on ailang's internal/types checker for the persistent,
// copy-on-extend environment idiom, and on
// original_source/zydeco-lang/src/statics/tyck/*.rs for the exact rules.
package statics

import (
	"github.com/zydeco-lang/zydeco/internal/syntax"
	"github.com/zydeco-lang/zydeco/internal/ztypes"
)

// TermCtx is Γ: a persistent mapping from term variables to their types.
type TermCtx struct {
	vars map[string]*ztypes.Type
}

// NewTermCtx returns an empty term context.
func NewTermCtx() *TermCtx {
	return &TermCtx{vars: make(map[string]*ztypes.Type)}
}

// Extend returns a new context with name bound to t, leaving the
// receiver unmodified.
func (c *TermCtx) Extend(name string, t *ztypes.Type) *TermCtx {
	next := &TermCtx{vars: make(map[string]*ztypes.Type, len(c.vars)+1)}
	for k, v := range c.vars {
		next.vars[k] = v
	}
	next.vars[name] = t
	return next
}

func (c *TermCtx) Lookup(name string) (*ztypes.Type, bool) {
	t, ok := c.vars[name]
	return t, ok
}

// Checker bundles the two environments (term context Γ and kind context)
// together with the module being checked, so data/codata/extern lookups
// are available to every rule.
type Checker struct {
	Terms  *TermCtx
	KCtx   *ztypes.KindEnv
	Module *syntax.Module
}

// NewChecker builds a checker over an already name-resolved module: the
// module's data/codata declarations must already be registered in kctx
// (done by CheckModule's first pass) before value/computation rules run.
func NewChecker(module *syntax.Module, kctx *ztypes.KindEnv) *Checker {
	return &Checker{Terms: NewTermCtx(), KCtx: kctx, Module: module}
}

// With returns a copy of the checker with its term context replaced.
func (c *Checker) With(terms *TermCtx) *Checker {
	return &Checker{Terms: terms, KCtx: c.KCtx, Module: c.Module}
}
