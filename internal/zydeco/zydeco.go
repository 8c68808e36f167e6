// Package zydeco provides the entry-glue façades composing kind-check →
// type-check → link → evaluate over an already-elaborated
// internal/syntax module (spec.md §1's "we assume the type checker
// receives already-elaborated core terms" — parsing/lexing remain an
// external collaborator). ZydecoFile is for `OS`-typed runnable
// programs; ZydecoExpr is for `Ret τ`-typed REPL expressions.
package zydeco

import (
	"github.com/zydeco-lang/zydeco/internal/builtins"
	"github.com/zydeco-lang/zydeco/internal/link"
	"github.com/zydeco-lang/zydeco/internal/machine"
	"github.com/zydeco-lang/zydeco/internal/statics"
	"github.com/zydeco-lang/zydeco/internal/syntax"
)

// ZydecoFile wraps a module meant to be run as a standalone program:
// its entry point must have type OS (spec §4.3).
type ZydecoFile struct {
	Module *syntax.Module
}

// ZydecoExpr wraps a module meant to be evaluated as a pure REPL
// expression: its entry point must have type Ret τ.
type ZydecoExpr struct {
	Module *syntax.Module
}

// DefaultStepBudget bounds machine execution unless a caller overrides
// it (spec §4.5's "optional step budget").
const DefaultStepBudget = 1_000_000

// Runnable is the common surface of ZydecoFile and ZydecoExpr, so a
// caller that only cares about "check, then maybe run" (the REPL, the
// CLI) doesn't need to know which entry-point rule a loaded program uses.
type Runnable interface {
	Check() error
	Run(reg *builtins.Registry, stepBudget int) (machine.Value, error)
}

// Check type-checks f's module against the OS entry-point rule without
// running it.
func (f *ZydecoFile) Check() error {
	_, _, err := statics.CheckModule(f.Module, statics.EntryRun)
	return err
}

// Run type-checks, links, and evaluates f's module to an ExitCode.
func (f *ZydecoFile) Run(reg *builtins.Registry, stepBudget int) (machine.Value, error) {
	if _, _, err := statics.CheckModule(f.Module, statics.EntryRun); err != nil {
		return nil, err
	}
	return runLinked(f.Module, reg, stepBudget)
}

// Check type-checks e's module against the Ret τ entry-point rule
// without running it.
func (e *ZydecoExpr) Check() error {
	_, _, err := statics.CheckModule(e.Module, statics.EntryRepl)
	return err
}

// Run type-checks, links, and evaluates e's module to its result value.
func (e *ZydecoExpr) Run(reg *builtins.Registry, stepBudget int) (machine.Value, error) {
	if _, _, err := statics.CheckModule(e.Module, statics.EntryRepl); err != nil {
		return nil, err
	}
	return runLinked(e.Module, reg, stepBudget)
}

func runLinked(m *syntax.Module, reg *builtins.Registry, stepBudget int) (machine.Value, error) {
	prog, err := link.Link(m, reg)
	if err != nil {
		return nil, err
	}
	globals := make(machine.Globals, len(prog.Defines))
	for name, comp := range prog.Defines {
		globals[name] = comp
	}
	mach := machine.New(globals, reg, stepBudget)
	return mach.Run(prog.Entry)
}
