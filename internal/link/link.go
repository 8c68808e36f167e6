// Package link implements the linker of spec §4.4: it erases type
// annotations, type abstractions, and type applications from a checked
// internal/syntax module, pre-binds `extern` definitions to registered
// primitive implementations, and fails on any extern with no registered
// primitive.
//
// Grounded on ailang's dictionary-passing elaboration step (a late pass
// that rewrites a typed tree into a simpler runtime form) and on
// original_source/zydeco-lang/src/statics/tyck/module.rs's transition
// from the statics to the dynamics AST.
package link

import (
	"github.com/zydeco-lang/zydeco/internal/ast"
	zerrors "github.com/zydeco-lang/zydeco/internal/errors"
	"github.com/zydeco-lang/zydeco/internal/linked"
	"github.com/zydeco-lang/zydeco/internal/syntax"
)

// PrimRegistry reports whether a primitive implementation is registered
// for an extern name, so the linker can fail fast on an unbound extern
// rather than deferring to a runtime lookup miss.
type PrimRegistry interface {
	Has(name string) bool
}

// Program is the linked form of a module: its top-level computations,
// ready for the machine to run, plus the distinguished entry name.
type Program struct {
	Defines map[string]linked.Computation
	Entry   string
}

// Link erases m's statics terms into the dynamics AST, resolving each
// extern against reg and every other top-level name into a GlobalRef.
func Link(m *syntax.Module, reg PrimRegistry) (*Program, error) {
	prog := &Program{Defines: make(map[string]linked.Computation), Entry: m.Entry}

	globals := make(map[string]bool, len(m.Defines)+len(m.Externs))
	for i := range m.Defines {
		globals[m.Defines[i].Name] = true
	}
	for i := range m.Externs {
		ex := &m.Externs[i]
		if !reg.Has(ex.Name) {
			return nil, zerrors.New(zerrors.LNK001UnregisteredExtern, "link", spanOf(ex),
				map[string]any{"name": ex.Name}, "extern %q has no registered primitive implementation", ex.Name)
		}
		globals[ex.Name] = true
		prog.Defines[ex.Name] = &linked.Prim{Name: ex.Name}
	}

	for i := range m.Defines {
		def := &m.Defines[i]
		if _, dup := prog.Defines[def.Name]; dup {
			return nil, zerrors.New(zerrors.LNK002DuplicateBinding, "link", spanOf(def),
				map[string]any{"name": def.Name}, "duplicate top-level binding %q", def.Name)
		}
		prog.Defines[def.Name] = eraseComp(def.Body, globals)
	}
	return prog, nil
}

func eraseValue(v syntax.Value, globals map[string]bool) linked.Value {
	switch val := v.(type) {
	case *syntax.Var:
		if gref, ok := asGlobalRef(val, globals); ok {
			return &linked.Thunk{Node: linked.Node{NodeSpan: val.Span()}, Body: gref}
		}
		return &linked.Var{Node: linked.Node{NodeSpan: val.Span()}, Name: val.Name}
	case *syntax.Lit:
		return &linked.Lit{Node: linked.Node{NodeSpan: val.Span()}, Kind: linked.LitKind(val.Kind), Value: val.Value}
	case *syntax.Thunk:
		return &linked.Thunk{Node: linked.Node{NodeSpan: val.Span()}, Body: eraseComp(val.Body, globals)}
	case *syntax.Ctor:
		args := make([]linked.Value, len(val.Args))
		for i, a := range val.Args {
			args[i] = eraseValue(a, globals)
		}
		return &linked.Ctor{Node: linked.Node{NodeSpan: val.Span()}, Name: val.Name, Args: args}
	case *syntax.Pack:
		return &linked.Pack{Node: linked.Node{NodeSpan: val.Span()}, Value: eraseValue(val.Value, globals)}
	case *syntax.AnnValue:
		return eraseValue(val.Value, globals)
	}
	return nil
}

func eraseComp(c syntax.Computation, globals map[string]bool) linked.Computation {
	switch cp := c.(type) {
	case *syntax.Ret:
		return &linked.Ret{Node: linked.Node{NodeSpan: cp.Span()}, Value: eraseValue(cp.Value, globals)}
	case *syntax.Force:
		if gref, ok := asGlobalRef(cp.Value, globals); ok {
			return gref
		}
		return &linked.Force{Node: linked.Node{NodeSpan: cp.Span()}, Value: eraseValue(cp.Value, globals)}
	case *syntax.Let:
		return &linked.Let{Node: linked.Node{NodeSpan: cp.Span()}, Name: cp.Name,
			Value: eraseValue(cp.Value, globals), Body: eraseComp(cp.Body, globals)}
	case *syntax.Do:
		return &linked.Do{Node: linked.Node{NodeSpan: cp.Span()}, Name: cp.Name,
			Comp: eraseComp(cp.Comp, globals), Body: eraseComp(cp.Body, globals)}
	case *syntax.Rec:
		return &linked.Rec{Node: linked.Node{NodeSpan: cp.Span()}, Name: cp.Name, Body: eraseComp(cp.Body, globals)}
	case *syntax.Match:
		arms := make([]linked.MatchArm, len(cp.Arms))
		for i, arm := range cp.Arms {
			arms[i] = linked.MatchArm{Ctor: arm.Ctor, Vars: arm.Vars, Body: eraseComp(arm.Body, globals)}
		}
		return &linked.Match{Node: linked.Node{NodeSpan: cp.Span()}, Scrutinee: eraseValue(cp.Scrutinee, globals), Arms: arms}
	case *syntax.CoMatch:
		arms := make([]linked.CoMatchArm, len(cp.Arms))
		for i, arm := range cp.Arms {
			arms[i] = linked.CoMatchArm{Dtor: arm.Dtor, Vars: arm.Vars, Body: eraseComp(arm.Body, globals)}
		}
		return &linked.CoMatch{Node: linked.Node{NodeSpan: cp.Span()}, Arms: arms}
	case *syntax.Dtor:
		args := make([]linked.Value, len(cp.Args))
		for i, a := range cp.Args {
			args[i] = eraseValue(a, globals)
		}
		return &linked.Dtor{Node: linked.Node{NodeSpan: cp.Span()}, Body: eraseComp(cp.Body, globals), Name: cp.Name, Args: args}
	case *syntax.TyAbs:
		// Type abstraction is erased entirely; its body is the runtime
		// computation (spec §4.4).
		return eraseComp(cp.Body, globals)
	case *syntax.TyApp:
		return eraseComp(cp.Body, globals)
	case *syntax.MatchPack:
		return &linked.Let{Node: linked.Node{NodeSpan: cp.Span()}, Name: cp.Var,
			Value: eraseValue(packInner(cp.Value), globals), Body: eraseComp(cp.Body, globals)}
	case *syntax.AnnComp:
		return eraseComp(cp.Body, globals)
	}
	return nil
}

// packInner extracts the carried value straight out of a syntax-level
// Pack for the MatchPack erasure above; any other value shape means the
// scrutinee wasn't actually a Pack, which the checker would have
// already rejected, so this only ever runs on well-typed input.
func packInner(v syntax.Value) syntax.Value {
	if p, ok := v.(*syntax.Pack); ok {
		return p.Value
	}
	return v
}

// asGlobalRef recognizes `force (thunk-of-a-global-name)`-shaped erasure
// targets: a bare Var naming a top-level computation binding erases
// directly to a GlobalRef rather than Force(Var).
func asGlobalRef(v syntax.Value, globals map[string]bool) (*linked.GlobalRef, bool) {
	variable, ok := v.(*syntax.Var)
	if !ok || !globals[variable.Name] {
		return nil, false
	}
	return &linked.GlobalRef{Node: linked.Node{NodeSpan: variable.Span()}, Name: variable.Name}, true
}

type spanner interface {
	Span() ast.Span
}

func spanOf(s spanner) *ast.Span {
	sp := s.Span()
	return &sp
}
