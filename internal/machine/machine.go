package machine

import (
	zerrors "github.com/zydeco-lang/zydeco/internal/errors"
	"github.com/zydeco-lang/zydeco/internal/linked"
)

// PrimRegistry is everything the machine needs to know about a
// primitive implementation to invoke it: how many curried `.ap` calls
// to collect before calling, and the call itself.
type PrimRegistry interface {
	Arity(name string) (int, bool)
	Call(name string, args []Value) (Value, error)
}

// Globals resolves a top-level define/extern name to its linked
// computation body (internal/link's Program.Defines).
type Globals map[string]linked.Computation

// Machine runs a single program to completion or until its step budget
// is exhausted.
type Machine struct {
	Globals    Globals
	Prims      PrimRegistry
	StepBudget int // 0 means unlimited
}

// New builds a machine over a linked program's globals and a primitive
// registry. A zero stepBudget means no limit.
func New(globals Globals, prims PrimRegistry, stepBudget int) *Machine {
	return &Machine{Globals: globals, Prims: prims, StepBudget: stepBudget}
}

// Run evaluates the named top-level computation to a final value.
func (m *Machine) Run(entry string) (Value, error) {
	body, ok := m.Globals[entry]
	if !ok {
		return nil, zerrors.New(zerrors.MCH005UnknownArm, "machine", nil,
			map[string]any{"entry": entry}, "no top-level definition named %q", entry)
	}
	return m.run(body, EmptyEnv, nil)
}

func (m *Machine) run(c linked.Computation, env *Env, stack []Frame) (Value, error) {
	steps := 0
	for {
		if m.StepBudget > 0 {
			steps++
			if steps > m.StepBudget {
				return nil, zerrors.New(zerrors.MCH007StepBudgetExceeded, "machine", nil,
					map[string]any{"budget": m.StepBudget}, "exceeded step budget of %d", m.StepBudget)
			}
		}
		var (
			value Value
			err   error
			done  bool
		)
		c, env, stack, value, done, err = m.step(c, env, stack)
		if err != nil {
			return nil, err
		}
		if done {
			return value, nil
		}
	}
}

// step performs one machine transition. When the current computation
// resolves to a final value with an empty stack, done is true and value
// holds the result.
func (m *Machine) step(c linked.Computation, env *Env, stack []Frame) (linked.Computation, *Env, []Frame, Value, bool, error) {
	switch cp := c.(type) {
	case *linked.Ret:
		v, err := m.evalValue(cp.Value, env)
		if err != nil {
			return nil, nil, nil, nil, false, err
		}
		return m.resume(v, stack)

	case *linked.Force:
		v, err := m.evalValue(cp.Value, env)
		if err != nil {
			return nil, nil, nil, nil, false, err
		}
		thunk, ok := v.(*ThunkV)
		if !ok {
			return nil, nil, nil, nil, false, zerrors.New(zerrors.MCH001ForceOnNonThunk, "machine", nil,
				map[string]any{"found": v.String()}, "force on a non-thunk value: %s", v)
		}
		return thunk.Body, thunk.Env, stack, nil, false, nil

	case *linked.Let:
		v, err := m.evalValue(cp.Value, env)
		if err != nil {
			return nil, nil, nil, nil, false, err
		}
		return cp.Body, env.Extend(cp.Name, v), stack, nil, false, nil

	case *linked.Do:
		newStack := append(append([]Frame{}, stack...), DoFrame{Name: cp.Name, Body: cp.Body, Env: env})
		return cp.Comp, env, newStack, nil, false, nil

	case *linked.Rec:
		thunk := &ThunkV{Body: cp}
		newEnv := env.Extend(cp.Name, thunk)
		thunk.Env = newEnv
		return cp.Body, newEnv, stack, nil, false, nil

	case *linked.Match:
		v, err := m.evalValue(cp.Scrutinee, env)
		if err != nil {
			return nil, nil, nil, nil, false, err
		}
		ctor, ok := v.(*CtorV)
		if !ok {
			return nil, nil, nil, nil, false, zerrors.New(zerrors.MCH002MatchOnNonCtor, "machine", nil,
				map[string]any{"found": v.String()}, "match on a non-constructor value: %s", v)
		}
		for _, arm := range cp.Arms {
			if arm.Ctor != ctor.Name {
				continue
			}
			next := env
			for i, name := range arm.Vars {
				next = next.Extend(name, ctor.Args[i])
			}
			return arm.Body, next, stack, nil, false, nil
		}
		return nil, nil, nil, nil, false, zerrors.New(zerrors.MCH005UnknownArm, "machine", nil,
			map[string]any{"ctor": ctor.Name}, "no match arm for constructor %q", ctor.Name)

	case *linked.CoMatch:
		if len(stack) == 0 {
			return nil, nil, nil, nil, false, zerrors.New(zerrors.MCH003CoMatchOnNonDtor, "machine", nil, nil,
				"comatch reached with no pending destructor call")
		}
		top := stack[len(stack)-1]
		df, ok := top.(DtorFrame)
		if !ok {
			return nil, nil, nil, nil, false, zerrors.New(zerrors.MCH003CoMatchOnNonDtor, "machine", nil, nil,
				"comatch reached with no pending destructor call")
		}
		for _, arm := range cp.Arms {
			if arm.Dtor != df.Name {
				continue
			}
			next := env
			for i, name := range arm.Vars {
				next = next.Extend(name, df.Args[i])
			}
			return arm.Body, next, stack[:len(stack)-1], nil, false, nil
		}
		return nil, nil, nil, nil, false, zerrors.New(zerrors.MCH005UnknownArm, "machine", nil,
			map[string]any{"dtor": df.Name}, "no comatch arm for destructor %q", df.Name)

	case *linked.Dtor:
		args := make([]Value, len(cp.Args))
		for i, a := range cp.Args {
			v, err := m.evalValue(a, env)
			if err != nil {
				return nil, nil, nil, nil, false, err
			}
			args[i] = v
		}
		newStack := append(append([]Frame{}, stack...), DtorFrame{Name: cp.Name, Args: args})
		return cp.Body, env, newStack, nil, false, nil

	case *linked.GlobalRef:
		def, ok := m.Globals[cp.Name]
		if !ok {
			return nil, nil, nil, nil, false, zerrors.New(zerrors.MCH005UnknownArm, "machine", nil,
				map[string]any{"name": cp.Name}, "no top-level definition named %q", cp.Name)
		}
		return def, EmptyEnv, stack, nil, false, nil

	case *linked.Prim:
		return m.stepPrim(cp, stack)
	}
	return nil, nil, nil, nil, false, zerrors.New(zerrors.MCH005UnknownArm, "machine", nil, nil,
		"unrecognized computation node in the machine")
}

// stepPrim implements the primitive re-entry protocol (spec §9): pop
// exactly as many pending DtorFrame("ap", [arg]) entries as the
// primitive's registered arity requires, collecting their arguments in
// pop order (left-to-right curried application order), then invoke it.
func (m *Machine) stepPrim(cp *linked.Prim, stack []Frame) (linked.Computation, *Env, []Frame, Value, bool, error) {
	arity, ok := m.Prims.Arity(cp.Name)
	if !ok {
		return nil, nil, nil, nil, false, zerrors.New(zerrors.PRM001UnknownPrimitive, "machine", nil,
			map[string]any{"name": cp.Name}, "no primitive registered for %q", cp.Name)
	}
	if len(stack) < arity {
		return nil, nil, nil, nil, false, zerrors.New(zerrors.MCH006PrimFailure, "machine", nil,
			map[string]any{"name": cp.Name, "arity": arity, "found": len(stack)},
			"primitive %q expects %d arguments, only %d pending", cp.Name, arity, len(stack))
	}
	args := make([]Value, 0, arity)
	rest := stack
	for i := 0; i < arity; i++ {
		top := rest[len(rest)-1]
		df, ok := top.(DtorFrame)
		if !ok || df.Name != "ap" || len(df.Args) != 1 {
			return nil, nil, nil, nil, false, zerrors.New(zerrors.MCH006PrimFailure, "machine", nil,
				map[string]any{"name": cp.Name}, "primitive %q was not applied through curried .ap calls", cp.Name)
		}
		args = append(args, df.Args[0])
		rest = rest[:len(rest)-1]
	}
	result, err := m.Prims.Call(cp.Name, args)
	if err != nil {
		return nil, nil, nil, nil, false, err
	}
	if cp.Name == "exit" {
		code, _ := result.(IntV)
		return nil, nil, nil, ExitCodeV(code), true, nil
	}
	return m.resume(result, rest)
}

// resume implements "return a value": pop the next frame and continue,
// or report the final value if the stack is empty.
func (m *Machine) resume(v Value, stack []Frame) (linked.Computation, *Env, []Frame, Value, bool, error) {
	if len(stack) == 0 {
		return nil, nil, nil, v, true, nil
	}
	top := stack[len(stack)-1]
	rest := stack[:len(stack)-1]
	switch frame := top.(type) {
	case DoFrame:
		return frame.Body, frame.Env.Extend(frame.Name, v), rest, nil, false, nil
	case DtorFrame:
		return nil, nil, nil, nil, false, zerrors.New(zerrors.MCH004KontNotAtStackTop, "machine", nil,
			map[string]any{"dtor": frame.Name}, "value produced while a destructor call for %q was still pending", frame.Name)
	}
	return nil, nil, nil, nil, false, zerrors.New(zerrors.MCH004KontNotAtStackTop, "machine", nil, nil,
		"unrecognized frame at the top of the stack")
}

func (m *Machine) evalValue(v linked.Value, env *Env) (Value, error) {
	switch val := v.(type) {
	case *linked.Var:
		result, ok := env.Lookup(val.Name)
		if !ok {
			return nil, zerrors.New(zerrors.MCH005UnknownArm, "machine", nil,
				map[string]any{"var": val.Name}, "unbound variable %q at runtime", val.Name)
		}
		return result, nil
	case *linked.Lit:
		switch val.Kind {
		case linked.IntLit:
			return IntV(val.Value.(int64)), nil
		case linked.StringLit:
			return StringV(val.Value.(string)), nil
		case linked.CharLit:
			return CharV(val.Value.(rune)), nil
		}
		return nil, zerrors.New(zerrors.MCH005UnknownArm, "machine", nil, nil, "literal has unrecognized kind")
	case *linked.Thunk:
		return &ThunkV{Body: val.Body, Env: env}, nil
	case *linked.Ctor:
		args := make([]Value, len(val.Args))
		for i, a := range val.Args {
			v, err := m.evalValue(a, env)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return &CtorV{Name: val.Name, Args: args}, nil
	case *linked.Pack:
		return m.evalValue(val.Value, env)
	}
	return nil, zerrors.New(zerrors.MCH005UnknownArm, "machine", nil, nil, "unrecognized value node")
}
