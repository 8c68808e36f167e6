package ztypes

import (
	zerrors "github.com/zydeco-lang/zydeco/internal/errors"
	"github.com/zydeco-lang/zydeco/internal/kinds"
)

// KindEnv maps a type name (constructor or variable) to its arity kind
// (spec §4.1's Γ: typevar -> arity-kind). Built-in constructors are
// pre-registered here rather than special-cased in SynKind, resolving the
// "todo!() for Thunk/Ret/Fn" ambiguity per SPEC_FULL.md §4: one generic
// application rule handles both built-ins and user data/codata.
type KindEnv struct {
	vars map[string]kinds.Kind
}

// NewKindEnv builds a kind environment pre-populated with Zydeco's
// built-in type constructors.
func NewKindEnv() *KindEnv {
	e := &KindEnv{vars: make(map[string]kinds.Kind)}
	e.vars["Thunk"] = kinds.New([]kinds.Kind{kinds.CType}, kinds.VType)
	e.vars["Ret"] = kinds.New([]kinds.Kind{kinds.VType}, kinds.CType)
	e.vars["Fn"] = kinds.New([]kinds.Kind{kinds.VType, kinds.CType}, kinds.CType)
	e.vars["OS"] = kinds.New(nil, kinds.CType)
	e.vars["Int"] = kinds.New(nil, kinds.VType)
	e.vars["String"] = kinds.New(nil, kinds.VType)
	e.vars["Char"] = kinds.New(nil, kinds.VType)
	return e
}

// Extend returns a new environment with name bound to k, leaving e
// unmodified (the checker threads these copies through recursive calls).
func (e *KindEnv) Extend(name string, k kinds.Kind) *KindEnv {
	next := &KindEnv{vars: make(map[string]kinds.Kind, len(e.vars)+1)}
	for k2, v := range e.vars {
		next.vars[k2] = v
	}
	next.vars[name] = k
	return next
}

// Register declares a user data/codata type's arity kind. It does not
// check for an existing binding; CheckModule rejects a duplicate type
// declaration before registering it.
func (e *KindEnv) Register(name string, k kinds.Kind) *KindEnv {
	return e.Extend(name, k)
}

func (e *KindEnv) Lookup(name string) (kinds.Kind, bool) {
	k, ok := e.vars[name]
	return k, ok
}

// SynKind synthesizes the kind of a type (spec §4.1): syn_kind(τ, Γ) → K.
func SynKind(t *Type, env *KindEnv) (kinds.Kind, error) {
	var synthesized kinds.Kind

	switch h := t.Head.(type) {
	case App:
		arity, ok := env.Lookup(h.Name)
		if !ok {
			return nil, zerrors.New(zerrors.NAM002UnboundTypeVariable, "kind", nil,
				map[string]any{"var": h.Name}, "unbound type variable %q", h.Name)
		}
		a, isArity := arity.(kinds.Arity)
		if !isArity {
			// a zero-param constructor's kind is already normalized to a base
			// kind; that's only valid if no arguments were supplied.
			if len(h.Args) != 0 {
				return nil, zerrors.New(zerrors.KND002ArityMismatch, "kind", nil,
					map[string]any{"name": h.Name, "expected": 0, "found": len(h.Args)},
					"%q takes no type arguments, found %d", h.Name, len(h.Args))
			}
			synthesized = arity
			break
		}
		if len(h.Args) != len(a.Params) {
			return nil, zerrors.New(zerrors.KND002ArityMismatch, "kind", nil,
				map[string]any{"name": h.Name, "expected": len(a.Params), "found": len(h.Args)},
				"%q expects %d type arguments, found %d", h.Name, len(a.Params), len(h.Args))
		}
		for i, arg := range h.Args {
			argKind, aerr := SynKind(arg, env)
			if aerr != nil {
				return nil, aerr
			}
			if !kinds.Equivalent(argKind, a.Params[i]) {
				return nil, zerrors.New(zerrors.KND001KindMismatch, "kind", nil,
					map[string]any{"expected": a.Params[i].String(), "found": argKind.String()},
					"argument %d of %q: expected kind %s, found %s", i, h.Name, a.Params[i], argKind)
			}
		}
		synthesized = a.Result
	case Forall:
		inner := env.Extend(h.Var, h.VarKind)
		if _, ferr := SynKind(h.Body, inner); ferr != nil {
			return nil, ferr
		}
		synthesized = kinds.CType
	case Exists:
		inner := env.Extend(h.Var, h.VarKind)
		if _, eerr := SynKind(h.Body, inner); eerr != nil {
			return nil, eerr
		}
		synthesized = kinds.VType
	case AbstVar:
		synthesized = h.VarKind
	case Hole:
		return nil, zerrors.New(zerrors.KND003NeedKindAnnotation, "kind", nil, nil,
			"hole requires a kind annotation in synthesis mode")
	default:
		return nil, zerrors.New(zerrors.KND001KindMismatch, "kind", nil, nil, "unrecognized type head")
	}

	if t.Kd != nil && !kinds.Equivalent(t.Kd, synthesized) {
		return nil, zerrors.New(zerrors.KND001KindMismatch, "kind", nil,
			map[string]any{"expected": t.Kd.String(), "found": synthesized.String()},
			"kind annotation %s does not match synthesized kind %s", t.Kd, synthesized)
	}
	return synthesized, nil
}

// AnaKind checks a type against an expected kind (a hole succeeds against
// any kind in analysis mode, per spec §4.1).
func AnaKind(t *Type, expected kinds.Kind, env *KindEnv) error {
	if _, isHole := t.Head.(Hole); isHole {
		return nil
	}
	k, err := SynKind(t, env)
	if err != nil {
		return err
	}
	if !kinds.Equivalent(k, expected) {
		return zerrors.New(zerrors.KND001KindMismatch, "kind", nil,
			map[string]any{"expected": expected.String(), "found": k.String()},
			"expected kind %s, found %s", expected, k)
	}
	return nil
}
