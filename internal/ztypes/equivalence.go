package ztypes

import "github.com/zydeco-lang/zydeco/internal/kinds"

var abstVarCounter int

// freshAbstVar generates a new opaque type standing in for a quantifier's
// bound variable during equivalence checking. $n is equal only to itself
// (spec §GLOSSARY "Abstract variable").
func freshAbstVar(k kinds.Kind) *Type {
	abstVarCounter++
	return New(AbstVar{N: abstVarCounter, VarKind: k})
}

// Equivalent holds when τ ≡ τ': head-reduce both sides, then compare
// syntactic heads structurally, recursing on arguments and freshening
// quantifiers (spec §4.2). Equivalence is reflexive, symmetric, and
// transitive (spec §8 invariant 4) because it reduces to structural
// equality of stable, freshly-generated abstract variables.
func Equivalent(a, b *Type) bool {
	ra := HeadReduce(a)
	rb := HeadReduce(b)
	return equivHeads(ra, rb)
}

func equivHeads(a, b *Type) bool {
	switch ha := a.Head.(type) {
	case App:
		hb, ok := b.Head.(App)
		if !ok || ha.Name != hb.Name || len(ha.Args) != len(hb.Args) {
			return false
		}
		for i := range ha.Args {
			if !Equivalent(ha.Args[i], hb.Args[i]) {
				return false
			}
		}
		return true
	case Forall:
		hb, ok := b.Head.(Forall)
		if !ok || !kinds.Equivalent(ha.VarKind, hb.VarKind) {
			return false
		}
		fresh := freshAbstVar(ha.VarKind)
		bodyA := PushEnv(ha.Body, a.Env).subst(ha.Var, fresh)
		bodyB := PushEnv(hb.Body, b.Env).subst(hb.Var, fresh)
		return Equivalent(bodyA, bodyB)
	case Exists:
		hb, ok := b.Head.(Exists)
		if !ok || !kinds.Equivalent(ha.VarKind, hb.VarKind) {
			return false
		}
		fresh := freshAbstVar(ha.VarKind)
		bodyA := PushEnv(ha.Body, a.Env).subst(ha.Var, fresh)
		bodyB := PushEnv(hb.Body, b.Env).subst(hb.Var, fresh)
		return Equivalent(bodyA, bodyB)
	case AbstVar:
		hb, ok := b.Head.(AbstVar)
		return ok && ha.N == hb.N
	case Hole:
		_, ok := b.Head.(Hole)
		return ok
	default:
		return false
	}
}

// subst substitutes a single free variable name with a replacement type by
// pushing a one-entry environment frame — the lazy equivalent of
// eagerly walking the tree, consistent with the deferred-substitution
// design (spec §9).
func (t *Type) subst(name string, replacement *Type) *Type {
	return t.Env.Push(map[string]*Type{name: replacement}).applyTo(t)
}

func (e Env) applyTo(t *Type) *Type {
	return &Type{Head: t.Head, Kd: t.Kd, Env: e}
}
