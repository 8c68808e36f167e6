package ztypes

// HeadReduce follows deferred substitutions through type variables until a
// syntactic constructor surfaces (spec §4.2, §GLOSSARY "Head reduction").
// For a bare variable with a binding in the environment, it recurses into
// the bound type. For an application with arguments, the pending
// environment is pushed onto each argument rather than discarded, so a
// later comparison still sees the deferred substitution (grounded on
// original_source's head_reduction, which does the same for the non-empty
// arg case rather than only handling the bare-variable case).
func HeadReduce(t *Type) *Type {
	switch h := t.Head.(type) {
	case App:
		if len(h.Args) == 0 {
			if bound, ok := t.Env.Lookup(h.Name); ok {
				return HeadReduce(bound)
			}
			return &Type{Head: h, Kd: t.Kd}
		}
		args := make([]*Type, len(h.Args))
		for i, a := range h.Args {
			args[i] = PushEnv(a, t.Env)
		}
		return &Type{Head: App{Name: h.Name, Args: args}, Kd: t.Kd}
	default:
		// Forall/Exists/AbstVar/Hole are already stuck heads; the pending
		// environment stays attached so Equivalent can push it into the
		// quantifier body when freshening.
		return t
	}
}

// IsIdempotent is a property check (spec §8 "round-trip/idempotence"):
// head-reducing a head-reduced type returns the same type.
func IsIdempotent(t *Type) bool {
	once := HeadReduce(t)
	twice := HeadReduce(once)
	return Equivalent(once, twice)
}
