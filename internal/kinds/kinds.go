// Package kinds represents kinds in the Zydeco type system: the base
// kinds VType and CType, and the arity kinds that classify parameterized
// type constructors (spec §3.1).
package kinds

import "strings"

// Kind classifies a type. It is either a base kind (VType/CType) or an
// arity kind (params) -> result.
type Kind interface {
	kind()
	String() string
	Equals(Kind) bool
}

// Base is a base kind: the kind of value types or computation types.
type Base int

const (
	VType Base = iota
	CType
)

func (b Base) kind() {}

func (b Base) String() string {
	if b == VType {
		return "VType"
	}
	return "CType"
}

func (b Base) Equals(other Kind) bool {
	o, ok := other.(Base)
	return ok && o == b
}

// Arity is the kind of a type constructor taking len(Params) arguments of
// the given kinds and producing a type of kind Result. A zero-parameter
// arity normalizes to its Result (spec §3.1): callers should use
// Normalize rather than constructing Arity{} directly for that case.
type Arity struct {
	Params []Kind
	Result Kind
}

func (a Arity) kind() {}

func (a Arity) String() string {
	parts := make([]string, len(a.Params))
	for i, p := range a.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + a.Result.String()
}

func (a Arity) Equals(other Kind) bool {
	o, ok := other.(Arity)
	if !ok {
		return false
	}
	if len(a.Params) != len(o.Params) {
		return false
	}
	for i := range a.Params {
		if !a.Params[i].Equals(o.Params[i]) {
			return false
		}
	}
	return a.Result.Equals(o.Result)
}

// Normalize collapses a zero-parameter arity into its result kind; all
// other kinds are returned unchanged. Equivalence (Equals) is always
// checked on normalized kinds.
func Normalize(k Kind) Kind {
	if a, ok := k.(Arity); ok && len(a.Params) == 0 {
		return Normalize(a.Result)
	}
	return k
}

// Equivalent compares two kinds structurally after normalization.
func Equivalent(a, b Kind) bool {
	return Normalize(a).Equals(Normalize(b))
}

// New builds an arity kind, normalizing zero-parameter arities.
func New(params []Kind, result Kind) Kind {
	return Normalize(Arity{Params: params, Result: result})
}
