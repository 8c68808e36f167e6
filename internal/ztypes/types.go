// Package ztypes represents CBPV types: the triple (app, kd, env) of
// spec §3.2 — a syntactic head, an optional surface kind annotation, and a
// deferred substitution environment composed lazily to avoid the
// exponential blowup eager substitution would cause during quantifier
// unification (spec §9).
package ztypes

import (
	"fmt"
	"strings"

	"github.com/zydeco-lang/zydeco/internal/kinds"
)

// Head is the syntactic head of a type: a constructor application, a
// quantifier, an abstract variable, or a hole.
type Head interface {
	head()
	String() string
}

// App is a type-constructor application C(t1,...,tn). A bare type
// variable is represented as App{Name: x, Args: nil}.
type App struct {
	Name string
	Args []*Type
}

func (App) head() {}
func (a App) String() string {
	if len(a.Args) == 0 {
		return a.Name
	}
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return a.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Forall is a universal quantifier ∀(α:K).τ, a computation-kind type.
type Forall struct {
	Var     string
	VarKind kinds.Kind
	Body    *Type
}

func (Forall) head() {}
func (f Forall) String() string {
	return fmt.Sprintf("forall (%s:%s). %s", f.Var, f.VarKind, f.Body)
}

// Exists is an existential quantifier ∃(α:K).τ, a value-kind type.
type Exists struct {
	Var     string
	VarKind kinds.Kind
	Body    *Type
}

func (Exists) head() {}
func (e Exists) String() string {
	return fmt.Sprintf("exists (%s:%s). %s", e.Var, e.VarKind, e.Body)
}

// AbstVar is a freshly generated opaque type variable ($n) used during
// quantifier equivalence checking (spec §4.2).
type AbstVar struct {
	N       int
	VarKind kinds.Kind
}

func (AbstVar) head() {}
func (a AbstVar) String() string { return fmt.Sprintf("$%d", a.N) }

// Hole is a type hole requiring an annotation in synthesis mode.
type Hole struct{}

func (Hole) head() {}
func (Hole) String() string { return "_" }

// Type is the (app, kd, env) triple of spec §3.2.
type Type struct {
	Head Head
	Kd   kinds.Kind // optional surface kind annotation; nil if absent
	Env  Env
}

func (t *Type) String() string {
	return t.Head.String()
}

// New wraps a head with no annotation and an empty environment.
func New(h Head) *Type {
	return &Type{Head: h}
}

// Var constructs a bare type-variable reference.
func Var(name string) *Type {
	return New(App{Name: name})
}

// Apply constructs a saturated constructor application.
func Apply(name string, args ...*Type) *Type {
	return New(App{Name: name, Args: args})
}

// Built-in constructors (spec §3.2).
func Thunk(inner *Type) *Type        { return Apply("Thunk", inner) }
func Ret(inner *Type) *Type          { return Apply("Ret", inner) }
func Fn(arg *Type, result *Type) *Type { return Apply("Fn", arg, result) }
func OS() *Type                      { return Apply("OS") }

// Intrinsic literal types.
var (
	TInt    = Apply("Int")
	TString = Apply("String")
	TChar   = Apply("Char")
)

// ElimThunk returns the inner type if h is an application of Thunk.
func ElimThunk(h App) (*Type, bool) {
	if h.Name == "Thunk" && len(h.Args) == 1 {
		return h.Args[0], true
	}
	return nil, false
}

// ElimRet returns the inner type if h is an application of Ret.
func ElimRet(h App) (*Type, bool) {
	if h.Name == "Ret" && len(h.Args) == 1 {
		return h.Args[0], true
	}
	return nil, false
}

// ElimFn returns the (arg, result) types if h is an application of Fn.
func ElimFn(h App) (arg *Type, result *Type, ok bool) {
	if h.Name == "Fn" && len(h.Args) == 2 {
		return h.Args[0], h.Args[1], true
	}
	return nil, nil, false
}

// ElimOS reports whether h is the OS application.
func ElimOS(h App) bool {
	return h.Name == "OS" && len(h.Args) == 0
}
