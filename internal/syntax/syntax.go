// Package syntax defines the two-sorted CBPV term algebra shared by the
// statics (type checker) and, after linking, by the dynamics (abstract
// machine): value terms and computation terms (spec §3.3), plus the
// data/codata/define/extern declarations of spec §3.4.
//
// Grounded on ailang's internal/core package: an embedded base struct
// carrying spans, a sealing method per sort (coreExpr()), and a String()
// method on every constructor.
package syntax

import (
	"fmt"
	"strings"

	"github.com/zydeco-lang/zydeco/internal/ast"
	"github.com/zydeco-lang/zydeco/internal/kinds"
	"github.com/zydeco-lang/zydeco/internal/ztypes"
)

// Node carries the source span every term needs for diagnostics.
type Node struct {
	NodeSpan ast.Span
}

func (n Node) Span() ast.Span { return n.NodeSpan }

// Value is a CBPV value term: passive data.
type Value interface {
	Span() ast.Span
	String() string
	valueTerm()
}

// Computation is a CBPV computation term: an active producer of results.
type Computation interface {
	Span() ast.Span
	String() string
	compTerm()
}

/* ------------------------------- Values -------------------------------- */

// Var is a variable reference.
type Var struct {
	Node
	Name string
}

func (*Var) valueTerm()      {}
func (v *Var) String() string { return v.Name }

// LitKind tags the literal's runtime shape.
type LitKind int

const (
	IntLit LitKind = iota
	StringLit
	CharLit
)

// Lit is an integer/string/char literal value.
type Lit struct {
	Node
	Kind  LitKind
	Value interface{}
}

func (*Lit) valueTerm()      {}
func (l *Lit) String() string { return fmt.Sprintf("%v", l.Value) }

// Thunk suspends a computation as a value (`thunk C`).
type Thunk struct {
	Node
	Body Computation
}

func (*Thunk) valueTerm()      {}
func (t *Thunk) String() string { return fmt.Sprintf("thunk(%s)", t.Body) }

// Ctor applies a data constructor to value arguments.
type Ctor struct {
	Node
	Name string
	Args []Value
}

func (*Ctor) valueTerm() {}
func (c *Ctor) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	if len(parts) == 0 {
		return c.Name
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Pack builds an existential package (τ, V).
type Pack struct {
	Node
	Type  *ztypes.Type
	Value Value
}

func (*Pack) valueTerm() {}
func (p *Pack) String() string { return fmt.Sprintf("pack(%s, %s)", p.Type, p.Value) }

// AnnValue is a value annotated with its type (`V : τ`).
type AnnValue struct {
	Node
	Value Value
	Type  *ztypes.Type
}

func (*AnnValue) valueTerm() {}
func (a *AnnValue) String() string { return fmt.Sprintf("(%s : %s)", a.Value, a.Type) }

/* ----------------------------- Computations ----------------------------- */

// Ret lifts a value into a trivial computation (`ret V`).
type Ret struct {
	Node
	Value Value
}

func (*Ret) compTerm() {}
func (r *Ret) String() string { return fmt.Sprintf("ret %s", r.Value) }

// Force resumes a thunked computation (`force V`).
type Force struct {
	Node
	Value Value
}

func (*Force) compTerm() {}
func (f *Force) String() string { return fmt.Sprintf("force %s", f.Value) }

// Let binds a value non-recursively (`let x = V in C`).
type Let struct {
	Node
	Name  string
	Value Value
	Body  Computation
}

func (*Let) compTerm() {}
func (l *Let) String() string { return fmt.Sprintf("let %s = %s in %s", l.Name, l.Value, l.Body) }

// Do sequences two computations (`do x <- C1 ; C2`).
type Do struct {
	Node
	Name string
	Comp Computation
	Body Computation
}

func (*Do) compTerm() {}
func (d *Do) String() string {
	return fmt.Sprintf("do %s <- %s ; %s", d.Name, d.Comp, d.Body)
}

// Rec is a recursive computation binder (`rec x. C`); x stands for a
// thunk of the whole computation inside its own body.
type Rec struct {
	Node
	Name string
	Body Computation
}

func (*Rec) compTerm() {}
func (r *Rec) String() string { return fmt.Sprintf("rec %s. %s", r.Name, r.Body) }

// MatchArm is one `K(x1,...,xn) -> C` arm of a match.
type MatchArm struct {
	Ctor string
	Vars []string
	Body Computation
}

// Match pattern-matches a value scrutinee against constructor arms.
type Match struct {
	Node
	Scrutinee Value
	Arms      []MatchArm
}

func (*Match) compTerm() {}
func (m *Match) String() string {
	parts := make([]string, len(m.Arms))
	for i, arm := range m.Arms {
		parts[i] = fmt.Sprintf("%s(%s) -> %s", arm.Ctor, strings.Join(arm.Vars, ", "), arm.Body)
	}
	return fmt.Sprintf("match %s { %s }", m.Scrutinee, strings.Join(parts, " | "))
}

// CoMatchArm is one `.d(y1,...,yn) -> C` arm of a comatch.
type CoMatchArm struct {
	Dtor string
	Vars []string
	Body Computation
}

// CoMatch builds a codata record by giving a computation for each
// destructor (`comatch {.d_j(y_j) -> C_j}`).
type CoMatch struct {
	Node
	Arms []CoMatchArm
}

func (*CoMatch) compTerm() {}
func (c *CoMatch) String() string {
	parts := make([]string, len(c.Arms))
	for i, arm := range c.Arms {
		parts[i] = fmt.Sprintf(".%s(%s) -> %s", arm.Dtor, strings.Join(arm.Vars, ", "), arm.Body)
	}
	return fmt.Sprintf("comatch { %s }", strings.Join(parts, " | "))
}

// Dtor applies a destructor to a computation (`C.d(V1,...,Vn)`).
type Dtor struct {
	Node
	Body Computation
	Name string
	Args []Value
}

func (*Dtor) compTerm() {}
func (d *Dtor) String() string {
	parts := make([]string, len(d.Args))
	for i, a := range d.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s.%s(%s)", d.Body, d.Name, strings.Join(parts, ", "))
}

// TyAbs is a type-level abstraction (`Λα.C`).
type TyAbs struct {
	Node
	Var     string
	VarKind kinds.Kind
	Body    Computation
}

func (*TyAbs) compTerm() {}
func (t *TyAbs) String() string { return fmt.Sprintf("Λ%s. %s", t.Var, t.Body) }

// TyApp is a type-level application (`C[τ]`).
type TyApp struct {
	Node
	Body Computation
	Type *ztypes.Type
}

func (*TyApp) compTerm() {}
func (t *TyApp) String() string { return fmt.Sprintf("%s[%s]", t.Body, t.Type) }

// MatchPack destructures an existential package
// (`matchpack V as (α, x) in C`).
type MatchPack struct {
	Node
	Value  Value
	TyVar  string
	Var    string
	Body   Computation
}

func (*MatchPack) compTerm() {}
func (m *MatchPack) String() string {
	return fmt.Sprintf("matchpack %s as (%s, %s) in %s", m.Value, m.TyVar, m.Var, m.Body)
}

// AnnComp is a computation annotated with its type (`C : τ`).
type AnnComp struct {
	Node
	Body Computation
	Type *ztypes.Type
}

func (*AnnComp) compTerm() {}
func (a *AnnComp) String() string { return fmt.Sprintf("(%s : %s)", a.Body, a.Type) }
