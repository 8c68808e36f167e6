// Package linked defines the dynamics AST: the operational core the
// linker produces by erasing type annotations, type abstractions, and
// type applications from a checked internal/syntax term (spec §4.4).
// Grounded on ailang's core/ANF split — a second, erased IR distinct from
// the surface term algebra — but here the erasure target is untyped CBPV
// rather than ANF.
package linked

import (
	"fmt"
	"strings"

	"github.com/zydeco-lang/zydeco/internal/ast"
)

type Node struct {
	NodeSpan ast.Span
}

func (n Node) Span() ast.Span { return n.NodeSpan }

// Value is an erased value term.
type Value interface {
	Span() ast.Span
	String() string
	valueTerm()
}

// Computation is an erased computation term.
type Computation interface {
	Span() ast.Span
	String() string
	compTerm()
}

type Var struct {
	Node
	Name string
}

func (*Var) valueTerm()       {}
func (v *Var) String() string { return v.Name }

type LitKind int

const (
	IntLit LitKind = iota
	StringLit
	CharLit
)

type Lit struct {
	Node
	Kind  LitKind
	Value interface{}
}

func (*Lit) valueTerm()       {}
func (l *Lit) String() string { return fmt.Sprintf("%v", l.Value) }

// Thunk suspends a computation as a value; the machine's runtime Thunk
// value (internal/machine) additionally carries the captured environment
// once the thunk is first produced — this AST node only records the body.
type Thunk struct {
	Node
	Body Computation
}

func (*Thunk) valueTerm()       {}
func (t *Thunk) String() string { return fmt.Sprintf("thunk(%s)", t.Body) }

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

// Pack erases to its carried value alone; the witness type played no
// runtime role (spec §4.4).
type Pack struct {
	Node
	Value Value
}

func (*Pack) valueTerm()       {}
func (p *Pack) String() string { return fmt.Sprintf("pack(%s)", p.Value) }

type Ret struct {
	Node
	Value Value
}

func (*Ret) compTerm()       {}
func (r *Ret) String() string { return fmt.Sprintf("ret %s", r.Value) }

type Force struct {
	Node
	Value Value
}

func (*Force) compTerm()       {}
func (f *Force) String() string { return fmt.Sprintf("force %s", f.Value) }

type Let struct {
	Node
	Name  string
	Value Value
	Body  Computation
}

func (*Let) compTerm() {}
func (l *Let) String() string {
	return fmt.Sprintf("let %s = %s in %s", l.Name, l.Value, l.Body)
}

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

type Rec struct {
	Node
	Name string
	Body Computation
}

func (*Rec) compTerm()       {}
func (r *Rec) String() string { return fmt.Sprintf("rec %s. %s", r.Name, r.Body) }

type MatchArm struct {
	Ctor string
	Vars []string
	Body Computation
}

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

type CoMatchArm struct {
	Dtor string
	Vars []string
	Body Computation
}

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

// Prim invokes a registered primitive implementation directly; this node
// is produced only by the linker, standing in for an `extern` name once
// it has been resolved against the builtin registry (spec §4.4, §6).
type Prim struct {
	Node
	Name string
}

func (*Prim) compTerm()       {}
func (p *Prim) String() string { return fmt.Sprintf("prim %s", p.Name) }

// GlobalRef refers to another top-level `define` by name. Top-level
// definitions have computation kind and so cannot be bound as ordinary
// value variables; the machine resolves a GlobalRef against the
// module's computation bindings at the point it is forced/run.
type GlobalRef struct {
	Node
	Name string
}

func (*GlobalRef) compTerm()       {}
func (g *GlobalRef) String() string { return g.Name }
