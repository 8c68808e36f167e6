package syntax

import "github.com/zydeco-lang/zydeco/internal/ztypes"

// The constructors below build terms with a zero Span, for use by
// hand-written fixtures and tests where no lexer/parser supplies real
// source positions (mirroring ailang's New*/New*With* constructor-family
// idiom, generalized here to the term algebra rather than AST nodes).

func VarV(name string) *Var { return &Var{Name: name} }

func IntV(n int64) *Lit   { return &Lit{Kind: IntLit, Value: n} }
func StringLitV(s string) *Lit { return &Lit{Kind: StringLit, Value: s} }
func CharLitV(c rune) *Lit { return &Lit{Kind: CharLit, Value: c} }

func ThunkV(body Computation) *Thunk { return &Thunk{Body: body} }

func CtorV(name string, args ...Value) *Ctor { return &Ctor{Name: name, Args: args} }

func PackV(ty *ztypes.Type, v Value) *Pack { return &Pack{Type: ty, Value: v} }

func RetC(v Value) *Ret     { return &Ret{Value: v} }
func ForceC(v Value) *Force { return &Force{Value: v} }

func LetC(name string, v Value, body Computation) *Let {
	return &Let{Name: name, Value: v, Body: body}
}

func DoC(name string, comp Computation, body Computation) *Do {
	return &Do{Name: name, Comp: comp, Body: body}
}

func RecC(name string, body Computation) *Rec { return &Rec{Name: name, Body: body} }

func MatchC(scrutinee Value, arms ...MatchArm) *Match {
	return &Match{Scrutinee: scrutinee, Arms: arms}
}

func Arm(ctor string, vars []string, body Computation) MatchArm {
	return MatchArm{Ctor: ctor, Vars: vars, Body: body}
}

func CoMatchC(arms ...CoMatchArm) *CoMatch { return &CoMatch{Arms: arms} }

func CoArm(dtor string, vars []string, body Computation) CoMatchArm {
	return CoMatchArm{Dtor: dtor, Vars: vars, Body: body}
}

func DtorC(body Computation, name string, args ...Value) *Dtor {
	return &Dtor{Body: body, Name: name, Args: args}
}

// ApC is sugar for the built-in Fn type's single destructor: `body.ap(arg)`.
func ApC(body Computation, arg Value) *Dtor { return DtorC(body, "ap", arg) }

// LamC is sugar for the built-in Fn type's comatch: `comatch {.ap(x) -> body}`.
func LamC(param string, body Computation) *CoMatch {
	return CoMatchC(CoArm("ap", []string{param}, body))
}
