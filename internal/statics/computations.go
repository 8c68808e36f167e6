package statics

import (
	zerrors "github.com/zydeco-lang/zydeco/internal/errors"
	"github.com/zydeco-lang/zydeco/internal/kinds"
	"github.com/zydeco-lang/zydeco/internal/syntax"
	"github.com/zydeco-lang/zydeco/internal/ztypes"
)

// SynCompMode is the trampoline state "synthesize this computation".
type SynCompMode struct {
	Comp syntax.Computation
}

func (m SynCompMode) step(c *Checker) (Mode, error) {
	t, err := SynComp(c, m.Comp)
	if err != nil {
		return nil, err
	}
	return Done{Type: t}, nil
}

// AnaCompMode is the trampoline state "analyze this computation against τ".
type AnaCompMode struct {
	Comp     syntax.Computation
	Expected *ztypes.Type
}

func (m AnaCompMode) step(c *Checker) (Mode, error) {
	if err := AnaComp(c, m.Comp, m.Expected); err != nil {
		return nil, err
	}
	return Done{}, nil
}

// SynComp implements Γ⊢C⇒τ for computation terms (spec §4.3 "Computations").
func SynComp(c *Checker, comp syntax.Computation) (*ztypes.Type, error) {
	switch cp := comp.(type) {
	case *syntax.Ret:
		tau, err := SynVal(c, cp.Value)
		if err != nil {
			return nil, err
		}
		k, kerr := ztypes.SynKind(tau, c.KCtx)
		if kerr != nil {
			return nil, kerr
		}
		if !kinds.Equivalent(k, kinds.VType) {
			return nil, zerrors.New(zerrors.KND001KindMismatch, "typing", spanOf(cp), nil,
				"ret's argument must have value kind")
		}
		return ztypes.Ret(tau), nil
	case *syntax.Force:
		tau, err := SynVal(c, cp.Value)
		if err != nil {
			return nil, err
		}
		app, ok := headApp(tau)
		if !ok {
			return nil, zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(cp),
				map[string]any{"found": tau.String()}, "expected a Thunk type, found %s", tau)
		}
		rho, ok := ztypes.ElimThunk(app)
		if !ok {
			return nil, zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(cp),
				map[string]any{"found": tau.String()}, "expected a Thunk type, found %s", tau)
		}
		return rho, nil
	case *syntax.Let:
		tauV, err := SynVal(c, cp.Value)
		if err != nil {
			return nil, err
		}
		k, kerr := ztypes.SynKind(tauV, c.KCtx)
		if kerr != nil {
			return nil, kerr
		}
		if !kinds.Equivalent(k, kinds.VType) {
			return nil, zerrors.New(zerrors.KND001KindMismatch, "typing", spanOf(cp), nil,
				"let-bound value must have value kind")
		}
		inner := c.With(c.Terms.Extend(cp.Name, tauV))
		return SynComp(inner, cp.Body)
	case *syntax.Do:
		tauC1, err := SynComp(c, cp.Comp)
		if err != nil {
			return nil, err
		}
		app, ok := headApp(tauC1)
		if !ok {
			return nil, zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(cp),
				map[string]any{"found": tauC1.String()}, "expected a Ret type, found %s", tauC1)
		}
		tau, ok := ztypes.ElimRet(app)
		if !ok {
			return nil, zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(cp),
				map[string]any{"found": tauC1.String()}, "expected a Ret type, found %s", tauC1)
		}
		inner := c.With(c.Terms.Extend(cp.Name, tau))
		return SynComp(inner, cp.Body)
	case *syntax.Rec:
		return nil, zerrors.New(zerrors.TYC004NeedAnnotation, "typing", spanOf(cp), nil,
			"rec is only checkable in analysis mode")
	case *syntax.Match:
		return synMatch(c, cp)
	case *syntax.CoMatch:
		return nil, zerrors.New(zerrors.TYC004NeedAnnotation, "typing", spanOf(cp), nil,
			"comatch is only checkable in analysis mode")
	case *syntax.Dtor:
		tau, err := SynComp(c, cp.Body)
		if err != nil {
			return nil, err
		}
		decl, env, derr := codataDeclAndEnv(c, tau, cp)
		if derr != nil {
			return nil, derr
		}
		var dtorDecl *syntax.DtorDecl
		for i := range decl.Dtors {
			if decl.Dtors[i].Name == cp.Name {
				dtorDecl = &decl.Dtors[i]
				break
			}
		}
		if dtorDecl == nil {
			return nil, zerrors.New(zerrors.NAM003UnknownDestructor, "typing", spanOf(cp),
				map[string]any{"dtor": cp.Name, "type": decl.Name},
				"%q is not a destructor of %s", cp.Name, decl.Name)
		}
		if len(dtorDecl.Args) != len(cp.Args) {
			return nil, zerrors.New(zerrors.TYC001TypeMismatch, "typing", spanOf(cp),
				map[string]any{"dtor": cp.Name, "expected": len(dtorDecl.Args), "found": len(cp.Args)},
				"destructor %q expects %d arguments, found %d", cp.Name, len(dtorDecl.Args), len(cp.Args))
		}
		for i, argTy := range dtorDecl.Args {
			instantiated := ztypes.PushEnv(argTy, env)
			if err := AnaVal(c, cp.Args[i], instantiated); err != nil {
				return nil, err
			}
		}
		return ztypes.PushEnv(dtorDecl.Result, env), nil
	case *syntax.TyAbs:
		inner := &Checker{Terms: c.Terms, KCtx: c.KCtx.Extend(cp.Var, cp.VarKind), Module: c.Module}
		body, err := SynComp(inner, cp.Body)
		if err != nil {
			return nil, err
		}
		return ztypes.New(ztypes.Forall{Var: cp.Var, VarKind: cp.VarKind, Body: body}), nil
	case *syntax.TyApp:
		tau, err := SynComp(c, cp.Body)
		if err != nil {
			return nil, err
		}
		fa, ok := tau.Head.(ztypes.Forall)
		if !ok {
			return nil, zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(cp),
				map[string]any{"found": tau.String()}, "expected a forall type, found %s", tau)
		}
		if err := ztypes.AnaKind(cp.Type, fa.VarKind, c.KCtx); err != nil {
			return nil, err
		}
		body := ztypes.PushEnv(fa.Body, tau.Env)
		return substType(body, fa.Var, cp.Type), nil
	case *syntax.MatchPack:
		tau, err := SynVal(c, cp.Value)
		if err != nil {
			return nil, err
		}
		ex, ok := tau.Head.(ztypes.Exists)
		if !ok {
			return nil, zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(cp),
				map[string]any{"found": tau.String()}, "expected an existential type, found %s", tau)
		}
		innerKinds := c.KCtx.Extend(cp.TyVar, ex.VarKind)
		body := ztypes.PushEnv(ex.Body, tau.Env)
		rho := substType(body, ex.Var, ztypes.Var(cp.TyVar))
		innerTerms := c.Terms.Extend(cp.Var, rho)
		inner := &Checker{Terms: innerTerms, KCtx: innerKinds, Module: c.Module}
		return SynComp(inner, cp.Body)
	case *syntax.AnnComp:
		if err := ztypes.AnaKind(cp.Type, kinds.CType, c.KCtx); err != nil {
			return nil, err
		}
		if err := AnaComp(c, cp.Body, cp.Type); err != nil {
			return nil, err
		}
		return cp.Type, nil
	}
	return nil, zerrors.New(zerrors.TYC001TypeMismatch, "typing", nil, nil, "unrecognized computation term")
}

// AnaComp implements Γ⊢C⇐τ for computation terms. The default falls back
// to Subsumption.
func AnaComp(c *Checker, comp syntax.Computation, expected *ztypes.Type) error {
	switch cp := comp.(type) {
	case *syntax.Ret:
		app, ok := headApp(expected)
		if !ok {
			return zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(cp),
				map[string]any{"expected": expected.String()}, "expected a Ret type, found %s", expected)
		}
		tau, ok := ztypes.ElimRet(app)
		if !ok {
			return zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(cp),
				map[string]any{"expected": expected.String()}, "expected a Ret type, found %s", expected)
		}
		return AnaVal(c, cp.Value, tau)
	case *syntax.Let:
		tauV, err := SynVal(c, cp.Value)
		if err != nil {
			return err
		}
		inner := c.With(c.Terms.Extend(cp.Name, tauV))
		return AnaComp(inner, cp.Body, expected)
	case *syntax.Do:
		tauC1, err := SynComp(c, cp.Comp)
		if err != nil {
			return err
		}
		app, ok := headApp(tauC1)
		if !ok {
			return zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(cp),
				map[string]any{"found": tauC1.String()}, "expected a Ret type, found %s", tauC1)
		}
		tau, ok := ztypes.ElimRet(app)
		if !ok {
			return zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(cp),
				map[string]any{"found": tauC1.String()}, "expected a Ret type, found %s", tauC1)
		}
		inner := c.With(c.Terms.Extend(cp.Name, tau))
		return AnaComp(inner, cp.Body, expected)
	case *syntax.Rec:
		k, err := ztypes.SynKind(expected, c.KCtx)
		if err != nil {
			return err
		}
		if !kinds.Equivalent(k, kinds.CType) {
			return zerrors.New(zerrors.KND001KindMismatch, "typing", spanOf(cp), nil,
				"rec must be checked against a computation type")
		}
		inner := c.With(c.Terms.Extend(cp.Name, ztypes.Thunk(expected)))
		return AnaComp(inner, cp.Body, expected)
	case *syntax.Match:
		_, err := anaMatch(c, cp, expected)
		return err
	case *syntax.CoMatch:
		return anaComatch(c, cp, expected)
	case *syntax.TyAbs:
		fa, ok := expected.Head.(ztypes.Forall)
		if !ok {
			return zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(cp),
				map[string]any{"expected": expected.String()}, "expected a forall type, found %s", expected)
		}
		if !kinds.Equivalent(cp.VarKind, fa.VarKind) {
			return zerrors.New(zerrors.KND001KindMismatch, "typing", spanOf(cp), nil,
				"type abstraction's kind does not match the expected forall's kind")
		}
		body := ztypes.PushEnv(fa.Body, expected.Env)
		rho := substType(body, fa.Var, ztypes.Var(cp.Var))
		inner := &Checker{Terms: c.Terms, KCtx: c.KCtx.Extend(cp.Var, cp.VarKind), Module: c.Module}
		return AnaComp(inner, cp.Body, rho)
	default:
		synthesized, err := SynComp(c, comp)
		if err != nil {
			return err
		}
		if !ztypes.Equivalent(synthesized, expected) {
			return zerrors.New(zerrors.TYC003Subsumption, "typing", spanOf(comp),
				map[string]any{"expected": expected.String(), "found": synthesized.String()},
				"expected type %s, found %s", expected, synthesized)
		}
		return nil
	}
}
