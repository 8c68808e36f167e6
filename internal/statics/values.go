package statics

import (
	zerrors "github.com/zydeco-lang/zydeco/internal/errors"
	"github.com/zydeco-lang/zydeco/internal/kinds"
	"github.com/zydeco-lang/zydeco/internal/syntax"
	"github.com/zydeco-lang/zydeco/internal/ztypes"
)

// SynValMode is the trampoline state "synthesize this value".
type SynValMode struct {
	Value syntax.Value
}

func (m SynValMode) step(c *Checker) (Mode, error) {
	t, err := SynVal(c, m.Value)
	if err != nil {
		return nil, err
	}
	return Done{Type: t}, nil
}

// AnaValMode is the trampoline state "analyze this value against τ".
type AnaValMode struct {
	Value    syntax.Value
	Expected *ztypes.Type
}

func (m AnaValMode) step(c *Checker) (Mode, error) {
	if err := AnaVal(c, m.Value, m.Expected); err != nil {
		return nil, err
	}
	return Done{}, nil
}

// SynVal implements Γ⊢V⇒τ for value terms (spec §4.3 "Values").
func SynVal(c *Checker, v syntax.Value) (*ztypes.Type, error) {
	switch val := v.(type) {
	case *syntax.Var:
		t, ok := c.Terms.Lookup(val.Name)
		if !ok {
			return nil, zerrors.New(zerrors.NAM001UnboundVar, "typing", spanOf(val),
				map[string]any{"var": val.Name}, "unbound variable %q", val.Name)
		}
		return t, nil
	case *syntax.Lit:
		switch val.Kind {
		case syntax.IntLit:
			return ztypes.TInt, nil
		case syntax.StringLit:
			return ztypes.TString, nil
		case syntax.CharLit:
			return ztypes.TChar, nil
		}
		return nil, zerrors.New(zerrors.TYC001TypeMismatch, "typing", spanOf(val), nil,
			"literal has unrecognized kind")
	case *syntax.Thunk:
		rho, err := SynComp(c, val.Body)
		if err != nil {
			return nil, err
		}
		k, kerr := ztypes.SynKind(rho, c.KCtx)
		if kerr != nil {
			return nil, kerr
		}
		if !kinds.Equivalent(k, kinds.CType) {
			return nil, zerrors.New(zerrors.KND001KindMismatch, "typing", spanOf(val), nil,
				"thunked computation must have computation kind")
		}
		return ztypes.Thunk(rho), nil
	case *syntax.Ctor:
		return nil, zerrors.New(zerrors.TYC004NeedAnnotation, "typing", spanOf(val),
			map[string]any{"ctor": val.Name},
			"constructor %q requires analysis mode (an expected type)", val.Name)
	case *syntax.Pack:
		return nil, zerrors.New(zerrors.TYC004NeedAnnotation, "typing", spanOf(val), nil,
			"pack requires analysis mode against an existential type")
	case *syntax.AnnValue:
		if err := ztypes.AnaKind(val.Type, kinds.VType, c.KCtx); err != nil {
			return nil, err
		}
		if err := AnaVal(c, val.Value, val.Type); err != nil {
			return nil, err
		}
		return val.Type, nil
	}
	return nil, zerrors.New(zerrors.TYC001TypeMismatch, "typing", nil, nil, "unrecognized value term")
}

// AnaVal implements Γ⊢V⇐τ for value terms. The default case (no
// dedicated analysis rule) falls back to Subsumption: synthesize and
// require equivalence with the expected type (spec §4.3).
func AnaVal(c *Checker, v syntax.Value, expected *ztypes.Type) error {
	switch val := v.(type) {
	case *syntax.Thunk:
		app, ok := headApp(expected)
		if !ok {
			return zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(val),
				map[string]any{"expected": expected.String()}, "expected a Thunk type, found %s", expected)
		}
		rho, ok := ztypes.ElimThunk(app)
		if !ok {
			return zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(val),
				map[string]any{"expected": expected.String()}, "expected a Thunk type, found %s", expected)
		}
		return AnaComp(c, val.Body, rho)
	case *syntax.Ctor:
		dataDecl, env, err := dataDeclAndEnv(c, expected, val)
		if err != nil {
			return err
		}
		var ctorDecl *syntax.CtorDecl
		for i := range dataDecl.Ctors {
			if dataDecl.Ctors[i].Name == val.Name {
				ctorDecl = &dataDecl.Ctors[i]
				break
			}
		}
		if ctorDecl == nil {
			return zerrors.New(zerrors.NAM004UnknownConstructor, "typing", spanOf(val),
				map[string]any{"ctor": val.Name, "type": dataDecl.Name},
				"%q is not a constructor of %s", val.Name, dataDecl.Name)
		}
		if len(ctorDecl.Args) != len(val.Args) {
			return zerrors.New(zerrors.TYC001TypeMismatch, "typing", spanOf(val),
				map[string]any{"ctor": val.Name, "expected": len(ctorDecl.Args), "found": len(val.Args)},
				"constructor %q expects %d arguments, found %d", val.Name, len(ctorDecl.Args), len(val.Args))
		}
		for i, argTy := range ctorDecl.Args {
			instantiated := ztypes.PushEnv(argTy, env)
			if err := AnaVal(c, val.Args[i], instantiated); err != nil {
				return err
			}
		}
		return nil
	case *syntax.Pack:
		ex, ok := expected.Head.(ztypes.Exists)
		if !ok {
			return zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(val),
				map[string]any{"expected": expected.String()}, "expected an existential type, found %s", expected)
		}
		if err := ztypes.AnaKind(val.Type, ex.VarKind, c.KCtx); err != nil {
			return err
		}
		body := ztypes.PushEnv(ex.Body, expected.Env)
		instantiated := substType(body, ex.Var, val.Type)
		return AnaVal(c, val.Value, instantiated)
	default:
		synthesized, err := SynVal(c, v)
		if err != nil {
			return err
		}
		if !ztypes.Equivalent(synthesized, expected) {
			return zerrors.New(zerrors.TYC003Subsumption, "typing", spanOf(v),
				map[string]any{"expected": expected.String(), "found": synthesized.String()},
				"expected type %s, found %s", expected, synthesized)
		}
		return nil
	}
}
