package statics

import (
	"sort"
	"strings"

	zerrors "github.com/zydeco-lang/zydeco/internal/errors"
	"github.com/zydeco-lang/zydeco/internal/syntax"
	"github.com/zydeco-lang/zydeco/internal/ztypes"
)

// checkExhaustive reports InconsistentMatchers/InconsistentCoMatchers
// unless covered is exactly the declared tag set (spec §4.3: "the set of
// covered constructors must equal the data type's constructor set,
// report unexpected and missing together").
func checkExhaustive(code, kind, typeName string, declared, covered []string, at spanner) error {
	declSet := make(map[string]bool, len(declared))
	for _, d := range declared {
		declSet[d] = true
	}
	covSet := make(map[string]bool, len(covered))
	var unexpected []string
	for _, c := range covered {
		if covSet[c] {
			continue
		}
		covSet[c] = true
		if !declSet[c] {
			unexpected = append(unexpected, c)
		}
	}
	var missing []string
	for _, d := range declared {
		if !covSet[d] {
			missing = append(missing, d)
		}
	}
	if len(unexpected) == 0 && len(missing) == 0 {
		return nil
	}
	sort.Strings(unexpected)
	sort.Strings(missing)
	return zerrors.New(code, "typing", spanOf(at),
		map[string]any{"type": typeName, "unexpected": unexpected, "missing": missing},
		"%s on %s: unexpected [%s], missing [%s]", kind, typeName,
		strings.Join(unexpected, ", "), strings.Join(missing, ", "))
}

// synMatch implements synthesis-mode `match` (spec §4.3): all arm result
// types must be pairwise equivalent; that common type is the result.
func synMatch(c *Checker, m *syntax.Match) (*ztypes.Type, error) {
	decl, env, ctors, err := matchDecl(c, m)
	if err != nil {
		return nil, err
	}
	if len(m.Arms) == 0 {
		// An arm-less match has no arm to synthesize a result type from:
		// over an uninhabited type (no constructors) it needs an
		// annotation, and over an inhabited type it is inconsistent.
		if len(decl.Ctors) == 0 {
			return nil, zerrors.New(zerrors.TYC004NeedAnnotation, "typing", spanOf(m), nil,
				"an arm-less match over an uninhabited type still needs a result type annotation")
		}
		return nil, zerrors.New(zerrors.TYC005InconsistentMatchers, "typing", spanOf(m),
			map[string]any{"type": decl.Name}, "match has no arms but %s is inhabited", decl.Name)
	}
	var common *ztypes.Type
	for i, arm := range m.Arms {
		bodyCtx, err := bindCtorArm(c, ctors, env, arm, m)
		if err != nil {
			return nil, err
		}
		t, err := SynComp(bodyCtx, arm.Body)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			common = t
			continue
		}
		if !ztypes.Equivalent(common, t) {
			return nil, zerrors.New(zerrors.TYC007InconsistentBranches, "typing", spanOf(m),
				map[string]any{"first": common.String(), "other": t.String()},
				"match arms have inconsistent result types: %s vs %s", common, t)
		}
	}
	return common, nil
}

// anaMatch implements analysis-mode `match`: each arm is checked against
// the expected type directly; no branch-equivalence check is needed.
func anaMatch(c *Checker, m *syntax.Match, expected *ztypes.Type) (*ztypes.Type, error) {
	decl, env, ctors, err := matchDecl(c, m)
	if err != nil {
		return nil, err
	}
	if len(m.Arms) == 0 && len(decl.Ctors) != 0 {
		return nil, zerrors.New(zerrors.TYC005InconsistentMatchers, "typing", spanOf(m),
			map[string]any{"type": decl.Name}, "match has no arms but %s is inhabited", decl.Name)
	}
	for _, arm := range m.Arms {
		bodyCtx, err := bindCtorArm(c, ctors, env, arm, m)
		if err != nil {
			return nil, err
		}
		if err := AnaComp(bodyCtx, arm.Body, expected); err != nil {
			return nil, err
		}
	}
	return expected, nil
}

func matchDecl(c *Checker, m *syntax.Match) (*syntax.DataDecl, ztypes.Env, []string, error) {
	tau, err := SynVal(c, m.Scrutinee)
	if err != nil {
		return nil, ztypes.Env{}, nil, err
	}
	decl, env, err := dataDeclAndEnv(c, tau, m)
	if err != nil {
		return nil, ztypes.Env{}, nil, err
	}
	declared := make([]string, len(decl.Ctors))
	for i, ct := range decl.Ctors {
		declared[i] = ct.Name
	}
	covered := make([]string, len(m.Arms))
	for i, arm := range m.Arms {
		covered[i] = arm.Ctor
	}
	if err := checkExhaustive(zerrors.TYC005InconsistentMatchers, "match", decl.Name, declared, covered, m); err != nil {
		return nil, ztypes.Env{}, nil, err
	}
	return decl, env, declared, nil
}

func bindCtorArm(c *Checker, _ []string, env ztypes.Env, arm syntax.MatchArm, at spanner) (*Checker, error) {
	_, ctorDecl, ok := c.Module.CtorOwner(arm.Ctor)
	if !ok {
		return nil, zerrors.New(zerrors.NAM004UnknownConstructor, "typing", spanOf(at),
			map[string]any{"ctor": arm.Ctor}, "%q is not a declared constructor", arm.Ctor)
	}
	if len(ctorDecl.Args) != len(arm.Vars) {
		return nil, zerrors.New(zerrors.TYC001TypeMismatch, "typing", spanOf(at),
			map[string]any{"ctor": arm.Ctor, "expected": len(ctorDecl.Args), "found": len(arm.Vars)},
			"arm for %q binds %d variables, constructor takes %d", arm.Ctor, len(arm.Vars), len(ctorDecl.Args))
	}
	terms := c.Terms
	for i, argTy := range ctorDecl.Args {
		terms = terms.Extend(arm.Vars[i], ztypes.PushEnv(argTy, env))
	}
	return c.With(terms), nil
}

// anaComatch implements `comatch`, checkable only in analysis mode
// against a codata type; it mirrors synMatch/anaMatch on the destructor
// set (spec §4.3).
func anaComatch(c *Checker, cm *syntax.CoMatch, expected *ztypes.Type) error {
	decl, env, err := codataDeclAndEnv(c, expected, cm)
	if err != nil {
		return err
	}
	declared := make([]string, len(decl.Dtors))
	for i, dt := range decl.Dtors {
		declared[i] = dt.Name
	}
	covered := make([]string, len(cm.Arms))
	for i, arm := range cm.Arms {
		covered[i] = arm.Dtor
	}
	if err := checkExhaustive(zerrors.TYC006InconsistentCoMatchers, "comatch", decl.Name, declared, covered, cm); err != nil {
		return err
	}
	for _, arm := range cm.Arms {
		var dtorDecl *syntax.DtorDecl
		for i := range decl.Dtors {
			if decl.Dtors[i].Name == arm.Dtor {
				dtorDecl = &decl.Dtors[i]
				break
			}
		}
		if dtorDecl == nil {
			return zerrors.New(zerrors.NAM003UnknownDestructor, "typing", spanOf(cm),
				map[string]any{"dtor": arm.Dtor}, "%q is not a declared destructor", arm.Dtor)
		}
		if len(dtorDecl.Args) != len(arm.Vars) {
			return zerrors.New(zerrors.TYC001TypeMismatch, "typing", spanOf(cm),
				map[string]any{"dtor": arm.Dtor, "expected": len(dtorDecl.Args), "found": len(arm.Vars)},
				"arm for %q binds %d variables, destructor takes %d", arm.Dtor, len(arm.Vars), len(dtorDecl.Args))
		}
		terms := c.Terms
		for i, argTy := range dtorDecl.Args {
			terms = terms.Extend(arm.Vars[i], ztypes.PushEnv(argTy, env))
		}
		result := ztypes.PushEnv(dtorDecl.Result, env)
		if err := AnaComp(c.With(terms), arm.Body, result); err != nil {
			return err
		}
	}
	return nil
}
