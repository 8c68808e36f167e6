package statics

import (
	zerrors "github.com/zydeco-lang/zydeco/internal/errors"
	"github.com/zydeco-lang/zydeco/internal/kinds"
	"github.com/zydeco-lang/zydeco/internal/syntax"
	"github.com/zydeco-lang/zydeco/internal/ztypes"
)

// EntryMode selects which of the two entry-point checks applies to a
// module's distinguished entry (DESIGN.md's "Module entry point typing"
// decision, resolving the ambiguity `spec.md` §4.3 leaves
// between a runnable program (`OS`) and a pure REPL expression (`Ret τ`)).
type EntryMode int

const (
	EntryRun EntryMode = iota
	EntryRepl
)

// CheckModule runs the four-pass module checker of spec §4.3 and returns
// the fully populated kind environment (data/codata names plus extern
// signatures registered) together with the term context of top-level
// defines, so callers (the linker, the REPL) can look names up without
// re-checking.
func CheckModule(m *syntax.Module, entry EntryMode) (*ztypes.KindEnv, *TermCtx, error) {
	kctx := ztypes.NewKindEnv()

	// Pass 1: register every data/codata name with its arity, failing on
	// duplicates, before any body is checked (so recursive/mutual type
	// references between declarations resolve).
	for i := range m.Datas {
		d := &m.Datas[i]
		if _, exists := kctx.Lookup(d.Name); exists {
			return nil, nil, zerrors.New(zerrors.NAM005DuplicateTypeDecl, "module", spanOf(d),
				map[string]any{"name": d.Name}, "duplicate type declaration %q", d.Name)
		}
		kctx = kctx.Register(d.Name, arityOf(d.Params, kinds.VType))
	}
	for i := range m.Codatas {
		d := &m.Codatas[i]
		if _, exists := kctx.Lookup(d.Name); exists {
			return nil, nil, zerrors.New(zerrors.NAM005DuplicateTypeDecl, "module", spanOf(d),
				map[string]any{"name": d.Name}, "duplicate type declaration %q", d.Name)
		}
		kctx = kctx.Register(d.Name, arityOf(d.Params, kinds.CType))
	}

	// Pass 2: check each data/codata body — ctor argument types must have
	// value kind, dtor argument/result types must have the kinds the
	// destructor's signature implies, and ctor/dtor tags are unique
	// within their declaration.
	for i := range m.Datas {
		d := &m.Datas[i]
		inner := paramEnv(kctx, d.Params)
		seen := map[string]bool{}
		for _, ct := range d.Ctors {
			if seen[ct.Name] {
				return nil, nil, zerrors.New(zerrors.NAM006DuplicateCtorDecl, "module", spanOf(&ct),
					map[string]any{"ctor": ct.Name, "type": d.Name}, "duplicate constructor %q in %s", ct.Name, d.Name)
			}
			seen[ct.Name] = true
			for _, argTy := range ct.Args {
				if err := ztypes.AnaKind(argTy, kinds.VType, inner); err != nil {
					return nil, nil, err
				}
			}
		}
	}
	for i := range m.Codatas {
		d := &m.Codatas[i]
		inner := paramEnv(kctx, d.Params)
		seen := map[string]bool{}
		for _, dt := range d.Dtors {
			if seen[dt.Name] {
				return nil, nil, zerrors.New(zerrors.NAM007DuplicateDtorDecl, "module", spanOf(&dt),
					map[string]any{"dtor": dt.Name, "type": d.Name}, "duplicate destructor %q in %s", dt.Name, d.Name)
			}
			seen[dt.Name] = true
			for _, argTy := range dt.Args {
				if err := ztypes.AnaKind(argTy, kinds.VType, inner); err != nil {
					return nil, nil, err
				}
			}
			if err := ztypes.AnaKind(dt.Result, kinds.CType, inner); err != nil {
				return nil, nil, err
			}
		}
	}

	// Pass 3: extend with extern signatures, each kind-checked at
	// whatever kind it synthesizes (see below). ExternDecl has no body
	// field, so there is no extern body to reject here.
	//
	// A top-level name denotes a computation (its declared type is
	// always CType), but the term context Γ only ever hands out value
	// types to a bare Var — so every top-level binding is registered as
	// a Thunk of its declared type: referencing it is `x`, invoking it
	// is `force x`, exactly like any other thunked computation.
	terms := NewTermCtx()
	for i := range m.Externs {
		ex := &m.Externs[i]
		// original_source's module.rs registers extern signatures with
		// no kind check at all; spec.md's prose calls for one, so a
		// plain SynKind validates the declared signature is well-formed
		// at whatever kind it synthesizes (Fn/OS-shaped externs are
		// CType, so forcing VType here as the prose's literal wording
		// would suggest would reject every I/O-shaped extern).
		if _, err := ztypes.SynKind(ex.Type, kctx); err != nil {
			return nil, nil, err
		}
		terms = terms.Extend(ex.Name, ztypes.Thunk(ex.Type))
	}

	// Pass 4: type-check each definition in declaration order. No mutual
	// recursion at top level beyond what `rec` provides within a single
	// definition's own body.
	checker := &Checker{Terms: terms, KCtx: kctx, Module: m}
	for i := range m.Defines {
		def := &m.Defines[i]
		if err := ztypes.AnaKind(def.Type, kinds.CType, kctx); err != nil {
			return nil, nil, err
		}
		if err := AnaComp(checker, def.Body, def.Type); err != nil {
			return nil, nil, err
		}
		checker = checker.With(checker.Terms.Extend(def.Name, ztypes.Thunk(def.Type)))
	}

	entryTy, ok := checker.Terms.Lookup(m.Entry)
	if !ok {
		return nil, nil, zerrors.New(zerrors.TYC008WrongMain, "module", spanOf(m),
			map[string]any{"entry": m.Entry}, "entry point %q is not defined", m.Entry)
	}
	entryApp, ok := headApp(entryTy)
	if !ok {
		return nil, nil, zerrors.New(zerrors.TYC008WrongMain, "module", spanOf(m),
			map[string]any{"found": entryTy.String()}, "entry point must have type OS or Ret τ, found %s", entryTy)
	}
	entryBody, ok := ztypes.ElimThunk(entryApp)
	if !ok {
		return nil, nil, zerrors.New(zerrors.TYC008WrongMain, "module", spanOf(m),
			map[string]any{"found": entryTy.String()}, "entry point must have type OS or Ret τ, found %s", entryTy)
	}
	if err := checkEntryType(entryBody, entry); err != nil {
		return nil, nil, err
	}
	return kctx, checker.Terms, nil
}

// checkEntryType implements "the module entry point must have type whose
// head is OS (for runnable programs) or Ret τ (for pure REPL
// expressions)" (spec §4.3).
func checkEntryType(t *ztypes.Type, mode EntryMode) error {
	app, ok := headApp(t)
	switch mode {
	case EntryRun:
		if !ok || !ztypes.ElimOS(app) {
			return zerrors.New(zerrors.TYC008WrongMain, "module", nil,
				map[string]any{"found": t.String()}, "entry point must have type OS, found %s", t)
		}
	case EntryRepl:
		if !ok {
			return zerrors.New(zerrors.TYC008WrongMain, "module", nil,
				map[string]any{"found": t.String()}, "entry point must have type Ret τ, found %s", t)
		}
		if _, isRet := ztypes.ElimRet(app); !isRet {
			return zerrors.New(zerrors.TYC008WrongMain, "module", nil,
				map[string]any{"found": t.String()}, "entry point must have type Ret τ, found %s", t)
		}
	}
	return nil
}

func arityOf(params []syntax.TypeParam, result kinds.Kind) kinds.Kind {
	ks := make([]kinds.Kind, len(params))
	for i, p := range params {
		ks[i] = p.Kind
	}
	return kinds.New(ks, result)
}

func paramEnv(kctx *ztypes.KindEnv, params []syntax.TypeParam) *ztypes.KindEnv {
	for _, p := range params {
		kctx = kctx.Extend(p.Name, p.Kind)
	}
	return kctx
}
