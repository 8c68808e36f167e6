package statics

import (
	"github.com/zydeco-lang/zydeco/internal/ast"
	zerrors "github.com/zydeco-lang/zydeco/internal/errors"
	"github.com/zydeco-lang/zydeco/internal/kinds"
	"github.com/zydeco-lang/zydeco/internal/syntax"
	"github.com/zydeco-lang/zydeco/internal/ztypes"
)

// spanner is satisfied by every syntax.Value/syntax.Computation.
type spanner interface {
	Span() ast.Span
}

func spanOf(s spanner) *ast.Span {
	sp := s.Span()
	return &sp
}

// headApp head-reduces t and requires its head to be a constructor
// application (as opposed to a quantifier, abstract variable, or hole).
func headApp(t *ztypes.Type) (ztypes.App, bool) {
	reduced := ztypes.HeadReduce(t)
	a, ok := reduced.Head.(ztypes.App)
	return a, ok
}

// substType substitutes name with replacement in t by pushing a single
// deferred-substitution frame (spec §9).
func substType(t *ztypes.Type, name string, replacement *ztypes.Type) *ztypes.Type {
	return ztypes.PushType(t, map[string]*ztypes.Type{name: replacement})
}

// dataDeclAndEnv head-reduces expected, requires it to be an application
// of a declared data type, and returns the declaration along with the
// substitution environment binding its declared parameters to the
// actual type arguments.
func dataDeclAndEnv(c *Checker, expected *ztypes.Type, at spanner) (*syntax.DataDecl, ztypes.Env, error) {
	app, ok := headApp(expected)
	if !ok {
		return nil, ztypes.Env{}, zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(at),
			map[string]any{"expected": expected.String()}, "expected a data type, found %s", expected)
	}
	decl, ok := c.Module.LookupData(app.Name)
	if !ok {
		return nil, ztypes.Env{}, zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(at),
			map[string]any{"name": app.Name}, "%q is not a declared data type", app.Name)
	}
	names := make([]string, len(decl.Params))
	for i, p := range decl.Params {
		names[i] = p.Name
	}
	return decl, ztypes.NewEnv(names, app.Args), nil
}

// codataDeclAndEnv is the dual of dataDeclAndEnv for codata types. `Fn`
// is a built-in codata type (spec.md §3.2's constructor table lists it
// alongside Thunk/Ret rather than giving it dedicated
// abstraction/application term syntax); it is realized here as a
// synthetic codata declaration with a single destructor `ap`, so
// function computations go through the ordinary comatch/dtor rules
// rather than needing their own Lambda/App term constructors.
func codataDeclAndEnv(c *Checker, ty *ztypes.Type, at spanner) (*syntax.CodataDecl, ztypes.Env, error) {
	app, ok := headApp(ty)
	if !ok {
		return nil, ztypes.Env{}, zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(at),
			map[string]any{"expected": ty.String()}, "expected a codata type, found %s", ty)
	}
	if decl, ok := builtinCodata(app.Name); ok {
		return decl, ztypes.NewEnv([]string{"a", "b"}, app.Args), nil
	}
	decl, ok := c.Module.LookupCodata(app.Name)
	if !ok {
		return nil, ztypes.Env{}, zerrors.New(zerrors.TYC002TypeExpected, "typing", spanOf(at),
			map[string]any{"name": app.Name}, "%q is not a declared codata type", app.Name)
	}
	names := make([]string, len(decl.Params))
	for i, p := range decl.Params {
		names[i] = p.Name
	}
	return decl, ztypes.NewEnv(names, app.Args), nil
}

// builtinCodata returns the synthetic codata declaration backing the
// named built-in computation type, if any.
func builtinCodata(name string) (*syntax.CodataDecl, bool) {
	if name != "Fn" {
		return nil, false
	}
	return &syntax.CodataDecl{
		Name: "Fn",
		Params: []syntax.TypeParam{
			{Name: "a", Kind: kinds.VType},
			{Name: "b", Kind: kinds.CType},
		},
		Dtors: []syntax.DtorDecl{
			{Name: "ap", Args: []*ztypes.Type{ztypes.Var("a")}, Result: ztypes.Var("b")},
		},
	}, true
}
