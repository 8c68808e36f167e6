package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zydeco-lang/zydeco/internal/linked"
)

// fakePrims is a minimal PrimRegistry standing in for internal/builtins
// in unit tests that only need one or two named primitives.
type fakePrims struct {
	arity map[string]int
	call  map[string]func([]Value) (Value, error)
}

func (f fakePrims) Arity(name string) (int, bool) {
	a, ok := f.arity[name]
	return a, ok
}

func (f fakePrims) Call(name string, args []Value) (Value, error) {
	return f.call[name](args)
}

func TestRunRetWithEmptyStack(t *testing.T) {
	globals := Globals{"main": &linked.Ret{Value: &linked.Lit{Kind: linked.IntLit, Value: int64(42)}}}
	m := New(globals, fakePrims{}, 0)
	v, err := m.Run("main")
	require.NoError(t, err)
	assert.Equal(t, IntV(42), v)
}

func TestRunLetAndDoSequencing(t *testing.T) {
	// do x <- (let y = 1 in ret y) ; ret x
	inner := &linked.Let{Name: "y", Value: &linked.Lit{Kind: linked.IntLit, Value: int64(1)},
		Body: &linked.Ret{Value: &linked.Var{Name: "y"}}}
	body := &linked.Do{Name: "x", Comp: inner, Body: &linked.Ret{Value: &linked.Var{Name: "x"}}}
	m := New(Globals{"main": body}, fakePrims{}, 0)
	v, err := m.Run("main")
	require.NoError(t, err)
	assert.Equal(t, IntV(1), v)
}

func TestRunMatchDispatchesOnCtor(t *testing.T) {
	body := &linked.Match{
		Scrutinee: &linked.Ctor{Name: "Succ", Args: []linked.Value{&linked.Lit{Kind: linked.IntLit, Value: int64(9)}}},
		Arms: []linked.MatchArm{
			{Ctor: "Zero", Body: &linked.Ret{Value: &linked.Lit{Kind: linked.IntLit, Value: int64(0)}}},
			{Ctor: "Succ", Vars: []string{"n"}, Body: &linked.Ret{Value: &linked.Var{Name: "n"}}},
		},
	}
	m := New(Globals{"main": body}, fakePrims{}, 0)
	v, err := m.Run("main")
	require.NoError(t, err)
	assert.Equal(t, IntV(9), v)
}

func TestRunMatchUnknownArmErrors(t *testing.T) {
	body := &linked.Match{
		Scrutinee: &linked.Ctor{Name: "Blue"},
		Arms:      []linked.MatchArm{{Ctor: "Red", Body: &linked.Ret{Value: &linked.Lit{Kind: linked.IntLit, Value: int64(0)}}}},
	}
	m := New(Globals{"main": body}, fakePrims{}, 0)
	_, err := m.Run("main")
	assert.Error(t, err)
}

func TestRunDtorAndCoMatch(t *testing.T) {
	// (comatch {.ap(x) -> ret x}).ap(7)
	lam := &linked.CoMatch{Arms: []linked.CoMatchArm{
		{Dtor: "ap", Vars: []string{"x"}, Body: &linked.Ret{Value: &linked.Var{Name: "x"}}},
	}}
	applied := &linked.Dtor{Body: lam, Name: "ap", Args: []linked.Value{&linked.Lit{Kind: linked.IntLit, Value: int64(7)}}}
	m := New(Globals{"main": applied}, fakePrims{}, 0)
	v, err := m.Run("main")
	require.NoError(t, err)
	assert.Equal(t, IntV(7), v)
}

func TestRunForceOfThunk(t *testing.T) {
	body := &linked.Force{Value: &linked.Thunk{Body: &linked.Ret{Value: &linked.Lit{Kind: linked.IntLit, Value: int64(5)}}}}
	m := New(Globals{"main": body}, fakePrims{}, 0)
	v, err := m.Run("main")
	require.NoError(t, err)
	assert.Equal(t, IntV(5), v)
}

func TestRunForceOnNonThunkErrors(t *testing.T) {
	body := &linked.Force{Value: &linked.Lit{Kind: linked.IntLit, Value: int64(1)}}
	m := New(Globals{"main": body}, fakePrims{}, 0)
	_, err := m.Run("main")
	assert.Error(t, err)
}

func TestRunRecBindsSelfAsThunk(t *testing.T) {
	// rec self. force self — the thunk's Env carries the binding, so
	// forcing it immediately re-enters the same Rec body; a step budget
	// of 3 is enough to observe that without looping forever.
	rec := &linked.Rec{Name: "self"}
	rec.Body = &linked.Force{Value: &linked.Var{Name: "self"}}
	m := New(Globals{"main": rec}, fakePrims{}, 3)
	_, err := m.Run("main")
	assert.Error(t, err, "step budget must be enforced on a non-terminating computation")
}

func TestRunGlobalRefResolvesToAnotherDefine(t *testing.T) {
	globals := Globals{
		"main": &linked.GlobalRef{Name: "helper"},
		"helper": &linked.Ret{Value: &linked.Lit{Kind: linked.IntLit, Value: int64(3)}},
	}
	m := New(globals, fakePrims{}, 0)
	v, err := m.Run("main")
	require.NoError(t, err)
	assert.Equal(t, IntV(3), v)
}

func TestRunGlobalRefUnknownErrors(t *testing.T) {
	m := New(Globals{"main": &linked.GlobalRef{Name: "nope"}}, fakePrims{}, 0)
	_, err := m.Run("main")
	assert.Error(t, err)
}

func TestRunPrimCollectsCurriedApArgsAndInvokes(t *testing.T) {
	// ((prim add).ap(2)).ap(3)
	prim := &linked.Prim{Name: "add"}
	applied := &linked.Dtor{Body: &linked.Dtor{Body: prim, Name: "ap", Args: []linked.Value{&linked.Lit{Kind: linked.IntLit, Value: int64(2)}}},
		Name: "ap", Args: []linked.Value{&linked.Lit{Kind: linked.IntLit, Value: int64(3)}}}
	prims := fakePrims{
		arity: map[string]int{"add": 2},
		call: map[string]func([]Value) (Value, error){
			"add": func(args []Value) (Value, error) {
				return args[0].(IntV) + args[1].(IntV), nil
			},
		},
	}
	m := New(Globals{"main": applied}, prims, 0)
	v, err := m.Run("main")
	require.NoError(t, err)
	assert.Equal(t, IntV(5), v)
}

func TestRunPrimExitProducesExitCodeRegardlessOfStack(t *testing.T) {
	applied := &linked.Dtor{Body: &linked.Prim{Name: "exit"}, Name: "ap",
		Args: []linked.Value{&linked.Lit{Kind: linked.IntLit, Value: int64(0)}}}
	prims := fakePrims{
		arity: map[string]int{"exit": 1},
		call: map[string]func([]Value) (Value, error){
			"exit": func(args []Value) (Value, error) { return args[0], nil },
		},
	}
	m := New(Globals{"main": applied}, prims, 0)
	v, err := m.Run("main")
	require.NoError(t, err)
	assert.Equal(t, ExitCodeV(0), v)
}

func TestRunUnknownEntryErrors(t *testing.T) {
	m := New(Globals{}, fakePrims{}, 0)
	_, err := m.Run("main")
	assert.Error(t, err)
}
