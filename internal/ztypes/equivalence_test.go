package ztypes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zydeco-lang/zydeco/internal/kinds"
)

func TestEquivalentReflexiveSymmetricTransitive(t *testing.T) {
	a := Fn(TInt, Ret(TString))
	b := Fn(TInt, Ret(TString))
	c := PushType(Fn(Var("x"), Ret(TString)), map[string]*Type{"x": TInt})

	assert.True(t, Equivalent(a, a), "reflexive")
	assert.True(t, Equivalent(a, b))
	assert.True(t, Equivalent(b, a), "symmetric")
	assert.True(t, Equivalent(a, c))
	assert.True(t, Equivalent(c, b), "transitive via a")
}

func TestEquivalentDistinguishesHeadsAndArguments(t *testing.T) {
	assert.False(t, Equivalent(TInt, TString))
	assert.False(t, Equivalent(Thunk(TInt), Ret(TInt)))
	assert.False(t, Equivalent(Fn(TInt, TString), Fn(TString, TString)))
}

func TestEquivalentForallFreshensBoundVariable(t *testing.T) {
	a := New(Forall{Var: "a", VarKind: kinds.VType, Body: Var("a")})
	b := New(Forall{Var: "b", VarKind: kinds.VType, Body: Var("b")})
	assert.True(t, Equivalent(a, b), "alpha-equivalent foralls must be equivalent")

	c := New(Forall{Var: "a", VarKind: kinds.VType, Body: TInt})
	assert.False(t, Equivalent(a, c))
}

func TestEquivalentExistsFreshensBoundVariable(t *testing.T) {
	a := New(Exists{Var: "a", VarKind: kinds.CType, Body: Var("a")})
	b := New(Exists{Var: "z", VarKind: kinds.CType, Body: Var("z")})
	assert.True(t, Equivalent(a, b))
}

func TestEquivalentHoleOnlyMatchesHole(t *testing.T) {
	assert.True(t, Equivalent(New(Hole{}), New(Hole{})))
	assert.False(t, Equivalent(New(Hole{}), TInt))
}
