package ztypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadReduceBareVariable(t *testing.T) {
	bound := PushType(Var("x"), map[string]*Type{"x": TInt})
	assert.Equal(t, "Int", HeadReduce(bound).String())
}

func TestHeadReduceUnboundVariableIsStuck(t *testing.T) {
	assert.Equal(t, "x", HeadReduce(Var("x")).String())
}

func TestHeadReducePropagatesEnvIntoArgs(t *testing.T) {
	// Fn(x, Ret(x)) with x := Int pending: reducing the head shouldn't
	// resolve the arguments eagerly, but the pending substitution must
	// still be visible once each argument is itself head-reduced.
	fn := PushType(Fn(Var("x"), Ret(Var("x"))), map[string]*Type{"x": TInt})
	reduced := HeadReduce(fn)
	arg, result, ok := ElimFn(reduced.Head.(App))
	assert.True(t, ok)
	assert.Equal(t, "Int", HeadReduce(arg).String())
	innerArg, ok := ElimRet(HeadReduce(result).Head.(App))
	assert.True(t, ok)
	assert.Equal(t, "Int", HeadReduce(innerArg).String())
}

func TestIsIdempotent(t *testing.T) {
	assert.True(t, IsIdempotent(Thunk(TInt)))
	bound := PushType(Var("x"), map[string]*Type{"x": TString})
	assert.True(t, IsIdempotent(bound))
}
