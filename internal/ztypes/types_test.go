package ztypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinConstructorStrings(t *testing.T) {
	tests := []struct {
		name string
		typ  *Type
		want string
	}{
		{"Thunk", Thunk(TInt), "Thunk(Int)"},
		{"Ret", Ret(TString), "Ret(String)"},
		{"Fn", Fn(TInt, Ret(TString)), "Fn(Int, Ret(String))"},
		{"OS", OS(), "OS"},
		{"bare var", Var("a"), "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestElimHelpersRoundTrip(t *testing.T) {
	inner, ok := ElimThunk(Thunk(TInt).Head.(App))
	assert.True(t, ok)
	assert.Equal(t, "Int", inner.String())

	_, ok = ElimThunk(App{Name: "Ret", Args: []*Type{TInt}})
	assert.False(t, ok)

	arg, result, ok := ElimFn(Fn(TInt, TString).Head.(App))
	assert.True(t, ok)
	assert.Equal(t, "Int", arg.String())
	assert.Equal(t, "String", result.String())

	assert.True(t, ElimOS(OS().Head.(App)))
	assert.False(t, ElimOS(App{Name: "OS", Args: []*Type{TInt}}))
}
