package ztypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zydeco-lang/zydeco/internal/kinds"
)

func TestSynKindBuiltins(t *testing.T) {
	env := NewKindEnv()

	tests := []struct {
		name string
		typ  *Type
		want kinds.Kind
	}{
		{"Int", TInt, kinds.VType},
		{"Thunk(Ret(Int))", Thunk(Ret(TInt)), kinds.VType},
		{"Ret(Int)", Ret(TInt), kinds.CType},
		{"Fn(Int, OS)", Fn(TInt, OS()), kinds.CType},
		{"OS", OS(), kinds.CType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := SynKind(tt.typ, env)
			require.NoError(t, err)
			assert.True(t, kinds.Equivalent(tt.want, k))
		})
	}
}

func TestSynKindUnboundTypeVariable(t *testing.T) {
	_, err := SynKind(Var("nope"), NewKindEnv())
	assert.Error(t, err)
}

func TestSynKindArityMismatch(t *testing.T) {
	env := NewKindEnv()
	_, err := SynKind(Apply("Thunk"), env)
	assert.Error(t, err)

	_, err = SynKind(Apply("Int", TInt), env)
	assert.Error(t, err)
}

func TestSynKindArgumentKindMismatch(t *testing.T) {
	env := NewKindEnv()
	// Thunk expects a CType argument; Int is VType.
	_, err := SynKind(Apply("Thunk", TInt).Head.(App).Args[0], env)
	require.NoError(t, err, "Int on its own is fine")
	_, err = SynKind(Thunk(Ret(TInt)), env)
	require.NoError(t, err, "Thunk(Ret(Int)) is well-kinded")
	_, err = SynKind(Apply("Thunk", Thunk(TInt)), env)
	assert.Error(t, err, "Thunk(Thunk(Int)) puts a VType where Thunk wants CType")
}

func TestSynKindHoleRequiresAnnotationContext(t *testing.T) {
	_, err := SynKind(New(Hole{}), NewKindEnv())
	assert.Error(t, err)
}

func TestSynKindAnnotationMismatch(t *testing.T) {
	t1 := &Type{Head: App{Name: "Int"}, Kd: kinds.CType}
	_, err := SynKind(t1, NewKindEnv())
	assert.Error(t, err)
}

func TestAnaKindHoleAlwaysSucceeds(t *testing.T) {
	assert.NoError(t, AnaKind(New(Hole{}), kinds.VType, NewKindEnv()))
	assert.NoError(t, AnaKind(New(Hole{}), kinds.CType, NewKindEnv()))
}

func TestAnaKindMismatch(t *testing.T) {
	err := AnaKind(TInt, kinds.CType, NewKindEnv())
	assert.Error(t, err)
}

func TestKindEnvRegisterUserType(t *testing.T) {
	env := NewKindEnv().Register("List", kinds.New([]kinds.Kind{kinds.VType}, kinds.VType))
	k, err := SynKind(Apply("List", TInt), env)
	require.NoError(t, err)
	assert.True(t, kinds.Equivalent(kinds.VType, k))

	// The original environment is untouched (Extend/Register copy).
	_, ok := NewKindEnv().Lookup("List")
	assert.False(t, ok)
}
