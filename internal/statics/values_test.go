package statics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zydeco-lang/zydeco/internal/kinds"
	"github.com/zydeco-lang/zydeco/internal/syntax"
	"github.com/zydeco-lang/zydeco/internal/ztypes"
)

func checkerFor(m *syntax.Module, kctx *ztypes.KindEnv) *Checker {
	return NewChecker(m, kctx)
}

func TestSynValVarUnbound(t *testing.T) {
	c := checkerFor(&syntax.Module{}, ztypes.NewKindEnv())
	_, err := SynVal(c, syntax.VarV("x"))
	assert.Error(t, err)
}

func TestSynValLiterals(t *testing.T) {
	c := checkerFor(&syntax.Module{}, ztypes.NewKindEnv())

	tests := []struct {
		name string
		lit  syntax.Value
		want *ztypes.Type
	}{
		{"int", syntax.IntV(1), ztypes.TInt},
		{"string", syntax.StringLitV("s"), ztypes.TString},
		{"char", syntax.CharLitV('c'), ztypes.TChar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SynVal(c, tt.lit)
			require.NoError(t, err)
			assert.True(t, ztypes.Equivalent(tt.want, got))
		})
	}
}

func TestSynValThunkSynthesizesThunkOfBody(t *testing.T) {
	c := checkerFor(&syntax.Module{}, ztypes.NewKindEnv())
	got, err := SynVal(c, syntax.ThunkV(syntax.RetC(syntax.IntV(1))))
	require.NoError(t, err)
	assert.True(t, ztypes.Equivalent(ztypes.Thunk(ztypes.Ret(ztypes.TInt)), got))
}

func TestSynValCtorRequiresAnalysisMode(t *testing.T) {
	c := checkerFor(&syntax.Module{}, ztypes.NewKindEnv())
	_, err := SynVal(c, syntax.CtorV("Zero"))
	assert.Error(t, err)
}

func dataNatModule() *syntax.Module {
	return &syntax.Module{
		Datas: []syntax.DataDecl{
			syntax.Data("Nat", nil, syntax.CtorD("Zero"), syntax.CtorD("Succ", ztypes.Apply("Nat"))),
		},
	}
}

func TestAnaValCtorChecksArityAndArgs(t *testing.T) {
	m := dataNatModule()
	kctx := ztypes.NewKindEnv().Register("Nat", kinds.New(nil, kinds.VType))
	c := checkerFor(m, kctx)

	require.NoError(t, AnaVal(c, syntax.CtorV("Zero"), ztypes.Apply("Nat")))
	require.NoError(t, AnaVal(c, syntax.CtorV("Succ", syntax.CtorV("Zero")), ztypes.Apply("Nat")))

	assert.Error(t, AnaVal(c, syntax.CtorV("Succ"), ztypes.Apply("Nat")), "missing argument")
	assert.Error(t, AnaVal(c, syntax.CtorV("Bogus"), ztypes.Apply("Nat")), "unknown constructor")
}

func TestAnaValSubsumptionMismatch(t *testing.T) {
	c := checkerFor(&syntax.Module{}, ztypes.NewKindEnv())
	err := AnaVal(c, syntax.IntV(1), ztypes.TString)
	assert.Error(t, err)
}
