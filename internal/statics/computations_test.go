package statics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zydeco-lang/zydeco/internal/syntax"
	"github.com/zydeco-lang/zydeco/internal/ztypes"
)

func TestSynCompRet(t *testing.T) {
	c := checkerFor(&syntax.Module{}, ztypes.NewKindEnv())
	got, err := SynComp(c, syntax.RetC(syntax.IntV(1)))
	require.NoError(t, err)
	assert.True(t, ztypes.Equivalent(ztypes.Ret(ztypes.TInt), got))
}

func TestSynCompForceRequiresThunk(t *testing.T) {
	c := checkerFor(&syntax.Module{}, ztypes.NewKindEnv())
	c = c.With(c.Terms.Extend("x", ztypes.TInt))
	_, err := SynComp(c, syntax.ForceC(syntax.VarV("x")))
	assert.Error(t, err, "forcing a non-thunk must fail")

	c2 := checkerFor(&syntax.Module{}, ztypes.NewKindEnv())
	c2 = c2.With(c2.Terms.Extend("x", ztypes.Thunk(ztypes.Ret(ztypes.TInt))))
	got, err := SynComp(c2, syntax.ForceC(syntax.VarV("x")))
	require.NoError(t, err)
	assert.True(t, ztypes.Equivalent(ztypes.Ret(ztypes.TInt), got))
}

func TestSynCompLetBindsValue(t *testing.T) {
	c := checkerFor(&syntax.Module{}, ztypes.NewKindEnv())
	body := syntax.LetC("x", syntax.IntV(1), syntax.RetC(syntax.VarV("x")))
	got, err := SynComp(c, body)
	require.NoError(t, err)
	assert.True(t, ztypes.Equivalent(ztypes.Ret(ztypes.TInt), got))
}

func TestSynCompDoSequencesRetAndUnwrapsIt(t *testing.T) {
	c := checkerFor(&syntax.Module{}, ztypes.NewKindEnv())
	body := syntax.DoC("x", syntax.RetC(syntax.IntV(1)), syntax.RetC(syntax.VarV("x")))
	got, err := SynComp(c, body)
	require.NoError(t, err)
	assert.True(t, ztypes.Equivalent(ztypes.Ret(ztypes.TInt), got))
}

func TestSynCompDoRejectsNonRetComp(t *testing.T) {
	c := checkerFor(&syntax.Module{}, ztypes.NewKindEnv())
	c = c.With(c.Terms.Extend("k", ztypes.Thunk(ztypes.OS())))
	body := syntax.DoC("x", syntax.ForceC(syntax.VarV("k")), syntax.RetC(syntax.VarV("x")))
	_, err := SynComp(c, body)
	assert.Error(t, err)
}

func TestSynCompRecAndCoMatchAreNotSynthesizable(t *testing.T) {
	c := checkerFor(&syntax.Module{}, ztypes.NewKindEnv())
	_, err := SynComp(c, syntax.RecC("self", syntax.RetC(syntax.IntV(1))))
	assert.Error(t, err)

	_, err = SynComp(c, syntax.CoMatchC())
	assert.Error(t, err)
}

func TestAnaCompRecBindsSelfAsThunk(t *testing.T) {
	c := checkerFor(&syntax.Module{}, ztypes.NewKindEnv())
	rec := syntax.RecC("self", syntax.RetC(syntax.IntV(1)))
	require.NoError(t, AnaComp(c, rec, ztypes.Ret(ztypes.TInt)))
}

func TestAnaCompRecRejectsValueKindedExpected(t *testing.T) {
	c := checkerFor(&syntax.Module{}, ztypes.NewKindEnv())
	rec := syntax.RecC("self", syntax.RetC(syntax.IntV(1)))
	err := AnaComp(c, rec, ztypes.TInt)
	assert.Error(t, err)
}

func TestAnaCompSubsumptionFallback(t *testing.T) {
	c := checkerFor(&syntax.Module{}, ztypes.NewKindEnv())
	require.NoError(t, AnaComp(c, syntax.RetC(syntax.IntV(1)), ztypes.Ret(ztypes.TInt)))
	assert.Error(t, AnaComp(c, syntax.RetC(syntax.IntV(1)), ztypes.Ret(ztypes.TString)))
}

func TestDtorOnFnBuiltinAp(t *testing.T) {
	// comatch {.ap(x) -> ret x} : Fn(Int, Ret Int), then destructing it,
	// annotated with that type, with .ap(1) should synthesize Ret Int.
	c := checkerFor(&syntax.Module{}, ztypes.NewKindEnv())
	lam := syntax.LamC("x", syntax.RetC(syntax.VarV("x")))
	fnType := ztypes.Fn(ztypes.TInt, ztypes.Ret(ztypes.TInt))
	require.NoError(t, AnaComp(c, lam, fnType))

	applied := syntax.ApC(&syntax.AnnComp{Body: lam, Type: fnType}, syntax.IntV(1))
	got, err := SynComp(c, applied)
	require.NoError(t, err)
	assert.True(t, ztypes.Equivalent(ztypes.Ret(ztypes.TInt), got))
}

