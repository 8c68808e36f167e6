package statics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zydeco-lang/zydeco/internal/syntax"
	"github.com/zydeco-lang/zydeco/internal/ztypes"
)

func TestCheckModuleRetFortyTwo(t *testing.T) {
	m := syntax.NewModule("main", nil, nil,
		[]syntax.Define{syntax.DefineC("main", ztypes.Ret(ztypes.TInt), syntax.RetC(syntax.IntV(42)))}, nil)
	_, _, err := CheckModule(m, EntryRepl)
	require.NoError(t, err)
}

func TestCheckModuleWrongMainUnderEntryRun(t *testing.T) {
	m := syntax.NewModule("main", nil, nil,
		[]syntax.Define{syntax.DefineC("main", ztypes.Ret(ztypes.TInt), syntax.RetC(syntax.IntV(42)))}, nil)
	_, _, err := CheckModule(m, EntryRun)
	assert.Error(t, err)
}

func TestCheckModuleMissingEntry(t *testing.T) {
	m := syntax.NewModule("main", nil, nil, nil, nil)
	_, _, err := CheckModule(m, EntryRepl)
	assert.Error(t, err)
}

func TestCheckModuleDuplicateDataDecl(t *testing.T) {
	m := syntax.NewModule("main",
		[]syntax.DataDecl{syntax.Data("Nat", nil, syntax.CtorD("Zero")), syntax.Data("Nat", nil, syntax.CtorD("Zero"))},
		nil,
		[]syntax.Define{syntax.DefineC("main", ztypes.Ret(ztypes.TInt), syntax.RetC(syntax.IntV(0)))}, nil)
	_, _, err := CheckModule(m, EntryRepl)
	assert.Error(t, err)
}

func TestCheckModuleDuplicateCtor(t *testing.T) {
	m := syntax.NewModule("main",
		[]syntax.DataDecl{syntax.Data("Nat", nil, syntax.CtorD("Zero"), syntax.CtorD("Zero"))},
		nil,
		[]syntax.Define{syntax.DefineC("main", ztypes.Ret(ztypes.TInt), syntax.RetC(syntax.IntV(0)))}, nil)
	_, _, err := CheckModule(m, EntryRepl)
	assert.Error(t, err)
}

func TestCheckModuleExternIsThunkedInTermCtx(t *testing.T) {
	externs := []syntax.ExternDecl{
		syntax.Extern("read_int", ztypes.Fn(ztypes.TInt, ztypes.Ret(ztypes.TInt))),
	}
	m := syntax.NewModule("main", nil, nil,
		[]syntax.Define{syntax.DefineC("main", ztypes.Ret(ztypes.TInt), syntax.RetC(syntax.IntV(0)))}, externs)
	_, terms, err := CheckModule(m, EntryRepl)
	require.NoError(t, err)
	bound, ok := terms.Lookup("read_int")
	require.True(t, ok)
	assert.True(t, ztypes.Equivalent(ztypes.Thunk(ztypes.Fn(ztypes.TInt, ztypes.Ret(ztypes.TInt))), bound))
}

func TestCheckModuleLaterDefineForcesEarlierDefine(t *testing.T) {
	m := syntax.NewModule("main", nil, nil,
		[]syntax.Define{
			syntax.DefineC("fortyTwo", ztypes.Ret(ztypes.TInt), syntax.RetC(syntax.IntV(42))),
			syntax.DefineC("main", ztypes.Ret(ztypes.TInt), syntax.ForceC(syntax.VarV("fortyTwo"))),
		}, nil)
	_, terms, err := CheckModule(m, EntryRepl)
	require.NoError(t, err)
	bound, ok := terms.Lookup("fortyTwo")
	require.True(t, ok)
	assert.True(t, ztypes.Equivalent(ztypes.Thunk(ztypes.Ret(ztypes.TInt)), bound))
}

func TestCheckModuleExternOSShapedSignatureIsAccepted(t *testing.T) {
	externs := []syntax.ExternDecl{
		syntax.Extern("exit", ztypes.Fn(ztypes.TInt, ztypes.OS())),
	}
	m := syntax.NewModule("main", nil, nil,
		[]syntax.Define{syntax.DefineC("main", ztypes.Ret(ztypes.TInt), syntax.RetC(syntax.IntV(0)))}, externs)
	_, _, err := CheckModule(m, EntryRepl)
	require.NoError(t, err)
}
