package syntax

import (
	"github.com/zydeco-lang/zydeco/internal/kinds"
	"github.com/zydeco-lang/zydeco/internal/ztypes"
)

func Param(name string, k kinds.Kind) TypeParam { return TypeParam{Name: name, Kind: k} }

func CtorD(name string, args ...*ztypes.Type) CtorDecl { return CtorDecl{Name: name, Args: args} }

func DtorD(name string, result *ztypes.Type, args ...*ztypes.Type) DtorDecl {
	return DtorDecl{Name: name, Args: args, Result: result}
}

func Data(name string, params []TypeParam, ctors ...CtorDecl) DataDecl {
	return DataDecl{Name: name, Params: params, Ctors: ctors}
}

func Codata(name string, params []TypeParam, dtors ...DtorDecl) CodataDecl {
	return CodataDecl{Name: name, Params: params, Dtors: dtors}
}

func DefineC(name string, ty *ztypes.Type, body Computation) Define {
	return Define{Name: name, Type: ty, Body: body}
}

func Extern(name string, ty *ztypes.Type) ExternDecl { return ExternDecl{Name: name, Type: ty} }

// NewModule builds a module from its declarations, in the order given;
// the module checker's exhaustiveness/duplicate-name passes rely only on
// these slices, not on any original source order.
func NewModule(entry string, datas []DataDecl, codatas []CodataDecl, defines []Define, externs []ExternDecl) *Module {
	return &Module{Datas: datas, Codatas: codatas, Defines: defines, Externs: externs, Entry: entry}
}
