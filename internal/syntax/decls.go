package syntax

import (
	"github.com/zydeco-lang/zydeco/internal/ast"
	"github.com/zydeco-lang/zydeco/internal/kinds"
	"github.com/zydeco-lang/zydeco/internal/ztypes"
)

// TypeParam is one type-level parameter of a data/codata declaration
// (`data List (a : VType) where ...`).
type TypeParam struct {
	Name string
	Kind kinds.Kind
}

// CtorDecl declares one constructor of a data type: `Ctor(τ1,...,τn)`.
type CtorDecl struct {
	Node
	Name string
	Args []*ztypes.Type
}

// DtorDecl declares one destructor of a codata type: `.dtor(τ1,...,τn) : τ`.
type DtorDecl struct {
	Node
	Name   string
	Args   []*ztypes.Type
	Result *ztypes.Type
}

// DataDecl is a `data Name (params) where { ctors }` declaration. The
// declared type itself lives at kind VType; each ctor's arity is recorded
// separately so exhaustiveness checking (spec §5, "match must cover
// exactly the declared ctor set") can compare a match's arms against
// Ctors by name.
type DataDecl struct {
	Node
	Name   string
	Params []TypeParam
	Ctors  []CtorDecl
}

// CodataDecl is a `codata Name (params) where { dtors }` declaration,
// the dual of DataDecl; the type lives at kind CType.
type CodataDecl struct {
	Node
	Name   string
	Params []TypeParam
	Dtors  []DtorDecl
}

// Define is a top-level named computation binding (`define name : τ = C`).
type Define struct {
	Node
	Name string
	Type *ztypes.Type
	Body Computation
}

// ExternDecl declares a name whose implementation is supplied by the
// primitive runtime rather than by a Zydeco body (spec §6's `extern`,
// resolved at link time against the builtin registry).
type ExternDecl struct {
	Node
	Name string
	Type *ztypes.Type
}

// Module is one compilation unit: its declarations in source order,
// plus a distinguished entry point name (checked against `OS` for `run`
// and against `Ret τ` for `repl`, per DESIGN.md's module entry point
// typing decision).
type Module struct {
	Node
	Datas   []DataDecl
	Codatas []CodataDecl
	Defines []Define
	Externs []ExternDecl
	Entry   string
}

// Program wraps one or more modules loaded together, mirroring ailang's
// multi-file program container; Zydeco fixtures are always single-module
// today, so Modules has exactly one element in practice, but the shape
// leaves room for multi-file linking without another rewrite.
type Program struct {
	Modules []*Module
}

// LookupDefine finds a top-level define by name.
func (m *Module) LookupDefine(name string) (*Define, bool) {
	for i := range m.Defines {
		if m.Defines[i].Name == name {
			return &m.Defines[i], true
		}
	}
	return nil, false
}

// LookupExtern finds a top-level extern declaration by name.
func (m *Module) LookupExtern(name string) (*ExternDecl, bool) {
	for i := range m.Externs {
		if m.Externs[i].Name == name {
			return &m.Externs[i], true
		}
	}
	return nil, false
}

// LookupData finds a data declaration by type name.
func (m *Module) LookupData(name string) (*DataDecl, bool) {
	for i := range m.Datas {
		if m.Datas[i].Name == name {
			return &m.Datas[i], true
		}
	}
	return nil, false
}

// LookupCodata finds a codata declaration by type name.
func (m *Module) LookupCodata(name string) (*CodataDecl, bool) {
	for i := range m.Codatas {
		if m.Codatas[i].Name == name {
			return &m.Codatas[i], true
		}
	}
	return nil, false
}

// CtorOwner finds which data declaration owns a constructor name, and the
// declaration for that constructor itself.
func (m *Module) CtorOwner(ctor string) (*DataDecl, *CtorDecl, bool) {
	for i := range m.Datas {
		d := &m.Datas[i]
		for j := range d.Ctors {
			if d.Ctors[j].Name == ctor {
				return d, &d.Ctors[j], true
			}
		}
	}
	return nil, nil, false
}

// DtorOwner finds which codata declaration owns a destructor name, and the
// declaration for that destructor itself.
func (m *Module) DtorOwner(dtor string) (*CodataDecl, *DtorDecl, bool) {
	for i := range m.Codatas {
		d := &m.Codatas[i]
		for j := range d.Dtors {
			if d.Dtors[j].Name == dtor {
				return d, &d.Dtors[j], true
			}
		}
	}
	return nil, nil, false
}

// span is a small helper for constructing a Node from raw positions in
// hand-built fixtures and tests, where no lexer/parser supplies one.
func span(startLine, startCol, endLine, endCol int) Node {
	return Node{NodeSpan: ast.Span{
		Start: ast.Pos{Line: startLine, Column: startCol},
		End:   ast.Pos{Line: endLine, Column: endCol},
	}}
}
