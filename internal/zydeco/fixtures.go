package zydeco

import (
	"sort"

	"github.com/zydeco-lang/zydeco/internal/syntax"
	"github.com/zydeco-lang/zydeco/internal/ztypes"
)

// This file hand-builds the end-to-end scenarios of spec §8 directly as
// internal/syntax modules, standing in for the missing surface parser
// (spec.md §1 places lexing/parsing out of scope): these double as CLI
// demo programs and as the fixtures the package tests exercise.

// externArgs returns the curried Fn ladder Fn(a1, Fn(a2, ..., Fn(an, result))),
// the type every registered primitive must have so its `.ap` chain type-checks
// one argument at a time (internal/statics's Dtor rule).
func externArgs(result *ztypes.Type, args ...*ztypes.Type) *ztypes.Type {
	t := result
	for i := len(args) - 1; i >= 0; i-- {
		t = ztypes.Fn(args[i], t)
	}
	return t
}

// call builds `force name .ap(arg1).ap(arg2)...`, the curried application
// of a top-level (extern or define) name to a sequence of value arguments.
func call(name string, args ...syntax.Value) syntax.Computation {
	var c syntax.Computation = syntax.ForceC(syntax.VarV(name))
	for _, a := range args {
		c = syntax.ApC(c, a)
	}
	return c
}

// nat builds the Peano literal Succ^n(Zero).
func nat(n int) syntax.Value {
	v := syntax.Value(syntax.CtorV("Zero"))
	for i := 0; i < n; i++ {
		v = syntax.CtorV("Succ", v)
	}
	return v
}

var (
	tyNat  = ztypes.Apply("Nat")
	tyBool = ztypes.Apply("Bool")
)

func dataNat() syntax.DataDecl {
	return syntax.Data("Nat", nil,
		syntax.CtorD("Zero"),
		syntax.CtorD("Succ", tyNat),
	)
}

func dataBool() syntax.DataDecl {
	return syntax.Data("Bool", nil,
		syntax.CtorD("True"),
		syntax.CtorD("False"),
	)
}

// RetFortyTwo is scenario 1: `ret 42`, a pure REPL expression with no
// declarations at all.
func RetFortyTwo() *ZydecoExpr {
	m := syntax.NewModule("main", nil, nil,
		[]syntax.Define{
			syntax.DefineC("main", ztypes.Ret(ztypes.TInt), syntax.RetC(syntax.IntV(42))),
		}, nil)
	return &ZydecoExpr{Module: m}
}

// Echo is scenario 2: read one line from stdin (the terminal `\n` is
// consumed by the reader), write it back with the newline restored, then
// exit 0.
func Echo() *ZydecoFile {
	externs := []syntax.ExternDecl{
		syntax.Extern("read_line", externArgs(ztypes.Ret(ztypes.TString), ztypes.TInt)),
		syntax.Extern("string_concat", externArgs(ztypes.Ret(ztypes.TString), ztypes.TString, ztypes.TString)),
		syntax.Extern("print_string", externArgs(ztypes.Ret(ztypes.TInt), ztypes.TString)),
		syntax.Extern("exit", externArgs(ztypes.OS(), ztypes.TInt)),
	}
	body := syntax.DoC("line", call("read_line", syntax.IntV(0)),
		syntax.DoC("withNL", call("string_concat", syntax.VarV("line"), syntax.StringLitV("\n")),
			syntax.DoC("_", call("print_string", syntax.VarV("withNL")),
				call("exit", syntax.IntV(0)))))
	m := syntax.NewModule("main", nil, nil,
		[]syntax.Define{syntax.DefineC("main", ztypes.OS(), body)}, externs)
	return &ZydecoFile{Module: m}
}

// PrintArgs is scenario 3: print each of the two argv entries on its own
// line, then exit 0.
func PrintArgs() *ZydecoFile {
	externs := []syntax.ExternDecl{
		syntax.Extern("argv_at", externArgs(ztypes.Ret(ztypes.TString), ztypes.TInt)),
		syntax.Extern("string_concat", externArgs(ztypes.Ret(ztypes.TString), ztypes.TString, ztypes.TString)),
		syntax.Extern("print_string", externArgs(ztypes.Ret(ztypes.TInt), ztypes.TString)),
		syntax.Extern("exit", externArgs(ztypes.OS(), ztypes.TInt)),
	}
	printArgLine := func(index int, next syntax.Computation) syntax.Computation {
		argName := "a" + itoa(index)
		lineName := "line" + itoa(index)
		printName := "_p" + itoa(index)
		return syntax.DoC(argName, call("argv_at", syntax.IntV(int64(index))),
			syntax.DoC(lineName, call("string_concat", syntax.VarV(argName), syntax.StringLitV("\n")),
				syntax.DoC(printName, call("print_string", syntax.VarV(lineName)), next)))
	}
	body := printArgLine(0, printArgLine(1, call("exit", syntax.IntV(0))))
	m := syntax.NewModule("main", nil, nil,
		[]syntax.Define{syntax.DefineC("main", ztypes.OS(), body)}, externs)
	return &ZydecoFile{Module: m}
}

// itoa avoids importing strconv for the small argument indices (0 and 1)
// this fixture ever needs.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// EvenOdd is scenario 4: a pair of mutually recursive destructors built
// as one `rec` over a codata record; feeding 4 to `.even` yields True,
// feeding 3 yields False.
func EvenOdd(input int) *ZydecoExpr {
	codata := syntax.Codata("EvenOdd", nil,
		syntax.DtorD("even", ztypes.Ret(tyBool), tyNat),
		syntax.DtorD("odd", ztypes.Ret(tyBool), tyNat),
	)
	recBody := syntax.RecC("self", syntax.CoMatchC(
		syntax.CoArm("even", []string{"n"}, syntax.MatchC(syntax.VarV("n"),
			syntax.Arm("Zero", nil, syntax.RetC(syntax.CtorV("True"))),
			syntax.Arm("Succ", []string{"m"}, syntax.DtorC(syntax.ForceC(syntax.VarV("self")), "odd", syntax.VarV("m"))),
		)),
		syntax.CoArm("odd", []string{"n"}, syntax.MatchC(syntax.VarV("n"),
			syntax.Arm("Zero", nil, syntax.RetC(syntax.CtorV("False"))),
			syntax.Arm("Succ", []string{"m"}, syntax.DtorC(syntax.ForceC(syntax.VarV("self")), "even", syntax.VarV("m"))),
		)),
	))
	body := syntax.LetC("eo", syntax.ThunkV(&syntax.AnnComp{Body: recBody, Type: ztypes.Apply("EvenOdd")}),
		syntax.DtorC(syntax.ForceC(syntax.VarV("eo")), "even", nat(input)))
	m := syntax.NewModule("main", []syntax.DataDecl{dataNat(), dataBool()}, []syntax.CodataDecl{codata},
		[]syntax.Define{syntax.DefineC("main", ztypes.Ret(tyBool), body)}, nil)
	return &ZydecoExpr{Module: m}
}

// MatchMissingArm is scenario 5: a three-constructor data type matched
// by only two arms; Check must fail with InconsistentMatchers naming the
// missing constructor.
func MatchMissingArm() *ZydecoExpr {
	color := syntax.Data("Color", nil,
		syntax.CtorD("Red"), syntax.CtorD("Green"), syntax.CtorD("Blue"))
	body := syntax.MatchC(&syntax.AnnValue{Value: syntax.CtorV("Red"), Type: ztypes.Apply("Color")},
		syntax.Arm("Red", nil, syntax.RetC(syntax.IntV(0))),
		syntax.Arm("Green", nil, syntax.RetC(syntax.IntV(1))),
	)
	m := syntax.NewModule("main", []syntax.DataDecl{color}, nil,
		[]syntax.Define{syntax.DefineC("main", ztypes.Ret(ztypes.TInt), body)}, nil)
	return &ZydecoExpr{Module: m}
}

// WrongMain is scenario 6: an entry point of type Ret Int submitted to
// the file runner, which requires OS; Check must fail with WrongMain.
func WrongMain() *ZydecoFile {
	m := syntax.NewModule("main", nil, nil,
		[]syntax.Define{
			syntax.DefineC("main", ztypes.Ret(ztypes.TInt), syntax.RetC(syntax.IntV(42))),
		}, nil)
	return &ZydecoFile{Module: m}
}

// Catalog names every built-in scenario so a host (the REPL, the CLI)
// can list and load one without constructing it by hand — there being no
// surface parser to load a program from source text (spec.md §1).
func Catalog() map[string]func() Runnable {
	return map[string]func() Runnable{
		"ret-42":            func() Runnable { return RetFortyTwo() },
		"echo":              func() Runnable { return Echo() },
		"print-args":        func() Runnable { return PrintArgs() },
		"even-odd-4":        func() Runnable { return EvenOdd(4) },
		"even-odd-3":        func() Runnable { return EvenOdd(3) },
		"match-missing-arm": func() Runnable { return MatchMissingArm() },
		"wrong-main":        func() Runnable { return WrongMain() },
	}
}

// CatalogNames returns Catalog's keys in sorted order, for stable listing.
func CatalogNames() []string {
	catalog := Catalog()
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
