package builtins

import (
	zerrors "github.com/zydeco-lang/zydeco/internal/errors"
	"github.com/zydeco-lang/zydeco/internal/machine"
)

// registerArithmeticMeta wires the Int arithmetic/comparison intrinsics;
// each is a curried two-argument primitive returning a single Int
// (comparisons return 0/1, matching the absence of a dedicated Bool type
// in this profile of the language — callers pattern-match the result
// against a user-declared Bool-shaped data type, as spec §8's even/odd
// scenario does via codata, not via these intrinsics directly).
func registerArithmeticMeta(r *Registry) {
	r.register("int_add", 2, intBinOp(func(a, b int64) int64 { return a + b }))
	r.register("int_sub", 2, intBinOp(func(a, b int64) int64 { return a - b }))
	r.register("int_mul", 2, intBinOp(func(a, b int64) int64 { return a * b }))
	r.register("int_div", 2, func(args []machine.Value) (machine.Value, error) {
		a, b, err := intArgs(args)
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return nil, zerrors.New(zerrors.PRM003IOFailure, "primitive", nil, nil, "int_div by zero")
		}
		return machine.IntV(a / b), nil
	})
	r.register("int_mod", 2, func(args []machine.Value) (machine.Value, error) {
		a, b, err := intArgs(args)
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return nil, zerrors.New(zerrors.PRM003IOFailure, "primitive", nil, nil, "int_mod by zero")
		}
		return machine.IntV(a % b), nil
	})
	r.register("int_eq", 2, intBoolOp(func(a, b int64) bool { return a == b }))
	r.register("int_lt", 2, intBoolOp(func(a, b int64) bool { return a < b }))
	r.register("int_le", 2, intBoolOp(func(a, b int64) bool { return a <= b }))
}

func intArgs(args []machine.Value) (int64, int64, error) {
	a, ok := args[0].(machine.IntV)
	if !ok {
		return 0, 0, zerrors.New(zerrors.PRM002ArityMismatch, "primitive", nil, nil, "expected Int argument, found %s", args[0])
	}
	b, ok := args[1].(machine.IntV)
	if !ok {
		return 0, 0, zerrors.New(zerrors.PRM002ArityMismatch, "primitive", nil, nil, "expected Int argument, found %s", args[1])
	}
	return int64(a), int64(b), nil
}

func intBinOp(op func(a, b int64) int64) Func {
	return func(args []machine.Value) (machine.Value, error) {
		a, b, err := intArgs(args)
		if err != nil {
			return nil, err
		}
		return machine.IntV(op(a, b)), nil
	}
}

func intBoolOp(op func(a, b int64) bool) Func {
	return func(args []machine.Value) (machine.Value, error) {
		a, b, err := intArgs(args)
		if err != nil {
			return nil, err
		}
		if op(a, b) {
			return machine.IntV(1), nil
		}
		return machine.IntV(0), nil
	}
}
