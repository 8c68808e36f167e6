package builtins

import (
	"strconv"
	"strings"

	zerrors "github.com/zydeco-lang/zydeco/internal/errors"
	"github.com/zydeco-lang/zydeco/internal/machine"
)

// registerStringMeta wires the String intrinsics.
func registerStringMeta(r *Registry) {
	r.register("string_concat", 2, func(args []machine.Value) (machine.Value, error) {
		a, err := stringArg(args[0])
		if err != nil {
			return nil, err
		}
		b, err := stringArg(args[1])
		if err != nil {
			return nil, err
		}
		return machine.StringV(a + b), nil
	})
	r.register("string_length", 1, func(args []machine.Value) (machine.Value, error) {
		s, err := stringArg(args[0])
		if err != nil {
			return nil, err
		}
		return machine.IntV(len([]rune(s))), nil
	})
	r.register("string_eq", 2, func(args []machine.Value) (machine.Value, error) {
		a, err := stringArg(args[0])
		if err != nil {
			return nil, err
		}
		b, err := stringArg(args[1])
		if err != nil {
			return nil, err
		}
		if a == b {
			return machine.IntV(1), nil
		}
		return machine.IntV(0), nil
	})
	r.register("string_of_int", 1, func(args []machine.Value) (machine.Value, error) {
		n, ok := args[0].(machine.IntV)
		if !ok {
			return nil, zerrors.New(zerrors.PRM002ArityMismatch, "primitive", nil, nil, "expected Int argument, found %s", args[0])
		}
		return machine.StringV(strconv.FormatInt(int64(n), 10)), nil
	})
	r.register("string_trim", 1, func(args []machine.Value) (machine.Value, error) {
		s, err := stringArg(args[0])
		if err != nil {
			return nil, err
		}
		return machine.StringV(strings.TrimSpace(s)), nil
	})
}

func stringArg(v machine.Value) (string, error) {
	s, ok := v.(machine.StringV)
	if !ok {
		return "", zerrors.New(zerrors.PRM002ArityMismatch, "primitive", nil, nil, "expected String argument, found %s", v)
	}
	return string(s), nil
}
