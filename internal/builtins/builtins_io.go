package builtins

import (
	"bufio"
	"fmt"
	"strings"

	zerrors "github.com/zydeco-lang/zydeco/internal/errors"
	"github.com/zydeco-lang/zydeco/internal/machine"
)

// registerIOMeta wires the intrinsics of the virtual OS type contract
// (spec §6): reading lines from stdin, writing to stdout, reading argv,
// and exiting with a code. Every one of these closes over the registry
// so tests can redirect Stdin/Stdout/Argv without touching the real
// process.
func registerIOMeta(r *Registry) {
	r.register("print_string", 1, func(args []machine.Value) (machine.Value, error) {
		s, err := stringArg(args[0])
		if err != nil {
			return nil, err
		}
		if _, werr := fmt.Fprint(r.Stdout, s); werr != nil {
			return nil, zerrors.New(zerrors.PRM003IOFailure, "primitive", nil, nil, "print_string: %v", werr)
		}
		return machine.IntV(0), nil
	})
	r.register("read_line", 1, func(args []machine.Value) (machine.Value, error) {
		// Arity 1 to keep every primitive curried through at least one
		// `.ap` frame; the Unit-shaped argument is ignored.
		scanner := bufio.NewScanner(r.Stdin)
		if !scanner.Scan() {
			return machine.StringV(""), nil
		}
		return machine.StringV(scanner.Text()), nil
	})
	r.register("argv_at", 1, func(args []machine.Value) (machine.Value, error) {
		n, ok := args[0].(machine.IntV)
		if !ok {
			return nil, zerrors.New(zerrors.PRM002ArityMismatch, "primitive", nil, nil, "expected Int argument, found %s", args[0])
		}
		if int(n) < 0 || int(n) >= len(r.Argv) {
			return machine.StringV(""), nil
		}
		return machine.StringV(r.Argv[int(n)]), nil
	})
	r.register("argv_count", 1, func(args []machine.Value) (machine.Value, error) {
		return machine.IntV(len(r.Argv)), nil
	})
	r.register("argv_join", 1, func(args []machine.Value) (machine.Value, error) {
		return machine.StringV(strings.Join(r.Argv, " ")), nil
	})
	r.register("exit", 1, func(args []machine.Value) (machine.Value, error) {
		code, ok := args[0].(machine.IntV)
		if !ok {
			return nil, zerrors.New(zerrors.PRM002ArityMismatch, "primitive", nil, nil, "expected Int argument, found %s", args[0])
		}
		return machine.IntV(code), nil
	})
}
