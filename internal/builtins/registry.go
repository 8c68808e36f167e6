// Package builtins implements the primitive runtime of spec §6: the
// arity-based intrinsics (arithmetic, string, I/O) that back `extern`
// declarations, plus the virtual OS type contract (stdin/stdout/argv,
// terminating in an ExitCode).
//
// Grounded on ailang's internal/eval builtin-function registry pattern
// (a package-level map populated by category-specific register*
// functions) — here adapted to the machine.PrimRegistry interface the
// abstract machine calls through.
package builtins

import (
	"io"
	"os"

	zerrors "github.com/zydeco-lang/zydeco/internal/errors"
	"github.com/zydeco-lang/zydeco/internal/machine"
)

// Func is one primitive's implementation: given its (already
// curry-collected) arguments, produce a result or fail.
type Func func(args []machine.Value) (machine.Value, error)

// Meta describes one registered primitive: its arity (how many `.ap`
// calls the machine must collect before invoking it) and its
// implementation.
type Meta struct {
	Name  string
	Arity int
	Fn    Func
}

// Registry is the primitive runtime: a name -> Meta table plus the I/O
// handles the "virtual OS" intrinsics read and write through, so a host
// embedding Zydeco (or a test) can redirect stdin/stdout/argv without
// touching the real process.
type Registry struct {
	funcs  map[string]Meta
	Stdin  io.Reader
	Stdout io.Writer
	Argv   []string
}

// NewRegistry builds a registry wired to the real process's stdin,
// stdout, and argv, with every built-in primitive category registered.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Meta), Stdin: os.Stdin, Stdout: os.Stdout, Argv: os.Args[1:]}
	registerArithmeticMeta(r)
	registerStringMeta(r)
	registerIOMeta(r)
	return r
}

func (r *Registry) register(name string, arity int, fn Func) {
	r.funcs[name] = Meta{Name: name, Arity: arity, Fn: fn}
}

// Alias registers extern so it resolves to the same Meta as target,
// letting a host rename which extern declaration backs a given
// primitive without recompiling (internal/config's extern→primitive
// wiring table feeds this).
func (r *Registry) Alias(extern, target string) error {
	m, ok := r.funcs[target]
	if !ok {
		return zerrors.New(zerrors.PRM001UnknownPrimitive, "primitive", nil,
			map[string]any{"name": target}, "cannot alias %q to unknown primitive %q", extern, target)
	}
	r.funcs[extern] = Meta{Name: extern, Arity: m.Arity, Fn: m.Fn}
	return nil
}

// ApplyExternTable aliases every extern->primitive pair in table.
func (r *Registry) ApplyExternTable(table map[string]string) error {
	for extern, target := range table {
		if err := r.Alias(extern, target); err != nil {
			return err
		}
	}
	return nil
}

// Has implements link.PrimRegistry.
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

// Arity implements machine.PrimRegistry.
func (r *Registry) Arity(name string) (int, bool) {
	m, ok := r.funcs[name]
	if !ok {
		return 0, false
	}
	return m.Arity, true
}

// Call implements machine.PrimRegistry.
func (r *Registry) Call(name string, args []machine.Value) (machine.Value, error) {
	m, ok := r.funcs[name]
	if !ok {
		return nil, zerrors.New(zerrors.PRM001UnknownPrimitive, "primitive", nil,
			map[string]any{"name": name}, "no primitive registered for %q", name)
	}
	if len(args) != m.Arity {
		return nil, zerrors.New(zerrors.PRM002ArityMismatch, "primitive", nil,
			map[string]any{"name": name, "expected": m.Arity, "found": len(args)},
			"primitive %q expects %d arguments, found %d", name, m.Arity, len(args))
	}
	return m.Fn(args)
}

// Names returns every registered primitive's name, for config/REPL
// listing.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for n := range r.funcs {
		names = append(names, n)
	}
	return names
}
