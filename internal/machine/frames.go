package machine

import "github.com/zydeco-lang/zydeco/internal/linked"

// Frame is one entry of the machine's explicit stack S.
type Frame interface {
	frameTag()
}

// DoFrame is the continuation pending on a `do x <- [] ; Body`: when a
// value is produced (by Ret or by a primitive's result), it is bound to
// Name and execution continues with Body in the closed-over Env.
type DoFrame struct {
	Name string
	Body linked.Computation
	Env  *Env
}

func (DoFrame) frameTag() {}

// DtorFrame is a pending destructor application `[].d(V̄)` with its
// argument already eagerly evaluated. It waits for the current
// computation to resolve to a matching comatch arm — or, per the
// primitive re-entry protocol, to be popped and handed to a primitive
// in argument order (spec §9).
type DtorFrame struct {
	Name string
	Args []Value
}

func (DtorFrame) frameTag() {}
