package machine

// Env is a persistent, immutable environment mapping term variables to
// runtime values, extended by copy-on-write (spec §4.5: "persistent
// immutable environment").
type Env struct {
	parent *Env
	name   string
	value  Value
}

// EmptyEnv is the environment with no bindings, used for top-level
// global computations (which close over nothing but other globals).
var EmptyEnv = &Env{}

func (e *Env) Extend(name string, v Value) *Env {
	return &Env{parent: e, name: name, value: v}
}

func (e *Env) Lookup(name string) (Value, bool) {
	for cur := e; cur != nil && cur.parent != nil; cur = cur.parent {
		if cur.name == name {
			return cur.value, true
		}
	}
	return nil, false
}
