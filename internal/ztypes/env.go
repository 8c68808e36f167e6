package ztypes

// Env is a deferred substitution: a sequence of "diff" frames pushed onto
// a type, oldest first. Composing a new substitution δ onto an existing
// environment γ (spec §4.2: "pushing δ onto (a,k,γ) yields (a,k,δ∘γ)") is
// simply appending a frame; resolution of δ∘γ happens lazily at lookup
// time, matching spec §9's "deferred substitutions" design note.
type Env struct {
	frames []map[string]*Type
}

// Lookup resolves a variable through the composed environment. Per spec
// §4.2, δ∘γ maps x to δ(γ(x)) when x ∈ dom(γ), and to δ(x) when x is only
// in dom(δ). Frames are stored oldest-first, so we find the oldest frame
// that binds x (playing the role of γ) and push every frame pushed after
// it (playing the role of δ, applied in order) onto the result.
func (e Env) Lookup(name string) (*Type, bool) {
	for i, frame := range e.frames {
		if v, ok := frame[name]; ok {
			result := v
			for j := i + 1; j < len(e.frames); j++ {
				result = pushFrame(result, e.frames[j])
			}
			return result, true
		}
	}
	return nil, false
}

// Push composes a new substitution frame on top of this environment.
func (e Env) Push(delta map[string]*Type) Env {
	if len(delta) == 0 {
		return e
	}
	next := make([]map[string]*Type, len(e.frames)+1)
	copy(next, e.frames)
	next[len(e.frames)] = delta
	return Env{frames: next}
}

// Flatten returns the pending frames in push order, for pushing this
// whole environment onto a subterm (used by head reduction when a type
// application's arguments inherit the enclosing deferred substitution).
func (e Env) Flatten() []map[string]*Type {
	return e.frames
}

// PushType returns t with delta composed onto its environment.
func PushType(t *Type, delta map[string]*Type) *Type {
	if len(delta) == 0 {
		return t
	}
	return &Type{Head: t.Head, Kd: t.Kd, Env: t.Env.Push(delta)}
}

// pushFrame pushes a single frame onto t; PushType is the public,
// multi-frame form used by callers outside this file.
func pushFrame(t *Type, delta map[string]*Type) *Type {
	return PushType(t, delta)
}

// PushEnv pushes every frame of src onto t, in order. This is how a type
// application's enclosing environment is propagated onto its arguments
// during head reduction.
func PushEnv(t *Type, src Env) *Type {
	for _, frame := range src.frames {
		t = PushType(t, frame)
	}
	return t
}

// NewEnv builds an environment from a list of variable names and their
// instantiating types, matching positionally (used when instantiating a
// data/codata type's declared parameters against actual arguments).
func NewEnv(names []string, values []*Type) Env {
	if len(names) == 0 {
		return Env{}
	}
	delta := make(map[string]*Type, len(names))
	for i, n := range names {
		delta[n] = values[i]
	}
	return Env{}.Push(delta)
}
