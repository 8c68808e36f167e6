package builtins

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zydeco-lang/zydeco/internal/machine"
)

func TestArithmeticPrimitives(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		args []machine.Value
		want machine.Value
	}{
		{"int_add", []machine.Value{machine.IntV(2), machine.IntV(3)}, machine.IntV(5)},
		{"int_sub", []machine.Value{machine.IntV(5), machine.IntV(3)}, machine.IntV(2)},
		{"int_mul", []machine.Value{machine.IntV(4), machine.IntV(3)}, machine.IntV(12)},
		{"int_div", []machine.Value{machine.IntV(7), machine.IntV(2)}, machine.IntV(3)},
		{"int_mod", []machine.Value{machine.IntV(7), machine.IntV(2)}, machine.IntV(1)},
		{"int_eq", []machine.Value{machine.IntV(2), machine.IntV(2)}, machine.IntV(1)},
		{"int_eq", []machine.Value{machine.IntV(2), machine.IntV(3)}, machine.IntV(0)},
		{"int_lt", []machine.Value{machine.IntV(2), machine.IntV(3)}, machine.IntV(1)},
		{"int_le", []machine.Value{machine.IntV(3), machine.IntV(3)}, machine.IntV(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Call(tt.name, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntDivByZeroFails(t *testing.T) {
	r := NewRegistry()
	_, err := r.Call("int_div", []machine.Value{machine.IntV(1), machine.IntV(0)})
	assert.Error(t, err)
	_, err = r.Call("int_mod", []machine.Value{machine.IntV(1), machine.IntV(0)})
	assert.Error(t, err)
}

func TestStringPrimitives(t *testing.T) {
	r := NewRegistry()

	got, err := r.Call("string_concat", []machine.Value{machine.StringV("foo"), machine.StringV("bar")})
	require.NoError(t, err)
	assert.Equal(t, machine.StringV("foobar"), got)

	got, err = r.Call("string_length", []machine.Value{machine.StringV("héllo")})
	require.NoError(t, err)
	assert.Equal(t, machine.IntV(5), got)

	got, err = r.Call("string_eq", []machine.Value{machine.StringV("a"), machine.StringV("a")})
	require.NoError(t, err)
	assert.Equal(t, machine.IntV(1), got)

	got, err = r.Call("string_of_int", []machine.Value{machine.IntV(42)})
	require.NoError(t, err)
	assert.Equal(t, machine.StringV("42"), got)

	got, err = r.Call("string_trim", []machine.Value{machine.StringV("  hi  ")})
	require.NoError(t, err)
	assert.Equal(t, machine.StringV("hi"), got)
}

func TestStringPrimitiveTypeMismatch(t *testing.T) {
	r := NewRegistry()
	_, err := r.Call("string_concat", []machine.Value{machine.IntV(1), machine.StringV("x")})
	assert.Error(t, err)
}

func TestIOPrimitivesAgainstRedirectedHandles(t *testing.T) {
	r := NewRegistry()
	r.Stdin = strings.NewReader("hello\n")
	out := &bytes.Buffer{}
	r.Stdout = out
	r.Argv = []string{"a", "b"}

	_, err := r.Call("print_string", []machine.Value{machine.StringV("hi")})
	require.NoError(t, err)
	assert.Equal(t, "hi", out.String())

	line, err := r.Call("read_line", []machine.Value{machine.IntV(0)})
	require.NoError(t, err)
	assert.Equal(t, machine.StringV("hello"), line)

	v, err := r.Call("argv_at", []machine.Value{machine.IntV(1)})
	require.NoError(t, err)
	assert.Equal(t, machine.StringV("b"), v)

	v, err = r.Call("argv_at", []machine.Value{machine.IntV(5)})
	require.NoError(t, err)
	assert.Equal(t, machine.StringV(""), v, "out-of-range argv index yields empty string")

	count, err := r.Call("argv_count", []machine.Value{machine.IntV(0)})
	require.NoError(t, err)
	assert.Equal(t, machine.IntV(2), count)

	joined, err := r.Call("argv_join", []machine.Value{machine.IntV(0)})
	require.NoError(t, err)
	assert.Equal(t, machine.StringV("a b"), joined)

	code, err := r.Call("exit", []machine.Value{machine.IntV(7)})
	require.NoError(t, err)
	assert.Equal(t, machine.IntV(7), code)
}

func TestRegistryArityAndUnknownPrimitive(t *testing.T) {
	r := NewRegistry()

	a, ok := r.Arity("int_add")
	assert.True(t, ok)
	assert.Equal(t, 2, a)

	_, ok = r.Arity("not_a_primitive")
	assert.False(t, ok)

	assert.True(t, r.Has("int_add"))
	assert.False(t, r.Has("not_a_primitive"))

	_, err := r.Call("not_a_primitive", nil)
	assert.Error(t, err)

	_, err = r.Call("int_add", []machine.Value{machine.IntV(1)})
	assert.Error(t, err, "wrong argument count must fail")
}

func TestApplyExternTableAliasesToExistingPrimitive(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.ApplyExternTable(map[string]string{"add": "int_add"}))

	assert.True(t, r.Has("add"))
	arity, ok := r.Arity("add")
	require.True(t, ok)
	assert.Equal(t, 2, arity)

	got, err := r.Call("add", []machine.Value{machine.IntV(2), machine.IntV(3)})
	require.NoError(t, err)
	assert.Equal(t, machine.IntV(5), got)
}

func TestApplyExternTableFailsOnUnknownTarget(t *testing.T) {
	r := NewRegistry()
	err := r.ApplyExternTable(map[string]string{"mystery": "not_a_primitive"})
	assert.Error(t, err)
}

func TestRegistryNamesCoversEveryCategory(t *testing.T) {
	r := NewRegistry()
	names := r.Names()
	for _, want := range []string{"int_add", "string_concat", "print_string", "exit"} {
		assert.Contains(t, names, want)
	}
}
