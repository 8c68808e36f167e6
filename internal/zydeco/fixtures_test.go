package zydeco

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zydeco-lang/zydeco/internal/builtins"
	"github.com/zydeco-lang/zydeco/internal/machine"
)

func newRegistry(stdin string, argv []string) *builtins.Registry {
	r := builtins.NewRegistry()
	r.Stdin = strings.NewReader(stdin)
	r.Stdout = &bytes.Buffer{}
	r.Argv = argv
	return r
}

// TestRetFortyTwo covers spec §8 scenario 1.
func TestRetFortyTwo(t *testing.T) {
	expr := RetFortyTwo()
	require.NoError(t, expr.Check())

	v, err := expr.Run(newRegistry("", nil), DefaultStepBudget)
	require.NoError(t, err)
	assert.Equal(t, machine.IntV(42), v)
}

// TestEcho covers spec §8 scenario 2: stdin "hello\n" echoed to stdout,
// exit code 0.
func TestEcho(t *testing.T) {
	file := Echo()
	require.NoError(t, file.Check())

	reg := newRegistry("hello\n", nil)
	v, err := file.Run(reg, DefaultStepBudget)
	require.NoError(t, err)
	assert.Equal(t, machine.ExitCodeV(0), v)
	assert.Equal(t, "hello\n", reg.Stdout.(*bytes.Buffer).String())
}

// TestPrintArgs covers spec §8 scenario 3: argv = ["hello", "world"]
// printed one per line, exit code 0.
func TestPrintArgs(t *testing.T) {
	file := PrintArgs()
	require.NoError(t, file.Check())

	reg := newRegistry("", []string{"hello", "world"})
	v, err := file.Run(reg, DefaultStepBudget)
	require.NoError(t, err)
	assert.Equal(t, machine.ExitCodeV(0), v)
	assert.Equal(t, "hello\nworld\n", reg.Stdout.(*bytes.Buffer).String())
}

// TestEvenOdd covers spec §8 scenario 4: the mutually recursive
// `.even`/`.odd` destructors over a `rec`-bound codata record.
func TestEvenOdd(t *testing.T) {
	cases := []struct {
		input int
		want  string
	}{
		{4, "True"},
		{3, "False"},
	}
	for _, tc := range cases {
		expr := EvenOdd(tc.input)
		require.NoError(t, expr.Check())

		v, err := expr.Run(newRegistry("", nil), DefaultStepBudget)
		require.NoError(t, err)
		ctor, ok := v.(*machine.CtorV)
		require.True(t, ok, "expected a constructor value, got %T", v)
		assert.Equal(t, tc.want, ctor.Name)
	}
}

// TestMatchMissingArm covers spec §8 scenario 5: Check must fail with
// InconsistentMatchers naming the uncovered constructor.
func TestMatchMissingArm(t *testing.T) {
	err := MatchMissingArm().Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Blue")
}

// TestWrongMain covers spec §8 scenario 6: an entry of type Ret Int
// submitted to the file runner must fail with WrongMain.
func TestWrongMain(t *testing.T) {
	err := WrongMain().Check()
	require.Error(t, err)
}
