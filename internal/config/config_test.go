package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zydeco.yaml")
	require.NoError(t, os.WriteFile(path, []byte("step_budget: 500\ncolor: false\nprompt: \"λ> \"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.StepBudget)
	assert.False(t, cfg.Color)
	assert.Equal(t, "λ> ", cfg.Prompt)
}

func TestLoadExternWiringTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zydeco.yaml")
	require.NoError(t, os.WriteFile(path, []byte("externs:\n  add: int_add\n  concat: string_concat\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"add": "int_add", "concat": "string_concat"}, cfg.Externs)
}
