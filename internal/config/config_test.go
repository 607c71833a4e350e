package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/creachadair/jparse/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DefaultValues(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ast.DefaultMaxDepth, cfg.MaxDepth)
	assert.False(t, cfg.JWCC)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.False(t, cfg.Output.Compact)
	assert.Equal(t, "  ", cfg.Output.Indent)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
max_depth: 64
jwcc: true
color: never
output:
  compact: true
  indent: "\t"
`
	path := filepath.Join(t.TempDir(), "jparse.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.MaxDepth)
	assert.True(t, cfg.JWCC)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.True(t, cfg.Output.Compact)
	assert.Equal(t, "\t", cfg.Output.Indent)
}

func TestConfig_PartialYAML(t *testing.T) {
	cfg, err := Parse([]byte("jwcc: true\n"))
	require.NoError(t, err)

	// Settings not mentioned keep their defaults.
	assert.True(t, cfg.JWCC)
	assert.Equal(t, ast.DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, "  ", cfg.Output.Indent)
}

func TestConfig_EmptyYAML(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestConfig_LoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestConfig_LoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonesuch.yml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"UnknownField", "max_dpeth: 3\n", "max_dpeth"},
		{"NegativeDepth", "max_depth: -1\n", "max_depth must be non-negative"},
		{"BadColor", "color: sometimes\n", "color must be"},
		{"BadIndent", "output:\n  indent: \"--\"\n", "output.indent"},
		{"BadType", "jwcc: [1, 2]\n", "parse config"},
		{"Malformed", "max_depth: [\n", "parse config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Default()
	cfg.Color = ""
	assert.NoError(t, cfg.Validate())

	cfg.MaxDepth = 0
	assert.NoError(t, cfg.Validate())

	cfg.Output.Indent = " \t "
	assert.NoError(t, cfg.Validate())

	cfg.Output.Indent = "x"
	assert.Error(t, cfg.Validate())
}
