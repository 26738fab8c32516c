// SPDX-License-Identifier: MIT

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bayestree/builder"
)

// isolate moves the test into an empty repository root so auto-discovery
// finds nothing outside the temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	t.Chdir(root)
	return root
}

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestFindConfigFile_ExplicitPath(t *testing.T) {
	tmpFile := writeConfig(t, t.TempDir(), "custom.yaml", "tolerance: 0.1")

	path, err := findConfigFile(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, tmpFile, path)
}

func TestFindConfigFile_ExplicitPathNotFound(t *testing.T) {
	_, err := findConfigFile("/nonexistent/path/cliquetree.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestFindConfigFile_AutoDiscovery(t *testing.T) {
	root := isolate(t)
	configPath := writeConfig(t, root, "cliquetree.yaml", "tolerance: 0.1")

	nested := filepath.Join(root, "deep", "nested")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	path, err := findConfigFile("")
	require.NoError(t, err)

	// Resolve symlinks for comparison (macOS /var -> /private/var)
	expectedPath, _ := filepath.EvalSymlinks(configPath)
	actualPath, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, expectedPath, actualPath)
}

func TestFindConfigFile_PrefersYamlOverYml(t *testing.T) {
	root := isolate(t)
	yamlPath := writeConfig(t, root, "cliquetree.yaml", "tolerance: 0.1")
	writeConfig(t, root, "cliquetree.yml", "tolerance: 0.2")

	path, err := findConfigFile("")
	require.NoError(t, err)

	expectedPath, _ := filepath.EvalSymlinks(yamlPath)
	actualPath, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, expectedPath, actualPath)
}

func TestFindConfigFile_StopsAtGitRoot(t *testing.T) {
	outer := t.TempDir()
	writeConfig(t, outer, "cliquetree.yaml", "tolerance: 0.1")

	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	t.Chdir(repo)

	path, err := findConfigFile("")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, path, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Empty(t, path)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, LogFormatText, cfg.Log.Format)
	assert.Equal(t, KeyFormatSymbol, cfg.Keys.Format)
	assert.InDelta(t, 1e-9, cfg.Tolerance, 0)
	assert.Equal(t, GenerateConfig{
		Seed:      1,
		Shape:     "chain",
		Cliques:   8,
		Frontals:  builder.DefaultFrontals,
		Separator: builder.DefaultSeparator,
		Dim:       builder.DefaultDim,
	}, cfg.Generate)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_File(t *testing.T) {
	root := isolate(t)
	writeConfig(t, root, "cliquetree.yaml", `
log:
  level: debug
  format: json
keys:
  format: index
tolerance: 0.001
generate:
  shape: random
  cliques: 20
  seed: 7
`)

	cfg, path, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, LogFormatJSON, cfg.Log.Format)
	assert.Equal(t, KeyFormatIndex, cfg.Keys.Format)
	assert.InDelta(t, 0.001, cfg.Tolerance, 1e-15)
	assert.Equal(t, "random", cfg.Generate.Shape)
	assert.Equal(t, 20, cfg.Generate.Cliques)
	assert.Equal(t, int64(7), cfg.Generate.Seed)
	// untouched keys keep their defaults
	assert.Equal(t, builder.DefaultDim, cfg.Generate.Dim)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	root := isolate(t)
	writeConfig(t, root, "cliquetree.yaml", "generate:\n  cliques: 20\n")
	t.Setenv("CLIQUETREE_GENERATE_CLIQUES", "12")
	t.Setenv("CLIQUETREE_LOG_LEVEL", "warn")

	cfg, _, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Generate.Cliques)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("CLIQUETREE_GENERATE_CLIQUES", "12")
	t.Setenv("CLIQUETREE_GENERATE_DIM", "3")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("cliques", 0, "")
	fs.Int("dim", 0, "")
	fs.String("unrelated", "", "")
	require.NoError(t, fs.Parse([]string{"--cliques=5"}))

	cfg, _, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Generate.Cliques)
	// unset flag does not shadow the environment
	assert.Equal(t, 3, cfg.Generate.Dim)
}

func TestLoadConfig_Errors(t *testing.T) {
	isolate(t)

	_, _, err := LoadConfig("/nonexistent/cliquetree.yaml", nil)
	require.Error(t, err)

	bad := writeConfig(t, t.TempDir(), "bad.yaml", "log: [unterminated")
	_, path, err := LoadConfig(bad, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
	assert.Equal(t, bad, path)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Log:       LogConfig{Level: "info", Format: LogFormatText},
			Keys:      KeysConfig{Format: KeyFormatSymbol},
			Tolerance: 1e-9,
			Generate:  GenerateConfig{Shape: "binary", Cliques: 3, Frontals: 1, Separator: 1, Dim: 1},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"keys", func(c *Config) { c.Keys.Format = "hex" }, "keys.format"},
		{"tolerance", func(c *Config) { c.Tolerance = -1 }, "tolerance"},
		{"shape", func(c *Config) { c.Generate.Shape = "ring" }, "generate.shape"},
		{"cliques", func(c *Config) { c.Generate.Cliques = 0 }, "generate.cliques"},
		{"frontals", func(c *Config) { c.Generate.Frontals = 0 }, "generate.frontals"},
		{"separator", func(c *Config) { c.Generate.Separator = -1 }, "generate.separator"},
		{"dim", func(c *Config) { c.Generate.Dim = 0 }, "generate.dim"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestConfig_BuilderOptions(t *testing.T) {
	cfg := &Config{
		Keys:     KeysConfig{Format: KeyFormatSymbol},
		Generate: GenerateConfig{Seed: 3, Shape: "chain", Cliques: 3, Frontals: 2, Separator: 1, Dim: 1},
	}
	con := builder.Chain(3)

	root, err := builder.Build(con, cfg.BuilderOptions()...)
	require.NoError(t, err)
	require.Len(t, root.Frontals(), 2)
	assert.True(t, root.Frontals()[0].IsSymbol())
	assert.Equal(t, byte('x'), root.Frontals()[0].Chr())

	cfg.Keys.Format = KeyFormatIndex
	root, err = builder.Build(con, cfg.BuilderOptions()...)
	require.NoError(t, err)
	assert.False(t, root.Frontals()[0].IsSymbol())
}
