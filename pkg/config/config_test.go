package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Search.Permutations)
	assert.False(t, cfg.Search.ShowPartial)
	assert.Equal(t, "/usr/share/dict/words", cfg.Dict.Path)
	assert.True(t, cfg.Dict.SmallWords)
	assert.False(t, cfg.Dict.NoApostrophe)

	opts := cfg.DictionaryOptions()
	assert.True(t, opts.SmallWords)
	assert.False(t, opts.NoApostrophe)
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.toml", `
[search]
permutations = true

[dict]
path = "words.txt"
no_apostrophe = true

[cli]
max_results = 50
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Search.Permutations)
	assert.False(t, cfg.Search.ShowPartial)
	assert.Equal(t, "words.txt", cfg.Dict.Path)
	assert.True(t, cfg.Dict.NoApostrophe)
	assert.True(t, cfg.Dict.SmallWords, "unset keys keep defaults")
	assert.Equal(t, 50, cfg.CLI.MaxResults)
	assert.True(t, cfg.CLI.Color)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := writeFile(t, "config.toml", `
[search]
permutations = "yes"
show_partial = true

[cli]
max_results = 7
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.Search.Permutations, "mistyped value falls back to default")
	assert.True(t, cfg.Search.ShowPartial)
	assert.Equal(t, 7, cfg.CLI.MaxResults)
}

func TestLoadConfigGarbage(t *testing.T) {
	path := writeFile(t, "config.toml", "this is [not toml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestLoadConfigWithPriority(t *testing.T) {
	path := writeFile(t, "custom.toml", "[search]\nshow_partial = true\n")

	cfg, used, err := LoadConfigWithPriority(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.True(t, cfg.Search.ShowPartial)

	cfg, used, err = LoadConfigWithPriority(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, DefaultConfig(), cfg)
}
