package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/scopecheck/internal/config"
)

func TestConfigInit_Stdout(t *testing.T) {
	home := testEnv(t)

	code, stdout, _ := run(t, "config", "init", "-s")

	require.Equal(t, 0, code)
	assert.Equal(t, config.DefaultConfig(), stdout)
	assert.NoFileExists(t, filepath.Join(home, ".config", "scopecheck", "config.toml"))
}

func TestConfigInit_WritesFile(t *testing.T) {
	home := testEnv(t)
	path := filepath.Join(home, ".config", "scopecheck", "config.toml")

	code, _, stderr := run(t, "config", "init")
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stderr, "Created config file: "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), string(data))

	code, _, stderr = run(t, "config", "init")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "config file already exists")

	code, _, _ = run(t, "config", "init", "-f")
	assert.Equal(t, 0, code)
}

func TestConfigShow(t *testing.T) {
	testEnv(t)

	code, stdout, _ := run(t, "config", "show")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "(none, using defaults)")
	assert.Contains(t, stdout, "format: text")
	assert.Contains(t, stdout, "theme.name: default")
	assert.Contains(t, stdout, "hints.enabled: true")
}

func TestConfigShow_JSON(t *testing.T) {
	home := testEnv(t)
	path := filepath.Join(home, ".config", "scopecheck", "config.toml")
	writeFile(t, path, "format = \"json\"\n\n[theme]\nname = \"nord\"\nmode = \"dark\"\n")

	code, stdout, _ := run(t, "config", "show", "--json")
	require.Equal(t, 0, code)

	var got config.Config
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "json", got.Format)
	assert.Equal(t, "nord", got.Theme.Name)
	assert.Equal(t, path, got.Path)
}

func TestConfigShow_ThemeFlag(t *testing.T) {
	testEnv(t)

	code, stdout, _ := run(t, "config", "show", "--theme", "none")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "theme.name: none")
}

func TestCompletion(t *testing.T) {
	testEnv(t)

	code, stdout, _ := run(t, "completion", "bash")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "scopecheck")
}
