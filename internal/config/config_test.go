package config

import (
	"errors"
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/screensplit/internal/model"
)

// writeFile creates a file with the given contents inside dir.
func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// TestLoad_Defaults verifies that running without any source yields the
// reference layout.
func TestLoad_Defaults(t *testing.T) {
	l, path, err := Load(New(), "", t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, path, "no config file should be reported")
	assert.Equal(t, model.DefaultLayout(), l)
}

// TestLoad_YAML verifies that a discovered YAML file overrides defaults
// while unset keys keep their default values.
func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "screensplit.yaml", "width: 3840\nservers: 32\nnetwork: \"fd00:1::/64\"\n")

	l, path, err := Load(New(), "", dir)
	require.NoError(t, err)

	assert.Equal(t, want, path)
	assert.Equal(t, 3840, l.Width)
	assert.Equal(t, 1080, l.Height)
	assert.Equal(t, 32, l.Servers)
	assert.Equal(t, netip.MustParsePrefix("fd00:1::/64"), l.Network)
}

// TestLoad_JSONC verifies that comments and trailing commas are accepted
// in JSON config files.
func TestLoad_JSONC(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "wall.jsonc", `{
  // eight servers for the small wall
  "servers": 8,
  /* 720p */
  "width": 1280,
  "height": 720,
}`)

	l, used, err := Load(New(), path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, path, used)
	assert.Equal(t, 8, l.Servers)
	assert.Equal(t, 1280, l.Width)
	assert.Equal(t, 720, l.Height)
}

// TestLoad_EnvOverridesFile verifies that SCREENSPLIT_* variables take
// precedence over the config file.
func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "screensplit.yml", "servers: 8\n")
	t.Setenv("SCREENSPLIT_SERVERS", "4")
	t.Setenv("SCREENSPLIT_NETWORK", "2001:db8:1:2::/64")

	l, _, err := Load(New(), "", dir)
	require.NoError(t, err)

	assert.Equal(t, 4, l.Servers)
	assert.Equal(t, netip.MustParsePrefix("2001:db8:1:2::/64"), l.Network)
}

// TestLoad_DotEnv verifies that a .env file feeds the environment layer.
func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "SCREENSPLIT_HEIGHT=2160\n")
	t.Cleanup(func() { _ = os.Unsetenv("SCREENSPLIT_HEIGHT") })

	l, _, err := Load(New(), "", dir)
	require.NoError(t, err)
	assert.Equal(t, 2160, l.Height)
}

// TestLoad_InvalidNetwork verifies that an unparsable prefix is reported
// as a configuration error.
func TestLoad_InvalidNetwork(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "screensplit.yaml", "network: not-a-network\n")

	_, _, err := Load(New(), "", dir)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfigError, cliErr.Code)
}

// TestReadFile_Errors covers missing files, unknown extensions and
// malformed content.
func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	err := ReadFile(New(), filepath.Join(dir, "missing.yaml"))
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfigError, cliErr.Code)

	err = ReadFile(New(), writeFile(t, dir, "wall.toml", "servers = 8\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file type")

	err = ReadFile(New(), writeFile(t, dir, "broken.json", `{"servers": `))
	assert.Error(t, err)
}

// TestFindConfigFile verifies the candidate search order.
func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()

	_, err := FindConfigFile(dir)
	assert.ErrorIs(t, err, ErrConfigNotFound)

	jsonPath := writeFile(t, dir, "screensplit.json", `{}`)
	path, err := FindConfigFile(dir)
	require.NoError(t, err)
	assert.Equal(t, jsonPath, path)

	yamlPath := writeFile(t, dir, "screensplit.yaml", "{}\n")
	path, err = FindConfigFile(dir)
	require.NoError(t, err)
	assert.Equal(t, yamlPath, path, "yaml takes precedence over json")
}
