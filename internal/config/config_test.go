package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with the config variables unset.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, env := range envBindings {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
	assert.Empty(t, cfg.Sheets.CredentialsJSON)
	assert.Empty(t, cfg.Gemini.APIKey)
}

func TestLoadFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("GCP_JSON_TEXT", `{"type":"service_account"}`)
	t.Setenv("PRIVATE_SHEET_URL", "https://docs.google.com/spreadsheets/d/abc/edit")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, `{"type":"service_account"}`, cfg.Sheets.CredentialsJSON)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc/edit", cfg.Sheets.SheetURL)
}

func TestLoadConfigFileWithEnvOverride(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "isaq.yaml"), []byte(`
port: "7070"
log:
  json: true
sheets:
  sheet_name: Responses
gemini:
  model: gemini-2.0-flash
`), 0o600))
	t.Setenv("PORT", "6060")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "6060", cfg.Port)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, "Responses", cfg.Sheets.SheetName)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\nSHEET_NAME=Tab\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Gemini.APIKey)
	assert.Equal(t, "Tab", cfg.Sheets.SheetName)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
