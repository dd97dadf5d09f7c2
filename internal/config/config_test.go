package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Manaskashy/callsight/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets a variable for the duration of the test while preserving the
// caller's value. t.Setenv registers the restore; Unsetenv removes the key so
// godotenv and applyEnv both see it as absent.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k) //nolint:errcheck // restored by t.Setenv cleanup
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t, "GROQ_API_KEY", "GROQ_MODEL", "CALLSIGHT_LOG_FILE", "CALLSIGHT_BASE_URL", "CALLSIGHT_ADDR")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, config.DefaultModel, cfg.Model)
	assert.Equal(t, config.DefaultLogFile, cfg.LogFile)
	assert.Equal(t, config.DefaultAddr, cfg.Addr)
	assert.Empty(t, cfg.BaseURL)
}

func TestLoad_YamlFile(t *testing.T) {
	clearEnv(t, "GROQ_API_KEY", "GROQ_MODEL", "CALLSIGHT_LOG_FILE", "CALLSIGHT_BASE_URL", "CALLSIGHT_ADDR")

	dir := t.TempDir()
	yml := "model: llama-3.3-70b-versatile\nlog_file: out/calls.csv\naddr: \":9090\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(yml), 0o600))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Model)
	assert.Equal(t, "out/calls.csv", cfg.LogFile)
	assert.Equal(t, ":9090", cfg.Addr)
}

func TestLoad_YamlInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("model: [broken"), 0o600))

	cfg, err := config.Load(dir)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.FileName)
}

func TestLoad_DotenvFile(t *testing.T) {
	clearEnv(t, "GROQ_API_KEY", "GROQ_MODEL", "CALLSIGHT_LOG_FILE", "CALLSIGHT_BASE_URL", "CALLSIGHT_ADDR")

	dir := t.TempDir()
	env := "GROQ_API_KEY=gsk_from_dotenv\nGROQ_MODEL=dotenv-model\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.EnvFileName), []byte(env), 0o600))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "gsk_from_dotenv", cfg.APIKey)
	assert.Equal(t, "dotenv-model", cfg.Model)
}

func TestLoad_EnvOverridesYaml(t *testing.T) {
	clearEnv(t, "GROQ_API_KEY", "CALLSIGHT_LOG_FILE", "CALLSIGHT_BASE_URL", "CALLSIGHT_ADDR")
	t.Setenv("GROQ_MODEL", "env-model")

	dir := t.TempDir()
	yml := "model: yaml-model\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(yml), 0o600))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "env-model", cfg.Model)
}

func TestLoad_EnvOverridesDotenv(t *testing.T) {
	clearEnv(t, "GROQ_API_KEY", "CALLSIGHT_LOG_FILE", "CALLSIGHT_BASE_URL", "CALLSIGHT_ADDR")
	t.Setenv("GROQ_MODEL", "process-model")

	dir := t.TempDir()
	env := "GROQ_MODEL=dotenv-model\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.EnvFileName), []byte(env), 0o600))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	// godotenv must not clobber variables already in the environment.
	assert.Equal(t, "process-model", cfg.Model)
}

func TestLoad_AllEnvKeys(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("GROQ_MODEL", "m")
	t.Setenv("CALLSIGHT_LOG_FILE", "f.csv")
	t.Setenv("CALLSIGHT_BASE_URL", "http://localhost:1234/v1")
	t.Setenv("CALLSIGHT_ADDR", ":7070")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "gsk_test", cfg.APIKey)
	assert.Equal(t, "m", cfg.Model)
	assert.Equal(t, "f.csv", cfg.LogFile)
	assert.Equal(t, "http://localhost:1234/v1", cfg.BaseURL)
	assert.Equal(t, ":7070", cfg.Addr)
}
