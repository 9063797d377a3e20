package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapdb/internal/ai"
)

// chdir switches the working directory for one test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Profile)
	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, ai.DefaultAPIURL, cfg.AI.APIURL)
	assert.Equal(t, ai.DefaultModel, cfg.AI.Model)
	assert.Nil(t, cfg.Connection)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_FromFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	chdir(t, dir)

	writeConfig(t, dir, "leapdb.yaml", `
profile: staging
output: json
ai:
  model: qwen-max
connection:
  type: mysql
  host: db.example.com
  port: 3307
`)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Profile)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "qwen-max", cfg.AI.Model)
	// File values merge over defaults without clearing them
	assert.Equal(t, ai.DefaultAPIURL, cfg.AI.APIURL)
	require.NotNil(t, cfg.Connection)
	assert.Equal(t, "mysql", cfg.Connection.Type)
	assert.Equal(t, "db.example.com", cfg.Connection.Host)
	assert.Equal(t, 3307, cfg.Connection.Port)
	assert.Equal(t, filepath.Join(dir, "leapdb.yaml"), GetConfigFileUsed())
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	chdir(t, dir)

	path := writeConfig(t, dir, "custom.yaml", "output: csv\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.OutputFormat)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_UpwardSearch(t *testing.T) {
	ResetConfig()
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))
	writeConfig(t, root, "leapdb.yml", "profile: found-me\n")
	chdir(t, nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "found-me", cfg.Profile)
	assert.Equal(t, filepath.Join(root, "leapdb.yml"), GetConfigFileUsed())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	chdir(t, dir)

	writeConfig(t, dir, "leapdb.yaml", "output: json\n")
	t.Setenv("LEAPDB_OUTPUT", "csv")
	t.Setenv("LEAPDB_AI_MODEL", "env-model")
	t.Setenv("LEAPDB_CONNECTION_HOST", "envhost")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.OutputFormat)
	assert.Equal(t, "env-model", cfg.AI.Model)
	require.NotNil(t, cfg.Connection)
	assert.Equal(t, "envhost", cfg.Connection.Host)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	t.Setenv("LEAPDB_OUTPUT", "csv")
	t.Setenv("LEAPDB_CONNECTION_HOST", "envhost")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")
	flags.String("host", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Set("output", "md"))
	require.NoError(t, flags.Set("host", "flaghost"))
	require.NoError(t, flags.Set("log-level", "debug"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "md", cfg.OutputFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	require.NotNil(t, cfg.Connection)
	assert.Equal(t, "flaghost", cfg.Connection.Host)
}

func TestLoadConfig_UnchangedFlagsIgnored(t *testing.T) {
	ResetConfig()
	chdir(t, t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "table", "")

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	// The flag default must not shadow the config default
	assert.Equal(t, "auto", cfg.OutputFormat)
}

func TestLoadConfig_ExpandsCredentialEnvVars(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("TEST_DB_PASS", "s3cret")
	writeConfig(t, dir, "leapdb.yaml", `
connection:
  type: postgresql
  password: ${TEST_DB_PASS}
  username: ${TEST_DB_MISSING}
ai:
  api_key: ${TEST_DB_PASS}
`)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	require.NotNil(t, cfg.Connection)
	assert.Equal(t, "s3cret", cfg.Connection.Password)
	assert.Equal(t, "s3cret", cfg.AI.APIKey)
	// Unset variables keep the literal reference
	assert.Equal(t, "${TEST_DB_MISSING}", cfg.Connection.Username)
}

func TestLoadConfig_InvalidOutput(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	chdir(t, dir)

	writeConfig(t, dir, "leapdb.yaml", "output: bogus\n")

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestEnvKeyMap(t *testing.T) {
	tests := []struct {
		env      string
		expected string
	}{
		{env: "LEAPDB_OUTPUT", expected: "output"},
		{env: "LEAPDB_LOG_LEVEL", expected: "log_level"},
		{env: "LEAPDB_AI_API_KEY", expected: "ai.api_key"},
		{env: "LEAPDB_AI_MODEL", expected: "ai.model"},
		{env: "LEAPDB_CONNECTION_HOST", expected: "connection.host"},
		{env: "LEAPDB_CONNECTION_PASSWORD", expected: "connection.password"},
		{env: "LEAPDB_PROFILE", expected: "profile"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.expected, envKeyMap(tt.env))
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug", "text")
	logger.Debug("visible at debug")
	assert.Contains(t, buf.String(), "visible at debug")

	buf.Reset()
	logger = NewLogger(&buf, "warn", "json")
	logger.Info("hidden below warn")
	assert.Empty(t, buf.String())
	logger.Warn("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestGetLogger_Fallback(t *testing.T) {
	logger := GetLogger(context.Background())
	require.NotNil(t, logger)

	own := NewLogger(&bytes.Buffer{}, "info", "text")
	ctx := WithLogger(context.Background(), own)
	assert.Same(t, own, GetLogger(ctx))
}
