package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExpandEnvVars tests the expandEnvVars function.
func TestExpandEnvVars(t *testing.T) {
	require.NoError(t, os.Setenv("TEST_VAR_ONE", "value_one"))
	require.NoError(t, os.Setenv("TEST_VAR_TWO", "value_two"))
	defer func() {
		_ = os.Unsetenv("TEST_VAR_ONE")
		_ = os.Unsetenv("TEST_VAR_TWO")
	}()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single variable",
			input:    "${TEST_VAR_ONE}",
			expected: "value_one",
		},
		{
			name:     "multiple variables",
			input:    "${TEST_VAR_ONE}/${TEST_VAR_TWO}",
			expected: "value_one/value_two",
		},
		{
			name:     "variable in path",
			input:    "/path/to/${TEST_VAR_ONE}/file",
			expected: "/path/to/value_one/file",
		},
		{
			name:     "unset variable stays as-is",
			input:    "${UNSET_VARIABLE}",
			expected: "${UNSET_VARIABLE}",
		},
		{
			name:     "no variables",
			input:    "plain string",
			expected: "plain string",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandEnvVars(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestConfig_Validate tests the Config.Validate method.
func TestConfig_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := &Config{SchemasDir: "schemas", OutputFormat: "auto"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("empty schemas_dir", func(t *testing.T) {
		cfg := &Config{SchemasDir: ""}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schemas_dir is required")
	})

	t.Run("invalid output format", func(t *testing.T) {
		cfg := &Config{SchemasDir: "schemas", OutputFormat: "xml"}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid output format")
	})

	t.Run("extension without dot", func(t *testing.T) {
		cfg := &Config{SchemasDir: "schemas", Extensions: []string{"yaml"}}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must start with a dot")
	})

	t.Run("invalid lint severity", func(t *testing.T) {
		cfg := &Config{
			SchemasDir: "schemas",
			Lint:       &LintConfig{Severity: map[string]string{"MN01": "warning"}},
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid severity "warning"`)
	})
}

// TestLoadConfig_Defaults tests that defaults fill in when the config
// file sets nothing.
func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "apilint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("verbose: false\n"), 0600))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "schemas"), cfg.SchemasDir)
	assert.Equal(t, filepath.Join(tmpDir, ".apilint", "state.db"), cfg.StatePath)
	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.Equal(t, []string{".yaml", ".yml", ".json"}, cfg.Extensions)
	assert.Equal(t, tmpDir, cfg.ProjectRoot)
}

// TestLoadConfig_LintSection tests decoding of the lint block.
func TestLoadConfig_LintSection(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "apilint.yaml")
	cfgContent := `schemas_dir: api
lint:
  disabled:
    - MN02
  severity:
    GN01: should
  rules:
    RF01:
      annotation: x-ref-type
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0600))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	require.NotNil(t, cfg.Lint)
	assert.Equal(t, []string{"MN02"}, cfg.Lint.Disabled)
	assert.Equal(t, "should", cfg.Lint.Severity["GN01"])
	assert.Equal(t, "x-ref-type", cfg.Lint.Rules["RF01"]["annotation"])
	assert.Equal(t, filepath.Join(tmpDir, "api"), cfg.SchemasDir)
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and
// the config file. Flag paths are resolved against the CWD, so the
// assertion checks the trailing component.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "apilint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("schemas_dir: from_file\n"), 0600))

	require.NoError(t, os.Setenv("APILINT_SCHEMAS_DIR", "from_env"))
	defer func() { _ = os.Unsetenv("APILINT_SCHEMAS_DIR") }()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("schemas-dir", "", "schemas directory")
	require.NoError(t, flags.Set("schemas-dir", "from_flag"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cfg.SchemasDir))
	assert.Equal(t, "from_flag", filepath.Base(cfg.SchemasDir))
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override the
// config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "apilint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("schemas_dir: from_file\n"), 0600))

	require.NoError(t, os.Setenv("APILINT_SCHEMAS_DIR", "from_env"))
	defer func() { _ = os.Unsetenv("APILINT_SCHEMAS_DIR") }()

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "from_env", filepath.Base(cfg.SchemasDir))
}

// TestLoadConfig_StateFlagMapsToStatePath tests the --state flag alias.
func TestLoadConfig_StateFlagMapsToStatePath(t *testing.T) {
	ResetConfig()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "apilint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("schemas_dir: api\n"), 0600))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("state", "", "state database path")
	require.NoError(t, flags.Set("state", "custom.db"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "custom.db", filepath.Base(cfg.StatePath))
}

// TestLoadConfig_ExpandsEnvVarsInPaths tests ${VAR} expansion in path values.
func TestLoadConfig_ExpandsEnvVarsInPaths(t *testing.T) {
	ResetConfig()

	require.NoError(t, os.Setenv("TEST_SCHEMA_HOME", "expanded"))
	defer func() { _ = os.Unsetenv("TEST_SCHEMA_HOME") }()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "apilint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("schemas_dir: ${TEST_SCHEMA_HOME}/api\n"), 0600))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "expanded", "api"), cfg.SchemasDir)
}

func TestFindProjectRootUpward(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "apilint.yaml"), []byte("schemas_dir: api\n"), 0600))

	assert.Equal(t, tmpDir, findProjectRootUpward(nested))

	orphan := filepath.Join(t.TempDir(), "x")
	require.NoError(t, os.MkdirAll(orphan, 0750))
	assert.Equal(t, "", findProjectRootUpward(orphan))
}

func TestGetLogger(t *testing.T) {
	// Without a logger in context, a discard logger comes back.
	logger := GetLogger(context.Background())
	require.NotNil(t, logger)

	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := context.WithValue(context.Background(), LoggerKey(), custom)
	assert.Same(t, custom, GetLogger(ctx))
}

func TestGetServerConfigDefaults(t *testing.T) {
	cfg := &Config{}
	srv := cfg.GetServerConfig()
	assert.Equal(t, "127.0.0.1", srv.Host)
	assert.Equal(t, 8765, srv.Port)

	cfg = &Config{Server: &ServerConfig{Port: 9000}}
	srv = cfg.GetServerConfig()
	assert.Equal(t, "127.0.0.1", srv.Host)
	assert.Equal(t, 9000, srv.Port)
}

func TestGetWatchConfigDefaults(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, DefaultDebounceMS, cfg.GetWatchConfig().DebounceMS)

	cfg = &Config{Watch: &WatchConfig{DebounceMS: 250}}
	assert.Equal(t, 250, cfg.GetWatchConfig().DebounceMS)
}
