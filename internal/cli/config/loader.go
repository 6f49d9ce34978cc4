package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/apistyle/apilint/pkg/schema"
)

// loggerKey carries the slog logger through command contexts. root.go
// stores under the same type via LoggerKey().
type loggerKey struct{}

// Upward config search gives up after this many parent directories.
const maxUpwardSearchLevels = 10

// configFileNames are probed in priority order wherever a config file
// is looked for.
var configFileNames = []string{"apilint.yaml", "apilint.yml"}

var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// probeConfig returns the path of the config file present in dir, or
// "" when dir holds none.
func probeConfig(dir string) string {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findProjectRootUpward walks from startDir toward the filesystem root
// until it reaches a directory holding a config file. Returns "" when
// the search depth runs out first.
func findProjectRootUpward(startDir string) string {
	dir := startDir
	for depth := 0; depth < maxUpwardSearchLevels; depth++ {
		if probeConfig(dir) != "" {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// inferProjectRoot picks the directory that anchors relative path
// resolution. A changed --schemas-dir flag is the strongest hint;
// otherwise the root is the nearest ancestor of the working directory
// with a config file, falling back to the working directory itself.
func inferProjectRoot(flags *pflag.FlagSet) string {
	if dir := rootFromSchemasFlag(flags); dir != "" {
		return dir
	}
	if cwd, err := os.Getwd(); err == nil {
		if root := findProjectRootUpward(cwd); root != "" {
			return root
		}
		return cwd
	}
	return "."
}

// rootFromSchemasFlag derives the project root from an explicitly set
// --schemas-dir: its parent, when that parent carries a config file or
// the flag points at a directory literally named "schemas".
func rootFromSchemasFlag(flags *pflag.FlagSet) string {
	if flags == nil || !flags.Changed("schemas-dir") {
		return ""
	}
	schemasDir, _ := flags.GetString("schemas-dir")
	if schemasDir == "" {
		return ""
	}
	abs, err := filepath.Abs(schemasDir)
	if err != nil {
		return ""
	}
	parent := filepath.Dir(abs)
	if probeConfig(parent) != "" || filepath.Base(abs) == "schemas" {
		return parent
	}
	return ""
}

// flagPaths records path flags the user set explicitly. Their absolute
// form is pinned at parse time, so a project root inferred FROM one of
// them cannot re-anchor it later.
type flagPaths struct {
	schemas string
	rules   string
	state   string
}

func captureFlagPaths(flags *pflag.FlagSet) flagPaths {
	abs := func(name string) string {
		if flags == nil || !flags.Changed(name) {
			return ""
		}
		v, _ := flags.GetString(name)
		if v == "" {
			return ""
		}
		a, _ := filepath.Abs(v)
		return a
	}
	return flagPaths{
		schemas: abs("schemas-dir"),
		rules:   abs("rules-dir"),
		state:   abs("state"),
	}
}

// anchorPath resolves a configured path against the project root,
// unless the flag layer already pinned an absolute path for it.
func anchorPath(value, fromFlag, root string) string {
	if fromFlag != "" {
		return fromFlag
	}
	if value == "" || filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(root, value)
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig builds the effective configuration. Later layers win:
// defaults, then the config file, then APILINT_* environment
// variables, then explicitly set flags.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	projectRoot := inferProjectRoot(flags)
	fp := captureFlagPaths(flags)

	// An explicit config file relocates the root when no flag gave a
	// stronger hint.
	if cfgFile != "" && projectRoot == inferProjectRoot(nil) {
		if abs, err := filepath.Abs(cfgFile); err == nil {
			projectRoot = filepath.Dir(abs)
		}
	}

	if cfgFile == "" {
		cfgFile = probeConfig(projectRoot)
	}
	if cfgFile == "" {
		cfgFile = probeConfig(".")
	}

	if err := layerDefaults(); err != nil {
		return nil, err
	}
	if err := layerConfigFile(cfgFile); err != nil {
		return nil, err
	}
	if err := layerEnv(); err != nil {
		return nil, err
	}
	if err := layerFlags(flags); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// The project root, not the config file directory, anchors every
	// relative path.
	cfg.ProjectRoot = projectRoot
	cfg.SchemasDir = anchorPath(expandEnvVars(cfg.SchemasDir), fp.schemas, projectRoot)
	cfg.RulesDir = anchorPath(expandEnvVars(cfg.RulesDir), fp.rules, projectRoot)
	cfg.StatePath = anchorPath(expandEnvVars(cfg.StatePath), fp.state, projectRoot)
	cfg.DocsURL = expandEnvVars(cfg.DocsURL)

	currentConfig = &cfg
	return &cfg, nil
}

// layerDefaults seeds the built-in defaults as the lowest layer.
func layerDefaults() error {
	defaults := map[string]interface{}{
		"schemas_dir": DefaultSchemasDir,
		"extensions":  schema.DefaultExtensions,
		"rules_dir":   DefaultRulesDir,
		"state_path":  DefaultStateFile,
		"verbose":     false,
		"output":      DefaultOutput,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}
	return nil
}

// layerConfigFile merges the YAML file at path and records it as the
// config file in use. An empty path leaves earlier layers untouched.
func layerConfigFile(path string) error {
	configFileUsed = path
	if path == "" {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return nil
}

// layerEnv merges APILINT_* environment variables, lowercased with the
// prefix stripped (APILINT_SCHEMAS_DIR becomes schemas_dir).
func layerEnv() error {
	transform := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "APILINT_"))
	}
	if err := k.Load(env.Provider("APILINT_", ".", transform), nil); err != nil {
		return fmt.Errorf("failed to load env vars: %w", err)
	}
	return nil
}

// layerFlags merges flags the user actually set. Flag names map to
// snake_case config keys; --state is an alias for state_path.
func layerFlags(flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	translate := func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if key == "state" {
			key = "state_path"
		}
		return key, posflag.FlagVal(flags, f)
	}
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, translate), nil); err != nil {
		return fmt.Errorf("failed to load flags: %w", err)
	}
	return nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the configuration loaded by the most recent
// LoadConfig call, or nil before the first load.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key under which the logger is stored.
// Exposed so the commands package can read it without importing cli.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context, falling
// back to a discard logger when none was stored.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// envPattern matches ${VAR} references in configured strings.
var envPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars substitutes ${VAR} references from the environment,
// leaving unset references as written.
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})
}
