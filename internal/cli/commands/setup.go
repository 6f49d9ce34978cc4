package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/apistyle/apilint/internal/cli/config"
	"github.com/apistyle/apilint/internal/cli/output"
	"github.com/apistyle/apilint/internal/starlark"
	"github.com/apistyle/apilint/internal/state"
	"github.com/apistyle/apilint/pkg/core"
	"github.com/apistyle/apilint/pkg/lint"
	"github.com/apistyle/apilint/pkg/lint/project"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    *state.SQLiteStore
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with an open run history
// store and a renderer. Returns the context and a cleanup function that
// must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	applyDocsURL(cfg)
	logger := config.GetLogger(cmd.Context())

	store, err := openStore(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	cleanup := func() {
		_ = store.Close()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Store:    store,
		Renderer: r,
	}, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without a run
// history store. Useful for commands that don't touch run history.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	applyDocsURL(cfg)
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// rendererFor returns the context renderer, replaced by a fresh one
// when the command's format flag overrides the configured output mode.
func rendererFor(cmd *cobra.Command, cmdCtx *CommandContext, format string) *output.Renderer {
	if format == "" {
		return cmdCtx.Renderer
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	schemasDir := getEnvOrDefault("APILINT_SCHEMAS_DIR", config.DefaultSchemasDir)
	rulesDir := getEnvOrDefault("APILINT_RULES_DIR", config.DefaultRulesDir)
	statePath := getEnvOrDefault("APILINT_STATE_PATH", config.DefaultStateFile)
	verbose := os.Getenv("APILINT_VERBOSE") == "true"
	outputFormat := os.Getenv("APILINT_OUTPUT")

	return &config.Config{
		SchemasDir:   schemasDir,
		RulesDir:     rulesDir,
		StatePath:    statePath,
		Verbose:      verbose,
		OutputFormat: outputFormat,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// applyDocsURL points finding documentation links at the configured
// docs site, when one is set.
func applyDocsURL(cfg *config.Config) {
	if cfg.DocsURL != "" {
		lint.SetDocsBaseURL(cfg.DocsURL)
	}
}

// openStore opens the run history database, creating its directory and
// applying migrations as needed.
func openStore(cfg *config.Config, logger *slog.Logger) (*state.SQLiteStore, error) {
	stateDir := filepath.Dir(cfg.StatePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, fmt.Errorf("failed to open run history database: %w", err)
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate run history database: %w", err)
	}
	return store, nil
}

// loadCustomRules loads Starlark rules from the configured rules
// directory into the schema rule registry. Returns how many were
// loaded; a missing directory loads nothing and is not an error.
func loadCustomRules(cfg *config.Config, logger *slog.Logger) (int, error) {
	loader := starlark.NewLoader(cfg.RulesDir, logger)
	return loader.RegisterAll()
}

// allRuleInfos returns metadata for every registered rule, schema rules
// first, each block sorted by ID.
func allRuleInfos() []core.RuleInfo {
	schemaRules := lint.GetAll()
	projectRules := project.GetAll()

	infos := make([]core.RuleInfo, 0, len(schemaRules)+len(projectRules))
	for _, rule := range schemaRules {
		infos = append(infos, rule.Info())
	}
	for _, rule := range projectRules {
		infos = append(infos, rule.Info())
	}
	return infos
}

// findRuleInfo resolves a rule ID or convention name against both
// registries, schema rules first.
func findRuleInfo(idOrName string) (*core.RuleInfo, bool) {
	if def, ok := lint.Find(idOrName); ok {
		info := def.Info()
		return &info, true
	}
	if def, ok := project.Find(idOrName); ok {
		info := def.Info()
		return &info, true
	}
	return nil, false
}
