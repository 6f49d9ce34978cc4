package starlark

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/apistyle/apilint/pkg/lint"
	"go.starlark.net/starlark"
)

// Loader scans a directory for .star files and loads the rules they
// register.
type Loader struct {
	dir    string
	pool   *ThreadPool
	logger *slog.Logger
}

// NewLoader creates a rule loader for the specified directory. A nil
// logger discards warnings from misbehaving rules.
func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		dir:    dir,
		pool:   NewThreadPool(0),
		logger: logger,
	}
}

// Load executes all .star files in the rules directory and returns the
// rule definitions they registered, in file order then registration
// order. A missing directory is fine and yields no rules.
func (l *Loader) Load() ([]lint.RuleDef, error) {
	info, err := os.Stat(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to access rules directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("rules path is not a directory: %s", l.dir)
	}

	// Glob returns matches sorted, so load order is stable across runs
	files, err := filepath.Glob(filepath.Join(l.dir, "*.star"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan rules directory: %w", err)
	}

	var rules []lint.RuleDef
	for _, file := range files {
		if err := l.loadFile(file, &rules); err != nil {
			return nil, err
		}
	}
	return rules, nil
}

// RegisterAll loads the rules directory and registers every rule into
// the global registry. Returns the number of rules registered.
func (l *Loader) RegisterAll() (int, error) {
	rules, err := l.Load()
	if err != nil {
		return 0, err
	}
	for _, rule := range rules {
		lint.Register(rule)
	}
	return len(rules), nil
}

// loadFile executes a single .star file with register_rule predeclared.
func (l *Loader) loadFile(path string, collected *[]lint.RuleDef) error {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path comes from a glob within the rules directory
	if err != nil {
		return &LoadError{
			File:    path,
			Message: fmt.Sprintf("failed to read file: %v", err),
		}
	}

	thread := &starlark.Thread{
		Name: fmt.Sprintf("load:%s", filepath.Base(path)),
		Print: func(_ *starlark.Thread, _ string) {
			// Ignore prints during rule loading
		},
	}

	predeclared := starlark.StringDict{
		"register_rule": registerRule(collected, l.pool, l.logger),
	}

	if _, err := starlark.ExecFile(thread, path, content, predeclared); err != nil { //nolint:staticcheck // SA1019: will migrate to ExecFileOptions later
		return &LoadError{
			File:    path,
			Message: fmt.Sprintf("Starlark execution error: %v", err),
		}
	}

	return nil
}

// LoadError represents an error loading a rule file.
type LoadError struct {
	File    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("rules/%s: %s", filepath.Base(e.File), e.Message)
}
