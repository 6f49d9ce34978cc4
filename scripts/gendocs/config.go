package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateConfigDocs generates the configuration reference.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "project", "output", "lint", "server", "watch"
}

// getConfigSchema returns the configuration schema definition.
// This is based on internal/cli/config/types.go Config.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		// Project settings
		{Name: "schemas_dir", Type: "string", Default: "schemas", Description: "Path to schema documents directory", Category: "project"},
		{Name: "extensions", Type: "[]string", Default: ".yaml, .yml, .json", Description: "File extensions treated as schema documents", Category: "project"},
		{Name: "rules_dir", Type: "string", Default: "rules", Description: "Path to custom Starlark rules directory", Category: "project"},
		{Name: "state_path", Type: "string", Default: ".apilint/state.db", Description: "Path to the run history database", Category: "project"},

		// Output settings
		{Name: "output", Type: "string", Default: "auto", Description: "Output format: auto, text, markdown, json", Category: "output"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Enable verbose output", Category: "output"},
		{Name: "no_color", Type: "bool", Default: "false", Description: "Disable colored output", Category: "output"},
		{Name: "docs_url", Type: "string", Default: "https://apilint.dev/docs/rules", Description: "Base URL for rule documentation links", Category: "output"},

		// Lint settings
		{Name: "lint.disabled", Type: "[]string", Description: "Rules to disable, by ID or name", Category: "lint"},
		{Name: "lint.severity", Type: "map[string]string", Description: "Severity overrides per rule: must or should", Category: "lint"},
		{Name: "lint.rules", Type: "map[string]map", Description: "Per-rule configuration options", Category: "lint"},
		{Name: "lint.project.enabled", Type: "bool", Default: "true", Description: "Run cross-document project rules", Category: "lint"},

		// Server settings
		{Name: "server.host", Type: "string", Default: "127.0.0.1", Description: "Host the HTTP server binds to", Category: "server"},
		{Name: "server.port", Type: "int", Default: "8765", Description: "Port the HTTP server listens on", Category: "server"},

		// Watch settings
		{Name: "watch.debounce_ms", Type: "int", Default: "100", Description: "Quiet period after a change before re-checking, in milliseconds", Category: "watch"},
	}
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "apilint configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("apilint is configured via `apilint.yaml` in your project root. The file is discovered by walking up from the current directory, so commands work from any subdirectory.")

	fields := getConfigSchema()

	w.Header(2, "Project Settings")
	w.Paragraph("Paths and file types for the schema set:")
	writeConfigTable(w, fields, "project")

	w.Header(2, "Output Settings")
	w.Paragraph("How findings are rendered:")
	writeConfigTable(w, fields, "output")

	w.Header(2, "Lint Settings")
	w.Paragraph("Rule selection and tuning, all under the `lint` key:")
	writeConfigTable(w, fields, "lint")

	w.Header(3, "Lint Example")
	w.CodeBlock("yaml", `lint:
  # Disable rules by ID or name
  disabled:
    - RF01

  # Promote or demote individual rules
  severity:
    reference-field-naming: must

  # Per-rule options
  rules:
    MN01:
      decimal_formats: [decimal, decimal128]
    AD01:
      required_fields: [street, city, zip, country_code]

  # Cross-document rules
  project:
    enabled: true`)

	w.Header(2, "Server Settings")
	w.Paragraph("Options for `apilint serve`:")
	writeConfigTable(w, fields, "server")

	w.Header(2, "Watch Settings")
	w.Paragraph("Options for `apilint check --watch`:")
	writeConfigTable(w, fields, "watch")

	w.Header(2, "Full Configuration Example")
	w.CodeBlock("yaml", `# apilint.yaml

schemas_dir: schemas
rules_dir: rules
state_path: .apilint/state.db

output: auto

lint:
  disabled:
    - RF01
  severity:
    reference-field-naming: must
  rules:
    MN01:
      decimal_formats: [decimal]
  project:
    enabled: true

server:
  host: 127.0.0.1
  port: 8765

watch:
  debounce_ms: 100`)

	w.Header(2, "Environment Variables")
	w.Paragraph("Top-level keys can be set through the environment with the `APILINT_` prefix. `APILINT_SCHEMAS_DIR` sets `schemas_dir`, and so on. Flags take precedence over environment variables, which take precedence over the config file.")

	filename := filepath.Join(outDir, "configuration.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}

// writeConfigTable writes the fields of one category as a table.
func writeConfigTable(w *MarkdownWriter, fields []ConfigField, category string) {
	headers := []string{"Field", "Type", "Default", "Description"}
	var rows [][]string
	for _, f := range fields {
		if f.Category != category {
			continue
		}
		defVal := f.Default
		if defVal == "" {
			defVal = "-"
		} else {
			defVal = InlineCode(defVal)
		}
		rows = append(rows, []string{
			InlineCode(f.Name),
			f.Type,
			defVal,
			f.Description,
		})
	}
	w.Table(headers, rows)
}
