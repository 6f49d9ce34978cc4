// Package testutil provides helpers for CLI command tests: temporary
// projects with schema fixtures, and renderers that capture output in
// buffers.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/apistyle/apilint/internal/cli/output"
)

// SetupTestProject creates a temporary project with a config file and
// one clean schema document.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(dir, "schemas"), 0755); err != nil {
		t.Fatalf("failed to create schemas directory: %v", err)
	}

	cfg := "schemas_dir: schemas\n"
	if err := os.WriteFile(filepath.Join(dir, "apilint.yaml"), []byte(cfg), 0644); err != nil {
		t.Fatalf("failed to create apilint.yaml: %v", err)
	}

	customer := `title: Customer
type: object
properties:
  id:
    type: string
  type:
    type: string
  created:
    type: string
    format: date-time
  modified:
    type: string
    format: date-time
`
	WriteSchemaFile(t, dir, "customer.yaml", customer)

	return dir
}

// WriteSchemaFile writes a schema document into the project's schemas
// directory.
func WriteSchemaFile(t *testing.T, projectDir, name, content string) string {
	t.Helper()

	path := filepath.Join(projectDir, "schemas", name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	return path
}

// TestRenderer is a Renderer whose streams are captured in memory.
// Read them back through Output and ErrorOutput.
type TestRenderer struct {
	*output.Renderer
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// NewTestRenderer builds a buffer-backed renderer with terminal
// detection forced to isTTY.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	tr := &TestRenderer{}
	tr.Renderer = output.NewRendererWithTTY(&tr.stdout, &tr.stderr, isTTY, mode)
	return tr
}

// NewTestRendererText simulates an interactive terminal in text mode.
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown simulates piped output in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// Output returns everything written to the primary stream so far.
func (tr *TestRenderer) Output() string {
	return tr.stdout.String()
}

// ErrorOutput returns everything written to the error stream so far.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.stderr.String()
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI fails the test when s carries ANSI escape codes.
// Markdown and JSON output must stay byte-clean for piping.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiEscape.MatchString(s) {
		t.Errorf("output carries ANSI escapes: %q", s)
	}
}

// AssertValidMarkdown fails the test on markdown with unbalanced code
// fences or empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if fences := strings.Count(md, "```"); fences%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fences)
	}
	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest := strings.TrimLeft(trimmed, "#"); rest != trimmed && strings.TrimSpace(rest) == "" {
			t.Errorf("header with no text at line %d: %q", i+1, line)
		}
	}
}
