package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"strings"
	"testing"
)

// coreImports parses every non-test source file in this package and
// returns file name -> import paths.
func coreImports(t *testing.T) map[string][]string {
	t.Helper()

	entries, err := os.ReadDir(".")
	if err != nil {
		t.Fatalf("Failed to read core directory: %v", err)
	}

	fset := token.NewFileSet()
	imports := make(map[string][]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", name, err)
			continue
		}
		for _, imp := range f.Imports {
			imports[name] = append(imports[name], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return imports
}

// TestCoreImportsOnly verifies pkg/core imports nothing but the
// standard library. Core holds the domain types every other package
// agrees on; the moment it imports one of them the layering inverts.
func TestCoreImportsOnly(t *testing.T) {
	for file, paths := range coreImports(t) {
		for _, path := range paths {
			// Stdlib import paths carry no dot
			if strings.Contains(path, ".") {
				t.Errorf("%s imports non-stdlib package: %s", file, path)
			}
		}
	}
}

// TestCoreDoesNotImportInternal verifies pkg/core stays clear of the
// internal tree.
func TestCoreDoesNotImportInternal(t *testing.T) {
	for file, paths := range coreImports(t) {
		for _, path := range paths {
			if strings.Contains(path, "/internal/") {
				t.Errorf("%s imports internal package: %s (core must not import internal packages)", file, path)
			}
		}
	}
}
