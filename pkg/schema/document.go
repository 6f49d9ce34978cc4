package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Document is a parsed schema document. The checker only reads it;
// nothing in the lint path mutates a Document after Parse returns.
type Document struct {
	// Name identifies the document in findings and errors, usually the
	// file path it was loaded from.
	Name string

	// Root is the top-level schema node.
	Root *Object
}

// DefaultExtensions are the file extensions LoadDir considers schema
// documents when the caller passes none.
var DefaultExtensions = []string{".yaml", ".yml", ".json"}

// Parse decodes a single schema document from YAML or JSON bytes.
func Parse(name string, data []byte) (*Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &ParseError{Name: name, Message: fmt.Sprintf("invalid document: %v", err)}
	}

	val, err := decodeNode(&node, 0)
	if err != nil {
		return nil, &ParseError{Name: name, Message: err.Error()}
	}
	if val == nil {
		return nil, &ParseError{Name: name, Message: "empty document"}
	}

	root, ok := val.(*Object)
	if !ok {
		return nil, &ParseError{Name: name, Message: "root node is not a mapping"}
	}

	return &Document{Name: name, Root: root}, nil
}

// ParseFile reads and parses one schema document from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from CLI args or directory walk
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(path, data)
}

// LoadDir walks dir and parses every schema document matching exts
// (DefaultExtensions when empty). Hidden directories are skipped.
// Documents that fail to parse are left out of the result; their errors
// are accumulated and returned alongside the documents that did parse,
// so one broken file never hides findings in the rest of the set.
func LoadDir(dir string, exts []string) ([]*Document, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	var docs []*Document
	var loadErr error

	err := filepath.Walk(dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasExtension(info.Name(), exts) {
			return nil
		}

		doc, parseErr := ParseFile(path)
		if parseErr != nil {
			loadErr = multierr.Append(loadErr, parseErr)
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, loadErr
}

func hasExtension(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// ParseError reports a document that could not be decoded.
type ParseError struct {
	Name    string
	Message string
}

func (e *ParseError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s", e.Name, e.Message)
	}
	return e.Message
}
