package project

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/apistyle/apilint/pkg/schema"
)

// EntityName derives the entity a document defines, in snake_case.
// The document title wins when present; otherwise the file name minus
// its extension is used, so "schemas/SalesOrder.yaml" defines
// "sales_order".
func EntityName(doc *schema.Document) string {
	if doc.Root != nil {
		if title, ok := doc.Root.GetString("title"); ok && title != "" {
			return SnakeCase(title)
		}
	}
	base := filepath.Base(doc.Name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return SnakeCase(base)
}

// SnakeCase converts CamelCase, space-separated, and dash-separated
// names to snake_case.
func SnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)

	for i, r := range runes {
		switch {
		case r == ' ' || r == '-' || r == '_':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteRune('_')
			}
		case unicode.IsUpper(r):
			if i > 0 && upperBoundary(runes, i) {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}

	return strings.Trim(b.String(), "_")
}

func upperBoundary(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
		return true
	}
	return false
}
