package project

import (
	"github.com/apistyle/apilint/pkg/schema"
)

// DefaultAnnotation is the extension key that marks a property as a
// reference to another entity.
const DefaultAnnotation = "x-references"

// Occurrence records one declaration of a property somewhere in the
// project: which document, where in it, and the declared type.
type Occurrence struct {
	Document string // document name, e.g. "billing/invoice.yaml"
	Path     string // JSON pointer within the document
	Type     string // declared type; never empty in the type index
}

// Reference records one annotated reference property.
type Reference struct {
	Document string
	Path     string
	Property string // property name carrying the annotation
	Target   string // referenced entity as written in the annotation
}

// Context provides all data needed for project-level analysis. It is
// built once from the parsed documents; rules only read from it.
type Context struct {
	documents  []*schema.Document
	entities   map[string]string       // snake_case name -> defining document
	types      map[string][]Occurrence // property name -> typed declarations
	typeNames  []string                // property names with typed declarations, first-seen order
	references []Reference
}

// NewContext indexes the given documents for project-level rules.
// The annotation key marks reference properties; an empty string means
// DefaultAnnotation. Document order is preserved, so callers that want
// deterministic output pass documents in a stable order.
func NewContext(documents []*schema.Document, annotation string) *Context {
	if annotation == "" {
		annotation = DefaultAnnotation
	}

	ctx := &Context{
		documents: documents,
		entities:  make(map[string]string),
		types:     make(map[string][]Occurrence),
	}

	for _, doc := range documents {
		if doc == nil || doc.Root == nil {
			continue
		}
		name := EntityName(doc)
		if _, taken := ctx.entities[name]; !taken {
			ctx.entities[name] = doc.Name
		}
		ctx.indexNode(doc, doc.Root, "", annotation)
	}

	return ctx
}

// indexNode mirrors the checker's traversal: properties in declaration
// order, then items. Malformed nodes are skipped silently here; the
// per-document check already reports them.
func (c *Context) indexNode(doc *schema.Document, node *schema.Object, path string, annotation string) {
	if props, ok := node.Properties(); ok {
		propsPath := schema.AppendToken(path, "properties")
		for _, name := range props.Keys() {
			child, ok := props.GetObject(name)
			if !ok {
				continue
			}
			propPath := schema.AppendToken(propsPath, name)

			if typ := child.Type(); typ != "" {
				if _, seen := c.types[name]; !seen {
					c.typeNames = append(c.typeNames, name)
				}
				c.types[name] = append(c.types[name], Occurrence{
					Document: doc.Name,
					Path:     propPath,
					Type:     typ,
				})
			}

			if target, ok := child.GetString(annotation); ok && target != "" {
				c.references = append(c.references, Reference{
					Document: doc.Name,
					Path:     propPath,
					Property: name,
					Target:   target,
				})
			}

			c.indexNode(doc, child, propPath, annotation)
		}
	}

	if items, ok := node.Items(); ok {
		c.indexNode(doc, items, schema.AppendToken(path, "items"), annotation)
	}
}

// Documents returns the indexed documents in input order.
func (c *Context) Documents() []*schema.Document {
	return c.documents
}

// TypedProperties returns the property names that have at least one
// typed declaration, in first-seen order.
func (c *Context) TypedProperties() []string {
	return c.typeNames
}

// Occurrences returns the typed declarations of one property name in
// document order.
func (c *Context) Occurrences(name string) []Occurrence {
	return c.types[name]
}

// References returns every annotated reference in document order.
func (c *Context) References() []Reference {
	return c.references
}

// HasEntity reports whether some document in the project defines the
// named entity. The name is matched in snake_case form.
func (c *Context) HasEntity(name string) bool {
	_, ok := c.entities[SnakeCase(name)]
	return ok
}
