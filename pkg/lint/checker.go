package lint

import (
	"errors"
	"fmt"

	"github.com/apistyle/apilint/pkg/schema"
)

// ErrNilDocument is returned when Check is called without a document.
// This is the one caller error the checker fails fast on; everything
// found inside a document becomes a Finding instead.
var ErrNilDocument = errors.New("schema document is nil")

// MalformedNodeRule is the rule name carried by MALFORMED_NODE findings.
const MalformedNodeRule = "malformed-node"

// Checker runs registered rules against schema documents.
type Checker struct {
	config *Config
}

// NewChecker creates a checker with optional configuration.
func NewChecker(config *Config) *Checker {
	if config == nil {
		config = NewConfig()
	}
	return &Checker{config: config}
}

// Check traverses the document depth-first in pre-order, declaration
// order breaking ties, and applies every enabled rule to each visited
// property. Malformed nested nodes are skipped and reported as
// MALFORMED_NODE findings; the run never aborts on document content.
// Checking the same document twice yields identical finding sequences.
func (c *Checker) Check(doc *schema.Document) ([]Finding, error) {
	if doc == nil || doc.Root == nil {
		return nil, ErrNilDocument
	}

	w := &walker{
		config: c.config,
		rules:  c.enabledRules(),
	}
	w.walkNode(doc.Root, "")
	return w.findings, nil
}

// enabledRules returns registered rules minus disabled ones, in ID
// order. Rules can be disabled by ID or by convention name.
func (c *Checker) enabledRules() []RuleDef {
	var rules []RuleDef
	for _, rule := range GetAll() {
		if c.config.IsDisabled(rule.ID) || c.config.IsDisabled(rule.Name) {
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}

// walker carries the state of one check run.
type walker struct {
	config   *Config
	rules    []RuleDef
	findings []Finding
}

// walkNode visits one schema node: its declared properties first, in
// declaration order, then the items schema of array nodes.
func (w *walker) walkNode(node *schema.Object, path string) {
	if raw, ok := node.Get("properties"); ok {
		propsPath := schema.AppendToken(path, "properties")
		if props, isMapping := raw.(*schema.Object); isMapping {
			for _, name := range props.Keys() {
				w.visitProperty(name, props, propsPath)
			}
		} else {
			w.reportMalformed(propsPath, `"properties" is not a mapping`)
		}
	}

	if raw, ok := node.Get("items"); ok {
		itemsPath := schema.AppendToken(path, "items")
		if items, isMapping := raw.(*schema.Object); isMapping {
			w.walkNode(items, itemsPath)
		} else {
			w.reportMalformed(itemsPath, `"items" is not a mapping`)
		}
	}
}

// visitProperty applies the enabled rules to one property, then
// descends into it. Pre-order: a property's own findings precede those
// of its children.
func (w *walker) visitProperty(name string, siblings *schema.Object, propsPath string) {
	propPath := schema.AppendToken(propsPath, name)

	raw, _ := siblings.Get(name)
	node, ok := raw.(*schema.Object)
	if !ok {
		w.reportMalformed(propPath, fmt.Sprintf("property %q is not a mapping", name))
		return
	}

	prop := &Property{
		Name:     name,
		Path:     propPath,
		Schema:   node,
		Siblings: siblings,
	}

	for _, rule := range w.rules {
		opts := w.config.GetRuleOptions(rule.ID)
		if opts == nil {
			opts = w.config.GetRuleOptions(rule.Name)
		}

		findings := rule.Check(prop, opts)

		// Apply severity overrides; an override keyed by ID wins over
		// one keyed by name.
		for i := range findings {
			findings[i].Severity = w.config.GetSeverity(rule.Name, findings[i].Severity)
			findings[i].Severity = w.config.GetSeverity(rule.ID, findings[i].Severity)
		}
		w.findings = append(w.findings, findings...)
	}

	w.walkNode(node, propPath)
}

func (w *walker) reportMalformed(path, message string) {
	w.findings = append(w.findings, Finding{
		Rule:     MalformedNodeRule,
		Kind:     KindMalformedNode,
		Severity: SeverityMust,
		Path:     path,
		Message:  message,
	})
}
