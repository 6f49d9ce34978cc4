package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apistyle/apilint/pkg/core"
	"github.com/apistyle/apilint/pkg/lint"
	"github.com/apistyle/apilint/pkg/lint/project"

	_ "github.com/apistyle/apilint/pkg/lint/project/rules"
	_ "github.com/apistyle/apilint/pkg/lint/rules"
)

// schemaGroupDescriptions provides human-readable descriptions for schema rule groups.
var schemaGroupDescriptions = map[string]string{
	"money":     "Rules about monetary amount and currency declarations.",
	"generic":   "Rules about the generic fields most entities share.",
	"reference": "Rules about properties that reference other entities.",
	"address":   "Rules about postal address objects.",
}

// projectGroupDescriptions provides human-readable descriptions for project rule groups.
var projectGroupDescriptions = map[string]string{
	"consistency": "Rules about consistency across the whole schema set.",
}

// generateRuleDocs generates all rule documentation files.
func generateRuleDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var schemaRules, projectRules []core.RuleInfo
	for _, rule := range lint.GetAll() {
		schemaRules = append(schemaRules, rule.Info())
	}
	for _, rule := range project.GetAll() {
		projectRules = append(projectRules, rule.Info())
	}

	if err := generateRulesIndex(outDir, len(schemaRules), len(projectRules)); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	if err := generateSchemaRulesPage(outDir, schemaRules); err != nil {
		return err
	}
	log.Printf("  Generated schema-rules.md")

	if err := generateProjectRulesPage(outDir, projectRules); err != nil {
		return err
	}
	log.Printf("  Generated project-rules.md")

	return nil
}

// generateRulesIndex generates the main rules overview page.
func generateRulesIndex(outDir string, schemaCount, projectCount int) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Rules", "Schema convention rules enforced by apilint")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("apilint ships **%d schema rules** and **%d project rules**.", schemaCount, projectCount))

	w.Header(2, "Rule Types")
	w.BulletList([]string{
		Bold("Schema Rules") + ": Check each property of a single schema document",
		Bold("Project Rules") + ": Check consistency across the whole schema set",
	})

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("MUST"), "Violation of a binding convention; fails the check by default"},
			{InlineCode("SHOULD"), "Violation of a recommendation; reported but not fatal by default"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules can be configured in `apilint.yaml`:")
	w.CodeBlock("yaml", `lint:
  disabled:
    - RF01                       # disable by ID or name
  severity:
    reference-field-naming: must # override severity
  rules:
    MN01:
      decimal_formats: [decimal128]`)

	w.Header(2, "Rule Categories")

	w.Header(3, "Schema Rules")
	w.Table(
		[]string{"Category", "Prefix", "Description"},
		[][]string{
			{"[Money](/rules/schema-rules#money)", "MN", "Monetary amounts and currencies"},
			{"[Generic](/rules/schema-rules#generic)", "GN", "Generic fields: id, type, timestamps"},
			{"[Reference](/rules/schema-rules#reference)", "RF", "Cross-entity reference properties"},
			{"[Address](/rules/schema-rules#address)", "AD", "Postal address objects"},
		},
	)

	w.Header(3, "Project Rules")
	w.Table(
		[]string{"Category", "Prefix", "Description"},
		[][]string{
			{"[Consistency](/rules/project-rules#consistency)", "PJ", "Cross-document consistency"},
		},
	)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateSchemaRulesPage generates the schema rules documentation page.
func generateSchemaRulesPage(outDir string, rules []core.RuleInfo) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Schema Rules", "Per-document schema convention rules")
	w.GeneratedMarker()

	w.Header(1, "Schema Rules")
	w.Paragraph(fmt.Sprintf("apilint includes %d schema rules organized into %d categories.",
		len(rules), len(schemaGroupDescriptions)))

	grouped := groupRulesByGroup(rules)
	groupOrder := []string{"money", "generic", "reference", "address"}
	groupOrder = appendMissingGroups(groupOrder, grouped)

	for _, group := range groupOrder {
		groupRules, ok := grouped[group]
		if !ok || len(groupRules) == 0 {
			continue
		}

		w.Line(fmt.Sprintf("## %s {#%s}", capitalizeFirst(group), group))
		w.Newline()

		if desc, ok := schemaGroupDescriptions[group]; ok {
			w.Paragraph(desc)
		}

		for _, rule := range groupRules {
			writeRuleDoc(w, rule)
		}
	}

	return os.WriteFile(filepath.Join(outDir, "schema-rules.md"), w.Bytes(), 0600)
}

// generateProjectRulesPage generates the project rules documentation page.
func generateProjectRulesPage(outDir string, rules []core.RuleInfo) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Project Rules", "Cross-document consistency rules")
	w.GeneratedMarker()

	w.Header(1, "Project Rules")
	w.Paragraph(fmt.Sprintf("apilint includes %d project rules. Project rules read every document at once and report inconsistencies between them.", len(rules)))

	grouped := groupRulesByGroup(rules)
	groupOrder := []string{"consistency"}
	groupOrder = appendMissingGroups(groupOrder, grouped)

	for _, group := range groupOrder {
		groupRules, ok := grouped[group]
		if !ok || len(groupRules) == 0 {
			continue
		}

		w.Line(fmt.Sprintf("## %s {#%s}", capitalizeFirst(group), group))
		w.Newline()

		if desc, ok := projectGroupDescriptions[group]; ok {
			w.Paragraph(desc)
		}

		for _, rule := range groupRules {
			writeRuleDoc(w, rule)
		}
	}

	return os.WriteFile(filepath.Join(outDir, "project-rules.md"), w.Bytes(), 0600)
}

// groupRulesByGroup organizes rules by their Group field, ID-sorted
// within each group.
func groupRulesByGroup(rules []core.RuleInfo) map[string][]core.RuleInfo {
	grouped := make(map[string][]core.RuleInfo)
	for _, r := range rules {
		grouped[r.Group] = append(grouped[r.Group], r)
	}
	for group := range grouped {
		sort.Slice(grouped[group], func(i, j int) bool {
			return grouped[group][i].ID < grouped[group][j].ID
		})
	}
	return grouped
}

// appendMissingGroups adds groups not in the preferred order (custom
// rule groups, mostly) at the end, alphabetically.
func appendMissingGroups(order []string, grouped map[string][]core.RuleInfo) []string {
	known := make(map[string]bool, len(order))
	for _, g := range order {
		known[g] = true
	}
	var extra []string
	for g := range grouped {
		if !known[g] {
			extra = append(extra, g)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule core.RuleInfo) {
	w.Line(fmt.Sprintf("### %s - %s {#%s}", rule.ID, rule.Name, rule.ID))
	w.Newline()

	w.Line(fmt.Sprintf("**Severity:** %s", InlineCode(rule.DefaultSeverity)))
	w.Newline()

	w.Paragraph(cleanDescription(rule.Description))

	if rule.Rationale != "" {
		w.Header(4, "Why This Matters")
		w.Paragraph(strings.TrimSpace(rule.Rationale))
	}

	if rule.BadExample != "" {
		w.Header(4, "Bad")
		w.CodeBlock("yaml", rule.BadExample)
	}

	if rule.GoodExample != "" {
		w.Header(4, "Good")
		w.CodeBlock("yaml", rule.GoodExample)
	}

	if rule.Fix != "" {
		w.Header(4, "How to Fix")
		w.Paragraph(strings.TrimSpace(rule.Fix))
	}

	if len(rule.ConfigKeys) > 0 {
		w.Header(4, "Configuration")
		w.Paragraph(fmt.Sprintf("This rule accepts the following configuration options: %s",
			InlineCode(strings.Join(rule.ConfigKeys, ", "))))
	}

	w.Line("---")
	w.Newline()
}
