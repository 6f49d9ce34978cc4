package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/apistyle/apilint/internal/cli/output"
	"github.com/apistyle/apilint/pkg/core"
	_ "github.com/apistyle/apilint/pkg/lint/project/rules" // register project rules
	_ "github.com/apistyle/apilint/pkg/lint/rules"         // register schema rules
)

// RulesOptions holds the listing filters and output selection for the
// rules command.
type RulesOptions struct {
	Group   string // restrict to one rule group
	Type    string // restrict to "schema" or "project"
	Verbose bool   // include descriptions and rationale
	Format  string // output format override
}

// NewRulesCommand builds the rule catalog command. Without arguments it
// lists every registered rule; with a rule ID or convention name it
// shows that rule's full documentation.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List registered lint rules grouped by type and rule group.

Schema rules inspect a single document; project rules compare
declarations across the whole schema set. Custom Starlark rules from
the configured rules directory appear alongside the built-in ones.
Pass a rule ID (MN01) or convention name (money-amount-format) to see
the full documentation for one rule.

The listing renders as styled text on a terminal and as markdown when
piped. Use --format to force a specific mode.`,
		Example: `  # Catalog of all rules
  apilint rules

  # Full documentation for one rule
  apilint rules MN01
  apilint rules money-amount-format

  # Only the money group, with descriptions
  apilint rules --group money -V

  # Machine-readable listing
  apilint rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return runRulesShow(cmd, args[0], opts)
			}
			return runRulesList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Filter by type: schema, project")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func runRulesList(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)
	r := rendererFor(cmd, cmdCtx, opts.Format)

	// Custom rules show up in listings too
	if _, err := loadCustomRules(cmdCtx.Cfg, cmdCtx.Logger); err != nil {
		return err
	}

	rules := filterRulesByOptions(allRuleInfos(), opts)
	sections := sectionRules(rules)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return renderCatalogJSON(r, rules)
	case output.ModeMarkdown:
		return renderCatalogMarkdown(r, sections, opts.Verbose)
	default:
		return renderCatalogText(r, sections, opts.Verbose)
	}
}

func filterRulesByOptions(rules []core.RuleInfo, opts *RulesOptions) []core.RuleInfo {
	if opts.Group == "" && opts.Type == "" {
		return rules
	}

	var filtered []core.RuleInfo
	for _, r := range rules {
		if opts.Group != "" && r.Group != opts.Group {
			continue
		}
		if opts.Type != "" && r.Type != opts.Type {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// ruleSection is one contiguous type+group block of the listing.
type ruleSection struct {
	TypeLabel string
	Group     string
	Rules     []core.RuleInfo
}

// sectionRules sorts rules schema-first, then by group and ID, and
// slices them into type+group sections. The input slice is sorted in
// place, so JSON listings share the same order.
func sectionRules(rules []core.RuleInfo) []ruleSection {
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Type != rules[j].Type {
			// "schema" > "project" lexically, and schema rules lead.
			return rules[i].Type > rules[j].Type
		}
		if rules[i].Group != rules[j].Group {
			return rules[i].Group < rules[j].Group
		}
		return rules[i].ID < rules[j].ID
	})

	var sections []ruleSection
	for _, rule := range rules {
		label := "Schema Rules"
		if rule.Type == "project" {
			label = "Project Rules"
		}
		n := len(sections)
		if n == 0 || sections[n-1].TypeLabel != label || sections[n-1].Group != rule.Group {
			sections = append(sections, ruleSection{TypeLabel: label, Group: rule.Group})
			n++
		}
		sections[n-1].Rules = append(sections[n-1].Rules, rule)
	}
	return sections
}

func runRulesShow(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)
	r := rendererFor(cmd, cmdCtx, opts.Format)

	if _, err := loadCustomRules(cmdCtx.Cfg, cmdCtx.Logger); err != nil {
		return err
	}

	rule, ok := findRuleInfo(ruleID)
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rule)
	case output.ModeMarkdown:
		return renderRuleMarkdown(r, rule)
	default:
		return renderRuleText(r, rule)
	}
}

// renderCatalogText renders the catalog with terminal styling.
func renderCatalogText(r *output.Renderer, sections []ruleSection, verbose bool) error {
	styles := r.Styles()

	schemaCount, projectCount := 0, 0
	for _, sec := range sections {
		if sec.TypeLabel == "Schema Rules" {
			schemaCount += len(sec.Rules)
		} else {
			projectCount += len(sec.Rules)
		}
	}

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d schema, %d project)", schemaCount, projectCount)))
	r.Println("")

	lastType := ""
	for _, sec := range sections {
		if sec.TypeLabel != lastType {
			lastType = sec.TypeLabel
			r.Println(styles.Header2.Render(sec.TypeLabel))
			r.Println("")
		}

		r.Println(styles.Bold.Render("  " + capitalizeFirst(sec.Group)))
		for _, rule := range sec.Rules {
			r.Printf("    %s  %s - %s\n",
				styles.Muted.Render(rule.ID),
				rule.Name,
				ruleSeverityStyle(styles, rule.DefaultSeverity).Render(rule.DefaultSeverity),
			)
			if verbose {
				r.Println(styles.Muted.Render("        " + rule.Description))
				if rule.Rationale != "" {
					r.Println(styles.Muted.Render("        Why: " + truncateOneLine(rule.Rationale, 80)))
				}
				r.Println("")
			}
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'apilint rules <rule-id>' for detailed documentation"))
	r.Println("")

	return nil
}

// renderCatalogMarkdown renders the catalog as a markdown document.
func renderCatalogMarkdown(r *output.Renderer, sections []ruleSection, verbose bool) error {
	r.Println("# Lint Rules")
	r.Println("")

	lastType := ""
	for _, sec := range sections {
		if sec.TypeLabel != lastType {
			lastType = sec.TypeLabel
			r.Println("## " + sec.TypeLabel)
			r.Println("")
		}

		r.Println("### " + capitalizeFirst(sec.Group))
		r.Println("")
		for _, rule := range sec.Rules {
			r.Printf("- **%s** - %s (`%s`)\n", rule.ID, rule.Name, rule.DefaultSeverity)
			if verbose {
				r.Println("  " + rule.Description)
				if rule.Rationale != "" {
					r.Println("  > " + rule.Rationale)
				}
			}
		}
		r.Println("")
	}

	return nil
}

// RulesJSONOutput is the machine-readable shape of the rule catalog.
type RulesJSONOutput struct {
	Rules []core.RuleInfo `json:"rules"`
	Count struct {
		Schema  int `json:"schema"`
		Project int `json:"project"`
		Total   int `json:"total"`
	} `json:"count"`
}

// renderCatalogJSON encodes the catalog with per-type counts.
func renderCatalogJSON(r *output.Renderer, rules []core.RuleInfo) error {
	out := RulesJSONOutput{Rules: rules}
	for _, rule := range rules {
		if rule.Type == "schema" {
			out.Count.Schema++
		} else {
			out.Count.Project++
		}
	}
	out.Count.Total = len(rules)
	return r.JSON(out)
}

// renderRuleText prints one rule's documentation with terminal styling.
func renderRuleText(r *output.Renderer, rule *core.RuleInfo) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")
	r.Printf("  %s: %s\n", styles.Bold.Render("Type"), rule.Type)
	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), rule.Group)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), rule.DefaultSeverity)
	r.Println("")

	section := func(title string, body string) {
		r.Println(styles.Bold.Render(title))
		r.Println("  " + body)
		r.Println("")
	}
	example := func(title string, body string, style lipgloss.Style) {
		r.Println(styles.Bold.Render(title))
		for _, line := range strings.Split(body, "\n") {
			r.Println(style.Render("  " + line))
		}
		r.Println("")
	}

	section("Description", rule.Description)
	if rule.Rationale != "" {
		section("Why This Matters", rule.Rationale)
	}
	if rule.BadExample != "" {
		example("Bad Example", rule.BadExample, styles.Muted)
	}
	if rule.GoodExample != "" {
		example("Good Example", rule.GoodExample, styles.Success)
	}
	if rule.Fix != "" {
		section("How to Fix", rule.Fix)
	}
	if len(rule.ConfigKeys) > 0 {
		section("Configuration", "Options: "+strings.Join(rule.ConfigKeys, ", "))
	}

	return nil
}

// renderRuleMarkdown prints one rule's documentation as markdown.
func renderRuleMarkdown(r *output.Renderer, rule *core.RuleInfo) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s - %s\n\n", rule.ID, rule.Name)
	fmt.Fprintf(&b, "**Type:** %s | **Group:** %s | **Severity:** `%s`\n\n", rule.Type, rule.Group, rule.DefaultSeverity)
	fmt.Fprintf(&b, "%s\n\n", rule.Description)

	if rule.Rationale != "" {
		fmt.Fprintf(&b, "## Why This Matters\n\n%s\n\n", rule.Rationale)
	}
	if rule.BadExample != "" {
		fmt.Fprintf(&b, "## Bad Example\n\n```yaml\n%s\n```\n\n", rule.BadExample)
	}
	if rule.GoodExample != "" {
		fmt.Fprintf(&b, "## Good Example\n\n```yaml\n%s\n```\n\n", rule.GoodExample)
	}
	if rule.Fix != "" {
		fmt.Fprintf(&b, "## How to Fix\n\n%s\n\n", rule.Fix)
	}
	if len(rule.ConfigKeys) > 0 {
		fmt.Fprintf(&b, "## Configuration\n\nOptions: `%s`\n\n", strings.Join(rule.ConfigKeys, "`, `"))
	}

	r.Printf("%s", b.String())
	return nil
}

// Listing helpers

func ruleSeverityStyle(styles *output.Styles, severity string) lipgloss.Style {
	switch severity {
	case "MUST":
		return styles.Error
	case "SHOULD":
		return styles.Warning
	default:
		return styles.Muted
	}
}

func truncateOneLine(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
