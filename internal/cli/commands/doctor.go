package commands

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/apistyle/apilint/internal/cli/output"
	"github.com/apistyle/apilint/pkg/core"
	"github.com/apistyle/apilint/pkg/lint"
	"github.com/apistyle/apilint/pkg/lint/project"
	"github.com/apistyle/apilint/pkg/schema"

	_ "github.com/apistyle/apilint/pkg/lint/project/rules" // register project rules
	_ "github.com/apistyle/apilint/pkg/lint/rules"         // register schema rules
)

// DoctorOptions carries the doctor command's flag values.
type DoctorOptions struct {
	Format string // Output format: text, json
}

// NewDoctorCommand builds the health report command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run a schema set health check",
		Long: `Analyze the whole schema set and report its convention health.

Every registered rule runs over every document. The report contains a
schema set summary, a pass/warn/error line per rule grouped by
category, a 0-100 health score, and recommendations for the rules
that fired.

Like the other commands, text output goes to terminals, markdown to
pipes, and --format json selects a machine-readable report.`,
		Example: `  # Health report for the configured schema set
  apilint doctor

  # Machine-readable report
  apilint doctor --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

// DoctorOutput is the JSON shape of the health report.
type DoctorOutput struct {
	Summary         SchemaSetSummary `json:"summary"`
	HealthChecks    []HealthCheck    `json:"health_checks"`
	Score           int              `json:"score"`
	Recommendations []string         `json:"recommendations"`
	IssueCount      int              `json:"issue_count"`
}

// SchemaSetSummary contains schema-set-level statistics.
type SchemaSetSummary struct {
	Documents      int `json:"documents"`
	Properties     int `json:"properties"`
	ParseErrors    int `json:"parse_errors"`
	MalformedNodes int `json:"malformed_nodes"`
	SchemaRules    int `json:"schema_rules"`
	ProjectRules   int `json:"project_rules"`
}

// HealthCheck is one rule's aggregate result over the whole set.
type HealthCheck struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Status     string   `json:"status"` // "pass", "warn", "error"
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)

	cfg := cmdCtx.Cfg
	r := rendererFor(cmd, cmdCtx, opts.Format)

	if _, err := loadCustomRules(cfg, cmdCtx.Logger); err != nil {
		return fmt.Errorf("failed to load custom rules: %w", err)
	}

	docs, parseErrs, err := loadDocuments(cfg.SchemasDir, cfg.Extensions)
	if err != nil {
		return err
	}
	if len(docs) == 0 && len(parseErrs) == 0 {
		r.Println("No schema documents found in " + cfg.SchemasDir)
		return nil
	}

	lintCfg := lint.NewConfigFromLint(cfg.Lint)
	results, err := checkDocuments(cmd.Context(), docs, lintCfg)
	if err != nil {
		return err
	}

	var projFindings []project.Finding
	if projectRulesEnabled(cfg) {
		projCtx := project.NewContext(docs, "")
		projFindings = project.NewAnalyzer(lintCfg).Analyze(projCtx)
	}

	doctorOutput := buildDoctorOutput(docs, parseErrs, results, projFindings)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(doctorOutput)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, doctorOutput)
	default:
		return renderDoctorText(r, doctorOutput)
	}
}

func buildDoctorOutput(docs []*schema.Document, parseErrs []error, results []docResult, projFindings []project.Finding) *DoctorOutput {
	summary := SchemaSetSummary{
		Documents:    len(docs),
		ParseErrors:  len(parseErrs),
		SchemaRules:  lint.Count(),
		ProjectRules: project.Count(),
	}
	for _, doc := range docs {
		summary.Properties += countProperties(doc.Root)
	}

	// Group findings by rule ID, details prefixed with their document.
	detailsByRule := make(map[string][]string)
	mustByRule := make(map[string]bool)
	issueCount := 0
	for _, res := range results {
		for _, f := range res.Findings {
			issueCount++
			if f.Kind == lint.KindMalformedNode {
				summary.MalformedNodes++
				continue
			}
			detailsByRule[f.RuleID] = append(detailsByRule[f.RuleID], fmt.Sprintf("%s %s: %s", res.Document, f.Path, f.Message))
			if f.Severity == lint.SeverityMust {
				mustByRule[f.RuleID] = true
			}
		}
	}
	for _, f := range projFindings {
		issueCount++
		detailsByRule[f.RuleID] = append(detailsByRule[f.RuleID], fmt.Sprintf("%s %s: %s", f.Document, f.Path, f.Message))
		if f.Severity == lint.SeverityMust {
			mustByRule[f.RuleID] = true
		}
	}

	healthChecks := buildHealthChecks(detailsByRule, mustByRule)
	score := calculateHealthScore(healthChecks, summary)

	return &DoctorOutput{
		Summary:         summary,
		HealthChecks:    healthChecks,
		Score:           score,
		Recommendations: generateRecommendations(healthChecks),
		IssueCount:      issueCount,
	}
}

// buildHealthChecks produces one check per registered rule, schema and
// project alike, sorted by group then rule ID.
func buildHealthChecks(detailsByRule map[string][]string, mustByRule map[string]bool) []HealthCheck {
	var checks []HealthCheck

	add := func(ri core.RuleInfo) {
		details := detailsByRule[ri.ID]
		status := "pass"
		if len(details) > 0 {
			if mustByRule[ri.ID] {
				status = "error"
			} else {
				status = "warn"
			}
		}
		checks = append(checks, HealthCheck{
			RuleID:     ri.ID,
			Name:       ri.Name,
			Group:      ri.Group,
			Status:     status,
			IssueCount: len(details),
			Details:    details,
		})
	}

	for _, ri := range allRuleInfos() {
		add(ri)
	}

	sort.Slice(checks, func(i, j int) bool {
		if checks[i].Group != checks[j].Group {
			return checks[i].Group < checks[j].Group
		}
		return checks[i].RuleID < checks[j].RuleID
	})
	return checks
}

// countProperties mirrors the checker's walk: declared properties of a
// node, then the items schema of arrays. Non-mapping nodes are skipped;
// the checker reports those as malformed.
func countProperties(node *schema.Object) int {
	if node == nil {
		return 0
	}
	n := 0
	if raw, ok := node.Get("properties"); ok {
		if props, isMapping := raw.(*schema.Object); isMapping {
			for _, name := range props.Keys() {
				child, _ := props.Get(name)
				childNode, isMapping := child.(*schema.Object)
				if !isMapping {
					continue
				}
				n++
				n += countProperties(childNode)
			}
		}
	}
	if raw, ok := node.Get("items"); ok {
		if items, isMapping := raw.(*schema.Object); isMapping {
			n += countProperties(items)
		}
	}
	return n
}

// penaltyPerIssue scales the score cost of one finding by set size, so
// a single rough document cannot zero out a large schema set.
func penaltyPerIssue(documents int) float64 {
	switch {
	case documents > 100:
		return 1.0
	case documents > 50:
		return 2.0
	case documents > 10:
		return 3.0
	}
	return 5.0
}

// calculateHealthScore computes a health score from 0-100. MUST-grade
// issues count double, and malformed nodes score like errors.
func calculateHealthScore(checks []HealthCheck, summary SchemaSetSummary) int {
	penalty := penaltyPerIssue(summary.Documents)

	score := 100.0
	for _, check := range checks {
		cost := float64(check.IssueCount) * penalty
		switch check.Status {
		case "error":
			score -= cost * 2
		case "warn":
			score -= cost
		}
	}
	score -= float64(summary.MalformedNodes+summary.ParseErrors) * penalty * 2

	return int(max(score, 0))
}

// maxRecommendations caps the report; past a handful, more reading
// does not mean more fixing.
const maxRecommendations = 5

// generateRecommendations lists one fix suggestion per distinct firing
// rule, in check order.
func generateRecommendations(checks []HealthCheck) []string {
	var recs []string
	seen := make(map[string]bool)

	for _, check := range checks {
		if check.IssueCount == 0 {
			continue
		}
		rec := getRecommendation(check.RuleID)
		if rec == "" || seen[rec] {
			continue
		}
		seen[rec] = true
		recs = append(recs, rec)
		if len(recs) == maxRecommendations {
			break
		}
	}
	return recs
}

// ruleRecommendations maps built-in rule IDs to one-line fixes. Custom
// rules carry no entry and produce no recommendation.
var ruleRecommendations = map[string]string{
	"MN01": "Declare monetary amounts as decimal strings instead of binary floats",
	"MN02": "Pair every amount property with a sibling currency property",
	"MN03": "Declare currencies as 3-letter ISO 4217 code strings",
	"GN01": "Declare id properties as strings",
	"GN02": "Declare created and modified as strings with format date-time",
	"GN03": "Declare type properties as strings",
	"RF01": "Name reference properties after the referenced type with an _id suffix",
	"AD01": "Give every address object the conventional postal fields",
	"AD02": "Declare address fields as strings",
	"PJ01": "Pick one type per property name and align it across documents",
	"PJ02": "Fix x-references annotations that point at unknown entities",
}

// getRecommendation returns the fix suggestion for a rule, or "".
func getRecommendation(ruleID string) string {
	return ruleRecommendations[ruleID]
}

// statusLabel maps a check status to its report label.
func statusLabel(status string) string {
	switch status {
	case "warn":
		return "WARN"
	case "error":
		return "ERROR"
	}
	return "PASS"
}

// checkIcon picks the status glyph for terminal output.
func checkIcon(styles *output.Styles, status string) string {
	switch status {
	case "warn":
		return styles.Warning.Render("!")
	case "error":
		return styles.Error.Render("✗")
	}
	return styles.Success.Render("✓")
}

// scoreStyle colors the score green, yellow below 70 and red below 50.
func scoreStyle(styles *output.Styles, score int) lipgloss.Style {
	switch {
	case score < 50:
		return styles.Error
	case score < 70:
		return styles.Warning
	}
	return styles.Success
}

// detailLimit bounds per-rule detail lines in terminal output; the
// full list is always present in JSON and markdown.
const detailLimit = 3

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()
	rule := styles.Muted.Render(strings.Repeat("=", 55))
	caser := cases.Title(language.English)

	r.Println("")
	r.Println(styles.Header1.Render("Schema Health Report"))
	r.Println(rule)
	r.Println("")

	r.Println(styles.Header2.Render("Schema Set"))
	r.Printf("   Documents: %d | Properties: %d | Parse errors: %d | Malformed nodes: %d\n",
		out.Summary.Documents, out.Summary.Properties, out.Summary.ParseErrors, out.Summary.MalformedNodes)
	r.Printf("   Rules: %d schema, %d project\n", out.Summary.SchemaRules, out.Summary.ProjectRules)
	r.Println("")

	r.Println(styles.Header2.Render("Health Checks"))
	r.Println("")

	group := ""
	for _, check := range out.HealthChecks {
		if check.Group != group {
			group = check.Group
			r.Println(styles.Bold.Render("   " + caser.String(group)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		line := fmt.Sprintf("%s %s: %s", checkIcon(styles, check.Status), check.RuleID, check.Name)
		if check.IssueCount > 0 {
			line += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println("   " + line)

		for i, detail := range check.Details {
			if i == detailLimit {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-detailLimit)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	r.Println(rule)
	score := scoreStyle(styles, out.Score).Render(fmt.Sprintf("%d/100", out.Score))
	r.Printf("   Health Score: %s\n", score)
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println("# Schema Health Report")
	r.Println("")

	r.Println("## Schema Set")
	r.Println("")
	summaryRows := []struct {
		label string
		value int
	}{
		{"Documents", out.Summary.Documents},
		{"Properties", out.Summary.Properties},
		{"Parse errors", out.Summary.ParseErrors},
		{"Malformed nodes", out.Summary.MalformedNodes},
		{"Schema rules", out.Summary.SchemaRules},
		{"Project rules", out.Summary.ProjectRules},
	}
	for _, row := range summaryRows {
		r.Printf("- **%s**: %d\n", row.label, row.value)
	}
	r.Println("")

	r.Println("## Health Checks")
	r.Println("")

	group := ""
	caser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != group {
			group = check.Group
			r.Println("### " + caser.String(group))
			r.Println("")
		}

		r.Printf("- **[%s]** %s: %s", statusLabel(check.Status), check.RuleID, check.Name)
		if check.IssueCount > 0 {
			r.Printf(" (%d issues)", check.IssueCount)
		}
		r.Println("")

		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	r.Println("## Health Score")
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}
