package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/apistyle/apilint/internal/cli/config"
	"github.com/apistyle/apilint/internal/cli/output"
	"github.com/apistyle/apilint/internal/state"
	"github.com/apistyle/apilint/internal/watch"
	"github.com/apistyle/apilint/pkg/lint"
	"github.com/apistyle/apilint/pkg/lint/project"
	_ "github.com/apistyle/apilint/pkg/lint/project/rules" // register project rules
	_ "github.com/apistyle/apilint/pkg/lint/rules"         // register schema rules
	"github.com/apistyle/apilint/pkg/schema"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Path        string   // File or directory path
	Format      string   // Output format: text, json
	Disable     []string // Rule IDs to disable
	Severity    string   // Report threshold: must, should
	Rules       []string // Run only specific rules
	SkipProject bool     // Skip cross-document rules
	Save        bool     // Record the run in history
	Baseline    string   // Run ID (or "latest") to report new findings against
	Watch       bool     // Re-check when schema files change
	FailOn      string   // Exit non-zero on: must, should, never
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Check schema documents against conventions",
		Long: `Analyze API schema documents for convention violations.

Walks every property of your schema documents and reports where they
deviate from the documented naming and typing conventions. Rules can
be configured in apilint.yaml.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Check all schemas
  apilint check

  # Check a specific file or directory
  apilint check ./schemas/billing

  # Output as JSON
  apilint check --format json

  # Disable specific rules
  apilint check --disable MN02,RF01

  # Only report binding violations (ignore SHOULD findings)
  apilint check --severity must

  # Record the run and compare the next one against it
  apilint check --save
  apilint check --baseline latest

  # Re-check whenever a schema file changes
  apilint check --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Path = args[0]
			}
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "should", "Minimum severity to report: must, should")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVar(&opts.SkipProject, "skip-project", false, "Skip cross-document rules")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "Record this run in history")
	cmd.Flags().StringVar(&opts.Baseline, "baseline", "", "Report only findings new since a saved run (run ID or \"latest\")")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-check when schema files change")
	cmd.Flags().StringVar(&opts.FailOn, "fail-on", "must", "Exit non-zero on findings at or above: must, should, never")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	switch opts.FailOn {
	case "must", "should", "never":
	default:
		return fmt.Errorf("invalid --fail-on value %q (valid: must, should, never)", opts.FailOn)
	}
	if _, ok := lint.ParseSeverity(opts.Severity); !ok && opts.Severity != "" {
		return fmt.Errorf("invalid --severity value %q (valid: must, should)", opts.Severity)
	}

	needStore := opts.Save || opts.Baseline != ""
	var (
		cmdCtx  *CommandContext
		cleanup func()
		err     error
	)
	if needStore {
		cmdCtx, cleanup, err = NewCommandContext(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
	} else {
		cmdCtx = NewCommandContextWithoutStore(cmd)
	}

	cfg := cmdCtx.Cfg
	r := rendererFor(cmd, cmdCtx, opts.Format)

	// Re-registering a custom rule on repeat runs is a no-op upsert
	if n, err := loadCustomRules(cfg, cmdCtx.Logger); err != nil {
		return err
	} else if n > 0 {
		cmdCtx.Logger.Debug("loaded custom rules", "count", n)
	}

	lintCfg := buildCheckConfig(cfg, opts)

	target := opts.Path
	if target == "" {
		target = cfg.SchemasDir
	}
	if _, err := os.Stat(target); os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s\nHint: Create the directory or use --schemas-dir to specify a different path", target)
	}

	if opts.Watch {
		return runCheckWatch(cmd, cmdCtx, r, lintCfg, target, opts)
	}
	return runCheckOnce(cmd.Context(), cmdCtx, r, lintCfg, target, opts)
}

// runCheckOnce performs one full check pass: load, check, project
// rules, save, baseline diff, render, exit code.
func runCheckOnce(ctx context.Context, cmdCtx *CommandContext, r *output.Renderer, lintCfg *lint.Config, target string, opts *CheckOptions) error {
	cfg := cmdCtx.Cfg

	docs, parseErrs, err := loadDocuments(target, cfg.Extensions)
	if err != nil {
		return err
	}
	for _, perr := range parseErrs {
		r.Error(perr.Error())
	}
	if len(docs) == 0 && len(parseErrs) == 0 {
		r.Println("No schema documents found in " + target)
		return nil
	}

	results, err := checkDocuments(ctx, docs, lintCfg)
	if err != nil {
		if opts.Save && cmdCtx.Store != nil {
			recordFailedRun(cmdCtx, err)
		}
		return err
	}

	var projectFindings []project.Finding
	if !opts.SkipProject && projectRulesEnabled(cfg) {
		pctx := project.NewContext(docs, "")
		projectFindings = project.NewAnalyzer(lintCfg).Analyze(pctx)
	}

	// History records the full finding set; threshold and baseline
	// filtering only shape what gets reported.
	if opts.Save && cmdCtx.Store != nil {
		if err := saveRun(cmdCtx, len(docs), results, projectFindings); err != nil {
			return err
		}
	}

	threshold := parseThreshold(opts.Severity)
	results = filterResultsBySeverity(results, threshold)
	projectFindings = filterProjectBySeverity(projectFindings, threshold)

	var baselineID string
	if opts.Baseline != "" {
		results, projectFindings, baselineID, err = applyBaseline(cmdCtx.Store, opts.Baseline, results, projectFindings)
		if err != nil {
			return err
		}
	}

	summary := summarize(len(docs), results, projectFindings)
	renderCheckResults(r, results, projectFindings, summary, baselineID)

	return checkFailure(summary, len(parseErrs), opts.FailOn)
}

// runCheckWatch runs an initial check, then re-checks on every change
// batch until interrupted. Findings never exit watch mode.
func runCheckWatch(cmd *cobra.Command, cmdCtx *CommandContext, r *output.Renderer, lintCfg *lint.Config, target string, opts *CheckOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runPass := func() {
		if err := runCheckOnce(ctx, cmdCtx, r, lintCfg, target, opts); err != nil {
			r.Error(err.Error())
		}
	}
	runPass()

	watchDir := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		watchDir = filepath.Dir(target)
	}

	debounce := time.Duration(cmdCtx.Cfg.GetWatchConfig().DebounceMS) * time.Millisecond
	w := watch.New(watchDir, cmdCtx.Cfg.Extensions, debounce, cmdCtx.Logger)

	r.Println("")
	r.Printf("Watching %s for changes (Ctrl+C to stop)\n", watchDir)
	return w.Run(ctx, func(paths []string) {
		r.Println("")
		r.Printf("Change detected (%d files), re-checking...\n", len(paths))
		runPass()
	})
}

func buildCheckConfig(cfg *config.Config, opts *CheckOptions) *lint.Config {
	// Project config first (lower precedence)
	lintCfg := lint.NewConfigFromLint(cfg.Lint)

	// Apply CLI overrides (higher precedence)
	for _, id := range opts.Disable {
		lintCfg.Disable(strings.TrimSpace(id))
	}

	// If --rule specified, disable all others
	if len(opts.Rules) > 0 {
		enabledSet := make(map[string]bool)
		for _, id := range opts.Rules {
			enabledSet[strings.TrimSpace(id)] = true
		}
		for _, rule := range lint.GetAll() {
			if !enabledSet[rule.ID] && !enabledSet[rule.Name] {
				lintCfg.Disable(rule.ID)
			}
		}
		for _, rule := range project.GetAll() {
			if !enabledSet[rule.ID] && !enabledSet[rule.Name] {
				lintCfg.Disable(rule.ID)
			}
		}
	}

	return lintCfg
}

// projectRulesEnabled checks if cross-document rules are enabled in config.
func projectRulesEnabled(cfg *config.Config) bool {
	if cfg == nil || cfg.Lint == nil {
		return true
	}
	return cfg.Lint.Project.IsEnabled()
}

// loadDocuments loads one file or a directory tree. Documents that
// fail to parse are reported separately and never hide the rest.
func loadDocuments(target string, exts []string) ([]*schema.Document, []error, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", target, err)
	}

	if !info.IsDir() {
		doc, parseErr := schema.ParseFile(target)
		if parseErr != nil {
			return nil, []error{parseErr}, nil
		}
		return []*schema.Document{doc}, nil, nil
	}

	docs, loadErr := schema.LoadDir(target, exts)
	return docs, multierr.Errors(loadErr), nil
}

// docResult holds check results for a single document.
type docResult struct {
	Document string
	Findings []lint.Finding
}

// checkDocuments runs the checker across documents with bounded
// parallelism. Results keep document order regardless of completion
// order.
func checkDocuments(ctx context.Context, docs []*schema.Document, lintCfg *lint.Config) ([]docResult, error) {
	results := make([]docResult, len(docs))
	checker := lint.NewChecker(lintCfg)

	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, doc := range docs {
		eg.Go(func() error {
			findings, err := checker.Check(doc)
			if err != nil {
				return fmt.Errorf("%s: %w", doc.Name, err)
			}
			results[i] = docResult{Document: doc.Name, Findings: findings}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// parseThreshold converts a severity string to the report threshold.
func parseThreshold(s string) lint.Severity {
	if sev, ok := lint.ParseSeverity(s); ok {
		return sev
	}
	return lint.SeverityShould
}

func filterResultsBySeverity(results []docResult, threshold lint.Severity) []docResult {
	filtered := make([]docResult, 0, len(results))
	for _, res := range results {
		var findings []lint.Finding
		for _, f := range res.Findings {
			if f.Severity <= threshold {
				findings = append(findings, f)
			}
		}
		filtered = append(filtered, docResult{Document: res.Document, Findings: findings})
	}
	return filtered
}

func filterProjectBySeverity(findings []project.Finding, threshold lint.Severity) []project.Finding {
	var filtered []project.Finding
	for _, f := range findings {
		if f.Severity <= threshold {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// baselineKey identifies a finding across runs. Path alone is not
// enough: two documents can declare the same property path.
func baselineKey(document, rule, path string) string {
	return document + "\x00" + rule + "\x00" + path
}

// applyBaseline drops findings already present in the baseline run, so
// only regressions since that run get reported.
func applyBaseline(store *state.SQLiteStore, ref string, results []docResult, projectFindings []project.Finding) ([]docResult, []project.Finding, string, error) {
	run, err := resolveBaselineRun(store, ref)
	if err != nil {
		return nil, nil, "", err
	}

	saved, err := store.FindingsForRun(run.ID)
	if err != nil {
		return nil, nil, "", err
	}
	known := make(map[string]bool, len(saved))
	for _, f := range saved {
		known[baselineKey(f.Document, f.Rule, f.Path)] = true
	}

	diffed := make([]docResult, 0, len(results))
	for _, res := range results {
		var findings []lint.Finding
		for _, f := range res.Findings {
			if !known[baselineKey(res.Document, f.Rule, f.Path)] {
				findings = append(findings, f)
			}
		}
		diffed = append(diffed, docResult{Document: res.Document, Findings: findings})
	}

	var diffedProject []project.Finding
	for _, f := range projectFindings {
		if !known[baselineKey(f.Document, f.Rule, f.Path)] {
			diffedProject = append(diffedProject, f)
		}
	}

	return diffed, diffedProject, run.ID, nil
}

func resolveBaselineRun(store *state.SQLiteStore, ref string) (*state.Run, error) {
	if ref == "latest" {
		run, err := store.GetLatestRun()
		if err != nil {
			return nil, err
		}
		if run == nil {
			return nil, fmt.Errorf("no completed runs to compare against\nHint: Record one first with 'apilint check --save'")
		}
		return run, nil
	}
	return store.GetRun(ref)
}

// saveRun records one completed check run and its full finding set.
func saveRun(cmdCtx *CommandContext, documents int, results []docResult, projectFindings []project.Finding) error {
	run, err := cmdCtx.Store.CreateRun()
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	records := findingRecords(results, projectFindings)
	if err := cmdCtx.Store.SaveFindings(run.ID, records); err != nil {
		return fmt.Errorf("failed to save findings: %w", err)
	}
	if err := cmdCtx.Store.CompleteRun(run.ID, state.RunStatusCompleted, documents, len(records), ""); err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}

	cmdCtx.Logger.Debug("run saved", "run_id", run.ID, "findings", len(records))
	return nil
}

// recordFailedRun marks a run as failed when checking aborted. Best
// effort: history must never mask the original error.
func recordFailedRun(cmdCtx *CommandContext, cause error) {
	run, err := cmdCtx.Store.CreateRun()
	if err != nil {
		return
	}
	_ = cmdCtx.Store.CompleteRun(run.ID, state.RunStatusFailed, 0, 0, cause.Error())
}

func findingRecords(results []docResult, projectFindings []project.Finding) []state.FindingRecord {
	var records []state.FindingRecord
	for _, res := range results {
		for _, f := range res.Findings {
			records = append(records, state.FindingRecord{
				Document: res.Document,
				RuleID:   f.RuleID,
				Rule:     f.Rule,
				Kind:     f.Kind.String(),
				Severity: f.Severity.String(),
				Path:     f.Path,
				Message:  f.Message,
			})
		}
	}
	for _, f := range projectFindings {
		records = append(records, state.FindingRecord{
			Document: f.Document,
			RuleID:   f.RuleID,
			Rule:     f.Rule,
			Kind:     lint.KindConvention.String(),
			Severity: f.Severity.String(),
			Path:     f.Path,
			Message:  f.Message,
		})
	}
	return records
}

func summarize(documents int, results []docResult, projectFindings []project.Finding) output.CheckSummary {
	summary := output.CheckSummary{DocumentsChecked: documents}
	count := func(sev lint.Severity, kind lint.Kind) {
		summary.TotalFindings++
		if kind == lint.KindMalformedNode {
			summary.Malformed++
			return
		}
		switch sev {
		case lint.SeverityMust:
			summary.Must++
		case lint.SeverityShould:
			summary.Should++
		}
	}
	for _, res := range results {
		for _, f := range res.Findings {
			count(f.Severity, f.Kind)
		}
	}
	for _, f := range projectFindings {
		count(f.Severity, lint.KindConvention)
	}
	return summary
}

// renderCheckResults renders findings in the renderer's mode. JSON
// mode always emits a document, even for a clean run.
func renderCheckResults(r *output.Renderer, results []docResult, projectFindings []project.Finding, summary output.CheckSummary, baselineID string) {
	if r.EffectiveMode() == output.ModeJSON {
		renderCheckJSON(r, results, projectFindings, summary, baselineID)
		return
	}

	if summary.TotalFindings == 0 {
		if baselineID != "" {
			r.Success("No new findings since run " + baselineID)
			return
		}
		r.Success("No convention violations found")
		return
	}

	if baselineID != "" {
		r.Println(r.Styles().Muted.Render("New findings since run " + baselineID))
		r.Println("")
	}

	for _, res := range results {
		if len(res.Findings) == 0 {
			continue
		}
		r.Println(r.Styles().Path.Render(res.Document))
		for _, f := range res.Findings {
			id := f.RuleID
			if id == "" {
				id = f.Rule
			}
			r.Printf("  %s  %s  %s  %s\n",
				findingSeverityStyle(r, f.Severity),
				r.Styles().Bold.Render(fmt.Sprintf("%-5s", id)),
				r.Styles().Muted.Render(f.Path),
				f.Message,
			)
		}
		r.Println("")
	}

	if len(projectFindings) > 0 {
		r.Println(r.Styles().Bold.Render("Cross-document results:"))
		for _, f := range projectFindings {
			r.Printf("  %s  %s  %s  %s\n",
				findingSeverityStyle(r, f.Severity),
				r.Styles().Bold.Render(fmt.Sprintf("%-5s", f.RuleID)),
				r.Styles().Muted.Render(f.Document+f.Path),
				f.Message,
			)
		}
		r.Println("")
	}

	// Print summary
	summaryParts := []string{fmt.Sprintf("%d findings", summary.TotalFindings)}
	if summary.Must > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d must", summary.Must))
	}
	if summary.Should > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d should", summary.Should))
	}
	if summary.Malformed > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d malformed nodes", summary.Malformed))
	}
	r.Printf("Summary: %s in %d documents\n", strings.Join(summaryParts, ", "), summary.DocumentsChecked)
}

func renderCheckJSON(r *output.Renderer, results []docResult, projectFindings []project.Finding, summary output.CheckSummary, baselineID string) {
	jsonOutput := output.CheckOutput{
		Summary:  summary,
		Baseline: baselineID,
	}
	for _, res := range results {
		if len(res.Findings) == 0 {
			continue
		}
		fileResult := output.CheckFileResult{Document: res.Document}
		for _, f := range res.Findings {
			fileResult.Findings = append(fileResult.Findings, output.CheckFinding{
				RuleID:           f.RuleID,
				Rule:             f.Rule,
				Kind:             f.Kind.String(),
				Severity:         f.Severity.String(),
				Path:             f.Path,
				Message:          f.Message,
				DocumentationURL: f.DocumentationURL,
			})
		}
		jsonOutput.Documents = append(jsonOutput.Documents, fileResult)
	}
	for _, f := range projectFindings {
		jsonOutput.Project = append(jsonOutput.Project, output.ProjectFinding{
			RuleID:           f.RuleID,
			Rule:             f.Rule,
			Severity:         f.Severity.String(),
			Document:         f.Document,
			Path:             f.Path,
			Message:          f.Message,
			DocumentationURL: f.DocumentationURL,
		})
	}
	_ = r.JSON(jsonOutput)
}

func findingSeverityStyle(r *output.Renderer, sev lint.Severity) string {
	switch sev {
	case lint.SeverityMust:
		return r.Styles().Error.Render("MUST  ")
	case lint.SeverityShould:
		return r.Styles().Warning.Render("SHOULD")
	default:
		return r.Styles().Muted.Render(sev.String())
	}
}

// checkFailure maps the summary to the command's exit behavior.
// Documents that failed to parse fail the run unless --fail-on never.
func checkFailure(summary output.CheckSummary, parseFailures int, failOn string) error {
	if failOn == "never" {
		return nil
	}
	if parseFailures > 0 {
		return fmt.Errorf("%d document(s) failed to parse", parseFailures)
	}

	switch failOn {
	case "must":
		if summary.Must > 0 || summary.Malformed > 0 {
			return fmt.Errorf("convention violations found")
		}
	case "should":
		if summary.TotalFindings > 0 {
			return fmt.Errorf("convention violations found")
		}
	}
	return nil
}
