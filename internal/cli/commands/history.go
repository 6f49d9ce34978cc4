package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/apistyle/apilint/internal/cli/output"
	"github.com/apistyle/apilint/internal/state"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit  int    // Maximum runs to list
	Format string // Output format
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved check runs",
		Long: `List check runs recorded with 'apilint check --save'.

Each saved run keeps its full finding set, so past runs can serve as
baselines for 'apilint check --baseline <run-id>'.`,
		Example: `  # List recent runs
  apilint history

  # List more runs
  apilint history --limit 50

  # Show one run's findings
  apilint history show 3f8a1c2e-...

  # Output as JSON
  apilint history --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryList(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of runs to list")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	showCmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a saved run and its findings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(cmd, args[0], opts)
		},
	}
	showCmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")
	cmd.AddCommand(showCmd)

	return cmd
}

func runHistoryList(cmd *cobra.Command, opts *HistoryOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := rendererFor(cmd, cmdCtx, opts.Format)

	runs, err := cmdCtx.Store.ListRuns(opts.Limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if r.EffectiveMode() == output.ModeJSON {
		if runs == nil {
			runs = []*state.Run{}
		}
		return r.JSON(struct {
			Runs []*state.Run `json:"runs"`
		}{Runs: runs})
	}

	if len(runs) == 0 {
		r.Println("No saved runs")
		r.Println(r.Styles().Muted.Render("Record one with 'apilint check --save'"))
		return nil
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("| Run ID | Status | Started | Duration | Documents | Findings |")
		r.Println("| --- | --- | --- | --- | --- | --- |")
		for _, run := range runs {
			r.Printf("| %s | %s | %s | %s | %d | %d |\n",
				run.ID, string(run.Status), formatRunTime(run.StartedAt),
				formatRunDuration(run), run.Documents, run.Findings)
		}
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run ID", "Status", "Started", "Duration", "Documents", "Findings"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.ID,
			string(run.Status),
			formatRunTime(run.StartedAt),
			formatRunDuration(run),
			run.Documents,
			run.Findings,
		})
	}
	t.Render()
	r.Printf("(%d runs)\n", len(runs))
	return nil
}

func runHistoryShow(cmd *cobra.Command, runID string, opts *HistoryOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := rendererFor(cmd, cmdCtx, opts.Format)

	run, err := cmdCtx.Store.GetRun(runID)
	if err != nil {
		return err
	}
	findings, err := cmdCtx.Store.FindingsForRun(runID)
	if err != nil {
		return fmt.Errorf("failed to get findings: %w", err)
	}

	if r.EffectiveMode() == output.ModeJSON {
		if findings == nil {
			findings = []state.FindingRecord{}
		}
		return r.JSON(struct {
			Run      *state.Run            `json:"run"`
			Findings []state.FindingRecord `json:"findings"`
		}{Run: run, Findings: findings})
	}

	styles := r.Styles()
	r.Println("")
	r.Println(styles.Header1.Render("Run " + run.ID))
	r.Println("")
	r.Printf("  %s: %s\n", styles.Bold.Render("Status"), string(run.Status))
	r.Printf("  %s: %s\n", styles.Bold.Render("Started"), formatRunTime(run.StartedAt))
	if run.CompletedAt != nil {
		r.Printf("  %s: %s\n", styles.Bold.Render("Completed"), formatRunTime(*run.CompletedAt))
	}
	r.Printf("  %s: %d\n", styles.Bold.Render("Documents"), run.Documents)
	r.Printf("  %s: %d\n", styles.Bold.Render("Findings"), run.Findings)
	if run.Error != "" {
		r.Printf("  %s: %s\n", styles.Bold.Render("Error"), run.Error)
	}
	r.Println("")

	if len(findings) == 0 {
		r.Success("No findings in this run")
		return nil
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("| Severity | Rule | Document | Path | Message |")
		r.Println("| --- | --- | --- | --- | --- |")
		for _, f := range findings {
			r.Printf("| %s | %s | %s | %s | %s |\n",
				f.Severity, findingRuleLabel(f), f.Document, f.Path, f.Message)
		}
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Severity", "Rule", "Document", "Path", "Message"})
	for _, f := range findings {
		t.AppendRow(table.Row{f.Severity, findingRuleLabel(f), f.Document, f.Path, f.Message})
	}
	t.Render()
	r.Printf("(%d findings)\n", len(findings))
	return nil
}

// findingRuleLabel prefers the short rule ID; malformed-node findings
// have none and show their rule name instead.
func findingRuleLabel(f state.FindingRecord) string {
	if f.RuleID != "" {
		return f.RuleID
	}
	return f.Rule
}

func formatRunTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatRunDuration(run *state.Run) string {
	if run.CompletedAt == nil {
		return "-"
	}
	d := run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond)
	if d < 0 {
		return "-"
	}
	return strings.TrimSpace(d.String())
}
