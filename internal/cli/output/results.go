package output

// JSON output structures for the check command. These are wire DTOs:
// severities and kinds travel as their string names, not enum values.

// CheckSummary aggregates counts across all checked documents.
type CheckSummary struct {
	DocumentsChecked int `json:"documents_checked"`
	TotalFindings    int `json:"total_findings"`
	Must             int `json:"must"`
	Should           int `json:"should"`
	Malformed        int `json:"malformed"`
}

// CheckFinding is one finding in JSON output.
type CheckFinding struct {
	RuleID           string `json:"rule_id,omitempty"`
	Rule             string `json:"rule"`
	Kind             string `json:"kind"`
	Severity         string `json:"severity"`
	Path             string `json:"path"`
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

// CheckFileResult holds the findings of a single document.
type CheckFileResult struct {
	Document string         `json:"document"`
	Findings []CheckFinding `json:"findings"`
}

// ProjectFinding is one cross-document finding in JSON output.
type ProjectFinding struct {
	RuleID           string `json:"rule_id"`
	Rule             string `json:"rule"`
	Severity         string `json:"severity"`
	Document         string `json:"document"`
	Path             string `json:"path"`
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

// CheckOutput is the complete JSON document emitted by check.
type CheckOutput struct {
	Summary   CheckSummary      `json:"summary"`
	Baseline  string            `json:"baseline,omitempty"`
	Documents []CheckFileResult `json:"documents,omitempty"`
	Project   []ProjectFinding  `json:"project,omitempty"`
}
