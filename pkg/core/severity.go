package core

import "strings"

// =============================================================================
// Severity
// =============================================================================

// Severity is the strength of the guideline a finding reports against,
// following RFC 2119 keywords.
type Severity int

// Severity levels for findings. Must orders before Should so that
// threshold filtering can compare numerically.
const (
	// SeverityMust marks a violation of a binding convention.
	SeverityMust Severity = iota
	// SeverityShould marks a deviation from a recommended convention.
	SeverityShould
)

// String returns the RFC 2119 keyword for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityMust:
		return "MUST"
	case SeverityShould:
		return "SHOULD"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity reads a severity keyword, case-insensitively. Unknown
// keywords report false and fall back to SeverityShould.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "must":
		return SeverityMust, true
	case "should":
		return SeverityShould, true
	default:
		return SeverityShould, false
	}
}

// =============================================================================
// RuleInfo
// =============================================================================

// RuleInfo is the behavior-free rule metadata shared by listings, the
// docs generator and the HTTP API.
type RuleInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Group           string   `json:"group"`
	Description     string   `json:"description"`
	DefaultSeverity string   `json:"default_severity"`
	ConfigKeys      []string `json:"config_keys,omitempty"`
	Type            string   `json:"type"` // "schema" or "project"

	// Long-form documentation, empty for rules that don't ship any.
	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty"`
}
