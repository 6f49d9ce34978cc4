package lint

import (
	"github.com/apistyle/apilint/pkg/core"
	"github.com/apistyle/apilint/pkg/schema"
)

// Severity re-exports core.Severity so rule packages only import lint.
type Severity = core.Severity

// Severity levels for findings.
const (
	SeverityMust   = core.SeverityMust
	SeverityShould = core.SeverityShould
)

// ParseSeverity converts a string to a Severity value.
func ParseSeverity(s string) (Severity, bool) {
	return core.ParseSeverity(s)
}

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition. Rules are stateless value
// objects defined at process start - all context comes via the Check
// function parameters, so one rule set serves any number of concurrent
// check runs.
type RuleDef struct {
	ID          string    // Unique identifier, e.g., "MN01"
	Name        string    // Convention name, e.g., "money-amount-format"
	Group       string    // Category, e.g., "money", "generic", "address"
	Description string    // Human-readable description
	Severity    Severity  // Default severity (config may override)
	Check       CheckFunc // The check function
	ConfigKeys  []string  // Configuration keys this rule accepts (for rule-specific options)

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Schema snippet showing the anti-pattern
	GoodExample string // Schema snippet showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// CheckFunc inspects one visited property and returns findings.
// Rules self-select on the property name and must treat the schema
// tree as read-only. The opts parameter carries rule-specific options
// from configuration.
type CheckFunc func(prop *Property, opts map[string]any) []Finding

// Info returns the rule metadata DTO for documentation/tooling.
func (d RuleDef) Info() core.RuleInfo {
	return core.RuleInfo{
		ID:              d.ID,
		Name:            d.Name,
		Group:           d.Group,
		Description:     d.Description,
		DefaultSeverity: d.Severity.String(),
		ConfigKeys:      d.ConfigKeys,
		Type:            "schema",
		Rationale:       d.Rationale,
		BadExample:      d.BadExample,
		GoodExample:     d.GoodExample,
		Fix:             d.Fix,
	}
}

// =============================================================================
// Property context
// =============================================================================

// Property is the traversal context handed to rule checks: one named
// property together with its schema node and the mapping that declares
// it (so rules can look at siblings).
type Property struct {
	// Name is the declared property name, matched case-sensitively.
	Name string

	// Path is the RFC 6901 JSON pointer to the property's schema node.
	Path string

	// Schema is the property's schema node. Never nil: malformed nodes
	// are reported by the walker and not handed to rules.
	Schema *schema.Object

	// Siblings is the "properties" mapping that declares this property,
	// including the property itself.
	Siblings *schema.Object
}

// Sibling returns the schema node of a sibling property, if it is
// declared and well-formed.
func (p *Property) Sibling(name string) (*schema.Object, bool) {
	return p.Siblings.GetObject(name)
}

// =============================================================================
// Findings
// =============================================================================

// Kind separates convention findings from structural ones.
type Kind int

const (
	// KindConvention reports a violated naming or typing convention.
	KindConvention Kind = iota
	// KindMalformedNode reports a structurally invalid schema node that
	// the walker skipped.
	KindMalformedNode
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConvention:
		return "CONVENTION"
	case KindMalformedNode:
		return "MALFORMED_NODE"
	default:
		return "UNKNOWN"
	}
}

// Finding is one reported deviation from a documented convention, or a
// malformed node the walker skipped.
type Finding struct {
	RuleID   string   // e.g., "MN01"; empty for malformed-node findings
	Rule     string   // convention name, e.g., "money-amount-format"
	Kind     Kind     // CONVENTION or MALFORMED_NODE
	Severity Severity // MUST or SHOULD
	Path     string   // JSON pointer to the offending node
	Message  string   // human-readable explanation

	// DocumentationURL links to the rule's documentation page.
	DocumentationURL string
}
