// Package lint provides the schema convention checking framework.
//
// # Architecture
//
// The lint package follows a modular architecture with three layers:
//
//  1. Root package (pkg/lint/): rule contracts, the registry, and the
//     document checker (traversal + rule dispatch)
//  2. Built-in rules (pkg/lint/rules/): convention rules grouped by
//     vocabulary (money, generic, reference, address)
//  3. Project subsystem (pkg/lint/project/): cross-document analysis
//     over a loaded schema set
//
// # Rule Registration
//
// Rules are automatically registered via init() functions when their
// packages are imported:
//
//	// Import built-in schema rules
//	import _ "github.com/apistyle/apilint/pkg/lint/rules"
//
//	// Import cross-document rules
//	import _ "github.com/apistyle/apilint/pkg/lint/project/rules"
//
// # Rule Categories
//
// Schema rules (per-document, applied property by property):
//   - MN (Money): amount/currency declarations of monetary objects
//   - GN (Generic): cross-entity fields id, created, modified, type
//   - RF (References): naming of annotated entity references
//   - AD (Address): the documented address shape
//
// Project rules (set-level):
//   - PJ (Project): consistency across the loaded document set
//
// # Checking a Document
//
//	doc, err := schema.ParseFile("customer.yaml")
//	if err != nil { ... }
//
//	checker := lint.NewChecker(lint.NewConfig())
//	findings, err := checker.Check(doc)
//
// Findings come back in traversal order: depth-first, pre-order over
// declared properties, declaration order breaking ties, rule ID order
// within one property. A malformed nested node yields a finding of kind
// MALFORMED_NODE and is skipped; only a nil document is an error.
//
// # Configuration
//
// Use Config to control which rules run and their severity. Rules can
// be addressed by ID or by convention name:
//
//	config := lint.NewConfig()
//	config.Disable("RF01")
//	config.SetSeverity("money-currency-format", lint.SeverityShould)
//	config.SetRuleOptions("MN01", map[string]any{"decimal_formats": []string{"decimal128"}})
//
// # Creating Custom Rules
//
// Use RuleDef and register from init():
//
//	var TotalsDecimal = lint.RuleDef{
//		ID:          "XC01",
//		Name:        "custom-total-decimal",
//		Group:       "custom",
//		Description: "total fields use decimal-preserving declarations",
//		Severity:    lint.SeverityShould,
//		Check:       checkTotalsDecimal,
//	}
//
//	func init() {
//		lint.Register(TotalsDecimal)
//	}
//
// User-defined rules can also be loaded from Starlark files at startup;
// see internal/starlark.
package lint
