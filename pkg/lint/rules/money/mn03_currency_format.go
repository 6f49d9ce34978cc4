package money

import (
	"fmt"

	"github.com/apistyle/apilint/pkg/lint"
)

func init() {
	lint.Register(CurrencyFormat)
}

// CurrencyFormat flags currency properties that cannot hold a 3-letter
// ISO 4217 code.
var CurrencyFormat = lint.RuleDef{
	ID:          "MN03",
	Name:        "money-currency-format",
	Group:       "money",
	Description: "Currencies are 3-letter ISO 4217 code strings.",
	Severity:    lint.SeverityMust,
	Check:       checkCurrencyFormat,

	Rationale: `Currency codes are the ISO 4217 alpha codes (EUR, USD, CHF): exactly
three letters, always a string. Numeric currency declarations force consumers to
carry a lookup table, and length facets other than 3 cannot hold a valid code.`,

	BadExample: `currency:
  type: integer`,

	GoodExample: `currency:
  type: string
  minLength: 3
  maxLength: 3
  example: EUR`,
}

func checkCurrencyFormat(prop *lint.Property, _ map[string]any) []lint.Finding {
	if prop.Name != "currency" {
		return nil
	}

	typ := prop.Schema.Type()
	if typ == "" {
		return nil
	}
	if typ != "string" {
		return []lint.Finding{{
			RuleID:           "MN03",
			Rule:             "money-currency-format",
			Severity:         lint.SeverityMust,
			Path:             prop.Path,
			Message:          fmt.Sprintf("%q must be a 3-letter ISO 4217 code string, got type %q", prop.Name, typ),
			DocumentationURL: lint.BuildDocURL("MN03"),
		}}
	}

	// String currency: declared length facets must pin exactly 3.
	var findings []lint.Finding
	for _, facet := range []string{"minLength", "maxLength"} {
		if n, ok := prop.Schema.GetInt(facet); ok && n != 3 {
			findings = append(findings, lint.Finding{
				RuleID:           "MN03",
				Rule:             "money-currency-format",
				Severity:         lint.SeverityMust,
				Path:             prop.Path,
				Message:          fmt.Sprintf("%q declares %s: %d, which cannot hold a 3-letter ISO 4217 code", prop.Name, facet, n),
				DocumentationURL: lint.BuildDocURL("MN03"),
			})
		}
	}
	return findings
}
