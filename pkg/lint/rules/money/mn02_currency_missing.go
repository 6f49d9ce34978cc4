package money

import (
	"fmt"

	"github.com/apistyle/apilint/pkg/lint"
)

func init() {
	lint.Register(CurrencyMissing)
}

// CurrencyMissing flags amounts declared without a currency sibling.
var CurrencyMissing = lint.RuleDef{
	ID:          "MN02",
	Name:        "money-currency-missing",
	Group:       "money",
	Description: "Objects declaring an amount also declare its currency.",
	Severity:    lint.SeverityMust,
	Check:       checkCurrencyMissing,

	Rationale: `An amount without a currency is a number, not money. Consumers end up
assuming a default currency, and those assumptions diverge across services the first
time a second currency appears.`,

	BadExample: `properties:
  amount:
    type: string
    format: decimal`,

	GoodExample: `properties:
  amount:
    type: string
    format: decimal
  currency:
    type: string
    example: EUR`,
}

func checkCurrencyMissing(prop *lint.Property, _ map[string]any) []lint.Finding {
	if prop.Name != "amount" {
		return nil
	}
	if prop.Siblings.Has("currency") {
		return nil
	}

	return []lint.Finding{{
		RuleID:           "MN02",
		Rule:             "money-currency-missing",
		Severity:         lint.SeverityMust,
		Path:             prop.Path,
		Message:          fmt.Sprintf("%q is declared without a sibling \"currency\" property", prop.Name),
		DocumentationURL: lint.BuildDocURL("MN02"),
	}}
}
