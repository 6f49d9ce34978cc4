package money

import (
	"fmt"

	"github.com/apistyle/apilint/pkg/lint"
)

func init() {
	lint.Register(AmountFormat)
}

// AmountFormat flags monetary amounts declared with lossy numeric types.
var AmountFormat = lint.RuleDef{
	ID:          "MN01",
	Name:        "money-amount-format",
	Group:       "money",
	Description: "Monetary amounts keep arbitrary precision; never binary floating-point.",
	Severity:    lint.SeverityMust,
	ConfigKeys:  []string{"decimal_formats"},
	Check:       checkAmountFormat,

	Rationale: `Binary floating-point types cannot represent most decimal fractions
exactly, so float and double amounts accumulate rounding errors the moment they are
summed or converted. Monetary amounts must be declared as strings or with an
arbitrary-precision decimal format.`,

	BadExample: `amount:
  type: number
  format: double`,

	GoodExample: `amount:
  type: string
  format: decimal
  example: "99.95"`,

	Fix: `Declare the amount as type string, or keep type number and set format to a
decimal-preserving representation.`,
}

func checkAmountFormat(prop *lint.Property, opts map[string]any) []lint.Finding {
	if prop.Name != "amount" {
		return nil
	}
	if prop.Schema.Type() != "number" {
		return nil
	}

	format := prop.Schema.Format()
	if isDecimalFormat(format, lint.GetStringSliceOption(opts, "decimal_formats", nil)) {
		return nil
	}

	var msg string
	switch format {
	case "float", "double":
		msg = fmt.Sprintf("%q uses binary floating-point format %q; monetary amounts must keep arbitrary precision", prop.Name, format)
	case "":
		msg = fmt.Sprintf("%q declares no decimal-preserving format; use type string or format \"decimal\"", prop.Name)
	default:
		msg = fmt.Sprintf("%q uses format %q, which is not a decimal-preserving representation", prop.Name, format)
	}

	return []lint.Finding{{
		RuleID:           "MN01",
		Rule:             "money-amount-format",
		Severity:         lint.SeverityMust,
		Path:             prop.Path,
		Message:          msg,
		DocumentationURL: lint.BuildDocURL("MN01"),
	}}
}

// isDecimalFormat reports whether a declared numeric format preserves
// arbitrary precision. The accepted set can be extended per project via
// the decimal_formats option.
func isDecimalFormat(format string, extra []string) bool {
	if format == "decimal" {
		return true
	}
	for _, f := range extra {
		if format == f {
			return true
		}
	}
	return false
}
