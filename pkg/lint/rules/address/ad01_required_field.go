package address

import (
	"fmt"

	"github.com/apistyle/apilint/pkg/lint"
	"github.com/apistyle/apilint/pkg/schema"
)

func init() {
	lint.Register(RequiredField)
}

// RequiredField requires address objects to declare the conventional
// postal fields.
var RequiredField = lint.RuleDef{
	ID:          "AD01",
	Name:        "address-required-field",
	Group:       "address",
	Description: "Address objects must declare street, city, zip, and country_code",
	Severity:    lint.SeverityMust,
	Check:       checkRequiredField,
	ConfigKeys:  []string{"required_fields"},

	Rationale: `Addresses that share one shape can be validated, formatted, and
geocoded by one piece of code. Every omitted field becomes a special case in
each consumer, and country_code in particular cannot be recovered after the
fact.`,

	BadExample: `properties:
  address:
    type: object
    properties:
      street: {type: string}
      city: {type: string}`,

	GoodExample: `properties:
  address:
    type: object
    properties:
      street: {type: string}
      city: {type: string}
      zip: {type: string}
      country_code: {type: string}`,

	Fix: `Add the missing fields to the address object. The "required_fields"
option replaces the conventional list for schemas with a different postal
model.`,
}

// conventionalFields is the default postal shape, in reporting order.
var conventionalFields = []string{"street", "city", "zip", "country_code"}

func checkRequiredField(prop *lint.Property, opts map[string]any) []lint.Finding {
	if prop.Name != "address" {
		return nil
	}

	props, ok := prop.Schema.Properties()
	if !ok {
		if _, exists := prop.Schema.Get("properties"); exists {
			// Present but not a mapping; the walker reports that.
			return nil
		}
		if prop.Schema.Type() != "object" {
			return nil
		}
		props = schema.NewObject()
	}

	required := lint.GetStringSliceOption(opts, "required_fields", conventionalFields)

	var findings []lint.Finding
	for _, field := range required {
		if props.Has(field) {
			continue
		}
		findings = append(findings, lint.Finding{
			RuleID:           "AD01",
			Rule:             "address-required-field",
			Severity:         lint.SeverityMust,
			Path:             prop.Path,
			Message:          fmt.Sprintf("address is missing required field %q", field),
			DocumentationURL: lint.BuildDocURL("AD01"),
		})
	}
	return findings
}
