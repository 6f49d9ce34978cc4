package address

import (
	"fmt"

	"github.com/apistyle/apilint/pkg/lint"
	"github.com/apistyle/apilint/pkg/schema"
)

func init() {
	lint.Register(FieldType)
}

// FieldType requires the conventional address fields to be strings.
var FieldType = lint.RuleDef{
	ID:          "AD02",
	Name:        "address-field-type",
	Group:       "address",
	Description: "Address fields street, city, zip, and country_code must be strings",
	Severity:    lint.SeverityMust,
	Check:       checkFieldType,

	Rationale: `Postal values are labels, not quantities. A numeric zip drops
leading zeros for half of New England, and numeric street numbers fall over
at "221B". Strings carry every national format unchanged.`,

	BadExample: `properties:
  address:
    type: object
    properties:
      zip: {type: integer}`,

	GoodExample: `properties:
  address:
    type: object
    properties:
      zip: {type: string}`,

	Fix: `Declare the address field as type string.`,
}

func checkFieldType(prop *lint.Property, opts map[string]any) []lint.Finding {
	if prop.Name != "address" {
		return nil
	}

	props, ok := prop.Schema.Properties()
	if !ok {
		return nil
	}

	var findings []lint.Finding
	for _, field := range conventionalFields {
		child, ok := props.GetObject(field)
		if !ok {
			continue
		}
		typ := child.Type()
		if typ == "" || typ == "string" {
			continue
		}
		childPath := schema.AppendToken(schema.AppendToken(prop.Path, "properties"), field)
		findings = append(findings, lint.Finding{
			RuleID:           "AD02",
			Rule:             "address-field-type",
			Severity:         lint.SeverityMust,
			Path:             childPath,
			Message:          fmt.Sprintf("address field %q must be of type string, got %q", field, typ),
			DocumentationURL: lint.BuildDocURL("AD02"),
		})
	}
	return findings
}
