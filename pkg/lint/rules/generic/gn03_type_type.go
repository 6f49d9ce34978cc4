package generic

import (
	"fmt"

	"github.com/apistyle/apilint/pkg/lint"
)

func init() {
	lint.Register(TypeType)
}

// TypeType requires type discriminators to be strings.
var TypeType = lint.RuleDef{
	ID:          "GN03",
	Name:        "generic-field-type-type",
	Group:       "generic",
	Description: `Properties named "type" must be declared as strings`,
	Severity:    lint.SeverityMust,
	Check:       checkTypeType,

	Rationale: `A "type" property discriminates between resource variants.
Readable string discriminators keep payloads self-describing and let new
variants appear without renumbering. Numeric discriminators push a lookup
table into every consumer.`,

	BadExample: `properties:
  type:
    type: integer
    description: 1 = person, 2 = company`,

	GoodExample: `properties:
  type:
    type: string
    enum: [person, company]`,

	Fix: `Declare the discriminator as type string, optionally with an enum of
the allowed variants.`,
}

func checkTypeType(prop *lint.Property, opts map[string]any) []lint.Finding {
	if prop.Name != "type" {
		return nil
	}

	typ := prop.Schema.Type()
	if typ == "" || typ == "string" {
		return nil
	}

	return []lint.Finding{{
		RuleID:           "GN03",
		Rule:             "generic-field-type-type",
		Severity:         lint.SeverityMust,
		Path:             prop.Path,
		Message:          fmt.Sprintf("%q must be of type string, got %q", prop.Name, typ),
		DocumentationURL: lint.BuildDocURL("GN03"),
	}}
}
