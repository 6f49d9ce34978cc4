package generic

import (
	"fmt"

	"github.com/apistyle/apilint/pkg/lint"
)

func init() {
	lint.Register(TimestampFormat)
}

// TimestampFormat requires lifecycle timestamps to be date-time strings.
var TimestampFormat = lint.RuleDef{
	ID:          "GN02",
	Name:        "generic-field-timestamp-format",
	Group:       "generic",
	Description: `Properties named "created" or "modified" must be date-time strings`,
	Severity:    lint.SeverityMust,
	Check:       checkTimestampFormat,
	ConfigKeys:  []string{"formats"},

	Rationale: `Lifecycle timestamps are compared, sorted, and displayed across
time zones. A string with format date-time pins the wire representation to
RFC 3339, which every client stack can parse. Unix epochs and bare date
strings each lose information the other half of your consumers need.`,

	BadExample: `properties:
  created:
    type: integer
    description: Unix epoch seconds`,

	GoodExample: `properties:
  created:
    type: string
    format: date-time`,

	Fix: `Declare the timestamp as type string with format date-time and emit
RFC 3339 values. Use the "formats" option to accept additional formats such
as "date".`,
}

// timestampNames are the lifecycle properties this rule watches.
var timestampNames = map[string]bool{
	"created":  true,
	"modified": true,
}

func checkTimestampFormat(prop *lint.Property, opts map[string]any) []lint.Finding {
	if !timestampNames[prop.Name] {
		return nil
	}

	typ := prop.Schema.Type()
	if typ == "" {
		return nil
	}

	if typ != "string" {
		return []lint.Finding{{
			RuleID:           "GN02",
			Rule:             "generic-field-timestamp-format",
			Severity:         lint.SeverityMust,
			Path:             prop.Path,
			Message:          fmt.Sprintf("%q must be of type string with a date-time format, got %q", prop.Name, typ),
			DocumentationURL: lint.BuildDocURL("GN02"),
		}}
	}

	format := prop.Schema.Format()
	if isAcceptedTimestampFormat(format, lint.GetStringSliceOption(opts, "formats", nil)) {
		return nil
	}

	var msg string
	if format == "" {
		msg = fmt.Sprintf("%q declares no format; use format \"date-time\"", prop.Name)
	} else {
		msg = fmt.Sprintf("%q uses format %q; use format \"date-time\"", prop.Name, format)
	}

	return []lint.Finding{{
		RuleID:           "GN02",
		Rule:             "generic-field-timestamp-format",
		Severity:         lint.SeverityMust,
		Path:             prop.Path,
		Message:          msg,
		DocumentationURL: lint.BuildDocURL("GN02"),
	}}
}

func isAcceptedTimestampFormat(format string, accepted []string) bool {
	if len(accepted) == 0 {
		accepted = []string{"date-time"}
	}
	for _, a := range accepted {
		if format == a {
			return true
		}
	}
	return false
}
