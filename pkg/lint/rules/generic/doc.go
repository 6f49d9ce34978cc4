// Package generic contains rules for ubiquitous properties that appear on
// almost every resource: identifiers, timestamps, and type discriminators.
//
// Rules in this package:
//
//   - GN01: generic-field-id-type - "id" must be a string
//   - GN02: generic-field-timestamp-format - "created"/"modified" must be date-time strings
//   - GN03: generic-field-type-type - "type" must be a string
package generic
