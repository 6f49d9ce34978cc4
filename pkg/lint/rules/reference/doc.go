// Package reference contains rules for properties that point at other
// resources. A property is treated as a reference only when it carries the
// reference annotation (x-references by default); plain "_id" suffixes on
// unannotated properties are never second-guessed.
//
// Rules in this package:
//
//   - RF01: reference-field-naming - references are named <referenced_type>_id
package reference
