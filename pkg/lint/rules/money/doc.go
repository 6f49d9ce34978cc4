// Package money provides rules for monetary object declarations.
// A money object couples an amount with the ISO 4217 currency it is
// denominated in; binary floating-point amounts silently lose cents.
//
// Rules in this package:
//   - MN01: Amounts use decimal-preserving declarations
//   - MN02: Amounts declare a sibling currency
//   - MN03: Currency is a 3-letter ISO 4217 string
package money
