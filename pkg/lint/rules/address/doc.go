// Package address contains rules for the shape of address objects. Both
// rules trigger on properties named "address"; loose street or city fields
// elsewhere in a document are left alone.
//
// Rules in this package:
//
//   - AD01: address-required-field - addresses declare street, city, zip, country_code
//   - AD02: address-field-type - the conventional address fields are strings
package address
