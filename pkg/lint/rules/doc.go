// Package rules provides the built-in convention rules for apilint.
//
// Rules are organized by the vocabulary they police:
//   - money: Rules about monetary amounts and currencies (MN01-MN03)
//   - generic: Rules about ubiquitous fields like id and created (GN01-GN03)
//   - reference: Rules about cross-resource reference naming (RF01)
//   - address: Rules about the shape of address objects (AD01-AD02)
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/apistyle/apilint/pkg/lint/rules"
//
// Individual rule categories can also be imported:
//
//	import _ "github.com/apistyle/apilint/pkg/lint/rules/money"
//	import _ "github.com/apistyle/apilint/pkg/lint/rules/generic"
package rules
