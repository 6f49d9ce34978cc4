// Package consistency contains cross-document rules. They run over an
// indexed project context instead of a single property.
//
// Rules in this package:
//
//   - PJ01: project-inconsistent-type - one property name, one type, everywhere
//   - PJ02: project-unresolved-reference - references point at defined entities
package consistency
