// Package project provides cross-document linting for apilint.
//
// Unlike schema-level linting which checks one property at a time,
// project-level linting indexes every document in a schema set and
// looks for disagreements between them: the same property name
// declared with different types, or references to entities no
// document defines.
//
// # Rule Categories
//
//   - consistency (PJ*): cross-document agreement on types and references
//
// # Entity Names
//
// A document defines one entity, named by its title field when present
// and by its file name otherwise. Names are compared in snake_case, so
// a title of "SalesOrder" matches a reference to "SalesOrder" or
// "sales_order".
//
// # Usage
//
// Index the parsed documents and run the analyzer:
//
//	ctx := project.NewContext(docs, "")
//	analyzer := project.NewAnalyzer(config)
//	findings := analyzer.Analyze(ctx)
package project
