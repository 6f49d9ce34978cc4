// Package core defines the shared language of the apilint system.
//
// This package contains:
//   - Severity (RFC 2119 MUST/SHOULD strength of a finding)
//   - RuleInfo (rule metadata DTO for tooling and the HTTP API)
//   - Configuration types (LintConfig, RuleOptions)
//
// The Golden Rule: pkg/core imports ONLY the stdlib.
// All other packages depend on core, not the reverse.
package core
