package rules

// Import all project rule subpackages to register them with the
// project registry.
import (
	_ "github.com/apistyle/apilint/pkg/lint/project/rules/consistency"
)
