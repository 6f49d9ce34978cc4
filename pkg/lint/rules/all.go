package rules

// Blank imports pull in every rule group so their init functions run.
import (
	_ "github.com/apistyle/apilint/pkg/lint/rules/address"
	_ "github.com/apistyle/apilint/pkg/lint/rules/generic"
	_ "github.com/apistyle/apilint/pkg/lint/rules/money"
	_ "github.com/apistyle/apilint/pkg/lint/rules/reference"
)
