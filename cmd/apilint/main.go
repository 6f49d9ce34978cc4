// Command apilint lints API schema documents against wire-format
// conventions.
package main

import (
	"os"

	"github.com/apistyle/apilint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
