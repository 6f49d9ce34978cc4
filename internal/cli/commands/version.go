package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand reports the binary's version and build metadata.
// Commit and date are blank on developer builds, which are linked
// without the release flags.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Long:  `Print the apilint version together with the commit, build date and Go toolchain it was built from.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "apilint %s\n", version)
			_, _ = fmt.Fprintln(out, "API schema convention linter")
			if gitCommit != "" {
				_, _ = fmt.Fprintf(out, "  commit:  %s\n", gitCommit)
			}
			if buildDate != "" {
				_, _ = fmt.Fprintf(out, "  built:   %s\n", buildDate)
			}
			_, _ = fmt.Fprintf(out, "  go:      %s\n", runtime.Version())
		},
	}
}
