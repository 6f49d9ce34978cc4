package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/apistyle/apilint/internal/cli"
)

// generateCLIDocs renders one page per command plus an index, straight
// from the cobra command tree so the docs cannot drift from --help.
func generateCLIDocs(outDir string) error {
	log.Printf("Writing CLI reference to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	pages := docCommands(root)

	if err := writeCLIIndex(outDir, root, pages); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	log.Printf("  wrote index.md")

	for _, cmd := range pages {
		if err := writeCommandPage(outDir, cmd); err != nil {
			return fmt.Errorf("failed to write %s page: %w", cmd.Name(), err)
		}
		log.Printf("  wrote %s.md", cmd.Name())
	}

	return nil
}

// docCommands returns the subcommands worth documenting. Hidden
// commands and the built-in help stay out of the reference.
func docCommands(root *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, sub := range root.Commands() {
		if !sub.IsAvailableCommand() || sub.Name() == "help" {
			continue
		}
		cmds = append(cmds, sub)
	}
	return cmds
}

func writeCLIIndex(outDir string, root *cobra.Command, commands []*cobra.Command) error {
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Command-line interface reference for apilint")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("apilint checks API schema documents against wire-format conventions from the command line: lint schemas, browse the rule catalog, and track findings across runs.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/apistyle/apilint/cmd/apilint@latest")

	w.Header(2, "Basic Usage")
	w.CodeBlock("bash", "apilint <command> [options]")

	w.Header(2, "Commands")
	rows := make([][]string, 0, len(commands))
	for _, cmd := range commands {
		name := cmd.Name()
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/cli/%s)", InlineCode(name), name),
			cleanDescription(cmd.Short),
		})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Paragraph("These flags are available on every command:")
	w.Table(flagTableHeaders, flagRows(root.PersistentFlags()))

	w.Header(2, "Environment Variables")
	w.Paragraph("Settings resolve in order: defaults, then apilint.yaml, then environment, then flags.")
	w.Table([]string{"Variable", "Description"}, [][]string{
		{InlineCode("APILINT_SCHEMAS_DIR"), "Default schema documents directory"},
		{InlineCode("APILINT_RULES_DIR"), "Default custom rules directory"},
		{InlineCode("APILINT_STATE_PATH"), "Default run history database path"},
		{InlineCode("APILINT_OUTPUT"), "Default output format"},
		{InlineCode("APILINT_VERBOSE"), "Enable verbose output"},
		{InlineCode("NO_COLOR"), "Disable colored output"},
	})

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "No findings at or above the failure threshold"},
		{InlineCode("1"), "Findings at or above the threshold, or an error (check stderr)"},
	})
	w.Paragraph("`apilint check` picks its threshold from `--fail-on` (default: `must`).")

	w.Header(2, "Getting Help")
	w.CodeBlock("bash", `# Top-level help
apilint help
apilint --help

# Help for one command
apilint check --help`)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

func writeCommandPage(outDir string, cmd *cobra.Command) error {
	w := NewMarkdownWriter()

	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	w.CodeBlock("bash", usageLine(cmd))

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		aliases := make([]string, len(cmd.Aliases))
		for i, alias := range cmd.Aliases {
			aliases[i] = InlineCode(alias)
		}
		w.BulletList(aliases)
	}

	if cmd.HasSubCommands() {
		w.Header(2, "Subcommands")
		var rows [][]string
		for _, sub := range cmd.Commands() {
			if sub.Hidden {
				continue
			}
			rows = append(rows, []string{
				InlineCode(sub.Name()),
				cleanDescription(sub.Short),
			})
		}
		w.Table([]string{"Subcommand", "Description"}, rows)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		w.Table(flagTableHeaders, flagRows(cmd.LocalFlags()))
	}
	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		w.Table(flagTableHeaders, flagRows(cmd.InheritedFlags()))
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}

	return os.WriteFile(filepath.Join(outDir, cmd.Name()+".md"), w.Bytes(), 0600)
}

// usageLine renders the command's usage with the binary name in front.
func usageLine(cmd *cobra.Command) string {
	if cmd.HasSubCommands() {
		return fmt.Sprintf("apilint %s <subcommand> [options]", cmd.Name())
	}
	use := cmd.UseLine()
	if strings.HasPrefix(use, "apilint") {
		return use
	}
	return "apilint " + use
}

var flagTableHeaders = []string{"Option", "Default", "Description"}

// flagRows renders a flag set as table rows. Shorthands ride along in
// the option column.
func flagRows(flags *pflag.FlagSet) [][]string {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		names := []string{"--" + f.Name}
		if f.Shorthand != "" {
			names = append(names, "-"+f.Shorthand)
		}
		def := f.DefValue
		if def != "" && f.Value.Type() == "string" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{
			InlineCode(strings.Join(names, ", ")),
			def,
			cleanDescription(f.Usage),
		})
	})
	return rows
}

// dedent strips the common leading indentation cobra examples carry.
func dedent(s string) string {
	lines := strings.Split(s, "\n")

	margin := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin <= 0 {
		return strings.TrimSpace(s)
	}

	for i, line := range lines {
		if len(line) >= margin {
			lines[i] = line[margin:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
