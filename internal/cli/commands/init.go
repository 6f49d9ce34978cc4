package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/apistyle/apilint/internal/cli/output"
)

// NewInitCommand builds the project scaffolding command.
func NewInitCommand() *cobra.Command {
	var force, example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new apilint project",
		Long: `Set up a directory as an apilint project.

The default scaffold holds a schemas/ directory with a starter
document, an apilint.yaml configuration file, and a .gitignore
covering the run history database.

With --example the scaffold is a working demo instead: sample schemas
exercising the built-in conventions (one of them deliberately broken)
plus a custom Starlark rule.`,
		Example: `  # Scaffold into the current directory
  apilint init

  # Scaffold the demo project into a fresh directory
  apilint init billing-api --example

  # Replace a previous scaffold
  apilint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
			return scaffoldProject(r, dir, force, example)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Create an example project with sample schemas and a custom rule")

	return cmd
}

func scaffoldProject(r *output.Renderer, dir string, force, example bool) error {
	if err := ensureScaffoldTarget(dir, force); err != nil {
		return err
	}

	template := "minimal"
	if example {
		template = "example"
	}
	if err := writeTemplate(template, dir, force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	files, _ := templateFiles(template)
	if example {
		reportExampleScaffold(r, files)
	} else {
		reportScaffold(r, files)
	}
	return nil
}

// ensureScaffoldTarget creates the target directory and guards against
// clobbering an existing project.
func ensureScaffoldTarget(dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "apilint.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("apilint.yaml already exists. Use --force to overwrite")
	}
	return nil
}

func reportScaffold(r *output.Renderer, files []string) {
	printScaffoldFiles(r, files)

	r.Println("")
	r.Success("apilint project initialized")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Add schema documents to schemas/")
	r.Println("  2. Run 'apilint check' to lint them")
	r.Println("  3. Run 'apilint rules' to browse the conventions")
}

func reportExampleScaffold(r *output.Renderer, files []string) {
	styles := r.Styles()
	groups := groupScaffoldFiles(files)

	sections := []struct {
		title string
		key   string
	}{
		{"Configuration", "config"},
		{"Schemas", "schemas"},
		{"Custom rules", "rules"},
	}
	for _, section := range sections {
		r.Println(styles.Header2.Render(section.title))
		printScaffoldFiles(r, groups[section.key])
		r.Println("")
	}

	r.Success("apilint example project initialized")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  apilint check          Lint the sample schemas (legacy_invoice.yaml has findings)")
	r.Println("  apilint check --save   Record a run to diff against later")
	r.Println("  apilint rules          Browse rule documentation")
	r.Println("  apilint serve          Expose the linter as an HTTP API")
}

func printScaffoldFiles(r *output.Renderer, files []string) {
	styles := r.Styles()
	for _, f := range files {
		r.Printf("  %s %s\n", styles.Success.Render("✓"), f)
	}
}
