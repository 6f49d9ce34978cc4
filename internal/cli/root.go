// Package cli provides the command-line interface for apilint.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/apistyle/apilint/internal/cli/commands"
	"github.com/apistyle/apilint/internal/cli/config"
	"github.com/apistyle/apilint/internal/cli/output"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Build metadata, overridden via ldflags at release time.
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Context keys for values stashed by the root command.
type configKey struct{}
type rendererKey struct{}

// NewRootCmd assembles the apilint command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "apilint",
		Short: "apilint - API schema convention linter",
		Long: `apilint checks API schema documents against documented naming and
typing conventions.

It walks every property of your YAML or JSON schemas and reports where
money fields, identifiers, timestamps, references, and address shapes
deviate from the conventions, with MUST/SHOULD severity per finding.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "__complete":
				// These run without a project
				return nil
			}
			return bootstrap(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
API schema convention linter
`)

	registerGlobalFlags(rootCmd)

	for _, sub := range []*cobra.Command{
		commands.NewVersionCommand(Version, BuildDate, GitCommit),
		commands.NewCheckCommand(),
		commands.NewRulesCommand(),
		commands.NewDoctorCommand(),
		commands.NewHistoryCommand(),
		commands.NewServeCommand(),
		commands.NewInitCommand(),
		NewCompletionCommand(),
	} {
		rootCmd.AddCommand(sub)
	}

	return rootCmd
}

// registerGlobalFlags declares the persistent flags shared by every
// subcommand.
func registerGlobalFlags(rootCmd *cobra.Command) {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./apilint.yaml)")
	pf.String("schemas-dir", "", "Path to schema documents directory")
	pf.String("rules-dir", "", "Path to custom rules directory")
	pf.String("state", "", "Path to run history database")
	pf.BoolP("verbose", "v", false, "Verbose output")
	pf.StringP("output", "o", "", "Output format (auto|text|markdown|json)")
	pf.Bool("no-color", false, "Disable colored output")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// bootstrap loads and validates the configuration, then stashes the
// config, logger, and renderer in the command context where the
// subcommands expect them.
func bootstrap(cmd *cobra.Command) error {
	var err error
	cfg, err = config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	// The renderer and lipgloss both honor the NO_COLOR convention
	if cfg.NoColor {
		_ = os.Setenv("NO_COLOR", "1")
	}
	renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
	ctx = context.WithValue(ctx, config.LoggerKey(), logger)
	ctx = context.WithValue(ctx, rendererKey{}, renderer)
	cmd.SetContext(ctx)

	if cfg.Verbose {
		if configFile := config.GetConfigFileUsed(); configFile != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", configFile)
		}
	}

	return nil
}

// Execute runs the root command, reporting any error on stderr.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig returns the config stashed by the root command, or a
// default config when called outside a command run.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		SchemasDir: config.DefaultSchemasDir,
		RulesDir:   config.DefaultRulesDir,
		StatePath:  config.DefaultStateFile,
	}
}

// GetRenderer returns the renderer stashed by the root command, or an
// auto-mode renderer on the standard streams when none is present.
func GetRenderer(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*output.Renderer); ok {
		return r
	}
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}

// NewCompletionCommand builds the shell completion generator.
func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for apilint.

Load it directly into the current session:

  source <(apilint completion bash)
  apilint completion fish | source
  apilint completion powershell | Out-String | Invoke-Expression

or install it where your shell picks it up:

  apilint completion bash > /etc/bash_completion.d/apilint
  apilint completion zsh > "${fpath[1]}/_apilint"
  apilint completion fish > ~/.config/fish/completions/apilint.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
	}
}
