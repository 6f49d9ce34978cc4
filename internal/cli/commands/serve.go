package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/apistyle/apilint/internal/cli/config"
	"github.com/apistyle/apilint/internal/server"
	"github.com/apistyle/apilint/pkg/lint"

	// Register the built-in rules for the check endpoint.
	_ "github.com/apistyle/apilint/pkg/lint/project/rules"
	_ "github.com/apistyle/apilint/pkg/lint/rules"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Host string
	Port int
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start a local HTTP server exposing the linter as a JSON API.

Endpoints:
- POST /api/check   lint a schema document
- GET  /api/rules   list registered rules
- GET  /api/runs    browse saved run history`,
		Example: `  # Start on the default address
  apilint serve

  # Bind a different port
  apilint serve --port 3000

  # Listen on all interfaces
  apilint serve --host 0.0.0.0`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Host, "host", "", "Host to bind (default: 127.0.0.1)")
	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := cmdCtx.Cfg
	logger := config.GetLogger(cmd.Context())

	srvCfg := cfg.GetServerConfig()
	host := srvCfg.Host
	if opts.Host != "" {
		host = opts.Host
	}
	port := srvCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	if _, err := loadCustomRules(cfg, logger); err != nil {
		return fmt.Errorf("failed to load custom rules: %w", err)
	}

	srv := server.NewServer(server.Config{
		Host:       host,
		Port:       port,
		LintConfig: lint.NewConfigFromLint(cfg.Lint),
		Store:      cmdCtx.Store,
		Logger:     logger,
	})

	r := cmdCtx.Renderer
	r.Printf("Starting API server on http://%s:%d\n", host, port)
	r.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Serve(ctx)
}
