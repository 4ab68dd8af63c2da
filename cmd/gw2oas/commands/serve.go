package commands

import (
	"context"
	"fmt"

	"github.com/erraggy/gw2oas/converter"
	"github.com/erraggy/gw2oas/gwerrors"
	"github.com/erraggy/gw2oas/internal/docserver"
	"github.com/erraggy/gw2oas/internal/watch"
	"github.com/erraggy/gw2oas/validation"
	"github.com/spf13/cobra"
)

// ServeFlags contains flags for the serve command
type ServeFlags struct {
	Input     string
	Transform string
	Addr      string
	Validate  bool
}

func (a *app) newServeCommand() *cobra.Command {
	flags := &ServeFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the converted document over HTTP, rebuilding on change",
		Long: `Serve the converted document over HTTP.

Routes: /swagger.json, /swagger.yaml, /healthz and /metrics. The document is
rebuilt whenever the gateway declaration or rule chain changes; a failed
rebuild keeps the last good document and marks /healthz degraded.`,
		Example: `  gw2oas serve -i gateway.json
  gw2oas serve -i gateway.yaml -t chain.yaml --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") {
				flags.Addr = a.cfg.ServeAddr
			}
			if !cmd.Flags().Changed("validate") {
				flags.Validate = a.cfg.Validate
			}
			return a.runServe(cmd.Context(), flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.Input, "input", "i", "", "gateway declaration file (required)")
	f.StringVarP(&flags.Transform, "transform", "t", "", "rule chain file (default: bundled chain)")
	f.StringVar(&flags.Addr, "addr", "", "listen address (default from GW2OAS_SERVE_ADDR, else :8080)")
	f.BoolVar(&flags.Validate, "validate", false, "refuse documents that fail Swagger 2.0 validation (default from GW2OAS_VALIDATE)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagFilename("input", "json", "yaml", "yml")
	_ = cmd.MarkFlagFilename("transform", "json", "yaml", "yml")
	return cmd
}

func (a *app) runServe(ctx context.Context, flags *ServeFlags) error {
	if flags.Input == StdinFilePath {
		return &gwerrors.ConfigError{Option: "input", Value: flags.Input, Message: "serve needs a file it can watch"}
	}

	server := docserver.New(docserver.Options{
		AllowedOrigins: a.cfg.CORSOrigins,
		Logger:         a.logger,
	})
	rebuild := a.documentBuilder(flags, server)
	if err := rebuild(); err != nil {
		return err
	}

	files := []string{flags.Input}
	if flags.Transform != "" {
		files = append(files, flags.Transform)
	}
	w, err := watch.Files(a.cfg.WatchDebounce, files...)
	if err != nil {
		a.logger.Warn("unable to watch for file updates", "error", err)
	} else {
		defer func() { _ = w.Close() }()
		go w.Run(ctx,
			func() { _ = rebuild() },
			func(err error) { a.logger.Warn("watch error", "error", err) },
		)
	}

	return server.ListenAndServe(ctx, flags.Addr)
}

// documentBuilder returns a function converting the input and publishing the
// result on server. Failures are recorded on the server and returned.
func (a *app) documentBuilder(flags *ServeFlags, server *docserver.Server) func() error {
	return func() error {
		c := converter.New()
		c.ChainPath = flags.Transform
		c.Logger = a.logger

		result, err := c.Convert(flags.Input)
		if err != nil {
			server.Fail(err)
			return fmt.Errorf("converting gateway declaration: %w", err)
		}
		if flags.Validate {
			if err := validation.Validate(result.Document); err != nil {
				server.Fail(err)
				return err
			}
		}
		if result.HasWarnings() {
			a.logger.Warn("converted with warnings", "warnings", result.WarningCount)
		}
		return server.Update(result.Document)
	}
}
