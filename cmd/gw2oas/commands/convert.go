package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/erraggy/gw2oas/converter"
	"github.com/erraggy/gw2oas/document"
	"github.com/erraggy/gw2oas/gwerrors"
	"github.com/erraggy/gw2oas/internal/cliutil"
	"github.com/erraggy/gw2oas/internal/fileutil"
	"github.com/erraggy/gw2oas/internal/watch"
	"github.com/spf13/cobra"
)

// ConvertFlags contains flags for the convert command
type ConvertFlags struct {
	Input     string
	Transform string
	Output    string
	Format    string
	Validate  bool
	Watch     bool
	Quiet     bool
}

func (a *app) newConvertCommand() *cobra.Command {
	flags := &ConvertFlags{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a gateway declaration into a Swagger 2.0 document",
		Long: `Convert a gateway declaration into a Swagger 2.0 document.

The declaration is reshaped by a rule chain first (the bundled chain drops
gateway-only sections such as proxy, plans and members), then every path and
policy block is documented. Without --output the document goes to stdout.`,
		Example: `  gw2oas convert -i gateway.json -o build/swagger.json
  gw2oas convert -i gateway.yaml -t chain.yaml -o swagger.yaml --validate
  cat gateway.json | gw2oas convert -q -i - > swagger.json
  gw2oas convert -i gateway.json -o swagger.json --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("validate") {
				flags.Validate = a.cfg.Validate
			}
			return a.runConvert(cmd.Context(), flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.Input, "input", "i", "", "gateway declaration file, or '-' for stdin (required)")
	f.StringVarP(&flags.Transform, "transform", "t", "", "rule chain file (default: bundled chain)")
	f.StringVarP(&flags.Output, "output", "o", "", "output file path (default: stdout)")
	f.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: from output extension, else json)")
	f.BoolVar(&flags.Validate, "validate", false, "check the output against the Swagger 2.0 schema (default from GW2OAS_VALIDATE)")
	f.BoolVar(&flags.Watch, "watch", false, "convert again whenever the input or rule chain changes")
	f.BoolVarP(&flags.Quiet, "quiet", "q", false, "quiet mode: only output the document, no diagnostic messages")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagFilename("input", "json", "yaml", "yml")
	_ = cmd.MarkFlagFilename("transform", "json", "yaml", "yml")
	_ = cmd.MarkFlagFilename("output", "json", "yaml", "yml")
	return cmd
}

func (a *app) runConvert(ctx context.Context, flags *ConvertFlags) error {
	format, err := ResolveOutputFormat(flags.Format, flags.Output)
	if err != nil {
		return err
	}
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, []string{flags.Input, flags.Transform}); err != nil {
			return err
		}
	}
	if !flags.Watch {
		return a.convertOnce(flags, format)
	}

	if flags.Input == StdinFilePath {
		return &gwerrors.ConfigError{Option: "watch", Value: true, Message: "cannot watch stdin"}
	}
	if err := a.convertOnce(flags, format); err != nil {
		a.logger.Error("conversion failed", "error", err)
	}

	files := []string{flags.Input}
	if flags.Transform != "" {
		files = append(files, flags.Transform)
	}
	w, err := watch.Files(a.cfg.WatchDebounce, files...)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	a.logger.Info("watching for changes", "files", files)
	w.Run(ctx,
		func() {
			if err := a.convertOnce(flags, format); err != nil {
				a.logger.Error("conversion failed", "error", err)
			}
		},
		func(err error) {
			a.logger.Warn("watch error", "error", err)
		},
	)
	return nil
}

func (a *app) convertOnce(flags *ConvertFlags, format document.Format) error {
	c := converter.New()
	c.ChainPath = flags.Transform
	c.Validate = flags.Validate
	c.Logger = a.logger

	startTime := time.Now()
	var (
		result *converter.ConversionResult
		err    error
	)
	if flags.Input == StdinFilePath {
		parsed, parseErr := document.ParseReader(a.stdin)
		if parseErr != nil {
			return fmt.Errorf("parsing stdin: %w", parseErr)
		}
		result, err = c.ConvertParsed(parsed)
	} else {
		result, err = c.Convert(flags.Input)
	}
	if err != nil {
		return fmt.Errorf("converting gateway declaration: %w", err)
	}
	totalTime := time.Since(startTime)

	if !flags.Quiet {
		OutputConversionReport(a.stderr, flags.Input, result)
		cliutil.Writef(a.stderr, "Total Time: %v\n", totalTime)
	}

	data, err := document.Marshal(result.Document, format)
	if err != nil {
		return fmt.Errorf("marshaling swagger document: %w", err)
	}

	if flags.Output != "" {
		if err := fileutil.WriteFile(flags.Output, data, fileutil.OwnerReadWrite); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		if !flags.Quiet {
			cliutil.Writef(a.stderr, "\nOutput written to: %s\n", flags.Output)
		}
	} else if _, err := a.stdout.Write(data); err != nil {
		return fmt.Errorf("writing swagger document to stdout: %w", err)
	}

	if result.HasErrors() {
		return fmt.Errorf("%w: output has %d schema violation(s)", gwerrors.ErrValidation, result.ErrorCount)
	}
	return nil
}
