// Package commands provides the cobra command tree of the gw2oas CLI.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/erraggy/gw2oas"
	"github.com/erraggy/gw2oas/gwerrors"
	"github.com/erraggy/gw2oas/internal/cliutil"
	"github.com/erraggy/gw2oas/internal/config"
	"github.com/erraggy/gw2oas/internal/logging"
	"github.com/spf13/cobra"
)

// app is the state shared by every command of one invocation.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
	// prevLogger is the slog default before setup replaced it
	prevLogger *slog.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	envFiles []string
	logLevel string
	logFile  string
}

// NewRootCommand builds the gw2oas command tree reading from stdin and
// writing to stdout and stderr.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	return (&app{stdin: stdin, stdout: stdout, stderr: stderr}).rootCommand()
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "gw2oas",
		Short: "Convert API gateway declarations into Swagger 2.0 documents",
		Long: `gw2oas reads an API gateway declaration (JSON or YAML: paths, each with an
ordered list of policy blocks) and writes a Swagger 2.0 document describing
what the gateway does on every path and method.`,
		Version:           gw2oas.Version(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringSliceVar(&a.envFiles, "env-file", []string{config.DefaultEnvFile}, "env files holding GW2OAS_* defaults")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (default from GW2OAS_LOG_LEVEL)")
	flags.StringVar(&a.logFile, "log-file", "", "also append JSON logs to this file (default from GW2OAS_LOG_FILE)")

	root.AddCommand(
		a.newConvertCommand(),
		a.newServeCommand(),
		a.newMCPCommand(),
		a.newPoliciesCommand(),
		a.newChainCommand(),
		a.newVersionCommand(),
	)
	return root
}

// Execute runs the CLI with args and returns the process exit code.
// Errors are printed to stderr as "Error: ...".
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := a.rootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if closeErr := a.teardown(); err == nil {
		err = closeErr
	}
	if err != nil {
		cliutil.Writef(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// setup loads configuration and builds the logger. Flags win over config.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.cfg = config.Load(a.envFiles...)

	if cmd.Flags().Changed("log-level") {
		level, err := config.ParseLevel(a.logLevel)
		if err != nil {
			return &gwerrors.ConfigError{
				Option:  "log-level",
				Value:   a.logLevel,
				Message: "must be debug, info, warn or error",
				Cause:   err,
			}
		}
		a.cfg.LogLevel = level
	}
	if cmd.Flags().Changed("log-file") {
		a.cfg.LogFile = a.logFile
	}

	a.prevLogger = slog.Default()
	closeLog, err := logging.Init(logging.Config{
		Level:  a.cfg.LogLevel,
		Stderr: a.stderr,
		File:   a.cfg.LogFile,
	})
	if err != nil {
		return err
	}
	a.logger = slog.Default()
	a.closeLog = closeLog
	return nil
}

func (a *app) teardown() error {
	if a.prevLogger != nil {
		slog.SetDefault(a.prevLogger)
		a.prevLogger = nil
	}
	if a.closeLog == nil {
		return nil
	}
	err := a.closeLog()
	a.closeLog = nil
	return err
}
