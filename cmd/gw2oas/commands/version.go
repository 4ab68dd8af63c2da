package commands

import (
	"github.com/erraggy/gw2oas"
	"github.com/erraggy/gw2oas/internal/cliutil"
	"github.com/spf13/cobra"
)

func (a *app) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cliutil.Writef(a.stdout, "gw2oas %s\n", gw2oas.Version())
			cliutil.Writef(a.stdout, "%s", gw2oas.BuildInfo())
			return nil
		},
	}
}
