package commands

import (
	"github.com/erraggy/gw2oas/rulechain"
	"github.com/spf13/cobra"
)

func (a *app) newChainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chain",
		Short: "Print the bundled rule chain",
		Long: `Print the rule chain applied when convert and serve run without -t.
Save it to a file and edit it as a starting point for a custom chain.`,
		Example: `  gw2oas chain > chain.yaml
  gw2oas convert -i gateway.json -t chain.yaml`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := a.stdout.Write(rulechain.DefaultBytes())
			return err
		},
	}
}
