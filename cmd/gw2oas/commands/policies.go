package commands

import (
	"github.com/erraggy/gw2oas/internal/cliutil"
	"github.com/erraggy/gw2oas/policy"
	"github.com/spf13/cobra"
)

func (a *app) newPoliciesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List the policy tags that produce documentation",
		Long: `List the policy tags that produce documentation. Policy blocks may carry
any other tag; those are accepted and contribute nothing.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			registry := policy.DefaultRegistry()
			tags := registry.Tags()

			width := 0
			for _, tag := range tags {
				width = max(width, len(tag))
			}
			for _, tag := range tags {
				cliutil.Writef(a.stdout, "%-*s  %s\n", width, tag, policy.Title(tag))
				if summary := registry.Summary(tag); summary != "" {
					cliutil.Writef(a.stdout, "%-*s  %s\n", width, "", summary)
				}
			}
			return nil
		},
	}
}
