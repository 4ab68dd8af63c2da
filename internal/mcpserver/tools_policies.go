package mcpserver

import (
	"context"

	"github.com/erraggy/gw2oas/policy"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listPoliciesInput struct{}

type policySummary struct {
	Tag     string `json:"tag"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
}

type listPoliciesOutput struct {
	Count    int             `json:"count"`
	Policies []policySummary `json:"policies,omitempty"`
}

func (t *tools) handleListPolicies(_ context.Context, _ *mcp.CallToolRequest, _ listPoliciesInput) (*mcp.CallToolResult, listPoliciesOutput, error) {
	tags := t.registry.Tags()
	output := listPoliciesOutput{
		Count:    len(tags),
		Policies: makeSlice[policySummary](len(tags)),
	}
	for _, tag := range tags {
		output.Policies = append(output.Policies, policySummary{
			Tag:     tag,
			Title:   policy.Title(tag),
			Summary: t.registry.Summary(tag),
		})
	}
	return nil, output, nil
}
