package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/gw2oas/converter"
	"github.com/erraggy/gw2oas/document"
	"github.com/erraggy/gw2oas/internal/fileutil"
	"github.com/erraggy/gw2oas/rulechain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type convertInput struct {
	Gateway      docInput `json:"gateway"                 jsonschema:"The gateway declaration to convert"`
	Chain        string   `json:"chain,omitempty"         jsonschema:"Path to a rule chain file. If omitted the bundled chain is used."`
	ChainContent string   `json:"chain_content,omitempty" jsonschema:"Inline rule chain (JSON or YAML). Takes precedence over chain."`
	Validate     *bool    `json:"validate,omitempty"      jsonschema:"Check the output against the Swagger 2.0 schema. Defaults to GW2OAS_VALIDATE."`
	Format       string   `json:"format,omitempty"        jsonschema:"Output format: json (default) or yaml"`
	Output       string   `json:"output,omitempty"        jsonschema:"File path to write the document. If omitted the document is returned inline."`
}

type convertIssue struct {
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Policy   string `json:"policy,omitempty"`
	Message  string `json:"message"`
}

type convertOutput struct {
	Chain          string         `json:"chain"`
	ChainChanges   int            `json:"chain_changes"`
	PathCount      int            `json:"path_count"`
	OperationCount int            `json:"operation_count"`
	DroppedMethods int            `json:"dropped_methods"`
	Validated      bool           `json:"validated"`
	Valid          bool           `json:"valid"`
	IssueCount     int            `json:"issue_count"`
	WarningCount   int            `json:"warning_count"`
	ErrorCount     int            `json:"error_count"`
	Issues         []convertIssue `json:"issues,omitempty"`
	WrittenTo      string         `json:"written_to,omitempty"`
	Document       string         `json:"document,omitempty"`
}

func (t *tools) handleConvert(_ context.Context, _ *mcp.CallToolRequest, input convertInput) (*mcp.CallToolResult, convertOutput, error) {
	format := document.FormatJSON
	if input.Format != "" {
		f, ok := document.ParseFormat(input.Format)
		if !ok {
			return errResult(fmt.Errorf("invalid format %q; valid values: json, yaml", input.Format)), convertOutput{}, nil
		}
		format = f
	}

	c, err := t.buildConverter(input)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	parsed, err := t.resolve(input.Gateway)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	result, err := c.ConvertParsed(parsed)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	output := convertOutput{
		Chain:          result.ChainSource,
		ChainChanges:   result.ChainChanges,
		PathCount:      result.Stats.PathCount,
		OperationCount: result.Stats.OperationCount,
		DroppedMethods: result.Stats.DroppedMethods,
		Validated:      result.Validated,
		Valid:          result.Validated && !result.HasErrors(),
		IssueCount:     len(result.Issues),
		WarningCount:   result.WarningCount,
		ErrorCount:     result.ErrorCount,
	}

	output.Issues = makeSlice[convertIssue](len(result.Issues))
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, convertIssue{
			Severity: issue.Severity.String(),
			Path:     issue.Path,
			Policy:   issue.Policy,
			Message:  issue.Message,
		})
	}

	data, err := document.Marshal(result.Document, format)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	if input.Output != "" {
		if err := fileutil.WriteFile(input.Output, data, fileutil.ReadableByAll); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), convertOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Document = string(data)
	}

	return nil, output, nil
}

// buildConverter translates the MCP input into a configured converter.
func (t *tools) buildConverter(input convertInput) (*converter.Converter, error) {
	c := converter.New()
	c.Logger = t.logger
	c.Registry = &t.registry
	c.Validate = t.cfg.Validate
	if input.Validate != nil {
		c.Validate = *input.Validate
	}

	switch {
	case input.ChainContent != "":
		if int64(len(input.ChainContent)) > t.cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline chain size %d bytes exceeds maximum %d bytes", len(input.ChainContent), t.cfg.MaxInlineSize)
		}
		chain, err := rulechain.Parse([]byte(input.ChainContent))
		if err != nil {
			return nil, err
		}
		c.Chain = chain
	case input.Chain != "":
		c.ChainPath = input.Chain
	}
	return c, nil
}
