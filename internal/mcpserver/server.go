// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes gw2oas conversion as MCP tools over stdio.
package mcpserver

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/erraggy/gw2oas"
	"github.com/erraggy/gw2oas/internal/config"
	"github.com/erraggy/gw2oas/policy"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `gw2oas MCP server: converts API gateway declarations (paths with ordered policy blocks) into Swagger 2.0 documents.

Tools:
- convert: convert a gateway declaration given as a file path, inline content, or a JSON object. Optionally apply a custom rule chain and validate the output.
- list_policies: list the policy tags that produce documentation. Unknown tags are accepted and ignored.

Configuration: defaults come from GW2OAS_* environment variables set in your MCP client config.
- GW2OAS_VALIDATE (default: false): validate output by default
- GW2OAS_MAX_INLINE_SIZE (default: 10485760): maximum inline content size in bytes
- GW2OAS_MCP_CACHE_ENABLED (default: true): cache parsed gateway declarations
- GW2OAS_MCP_CACHE_SIZE (default: 10), GW2OAS_MCP_CACHE_TTL (default: 15m)

Caching: file entries use path+mtime as key, so edits are picked up on the next call. Inline content is keyed by its SHA-256 hash.`

// tools holds the state shared by tool handlers.
type tools struct {
	cfg      *config.Config
	cache    *docCache
	registry policy.Registry
	logger   *slog.Logger
}

func newTools(cfg *config.Config, logger *slog.Logger) *tools {
	if cfg == nil {
		cfg = config.Load()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	t := &tools{
		cfg:      cfg,
		registry: policy.DefaultRegistry(),
		logger:   logger,
	}
	if cfg.CacheEnabled {
		t.cache = newDocCache(cfg.CacheSize, cfg.CacheTTL)
	}
	return t
}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	t := newTools(cfg, logger)
	if t.cache != nil {
		t.cache.startSweeper(ctx, t.cfg.CacheTTL)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "gw2oas", Version: gw2oas.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
			Logger:       t.logger,
		},
	)
	registerAllTools(server, t)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert",
		Description: "Convert an API gateway declaration (JSON or YAML) into a Swagger 2.0 document. Provide the declaration as gateway.file, gateway.content or gateway.object (object keys are read in sorted order). An optional rule chain (chain file path or chain_content) reshapes the declaration first; the bundled chain drops gateway-only sections. Returns conversion issues, path and operation counts, and the document inline unless output is set. Use validate=true to check the result against the Swagger 2.0 schema.",
	}, t.handleConvert)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_policies",
		Description: "List the gateway policy tags that contribute to operation descriptions, with a one-line summary of what each documents.",
	}, t.handleListPolicies)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
