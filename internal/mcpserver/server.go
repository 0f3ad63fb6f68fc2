// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the stepflow decoder as MCP tools over stdio.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	stepflow "github.com/shigou0206/stepflow-test"
	"github.com/shigou0206/stepflow-test/oaserrors"
)

const serverInstructions = `stepflow MCP server: decodes OpenAPI 3.0 documents written in JSON or YAML without being told which.

Tools:
- sniff: report which format would be tried first for some content
- decode: decode a document and summarize it; on failure both the JSON and YAML diagnostics are returned in the order they were tried
- endpoints: list operations with path parameters merged and local $refs resolved

Configuration: All defaults are configurable via STEPFLOW_* environment variables set in your MCP client config.

Key settings:
- STEPFLOW_CACHE_ENABLED (default: true) - disable document caching entirely
- STEPFLOW_CACHE_FILE_TTL (default: 15m) - cache TTL for local file specs
- STEPFLOW_CACHE_URL_TTL (default: 5m) - cache TTL for URL-fetched specs
- STEPFLOW_MAX_CONTENT_SIZE (default: 10MiB) - largest document accepted
- STEPFLOW_ALLOW_PRIVATE_IPS (default: false) - allow URL specs on private networks
- STEPFLOW_ENDPOINT_LIMIT (default: 100) - default result limit for endpoints

Caching: Decoded documents are cached per session. File entries use path+mtime as key (auto-invalidated on change), content entries a SHA-256 of the text. A background sweeper removes expired entries.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "stepflow", Version: stepflow.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "sniff",
		Description: "Report which format (json or yaml) the decoder would try first for the given content. Text starting with '{' or '[' is JSON, everything else YAML. The content is not decoded.",
	}, handleSniff)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "decode",
		Description: "Decode an OpenAPI 3.0 document given as a file, URL or inline content in either JSON or YAML. Returns a summary: title, version, which format was guessed and which decoded it, path/operation/schema counts, servers, and tags. If neither format works, the error lists the JSON and YAML diagnostics in the order they were tried. Use full=true only for small documents.",
	}, handleDecode)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "endpoints",
		Description: "List the operations of an OpenAPI 3.0 document, one per path and method. Path-level parameters are merged into each operation and local $refs are resolved. Filter by method, path (supports * for one segment), tag or deprecated status. Use group_by (tag or method) for counts instead of items, detail=true for parameters and responses. Default limit is configurable via STEPFLOW_ENDPOINT_LIMIT.",
	}, handleEndpoints)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.EndpointLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.EndpointLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// detailLimit returns the smaller default used when full objects are returned.
func detailLimit(limit int) int {
	if limit <= 0 {
		return cfg.EndpointDetailLimit
	}
	return limit
}

// pathPattern matches absolute filesystem paths that should not be echoed
// back to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error. Decode failures list
// each codec attempt on its own line.
func errResult(err error) *mcp.CallToolResult {
	text := sanitizeError(err)
	var agg *oaserrors.AggregateDecodeError
	if errors.As(err, &agg) {
		text = formatAttempts(agg)
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func formatAttempts(agg *oaserrors.AggregateDecodeError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "could not decode document: tried %s", strings.Join(agg.Order(), " then "))
	for i, a := range agg.Attempts {
		fmt.Fprintf(&b, "\n%d. %s", i+1, sanitizeError(a))
	}
	return b.String()
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is a valid value and is not combined with detail.
func validateGroupBy(groupBy string, detail bool, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	if detail {
		return fmt.Errorf("cannot use both group_by and detail")
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}
