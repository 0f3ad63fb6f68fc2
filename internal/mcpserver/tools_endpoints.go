package mcpserver

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shigou0206/stepflow-test/internal/httputil"
	"github.com/shigou0206/stepflow-test/parser"
)

type endpointsInput struct {
	Spec       specInput `json:"spec"                 jsonschema:"The OpenAPI 3.0 document to list"`
	Method     string    `json:"method,omitempty"     jsonschema:"Filter by HTTP method (get\\, post\\, put\\, delete\\, patch\\, etc.)"`
	Path       string    `json:"path,omitempty"       jsonschema:"Filter by path pattern (* = one segment\\, ** = zero or more segments)"`
	Tag        string    `json:"tag,omitempty"        jsonschema:"Filter by tag name"`
	Deprecated bool      `json:"deprecated,omitempty" jsonschema:"Only show deprecated operations"`
	GroupBy    string    `json:"group_by,omitempty"   jsonschema:"Group results and return counts instead of items. Values: tag\\, method"`
	Detail     bool      `json:"detail,omitempty"     jsonschema:"Return parameters\\, request body and responses instead of summaries"`
	Limit      int       `json:"limit,omitempty"      jsonschema:"Maximum number of results to return (default 100)"`
	Offset     int       `json:"offset,omitempty"     jsonschema:"Skip the first N results (for pagination)"`
}

type endpointSummary struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	OperationID string   `json:"operation_id,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty"`
}

type endpointsOutput struct {
	Total     int               `json:"total"`
	Matched   int               `json:"matched"`
	Returned  int               `json:"returned"`
	Summaries []endpointSummary `json:"summaries,omitempty"`
	Endpoints []parser.Endpoint `json:"endpoints,omitempty"`
	Groups    []groupCount      `json:"groups,omitempty"`
}

var endpointGroupBy = []string{"tag", "method"}

func handleEndpoints(ctx context.Context, _ *mcp.CallToolRequest, input endpointsInput) (*mcp.CallToolResult, any, error) {
	if err := validateGroupBy(input.GroupBy, input.Detail, endpointGroupBy); err != nil {
		return errResult(err), nil, nil
	}
	if input.Method != "" && !httputil.IsMethod(input.Method) {
		return errResult(fmt.Errorf("invalid method %q; valid values: %s", input.Method, strings.Join(httputil.Methods, ", "))), nil, nil
	}

	result, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), nil, nil
	}

	all := parser.Endpoints(result.Document)
	matched := filterEndpoints(all, input)
	upper := cases.Upper(language.Und)

	if input.GroupBy != "" {
		groups := groupAndSort(matched, func(ep parser.Endpoint) []string {
			if strings.EqualFold(input.GroupBy, "method") {
				return []string{upper.String(ep.Method)}
			}
			if len(ep.Tags) == 0 {
				return []string{"(untagged)"}
			}
			return ep.Tags
		})
		return nil, endpointsOutput{Total: len(all), Matched: len(matched), Returned: len(groups), Groups: groups}, nil
	}

	limit := input.Limit
	if input.Detail {
		limit = detailLimit(limit)
	}
	returned := paginate(matched, input.Offset, limit)

	output := endpointsOutput{
		Total:    len(all),
		Matched:  len(matched),
		Returned: len(returned),
	}
	if input.Detail {
		output.Endpoints = returned
		return nil, output, nil
	}

	output.Summaries = makeSlice[endpointSummary](len(returned))
	for _, ep := range returned {
		output.Summaries = append(output.Summaries, endpointSummary{
			Method:      upper.String(ep.Method),
			Path:        ep.Path,
			OperationID: ep.OperationID,
			Summary:     ep.Summary,
			Tags:        ep.Tags,
			Deprecated:  ep.Deprecated,
		})
	}
	return nil, output, nil
}

func filterEndpoints(eps []parser.Endpoint, input endpointsInput) []parser.Endpoint {
	var matched []parser.Endpoint
	for _, ep := range eps {
		if input.Method != "" && !strings.EqualFold(ep.Method, input.Method) {
			continue
		}
		if input.Path != "" && !matchPathPattern(ep.Path, input.Path) {
			continue
		}
		if input.Tag != "" && !slices.Contains(ep.Tags, input.Tag) {
			continue
		}
		if input.Deprecated && !ep.Deprecated {
			continue
		}
		matched = append(matched, ep)
	}
	return matched
}

// matchPathPattern reports whether a path template matches a pattern where
// "*" matches one segment and "**" matches zero or more.
func matchPathPattern(pathTemplate, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return pathTemplate == pattern
	}
	return matchSegments(strings.Split(pathTemplate, "/"), strings.Split(pattern, "/"))
}

func matchSegments(path, pattern []string) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case "**":
			for i := 0; i <= len(path); i++ {
				if matchSegments(path[i:], pattern[1:]) {
					return true
				}
			}
			return false
		case "*":
			if len(path) == 0 {
				return false
			}
		default:
			if len(path) == 0 || path[0] != pattern[0] {
				return false
			}
		}
		path, pattern = path[1:], pattern[1:]
	}
	return len(path) == 0
}
