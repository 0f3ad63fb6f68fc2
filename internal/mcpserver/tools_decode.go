package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"

	"github.com/shigou0206/stepflow-test/parser"
)

type decodeInput struct {
	Spec specInput `json:"spec"           jsonschema:"The OpenAPI 3.0 document to decode"`
	Full bool      `json:"full,omitempty" jsonschema:"Also return the decoded document, re-encoded in the format it was written in"`
}

type decodeSummaryServer struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

type attemptSummary struct {
	Format string `json:"format"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
	Error  string `json:"error"`
}

type decodeOutput struct {
	OpenAPI             string                `json:"openapi"`
	Title               string                `json:"title"`
	Description         string                `json:"description,omitempty"`
	Version             string                `json:"version"`
	Format              string                `json:"format"`
	Guess               string                `json:"guess"`
	FailedAttempts      []attemptSummary      `json:"failed_attempts,omitempty"`
	SourceSize          int64                 `json:"source_size"`
	PathCount           int                   `json:"path_count"`
	OperationCount      int                   `json:"operation_count"`
	SchemaCount         int                   `json:"schema_count"`
	SecuritySchemeCount int                   `json:"security_scheme_count"`
	Servers             []decodeSummaryServer `json:"servers,omitempty"`
	Tags                []string              `json:"tags,omitempty"`
	FullDocument        string                `json:"full_document,omitempty"`
}

func handleDecode(ctx context.Context, _ *mcp.CallToolRequest, input decodeInput) (*mcp.CallToolResult, decodeOutput, error) {
	result, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), decodeOutput{}, nil
	}
	doc := result.Document

	output := decodeOutput{
		OpenAPI:             doc.OpenAPI,
		Format:              result.Format.String(),
		Guess:               result.Guess.String(),
		SourceSize:          result.SourceSize,
		PathCount:           result.Stats.PathCount,
		OperationCount:      result.Stats.OperationCount,
		SchemaCount:         result.Stats.SchemaCount,
		SecuritySchemeCount: result.Stats.SecuritySchemeCount,
		FailedAttempts:      makeSlice[attemptSummary](len(result.Attempts)),
	}
	if doc.Info != nil {
		output.Title = doc.Info.Title
		output.Description = doc.Info.Description
		output.Version = doc.Info.Version
	}
	for _, a := range result.Attempts {
		output.FailedAttempts = append(output.FailedAttempts, attemptSummary{
			Format: a.Format,
			Line:   a.Line,
			Column: a.Column,
			Error:  sanitizeError(a),
		})
	}
	for _, s := range doc.Servers {
		if s != nil {
			output.Servers = append(output.Servers, decodeSummaryServer{URL: s.URL, Description: s.Description})
		}
	}
	for _, tag := range doc.Tags {
		if tag != nil {
			output.Tags = append(output.Tags, tag.Name)
		}
	}

	if input.Full {
		var data []byte
		switch result.Format {
		case parser.SourceFormatJSON:
			data, err = json.MarshalIndent(doc, "", "  ")
		default:
			data, err = yaml.Marshal(doc)
		}
		if err != nil {
			return errResult(err), decodeOutput{}, nil
		}
		output.FullDocument = string(data)
	}

	return nil, output, nil
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}
