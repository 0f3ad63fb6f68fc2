package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/shigou0206/stepflow-test/parser"
)

type sniffInput struct {
	Content     string `json:"content"                jsonschema:"The text to inspect"`
	Filename    string `json:"filename,omitempty"     jsonschema:"Optional file name whose extension declares a format"`
	ContentType string `json:"content_type,omitempty" jsonschema:"Optional Content-Type header value that declares a format"`
}

type sniffOutput struct {
	// Format is what the content looks like.
	Format string `json:"format"`
	// Declared is the format named by the file name or content type, if any.
	Declared string `json:"declared,omitempty"`
	// First is the format the decoder would try first.
	First string `json:"first"`
}

func handleSniff(_ context.Context, _ *mcp.CallToolRequest, input sniffInput) (*mcp.CallToolResult, sniffOutput, error) {
	guess := parser.GuessFormatString(input.Content)
	output := sniffOutput{Format: guess.String(), First: guess.String()}

	declared := parser.FormatFromPath(input.Filename)
	if declared == parser.SourceFormatUnknown {
		declared = parser.FormatFromContentType(input.ContentType)
	}
	if declared != parser.SourceFormatUnknown {
		output.Declared = declared.String()
		output.First = declared.String()
	}
	return nil, output, nil
}
