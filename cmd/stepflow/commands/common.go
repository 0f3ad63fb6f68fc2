// Package commands provides CLI command handlers for stepflow.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	stepflow "github.com/shigou0206/stepflow-test"
	"github.com/shigou0206/stepflow-test/oaserrors"
	"github.com/shigou0206/stepflow-test/parser"
	"go.yaml.in/yaml/v4"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// DefaultMaxInputSize caps how much is read from a file or stdin.
const DefaultMaxInputSize int64 = 10 * 1024 * 1024

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// ParseHint converts the --hint flag value into a source format.
// An empty value means no hint.
func ParseHint(hint string) (parser.SourceFormat, error) {
	if hint == "" {
		return parser.SourceFormatUnknown, nil
	}
	f, err := parser.ParseSourceFormat(hint)
	if err != nil {
		return parser.SourceFormatUnknown, fmt.Errorf("invalid hint '%s'. Valid hints: json, yaml", hint)
	}
	return f, nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
// Returns an error if marshaling fails.
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", bytes)
	return nil
}

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// ReadInput reads the document named by specPath, or stdin for "-".
// Input larger than maxSize is rejected with a ResourceLimitError; a
// non-positive maxSize disables the check.
func ReadInput(specPath string, stdin io.Reader, maxSize int64) ([]byte, error) {
	var r io.Reader
	if specPath == StdinFilePath {
		r = stdin
	} else {
		f, err := os.Open(specPath) //nolint:gosec // G304 - path comes from the command line
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", specPath, err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	if maxSize > 0 {
		r = io.LimitReader(r, maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FormatSpecPath(specPath), err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "content_size",
			Limit:        maxSize,
			Message:      FormatSpecPath(specPath) + " is too large",
		}
	}
	return data, nil
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// OutputSpecHeader outputs the common specification header.
func OutputSpecHeader(w io.Writer, specPath string, doc *parser.Document) {
	Writef(w, "stepflow version: %s\n", stepflow.Version())
	Writef(w, "Specification: %s\n", FormatSpecPath(specPath))
	Writef(w, "OAS Version: %s\n", doc.OpenAPI)
}

// OutputSpecStats outputs the decode statistics: how the format was chosen,
// source size, counts and timing.
func OutputSpecStats(w io.Writer, res *parser.Result) {
	Writef(w, "Format: %s (guessed %s)\n", res.Format, res.Guess)
	Writef(w, "Source Size: %s\n", parser.FormatBytes(res.SourceSize))
	Writef(w, "Paths: %d\n", res.Stats.PathCount)
	Writef(w, "Operations: %d\n", res.Stats.OperationCount)
	Writef(w, "Schemas: %d\n", res.Stats.SchemaCount)
	Writef(w, "Security Schemes: %d\n", res.Stats.SecuritySchemeCount)
	Writef(w, "Decode Time: %v\n", res.DecodeTime)
}

// OutputAttempts lists each failed codec attempt in the order it ran.
func OutputAttempts(w io.Writer, attempts []*oaserrors.DecodeError) {
	for i, a := range attempts {
		Writef(w, "  %d. %s", i+1, a.Format)
		if a.Line > 0 {
			Writef(w, " (line %d", a.Line)
			if a.Column > 0 {
				Writef(w, ", column %d", a.Column)
			}
			Writef(w, ")")
		}
		Writef(w, ": %s\n", describeAttempt(a))
	}
}

func describeAttempt(a *oaserrors.DecodeError) string {
	if a.Message != "" && a.Cause != nil {
		return a.Message + ": " + a.Cause.Error()
	}
	return a.Detail()
}
