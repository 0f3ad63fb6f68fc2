package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shigou0206/stepflow-test/internal/httputil"
	"github.com/shigou0206/stepflow-test/parser"
)

// EndpointsFlags contains flags for the endpoints command
type EndpointsFlags struct {
	Format     string
	Hint       string
	Method     string
	Path       string
	Tag        string
	Deprecated bool
	Detail     bool
	Quiet      bool
	MaxSize    int64
}

// SetupEndpointsFlags creates and configures a FlagSet for the endpoints command.
// Returns the FlagSet and an EndpointsFlags struct with bound flag variables.
func SetupEndpointsFlags() (*flag.FlagSet, *EndpointsFlags) {
	fs := flag.NewFlagSet("endpoints", flag.ContinueOnError)
	flags := &EndpointsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Hint, "hint", "", "format to try first: json or yaml (default: sniff the content)")
	fs.StringVar(&flags.Method, "method", "", "filter by HTTP method (e.g., get, post)")
	fs.StringVar(&flags.Path, "path", "", "filter by path pattern (supports glob with *)")
	fs.StringVar(&flags.Tag, "tag", "", "filter by tag")
	fs.BoolVar(&flags.Deprecated, "deprecated", false, "only show deprecated operations")
	fs.BoolVar(&flags.Detail, "detail", false, "show parameters, request body and responses instead of a summary table")
	fs.BoolVar(&flags.Quiet, "q", false, "suppress headers and decoration for piping")
	fs.BoolVar(&flags.Quiet, "quiet", false, "suppress headers and decoration for piping")
	fs.Int64Var(&flags.MaxSize, "max-size", DefaultMaxInputSize, "maximum input size in bytes (0 for no limit)")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: stepflow endpoints [flags] <file|->\n\n")
		Writef(output, "List the operations of an OpenAPI 3.0 document, one row per path and method.\n")
		Writef(output, "Path-level parameters are merged into each operation and local $refs are resolved.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  stepflow endpoints openapi.yaml\n")
		Writef(output, "  stepflow endpoints --method get --path '/pets/*' openapi.json\n")
		Writef(output, "  stepflow endpoints --tag pets --detail --format json openapi.yaml\n")
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    Document decoded (even if no operation matched)\n")
		Writef(output, "  1    Document could not be read or decoded\n")
	}

	return fs, flags
}

// HandleEndpoints executes the endpoints command
func HandleEndpoints(args []string) error {
	fs, flags := SetupEndpointsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	hint, err := ParseHint(flags.Hint)
	if err != nil {
		return err
	}
	if flags.Method != "" && !httputil.IsMethod(flags.Method) {
		return fmt.Errorf("invalid method '%s'. Valid methods: %s", flags.Method, strings.Join(httputil.Methods, ", "))
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("endpoints command requires exactly one file path or '-' for stdin")
	}
	specPath := fs.Arg(0)

	data, err := ReadInput(specPath, os.Stdin, flags.MaxSize)
	if err != nil {
		return err
	}
	d, err := parser.New(parser.WithFormatHint(hint))
	if err != nil {
		return err
	}
	doc, err := d.Decode(data)
	if err != nil {
		return reportDecodeFailure(os.Stderr, specPath, err)
	}

	matched := filterEndpoints(parser.Endpoints(doc), flags)
	if len(matched) == 0 {
		if !flags.Quiet {
			Writef(os.Stderr, "No endpoints matched the given filters.\n")
		}
		return nil
	}

	if flags.Detail {
		return RenderDetail(os.Stdout, matched, flags.Format)
	}

	headers := []string{"METHOD", "PATH", "OPERATION ID", "SUMMARY", "TAGS"}
	upper := cases.Upper(language.Und)
	rows := make([][]string, 0, len(matched))
	for _, ep := range matched {
		method := upper.String(ep.Method)
		if ep.Deprecated {
			method += " (deprecated)"
		}
		rows = append(rows, []string{
			method,
			ep.Path,
			ep.OperationID,
			ep.Summary,
			strings.Join(ep.Tags, ", "),
		})
	}

	if flags.Format != FormatText {
		return RenderSummaryStructured(os.Stdout, headers, rows, flags.Format)
	}
	RenderSummaryTable(os.Stdout, headers, rows, flags.Quiet)
	return nil
}

func filterEndpoints(eps []parser.Endpoint, flags *EndpointsFlags) []parser.Endpoint {
	var matched []parser.Endpoint
	for _, ep := range eps {
		if flags.Method != "" && !strings.EqualFold(ep.Method, flags.Method) {
			continue
		}
		if !matchPath(ep.Path, flags.Path) {
			continue
		}
		if flags.Tag != "" && !slices.Contains(ep.Tags, flags.Tag) {
			continue
		}
		if flags.Deprecated && !ep.Deprecated {
			continue
		}
		matched = append(matched, ep)
	}
	return matched
}

// matchPath checks if a path template matches a pattern.
// A "*" segment matches exactly one path segment, so /pets/* matches
// /pets/{petId} but not /pets/{petId}/photos.
func matchPath(pathTemplate, pattern string) bool {
	if pattern == "" {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return pathTemplate == pattern
	}
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(pathTemplate, "/")
	if len(patternParts) != len(pathParts) {
		return false
	}
	for i, pp := range patternParts {
		if pp != "*" && pp != pathParts[i] {
			return false
		}
	}
	return true
}
