package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shigou0206/stepflow-test/oaserrors"
	"github.com/shigou0206/stepflow-test/parser"
)

// DecodeFlags contains flags for the decode command
type DecodeFlags struct {
	Format           string
	Hint             string
	Debug            bool
	Quiet            bool
	NoStructureCheck bool
	MaxSize          int64
}

// SetupDecodeFlags creates and configures a FlagSet for the decode command.
// Returns the FlagSet and a DecodeFlags struct with bound flag variables.
func SetupDecodeFlags() (*flag.FlagSet, *DecodeFlags) {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	flags := &DecodeFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Hint, "hint", "", "format to try first: json or yaml (default: sniff the content)")
	fs.BoolVar(&flags.Debug, "debug", false, "log each decode attempt to stderr")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.NoStructureCheck, "no-structure-check", false, "accept any value the codec can decode, even without required OpenAPI fields")
	fs.Int64Var(&flags.MaxSize, "max-size", DefaultMaxInputSize, "maximum input size in bytes (0 for no limit)")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: stepflow decode [flags] <file|->\n\n")
		Writef(output, "Decode an OpenAPI 3.0 document written in JSON or YAML.\n\n")
		Writef(output, "The format is sniffed from the content: text starting with '{' or '['\n")
		Writef(output, "is tried as JSON first, anything else as YAML first. If the first codec\n")
		Writef(output, "fails the other one is tried.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  stepflow decode openapi.yaml\n")
		Writef(output, "  stepflow decode --format json spec.txt\n")
		Writef(output, "  stepflow decode --hint json --debug upload.bin\n")
		Writef(output, "  cat openapi.yaml | stepflow decode -q --format json -\n")
		Writef(output, "\nPipelining:\n")
		Writef(output, "  - Use '-' as the file path to read from stdin\n")
		Writef(output, "  - Use --quiet/-q to suppress diagnostic output for pipelining\n")
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    Decoding successful\n")
		Writef(output, "  1    Neither JSON nor YAML produced an OpenAPI 3.0 document\n")
	}

	return fs, flags
}

// HandleDecode executes the decode command
func HandleDecode(args []string) error {
	fs, flags := SetupDecodeFlags()

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

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("decode command requires exactly one file path or '-' for stdin")
	}
	specPath := fs.Arg(0)

	data, err := ReadInput(specPath, os.Stdin, flags.MaxSize)
	if err != nil {
		return err
	}

	opts := []parser.Option{
		parser.WithFormatHint(hint),
		parser.WithValidateStructure(!flags.NoStructureCheck),
	}
	if flags.Debug {
		opts = append(opts, parser.WithLogger(newDebugLogger(os.Stderr)))
	}
	d, err := parser.New(opts...)
	if err != nil {
		return err
	}

	res, err := d.DecodeResult(data)
	if err != nil {
		return reportDecodeFailure(os.Stderr, specPath, err)
	}

	// Diagnostics go to stderr to keep stdout clean for the document
	if !flags.Quiet {
		Writef(os.Stderr, "OpenAPI Document Decoder\n")
		Writef(os.Stderr, "========================\n\n")
		OutputSpecHeader(os.Stderr, specPath, res.Document)
		OutputSpecStats(os.Stderr, res)
		if res.FellBack() {
			Writef(os.Stderr, "\nFell back after:\n")
			OutputAttempts(os.Stderr, res.Attempts)
		}
		Writef(os.Stderr, "\n")
	}

	if flags.Format == FormatText {
		outputDocumentSummary(os.Stdout, res.Document)
		return nil
	}
	return OutputStructured(os.Stdout, res.Document, flags.Format)
}

// reportDecodeFailure prints every codec attempt and returns a short error
// for the exit message.
func reportDecodeFailure(w io.Writer, specPath string, err error) error {
	var agg *oaserrors.AggregateDecodeError
	if !errors.As(err, &agg) {
		return fmt.Errorf("decoding %s: %w", FormatSpecPath(specPath), err)
	}
	Writef(w, "Decode failed for %s\n", FormatSpecPath(specPath))
	OutputAttempts(w, agg.Attempts)
	Writef(w, "\n")
	return fmt.Errorf("%s is not an OpenAPI 3.0 document in JSON or YAML: %w", FormatSpecPath(specPath), oaserrors.ErrDecode)
}

func outputDocumentSummary(w io.Writer, doc *parser.Document) {
	if doc.Info != nil {
		Writef(w, "Title: %s\n", doc.Info.Title)
		if doc.Info.Description != "" {
			Writef(w, "Description: %s\n", doc.Info.Description)
		}
		Writef(w, "Version: %s\n", doc.Info.Version)
	}
	Writef(w, "Servers: %d\n", len(doc.Servers))
	for _, s := range doc.Servers {
		if s != nil {
			Writef(w, "  - %s\n", s.URL)
		}
	}
	Writef(w, "Paths: %d\n", len(doc.Paths))
	if len(doc.Tags) > 0 {
		Writef(w, "Tags:")
		for _, t := range doc.Tags {
			if t != nil {
				Writef(w, " %s", t.Name)
			}
		}
		Writef(w, "\n")
	}
}

func newDebugLogger(w io.Writer) parser.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return parser.NewSlogAdapter(slog.New(h))
}
