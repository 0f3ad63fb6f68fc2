package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/shigou0206/stepflow-test/parser"
)

// SniffFlags contains flags for the sniff command
type SniffFlags struct {
	Format  string
	MaxSize int64
}

// SniffOutput is the structured form of the sniff result.
type SniffOutput struct {
	Source    string `json:"source" yaml:"source"`
	Guess     string `json:"guess" yaml:"guess"`
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`
}

// SetupSniffFlags creates and configures a FlagSet for the sniff command.
// Returns the FlagSet and a SniffFlags struct with bound flag variables.
func SetupSniffFlags() (*flag.FlagSet, *SniffFlags) {
	fs := flag.NewFlagSet("sniff", flag.ContinueOnError)
	flags := &SniffFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.Int64Var(&flags.MaxSize, "max-size", DefaultMaxInputSize, "maximum input size in bytes (0 for no limit)")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: stepflow sniff [flags] <file|->\n\n")
		Writef(output, "Print the format the decoder would try first for the given content.\n")
		Writef(output, "The content is not decoded.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  stepflow sniff spec.txt\n")
		Writef(output, "  echo '{\"openapi\": \"3.0.0\"}' | stepflow sniff -\n")
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    Content was read\n")
		Writef(output, "  1    Content could not be read\n")
	}

	return fs, flags
}

// HandleSniff executes the sniff command
func HandleSniff(args []string) error {
	fs, flags := SetupSniffFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("sniff command requires exactly one file path or '-' for stdin")
	}
	specPath := fs.Arg(0)

	data, err := ReadInput(specPath, os.Stdin, flags.MaxSize)
	if err != nil {
		return err
	}

	out := SniffOutput{
		Source: FormatSpecPath(specPath),
		Guess:  parser.GuessFormat(data).String(),
	}
	if specPath != StdinFilePath {
		if ext := parser.FormatFromPath(specPath); ext != parser.SourceFormatUnknown {
			out.Extension = ext.String()
		}
	}

	if flags.Format == FormatText {
		Writef(os.Stdout, "%s\n", out.Guess)
		return nil
	}
	return OutputStructured(os.Stdout, out, flags.Format)
}
