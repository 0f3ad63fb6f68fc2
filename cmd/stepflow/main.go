package main

import (
	"fmt"
	"os"

	stepflow "github.com/shigou0206/stepflow-test"
	"github.com/shigou0206/stepflow-test/cmd/stepflow/commands"
)

// commandNames lists every subcommand, used for typo suggestions.
var commandNames = []string{"decode", "sniff", "endpoints", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	var err error

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("stepflow v%s\n", stepflow.Version())
		fmt.Printf("commit: %s\n", stepflow.Commit())
		fmt.Printf("built: %s\n", stepflow.BuildTime())
		fmt.Printf("go: %s\n", stepflow.GoVersion())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "decode":
		err = commands.HandleDecode(os.Args[2:])
	case "sniff":
		err = commands.HandleSniff(os.Args[2:])
	case "endpoints":
		err = commands.HandleEndpoints(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the closest known command within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `stepflow - decode OpenAPI 3.0 documents written in JSON or YAML

Usage:
  stepflow <command> [flags] <file|->

Commands:
  decode       Decode a document and print a summary or the document itself
  sniff        Print the format that would be tried first for some content
  endpoints    List the operations of a document
  mcp          Serve the decoder as MCP tools over stdio
  version      Print version information
  help         Show this help

Run 'stepflow <command> --help' for the flags of a command.

Examples:
  stepflow decode openapi.yaml
  stepflow decode --format json - < upload.bin
  stepflow sniff spec.txt
  stepflow endpoints --method get openapi.json
`)
}
