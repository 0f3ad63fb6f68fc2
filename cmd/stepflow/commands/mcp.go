package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shigou0206/stepflow-test/internal/mcpserver"
)

// HandleMCP runs the MCP server over stdio until the client disconnects or
// the process receives an interrupt.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: stepflow mcp\n\n")
		Writef(output, "Serve the sniff, decode and endpoints tools over the Model Context Protocol on stdio.\n")
		Writef(output, "Defaults are read from STEPFLOW_* environment variables.\n")
		Writef(output, "\nExample MCP client configuration:\n")
		Writef(output, "  {\"command\": \"stepflow\", \"args\": [\"mcp\"], \"env\": {\"STEPFLOW_CACHE_FILE_TTL\": \"5m\"}}\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
