// Command ragview asks questions about Confluence page trees through the
// retrieval backend and renders the answers in a browser or terminal.
//
// Usage:
//
//	ragview serve [--listen addr]
//	ragview ask QUESTION --url URL [--url URL...] [--provider p] [--plain] [--save file]
//	ragview extract --url URL [--url URL...] [--plain] [--save file]
//	ragview render [--pattern glob] [--out dir] [ROOT]
//
// Global flags:
//
//	--config string       Path to config file (yaml|toml|json)
//	--backend-url string  Backend base URL (overrides backend.url)
//	--trace string        Trace level: Debug, Info or Error
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "ragview: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}
