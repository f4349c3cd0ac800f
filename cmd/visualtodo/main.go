// Package main is the entry point for the visualtodo CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"visualtodo/internal/backend"
	"visualtodo/internal/cli"
	"visualtodo/internal/commands"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, backend.New)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
