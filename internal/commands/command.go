// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"visualtodo/internal/config"
	"visualtodo/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsFinder returns true if the command performs image lookups.
	// Commands like help, version and config return false.
	NeedsFinder() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided.
	// finder is nil if NeedsFinder() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, finder service.ImageFinder, args []string, out, errOut io.Writer) int
}
