// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"visualtodo/internal/commands"
	"visualtodo/internal/config"
	"visualtodo/internal/exitcode"
	"visualtodo/internal/service"
)

// defaultCommand runs when no arguments are given.
const defaultCommand = "ui"

// FinderFactory creates an ImageFinder from config.
// Used to inject the backend during dispatch.
type FinderFactory func(ctx context.Context, cfg *config.Config) (service.ImageFinder, error)

// ConfigLoader builds the Config for a config directory.
type ConfigLoader func(configDir string) (*config.Config, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  FinderFactory
	load     ConfigLoader
}

// NewDispatcher creates a new dispatcher with the given registry and finder factory.
// Config is read with config.Load unless overridden with SetConfigLoader.
func NewDispatcher(registry *commands.Registry, factory FinderFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
		load:     config.Load,
	}
}

// SetConfigLoader replaces the config loader (for testing).
func (d *Dispatcher) SetConfigLoader(load ConfigLoader) {
	d.load = load
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return d.dispatch(ctx, defaultCommand, nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var (
		configDir string
		backend   string
		quiet     bool
		debug     bool
	)
	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&backend, "backend", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagErrorMessage(err))
		return exitcode.UserError
	}

	// A leading positional that looks like a flag was not recognized
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := d.load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: config error: %s\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if backend != "" {
		cfg.Backend = backend
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.UserError
		}
	}

	var finder service.ImageFinder
	if cmd.NeedsFinder() {
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: no image backend available")
			return exitcode.ConfigError
		}
		finder, err = d.factory(ctx, cfg)
		if err != nil {
			if errors.Is(err, config.ErrMissingCredential) {
				fmt.Fprintf(errOut, "error: config error: %s\n", err)
				return exitcode.ConfigError
			}
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
	}

	return cmd.Run(ctx, cfg, finder, positionalArgs, out, errOut)
}

// flagErrorMessage rewrites flag package errors into the CLI's wording.
func flagErrorMessage(err error) string {
	errStr := err.Error()
	if strings.HasPrefix(errStr, "flag provided but not defined: ") {
		return "unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	}
	return errStr
}
