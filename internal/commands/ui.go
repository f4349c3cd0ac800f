package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"visualtodo/internal/board"
	"visualtodo/internal/config"
	"visualtodo/internal/exitcode"
	"visualtodo/internal/logging"
	"visualtodo/internal/service"
	"visualtodo/internal/ui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the interactive board.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return []string{"run"} }
func (c *UICmd) Synopsis() string  { return "Open the interactive board" }
func (c *UICmd) Usage() string     { return "visualtodo ui" }
func (c *UICmd) NeedsFinder() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, finder service.ImageFinder, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// The alt screen owns the terminal, so diagnostics go to a file.
	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.ConfigError
	}
	logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to open log file: %v\n", err)
		return exitcode.ConfigError
	}
	defer logFile.Close()

	logger := logging.NewWithTimestamps(logFile, cfg.EffectiveLogLevel())
	logger.Info("board opened", "backend", cfg.Backend)

	if err := ui.Run(ctx, board.New(nil, logger), finder, logger); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
