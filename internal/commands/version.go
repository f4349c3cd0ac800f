package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"visualtodo/internal/config"
	"visualtodo/internal/exitcode"
	"visualtodo/internal/service"
)

// Version is the application version. Set at build time.
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd implements the version command.
type VersionCmd struct{}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version and image backend" }
func (c *VersionCmd) Usage() string     { return "visualtodo version" }
func (c *VersionCmd) NeedsFinder() bool { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, finder service.ImageFinder, args []string, out, errOut io.Writer) int {
	if cfg == nil || cfg.Backend == "" {
		fmt.Fprintf(out, "%s %s\n", config.AppName, Version)
		return exitcode.Success
	}
	fmt.Fprintf(out, "%s %s (backend: %s)\n", config.AppName, Version, cfg.Backend)
	return exitcode.Success
}
