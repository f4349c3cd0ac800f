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

func init() {
	Register(&ConfigCmd{})
}

// ConfigCmd prints the effective configuration with secrets masked.
type ConfigCmd struct{}

func (c *ConfigCmd) Name() string      { return "config" }
func (c *ConfigCmd) Aliases() []string { return nil }
func (c *ConfigCmd) Synopsis() string  { return "Show effective configuration" }
func (c *ConfigCmd) Usage() string     { return "visualtodo config" }
func (c *ConfigCmd) NeedsFinder() bool { return false }

func (c *ConfigCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ConfigCmd) Run(ctx context.Context, cfg *config.Config, finder service.ImageFinder, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "config dir:  %s\n", cfg.Dir)
	fmt.Fprintf(out, "config file: %s\n", cfg.FilePath())
	fmt.Fprintf(out, "backend:     %s\n", cfg.Backend)
	fmt.Fprintf(out, "log level:   %s\n", cfg.EffectiveLogLevel())
	fmt.Fprintln(out, "[unsplash]")
	fmt.Fprintf(out, "  access_key:   %s\n", config.Mask(cfg.Unsplash.AccessKey))
	fmt.Fprintf(out, "  bearer_token: %s\n", config.Mask(cfg.Unsplash.BearerToken))
	fmt.Fprintf(out, "  endpoint:     %s\n", orDefault(cfg.Unsplash.Endpoint))
	fmt.Fprintln(out, "[google]")
	fmt.Fprintf(out, "  api_key:      %s\n", config.Mask(cfg.Google.APIKey))
	fmt.Fprintf(out, "  engine_id:    %s\n", orNotSet(cfg.Google.EngineID))
	fmt.Fprintf(out, "  endpoint:     %s\n", orDefault(cfg.Google.Endpoint))
	return exitcode.Success
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
