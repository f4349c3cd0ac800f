package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"visualtodo/internal/config"
	"visualtodo/internal/exitcode"
	"visualtodo/internal/service"
)

func init() {
	Register(&LookupCmd{})
}

// LookupCmd implements the lookup command. It runs one lookup and prints the URL.
type LookupCmd struct{}

func (c *LookupCmd) Name() string      { return "lookup" }
func (c *LookupCmd) Aliases() []string { return nil }
func (c *LookupCmd) Synopsis() string  { return "Print the image URL for some text" }
func (c *LookupCmd) Usage() string     { return "visualtodo lookup <text...>" }
func (c *LookupCmd) NeedsFinder() bool { return true }

func (c *LookupCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LookupCmd) Run(ctx context.Context, cfg *config.Config, finder service.ImageFinder, args []string, out, errOut io.Writer) int {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	res, err := finder.Lookup(ctx, query)
	if err != nil {
		if errors.Is(err, service.ErrMalformedRequest) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	fmt.Fprintln(out, res.RegularURL)
	return exitcode.Success
}
