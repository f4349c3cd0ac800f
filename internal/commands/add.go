package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"visualtodo/internal/board"
	"visualtodo/internal/config"
	"visualtodo/internal/exitcode"
	"visualtodo/internal/logging"
	"visualtodo/internal/output"
	"visualtodo/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command: the board workflow without a terminal UI.
type AddCmd struct {
	each bool
}

// SetEach sets whether each argument is a separate task (for testing).
func (c *AddCmd) SetEach(each bool) {
	c.each = each
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Look up images and print the resulting board" }
func (c *AddCmd) Usage() string     { return "visualtodo add [--each] <text...>" }
func (c *AddCmd) NeedsFinder() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.each, "each", false, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, finder service.ImageFinder, args []string, out, errOut io.Writer) int {
	queries := c.queries(args)
	if len(queries) == 0 {
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	}

	logger := logging.New(errOut, cfg.EffectiveLogLevel())
	b := board.New(nil, logger)

	if !cfg.Quiet {
		printed := 0
		cancel := b.Store().Subscribe(func(tasks []service.Task) {
			for _, task := range tasks[printed:] {
				output.FormatAdded(out, task)
			}
			printed = len(tasks)
		})
		defer cancel()
	}

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	loop := board.NewLoop(b, finder)
	stopped := make(chan struct{})
	go func() {
		loop.Run(runCtx)
		close(stopped)
	}()

	// Every query is dispatched before any result is applied,
	// so lookups overlap and land in completion order.
	for _, q := range queries {
		if err := loop.SubmitText(ctx, q); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.BackendError
		}
	}
	if err := loop.Wait(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	tasks, _, err := loop.Snapshot(ctx)
	stop()
	<-stopped
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		output.FormatBoard(out, tasks)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(errOut, "error: no tasks added")
		return exitcode.BackendError
	}
	return exitcode.Success
}

// queries turns positional args into task texts.
func (c *AddCmd) queries(args []string) []string {
	if !c.each {
		text := strings.Join(args, " ")
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	var result []string
	for _, a := range args {
		if strings.TrimSpace(a) != "" {
			result = append(result, a)
		}
	}
	return result
}
