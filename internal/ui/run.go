package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"visualtodo/internal/board"
	"visualtodo/internal/service"
)

// Run starts the interactive board on the terminal and blocks until the user quits.
func Run(ctx context.Context, b *board.Board, finder service.ImageFinder, logger *log.Logger) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("interactive board requires a TTY")
	}

	model := NewModel(ctx, b, finder, logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
