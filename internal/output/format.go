// Package output provides plain-text and card renderers for tasks.
// Every renderer is a pure function of the tasks it is given.
package output

import (
	"fmt"
	"io"
	"strings"

	"visualtodo/internal/service"
)

const (
	// EmptyBoard is shown when there are no tasks.
	EmptyBoard = "Add a task"

	// BoardSeparator separates the board from surrounding output.
	BoardSeparator = "------------"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [{x| }] {NAME}  {URL}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s  %s\n", num, checkbox(task.Complete), normalizeName(task.Name), task.ImageURL)
}

// FormatAdded formats the line printed when a task lands on the board.
func FormatAdded(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "+ %s  %s\n", normalizeName(task.Name), task.ImageURL)
}

// FormatBoard writes every task with 1-based numbers, framed by separators.
func FormatBoard(w io.Writer, tasks []service.Task) {
	fmt.Fprintln(w, BoardSeparator)
	if len(tasks) == 0 {
		fmt.Fprintln(w, EmptyBoard)
	}
	for i, task := range tasks {
		FormatTask(w, i+1, task)
	}
	fmt.Fprintln(w, BoardSeparator)
}

func checkbox(complete bool) string {
	if complete {
		return "[x]"
	}
	return "[ ]"
}

// normalizeName normalizes a task name for display.
// - Empty or whitespace-only names become "(untitled)"
// - Newlines are replaced with spaces
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")

	if strings.TrimSpace(name) == "" {
		return "(untitled)"
	}
	return name
}
