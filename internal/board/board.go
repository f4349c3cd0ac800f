// Package board implements the todo-creation workflow: pending input,
// image lookups and the task store they feed.
package board

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"visualtodo/internal/logging"
	"visualtodo/internal/service"
	"visualtodo/internal/store"
)

// Board pairs the pending input text with the task store.
// Like the store, it must only be touched from one goroutine.
type Board struct {
	store  *store.Store
	input  string
	logger *log.Logger
}

// New creates a board over st. A nil st gets a fresh store
// and a nil logger discards diagnostics.
func New(st *store.Store, logger *log.Logger) *Board {
	if st == nil {
		st = store.New()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Board{store: st, logger: logger}
}

// Store returns the underlying task store.
func (b *Board) Store() *store.Store { return b.store }

// Input returns the pending input text.
func (b *Board) Input() string { return b.input }

// SetInput replaces the pending input text.
func (b *Board) SetInput(s string) { b.input = s }

// Tasks returns all tasks in store order.
func (b *Board) Tasks() []service.Task { return b.store.List() }

// Resolve applies the outcome of a lookup for query.
// On failure it logs and leaves both the store and the pending input alone.
// On success it appends a task named query and clears the pending input.
func (b *Board) Resolve(query string, res service.ImageResult, err error) (service.Task, bool) {
	if err != nil {
		b.logger.Warn("lookup aborted", "kind", service.FailureKind(err), "query", query, "err", err)
		return service.Task{}, false
	}

	id := b.store.Append(query, res.RegularURL)
	b.input = ""
	task, _ := b.store.Get(id)
	b.logger.Debug("task appended", "name", task.Name, "image", task.ImageURL)
	return task, true
}

// Toggle flips the complete flag of the task with id. Unknown ids are ignored.
func (b *Board) Toggle(id uuid.UUID) {
	b.store.ToggleComplete(id)
}

// ToggleAt flips the task at 0-based position i. Out of range is ignored.
func (b *Board) ToggleAt(i int) {
	if task, ok := b.store.At(i); ok {
		b.store.ToggleComplete(task.ID)
	}
}
