// Package store holds the ordered in-memory task list.
package store

import (
	"github.com/google/uuid"

	"visualtodo/internal/service"
)

// Listener receives a snapshot of all tasks after every mutation.
type Listener func(tasks []service.Task)

// Store is an ordered, append-only sequence of tasks.
// It is not safe for concurrent use; exactly one goroutine owns it.
type Store struct {
	tasks     []service.Task
	index     map[uuid.UUID]int
	listeners map[int]Listener
	nextSub   int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		index:     make(map[uuid.UUID]int),
		listeners: make(map[int]Listener),
	}
}

// Append adds an incomplete task and returns its ID.
func (s *Store) Append(name, imageURL string) uuid.UUID {
	id := uuid.New()
	s.index[id] = len(s.tasks)
	s.tasks = append(s.tasks, service.Task{
		ID:       id,
		Name:     name,
		ImageURL: imageURL,
	})
	s.notify()
	return id
}

// ToggleComplete flips the complete flag of the task with id.
// Unknown IDs are ignored.
func (s *Store) ToggleComplete(id uuid.UUID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	s.tasks[i].Complete = !s.tasks[i].Complete
	s.notify()
}

// List returns a copy of all tasks in insertion order.
func (s *Store) List() []service.Task {
	result := make([]service.Task, len(s.tasks))
	copy(result, s.tasks)
	return result
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns the task with id.
func (s *Store) Get(id uuid.UUID) (service.Task, bool) {
	i, ok := s.index[id]
	if !ok {
		return service.Task{}, false
	}
	return s.tasks[i], true
}

// At returns the task at 0-based position i.
func (s *Store) At(i int) (service.Task, bool) {
	if i < 0 || i >= len(s.tasks) {
		return service.Task{}, false
	}
	return s.tasks[i], true
}

// Subscribe registers fn to be called after each mutation.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() {
		delete(s.listeners, id)
	}
}

func (s *Store) notify() {
	if len(s.listeners) == 0 {
		return
	}
	snapshot := s.List()
	for _, fn := range s.listeners {
		fn(snapshot)
	}
}
