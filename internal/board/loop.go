package board

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"visualtodo/internal/service"
)

// ErrStopped is returned when the loop is no longer running.
var ErrStopped = errors.New("board loop stopped")

// Loop is the single mutation context for a Board.
// Every read and write of the board runs on the goroutine executing Run.
// Lookups run on their own goroutines and hand results back as events.
type Loop struct {
	board  *Board
	finder service.ImageFinder

	events chan func(ctx context.Context)
	done   chan struct{}

	// inflight counts lookups whose result has not been applied yet.
	inflight sync.WaitGroup
}

// NewLoop creates a loop driving b with lookups served by finder.
func NewLoop(b *Board, finder service.ImageFinder) *Loop {
	return &Loop{
		board:  b,
		finder: finder,
		events: make(chan func(ctx context.Context)),
		done:   make(chan struct{}),
	}
}

// Run processes events until ctx is cancelled. It must be called once.
// Lookups still in flight when Run returns are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-l.events:
			ev(ctx)
		}
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func(b *Board)) error {
	return l.do(ctx, func(context.Context) { fn(l.board) })
}

func (l *Loop) do(ctx context.Context, fn func(runCtx context.Context)) error {
	applied := make(chan struct{})
	ev := func(runCtx context.Context) {
		fn(runCtx)
		close(applied)
	}

	select {
	case l.events <- ev:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrStopped
	}

	// The loop executes an accepted event before reading the next one.
	<-applied
	return nil
}

// SetInput replaces the pending input text.
func (l *Loop) SetInput(ctx context.Context, text string) error {
	return l.Do(ctx, func(b *Board) { b.SetInput(text) })
}

// Submit starts a lookup for the current pending input.
// It returns as soon as the lookup is dispatched.
func (l *Loop) Submit(ctx context.Context) error {
	return l.do(ctx, func(runCtx context.Context) {
		l.dispatch(runCtx, l.board.Input())
	})
}

// SubmitText sets the pending input to text and submits it in one step.
func (l *Loop) SubmitText(ctx context.Context, text string) error {
	return l.do(ctx, func(runCtx context.Context) {
		l.board.SetInput(text)
		l.dispatch(runCtx, text)
	})
}

// Toggle flips the complete flag of the task with id.
func (l *Loop) Toggle(ctx context.Context, id uuid.UUID) error {
	return l.Do(ctx, func(b *Board) { b.Toggle(id) })
}

// Snapshot returns the tasks and pending input as seen by the loop.
func (l *Loop) Snapshot(ctx context.Context) ([]service.Task, string, error) {
	var (
		tasks []service.Task
		input string
	)
	err := l.Do(ctx, func(b *Board) {
		tasks = b.Tasks()
		input = b.Input()
	})
	return tasks, input, err
}

// Wait blocks until every dispatched lookup has been applied to the board.
func (l *Loop) Wait(ctx context.Context) error {
	idle := make(chan struct{})
	go func() {
		l.inflight.Wait()
		close(idle)
	}()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// dispatch runs on the loop goroutine.
func (l *Loop) dispatch(runCtx context.Context, query string) {
	l.board.logger.Debug("lookup dispatched", "query", query)
	l.inflight.Add(1)
	go func() {
		res, err := l.finder.Lookup(runCtx, query)
		ev := func(context.Context) {
			defer l.inflight.Done()
			l.board.Resolve(query, res, err)
		}
		select {
		case l.events <- ev:
		case <-l.done:
			l.inflight.Done()
		}
	}()
}
